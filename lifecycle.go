package pipegen

import "context"

// Generate compiles a descriptor to workflow YAML without touching any
// store: validate, build the job graph, render. It is a pure function and
// safe to call concurrently. Warnings accompany a successful result and
// never block generation.
func Generate(d *Descriptor) ([]byte, []Warning, error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}
	graph, warnings, err := BuildGraph(d)
	if err != nil {
		return nil, nil, err
	}
	out, err := MarshalWorkflow(graph)
	if err != nil {
		return nil, nil, err
	}
	return out, warnings, nil
}

// Manager owns the configuration lifecycle for projects: generating a
// pipeline supersedes the project's active record, deleting deactivates it.
// Persistence and transition atomicity are delegated to the Store.
type Manager struct {
	store Store
}

// NewManager creates a Manager backed by the given store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Result is a successful generation: the stored record plus any warnings.
type Result struct {
	Configuration *Configuration `json:"configuration"`
	Warnings      []Warning      `json:"warnings,omitempty"`
}

// Generate validates and compiles the descriptor, then atomically replaces
// the project's active configuration. The previous record is only
// deactivated once the replacement has passed full validation and
// serialization: a failed generation leaves the store untouched.
func (m *Manager) Generate(ctx context.Context, d *Descriptor) (*Result, error) {
	out, warnings, err := Generate(d)
	if err != nil {
		return nil, err
	}

	cfg := &Configuration{
		Project:    d.ProjectName,
		Descriptor: *d,
		Workflow:   string(out),
		Active:     true,
	}
	stored, err := m.store.SaveConfiguration(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Result{Configuration: stored, Warnings: warnings}, nil
}

// Active returns the project's active configuration.
func (m *Manager) Active(ctx context.Context, project string) (*Configuration, error) {
	return m.store.ActiveConfiguration(ctx, project)
}

// History returns all configuration records for a project, newest first.
func (m *Manager) History(ctx context.Context, project string) ([]Configuration, error) {
	return m.store.ListConfigurations(ctx, project)
}

// Delete deactivates the project's active configuration with no
// replacement. History is retained.
func (m *Manager) Delete(ctx context.Context, project string) error {
	return m.store.DeactivateConfiguration(ctx, project)
}
