package pipegen

import (
	"context"
	"time"
)

// Configuration is one immutable generated-pipeline record. At most one
// record per project is active at a time; superseding a configuration
// deactivates the prior record, it never deletes history.
type Configuration struct {
	ID         string     `json:"id"`
	Project    string     `json:"project"`
	Descriptor Descriptor `json:"descriptor"`
	Workflow   string     `json:"workflow"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Store defines the contract for persisting configuration records.
//
// SaveConfiguration must perform the deactivate-old/insert-new transition
// as a single atomic unit keyed by project, so two racing generations can
// neither both end up active nor lose an update.
type Store interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// SaveConfiguration deactivates the project's current active record,
	// if any, and inserts cfg as the new active record. It fills ID and
	// CreatedAt when unset and returns the stored record.
	SaveConfiguration(ctx context.Context, cfg *Configuration) (*Configuration, error)

	// ActiveConfiguration returns the project's active record, or
	// ErrNoActiveConfiguration.
	ActiveConfiguration(ctx context.Context, project string) (*Configuration, error)

	// ListConfigurations returns all records for a project, newest first.
	// Returns an empty slice (not nil) if none exist.
	ListConfigurations(ctx context.Context, project string) ([]Configuration, error)

	// DeactivateConfiguration flips the project's active record to
	// inactive with no replacement. Returns ErrNoActiveConfiguration if
	// the project has no active record.
	DeactivateConfiguration(ctx context.Context, project string) error
}
