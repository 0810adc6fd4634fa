// Package memory provides an in-process pipegen.Store for tests and local
// development. The mutex stands in for the SQL transaction the postgres
// store uses: the deactivate+insert transition is atomic per store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meikuraledutech/pipegen"
)

// MemStore implements pipegen.Store with a mutex-guarded map of per-project
// record histories.
type MemStore struct {
	mu      sync.Mutex
	records map[string][]pipegen.Configuration
}

// New creates an empty MemStore.
func New() *MemStore {
	return &MemStore{records: make(map[string][]pipegen.Configuration)}
}

// CreateSchema is a no-op; the store needs no setup.
func (s *MemStore) CreateSchema(ctx context.Context) error { return nil }

// DropSchema discards all records.
func (s *MemStore) DropSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string][]pipegen.Configuration)
	return nil
}

// SaveConfiguration deactivates the project's active record, if any, and
// appends cfg as the new active record.
func (s *MemStore) SaveConfiguration(ctx context.Context, cfg *pipegen.Configuration) (*pipegen.Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = time.Now().UTC()
	}
	cfg.Active = true

	history := s.records[cfg.Project]
	for i := range history {
		history[i].Active = false
	}
	s.records[cfg.Project] = append(history, *cfg)

	stored := *cfg
	return &stored, nil
}

// ActiveConfiguration returns the project's active record, or
// pipegen.ErrNoActiveConfiguration.
func (s *MemStore) ActiveConfiguration(ctx context.Context, project string) (*pipegen.Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cfg := range s.records[project] {
		if cfg.Active {
			stored := cfg
			return &stored, nil
		}
	}
	return nil, pipegen.ErrNoActiveConfiguration
}

// ListConfigurations returns all records for a project, newest first.
func (s *MemStore) ListConfigurations(ctx context.Context, project string) ([]pipegen.Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.records[project]
	out := make([]pipegen.Configuration, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	return out, nil
}

// DeactivateConfiguration flips the project's active record to inactive.
func (s *MemStore) DeactivateConfiguration(ctx context.Context, project string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.records[project]
	for i := range history {
		if history[i].Active {
			history[i].Active = false
			return nil
		}
	}
	return pipegen.ErrNoActiveConfiguration
}
