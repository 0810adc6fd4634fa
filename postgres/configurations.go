package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meikuraledutech/pipegen"
)

// SaveConfiguration deactivates the project's current active record and
// inserts cfg as the new active record in one transaction. If cfg.ID is
// empty, a UUID is auto-generated. Returns the stored record with ID and
// CreatedAt filled in.
func (s *PGStore) SaveConfiguration(ctx context.Context, cfg *pipegen.Configuration) (*pipegen.Configuration, error) {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	descriptor, err := json.Marshal(cfg.Descriptor)
	if err != nil {
		return nil, fmt.Errorf("pipegen: marshal descriptor: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipegen: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE pipeline_configurations SET active = FALSE WHERE project = $1 AND active`,
		cfg.Project,
	); err != nil {
		return nil, fmt.Errorf("pipegen: deactivate previous configuration: %w", err)
	}

	var createdAt time.Time
	if err := tx.QueryRow(ctx,
		`INSERT INTO pipeline_configurations (id, project, descriptor, workflow, active)
		 VALUES ($1, $2, $3, $4, TRUE)
		 RETURNING created_at`,
		cfg.ID, cfg.Project, descriptor, cfg.Workflow,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("pipegen: insert configuration %s: %w", cfg.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("pipegen: commit: %w", err)
	}

	cfg.Active = true
	cfg.CreatedAt = createdAt
	return cfg, nil
}

// ActiveConfiguration returns the project's active record.
// Returns pipegen.ErrNoActiveConfiguration if there is none.
func (s *PGStore) ActiveConfiguration(ctx context.Context, project string) (*pipegen.Configuration, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, project, descriptor, workflow, active, created_at
		 FROM pipeline_configurations
		 WHERE project = $1 AND active`,
		project,
	)
	cfg, err := scanConfiguration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pipegen.ErrNoActiveConfiguration
		}
		return nil, fmt.Errorf("pipegen: get active configuration: %w", err)
	}
	return cfg, nil
}

// ListConfigurations returns all records for a project, newest first.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListConfigurations(ctx context.Context, project string) ([]pipegen.Configuration, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, project, descriptor, workflow, active, created_at
		 FROM pipeline_configurations
		 WHERE project = $1
		 ORDER BY created_at DESC, id`,
		project,
	)
	if err != nil {
		return nil, fmt.Errorf("pipegen: list configurations: %w", err)
	}
	defer rows.Close()

	configs := []pipegen.Configuration{}
	for rows.Next() {
		cfg, err := scanConfiguration(rows)
		if err != nil {
			return nil, fmt.Errorf("pipegen: scan configuration: %w", err)
		}
		configs = append(configs, *cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pipegen: rows configurations: %w", err)
	}

	return configs, nil
}

// DeactivateConfiguration flips the project's active record to inactive.
// Returns pipegen.ErrNoActiveConfiguration if the project has none.
func (s *PGStore) DeactivateConfiguration(ctx context.Context, project string) error {
	ct, err := s.db.Exec(ctx,
		`UPDATE pipeline_configurations SET active = FALSE WHERE project = $1 AND active`,
		project,
	)
	if err != nil {
		return fmt.Errorf("pipegen: deactivate configuration: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pipegen.ErrNoActiveConfiguration
	}
	return nil
}

func scanConfiguration(row pgx.Row) (*pipegen.Configuration, error) {
	var cfg pipegen.Configuration
	var descriptor []byte
	if err := row.Scan(&cfg.ID, &cfg.Project, &descriptor, &cfg.Workflow, &cfg.Active, &cfg.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(descriptor, &cfg.Descriptor); err != nil {
		return nil, fmt.Errorf("unmarshal descriptor: %w", err)
	}
	return &cfg, nil
}
