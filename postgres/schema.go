package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS pipeline_configurations (
    id         TEXT PRIMARY KEY,
    project    TEXT NOT NULL,
    descriptor JSONB NOT NULL,
    workflow   TEXT NOT NULL,
    active     BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_pipeline_configurations_project ON pipeline_configurations(project);

-- The database enforces the single-active-record-per-project invariant even
-- if two transactions race: the loser fails the unique check on commit.
CREATE UNIQUE INDEX IF NOT EXISTS idx_pipeline_configurations_active
    ON pipeline_configurations(project) WHERE active;
`

// CreateSchema creates the pipeline_configurations table if it doesn't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the pipeline_configurations table.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS pipeline_configurations CASCADE;`)
	return err
}
