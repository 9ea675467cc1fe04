package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS photos (
	id BIGSERIAL PRIMARY KEY,
	title VARCHAR(50) NOT NULL,
	hash CHAR(64) NOT NULL UNIQUE,
	file_name VARCHAR(100) NOT NULL UNIQUE,
	original_path VARCHAR(300) NOT NULL UNIQUE,
	thumbnail_path VARCHAR(300) NOT NULL UNIQUE,
	collection VARCHAR(100) NOT NULL,
	uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(30) NOT NULL,
	email VARCHAR(50) NOT NULL UNIQUE,
	password_hash TEXT NOT NULL
);
`

// Migrate applies the schema. Every statement is idempotent, so running it
// on each startup is safe.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.DB.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
