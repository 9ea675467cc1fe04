package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage struct {
	DB *pgxpool.Pool
}

// InitDB opens a connection pool against dbURI and verifies it.
func InitDB(ctx context.Context, dbURI string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, dbURI)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Storage{DB: pool}, nil
}

func (s *Storage) Close() {
	s.DB.Close()
}
