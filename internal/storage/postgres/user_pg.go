package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/model"
)

func (s *Storage) CreateUser(ctx context.Context, u model.User) error {
	_, err := s.DB.Exec(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3)`,
		u.Name, u.Email, u.PasswordHash,
	)
	return err
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.DB.QueryRow(ctx,
		`SELECT id, name, email, password_hash FROM users WHERE email = $1`, email)
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.DB.QueryRow(ctx,
		`SELECT id, name, email, password_hash FROM users WHERE id = $1`, id)
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AdminExists reports whether any account has been registered. Registration
// is open only while this is false.
func (s *Storage) AdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users)`).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
