package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/model"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/shared"
)

// uniqueViolation is the postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

const photoColumns = `id, title, hash, file_name, original_path, thumbnail_path, collection, uploaded_at`

// SavePhoto inserts one catalog row. A unique violation on hash, file_name
// or either path is reported as model.ErrDuplicatePhoto; the insert leaves
// no partial row either way.
func (s *Storage) SavePhoto(ctx context.Context, photo *model.Photo) (*model.Photo, error) {
	row := s.DB.QueryRow(ctx,
		`INSERT INTO photos (title, hash, file_name, original_path, thumbnail_path, collection)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, uploaded_at`,
		photo.Title, photo.Hash, photo.FileName,
		photo.OriginalPath, photo.ThumbnailPath, photo.Collection,
	)
	if err := row.Scan(&photo.ID, &photo.UploadedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: %s", model.ErrDuplicatePhoto, pgErr.ConstraintName)
		}
		return nil, err
	}
	return photo, nil
}

// PhotoHashExists reports whether a committed row already carries hash.
func (s *Storage) PhotoHashExists(ctx context.Context, hash string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM photos WHERE hash = $1)`, hash,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Storage) GetPhotoByID(ctx context.Context, id int64) (*model.Photo, error) {
	row := s.DB.QueryRow(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE id = $1`, id)
	return scanPhoto(row)
}

func (s *Storage) GetPhotoByHash(ctx context.Context, hash string) (*model.Photo, error) {
	row := s.DB.QueryRow(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE hash = $1`, hash)
	return scanPhoto(row)
}

// GetPhotoByFileName matches on the sanitized stem, so a lookup for
// "sunset" finds "sunset_1a2b3c4d.jpeg".
func (s *Storage) GetPhotoByFileName(ctx context.Context, fileName string) (*model.Photo, error) {
	stem := strings.SplitN(fileName, "_", 2)[0]
	row := s.DB.QueryRow(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE file_name LIKE '%' || $1 || '%' LIMIT 1`, stem)
	return scanPhoto(row)
}

func (s *Storage) GetPhotosByCollection(ctx context.Context, collection string, sort shared.SortOption) ([]model.Photo, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE collection = $1 `+orderClause(sort), collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPhotos(rows)
}

// GetAllPhotos returns every row except the reserved about image.
func (s *Storage) GetAllPhotos(ctx context.Context, sort shared.SortOption) ([]model.Photo, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE collection <> $1 `+orderClause(sort),
		model.AboutCollection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPhotos(rows)
}

// GetCollections lists the distinct collection labels, excluding the
// reserved about sentinel.
func (s *Storage) GetCollections(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT DISTINCT collection FROM photos WHERE collection <> $1 ORDER BY collection`,
		model.AboutCollection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		collections = append(collections, name)
	}
	return collections, rows.Err()
}

// GetHeroPhoto returns the photo whose file name carries the "hero" marker.
func (s *Storage) GetHeroPhoto(ctx context.Context) (*model.Photo, error) {
	row := s.DB.QueryRow(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE file_name LIKE '%hero%' LIMIT 1`)
	return scanPhoto(row)
}

// GetAboutPhoto returns the reserved about image.
func (s *Storage) GetAboutPhoto(ctx context.Context) (*model.Photo, error) {
	row := s.DB.QueryRow(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE collection = $1 LIMIT 1`,
		model.AboutCollection)
	return scanPhoto(row)
}

// DeletePhotos removes the given rows in one transaction; a failure rolls
// back all of them.
func (s *Storage) DeletePhotos(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM photos WHERE id = ANY($1)`, ids); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func scanPhoto(row pgx.Row) (*model.Photo, error) {
	var p model.Photo
	err := row.Scan(&p.ID, &p.Title, &p.Hash, &p.FileName,
		&p.OriginalPath, &p.ThumbnailPath, &p.Collection, &p.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPhotos(rows pgx.Rows) ([]model.Photo, error) {
	var photos []model.Photo
	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(&p.ID, &p.Title, &p.Hash, &p.FileName,
			&p.OriginalPath, &p.ThumbnailPath, &p.Collection, &p.UploadedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func orderClause(sort shared.SortOption) string {
	switch sort {
	case shared.SortUploadedOld:
		return `ORDER BY uploaded_at ASC`
	case shared.SortNameAZ:
		return `ORDER BY file_name ASC`
	case shared.SortNameZA:
		return `ORDER BY file_name DESC`
	default:
		return `ORDER BY uploaded_at DESC`
	}
}
