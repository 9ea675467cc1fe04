// Package local implements the image store on the local filesystem,
// used in development.
package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/storage/core"
)

const backend = "local"

// Store writes blobs under a base directory. Keys map to relative file
// paths; parent directories are created on demand.
type Store struct {
	root string
}

// New returns a filesystem-backed store rooted at root, creating it if needed.
func New(root string) (*Store, error) {
	if root == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, &core.StoreError{Backend: backend, Op: "init", Err: err}
	}
	return &Store{root: root}, nil
}

// pathFor rejects keys that would escape the root.
func (s *Store) pathFor(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// Upload writes data under key with an exclusive create, so a repeated key
// fails instead of silently replacing an existing rendition.
func (s *Store) Upload(ctx context.Context, data []byte, key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return &core.StoreError{Backend: backend, Op: "upload", Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &core.StoreError{Backend: backend, Op: "upload", Err: err}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return &core.StoreError{Backend: backend, Op: "upload", Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return &core.StoreError{Backend: backend, Op: "upload", Err: err}
	}
	if err := f.Close(); err != nil {
		return &core.StoreError{Backend: backend, Op: "upload", Err: err}
	}
	return nil
}

// DeleteMany removes every key it can. A missing file counts as deleted so
// that retried deletes stay idempotent.
func (s *Store) DeleteMany(ctx context.Context, keys []string) (deleted, failed []string, err error) {
	for _, key := range keys {
		path, perr := s.pathFor(key)
		if perr != nil {
			failed = append(failed, key)
			continue
		}
		rerr := os.Remove(path)
		if rerr == nil || errors.Is(rerr, fs.ErrNotExist) {
			deleted = append(deleted, key)
			continue
		}
		failed = append(failed, key)
	}
	return deleted, failed, nil
}
