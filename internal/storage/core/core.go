// Package core defines the image store contract shared by every backend.
package core

import (
	"context"
	"fmt"
)

// ObjectStore is a durable put/delete of opaque blobs by key.
//
// Upload writes data under key; callers treat any error as fatal for the
// operation in flight and must not assume partial writes were cleaned up.
//
// DeleteMany attempts every key and returns a strict partition into deleted
// and failed keys. It returns a non-nil error only for systemic failures
// (connectivity, auth), in which case the partition is meaningless.
type ObjectStore interface {
	Upload(ctx context.Context, data []byte, key string) error
	DeleteMany(ctx context.Context, keys []string) (deleted []string, failed []string, err error)
}

// StoreError wraps a backend write or delete failure with the backend
// identity and operation, so callers never see raw transport errors.
type StoreError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s store: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
