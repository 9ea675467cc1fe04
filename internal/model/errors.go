package model

import "errors"

// Catalog errors shared between the storage layer and its callers.
var (
	// ErrDuplicatePhoto means the photo's hash (or another unique column)
	// collided with a committed row.
	ErrDuplicatePhoto = errors.New("duplicate photo")
	// ErrPhotoNotFound means an id or lookup key resolved to no row.
	ErrPhotoNotFound = errors.New("photo not found")
	// ErrUserNotFound means no user matched the lookup.
	ErrUserNotFound = errors.New("user not found")
)
