// Package storage re-exports the image store abstraction and selects the
// concrete backend. Business logic is written against ObjectStore only; the
// backend is chosen once at startup from configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/config"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/storage/core"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/storage/local"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/storage/s3"
)

type (
	// ObjectStore is the interface for image store backends.
	ObjectStore = core.ObjectStore
	// StoreError is a backend failure carrying backend identity and cause.
	StoreError = core.StoreError
)

// Open selects the backend from config: local disk in development, an
// S3-compatible bucket in production. This is the only branch point on the
// environment type.
func Open(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	switch cfg.EnvType {
	case config.EnvDevelopment:
		return local.New(cfg.UploadDir)
	case config.EnvProduction:
		return s3.New(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown env type %q", cfg.EnvType)
	}
}
