package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/config"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/model"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/shared"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/storage/core"
)

// Storage key prefixes for the two renditions.
const (
	thumbnailPrefix = "thumbnail"
	originalPrefix  = "original"
)

// PhotoCatalog is the database-backed photo store. Implementations must
// translate uniqueness violations on insert to model.ErrDuplicatePhoto and
// missing rows to model.ErrPhotoNotFound.
type PhotoCatalog interface {
	SavePhoto(ctx context.Context, photo *model.Photo) (*model.Photo, error)
	PhotoHashExists(ctx context.Context, hash string) (bool, error)
	GetPhotoByID(ctx context.Context, id int64) (*model.Photo, error)
	GetPhotoByHash(ctx context.Context, hash string) (*model.Photo, error)
	GetPhotoByFileName(ctx context.Context, fileName string) (*model.Photo, error)
	GetPhotosByCollection(ctx context.Context, collection string, sort shared.SortOption) ([]model.Photo, error)
	GetAllPhotos(ctx context.Context, sort shared.SortOption) ([]model.Photo, error)
	GetCollections(ctx context.Context) ([]string, error)
	GetHeroPhoto(ctx context.Context) (*model.Photo, error)
	GetAboutPhoto(ctx context.Context) (*model.Photo, error)
	DeletePhotos(ctx context.Context, ids []int64) error
}

// PhotoService orchestrates validation, content addressing, rendition
// derivation, the image store and the catalog into the upload and delete
// operations.
type PhotoService struct {
	catalog   PhotoCatalog
	store     core.ObjectStore
	codec     *ImageCodec
	validator *Validator
	cfg       *config.Config
}

func NewPhotoService(catalog PhotoCatalog, store core.ObjectStore, cfg *config.Config) *PhotoService {
	return &PhotoService{
		catalog:   catalog,
		store:     store,
		codec:     NewImageCodec(),
		validator: NewValidator(cfg.MaxImageSize),
		cfg:       cfg,
	}
}

// UploadPhoto runs the ingestion pipeline. The sequencing matters: the
// hash pre-check runs before any storage write so a duplicate never leaves
// orphaned blobs, and the catalog insert runs last so a row exists only
// when both renditions are durable. The unique constraint on hash remains
// the final arbiter under concurrent identical uploads; the pre-check only
// avoids wasted writes.
func (s *PhotoService) UploadPhoto(ctx context.Context, title, fileName, contentType string, file io.Reader, collection string) (*model.Photo, error) {
	data, err := s.validator.Validate(file, fileName, contentType)
	if err != nil {
		return nil, err
	}

	hash := Hash(data)
	exists, err := s.catalog.PhotoHashExists(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("check photo hash: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: hash %s", model.ErrDuplicatePhoto, hash)
	}

	name := SanitizeName(fileName)
	thumbKey := path.Join(thumbnailPrefix, name)
	origKey := path.Join(originalPrefix, name)

	thumb, err := s.codec.Thumbnail(data)
	if err != nil {
		return nil, err
	}
	original, err := s.codec.Original(data)
	if err != nil {
		return nil, err
	}

	if err := s.store.Upload(ctx, thumb, thumbKey); err != nil {
		return nil, err
	}
	if err := s.store.Upload(ctx, original, origKey); err != nil {
		// The thumbnail just written is now an orphan; try to reclaim it.
		s.compensate(ctx, []string{thumbKey})
		return nil, err
	}

	photo := &model.Photo{
		Title:         title,
		Hash:          hash,
		FileName:      name,
		OriginalPath:  origKey,
		ThumbnailPath: thumbKey,
		Collection:    collection,
	}
	saved, err := s.catalog.SavePhoto(ctx, photo)
	if err != nil {
		// Lost a duplicate race or the insert failed outright; both fresh
		// blobs are orphans unless reclaimed here.
		s.compensate(ctx, []string{thumbKey, origKey})
		return nil, err
	}
	return saved, nil
}

// compensate best-effort deletes blobs written by an upload that did not
// commit. Failures only log: the duplicate-hash pre-check keeps a retried
// upload from re-ingesting, and leftover blobs are reclaimed out of band.
func (s *PhotoService) compensate(ctx context.Context, keys []string) {
	_, failed, err := s.store.DeleteMany(ctx, keys)
	if err != nil {
		log.Printf("compensating delete failed: %v", err)
		return
	}
	if len(failed) > 0 {
		log.Printf("orphaned blobs left in store: %v", failed)
	}
}

// DeletePhotos resolves ids, batch-deletes their blobs in one store call,
// and removes only the rows whose both renditions were confirmed deleted.
// Unknown ids are reported, not raised.
func (s *PhotoService) DeletePhotos(ctx context.Context, ids []int64) (*model.DeleteReport, error) {
	report := &model.DeleteReport{Deleted: []int64{}, NotFound: []int64{}}

	var resolved []*model.Photo
	for _, id := range ids {
		photo, err := s.catalog.GetPhotoByID(ctx, id)
		if errors.Is(err, model.ErrPhotoNotFound) {
			report.NotFound = append(report.NotFound, id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve photo %d: %w", id, err)
		}
		resolved = append(resolved, photo)
	}
	if len(resolved) == 0 {
		return report, nil
	}

	keys := make([]string, 0, 2*len(resolved))
	for _, photo := range resolved {
		keys = append(keys, photo.ThumbnailPath, photo.OriginalPath)
	}
	deleted, _, err := s.store.DeleteMany(ctx, keys)
	if err != nil {
		return nil, err
	}

	deletedSet := make(map[string]bool, len(deleted))
	for _, key := range deleted {
		deletedSet[key] = true
	}

	var removable []int64
	for _, photo := range resolved {
		// A row whose blob deletion was partial stays in the catalog so it
		// never references storage state we cannot account for.
		if deletedSet[photo.ThumbnailPath] && deletedSet[photo.OriginalPath] {
			removable = append(removable, photo.ID)
		}
	}
	if len(removable) > 0 {
		if err := s.catalog.DeletePhotos(ctx, removable); err != nil {
			return nil, fmt.Errorf("delete photo rows: %w", err)
		}
		report.Deleted = removable
	}
	return report, nil
}

func (s *PhotoService) GetPhoto(ctx context.Context, id int64) (*model.Photo, error) {
	return s.catalog.GetPhotoByID(ctx, id)
}

func (s *PhotoService) GetPhotoByHash(ctx context.Context, hash string) (*model.Photo, error) {
	return s.catalog.GetPhotoByHash(ctx, hash)
}

func (s *PhotoService) GetPhotosByCollection(ctx context.Context, collection string, sort shared.SortOption) ([]model.Photo, error) {
	return s.catalog.GetPhotosByCollection(ctx, collection, sort)
}

func (s *PhotoService) GetAllPhotos(ctx context.Context, sort shared.SortOption) ([]model.Photo, error) {
	return s.catalog.GetAllPhotos(ctx, sort)
}

func (s *PhotoService) GetCollections(ctx context.Context) ([]string, error) {
	return s.catalog.GetCollections(ctx)
}

func (s *PhotoService) GetHeroPhoto(ctx context.Context) (*model.Photo, error) {
	return s.catalog.GetHeroPhoto(ctx)
}

func (s *PhotoService) GetAboutPhoto(ctx context.Context) (*model.Photo, error) {
	return s.catalog.GetAboutPhoto(ctx)
}

// PhotoURL resolves a storage locator to a URL the frontend can load: a
// local /uploads path in development, the image store base URL in
// production.
func (s *PhotoService) PhotoURL(key string) string {
	if s.cfg.EnvType == config.EnvDevelopment {
		return "/" + path.Join("uploads", key)
	}
	return strings.TrimRight(s.cfg.ImageStoreBaseURL, "/") + "/" + key
}

// ToResponse converts a catalog row to its API shape with resolved URLs.
func (s *PhotoService) ToResponse(photo *model.Photo) model.PhotoResponse {
	return model.PhotoResponse{
		ID:           photo.ID,
		Title:        photo.Title,
		FileName:     photo.FileName,
		OriginalURL:  s.PhotoURL(photo.OriginalPath),
		ThumbnailURL: s.PhotoURL(photo.ThumbnailPath),
		Collection:   photo.Collection,
	}
}
