package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/config"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/model"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/shared"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/storage/memory"
)

// fakeCatalog is an in-memory PhotoCatalog that enforces hash uniqueness
// the way the postgres implementation does.
type fakeCatalog struct {
	photos  map[int64]*model.Photo
	nextID  int64
	saveErr error // when set, SavePhoto fails with it
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{photos: make(map[int64]*model.Photo), nextID: 1}
}

func (c *fakeCatalog) SavePhoto(ctx context.Context, photo *model.Photo) (*model.Photo, error) {
	if c.saveErr != nil {
		return nil, c.saveErr
	}
	for _, existing := range c.photos {
		if existing.Hash == photo.Hash {
			return nil, fmt.Errorf("%w: hash", model.ErrDuplicatePhoto)
		}
	}
	photo.ID = c.nextID
	c.nextID++
	stored := *photo
	c.photos[photo.ID] = &stored
	return photo, nil
}

func (c *fakeCatalog) PhotoHashExists(ctx context.Context, hash string) (bool, error) {
	for _, p := range c.photos {
		if p.Hash == hash {
			return true, nil
		}
	}
	return false, nil
}

func (c *fakeCatalog) GetPhotoByID(ctx context.Context, id int64) (*model.Photo, error) {
	p, ok := c.photos[id]
	if !ok {
		return nil, model.ErrPhotoNotFound
	}
	return p, nil
}

func (c *fakeCatalog) GetPhotoByHash(ctx context.Context, hash string) (*model.Photo, error) {
	for _, p := range c.photos {
		if p.Hash == hash {
			return p, nil
		}
	}
	return nil, model.ErrPhotoNotFound
}

func (c *fakeCatalog) GetPhotoByFileName(ctx context.Context, fileName string) (*model.Photo, error) {
	for _, p := range c.photos {
		if strings.Contains(p.FileName, fileName) {
			return p, nil
		}
	}
	return nil, model.ErrPhotoNotFound
}

func (c *fakeCatalog) GetPhotosByCollection(ctx context.Context, collection string, sort shared.SortOption) ([]model.Photo, error) {
	var photos []model.Photo
	for _, p := range c.photos {
		if p.Collection == collection {
			photos = append(photos, *p)
		}
	}
	return photos, nil
}

func (c *fakeCatalog) GetAllPhotos(ctx context.Context, sort shared.SortOption) ([]model.Photo, error) {
	var photos []model.Photo
	for _, p := range c.photos {
		if p.Collection != model.AboutCollection {
			photos = append(photos, *p)
		}
	}
	return photos, nil
}

func (c *fakeCatalog) GetCollections(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var collections []string
	for _, p := range c.photos {
		if p.Collection != model.AboutCollection && !seen[p.Collection] {
			seen[p.Collection] = true
			collections = append(collections, p.Collection)
		}
	}
	return collections, nil
}

func (c *fakeCatalog) GetHeroPhoto(ctx context.Context) (*model.Photo, error) {
	for _, p := range c.photos {
		if strings.Contains(p.FileName, "hero") {
			return p, nil
		}
	}
	return nil, model.ErrPhotoNotFound
}

func (c *fakeCatalog) GetAboutPhoto(ctx context.Context) (*model.Photo, error) {
	for _, p := range c.photos {
		if p.Collection == model.AboutCollection {
			return p, nil
		}
	}
	return nil, model.ErrPhotoNotFound
}

func (c *fakeCatalog) DeletePhotos(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		delete(c.photos, id)
	}
	return nil
}

// countingStore wraps the memory store and records DeleteMany calls.
type countingStore struct {
	*memory.Store
	deleteCalls int
}

func (s *countingStore) DeleteMany(ctx context.Context, keys []string) ([]string, []string, error) {
	s.deleteCalls++
	return s.Store.DeleteMany(ctx, keys)
}

func newTestService(t *testing.T) (*PhotoService, *fakeCatalog, *countingStore) {
	t.Helper()
	catalog := newFakeCatalog()
	store := &countingStore{Store: memory.New()}
	cfg := &config.Config{
		EnvType:           config.EnvDevelopment,
		MaxImageSize:      5 << 20,
		ImageStoreBaseURL: "https://img.example.com",
	}
	return NewPhotoService(catalog, store, cfg), catalog, store
}

func uploadFixture(t *testing.T, svc *PhotoService, title, fileName, collection string, data []byte) (*model.Photo, error) {
	t.Helper()
	return svc.UploadPhoto(context.Background(), title, fileName, "image/jpeg", bytes.NewReader(data), collection)
}

func TestUploadPhoto(t *testing.T) {
	svc, _, store := newTestService(t)
	img := encodeTestJPEG(t, 100, 100)

	photo, err := uploadFixture(t, svc, "sunset", "sunset.jpg", "nature", img)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if photo.Collection != "nature" {
		t.Fatalf("expected collection nature, got %s", photo.Collection)
	}
	if !strings.Contains(photo.FileName, "sunset") {
		t.Fatalf("expected file name to carry the stem, got %s", photo.FileName)
	}
	if photo.Hash == "" {
		t.Fatal("expected a content hash")
	}
	if photo.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 blobs, got %d", store.Len())
	}
	if !store.Has(photo.ThumbnailPath) || !store.Has(photo.OriginalPath) {
		t.Fatal("renditions missing from store")
	}
}

func TestUploadDuplicateShortCircuits(t *testing.T) {
	svc, _, store := newTestService(t)
	img := encodeTestJPEG(t, 100, 100)

	if _, err := uploadFixture(t, svc, "sunset", "sunset.jpg", "nature", img); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	_, err := uploadFixture(t, svc, "another title", "other.jpg", "nature", img)
	if !errors.Is(err, model.ErrDuplicatePhoto) {
		t.Fatalf("expected ErrDuplicatePhoto, got %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("duplicate upload wrote blobs: store has %d", store.Len())
	}
}

func TestUploadDecodeFailureWritesNothing(t *testing.T) {
	svc, _, store := newTestService(t)

	var decodeErr *DecodeError
	_, err := uploadFixture(t, svc, "bad", "bad.jpg", "nature", []byte("not an image"))
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("decode failure left %d blobs", store.Len())
	}
}

func TestUploadValidationFailureWritesNothing(t *testing.T) {
	svc, _, store := newTestService(t)

	_, err := svc.UploadPhoto(context.Background(), "t", "a.jpg", "image/jpeg", bytes.NewReader(nil), "nature")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || validationErr.Reason != ReasonEmpty {
		t.Fatalf("expected empty validation error, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("validation failure left %d blobs", store.Len())
	}
}

func TestUploadInsertRaceCompensates(t *testing.T) {
	svc, catalog, store := newTestService(t)
	img := encodeTestJPEG(t, 100, 100)

	// Simulate losing the unique-constraint race: the pre-check passes but
	// the insert fails as a duplicate.
	catalog.saveErr = fmt.Errorf("%w: hash", model.ErrDuplicatePhoto)
	_, err := uploadFixture(t, svc, "sunset", "sunset.jpg", "nature", img)
	if !errors.Is(err, model.ErrDuplicatePhoto) {
		t.Fatalf("expected ErrDuplicatePhoto, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("compensating delete left %d blobs", store.Len())
	}
}

func TestDeletePhotos(t *testing.T) {
	svc, catalog, store := newTestService(t)
	img := encodeTestJPEG(t, 100, 100)

	photo, err := uploadFixture(t, svc, "sunset", "sunset.jpg", "nature", img)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	report, err := svc.DeletePhotos(context.Background(), []int64{photo.ID})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(report.Deleted) != 1 || report.Deleted[0] != photo.ID {
		t.Fatalf("expected deleted={%d}, got %v", photo.ID, report.Deleted)
	}
	if len(report.NotFound) != 0 {
		t.Fatalf("expected empty not_found, got %v", report.NotFound)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d blobs", store.Len())
	}
	if _, err := catalog.GetPhotoByID(context.Background(), photo.ID); !errors.Is(err, model.ErrPhotoNotFound) {
		t.Fatal("catalog row survived the delete")
	}
}

func TestDeletePhotosPartialBlobFailureKeepsRow(t *testing.T) {
	svc, catalog, store := newTestService(t)
	img := encodeTestJPEG(t, 100, 100)

	photo, err := uploadFixture(t, svc, "sunset", "sunset.jpg", "nature", img)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	store.FailKeys = map[string]bool{photo.OriginalPath: true}
	report, err := svc.DeletePhotos(context.Background(), []int64{photo.ID})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(report.Deleted) != 0 {
		t.Fatalf("expected no deletions, got %v", report.Deleted)
	}
	if _, err := catalog.GetPhotoByID(context.Background(), photo.ID); err != nil {
		t.Fatal("row removed despite partial blob deletion")
	}
}

func TestDeletePhotosUnknownID(t *testing.T) {
	svc, _, store := newTestService(t)

	report, err := svc.DeletePhotos(context.Background(), []int64{42})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(report.NotFound) != 1 || report.NotFound[0] != 42 {
		t.Fatalf("expected not_found={42}, got %v", report.NotFound)
	}
	if len(report.Deleted) != 0 {
		t.Fatalf("expected no deletions, got %v", report.Deleted)
	}
	if store.deleteCalls != 0 {
		t.Fatalf("expected zero store calls, got %d", store.deleteCalls)
	}
}

func TestPhotoURL(t *testing.T) {
	svc, _, _ := newTestService(t)
	if got := svc.PhotoURL("thumbnail/a.jpeg"); got != "/uploads/thumbnail/a.jpeg" {
		t.Fatalf("dev url: %s", got)
	}

	svc.cfg.EnvType = config.EnvProduction
	if got := svc.PhotoURL("thumbnail/a.jpeg"); got != "https://img.example.com/thumbnail/a.jpeg" {
		t.Fatalf("prod url: %s", got)
	}
}
