package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"dating-backend/internal/metrics"
	"dating-backend/internal/models"
	"dating-backend/internal/repository"
	"dating-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PhotoRepo is the persistence interface the photo service depends on.
type PhotoRepo interface {
	Create(ctx context.Context, photo *models.Photo) error
	GetByIDForOwner(ctx context.Context, photoID, ownerID int64) (*models.Photo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Photo, error)
	SetMain(ctx context.Context, photoID, ownerID int64) error
	Delete(ctx context.Context, photoID, ownerID int64) error
}

// PhotoService manages a user's photo collection and the main-photo
// invariant. Photo bytes are delegated to the blob store; blob writes are
// best-effort side effects outside the database transaction.
type PhotoService struct {
	photoRepo PhotoRepo
	userRepo  UserRepo
	blobs     storage.BlobStore
	recorder  metrics.Recorder
	now       func() time.Time
}

// NewPhotoService creates a new photo service
func NewPhotoService(photoRepo PhotoRepo, userRepo UserRepo, blobs storage.BlobStore, recorder metrics.Recorder) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		userRepo:  userRepo,
		blobs:     blobs,
		recorder:  recorder,
		now:       time.Now,
	}
}

// ListPhotos returns all photos owned by the acting user.
func (s *PhotoService) ListPhotos(ctx context.Context, actingUsername string) ([]*models.Photo, error) {
	owner, err := s.resolveUser(ctx, actingUsername)
	if err != nil {
		return nil, err
	}

	photos, err := s.photoRepo.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, nil
}

// AddPhoto stores the uploaded bytes and inserts the photo record. The first
// photo an owner uploads becomes their main photo. An empty upload fails with
// ErrInvalidInput.
func (s *PhotoService) AddPhoto(ctx context.Context, actingUsername string, data []byte, originalExt string) (*models.Photo, error) {
	owner, err := s.resolveUser(ctx, actingUsername)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no file uploaded", ErrInvalidInput)
	}

	ext := strings.ToLower(originalExt)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	key := uuid.New().String() + ext

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.blobs.Put(ctx, key, contentType, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to store photo blob: %w", err)
	}

	photo := &models.Photo{
		OwnerID:   owner.ID,
		Key:       key,
		URL:       s.blobs.URL(key),
		CreatedAt: s.now(),
	}

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		// Best-effort orphan cleanup; the blob write is outside the
		// transaction boundary.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("Failed to clean up orphan blob")
		}
		return nil, fmt.Errorf("failed to create photo record: %w", err)
	}

	s.recorder.RecordPhotoUploaded()
	return photo, nil
}

// SetMainPhoto makes the given photo the acting user's main photo. A photo
// that does not exist or belongs to someone else fails with ErrNotFound.
func (s *PhotoService) SetMainPhoto(ctx context.Context, actingUsername string, photoID int64) error {
	owner, err := s.resolveUser(ctx, actingUsername)
	if err != nil {
		return err
	}

	if err := s.photoRepo.SetMain(ctx, photoID, owner.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to set main photo: %w", err)
	}
	return nil
}

// DeletePhoto removes the photo record and its blob. The blob delete is
// best-effort; a missing blob is not an error. Deleting the main photo does
// not promote another photo.
func (s *PhotoService) DeletePhoto(ctx context.Context, actingUsername string, photoID int64) error {
	owner, err := s.resolveUser(ctx, actingUsername)
	if err != nil {
		return err
	}

	photo, err := s.photoRepo.GetByIDForOwner(ctx, photoID, owner.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get photo: %w", err)
	}

	if err := s.blobs.Delete(ctx, photo.Key); err != nil {
		log.Warn().Err(err).Str("key", photo.Key).Msg("Failed to delete photo blob")
	}

	if err := s.photoRepo.Delete(ctx, photoID, owner.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	s.recorder.RecordPhotoDeleted()
	return nil
}

func (s *PhotoService) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user, nil
}
