package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dating-backend/internal/metrics"
	"dating-backend/internal/models"
	"dating-backend/internal/repository"
)

// LikeRepo is the persistence interface the like service depends on.
type LikeRepo interface {
	Create(ctx context.Context, sourceUserID, likedUserID int64) error
	ListLiked(ctx context.Context, sourceUserID int64) ([]*models.UserWithPhoto, error)
}

// LikeService maintains the directed like graph.
type LikeService struct {
	likeRepo LikeRepo
	userRepo UserRepo
	recorder metrics.Recorder
	now      func() time.Time
}

// NewLikeService creates a new like service
func NewLikeService(likeRepo LikeRepo, userRepo UserRepo, recorder metrics.Recorder) *LikeService {
	return &LikeService{
		likeRepo: likeRepo,
		userRepo: userRepo,
		recorder: recorder,
		now:      time.Now,
	}
}

// AddLike records that the acting user likes the target user. Liking the same
// user twice fails with ErrDuplicateLike; liking yourself fails with
// ErrInvalidInput.
func (s *LikeService) AddLike(ctx context.Context, actingUsername, targetUsername string) error {
	source, err := s.resolveUser(ctx, actingUsername)
	if err != nil {
		return err
	}
	target, err := s.resolveUser(ctx, targetUsername)
	if err != nil {
		return err
	}

	if source.ID == target.ID {
		return fmt.Errorf("%w: cannot like yourself", ErrInvalidInput)
	}

	if err := s.likeRepo.Create(ctx, source.ID, target.ID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicateLike
		}
		return fmt.Errorf("failed to add like: %w", err)
	}

	s.recorder.RecordLikeAdded()
	return nil
}

// ListLikedUsers returns every user the acting user has liked. Outbound edges
// only; this is not a mutual-match query.
func (s *LikeService) ListLikedUsers(ctx context.Context, actingUsername string) ([]*models.LikedUser, error) {
	source, err := s.resolveUser(ctx, actingUsername)
	if err != nil {
		return nil, err
	}

	users, err := s.likeRepo.ListLiked(ctx, source.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked users: %w", err)
	}

	now := s.now()
	liked := make([]*models.LikedUser, 0, len(users))
	for _, u := range users {
		liked = append(liked, &models.LikedUser{
			ID:           u.ID,
			Username:     u.Username,
			KnownAs:      u.KnownAs,
			Age:          models.Age(u.DateOfBirth, now),
			Gender:       u.Gender,
			City:         u.City,
			Country:      u.Country,
			Introduction: u.Introduction,
			LookingFor:   u.LookingFor,
			Interests:    u.Interests,
			PhotoURL:     u.PhotoURL,
		})
	}
	return liked, nil
}

func (s *LikeService) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user, nil
}
