package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

const jwtExpDays = 7

// UserRepo is the persistence interface the user service depends on.
type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.UserWithPhoto, error)
	UpdateProfile(ctx context.Context, userID int64, p *models.ProfileUpdate) error
}

// UserService handles user-related business logic and token validation.
type UserService struct {
	userRepo  UserRepo
	jwtSecret string
	now       func() time.Time
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepo, jwtSecret string) *UserService {
	return &UserService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		now:       time.Now,
	}
}

// GenerateJWT generates a signed token whose subject is the username.
func (s *UserService) GenerateJWT(username string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(now.AddDate(0, 0, jwtExpDays)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a token and returns the username it was issued for.
func (s *UserService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	username, err := token.Claims.GetSubject()
	if err != nil || username == "" {
		return "", fmt.Errorf("subject not found in token")
	}

	return username, nil
}

// GetByUsername resolves a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user, nil
}

// ListMembers returns all browsable profiles with ages and main photo URLs.
func (s *UserService) ListMembers(ctx context.Context) ([]*models.Member, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	now := s.now()
	members := make([]*models.Member, 0, len(users))
	for _, u := range users {
		members = append(members, &models.Member{
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
	return members, nil
}

// UpdateProfile updates the acting user's editable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, actingUsername string, p *models.ProfileUpdate) error {
	user, err := s.GetByUsername(ctx, actingUsername)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateProfile(ctx, user.ID, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
