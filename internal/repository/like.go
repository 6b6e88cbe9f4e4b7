package repository

import (
	"context"
	"errors"
	"fmt"

	"dating-backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LikeRepository handles database operations for like edges
type LikeRepository struct {
	db *pgxpool.Pool
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{db: db}
}

const uniqueViolation = "23505"

// Create inserts a like edge. Returns ErrDuplicate if the edge already
// exists; the primary key on (source_user_id, liked_user_id) closes the race
// between concurrent inserts.
func (r *LikeRepository) Create(ctx context.Context, sourceUserID, likedUserID int64) error {
	query := `
		INSERT INTO likes (source_user_id, liked_user_id)
		VALUES ($1, $2)
	`
	_, err := r.db.Exec(ctx, query, sourceUserID, likedUserID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

// ListLiked retrieves the users the source user has liked, together with
// their main photo URL. Outbound edges only.
func (r *LikeRepository) ListLiked(ctx context.Context, sourceUserID int64) ([]*models.UserWithPhoto, error) {
	query := `
		SELECT u.id, u.username, u.known_as, u.gender, u.date_of_birth, u.city,
			u.country, u.introduction, u.looking_for, u.interests, u.created_at,
			COALESCE(p.url, '')
		FROM likes l
		JOIN users u ON u.id = l.liked_user_id
		LEFT JOIN photos p ON p.owner_id = u.id AND p.is_main
		WHERE l.source_user_id = $1
		ORDER BY l.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, sourceUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked users: %w", err)
	}
	defer rows.Close()

	var users []*models.UserWithPhoto
	for rows.Next() {
		var u models.UserWithPhoto
		err := rows.Scan(
			&u.ID, &u.Username, &u.KnownAs, &u.Gender, &u.DateOfBirth,
			&u.City, &u.Country, &u.Introduction, &u.LookingFor,
			&u.Interests, &u.CreatedAt, &u.PhotoURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan liked user: %w", err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating liked users: %w", err)
	}

	return users, nil
}
