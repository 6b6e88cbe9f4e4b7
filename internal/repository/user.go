package repository

import (
	"context"
	"errors"
	"fmt"

	"dating-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, known_as, gender, date_of_birth, city, country,
		introduction, looking_for, interests, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.KnownAs, &user.Gender, &user.DateOfBirth,
		&user.City, &user.Country, &user.Introduction, &user.LookingFor,
		&user.Interests, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

// List retrieves all users together with their main photo URL, if any
func (r *UserRepository) List(ctx context.Context) ([]*models.UserWithPhoto, error) {
	query := `
		SELECT u.id, u.username, u.known_as, u.gender, u.date_of_birth, u.city,
			u.country, u.introduction, u.looking_for, u.interests, u.created_at,
			COALESCE(p.url, '')
		FROM users u
		LEFT JOIN photos p ON p.owner_id = u.id AND p.is_main
		ORDER BY u.id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
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
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// UpdateProfile updates the editable profile fields of a user
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, p *models.ProfileUpdate) error {
	query := `
		UPDATE users
		SET introduction = $1, looking_for = $2, interests = $3, city = $4, country = $5
		WHERE id = $6
	`
	result, err := r.db.Exec(ctx, query,
		p.Introduction, p.LookingFor, p.Interests, p.City, p.Country, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
