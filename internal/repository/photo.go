package repository

import (
	"context"
	"errors"
	"fmt"

	"dating-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PhotoRepository handles database operations for photos
type PhotoRepository struct {
	db *pgxpool.Pool
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Create inserts a photo record and fills in its generated ID and main flag.
// The photo becomes main when the owner has no other photos; the check runs
// inside the insert statement and the partial unique index on
// (owner_id) WHERE is_main rejects a second concurrent winner.
func (r *PhotoRepository) Create(ctx context.Context, photo *models.Photo) error {
	query := `
		INSERT INTO photos (owner_id, key, url, is_main, created_at)
		VALUES ($1, $2, $3,
			NOT EXISTS (SELECT 1 FROM photos WHERE owner_id = $1),
			$4)
		RETURNING id, is_main
	`
	err := r.db.QueryRow(ctx, query,
		photo.OwnerID, photo.Key, photo.URL, photo.CreatedAt,
	).Scan(&photo.ID, &photo.IsMain)
	if err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}
	return nil
}

// GetByIDForOwner retrieves a photo only if it belongs to the given owner.
func (r *PhotoRepository) GetByIDForOwner(ctx context.Context, photoID, ownerID int64) (*models.Photo, error) {
	query := `
		SELECT id, owner_id, key, url, is_main, created_at
		FROM photos
		WHERE id = $1 AND owner_id = $2
	`
	var photo models.Photo
	err := r.db.QueryRow(ctx, query, photoID, ownerID).Scan(
		&photo.ID, &photo.OwnerID, &photo.Key, &photo.URL,
		&photo.IsMain, &photo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return &photo, nil
}

// ListByOwner retrieves all photos owned by the user.
func (r *PhotoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Photo, error) {
	query := `
		SELECT id, owner_id, key, url, is_main, created_at
		FROM photos
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	var photos []*models.Photo
	for rows.Next() {
		var photo models.Photo
		err := rows.Scan(
			&photo.ID, &photo.OwnerID, &photo.Key, &photo.URL,
			&photo.IsMain, &photo.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, &photo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photos: %w", err)
	}

	return photos, nil
}

// SetMain makes the given photo the owner's main photo. The current main is
// unset and the target set in a single transaction, so the owner can never be
// observed with two main photos; a crash rolls both steps back. Setting the
// current main again is a no-op that succeeds.
func (r *PhotoRepository) SetMain(ctx context.Context, photoID, ownerID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the target row first; also verifies ownership.
	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT TRUE FROM photos WHERE id = $1 AND owner_id = $2 FOR UPDATE`,
		photoID, ownerID,
	).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to lock photo: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE photos SET is_main = FALSE WHERE owner_id = $1 AND is_main`,
		ownerID,
	); err != nil {
		return fmt.Errorf("failed to unset main photo: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE photos SET is_main = TRUE WHERE id = $1`,
		photoID,
	); err != nil {
		return fmt.Errorf("failed to set main photo: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit main photo change: %w", err)
	}

	return nil
}

// Delete removes a photo record owned by the user. A deleted main photo is
// not replaced; the owner may be left without a main photo.
func (r *PhotoRepository) Delete(ctx context.Context, photoID, ownerID int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM photos WHERE id = $1 AND owner_id = $2`,
		photoID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
