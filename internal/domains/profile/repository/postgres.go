package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"microposts-backend/internal/domains/profile/model"
)

// =====================================================
// POSTGRES DIRECTORY IMPLEMENTATION
// =====================================================

// postgresDirectory reads the users table that the identity provider syncs
// into the database. The service never writes to it.
type postgresDirectory struct {
	pool *pgxpool.Pool
}

func NewPostgresDirectory(pool *pgxpool.Pool) Directory {
	return &postgresDirectory{pool: pool}
}

// =====================================================
// BATCH LOOKUP
// =====================================================

func (r *postgresDirectory) GetBatchByIDs(ctx context.Context, ids []string) ([]*model.Author, error) {
	if len(ids) == 0 {
		return []*model.Author{}, nil
	}

	query := `
		SELECT id, username, profile_image_url
		FROM users
		WHERE id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	authors := make([]*model.Author, 0, len(ids))
	for rows.Next() {
		author, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return authors, nil
}

// =====================================================
// GET BY USERNAME
// =====================================================

func (r *postgresDirectory) GetByUsername(ctx context.Context, username string) (*model.Author, error) {
	query := `
		SELECT id, username, profile_image_url
		FROM users
		WHERE username = $1
	`

	author, err := scanAuthor(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return author, nil
}

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var (
		author   model.Author
		username *string
		imageURL *string
	)

	if err := row.Scan(&author.ID, &username, &imageURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	if username != nil {
		author.Username = *username
	}
	if imageURL != nil {
		author.ProfileImageURL = *imageURL
	}

	return &author, nil
}
