package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"microposts-backend/internal/domains/post/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresPostRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postgresPostRepository{pool: pool}
}

const postColumns = `id, author_id, content, created_at`

// =====================================================
// CREATE
// =====================================================

// Create relies on column defaults: gen_random_uuid() for id and
// clock_timestamp() for created_at, so concurrent inserts in one
// transaction batch still get distinct timestamps.
func (r *postgresPostRepository) Create(ctx context.Context, authorID, content string) (*model.Post, error) {
	query := `
		INSERT INTO posts (author_id, content)
		VALUES ($1, $2)
		RETURNING ` + postColumns

	post, err := scanPost(r.pool.QueryRow(ctx, query, authorID, content))
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// =====================================================
// LIST (KEYSET PAGINATION)
// =====================================================

func (r *postgresPostRepository) List(ctx context.Context, params model.ListParams) ([]*model.Post, error) {
	query, args := buildListQuery(params)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*model.Post, 0, params.Limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// buildListQuery renders the range query. The cursor row is looked up in a
// subquery; when it does not exist the row comparison is NULL and the page
// is empty instead of restarting from the top.
func buildListQuery(params model.ListParams) (string, []interface{}) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE 1=1`

	args := []interface{}{}
	argCount := 1

	if params.AuthorID != nil {
		query += fmt.Sprintf(" AND author_id = $%d", argCount)
		args = append(args, *params.AuthorID)
		argCount++
	}

	if params.Cursor != nil {
		query += fmt.Sprintf(
			" AND (created_at, id) < (SELECT c.created_at, c.id FROM posts c WHERE c.id = $%d)",
			argCount,
		)
		args = append(args, *params.Cursor)
		argCount++
	}

	query += " ORDER BY created_at DESC, id DESC"
	query += fmt.Sprintf(" LIMIT $%d", argCount)
	args = append(args, params.Limit)

	return query, args
}

func scanPost(row pgx.Row) (*model.Post, error) {
	post := &model.Post{}
	if err := row.Scan(&post.ID, &post.AuthorID, &post.Content, &post.CreatedAt); err != nil {
		return nil, err
	}
	return post, nil
}
