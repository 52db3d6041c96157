package repository

import (
	"context"

	"github.com/google/uuid"

	"microposts-backend/internal/domains/post/model"
)

// =====================================================
// POST REPOSITORY INTERFACE
// =====================================================

type PostRepository interface {
	// Create appends a post. The store assigns id and created_at.
	Create(ctx context.Context, authorID, content string) (*model.Post, error)

	// FindByID returns model.ErrPostNotFound when the post does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)

	// List returns at most params.Limit posts ordered by created_at DESC,
	// id DESC, strictly after params.Cursor when set. A cursor that does
	// not exist yields an empty slice.
	List(ctx context.Context, params model.ListParams) ([]*model.Post, error)
}
