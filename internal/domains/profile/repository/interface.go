package repository

import (
	"context"

	"microposts-backend/internal/domains/profile/model"
)

// =====================================================
// IDENTITY DIRECTORY INTERFACE
// =====================================================

// Directory resolves directory user ids and usernames to author projections
type Directory interface {
	// GetBatchByIDs returns the projections found for ids, in no particular
	// order. Unknown ids are simply absent from the result.
	GetBatchByIDs(ctx context.Context, ids []string) ([]*model.Author, error)

	// GetByUsername returns model.ErrUserNotFound when no user has username
	GetByUsername(ctx context.Context, username string) (*model.Author, error)
}
