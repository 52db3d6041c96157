package service

import (
	"context"

	"microposts-backend/internal/domains/post/model"
)

// =====================================================
// FEED SERVICE INTERFACE
// =====================================================

// FeedService assembles author-enriched reads over the post store
type FeedService interface {
	// ListPage returns one page of the feed, newest first, plus the cursor
	// of the next page when more posts exist.
	ListPage(ctx context.Context, req model.PageRequest) (*model.PageResult, error)

	// GetSingle returns one post joined with its author
	GetSingle(ctx context.Context, postID string) (*model.PostWithAuthor, error)

	// ListByAuthor returns the newest posts of one author. A zero limit
	// means the configured default.
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]model.PostWithAuthor, error)
}

// =====================================================
// WRITE SERVICE INTERFACE
// =====================================================

type WriteService interface {
	// CreatePost validates content, consumes one unit of the author's
	// admission quota and appends the post. The result is not enriched.
	CreatePost(ctx context.Context, authorID, content string) (*model.Post, error)
}
