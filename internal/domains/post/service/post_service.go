package service

import (
	"context"
	"strings"

	"microposts-backend/internal/domains/post/model"
	"microposts-backend/internal/domains/post/repository"
	"microposts-backend/internal/domains/ratelimit"
	"microposts-backend/pkg/logger"
)

type postWriteService struct {
	posts   repository.PostRepository
	limiter ratelimit.Limiter
}

func NewPostWriteService(posts repository.PostRepository, limiter ratelimit.Limiter) WriteService {
	return &postWriteService{
		posts:   posts,
		limiter: limiter,
	}
}

// CreatePost runs validation, admission and the append strictly in that
// order. Invalid content never reaches the limiter and a denied write never
// reaches the store.
func (s *postWriteService) CreatePost(ctx context.Context, authorID, content string) (*model.Post, error) {
	authorID = strings.TrimSpace(authorID)
	if authorID == "" {
		return nil, model.NewValidationError("author_id", model.ReasonMissing, "Author id is required")
	}

	// 1. Validate content
	if err := model.ValidateContent(content); err != nil {
		return nil, err
	}

	// 2. Admission control
	allowed, err := s.limiter.TryConsume(ctx, authorID)
	if err != nil {
		return nil, model.NewUnavailableError("check post rate limit", err)
	}
	if !allowed {
		logger.Info("Post write rate limited", map[string]interface{}{
			"author_id": authorID,
		})
		return nil, model.NewRateLimitedError()
	}

	// 3. Append
	post, err := s.posts.Create(ctx, authorID, content)
	if err != nil {
		return nil, model.NewUnavailableError("create post", err)
	}

	logger.Info("Post created", map[string]interface{}{
		"post_id":   post.ID.String(),
		"author_id": authorID,
	})

	return post, nil
}
