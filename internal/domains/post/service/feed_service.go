package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"microposts-backend/internal/config"
	"microposts-backend/internal/domains/post/model"
	"microposts-backend/internal/domains/post/repository"
	profileRepo "microposts-backend/internal/domains/profile/repository"
)

type feedService struct {
	posts        repository.PostRepository
	directory    profileRepo.Directory
	defaultLimit int
	maxLimit     int
}

func NewFeedService(posts repository.PostRepository, directory profileRepo.Directory, cfg config.FeedConfig) FeedService {
	return &feedService{
		posts:        posts,
		directory:    directory,
		defaultLimit: cfg.DefaultLimit,
		maxLimit:     cfg.MaxLimit,
	}
}

// ListPage fetches limit+1 posts to learn whether a next page exists
// without a count query. The cursor handed back is the id of the last post
// on this page, so the following request resumes strictly after it.
func (s *feedService) ListPage(ctx context.Context, req model.PageRequest) (*model.PageResult, error) {
	limit, err := s.resolveLimit(req.Limit)
	if err != nil {
		return nil, err
	}

	params := model.ListParams{Limit: limit + 1}

	if cursor := strings.TrimSpace(req.Cursor); cursor != "" {
		id, err := uuid.Parse(cursor)
		if err != nil {
			return nil, model.NewInvalidCursorError()
		}
		params.Cursor = &id
	}
	if authorID := strings.TrimSpace(req.AuthorID); authorID != "" {
		params.AuthorID = &authorID
	}

	posts, err := s.posts.List(ctx, params)
	if err != nil {
		return nil, model.NewUnavailableError("list posts", err)
	}

	result := &model.PageResult{}
	if len(posts) > limit {
		posts = posts[:limit]
		next := posts[limit-1].ID.String()
		result.NextCursor = &next
	}

	items, err := attachAuthors(ctx, s.directory, posts)
	if err != nil {
		return nil, err
	}
	result.Items = items

	return result, nil
}

// GetSingle treats a malformed id like an unknown one
func (s *feedService) GetSingle(ctx context.Context, postID string) (*model.PostWithAuthor, error) {
	id, err := uuid.Parse(strings.TrimSpace(postID))
	if err != nil {
		return nil, model.NewPostNotFoundError()
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return nil, model.NewPostNotFoundError()
		}
		return nil, model.NewUnavailableError("get post", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError()
	}

	items, err := attachAuthors(ctx, s.directory, []*model.Post{post})
	if err != nil {
		return nil, err
	}

	return &items[0], nil
}

func (s *feedService) ListByAuthor(ctx context.Context, authorID string, limit int) ([]model.PostWithAuthor, error) {
	authorID = strings.TrimSpace(authorID)
	if authorID == "" {
		return nil, model.NewValidationError("author_id", model.ReasonMissing, "Author id is required")
	}

	var requested *int
	if limit != 0 {
		requested = &limit
	}
	resolved, err := s.resolveLimit(requested)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.List(ctx, model.ListParams{
		AuthorID: &authorID,
		Limit:    resolved,
	})
	if err != nil {
		return nil, model.NewUnavailableError("list author posts", err)
	}

	return attachAuthors(ctx, s.directory, posts)
}

func (s *feedService) resolveLimit(limit *int) (int, error) {
	if limit == nil {
		return s.defaultLimit, nil
	}
	if *limit < 1 || *limit > s.maxLimit {
		return 0, model.NewInvalidLimitError(fmt.Sprintf("limit must be between 1 and %d", s.maxLimit))
	}
	return *limit, nil
}
