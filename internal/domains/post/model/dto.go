package model

import (
	"strconv"
	"strings"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreatePostRequest request to create a post
type CreatePostRequest struct {
	Content string `json:"content"`
}

// PageRequest asks for one page of the feed. A nil Limit means the
// configured default; Cursor is the id of the last post already seen.
type PageRequest struct {
	Limit    *int
	Cursor   string
	AuthorID string
}

// ListPostsQuery binds the query string of GET /posts
type ListPostsQuery struct {
	Limit    string `form:"limit"`
	Cursor   string `form:"cursor"`
	AuthorID string `form:"author_id"`
}

// ToPageRequest parses the raw query. Only a non-integer limit is rejected
// here; range checks belong to the feed service.
func (q ListPostsQuery) ToPageRequest() (PageRequest, error) {
	req := PageRequest{
		Cursor:   strings.TrimSpace(q.Cursor),
		AuthorID: strings.TrimSpace(q.AuthorID),
	}

	limit, err := ParseLimit(q.Limit)
	if err != nil {
		return PageRequest{}, err
	}
	req.Limit = limit

	return req, nil
}

// ParseLimit converts an optional limit query value. Empty means omitted.
func ParseLimit(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return nil, NewInvalidLimitError("limit must be an integer")
	}
	return &limit, nil
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// PageResult is one page of the feed. NextCursor is nil at the end of the feed.
type PageResult struct {
	Items      []PostWithAuthor `json:"items"`
	NextCursor *string          `json:"next_cursor,omitempty"`
}
