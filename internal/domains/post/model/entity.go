package model

import (
	"time"

	"github.com/google/uuid"

	profileModel "microposts-backend/internal/domains/profile/model"
)

// Post is an append-only micro-post. ID and CreatedAt are assigned by the
// store; AuthorID references the identity directory and is never owned here.
type Post struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PostWithAuthor is a post joined with the author projection resolved for it
type PostWithAuthor struct {
	Post   Post                `json:"post"`
	Author profileModel.Author `json:"author"`
}

// ListParams is the range query handed to the post store: at most Limit
// posts ordered by created_at DESC, id DESC, strictly after Cursor.
type ListParams struct {
	AuthorID *string
	Cursor   *uuid.UUID
	Limit    int
}
