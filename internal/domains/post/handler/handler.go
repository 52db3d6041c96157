package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"microposts-backend/internal/domains/post/model"
	"microposts-backend/internal/domains/post/service"
	"microposts-backend/internal/shared/middleware"
	"microposts-backend/internal/shared/response"
)

// =====================================================
// POST HANDLER
// =====================================================

type PostHandler struct {
	feed   service.FeedService
	writer service.WriteService
}

func NewPostHandler(feed service.FeedService, writer service.WriteService) *PostHandler {
	return &PostHandler{
		feed:   feed,
		writer: writer,
	}
}

// ListPosts returns one page of the feed
// GET /api/v1/posts?limit=&cursor=&author_id=
func (h *PostHandler) ListPosts(c *gin.Context) {
	// Step 1: Bind query
	var query model.ListPostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	req, err := query.ToPageRequest()
	if err != nil {
		RespondError(c, err)
		return
	}

	// Step 2: Call service
	page, err := h.feed.ListPage(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	// Step 3: Return page
	response.SuccessWithMeta(c, http.StatusOK, page.Items, &response.Meta{
		Limit:      len(page.Items),
		NextCursor: page.NextCursor,
	})
}

// GetPost returns one post with its author
// GET /api/v1/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	item, err := h.feed.GetSingle(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}

// CreatePost appends a post for the authenticated user
// POST /api/v1/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	// Step 1: Get user ID from token
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	// Step 2: Bind request body
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 3: Call service (validation happens there, before admission)
	post, err := h.writer.CreatePost(c.Request.Context(), userID, req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, post)
}

// =====================================================
// ERROR MAPPING
// =====================================================

// ValidationDetails is the error.details payload of a validation failure
type ValidationDetails struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// RespondError writes err using the shared envelope
func RespondError(c *gin.Context, err error) {
	var postErr *model.PostError
	if !errors.As(err, &postErr) {
		response.InternalServerError(c, "Internal server error")
		return
	}

	status := mapPostError(postErr)
	switch {
	case postErr.Code == model.ErrCodeValidationFailed:
		response.ErrorWithDetails(c, status, postErr.Code, postErr.Message, ValidationDetails{
			Field:  postErr.Field,
			Reason: postErr.Reason,
		})
	case status >= http.StatusInternalServerError:
		// Collaborator details stay in the logs
		response.ErrorResponse(c, status, postErr.Code, http.StatusText(status))
	default:
		response.ErrorResponse(c, status, postErr.Code, postErr.Message)
	}
}

func mapPostError(err *model.PostError) int {
	switch err.Code {
	case model.ErrCodeValidationFailed, model.ErrCodeInvalidCursor, model.ErrCodeInvalidLimit:
		return http.StatusBadRequest
	case model.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case model.ErrCodePostNotFound:
		return http.StatusNotFound
	case model.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case model.ErrCodeAuthorMissing:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
