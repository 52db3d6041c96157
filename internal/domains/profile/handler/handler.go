package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	postHandler "microposts-backend/internal/domains/post/handler"
	postModel "microposts-backend/internal/domains/post/model"
	postService "microposts-backend/internal/domains/post/service"
	"microposts-backend/internal/domains/profile/model"
	"microposts-backend/internal/domains/profile/service"
	"microposts-backend/internal/shared/response"
)

type ProfileHandler struct {
	profiles service.ProfileService
	feed     postService.FeedService
}

func NewProfileHandler(profiles service.ProfileService, feed postService.FeedService) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		feed:     feed,
	}
}

// GetProfile returns the public projection of a user
// GET /api/v1/profiles/:username
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	author, err := h.profiles.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, author)
}

// ListProfilePosts resolves the username, then lists that author's posts
// GET /api/v1/profiles/:username/posts?limit=
func (h *ProfileHandler) ListProfilePosts(c *gin.Context) {
	limit, err := postModel.ParseLimit(c.Query("limit"))
	if err != nil {
		postHandler.RespondError(c, err)
		return
	}

	author, err := h.profiles.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	requested := 0
	if limit != nil {
		if *limit == 0 {
			postHandler.RespondError(c, postModel.NewInvalidLimitError("limit must be positive"))
			return
		}
		requested = *limit
	}

	items, err := h.feed.ListByAuthor(c.Request.Context(), author.ID, requested)
	if err != nil {
		postHandler.RespondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

func respondProfileError(c *gin.Context, err error) {
	var profileErr *model.ProfileError
	if !errors.As(err, &profileErr) {
		response.InternalServerError(c, "Internal server error")
		return
	}

	switch profileErr.Code {
	case model.ErrCodeProfileNotFound:
		response.ErrorResponse(c, http.StatusNotFound, profileErr.Code, profileErr.Message)
	case model.ErrCodeUnavailable:
		response.ErrorResponse(c, http.StatusServiceUnavailable, profileErr.Code, http.StatusText(http.StatusServiceUnavailable))
	default:
		response.InternalServerError(c, "Internal server error")
	}
}
