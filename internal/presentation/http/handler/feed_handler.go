package handler

import (
	"net/http"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/service"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/request"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/response"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// FeedHandler serves the community feed
type FeedHandler struct {
	feedService *service.FeedService
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// List returns the newest posts, optionally filtered by ?tag=
func (h *FeedHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.feedService.ListPosts(c.Request.Context(), &params, c.Query("tag"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Posts retrieved successfully", result)
}

// Create publishes a post as the caller
func (h *FeedHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	post, err := h.feedService.CreatePost(c.Request.Context(), *userID, &service.PostInput{
		Content:  req.Content,
		ImageURL: req.Image,
		Tags:     req.Tags,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Post published successfully", post)
}

// Like adds a like to a post
func (h *FeedHandler) Like(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.feedService.LikePost(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Post liked", post)
}
