package handler

import (
	"net/http"
	"strconv"

	"racedebrief/internal/api/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// RegisterRoutes registers like-related routes under a review
func (h *LikeHandler) RegisterRoutes(api *gin.RouterGroup, authMW gin.HandlerFunc) {
	likes := api.Group("/reviews/:review_id/likes")
	{
		likes.GET("/count", h.Count)            // Public like count
		likes.GET("/me", authMW, h.GetMine)     // Has the current user liked this review
		likes.POST("/toggle", authMW, h.Toggle) // Flip like state
	}
}

// Count returns the number of likes on a review
// GET /api/reviews/:review_id/likes/count
func (h *LikeHandler) Count(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	count, err := h.likeService.CountLikes(reviewID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetMine reports whether the current user has liked a review, plus the count
// GET /api/reviews/:review_id/likes/me
func (h *LikeHandler) GetMine(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	liked, err := h.likeService.IsLiked(reviewID, identity.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	count, err := h.likeService.CountLikes(reviewID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "count": count})
}

// Toggle flips the current user's like on a review
// POST /api/reviews/:review_id/likes/toggle
func (h *LikeHandler) Toggle(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	status, err := h.likeService.ToggleLike(reviewID, identity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
