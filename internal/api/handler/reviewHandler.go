package handler

import (
	"net/http"
	"strconv"

	"racedebrief/internal/api/dto"
	"racedebrief/internal/api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes registers review-related routes. Reads are public,
// writes go through the auth middleware.
func (h *ReviewHandler) RegisterRoutes(api *gin.RouterGroup, authMW gin.HandlerFunc) {
	raceReviews := api.Group("/races/:race_id/reviews")
	{
		raceReviews.GET("", h.List)               // All reviews for a race
		raceReviews.GET("/average", h.GetAverage) // Aggregate rating and count
		raceReviews.GET("/me", authMW, h.GetMine) // Current user's review, if any
		raceReviews.POST("", authMW, h.Create)
	}

	reviews := api.Group("/reviews", authMW)
	{
		reviews.PUT("/:review_id", h.Update)
		reviews.DELETE("/:review_id", h.Delete)
	}
}

// List retrieves all reviews for a race
// GET /api/races/:race_id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	raceID, err := strconv.ParseInt(c.Param("race_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid race ID"})
		return
	}

	reviews, err := h.reviewService.ListRaceReviews(raceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// GetAverage retrieves the average rating and count for a race
// GET /api/races/:race_id/reviews/average
func (h *ReviewHandler) GetAverage(c *gin.Context) {
	raceID, err := strconv.ParseInt(c.Param("race_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid race ID"})
		return
	}

	agg, err := h.reviewService.GetAggregateRating(raceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, agg)
}

// GetMine retrieves the current user's review for a race, used by the
// client to decide between the create and edit forms. 404 when the user
// has not reviewed the race yet.
// GET /api/races/:race_id/reviews/me
func (h *ReviewHandler) GetMine(c *gin.Context) {
	raceID, err := strconv.ParseInt(c.Param("race_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid race ID"})
		return
	}

	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	review, err := h.reviewService.GetUserReviewForRace(identity.UserID, raceID)
	if err != nil {
		writeError(c, err)
		return
	}
	if review == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no review for this race yet"})
		return
	}
	c.JSON(http.StatusOK, review)
}

// Create posts the current user's review for a race
// POST /api/races/:race_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	raceID, err := strconv.ParseInt(c.Param("race_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid race ID"})
		return
	}

	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.CreateReview(identity, raceID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// Update patches a review's rating/comment (author or admin only)
// PUT /api/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
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

	var patch dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.UpdateReview(reviewID, identity, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// Delete removes a review and its likes (author or admin only)
// DELETE /api/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
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

	if err := h.reviewService.DeleteReview(reviewID, identity); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
