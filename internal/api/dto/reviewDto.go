package dto

import (
	"time"

	"racedebrief/internal/api/models"
)

// CreateReviewDTO for posting a first review on a race
type CreateReviewDTO struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// UpdateReviewDTO is a partial patch: only rating and comment are
// mutable, and only the fields present in the request are touched.
type UpdateReviewDTO struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

// ReviewResponse carries the author's username so clients never have to
// join user lists themselves.
type ReviewResponse struct {
	ID        int64     `json:"id"`
	RaceID    int64     `json:"race_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        review.ID,
		RaceID:    review.RaceID,
		UserID:    review.UserID,
		Username:  review.User.Username,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

// AggregateRatingResponse: Average is nil when the race has no reviews
// yet, so clients can tell "unrated" apart from "rated zero-ish".
type AggregateRatingResponse struct {
	Average *float64 `json:"average"`
	Count   int64    `json:"count"`
}
