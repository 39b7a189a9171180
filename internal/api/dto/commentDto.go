package dto

import (
	"time"

	"racedebrief/internal/api/models"
)

// CreateCommentDTO for replying to a review
type CreateCommentDTO struct {
	Comment string `json:"comment" binding:"required"`
}

// CommentResponse carries the author's username like ReviewResponse does.
type CommentResponse struct {
	ID        int64     `json:"id"`
	ReviewID  int64     `json:"review_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		ReviewID:  comment.ReviewID,
		UserID:    comment.UserID,
		Username:  comment.User.Username,
		Comment:   comment.Comment,
		CreatedAt: comment.CreatedAt,
	}
}
