package service

import (
	"errors"
	"fmt"
	"strings"

	"racedebrief/internal/api/apperr"
	"racedebrief/internal/api/dto"
	"racedebrief/internal/api/models"
	"racedebrief/internal/api/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	ListReviewComments(reviewID int64) ([]dto.CommentResponse, error)
	CreateComment(identity Identity, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	DeleteComment(commentID int64, identity Identity) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// ListReviewComments retrieves all comments on a review in insertion
// order, denormalized with the author's username.
func (s *commentService) ListReviewComments(reviewID int64) ([]dto.CommentResponse, error) {
	if err := s.requireReview(reviewID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetByReview(reviewID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comment))
	}
	return responses, nil
}

// CreateComment posts a reply on a review. There is no one-per-user
// rule here: repeat comments are fine.
func (s *commentService) CreateComment(identity Identity, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if strings.TrimSpace(req.Comment) == "" {
		return nil, fmt.Errorf("%w: comment must not be empty", apperr.ErrValidation)
	}
	if err := s.requireReview(reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID:   identity.UserID,
		ReviewID: reviewID,
		Comment:  req.Comment,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, apperr.FromStore(err)
	}

	// Reload with the author association for the response
	comment, err := s.commentRepo.GetByID(comment.ID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return dto.FromModelToCommentResponse(comment), nil
}

// DeleteComment removes a comment. Only the author or an admin may
// delete one.
func (s *commentService) DeleteComment(commentID int64, identity Identity) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return apperr.FromStore(err)
	}

	if comment.UserID != identity.UserID && !identity.IsAdmin() {
		return fmt.Errorf("%w: you don't have permission to delete this comment", apperr.ErrForbidden)
	}

	return apperr.FromStore(s.commentRepo.Delete(commentID))
}

// requireReview maps a missing review onto ErrNotFound before any
// comment operation touches it.
func (s *commentService) requireReview(reviewID int64) error {
	if _, err := s.reviewRepo.GetByID(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: review %d", apperr.ErrNotFound, reviewID)
		}
		return apperr.FromStore(err)
	}
	return nil
}
