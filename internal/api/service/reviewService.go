package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"racedebrief/internal/api/apperr"
	"racedebrief/internal/api/dto"
	"racedebrief/internal/api/models"
	"racedebrief/internal/api/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	ListRaceReviews(raceID int64) ([]dto.ReviewResponse, error)
	GetAggregateRating(raceID int64) (*dto.AggregateRatingResponse, error)
	CreateReview(identity Identity, raceID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	UpdateReview(reviewID int64, identity Identity, patch dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	DeleteReview(reviewID int64, identity Identity) error
	GetUserReviewForRace(userID string, raceID int64) (*dto.ReviewResponse, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	raceRepo   repository.RaceRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, raceRepo repository.RaceRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		raceRepo:   raceRepo,
	}
}

// ListRaceReviews retrieves all reviews for a race in insertion order,
// denormalized with the author's username.
func (s *reviewService) ListRaceReviews(raceID int64) ([]dto.ReviewResponse, error) {
	if err := s.requireRace(raceID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.GetByRace(raceID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&review))
	}
	return responses, nil
}

// GetAggregateRating computes the mean rating and review count for a
// race, freshly on every call. Average is nil when there are no reviews
// so an empty set never turns into a bogus 0.0.
func (s *reviewService) GetAggregateRating(raceID int64) (*dto.AggregateRatingResponse, error) {
	if err := s.requireRace(raceID); err != nil {
		return nil, err
	}

	agg, err := s.reviewRepo.Aggregate(raceID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	resp := &dto.AggregateRatingResponse{Count: agg.Count}
	if agg.Count > 0 {
		// one decimal for display
		avg := math.Round(agg.Average*10) / 10
		resp.Average = &avg
	}
	return resp, nil
}

// CreateReview persists a user's first review for a race. The duplicate
// check is not check-then-act: the insert itself hits the unique
// (user_id, race_id) index, so two concurrent submits cannot both win.
func (s *reviewService) CreateReview(identity Identity, raceID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Comment) == "" {
		return nil, fmt.Errorf("%w: comment must not be empty", apperr.ErrValidation)
	}
	if err := s.requireRace(raceID); err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:  identity.UserID,
		RaceID:  raceID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: you have already reviewed this race", apperr.ErrDuplicate)
		}
		return nil, apperr.FromStore(err)
	}

	// Reload with the author association for the response
	review, err := s.reviewRepo.GetByID(review.ID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return dto.FromModelToReviewResponse(review), nil
}

// UpdateReview applies a partial patch to rating/comment. Only the
// author or an admin may mutate a review.
func (s *reviewService) UpdateReview(reviewID int64, identity Identity, patch dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	if err := authorizeOwner(review.UserID, identity); err != nil {
		return nil, err
	}

	if patch.Rating != nil {
		if err := validateRating(*patch.Rating); err != nil {
			return nil, err
		}
		review.Rating = *patch.Rating
	}
	if patch.Comment != nil {
		if strings.TrimSpace(*patch.Comment) == "" {
			return nil, fmt.Errorf("%w: comment must not be empty", apperr.ErrValidation)
		}
		review.Comment = *patch.Comment
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, apperr.FromStore(err)
	}

	review, err = s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return dto.FromModelToReviewResponse(review), nil
}

// DeleteReview removes a review and cascades its likes. Same
// authorization rule as UpdateReview.
func (s *reviewService) DeleteReview(reviewID int64, identity Identity) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return apperr.FromStore(err)
	}

	if err := authorizeOwner(review.UserID, identity); err != nil {
		return err
	}

	return apperr.FromStore(s.reviewRepo.DeleteCascade(reviewID))
}

// GetUserReviewForRace returns the user's review for a race, or nil when
// they have not reviewed it yet. Clients use this to pick between the
// create and edit forms.
func (s *reviewService) GetUserReviewForRace(userID string, raceID int64) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByUserAndRace(userID, raceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.FromStore(err)
	}
	return dto.FromModelToReviewResponse(review), nil
}

// requireRace maps a missing race onto ErrNotFound before any review
// operation touches it.
func (s *reviewService) requireRace(raceID int64) error {
	if _, err := s.raceRepo.GetByID(raceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: race %d", apperr.ErrNotFound, raceID)
		}
		return apperr.FromStore(err)
	}
	return nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", apperr.ErrValidation)
	}
	return nil
}

// authorizeOwner enforces the author-or-admin mutation rule shared by
// review updates and deletes.
func authorizeOwner(ownerID string, identity Identity) error {
	if identity.UserID != ownerID && !identity.IsAdmin() {
		return fmt.Errorf("%w: you don't have permission to modify this review", apperr.ErrForbidden)
	}
	return nil
}
