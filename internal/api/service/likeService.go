package service

import (
	"errors"
	"fmt"

	"racedebrief/internal/api/apperr"
	"racedebrief/internal/api/dto"
	"racedebrief/internal/api/models"
	"racedebrief/internal/api/repository"

	"gorm.io/gorm"
)

// toggleAttempts: a toggle that loses a race against a concurrent call
// from the same user is retried once before surfacing ErrConflict.
const toggleAttempts = 2

type LikeService interface {
	IsLiked(reviewID int64, userID string) (bool, error)
	CountLikes(reviewID int64) (int64, error)
	ToggleLike(reviewID int64, identity Identity) (*dto.LikeStatusResponse, error)
}

type likeService struct {
	likeRepo   repository.LikeRepository
	reviewRepo repository.ReviewRepository
}

func NewLikeService(likeRepo repository.LikeRepository, reviewRepo repository.ReviewRepository) LikeService {
	return &likeService{
		likeRepo:   likeRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *likeService) IsLiked(reviewID int64, userID string) (bool, error) {
	if err := s.requireReview(reviewID); err != nil {
		return false, err
	}
	liked, err := s.likeRepo.Exists(userID, reviewID)
	if err != nil {
		return false, apperr.FromStore(err)
	}
	return liked, nil
}

func (s *likeService) CountLikes(reviewID int64) (int64, error) {
	if err := s.requireReview(reviewID); err != nil {
		return 0, err
	}
	count, err := s.likeRepo.CountByReview(reviewID)
	if err != nil {
		return 0, apperr.FromStore(err)
	}
	return count, nil
}

// ToggleLike flips the like state for (user, review): delete the row if
// it exists, create it otherwise. Per pair the states are just
// Unliked/Liked, so each call alternates between them.
//
// Concurrency: the delete reports whether it actually removed a row, and
// the create runs into the unique (user_id, review_id) index. Either way
// a lost race is detected, retried once, then surfaced as ErrConflict —
// two simultaneous toggles can never leave two rows behind.
func (s *likeService) ToggleLike(reviewID int64, identity Identity) (*dto.LikeStatusResponse, error) {
	if err := s.requireReview(reviewID); err != nil {
		return nil, err
	}

	liked, err := s.toggle(reviewID, identity.UserID)
	if err != nil {
		return nil, err
	}

	count, err := s.likeRepo.CountByReview(reviewID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return &dto.LikeStatusResponse{Liked: liked, Count: count}, nil
}

func (s *likeService) toggle(reviewID int64, userID string) (bool, error) {
	for attempt := 0; attempt < toggleAttempts; attempt++ {
		deleted, err := s.likeRepo.DeleteByUserAndReview(userID, reviewID)
		if err != nil {
			return false, apperr.FromStore(err)
		}
		if deleted {
			return false, nil
		}

		err = s.likeRepo.Create(&models.Like{UserID: userID, ReviewID: reviewID})
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, apperr.FromStore(err)
		}
		// a concurrent call created the row between our delete and
		// create; loop once more and take the delete path
	}
	return false, fmt.Errorf("%w: like toggled concurrently, try again", apperr.ErrConflict)
}

func (s *likeService) requireReview(reviewID int64) error {
	if _, err := s.reviewRepo.GetByID(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: review %d", apperr.ErrNotFound, reviewID)
		}
		return apperr.FromStore(err)
	}
	return nil
}
