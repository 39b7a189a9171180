package repository

import (
	"racedebrief/internal/api/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(like *models.Like) error
	DeleteByUserAndReview(userID string, reviewID int64) (bool, error)
	Exists(userID string, reviewID int64) (bool, error)
	CountByReview(reviewID int64) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts a like row. The unique (user_id, review_id) index turns
// a concurrent double-like into gorm.ErrDuplicatedKey for the caller.
func (r *likeRepository) Create(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteByUserAndReview hard-deletes the like row for the pair and
// reports whether a row actually went away. Zero rows is not an error
// here; the toggle uses it to detect a lost race.
func (r *likeRepository) DeleteByUserAndReview(userID string, reviewID int64) (bool, error) {
	result := r.db.Where("user_id = ? AND review_id = ?", userID, reviewID).Delete(&models.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists answers "has this user liked this review" as a row-existence query.
func (r *likeRepository) Exists(userID string, reviewID int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByReview counts likes for a review. Like count is row count
// because unlike is a hard delete, never a flag.
func (r *likeRepository) CountByReview(reviewID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("review_id = ?", reviewID).Count(&count).Error
	return count, err
}
