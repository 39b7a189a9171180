package repository

import (
	"racedebrief/internal/api/models"

	"gorm.io/gorm"
)

// RatingAggregate is the raw AVG/COUNT pair for one race, straight from
// the store. The service layer decides how to present an empty set.
type RatingAggregate struct {
	Average float64
	Count   int64
}

type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	GetByID(id int64) (*models.Review, error)
	GetByRace(raceID int64) ([]models.Review, error)
	GetByUserAndRace(userID string, raceID int64) (*models.Review, error)
	Aggregate(raceID int64) (*RatingAggregate, error)
	DeleteCascade(id int64) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a new review. The unique (user_id, race_id) index makes
// this the atomic duplicate check: a second review for the same pair
// comes back as gorm.ErrDuplicatedKey, even under concurrent submits.
func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) GetByID(id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.Preload("User").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByRace retrieves all reviews for a race in insertion order.
// Review volume per race is low, a full scan is fine.
func (r *reviewRepository) GetByRace(raceID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("race_id = ?", raceID).
		Preload("User").
		Order("id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetByUserAndRace retrieves a user's review for a specific race
func (r *reviewRepository) GetByUserAndRace(userID string, raceID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("user_id = ? AND race_id = ?", userID, raceID).
		Preload("User").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Aggregate computes AVG(rating) and COUNT(*) for a race in one query,
// freshly on every call.
func (r *reviewRepository) Aggregate(raceID int64) (*RatingAggregate, error) {
	var agg RatingAggregate
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as count").
		Where("race_id = ?", raceID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// DeleteCascade removes a review and every like and comment referencing
// it in a single transaction.
func (r *reviewRepository) DeleteCascade(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("review_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Review{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
