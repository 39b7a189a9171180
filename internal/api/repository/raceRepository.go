package repository

import (
	"racedebrief/internal/api/models"

	"gorm.io/gorm"
)

type RaceRepository interface {
	Create(race *models.Race) error
	Update(race *models.Race) error
	GetByID(id int64) (*models.Race, error)
	GetAll() ([]models.Race, error)
	DeleteCascade(id int64) error
}

type raceRepository struct {
	db *gorm.DB
}

func NewRaceRepository(db *gorm.DB) RaceRepository {
	return &raceRepository{db: db}
}

func (r *raceRepository) Create(race *models.Race) error {
	return r.db.Create(race).Error
}

func (r *raceRepository) Update(race *models.Race) error {
	return r.db.Save(race).Error
}

func (r *raceRepository) GetByID(id int64) (*models.Race, error) {
	var race models.Race
	if err := r.db.First(&race, id).Error; err != nil {
		return nil, err
	}
	return &race, nil
}

// GetAll retrieves the full calendar in date order. The catalog is small
// (a season is ~24 races) so no pagination.
func (r *raceRepository) GetAll() ([]models.Race, error) {
	var races []models.Race
	if err := r.db.Order("date ASC").Find(&races).Error; err != nil {
		return nil, err
	}
	return races, nil
}

// DeleteCascade removes a race, its reviews and the likes and comments
// on those reviews in a single transaction.
func (r *raceRepository) DeleteCascade(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var reviewIDs []int64
		if err := tx.Model(&models.Review{}).Where("race_id = ?", id).Pluck("id", &reviewIDs).Error; err != nil {
			return err
		}
		if len(reviewIDs) > 0 {
			if err := tx.Where("review_id IN ?", reviewIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("review_id IN ?", reviewIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("race_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Race{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
