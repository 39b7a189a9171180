package service

import (
	"errors"
	"fmt"
	"time"

	"racedebrief/internal/api/apperr"
	"racedebrief/internal/api/dto"
	"racedebrief/internal/api/models"
	"racedebrief/internal/api/repository"

	"gorm.io/gorm"
)

type RaceService interface {
	ListRaces() ([]dto.RaceResponse, error)
	GetRace(raceID int64) (*dto.RaceResponse, error)
	CreateRace(req dto.CreateRaceDTO) (*dto.RaceResponse, error)
	UpdateRace(raceID int64, patch dto.UpdateRaceDTO) (*dto.RaceResponse, error)
	DeleteRace(raceID int64) error
}

type raceService struct {
	raceRepo repository.RaceRepository
}

func NewRaceService(raceRepo repository.RaceRepository) RaceService {
	return &raceService{raceRepo: raceRepo}
}

func (s *raceService) ListRaces() ([]dto.RaceResponse, error) {
	races, err := s.raceRepo.GetAll()
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	responses := make([]dto.RaceResponse, 0, len(races))
	for _, race := range races {
		responses = append(responses, *dto.FromModelToRaceResponse(&race))
	}
	return responses, nil
}

func (s *raceService) GetRace(raceID int64) (*dto.RaceResponse, error) {
	race, err := s.raceRepo.GetByID(raceID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return dto.FromModelToRaceResponse(race), nil
}

func (s *raceService) CreateRace(req dto.CreateRaceDTO) (*dto.RaceResponse, error) {
	date, err := parseRaceDate(req.Date)
	if err != nil {
		return nil, err
	}

	race := &models.Race{
		Name:    req.Name,
		Circuit: req.Circuit,
		Date:    date,
		Time:    req.Time,
	}
	if err := s.raceRepo.Create(race); err != nil {
		return nil, apperr.FromStore(err)
	}
	return dto.FromModelToRaceResponse(race), nil
}

// UpdateRace patches the descriptive fields only; a race keeps its
// identity for the lifetime of its reviews.
func (s *raceService) UpdateRace(raceID int64, patch dto.UpdateRaceDTO) (*dto.RaceResponse, error) {
	race, err := s.raceRepo.GetByID(raceID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	if patch.Name != nil {
		race.Name = *patch.Name
	}
	if patch.Circuit != nil {
		race.Circuit = *patch.Circuit
	}
	if patch.Date != nil {
		date, err := parseRaceDate(*patch.Date)
		if err != nil {
			return nil, err
		}
		race.Date = date
	}
	if patch.Time != nil {
		race.Time = patch.Time
	}

	if err := s.raceRepo.Update(race); err != nil {
		return nil, apperr.FromStore(err)
	}
	return dto.FromModelToRaceResponse(race), nil
}

// DeleteRace removes the race, its reviews and their likes transactionally.
func (s *raceService) DeleteRace(raceID int64) error {
	if err := s.raceRepo.DeleteCascade(raceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: race %d", apperr.ErrNotFound, raceID)
		}
		return apperr.FromStore(err)
	}
	return nil
}

func parseRaceDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", apperr.ErrValidation)
	}
	return date, nil
}
