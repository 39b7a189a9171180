package dto

import (
	"time"

	"racedebrief/internal/api/models"
)

// CreateRaceDTO for adding a race to the calendar (admin only).
// Date is calendar-date only, "2006-01-02"; Time is an optional
// time-of-day like "15:00:00".
type CreateRaceDTO struct {
	Name    string  `json:"name" binding:"required"`
	Circuit string  `json:"circuit" binding:"required"`
	Date    string  `json:"date" binding:"required,datetime=2006-01-02"`
	Time    *string `json:"time"`
}

// UpdateRaceDTO is a partial patch over the descriptive fields; race
// identity is immutable.
type UpdateRaceDTO struct {
	Name    *string `json:"name"`
	Circuit *string `json:"circuit"`
	Date    *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time    *string `json:"time"`
}

type RaceResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Circuit   string    `json:"circuit"`
	Date      string    `json:"date"`
	Time      *string   `json:"time,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToRaceResponse converts a Race model to RaceResponse DTO
func FromModelToRaceResponse(race *models.Race) *RaceResponse {
	return &RaceResponse{
		ID:        race.ID,
		Name:      race.Name,
		Circuit:   race.Circuit,
		Date:      race.Date.Format("2006-01-02"),
		Time:      race.Time,
		CreatedAt: race.CreatedAt,
		UpdatedAt: race.UpdatedAt,
	}
}
