package models

import "time"

// Race is a catalog entry for a single race event. Identity is immutable,
// the descriptive fields are editable by admins.
type Race struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"not null"`
	Circuit   string    `json:"circuit" gorm:"not null"`
	Date      time.Time `json:"date" gorm:"type:date;not null"`
	Time      *string   `json:"time,omitempty"` // time-of-day like "15:00:00", optional
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Race) TableName() string {
	return "races"
}
