package models

import "time"

// Review is a user's opinion on a race: a 1-5 star rating plus a comment.
// The composite unique index on (user_id, race_id) is what makes the
// one-review-per-user-per-race rule hold under concurrent submits.
type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_race"`
	RaceID    int64     `json:"race_id" gorm:"not null;uniqueIndex:idx_reviews_user_race"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `json:"comment" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Race Race `json:"race,omitempty" gorm:"foreignKey:RaceID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
