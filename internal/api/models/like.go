package models

import "time"

// Like is a bare (user, review) relation: created on first like, hard
// deleted on unlike. Like count is row count, "has X liked Y" is an
// existence query. The unique pair index stops concurrent double-likes.
type Like struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_review"`
	ReviewID  int64     `json:"review_id" gorm:"not null;uniqueIndex:idx_likes_user_review"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Review Review `json:"review,omitempty" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (Like) TableName() string {
	return "likes"
}
