package database

import (
	"log/slog"
	"time"

	"racedebrief/internal/api/models"
	"racedebrief/internal/middleware/auth"

	"gorm.io/gorm"
)

// Seed populates an empty database with the 2024 season calendar and a
// pair of demo accounts. It is a no-op when any table already has rows.
func Seed(db *gorm.DB, logger *slog.Logger) error {
	var userCount, raceCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Race{}).Count(&raceCount).Error; err != nil {
		return err
	}
	if userCount > 0 || raceCount > 0 {
		logger.Info("Database already seeded, skipping")
		return nil
	}

	users := make([]models.User, 0, 2)
	for _, u := range []struct{ username, email, password string }{
		{"user1", "user1@example.com", "password1"},
		{"user2", "user2@example.com", "password2"},
	} {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return err
		}
		users = append(users, models.User{
			Username: u.username,
			Email:    u.email,
			Password: hash,
			Role:     models.RoleUser,
		})
	}

	races := []models.Race{
		{Name: "Bahrain Grand Prix", Circuit: "Bahrain International Circuit", Date: date(2024, 3, 3), Time: timeOfDay("15:00:00")},
		{Name: "Saudi Arabian Grand Prix", Circuit: "Jeddah Corniche Circuit", Date: date(2024, 3, 17), Time: timeOfDay("17:00:00")},
		{Name: "Australian Grand Prix", Circuit: "Albert Park Circuit", Date: date(2024, 3, 24), Time: timeOfDay("04:00:00")},
		{Name: "Japanese Grand Prix", Circuit: "Suzuka Circuit", Date: date(2024, 4, 7), Time: timeOfDay("06:00:00")},
		{Name: "Chinese Grand Prix", Circuit: "Shanghai International Circuit", Date: date(2024, 4, 21), Time: timeOfDay("14:00:00")},
		{Name: "Miami Grand Prix", Circuit: "Miami International Autodrome", Date: date(2024, 5, 5), Time: timeOfDay("15:30:00")},
		{Name: "Emilia Romagna Grand Prix", Circuit: "Imola Circuit", Date: date(2024, 5, 19), Time: timeOfDay("15:00:00")},
		{Name: "Monaco Grand Prix", Circuit: "Circuit de Monaco", Date: date(2024, 5, 26), Time: timeOfDay("15:00:00")},
		{Name: "Canadian Grand Prix", Circuit: "Circuit Gilles Villeneuve", Date: date(2024, 6, 9), Time: timeOfDay("14:00:00")},
		{Name: "Austrian Grand Prix", Circuit: "Red Bull Ring", Date: date(2024, 6, 23), Time: timeOfDay("15:00:00")},
		{Name: "British Grand Prix", Circuit: "Silverstone Circuit", Date: date(2024, 7, 7), Time: timeOfDay("15:00:00")},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&users).Error; err != nil {
			return err
		}
		if err := tx.Create(&races).Error; err != nil {
			return err
		}

		reviews := []models.Review{
			{UserID: users[0].ID, RaceID: races[0].ID, Rating: 5, Comment: "Great race!"},
			{UserID: users[1].ID, RaceID: races[1].ID, Rating: 4, Comment: "Exciting race!"},
		}
		if err := tx.Create(&reviews).Error; err != nil {
			return err
		}

		comments := []models.Comment{
			{UserID: users[1].ID, ReviewID: reviews[0].ID, Comment: "I agree, it was fantastic!"},
			{UserID: users[0].ID, ReviewID: reviews[1].ID, Comment: "It was good, but could be better."},
		}
		if err := tx.Create(&comments).Error; err != nil {
			return err
		}

		logger.Info("Seed data inserted", "users", len(users), "races", len(races), "reviews", len(reviews), "comments", len(comments))
		return nil
	})
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func timeOfDay(s string) *string {
	return &s
}
