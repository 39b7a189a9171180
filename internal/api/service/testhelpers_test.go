package service

import (
	"path/filepath"
	"testing"
	"time"

	"racedebrief/database"
	"racedebrief/internal/api/models"
	"racedebrief/internal/config"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a throwaway sqlite database with the real schema.
// TranslateError matters: the duplicate-review and double-like tests
// depend on constraint violations surfacing as gorm.ErrDuplicatedKey.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestRace(t *testing.T, db *gorm.DB, name string) *models.Race {
	t.Helper()

	race := &models.Race{
		Name:    name,
		Circuit: name + " Circuit",
		Date:    time.Date(2024, 5, 26, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(race).Error)
	return race
}

func createTestReview(t *testing.T, db *gorm.DB, user *models.User, race *models.Race, rating int, comment string) *models.Review {
	t.Helper()

	review := &models.Review{
		UserID:  user.ID,
		RaceID:  race.ID,
		Rating:  rating,
		Comment: comment,
	}
	require.NoError(t, db.Create(review).Error)
	return review
}
