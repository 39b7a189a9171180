package service

import (
	"testing"

	"racedebrief/internal/api/apperr"
	"racedebrief/internal/api/models"
	"racedebrief/internal/api/repository"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type LikeServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  LikeService
	likeRepo repository.LikeRepository

	author *models.User
	fan    *models.User
	review *models.Review
}

func (s *LikeServiceTestSuite) SetupTest() {
	t := s.T()
	s.db = newTestDB(t)

	s.likeRepo = repository.NewLikeRepository(s.db)
	reviewRepo := repository.NewReviewRepository(s.db)
	s.service = NewLikeService(s.likeRepo, reviewRepo)

	s.author = createTestUser(t, s.db, "author", models.RoleUser)
	s.fan = createTestUser(t, s.db, "fan", models.RoleUser)
	race := createTestRace(t, s.db, "British Grand Prix")
	s.review = createTestReview(t, s.db, s.author, race, 5, "home win")
}

func (s *LikeServiceTestSuite) identity(user *models.User) Identity {
	return Identity{UserID: user.ID, Role: user.Role}
}

// Toggle, then toggle again: Unliked -> Liked -> Unliked, with the count
// returning to its starting value.
func (s *LikeServiceTestSuite) TestToggleAlternates() {
	status, err := s.service.ToggleLike(s.review.ID, s.identity(s.fan))
	s.Require().NoError(err)
	s.True(status.Liked)
	s.Equal(int64(1), status.Count)

	status, err = s.service.ToggleLike(s.review.ID, s.identity(s.fan))
	s.Require().NoError(err)
	s.False(status.Liked)
	s.Equal(int64(0), status.Count)
}

func (s *LikeServiceTestSuite) TestToggleLeavesOtherUsersAlone() {
	_, err := s.service.ToggleLike(s.review.ID, s.identity(s.author))
	s.Require().NoError(err)

	status, err := s.service.ToggleLike(s.review.ID, s.identity(s.fan))
	s.Require().NoError(err)
	s.True(status.Liked)
	s.Equal(int64(2), status.Count)

	// fan unlikes; the author's like stays
	status, err = s.service.ToggleLike(s.review.ID, s.identity(s.fan))
	s.Require().NoError(err)
	s.False(status.Liked)
	s.Equal(int64(1), status.Count)

	liked, err := s.service.IsLiked(s.review.ID, s.author.ID)
	s.Require().NoError(err)
	s.True(liked)
}

func (s *LikeServiceTestSuite) TestToggleMissingReview() {
	_, err := s.service.ToggleLike(99999, s.identity(s.fan))
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *LikeServiceTestSuite) TestIsLikedAndCount() {
	liked, err := s.service.IsLiked(s.review.ID, s.fan.ID)
	s.Require().NoError(err)
	s.False(liked)

	count, err := s.service.CountLikes(s.review.ID)
	s.Require().NoError(err)
	s.Equal(int64(0), count)

	_, err = s.service.ToggleLike(s.review.ID, s.identity(s.fan))
	s.Require().NoError(err)

	liked, err = s.service.IsLiked(s.review.ID, s.fan.ID)
	s.Require().NoError(err)
	s.True(liked)

	count, err = s.service.CountLikes(s.review.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

// The unique (user_id, review_id) index is what stops a concurrent
// double-click from creating two rows: the second insert must come back
// as a duplicated key, which the toggle turns into its retry.
func (s *LikeServiceTestSuite) TestDoubleCreateHitsUniqueIndex() {
	err := s.likeRepo.Create(&models.Like{UserID: s.fan.ID, ReviewID: s.review.ID})
	s.Require().NoError(err)

	err = s.likeRepo.Create(&models.Like{UserID: s.fan.ID, ReviewID: s.review.ID})
	s.ErrorIs(err, gorm.ErrDuplicatedKey)

	var count int64
	s.Require().NoError(s.db.Model(&models.Like{}).
		Where("user_id = ? AND review_id = ?", s.fan.ID, s.review.ID).
		Count(&count).Error)
	s.Equal(int64(1), count)
}

// A toggle that finds a row already created by an earlier racing call
// takes the delete path instead of failing.
func (s *LikeServiceTestSuite) TestToggleDeletesRowCreatedElsewhere() {
	s.Require().NoError(s.likeRepo.Create(&models.Like{UserID: s.fan.ID, ReviewID: s.review.ID}))

	status, err := s.service.ToggleLike(s.review.ID, s.identity(s.fan))
	s.Require().NoError(err)
	s.False(status.Liked)
	s.Equal(int64(0), status.Count)
}

// contendedLikeRepo simulates a pathological neighbor: every delete
// finds no row and every create collides with one. The toggle can never
// win its race against it.
type contendedLikeRepo struct {
	creates int
	deletes int
}

func (r *contendedLikeRepo) Create(like *models.Like) error {
	r.creates++
	return gorm.ErrDuplicatedKey
}

func (r *contendedLikeRepo) DeleteByUserAndReview(userID string, reviewID int64) (bool, error) {
	r.deletes++
	return false, nil
}

func (r *contendedLikeRepo) Exists(userID string, reviewID int64) (bool, error) {
	return false, nil
}

func (r *contendedLikeRepo) CountByReview(reviewID int64) (int64, error) {
	return 0, nil
}

// When every attempt loses the race, the toggle gives up with
// ErrConflict after exactly one retry rather than spinning.
func (s *LikeServiceTestSuite) TestToggleExhaustsRetriesWithConflict() {
	repo := &contendedLikeRepo{}
	service := NewLikeService(repo, repository.NewReviewRepository(s.db))

	_, err := service.ToggleLike(s.review.ID, s.identity(s.fan))
	s.ErrorIs(err, apperr.ErrConflict)
	s.Equal(2, repo.deletes)
	s.Equal(2, repo.creates)
}

func TestLikeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LikeServiceTestSuite))
}
