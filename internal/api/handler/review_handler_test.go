package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"racedebrief/database"
	"racedebrief/internal/api/handler"
	"racedebrief/internal/api/models"
	"racedebrief/internal/api/repository"
	"racedebrief/internal/api/service"
	"racedebrief/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ReviewAPITestSuite spins up the full router on a throwaway sqlite
// database and drives it over HTTP, checking that the service error
// taxonomy lands on the right status codes.
type ReviewAPITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	auth   service.AuthService

	race *models.Race
}

func (s *ReviewAPITestSuite) SetupTest() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	s.db = db

	cfg := &config.Config{
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		CORSOrigins:     []string{"http://localhost:3000"},
	}

	userRepo := repository.NewUserRepository(db)
	raceRepo := repository.NewRaceRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	commentRepo := repository.NewCommentRepository(db)

	s.auth = service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	s.router = handler.NewRouter(cfg, s.auth, handler.Handlers{
		Auth:    handler.NewAuthHandler(s.auth, int64(cfg.AccessTokenTTL.Seconds())),
		Race:    handler.NewRaceHandler(service.NewRaceService(raceRepo)),
		Review:  handler.NewReviewHandler(service.NewReviewService(reviewRepo, raceRepo)),
		Comment: handler.NewCommentHandler(service.NewCommentService(commentRepo, reviewRepo)),
		Like:    handler.NewLikeHandler(service.NewLikeService(likeRepo, reviewRepo)),
		User:    handler.NewUserHandler(service.NewUserService(userRepo)),
	})

	s.race = &models.Race{
		Name:    "Monaco Grand Prix",
		Circuit: "Circuit de Monaco",
		Date:    time.Date(2024, 5, 26, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(s.race).Error)
}

// registerAndLogin creates an account through the real endpoints and
// returns a bearer token for it.
func (s *ReviewAPITestSuite) registerAndLogin(username string) string {
	t := s.T()

	w := s.request(http.MethodPost, "/api/auth/register", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.request(http.MethodPost, "/api/auth/login", gin.H{
		"email":    username + "@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func (s *ReviewAPITestSuite) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	s.T().Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ReviewAPITestSuite) reviewsPath() string {
	return fmt.Sprintf("/api/races/%d/reviews", s.race.ID)
}

func (s *ReviewAPITestSuite) TestCreateRequiresAuth() {
	w := s.request(http.MethodPost, s.reviewsPath(), gin.H{"rating": 5, "comment": "great"}, "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *ReviewAPITestSuite) TestCreateListAndAverage() {
	token := s.registerAndLogin("fan1")

	w := s.request(http.MethodPost, s.reviewsPath(), gin.H{"rating": 5, "comment": "unreal quali lap"}, token)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.request(http.MethodGet, s.reviewsPath(), nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	var reviews []map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &reviews))
	s.Len(reviews, 1)
	s.Equal("fan1", reviews[0]["username"])

	w = s.request(http.MethodGet, s.reviewsPath()+"/average", nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	var agg struct {
		Average *float64 `json:"average"`
		Count   int64    `json:"count"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &agg))
	s.Require().NotNil(agg.Average)
	s.Equal(5.0, *agg.Average)
	s.Equal(int64(1), agg.Count)
}

func (s *ReviewAPITestSuite) TestDuplicateReviewIsConflict() {
	token := s.registerAndLogin("fan1")

	w := s.request(http.MethodPost, s.reviewsPath(), gin.H{"rating": 5, "comment": "first"}, token)
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.request(http.MethodPost, s.reviewsPath(), gin.H{"rating": 1, "comment": "second"}, token)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *ReviewAPITestSuite) TestUpdateByStrangerIsForbidden() {
	author := s.registerAndLogin("author")
	stranger := s.registerAndLogin("stranger")

	w := s.request(http.MethodPost, s.reviewsPath(), gin.H{"rating": 5, "comment": "mine"}, author)
	s.Require().Equal(http.StatusCreated, w.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	w = s.request(http.MethodPut, fmt.Sprintf("/api/reviews/%d", created.ID), gin.H{"rating": 1}, stranger)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *ReviewAPITestSuite) TestMissingRaceIsNotFound() {
	w := s.request(http.MethodGet, "/api/races/99999/reviews/average", nil, "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ReviewAPITestSuite) TestInvalidRatingIsBadRequest() {
	token := s.registerAndLogin("fan1")

	// gin binding rejects the range before the service does
	w := s.request(http.MethodPost, s.reviewsPath(), gin.H{"rating": 9, "comment": "x"}, token)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ReviewAPITestSuite) TestToggleLikeRoundTrip() {
	author := s.registerAndLogin("author")
	fan := s.registerAndLogin("fan")

	w := s.request(http.MethodPost, s.reviewsPath(), gin.H{"rating": 4, "comment": "likeable"}, author)
	s.Require().Equal(http.StatusCreated, w.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	togglePath := fmt.Sprintf("/api/reviews/%d/likes/toggle", created.ID)

	w = s.request(http.MethodPost, togglePath, nil, fan)
	s.Require().Equal(http.StatusOK, w.Code)
	var status struct {
		Liked bool  `json:"liked"`
		Count int64 `json:"count"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &status))
	s.True(status.Liked)
	s.Equal(int64(1), status.Count)

	w = s.request(http.MethodPost, togglePath, nil, fan)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &status))
	s.False(status.Liked)
	s.Equal(int64(0), status.Count)
}

func (s *ReviewAPITestSuite) TestCommentRoundTrip() {
	author := s.registerAndLogin("author")
	fan := s.registerAndLogin("fan")

	w := s.request(http.MethodPost, s.reviewsPath(), gin.H{"rating": 5, "comment": "worth replying to"}, author)
	s.Require().Equal(http.StatusCreated, w.Code)
	var review struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &review))

	commentsPath := fmt.Sprintf("/api/reviews/%d/comments", review.ID)

	w = s.request(http.MethodPost, commentsPath, gin.H{"comment": "I agree, it was fantastic!"}, "")
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.request(http.MethodPost, commentsPath, gin.H{"comment": "I agree, it was fantastic!"}, fan)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	w = s.request(http.MethodGet, commentsPath, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	var comments []map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &comments))
	s.Require().Len(comments, 1)
	s.Equal("fan", comments[0]["username"])

	deletePath := fmt.Sprintf("/api/comments/%d", created.ID)

	// the review's author did not write the comment
	w = s.request(http.MethodDelete, deletePath, nil, author)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodDelete, deletePath, nil, fan)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, commentsPath, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &comments))
	s.Empty(comments)
}

func (s *ReviewAPITestSuite) TestAdminRoutesRejectPlainUsers() {
	token := s.registerAndLogin("fan1")

	w := s.request(http.MethodPost, "/api/admin/races", gin.H{
		"name":    "Las Vegas Grand Prix",
		"circuit": "Las Vegas Strip Circuit",
		"date":    "2024-11-23",
	}, token)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

func TestReviewAPITestSuite(t *testing.T) {
	suite.Run(t, new(ReviewAPITestSuite))
}
