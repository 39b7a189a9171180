package service

import (
	"testing"
	"time"

	"racedebrief/internal/api/apperr"
	"racedebrief/internal/api/models"
	"racedebrief/internal/api/repository"
	"racedebrief/internal/middleware/auth"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewAuthService(
		repository.NewUserRepository(s.db),
		repository.NewRefreshTokenRepository(s.db),
		testConfig(),
	)
}

func (s *AuthServiceTestSuite) TestRegister() {
	user, err := s.service.Register("lando", "lando@example.com", "papaya4ever")
	s.Require().NoError(err)
	s.Equal("lando", user.Username)
	s.Equal(models.RoleUser, user.Role)
	s.NotEmpty(user.ID)

	// password must be stored hashed, never verbatim
	s.NotEqual("papaya4ever", user.Password)
	s.NoError(auth.VerifyPassword(user.Password, "papaya4ever"))
}

func (s *AuthServiceTestSuite) TestRegisterDuplicates() {
	_, err := s.service.Register("lando", "lando@example.com", "papaya4ever")
	s.Require().NoError(err)

	_, err = s.service.Register("lando", "someone@example.com", "password123")
	s.ErrorIs(err, ErrNameInUse)
	s.ErrorIs(err, apperr.ErrDuplicate)

	_, err = s.service.Register("someone", "lando@example.com", "password123")
	s.ErrorIs(err, ErrEmailInUse)
	s.ErrorIs(err, apperr.ErrDuplicate)
}

func (s *AuthServiceTestSuite) TestLoginAndValidate() {
	_, err := s.service.Register("lando", "lando@example.com", "papaya4ever")
	s.Require().NoError(err)

	accessToken, refreshToken, user, err := s.service.Login("lando@example.com", "papaya4ever")
	s.Require().NoError(err)
	s.NotEmpty(accessToken)
	s.NotEmpty(refreshToken)
	s.Equal("lando", user.Username)

	claims, err := s.service.ValidateToken(accessToken)
	s.Require().NoError(err)
	s.Equal(user.ID, claims.UserID)
	s.Equal("lando", claims.Username)
	s.Equal(models.RoleUser, claims.Role)
}

func (s *AuthServiceTestSuite) TestLoginRejectsBadCredentials() {
	_, err := s.service.Register("lando", "lando@example.com", "papaya4ever")
	s.Require().NoError(err)

	_, _, _, err = s.service.Login("lando@example.com", "wrong-password")
	s.ErrorIs(err, ErrInvalidCredentials)

	_, _, _, err = s.service.Login("nobody@example.com", "papaya4ever")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestRefreshAccessToken() {
	_, err := s.service.Register("lando", "lando@example.com", "papaya4ever")
	s.Require().NoError(err)

	_, refreshToken, user, err := s.service.Login("lando@example.com", "papaya4ever")
	s.Require().NoError(err)

	newAccessToken, err := s.service.RefreshAccessToken(refreshToken)
	s.Require().NoError(err)

	claims, err := s.service.ValidateToken(newAccessToken)
	s.Require().NoError(err)
	s.Equal(user.ID, claims.UserID)
}

func (s *AuthServiceTestSuite) TestLoginStoreFailureIsNotCredentialFailure() {
	_, err := s.service.Register("lando", "lando@example.com", "papaya4ever")
	s.Require().NoError(err)

	// take the store down; the right password must now surface a store
	// error, not a 401-shaped one
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())

	_, _, _, err = s.service.Login("lando@example.com", "papaya4ever")
	s.ErrorIs(err, apperr.ErrStoreUnavailable)
	s.NotErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestRefreshExpiredTokenIsRemoved() {
	user, err := s.service.Register("lando", "lando@example.com", "papaya4ever")
	s.Require().NoError(err)

	expired := &models.RefreshToken{
		ID:        "rt-expired",
		UserID:    user.ID,
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	s.Require().NoError(s.db.Create(expired).Error)

	_, err = s.service.RefreshAccessToken("stale-token")
	s.ErrorIs(err, ErrExpiredToken)

	var count int64
	s.Require().NoError(s.db.Model(&models.RefreshToken{}).Where("id = ?", "rt-expired").Count(&count).Error)
	s.Equal(int64(0), count)
}

func (s *AuthServiceTestSuite) TestRefreshRejectsUnknownToken() {
	_, err := s.service.RefreshAccessToken("not-a-token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *AuthServiceTestSuite) TestValidateRejectsGarbage() {
	_, err := s.service.ValidateToken("garbage.token.value")
	s.ErrorIs(err, ErrInvalidToken)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
