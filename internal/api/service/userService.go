package service

import (
	"errors"
	"fmt"

	"racedebrief/internal/api/apperr"
	"racedebrief/internal/api/dto"
	"racedebrief/internal/api/repository"
	"racedebrief/internal/middleware/auth"

	"gorm.io/gorm"
)

type UserService interface {
	ListUsers() ([]dto.UserResponse, error)
	GetUser(id string) (*dto.UserResponse, error)
	UpdateUser(id string, identity Identity, patch dto.UpdateUserDTO) (*dto.UserResponse, error)
	DeleteUser(id string, identity Identity) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers() ([]dto.UserResponse, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, *dto.FromModelToUserResponse(&user))
	}
	return responses, nil
}

func (s *userService) GetUser(id string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return dto.FromModelToUserResponse(user), nil
}

// UpdateUser patches the whitelisted account fields. Users may edit
// their own profile, admins may edit anyone; role changes are admin-only
// either way.
func (s *userService) UpdateUser(id string, identity Identity, patch dto.UpdateUserDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	if identity.UserID != id && !identity.IsAdmin() {
		return nil, fmt.Errorf("%w: you don't have permission to modify this account", apperr.ErrForbidden)
	}
	if patch.Role != nil && !identity.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can change roles", apperr.ErrForbidden)
	}

	if patch.Username != nil && *patch.Username != user.Username {
		if _, err := s.userRepo.FindByUsername(*patch.Username); err == nil {
			return nil, ErrNameInUse
		}
		user.Username = *patch.Username
	}
	if patch.Email != nil && *patch.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(*patch.Email); err == nil {
			return nil, ErrEmailInUse
		}
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		hashed, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperr.FromStore(err)
	}
	return dto.FromModelToUserResponse(user), nil
}

// DeleteUser removes an account and everything that belongs to it
// (reviews, likes both placed and received, refresh tokens). Admin only.
func (s *userService) DeleteUser(id string, identity Identity) error {
	if !identity.IsAdmin() {
		return fmt.Errorf("%w: only admins can delete accounts", apperr.ErrForbidden)
	}

	if err := s.userRepo.DeleteCascade(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %s", apperr.ErrNotFound, id)
		}
		return apperr.FromStore(err)
	}
	return nil
}
