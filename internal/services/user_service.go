package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/logger"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/models"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/repositories"
	"github.com/Thiago-2004/ateneo-padel-reservas/pkg/apperrors"
)

type UserService interface {
	ListUsers(db *gorm.DB) ([]models.User, error)
	PromoteToAdmin(db *gorm.DB, userID uint) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// ListUsers returns every account, newest first.
func (s *UserServiceImpl) ListUsers(db *gorm.DB) ([]models.User, error) {
	users, err := s.userRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return users, nil
}

// PromoteToAdmin grants the admin role. Promoting an admin again is a no-op
// at the database level; the caller still gets a success.
func (s *UserServiceImpl) PromoteToAdmin(db *gorm.DB, userID uint) error {
	if err := s.userRepo.PromoteToAdmin(db, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	logger.Info("user promoted to admin", "user_id", userID)
	return nil
}
