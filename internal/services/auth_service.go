package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/auth"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/config"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/email"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/logger"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/models"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/repositories"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/services/dto"
	"github.com/Thiago-2004/ateneo-padel-reservas/pkg/apperrors"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(db *gorm.DB, userID uint) (*models.User, error)
	ForgotPassword(db *gorm.DB, req *dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error)
	ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error
}

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.PasswordResetTokenRepository
	sender    email.Sender
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.PasswordResetTokenRepository,
	sender email.Sender,
) AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		sender:    sender,
	}
}

func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleUser,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return s.issueToken(user)
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	logger.Info("user logged in", "user_id", user.ID)
	return s.issueToken(user)
}

func (s *AuthServiceImpl) Me(db *gorm.DB, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// ForgotPassword issues a single-use reset token. The response is identical
// whether or not the email exists, so the endpoint cannot be used to probe
// for accounts. Only the sha256 of the token is stored; issuing a new token
// invalidates any previous unused ones.
func (s *AuthServiceImpl) ForgotPassword(db *gorm.DB, req *dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error) {
	cfg := config.GetConfig()

	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.Info("password reset requested for unknown email")
			return &dto.ForgotPasswordResponse{OK: true}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, apperrors.InternalError(err)
	}
	rawToken := hex.EncodeToString(raw)

	ttl := time.Duration(cfg.Reset.TTLMinutes) * time.Minute
	token := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hashResetToken(rawToken),
		ExpiresAt: time.Now().Add(ttl),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.tokenRepo.InvalidateForUser(tx, user.ID); err != nil {
			return err
		}
		return s.tokenRepo.Create(tx, token)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resetLink := fmt.Sprintf("%s/reset?token=%s", cfg.FrontendURL, rawToken)

	if !s.sender.Enabled() {
		// No mail transport configured. Hand the link back so development
		// setups can complete the flow without SMTP.
		logger.Warn("mail transport not configured, returning reset link in response", "user_id", user.ID)
		return &dto.ForgotPasswordResponse{OK: true, DevResetLink: resetLink}, nil
	}

	if err := s.sender.SendPasswordReset(user.Email, user.Name, resetLink, ttl); err != nil {
		// Best effort. Surfacing the failure would leak account existence.
		logger.Error("failed to send password reset email", "user_id", user.ID, "error", err)
	}

	return &dto.ForgotPasswordResponse{OK: true}, nil
}

func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error {
	token, err := s.tokenRepo.FindByHash(db, hashResetToken(req.Token))
	if err != nil {
		if errors.Is(err, repositories.ErrResetTokenNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.InternalError(err)
	}

	if token.UsedAt != nil {
		return apperrors.ErrResetTokenUsed
	}
	if time.Now().After(token.ExpiresAt) {
		return apperrors.ErrResetTokenExpired
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdatePassword(tx, token.UserID, hash); err != nil {
			return err
		}
		return s.tokenRepo.MarkUsed(tx, token.ID)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("password reset completed", "user_id", token.UserID)
	return nil
}

func (s *AuthServiceImpl) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, string(user.Role), user.Email, user.Name)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{Token: token, User: user}, nil
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
