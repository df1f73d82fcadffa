package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/models"
)

var ErrResetTokenNotFound = errors.New("password reset token not found")

type PasswordResetTokenRepository interface {
	Create(db *gorm.DB, token *models.PasswordResetToken) error
	FindByHash(db *gorm.DB, tokenHash string) (*models.PasswordResetToken, error)

	// InvalidateForUser stamps used_at on the user's unused tokens so that
	// only the most recently issued token is authoritative.
	InvalidateForUser(db *gorm.DB, userID uint) error

	MarkUsed(db *gorm.DB, id uint) error

	// DeleteExpired reclaims tokens that expired without being used.
	DeleteExpired(db *gorm.DB) (int64, error)
}

type PasswordResetTokenRepositoryImpl struct{}

func NewPasswordResetTokenRepository() PasswordResetTokenRepository {
	return &PasswordResetTokenRepositoryImpl{}
}

func (r *PasswordResetTokenRepositoryImpl) Create(db *gorm.DB, token *models.PasswordResetToken) error {
	return db.Create(token).Error
}

func (r *PasswordResetTokenRepositoryImpl) FindByHash(db *gorm.DB, tokenHash string) (*models.PasswordResetToken, error) {
	var token models.PasswordResetToken
	err := db.First(&token, "token_hash = ?", tokenHash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *PasswordResetTokenRepositoryImpl) InvalidateForUser(db *gorm.DB, userID uint) error {
	return db.Model(&models.PasswordResetToken{}).
		Where("user_id = ? AND used_at IS NULL", userID).
		Update("used_at", time.Now()).Error
}

func (r *PasswordResetTokenRepositoryImpl) MarkUsed(db *gorm.DB, id uint) error {
	result := db.Model(&models.PasswordResetToken{}).Where("id = ?", id).
		Update("used_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResetTokenNotFound
	}
	return nil
}

func (r *PasswordResetTokenRepositoryImpl) DeleteExpired(db *gorm.DB) (int64, error) {
	result := db.Where("used_at IS NULL AND expires_at < ?", time.Now()).
		Delete(&models.PasswordResetToken{})
	return result.RowsAffected, result.Error
}
