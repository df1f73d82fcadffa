package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(db *gorm.DB, id uint) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	UpdatePassword(db *gorm.DB, userID uint, passwordHash string) error
	PromoteToAdmin(db *gorm.DB, userID uint) error
	FindAll(db *gorm.DB) ([]models.User, error)
	CountAdmins(db *gorm.DB) (int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return db.Create(user).Error
}

func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, userID uint, passwordHash string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) PromoteToAdmin(db *gorm.DB, userID uint) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).
		Update("role", models.UserRoleAdmin)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindAll(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Order("id DESC").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountAdmins(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&count).Error
	return count, err
}
