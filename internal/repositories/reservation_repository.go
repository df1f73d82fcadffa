package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/models"
)

var ErrReservationNotFound = errors.New("reservation not found")

// DefaultListLimit caps the unbounded reservation list. It bounds payload
// size; it is not a pagination protocol.
const DefaultListLimit = 200

type ReservationRepository interface {
	FindByID(db *gorm.DB, id uint) (*models.Reservation, error)
	Create(db *gorm.DB, reservation *models.Reservation) error
	Save(db *gorm.DB, reservation *models.Reservation) error

	// FindBlocking looks up an active reservation in a blocking payment
	// state occupying the exact (court, date, startTime) slot. excludeID
	// skips one reservation id (the row being edited); pass 0 for none.
	// Returns (nil, nil) when the slot is free.
	FindBlocking(db *gorm.DB, court int, date, startTime string, excludeID uint) (*models.Reservation, error)

	UpdatePaymentStatus(db *gorm.DB, id uint, status models.PaymentStatus) error
	Cancel(db *gorm.DB, id uint) error

	FindByDateRange(db *gorm.DB, dateFrom, dateTo string) ([]models.Reservation, error)
	FindRecent(db *gorm.DB, limit int) ([]models.Reservation, error)
	FindPendingPayments(db *gorm.DB) ([]models.Reservation, error)
}

type ReservationRepositoryImpl struct{}

func NewReservationRepository() ReservationRepository {
	return &ReservationRepositoryImpl{}
}

func (r *ReservationRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := db.First(&reservation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *ReservationRepositoryImpl) Create(db *gorm.DB, reservation *models.Reservation) error {
	return db.Create(reservation).Error
}

func (r *ReservationRepositoryImpl) Save(db *gorm.DB, reservation *models.Reservation) error {
	return db.Save(reservation).Error
}

func (r *ReservationRepositoryImpl) FindBlocking(db *gorm.DB, court int, date, startTime string, excludeID uint) (*models.Reservation, error) {
	// Matching is on the exact start time only. Two reservations that
	// overlap in time but start at different minutes do not conflict here;
	// that is the documented slot model, not an oversight.
	query := db.Where(
		"court = ? AND date = ? AND start_time = ? AND status = ? AND payment_status IN ?",
		court, date, startTime,
		models.ReservationStatusActive,
		[]models.PaymentStatus{
			models.PaymentStatusPending,
			models.PaymentStatusReported,
			models.PaymentStatusApproved,
		},
	)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var reservation models.Reservation
	err := query.First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *ReservationRepositoryImpl) UpdatePaymentStatus(db *gorm.DB, id uint, status models.PaymentStatus) error {
	result := db.Model(&models.Reservation{}).Where("id = ?", id).Updates(map[string]interface{}{
		"payment_status":     status,
		"payment_updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepositoryImpl) Cancel(db *gorm.DB, id uint) error {
	result := db.Model(&models.Reservation{}).Where("id = ?", id).
		Update("status", models.ReservationStatusCancelled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepositoryImpl) FindByDateRange(db *gorm.DB, dateFrom, dateTo string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := db.Where("date BETWEEN ? AND ?", dateFrom, dateTo).
		Order("date ASC, start_time ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *ReservationRepositoryImpl) FindRecent(db *gorm.DB, limit int) ([]models.Reservation, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var reservations []models.Reservation
	err := db.Order("date DESC, start_time ASC").
		Limit(limit).
		Find(&reservations).Error
	return reservations, err
}

func (r *ReservationRepositoryImpl) FindPendingPayments(db *gorm.DB) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := db.Where(
		"status = ? AND payment_status IN ?",
		models.ReservationStatusActive,
		[]models.PaymentStatus{models.PaymentStatusPending, models.PaymentStatusReported},
	).
		Order("date ASC, start_time ASC").
		Find(&reservations).Error
	return reservations, err
}
