package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/auth"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/config"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/logger"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/models"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/repositories"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/services/dto"
	"github.com/Thiago-2004/ateneo-padel-reservas/pkg/apperrors"
)

type ReservationService interface {
	Create(db *gorm.DB, actor *auth.Claims, req *dto.CreateReservationRequest) (*models.Reservation, error)
	GetByID(db *gorm.DB, actor *auth.Claims, id uint) (*models.Reservation, error)
	List(db *gorm.DB, q *dto.ListReservationsQuery) ([]models.Reservation, error)
	ReportPayment(db *gorm.DB, actor *auth.Claims, id uint) (*models.Reservation, error)
	Cancel(db *gorm.DB, actor *auth.Claims, id uint) error

	AdminUpdate(db *gorm.DB, id uint, req *dto.UpdateReservationRequest) (*models.Reservation, error)
	ApprovePayment(db *gorm.DB, id uint) (*models.Reservation, error)
	RejectPayment(db *gorm.DB, id uint) (*models.Reservation, error)
	PendingPayments(db *gorm.DB) ([]models.Reservation, error)
}

type ReservationServiceImpl struct {
	reservationRepo repositories.ReservationRepository
}

func NewReservationService(reservationRepo repositories.ReservationRepository) ReservationService {
	return &ReservationServiceImpl{reservationRepo: reservationRepo}
}

// Create books a slot for the actor. The conflict check and the insert run in
// one transaction so two concurrent requests for the same slot cannot both
// pass the check.
//
// Admin bookings skip the payment flow entirely: no deposit, approved on
// creation.
func (s *ReservationServiceImpl) Create(db *gorm.DB, actor *auth.Claims, req *dto.CreateReservationRequest) (*models.Reservation, error) {
	cfg := config.GetConfig()

	reservation := &models.Reservation{
		UserID:      actor.UserID,
		UserName:    actor.Name,
		UserEmail:   actor.Email,
		Court:       req.Court,
		Date:        req.Date,
		StartTime:   req.StartTime,
		DurationMin: req.DurationMin,
		Status:      models.ReservationStatusActive,
		Notes:       req.Notes,
	}

	if actor.Role == string(models.UserRoleAdmin) {
		reservation.PaymentStatus = models.PaymentStatusApproved
		reservation.DepositAmount = 0
	} else {
		reservation.PaymentStatus = models.PaymentStatusPending
		reservation.DepositAmount = cfg.Reservations.DepositAmount
	}
	reservation.PaymentUpdatedAt = time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		blocking, err := s.reservationRepo.FindBlocking(tx, req.Court, req.Date, req.StartTime, 0)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if blocking != nil {
			return apperrors.ErrSlotTaken
		}
		if err := s.reservationRepo.Create(tx, reservation); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("reservation created",
		"reservation_id", reservation.ID,
		"user_id", actor.UserID,
		"court", req.Court,
		"date", req.Date,
		"start_time", req.StartTime,
		"payment_status", reservation.PaymentStatus,
	)
	return reservation, nil
}

// GetByID returns a reservation to its owner or to an admin.
func (s *ReservationServiceImpl) GetByID(db *gorm.DB, actor *auth.Claims, id uint) (*models.Reservation, error) {
	reservation, err := s.loadReservation(db, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(actor, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// List returns reservations in a date range, or the most recent ones when no
// range is given. Everything is visible to any authenticated user; the court
// calendar is shared.
func (s *ReservationServiceImpl) List(db *gorm.DB, q *dto.ListReservationsQuery) ([]models.Reservation, error) {
	if q.DateFrom != "" && q.DateTo != "" {
		reservations, err := s.reservationRepo.FindByDateRange(db, q.DateFrom, q.DateTo)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		return reservations, nil
	}

	reservations, err := s.reservationRepo.FindRecent(db, repositories.DefaultListLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reservations, nil
}

// ReportPayment is the user saying "I transferred the deposit". Idempotent on
// an already approved payment; a rejected payment is terminal and cannot be
// re-reported.
func (s *ReservationServiceImpl) ReportPayment(db *gorm.DB, actor *auth.Claims, id uint) (*models.Reservation, error) {
	reservation, err := s.loadReservation(db, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(actor, reservation); err != nil {
		return nil, err
	}

	if reservation.Status != models.ReservationStatusActive {
		return nil, apperrors.ErrReservationCancelled
	}

	switch reservation.PaymentStatus {
	case models.PaymentStatusApproved:
		return reservation, nil
	case models.PaymentStatusRejected:
		return nil, apperrors.ErrPaymentRejected
	}

	if err := s.reservationRepo.UpdatePaymentStatus(db, id, models.PaymentStatusReported); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("payment reported", "reservation_id", id, "user_id", actor.UserID)
	return s.loadReservation(db, id)
}

// Cancel frees the slot. One-way and unconditional: any payment state can be
// cancelled, and cancelling an already cancelled reservation succeeds.
func (s *ReservationServiceImpl) Cancel(db *gorm.DB, actor *auth.Claims, id uint) error {
	reservation, err := s.loadReservation(db, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(actor, reservation); err != nil {
		return err
	}

	if reservation.Status == models.ReservationStatusCancelled {
		return nil
	}

	if err := s.reservationRepo.Cancel(db, id); err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("reservation cancelled", "reservation_id", id, "user_id", actor.UserID)
	return nil
}

// AdminUpdate is the admin edit. Only provided fields change. When the slot
// triple (court, date, start_time) moves, the conflict check re-runs against
// every other reservation inside the same transaction as the write.
func (s *ReservationServiceImpl) AdminUpdate(db *gorm.DB, id uint, req *dto.UpdateReservationRequest) (*models.Reservation, error) {
	var updated *models.Reservation

	err := db.Transaction(func(tx *gorm.DB) error {
		reservation, err := s.loadReservation(tx, id)
		if err != nil {
			return err
		}

		slotChanged := false
		if req.Court != nil && *req.Court != reservation.Court {
			reservation.Court = *req.Court
			slotChanged = true
		}
		if req.Date != nil && *req.Date != reservation.Date {
			reservation.Date = *req.Date
			slotChanged = true
		}
		if req.StartTime != nil && *req.StartTime != reservation.StartTime {
			reservation.StartTime = *req.StartTime
			slotChanged = true
		}
		if req.DurationMin != nil {
			reservation.DurationMin = *req.DurationMin
		}
		if req.Notes != nil {
			reservation.Notes = *req.Notes
		}
		if req.Status != nil {
			reservation.Status = models.ReservationStatus(*req.Status)
		}
		if req.PaymentStatus != nil {
			reservation.PaymentStatus = models.PaymentStatus(*req.PaymentStatus)
		}
		if req.PaymentNote != nil {
			reservation.PaymentNote = *req.PaymentNote
		}
		reservation.PaymentUpdatedAt = time.Now()

		// Any slot move re-runs the conflict check, even when the edited
		// row itself is cancelled or rejected.
		if slotChanged {
			blocking, err := s.reservationRepo.FindBlocking(
				tx, reservation.Court, reservation.Date, reservation.StartTime, reservation.ID)
			if err != nil {
				return apperrors.InternalError(err)
			}
			if blocking != nil {
				return apperrors.ErrSlotTaken
			}
		}

		if err := s.reservationRepo.Save(tx, reservation); err != nil {
			return apperrors.InternalError(err)
		}
		updated = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("reservation updated by admin", "reservation_id", id)
	return updated, nil
}

// ApprovePayment confirms the deposit arrived. Terminal: the slot stays
// occupied until the reservation is cancelled.
func (s *ReservationServiceImpl) ApprovePayment(db *gorm.DB, id uint) (*models.Reservation, error) {
	return s.settlePayment(db, id, models.PaymentStatusApproved)
}

// RejectPayment marks the deposit as not received. Terminal for the payment,
// and the reservation stops occupying its slot.
func (s *ReservationServiceImpl) RejectPayment(db *gorm.DB, id uint) (*models.Reservation, error) {
	return s.settlePayment(db, id, models.PaymentStatusRejected)
}

func (s *ReservationServiceImpl) settlePayment(db *gorm.DB, id uint, status models.PaymentStatus) (*models.Reservation, error) {
	reservation, err := s.loadReservation(db, id)
	if err != nil {
		return nil, err
	}

	if reservation.Status != models.ReservationStatusActive {
		return nil, apperrors.ErrReservationCancelled
	}

	if err := s.reservationRepo.UpdatePaymentStatus(db, id, status); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("payment settled", "reservation_id", id, "payment_status", status)
	return s.loadReservation(db, id)
}

// PendingPayments is the admin review queue: active reservations whose
// deposit is pending or reported, oldest slot first.
func (s *ReservationServiceImpl) PendingPayments(db *gorm.DB) ([]models.Reservation, error) {
	reservations, err := s.reservationRepo.FindPendingPayments(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reservations, nil
}

func (s *ReservationServiceImpl) loadReservation(db *gorm.DB, id uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrReservationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return reservation, nil
}

func requireOwnerOrAdmin(actor *auth.Claims, reservation *models.Reservation) error {
	if actor.Role == string(models.UserRoleAdmin) || reservation.UserID == actor.UserID {
		return nil
	}
	return apperrors.ErrNotReservationOwner
}
