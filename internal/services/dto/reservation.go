package dto

import "github.com/Thiago-2004/ateneo-padel-reservas/internal/models"

type CreateReservationRequest struct {
	Court       int    `json:"court" validate:"required,min=1,max=2"`
	Date        string `json:"date" validate:"required,res-date"`
	StartTime   string `json:"start_time" validate:"required,res-time"`
	DurationMin int    `json:"duration_min" validate:"required,oneof=60 90 120"`
	Notes       string `json:"notes" validate:"max=200"`
}

// UpdateReservationRequest is the admin edit. Nil fields keep their stored
// value; when the slot triple (court, date, start_time) changes the conflict
// check re-runs against all other reservations before anything is written.
type UpdateReservationRequest struct {
	Court         *int    `json:"court" validate:"omitempty,min=1,max=2"`
	Date          *string `json:"date" validate:"omitempty,res-date"`
	StartTime     *string `json:"start_time" validate:"omitempty,res-time"`
	DurationMin   *int    `json:"duration_min" validate:"omitempty,oneof=60 90 120"`
	Notes         *string `json:"notes" validate:"omitempty,max=200"`
	Status        *string `json:"status" validate:"omitempty,is-reservation-status"`
	PaymentStatus *string `json:"payment_status" validate:"omitempty,is-payment-status"`
	PaymentNote   *string `json:"payment_note" validate:"omitempty,max=200"`
}

type ListReservationsQuery struct {
	DateFrom string `form:"dateFrom" validate:"omitempty,res-date"`
	DateTo   string `form:"dateTo" validate:"omitempty,res-date"`
}

// CreateReservationResponse mirrors the created row plus the derived fields
// the client renders on the payment screen.
type CreateReservationResponse struct {
	OK            bool                 `json:"ok"`
	ReservationID uint                 `json:"reservationId"`
	DepositAmount int                  `json:"deposit_amount"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	Reservation   *models.Reservation  `json:"reservation"`
}
