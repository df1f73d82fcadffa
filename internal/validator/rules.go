package validator

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/models"
)

// registerCustomRules installs the domain validation tags. Registration
// failures abort startup; a missing rule would silently skip validation.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'res-date': calendar day, YYYY-MM-DD
	mustRegister("res-date", validateReservationDate)

	// 'res-time': start time, HH:MM
	mustRegister("res-time", validateReservationTime)

	// status enums from statuses.go
	mustRegister("is-reservation-status", validateReservationStatus)
	mustRegister("is-payment-status", validatePaymentStatus)
}

func validateReservationDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empty values
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func validateReservationTime(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

func validateReservationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ReservationStatus(value) {
	case models.ReservationStatusActive, models.ReservationStatusCancelled:
		return true
	default:
		return false
	}
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PaymentStatus(value) {
	case models.PaymentStatusPending, models.PaymentStatusReported,
		models.PaymentStatusApproved, models.PaymentStatusRejected:
		return true
	default:
		return false
	}
}
