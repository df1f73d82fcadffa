package models

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusReported PaymentStatus = "reported"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// IsBlocking reports whether a reservation in this payment state occupies
// its slot against other bookings. Rejected payments free the slot.
func (p PaymentStatus) IsBlocking() bool {
	switch p {
	case PaymentStatusPending, PaymentStatusReported, PaymentStatusApproved:
		return true
	default:
		return false
	}
}
