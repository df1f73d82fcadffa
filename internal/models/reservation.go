package models

import "time"

// Reservation is one booked slot on one of the two courts.
//
// UserName and UserEmail are snapshots taken at creation time. They stay as
// written even if the owner later changes their profile; past reservations
// keep the data they were booked with.
//
// Date and StartTime are stored as validated strings ("2006-01-02", "15:04").
// Exact string equality defines the slot identity and lexicographic order is
// chronological order, which is what the list queries sort on.
type Reservation struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	UserName  string `gorm:"not null" json:"user_name"`
	UserEmail string `gorm:"not null" json:"user_email"`

	Court       int    `gorm:"not null;index:idx_reservations_slot" json:"court"`
	Date        string `gorm:"not null;index:idx_reservations_slot" json:"date"`
	StartTime   string `gorm:"not null;index:idx_reservations_slot" json:"start_time"`
	DurationMin int    `gorm:"not null" json:"duration_min"`

	Status ReservationStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Notes  string            `json:"notes"`

	PaymentStatus    PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	DepositAmount    int           `gorm:"not null;default:0" json:"deposit_amount"`
	PaymentNote      string        `gorm:"not null;default:''" json:"payment_note"`
	PaymentUpdatedAt time.Time     `json:"payment_updated_at"`

	CreatedAt time.Time `json:"created_at"`
}

// IsBlocking reports whether this reservation occupies its slot.
func (r *Reservation) IsBlocking() bool {
	return r.Status == ReservationStatusActive && r.PaymentStatus.IsBlocking()
}
