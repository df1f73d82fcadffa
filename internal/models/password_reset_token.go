package models

import "time"

// PasswordResetToken stores only the SHA-256 hash of the secret that was
// mailed out; the raw secret is never persisted. A token is usable while
// UsedAt is nil and ExpiresAt is in the future. Issuing a new token stamps
// UsedAt on the user's previous unused ones.
type PasswordResetToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	TokenHash string     `gorm:"not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}
