package model

import "time"

// VerificationRecord is a single pending email-verification attempt. At most
// one record may be live per email, enforced by purge-then-insert on issuance
type VerificationRecord struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	Email     string `gorm:"index"`
	UserID    string
	Otp       int
	ExpiresAt time.Time
	CreatedAt time.Time
}
