package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"dormhub/room-api/internal/model"
)

type Verifications struct {
	db *gorm.DB
}

func NewVerifications(db *gorm.DB) *Verifications {
	return &Verifications{db: db}
}

// ByEmail returns the pending record for email, or nil when there is none
func (s *Verifications) ByEmail(email string) (*model.VerificationRecord, error) {
	var rec model.VerificationRecord

	err := s.db.Where("email = ?", email).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch verification record, %w", err)
	}

	return &rec, nil
}

// Replace purges every record for rec.Email and inserts rec, keeping at most
// one pending attempt per email. The two writes share a transaction so a
// failed insert can't leave the email with no record at all
func (s *Verifications) Replace(rec *model.VerificationRecord) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", rec.Email).
			Delete(&model.VerificationRecord{}).Error; err != nil {
			return err
		}

		return tx.Create(rec).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace verification record, %w", err)
	}

	return nil
}

func (s *Verifications) DeleteByEmail(email string) error {
	err := s.db.Where("email = ?", email).
		Delete(&model.VerificationRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete verification records, %w", err)
	}

	return nil
}

// DeleteExpiredBefore removes records whose expiry is older than cutoff.
// Used by the cleanup ticker, which keeps a grace window so freshly expired
// records still produce the "expired, renewed" outcome on verify
func (s *Verifications) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	r := s.db.Where("expires_at < ?", cutoff).
		Delete(&model.VerificationRecord{})
	if r.Error != nil {
		return 0, fmt.Errorf("failed to clean up verification records, %w", r.Error)
	}

	return r.RowsAffected, nil
}
