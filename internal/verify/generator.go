// Package verify holds the identity-verification core: one-time code
// generation and the coordinator that drives an account from registered to
// email-verified
package verify

import (
	"math/rand"
	"time"

	"dormhub/room-api/internal/model"
	"dormhub/room-api/internal/store"
)

const (
	otpMin  = 10000
	otpSpan = 90000
	otpTTL  = 300 * time.Second
)

// Generator produces one-time verification codes bound to a user and an
// absolute expiry
type Generator struct {
	verifications *store.Verifications
}

func NewGenerator(verifications *store.Verifications) *Generator {
	return &Generator{verifications: verifications}
}

// Generate mints a fresh 5-digit code for the user and persists it. Any
// record already pending for the email is purged first, so at most one
// attempt is ever outstanding
func (g *Generator) Generate(userID, email string) (*model.VerificationRecord, error) {
	now := time.Now()

	rec := &model.VerificationRecord{
		Email:     email,
		UserID:    userID,
		Otp:       otpMin + rand.Intn(otpSpan),
		ExpiresAt: now.Add(otpTTL),
		CreatedAt: now,
	}

	if err := g.verifications.Replace(rec); err != nil {
		return nil, err
	}

	return rec, nil
}
