package verify

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"dormhub/room-api/internal/model"
	"dormhub/room-api/internal/store"
	"dormhub/room-api/pkg/middleware"
	"dormhub/room-api/pkg/util"
)

const shareCodeLength = 10

// ErrThrottled means the email asked for too many codes in a short window
var ErrThrottled = errors.New("too many verification attempts for this email")

// Outcome is the result of presenting a verification code. Every variant maps
// to exactly one HTTP response in the handler, so no path can end without a
// terminating reply
type Outcome int

const (
	// OutcomeVerified means the code matched and the account is now verified
	OutcomeVerified Outcome = iota
	// OutcomeNotFound means no pending record exists for the email
	OutcomeNotFound
	// OutcomeExpired means the record had expired. A fresh code was issued
	// and mailed, the account stays unverified
	OutcomeExpired
	// OutcomeMismatch means a record exists but the presented code is wrong
	OutcomeMismatch
)

// Mailer delivers a one-time code to the user out of band. Failures are
// logged but do not unwind an otherwise successful issuance
type Mailer interface {
	SendOTP(email string, otp int) error
}

// Coordinator owns the pending-verification state machine. It keeps no state
// of its own, every decision is a fresh read from the stores
type Coordinator struct {
	users         *store.Users
	verifications *store.Verifications
	gen           *Generator
	mailer        Mailer
	throttle      *middleware.KeyedLimiter
}

func NewCoordinator(users *store.Users, verifications *store.Verifications, mailer Mailer) *Coordinator {
	return &Coordinator{
		users:         users,
		verifications: verifications,
		gen:           NewGenerator(verifications),
		mailer:        mailer,
		// 1 code per 30s per email, short burst for the register+login case
		throttle: middleware.NewKeyedLimiter(1.0/30, 3, 10*time.Minute, time.Minute),
	}
}

// Issue mints and mails a fresh code for the user, superseding any pending
// one. Returns ErrThrottled when the email asks too often
func (v *Coordinator) Issue(userID, email string) (*model.VerificationRecord, error) {
	if !v.throttle.Allow(email) {
		return nil, ErrThrottled
	}

	return v.issue(userID, email)
}

func (v *Coordinator) issue(userID, email string) (*model.VerificationRecord, error) {
	rec, err := v.gen.Generate(userID, email)
	if err != nil {
		return nil, err
	}

	if err := v.mailer.SendOTP(email, rec.Otp); err != nil {
		zap.L().Error("Failed to send verification mail",
			zap.Error(err),
			zap.String("email", email),
		)
	}

	return rec, nil
}

// Consume validates a presented code against the pending record for email.
// The expiry check strictly precedes the comparison, so an expired but
// correct code reports OutcomeExpired, never OutcomeVerified. On a match the
// user is flipped to verified, gets a share code and the record is deleted,
// so presenting the same code again reports OutcomeNotFound
func (v *Coordinator) Consume(email string, otp int) (Outcome, *model.User, error) {
	rec, err := v.verifications.ByEmail(email)
	if err != nil {
		return 0, nil, err
	}

	if rec == nil {
		return OutcomeNotFound, nil, nil
	}

	if time.Now().After(rec.ExpiresAt) {
		if _, err := v.issue(rec.UserID, email); err != nil {
			return 0, nil, err
		}

		return OutcomeExpired, nil, nil
	}

	if rec.Otp != otp {
		return OutcomeMismatch, nil, nil
	}

	user, err := v.users.MarkVerified(rec.UserID, util.RandStr(shareCodeLength))
	if err != nil {
		return 0, nil, err
	}

	if user == nil {
		// Account deleted while the code was in flight
		return OutcomeNotFound, nil, nil
	}

	if err := v.verifications.DeleteByEmail(email); err != nil {
		return 0, nil, err
	}

	return OutcomeVerified, user, nil
}
