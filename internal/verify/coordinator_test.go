package verify

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dormhub/room-api/internal/model"
	"dormhub/room-api/internal/store"
)

type sentMail struct {
	email string
	otp   int
}

type fakeMailer struct {
	sent []sentMail
}

func (f *fakeMailer) SendOTP(email string, otp int) error {
	f.sent = append(f.sent, sentMail{email, otp})
	return nil
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn))
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.User{}, model.VerificationRecord{}))

	return db
}

func setup(t *testing.T) (*Coordinator, *store.Users, *store.Verifications, *fakeMailer) {
	t.Helper()

	db := testDB(t)
	users := store.NewUsers(db)
	verifications := store.NewVerifications(db)
	mailer := &fakeMailer{}

	require.NoError(t, users.Create(&model.User{
		ID:           "aBcDeFgHiJkLmNoP",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}))

	return NewCoordinator(users, verifications, mailer), users, verifications, mailer
}

func countRecords(t *testing.T, v *store.Verifications, email string) int64 {
	t.Helper()

	rec, err := v.ByEmail(email)
	require.NoError(t, err)
	if rec == nil {
		return 0
	}
	return 1
}

func TestIssueMailsTheCode(t *testing.T) {
	coord, _, verifications, mailer := setup(t)

	rec, err := coord.Issue("aBcDeFgHiJkLmNoP", "alice@example.com")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, rec.Otp, 10000)
	assert.LessOrEqual(t, rec.Otp, 99999)
	assert.True(t, rec.ExpiresAt.After(time.Now()))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "alice@example.com", mailer.sent[0].email)
	assert.Equal(t, rec.Otp, mailer.sent[0].otp)

	assert.EqualValues(t, 1, countRecords(t, verifications, "alice@example.com"))
}

func TestReissuePurgesTheOldRecord(t *testing.T) {
	coord, _, verifications, _ := setup(t)

	first, err := coord.Issue("aBcDeFgHiJkLmNoP", "alice@example.com")
	require.NoError(t, err)

	second, err := coord.Issue("aBcDeFgHiJkLmNoP", "alice@example.com")
	require.NoError(t, err)

	// Only the latest code is live
	live, err := verifications.ByEmail("alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, live)
	assert.Equal(t, second.ID, live.ID)

	outcome, _, err := coord.Consume("alice@example.com", first.Otp)
	require.NoError(t, err)
	if first.Otp != second.Otp {
		assert.Equal(t, OutcomeMismatch, outcome)
	}
}

func TestConsumeNoRecord(t *testing.T) {
	coord, _, _, _ := setup(t)

	outcome, user, err := coord.Consume("alice@example.com", 12345)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, outcome)
	assert.Nil(t, user)
}

func TestConsumeMismatchLeavesRecordIntact(t *testing.T) {
	coord, users, verifications, _ := setup(t)

	rec, err := coord.Issue("aBcDeFgHiJkLmNoP", "alice@example.com")
	require.NoError(t, err)

	wrong := rec.Otp + 1
	if wrong > 99999 {
		wrong = 10000
	}

	outcome, user, err := coord.Consume("alice@example.com", wrong)
	require.NoError(t, err)
	assert.Equal(t, OutcomeMismatch, outcome)
	assert.Nil(t, user)

	// Record still there, account still unverified
	assert.EqualValues(t, 1, countRecords(t, verifications, "alice@example.com"))

	u, err := users.ByID("aBcDeFgHiJkLmNoP")
	require.NoError(t, err)
	assert.False(t, u.Verified)
}

func TestConsumeVerifiesExactlyOnce(t *testing.T) {
	coord, users, verifications, _ := setup(t)

	rec, err := coord.Issue("aBcDeFgHiJkLmNoP", "alice@example.com")
	require.NoError(t, err)

	outcome, user, err := coord.Consume("alice@example.com", rec.Otp)
	require.NoError(t, err)
	require.Equal(t, OutcomeVerified, outcome)
	require.NotNil(t, user)

	assert.True(t, user.Verified)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9]{10}$`), user.ShareCode)

	// Record consumed
	assert.EqualValues(t, 0, countRecords(t, verifications, "alice@example.com"))

	stored, err := users.ByID("aBcDeFgHiJkLmNoP")
	require.NoError(t, err)
	assert.True(t, stored.Verified)
	assert.Equal(t, user.ShareCode, stored.ShareCode)

	// Presenting the same code again must not re-verify
	outcome, _, err = coord.Consume("alice@example.com", rec.Otp)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, outcome)
}

func TestConsumeExpiredRenewsInsteadOfVerifying(t *testing.T) {
	coord, users, verifications, mailer := setup(t)

	// Plant an already expired record directly
	expired := &model.VerificationRecord{
		Email:     "alice@example.com",
		UserID:    "aBcDeFgHiJkLmNoP",
		Otp:       54321,
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-10 * time.Minute),
	}
	require.NoError(t, verifications.Replace(expired))

	// The correct but expired code must report expired, never verified
	outcome, user, err := coord.Consume("alice@example.com", 54321)
	require.NoError(t, err)
	assert.Equal(t, OutcomeExpired, outcome)
	assert.Nil(t, user)

	// Exactly one renewal: fresh record, fresh mail, account untouched
	require.Len(t, mailer.sent, 1)

	renewed, err := verifications.ByEmail("alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, renewed)
	assert.True(t, renewed.ExpiresAt.After(time.Now()))
	assert.Equal(t, renewed.Otp, mailer.sent[0].otp, "the mailed code is the live one")

	u, err := users.ByID("aBcDeFgHiJkLmNoP")
	require.NoError(t, err)
	assert.False(t, u.Verified)
}

func TestIssueThrottlesPerEmail(t *testing.T) {
	coord, _, _, _ := setup(t)

	var lastErr error
	for range 10 {
		_, lastErr = coord.Issue("aBcDeFgHiJkLmNoP", "alice@example.com")
		if lastErr != nil {
			break
		}
	}

	assert.ErrorIs(t, lastErr, ErrThrottled)

	// A different email is unaffected
	_, err := coord.Issue("qRsTuVwXyZaBcDeF", "bob@example.com")
	assert.NoError(t, err)
}
