package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dormhub/room-api/internal/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.User{}, model.VerificationRecord{}))

	return db
}

func TestUsersNotFoundIsNilNotError(t *testing.T) {
	users := NewUsers(testDB(t))

	u, err := users.ByID("missing")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = users.ByEmail("missing@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUsersMarkVerified(t *testing.T) {
	users := NewUsers(testDB(t))

	require.NoError(t, users.Create(&model.User{
		ID:           "aBcDeFgHiJkLmNoP",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}))

	u, err := users.MarkVerified("aBcDeFgHiJkLmNoP", "a1B2c3D4e5")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.Verified)
	assert.Equal(t, "a1B2c3D4e5", u.ShareCode)

	// Marking a missing user is a nil result, not an error
	u, err = users.MarkVerified("missing", "a1B2c3D4e5")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestVerificationsReplaceKeepsOneRecord(t *testing.T) {
	db := testDB(t)
	verifications := NewVerifications(db)

	for i := range 3 {
		require.NoError(t, verifications.Replace(&model.VerificationRecord{
			Email:     "alice@example.com",
			UserID:    "aBcDeFgHiJkLmNoP",
			Otp:       10000 + i,
			ExpiresAt: time.Now().Add(5 * time.Minute),
			CreatedAt: time.Now(),
		}))
	}

	var count int64
	require.NoError(t, db.Model(&model.VerificationRecord{}).
		Where("email = ?", "alice@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	rec, err := verifications.ByEmail("alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 10002, rec.Otp)
}
