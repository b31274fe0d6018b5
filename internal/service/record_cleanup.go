package service

import (
	"time"

	"go.uber.org/zap"

	"dormhub/room-api/internal/store"
)

// Gives verify a window to report freshly expired codes as "expired, renewed"
// before the record disappears entirely
const cleanupGrace = 24 * time.Hour

// RecordCleanup periodically deletes verification records that expired long
// enough ago that nobody can meaningfully present them anymore
func RecordCleanup(t time.Duration, verifications *store.Verifications) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Verification record cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			n, err := verifications.DeleteExpiredBefore(time.Now().Add(-cleanupGrace))
			if err != nil {
				zap.L().Error("Failed to clean up verification records", zap.Error(err))
				continue
			}

			if n > 0 {
				zap.L().Debug("Cleaned up expired verification records", zap.Int64("count", n))
			}
		}
	}()
}
