package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Zecser/Catering-and-Tourism/internal/repository"
)

// OTPCleaner periodically deletes expired OTP rows. Purely hygiene —
// correctness is enforced by the expiry check at lookup time, so a missed
// sweep never extends a code's life.
type OTPCleaner struct {
	otps     repository.OTPRepository
	logger   *slog.Logger
	interval time.Duration
}

func NewOTPCleaner(otps repository.OTPRepository, logger *slog.Logger, interval time.Duration) *OTPCleaner {
	return &OTPCleaner{otps: otps, logger: logger, interval: interval}
}

// Run blocks until ctx is cancelled.
func (c *OTPCleaner) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := c.otps.DeleteExpired(time.Now().UTC())
			if err != nil {
				c.logger.ErrorContext(ctx, "otp sweep failed", "error", err)
				continue
			}
			if deleted > 0 {
				c.logger.DebugContext(ctx, "otp sweep", "deleted", deleted)
			}
		}
	}
}
