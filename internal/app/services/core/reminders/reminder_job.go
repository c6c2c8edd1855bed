package reminders

import (
	"context"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/pkg/constvars"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const jobName = "pa-expiry-reminders"

// Schedule registers the daily sweep at the given "HH:MM". The scheduler
// runs in singleton mode so a slow sweep is never overlapped.
func Schedule(scheduler *gocron.Scheduler, usecase contracts.ReminderUsecase, at string, timeout time.Duration, logger *zap.Logger) (*gocron.Job, error) {
	return scheduler.Every(1).Day().At(at).Tag(jobName).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		count, err := usecase.SweepExpiringPA(ctx)
		if err != nil {
			logger.Error("reminders job failed",
				zap.String(constvars.LoggingJobKey, jobName),
				zap.Error(err),
			)
			return
		}
		logger.Info("reminders job finished",
			zap.String(constvars.LoggingJobKey, jobName),
			zap.Int(constvars.LoggingCountKey, count),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
		)
	})
}
