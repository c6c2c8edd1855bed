package reminders

import (
	"context"
	"fmt"
	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/app/services/core/dashboard"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/pastatus"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// sentMarkerTTL keeps a referral from being reminded twice on one day.
const sentMarkerTTL = 26 * time.Hour

type reminderUsecase struct {
	ReferralClient  contracts.AdminReferralClient
	Publisher       contracts.EventPublisher
	RedisRepository contracts.RedisRepository
	ExpiringGauge   prometheus.Gauge
	Published       prometheus.Counter
	InternalConfig  *config.InternalConfig
	Clock           clock.Clock
	Log             *zap.Logger
}

func NewReminderUsecase(
	referralClient contracts.AdminReferralClient,
	publisher contracts.EventPublisher,
	redisRepository contracts.RedisRepository,
	expiringGauge prometheus.Gauge,
	published prometheus.Counter,
	internalConfig *config.InternalConfig,
	clk clock.Clock,
	logger *zap.Logger,
) contracts.ReminderUsecase {
	return &reminderUsecase{
		ReferralClient:  referralClient,
		Publisher:       publisher,
		RedisRepository: redisRepository,
		ExpiringGauge:   expiringGauge,
		Published:       published,
		InternalConfig:  internalConfig,
		Clock:           clk,
		Log:             logger,
	}
}

// SweepExpiringPA publishes one pa.expiring event per referral whose
// approved PA runs out within the window. It returns the number published.
// A failed publish is logged and the sweep moves on.
func (uc *reminderUsecase) SweepExpiringPA(ctx context.Context) (int, error) {
	uc.Log.Info("reminderUsecase.SweepExpiringPA called")

	all, err := uc.ReferralClient.ListReferrals(ctx, "")
	if err != nil {
		uc.Log.Error("reminderUsecase.SweepExpiringPA error listing referrals", zap.Error(err))
		return 0, err
	}

	now := uc.Clock.Now()
	today := clock.Today(uc.Clock)
	window := uc.InternalConfig.Reminders.WindowDays
	queue := uc.InternalConfig.RabbitMQ.RemindersQueue

	expiring, published := 0, 0
	for _, r := range all {
		if !dashboard.ExpiringSoon(r, now, window) {
			continue
		}
		expiring++

		marker := fmt.Sprintf(constvars.RedisKeyPAReminderFormat, r.ID, today)
		first, err := uc.RedisRepository.TrySetNX(ctx, marker, now.Unix(), sentMarkerTTL)
		if err != nil {
			uc.Log.Warn("reminderUsecase.SweepExpiringPA failed to mark reminder, sending anyway",
				zap.String(constvars.LoggingReferralIDKey, r.ID),
				zap.Error(err),
			)
		} else if !first {
			continue
		}

		if err := uc.Publisher.Publish(ctx, queue, reminderEvent(r, now)); err != nil {
			uc.Log.Error("reminderUsecase.SweepExpiringPA error publishing reminder",
				zap.String(constvars.LoggingReferralIDKey, r.ID),
				zap.String(constvars.LoggingQueueKey, queue),
				zap.Error(err),
			)
			continue
		}
		published++
		uc.Published.Inc()
	}
	uc.ExpiringGauge.Set(float64(expiring))

	uc.Log.Info("reminderUsecase.SweepExpiringPA succeeded",
		zap.Int(constvars.LoggingCountKey, published),
		zap.Int(constvars.LoggingExpiringCountKey, expiring),
	)
	return published, nil
}

func reminderEvent(r models.Referral, now time.Time) *models.DomainEvent {
	payload := map[string]interface{}{
		"patient_name":    r.PatientName,
		"clinic_name":     r.ClinicName,
		"drug":            r.Drug,
		"expiration_date": r.RawPAExpirationDate(),
	}
	if expiresAt, ok := pastatus.ParseDate(r.RawPAExpirationDate()); ok {
		payload["days_left"] = int(expiresAt.Sub(now).Hours() / 24)
	}
	return &models.DomainEvent{
		ID:         uuid.NewString(),
		Type:       constvars.EventPAExpiring,
		ReferralID: r.ID,
		OccurredAt: now,
		Payload:    payload,
	}
}
