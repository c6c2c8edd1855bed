package audit

import (
	"context"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/constvars"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Recorder struct {
	Repository contracts.AuditRepository
	Publisher  contracts.EventPublisher
	Queue      string
	Clock      clock.Clock
	Log        *zap.Logger
}

func NewRecorder(repository contracts.AuditRepository, publisher contracts.EventPublisher, queue string, clk clock.Clock, logger *zap.Logger) contracts.ActivityRecorder {
	return &Recorder{
		Repository: repository,
		Publisher:  publisher,
		Queue:      queue,
		Clock:      clk,
		Log:        logger,
	}
}

func (r *Recorder) Record(ctx context.Context, activity models.Activity) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	now := r.Clock.Now().UTC()

	entry := &models.AuditEvent{
		Action:     activity.Action,
		ReferralID: activity.ReferralID,
		EntityID:   activity.EntityID,
		RequestID:  requestID,
		Detail:     activity.Detail,
		OccurredAt: now,
	}
	actor := ""
	if activity.Actor != nil {
		entry.ActorID = activity.Actor.UserID
		entry.ActorName = activity.Actor.Name
		entry.ActorRole = activity.Actor.Role
		actor = activity.Actor.Email
	}

	if r.Repository != nil && activity.Action != "" {
		if err := r.Repository.Insert(ctx, entry); err != nil {
			r.Log.Error("Recorder.Record error inserting audit event",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEventKey, activity.Action),
				zap.Error(err),
			)
		}
	}

	if r.Publisher == nil || activity.EventType == "" {
		return
	}
	event := &models.DomainEvent{
		ID:         uuid.NewString(),
		Type:       activity.EventType,
		ReferralID: activity.ReferralID,
		EntityID:   activity.EntityID,
		Actor:      actor,
		OccurredAt: now,
		Payload:    activity.Detail,
	}
	if err := r.Publisher.Publish(ctx, r.Queue, event); err != nil {
		r.Log.Error("Recorder.Record error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventKey, activity.EventType),
			zap.Error(err),
		)
	}
}
