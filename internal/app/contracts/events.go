package contracts

import (
	"context"
	"referral-portal-service/internal/app/models"
)

type EventPublisher interface {
	Publish(ctx context.Context, queue string, event *models.DomainEvent) error
}

type AuditRepository interface {
	Insert(ctx context.Context, event *models.AuditEvent) error
	FindByReferralID(ctx context.Context, referralID string, limit int64) ([]models.AuditEvent, error)
}

// ActivityRecorder audits and announces mutations. Failures are logged and
// never undo the mutation.
type ActivityRecorder interface {
	Record(ctx context.Context, activity models.Activity)
}
