package events

import (
	"context"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type rabbitMQPublisher struct {
	mu      sync.Mutex
	Channel *amqp091.Channel
	Log     *zap.Logger
}

// NewRabbitMQPublisher opens a dedicated channel on conn. Channels are not
// safe for concurrent publishing, so Publish serializes on it.
func NewRabbitMQPublisher(conn *amqp091.Connection, logger *zap.Logger) (contracts.EventPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	return &rabbitMQPublisher{
		Channel: channel,
		Log:     logger,
	}, nil
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, queue string, event *models.DomainEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.Log.Debug("rabbitMQPublisher.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, queue),
		zap.String(constvars.LoggingEventKey, event.Type),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"event_type":       event.Type,
		"requeue_strategy": "DROP",
	}
	if requestID != "" {
		headers["request_id"] = requestID
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Priority:     0,
		Headers:      headers,
	}

	p.mu.Lock()
	err = p.Channel.PublishWithContext(ctx, "", queue, false, false, message)
	p.mu.Unlock()
	if err != nil {
		p.Log.Error("rabbitMQPublisher.Publish error calling PublishWithContext",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueKey, queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}

	p.Log.Info("rabbitMQPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, event.Type),
		zap.String(constvars.LoggingReferralIDKey, event.ReferralID),
	)
	return nil
}
