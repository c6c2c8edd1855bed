package models

import "time"

// DomainEvent is the envelope published to the message broker.
type DomainEvent struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	ReferralID string      `json:"referral_id,omitempty"`
	EntityID   string      `json:"entity_id,omitempty"`
	Actor      string      `json:"actor,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload,omitempty"`
}
