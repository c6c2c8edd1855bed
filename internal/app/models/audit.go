package models

import "time"

type AuditEvent struct {
	ID         string                 `json:"id" bson:"_id,omitempty"`
	Action     string                 `json:"action" bson:"action"`
	ActorID    string                 `json:"actor_id" bson:"actorId"`
	ActorName  string                 `json:"actor_name" bson:"actorName"`
	ActorRole  string                 `json:"actor_role" bson:"actorRole"`
	ReferralID string                 `json:"referral_id,omitempty" bson:"referralId,omitempty"`
	EntityID   string                 `json:"entity_id,omitempty" bson:"entityId,omitempty"`
	RequestID  string                 `json:"request_id,omitempty" bson:"requestId,omitempty"`
	Detail     map[string]interface{} `json:"detail,omitempty" bson:"detail,omitempty"`
	OccurredAt time.Time              `json:"occurred_at" bson:"occurredAt"`
}

// Activity is one audited mutation. It is written to the audit trail and,
// when EventType is set, published as a DomainEvent.
type Activity struct {
	Actor      *Session
	Action     string
	EventType  string
	ReferralID string
	EntityID   string
	Detail     map[string]interface{}
}
