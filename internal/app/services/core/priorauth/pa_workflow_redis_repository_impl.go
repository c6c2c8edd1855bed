package priorauth

import (
	"context"
	"fmt"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/exceptions"
	"referral-portal-service/internal/pkg/paworkflow"
	"time"

	"github.com/goccy/go-json"
)

// PAWorkflowRedisRepository keeps one draft per referral and user so two
// admins editing the same referral never see each other's uncommitted work.
type PAWorkflowRedisRepository struct {
	RedisRepository contracts.RedisRepository
	TTL             time.Duration
}

func NewPAWorkflowRedisRepository(redisRepository contracts.RedisRepository, ttl time.Duration) contracts.PAWorkflowRepository {
	return &PAWorkflowRedisRepository{
		RedisRepository: redisRepository,
		TTL:             ttl,
	}
}

func (r *PAWorkflowRedisRepository) Load(ctx context.Context, referralID, userID string) (*paworkflow.State, error) {
	key := paWorkflowKey(referralID, userID)
	raw, err := r.RedisRepository.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	state := new(paworkflow.State)
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		return nil, exceptions.ErrRedisCorruptData(err, key)
	}
	return state, nil
}

// Save refreshes the TTL on every write.
func (r *PAWorkflowRedisRepository) Save(ctx context.Context, referralID, userID string, state *paworkflow.State) error {
	return r.RedisRepository.Set(ctx, paWorkflowKey(referralID, userID), state, r.TTL)
}

func (r *PAWorkflowRedisRepository) Delete(ctx context.Context, referralID, userID string) error {
	return r.RedisRepository.Delete(ctx, paWorkflowKey(referralID, userID))
}

func paWorkflowKey(referralID, userID string) string {
	return fmt.Sprintf(constvars.RedisKeyPAWorkflowFormat, referralID, userID)
}
