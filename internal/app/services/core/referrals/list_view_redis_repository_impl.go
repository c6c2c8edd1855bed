package referrals

import (
	"context"
	"fmt"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
)

type ListViewRedisRepository struct {
	RedisRepository contracts.RedisRepository
	TTL             time.Duration
}

func NewListViewRedisRepository(redisRepository contracts.RedisRepository, ttl time.Duration) contracts.ListViewRepository {
	return &ListViewRedisRepository{
		RedisRepository: redisRepository,
		TTL:             ttl,
	}
}

// Load returns nil when the user has no saved view for the list.
func (r *ListViewRedisRepository) Load(ctx context.Context, userID, listKey string) (*models.ListView, error) {
	key := listViewKey(userID, listKey)
	raw, err := r.RedisRepository.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	view := new(models.ListView)
	if err := json.Unmarshal([]byte(raw), view); err != nil {
		return nil, exceptions.ErrRedisCorruptData(err, key)
	}
	return view, nil
}

func (r *ListViewRedisRepository) Save(ctx context.Context, userID, listKey string, view *models.ListView) error {
	return r.RedisRepository.Set(ctx, listViewKey(userID, listKey), view, r.TTL)
}

func (r *ListViewRedisRepository) Delete(ctx context.Context, userID, listKey string) error {
	return r.RedisRepository.Delete(ctx, listViewKey(userID, listKey))
}

func listViewKey(userID, listKey string) string {
	return fmt.Sprintf(constvars.RedisKeyListViewFormat, userID, listKey)
}
