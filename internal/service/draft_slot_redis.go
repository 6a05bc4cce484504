package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go_course_keep/internal/cache"
	"go_course_keep/internal/model"

	"github.com/redis/go-redis/v9"
)

const draftSlotKeyPrefix = "draft:device:"

// redisDraftSlotStore は下書きスロットのRedis実装です。
// スロットにはTTLを付け、放置された端末の下書きをいずれ回収する。
type redisDraftSlotStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewRedisDraftSlotStore(c *cache.Cache, ttl time.Duration) DraftSlotStore {
	return &redisDraftSlotStore{cache: c, ttl: ttl}
}

func (s *redisDraftSlotStore) key(deviceID string) string {
	return draftSlotKeyPrefix + deviceID
}

func (s *redisDraftSlotStore) Save(ctx context.Context, deviceID string, snapshot *model.DraftSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("redisDraftSlotStore.Save: marshal: %w", err)
	}
	if err := s.cache.Client.Set(ctx, s.key(deviceID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redisDraftSlotStore.Save: %w", err)
	}
	return nil
}

func (s *redisDraftSlotStore) Load(ctx context.Context, deviceID string) (*model.DraftSnapshot, error) {
	data, err := s.cache.Client.Get(ctx, s.key(deviceID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redisDraftSlotStore.Load: %w", err)
	}
	var snapshot model.DraftSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		// 壊れたスロットは空と同じ扱いで読み捨てる
		_ = s.cache.Client.Del(ctx, s.key(deviceID)).Err()
		return nil, nil
	}
	return &snapshot, nil
}

func (s *redisDraftSlotStore) Delete(ctx context.Context, deviceID string) error {
	if err := s.cache.Client.Del(ctx, s.key(deviceID)).Err(); err != nil {
		return fmt.Errorf("redisDraftSlotStore.Delete: %w", err)
	}
	return nil
}

func (s *redisDraftSlotStore) Exists(ctx context.Context, deviceID string) (bool, error) {
	n, err := s.cache.Client.Exists(ctx, s.key(deviceID)).Result()
	if err != nil {
		return false, fmt.Errorf("redisDraftSlotStore.Exists: %w", err)
	}
	return n > 0, nil
}
