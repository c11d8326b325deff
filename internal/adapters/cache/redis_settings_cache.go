package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cari_ledger/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const settingKeyPrefix = "cari_ledger:setting:"

// RedisSettingCache stores settings as JSON strings under one key per setting name.
type RedisSettingCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisSettingCache creates a settings cache. A zero ttl keeps entries until invalidated.
func NewRedisSettingCache(rdb redis.Cmdable, ttl time.Duration) *RedisSettingCache {
	return &RedisSettingCache{rdb: rdb, ttl: ttl}
}

var _ portsrepo.SettingCache = (*RedisSettingCache)(nil)

func settingKey(name string) string {
	return settingKeyPrefix + name
}

// Get returns the cached setting and whether it was present.
func (c *RedisSettingCache) Get(ctx context.Context, name string) (*domain.Setting, bool, error) {
	raw, err := c.rdb.Get(ctx, settingKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", name, err)
	}

	var s domain.Setting
	if err := json.Unmarshal(raw, &s); err != nil {
		// A corrupt entry is treated as a miss and dropped.
		_ = c.rdb.Del(ctx, settingKey(name)).Err()
		return nil, false, nil
	}
	return &s, true, nil
}

func (c *RedisSettingCache) Set(ctx context.Context, setting domain.Setting) error {
	raw, err := json.Marshal(setting)
	if err != nil {
		return fmt.Errorf("marshal setting %s: %w", setting.Name, err)
	}
	if err := c.rdb.Set(ctx, settingKey(setting.Name), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", setting.Name, err)
	}
	return nil
}

func (c *RedisSettingCache) Invalidate(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = settingKey(n)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
