// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const defaultFastCacheBytes = 16 * 1024 * 1024

// FastCacheConfig holds fastcache configuration
type FastCacheConfig struct {
	MaxBytes int // 默认 16MB
}

// FastCache is an in-process ICache backed by VictoriaMetrics fastcache.
// fastcache has no expiration of its own, so deadlines are tracked here and
// enforced lazily on read.
type FastCache struct {
	cache *fastcache.Cache
	mu    sync.RWMutex
	ttls  map[string]time.Time
	now   func() time.Time
}

// NewFastCache creates a new FastCache instance
func NewFastCache(conf FastCacheConfig) *FastCache {
	maxBytes := conf.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultFastCacheBytes
	}
	return &FastCache{
		cache: fastcache.New(maxBytes),
		ttls:  make(map[string]time.Time),
		now:   time.Now,
	}
}

func (fc *FastCache) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)

	fc.mu.RLock()
	expired := fc.expiredLocked(key)
	value, ok := fc.cache.HasGet(nil, []byte(key))
	fc.mu.RUnlock()

	if expired {
		fc.evict(key)
		cmd.SetErr(redis.Nil)
		return cmd
	}
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(value))
	return cmd
}

func (fc *FastCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)

	data, err := toBytes(value)
	if err != nil {
		cmd.SetErr(err)
		return cmd
	}

	fc.mu.Lock()
	fc.cache.Set([]byte(key), data)
	if expiration > 0 {
		fc.ttls[key] = fc.now().Add(expiration)
	} else {
		delete(fc.ttls, key)
	}
	fc.mu.Unlock()

	cmd.SetVal("OK")
	return cmd
}

func (fc *FastCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "del")

	fc.mu.Lock()
	var count int64
	for _, key := range keys {
		if fc.cache.Has([]byte(key)) && !fc.expiredLocked(key) {
			count++
		}
		fc.cache.Del([]byte(key))
		delete(fc.ttls, key)
	}
	fc.mu.Unlock()

	cmd.SetVal(count)
	return cmd
}

func (fc *FastCache) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "exists")

	fc.mu.RLock()
	var count int64
	for _, key := range keys {
		if fc.cache.Has([]byte(key)) && !fc.expiredLocked(key) {
			count++
		}
	}
	fc.mu.RUnlock()

	cmd.SetVal(count)
	return cmd
}

func (fc *FastCache) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx, "expire", key)

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if !fc.cache.Has([]byte(key)) || fc.expiredLocked(key) {
		cmd.SetVal(false)
		return cmd
	}
	if expiration > 0 {
		fc.ttls[key] = fc.now().Add(expiration)
	} else {
		// 与 Redis 一致: 非正数过期时间立即删除
		fc.cache.Del([]byte(key))
		delete(fc.ttls, key)
	}
	cmd.SetVal(true)
	return cmd
}

// Clear drops every entry.
func (fc *FastCache) Clear() {
	fc.mu.Lock()
	fc.cache.Reset()
	fc.ttls = make(map[string]time.Time)
	fc.mu.Unlock()
}

func (fc *FastCache) expiredLocked(key string) bool {
	exp, ok := fc.ttls[key]
	return ok && !fc.now().Before(exp)
}

func (fc *FastCache) evict(key string) {
	fc.mu.Lock()
	if fc.expiredLocked(key) {
		fc.cache.Del([]byte(key))
		delete(fc.ttls, key)
	}
	fc.mu.Unlock()
}

func toBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return sonic.Marshal(v)
	}
}
