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
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/s-khaon/expert-tracking-site/pkg/log"
)

// HybridCacheConfig holds hybrid cache configuration
type HybridCacheConfig struct {
	LocalEnabled  bool          // 启用本地缓存
	RemoteEnabled bool          // 启用远程缓存 (Redis)
	LocalMaxBytes int           // 本地缓存大小
	LocalTTLRatio float64       // 本地 TTL 相对远程 TTL 的比例 (0.0-1.0)
	BackfillTTL   time.Duration // 远程命中回填本地时使用的 TTL
}

// HybridCache combines a local fastcache with a remote ICache (Redis).
// Reads try local first, then remote, back-filling local on a remote hit.
// Writes go to both layers; the local copy lives shorter so that instances
// converge on the remote value.
type HybridCache struct {
	local  *FastCache
	remote ICache
	config HybridCacheConfig
}

// NewHybridCache creates a new HybridCache instance
func NewHybridCache(local *FastCache, remote ICache, config HybridCacheConfig) *HybridCache {
	if local == nil {
		config.LocalEnabled = false
	}
	if remote == nil {
		config.RemoteEnabled = false
	}
	if config.BackfillTTL <= 0 {
		config.BackfillTTL = time.Minute
	}
	return &HybridCache{local: local, remote: remote, config: config}
}

func (hc *HybridCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if hc.config.LocalEnabled {
		if cmd := hc.local.Get(ctx, key); cmd.Err() == nil {
			log.Debugw("hybrid cache hit (local)", "key", key)
			return cmd
		}
	}

	if hc.config.RemoteEnabled {
		cmd := hc.remote.Get(ctx, key)
		switch err := cmd.Err(); {
		case err == nil:
			log.Debugw("hybrid cache hit (remote)", "key", key)
			if hc.config.LocalEnabled {
				hc.local.Set(ctx, key, cmd.Val(), hc.config.BackfillTTL)
			}
			return cmd
		case !errors.Is(err, redis.Nil):
			return cmd
		}
	}

	cmd := redis.NewStringCmd(ctx, "get", key)
	cmd.SetErr(redis.Nil)
	return cmd
}

func (hc *HybridCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	data, err := toBytes(value)
	if err != nil {
		cmd := redis.NewStatusCmd(ctx, "set", key)
		cmd.SetErr(err)
		return cmd
	}

	if hc.config.LocalEnabled {
		hc.local.Set(ctx, key, data, hc.localTTL(expiration))
	}
	if hc.config.RemoteEnabled {
		if cmd := hc.remote.Set(ctx, key, data, expiration); cmd.Err() != nil {
			return cmd
		}
	}

	cmd := redis.NewStatusCmd(ctx, "set", key)
	cmd.SetVal("OK")
	return cmd
}

func (hc *HybridCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var count int64
	if hc.config.LocalEnabled {
		count = hc.local.Del(ctx, keys...).Val()
	}
	if hc.config.RemoteEnabled {
		cmd := hc.remote.Del(ctx, keys...)
		if cmd.Err() != nil {
			return cmd
		}
		count = max(count, cmd.Val())
	}
	cmd := redis.NewIntCmd(ctx, "del")
	cmd.SetVal(count)
	return cmd
}

func (hc *HybridCache) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	if hc.config.RemoteEnabled {
		return hc.remote.Exists(ctx, keys...)
	}
	if hc.config.LocalEnabled {
		return hc.local.Exists(ctx, keys...)
	}
	cmd := redis.NewIntCmd(ctx, "exists")
	cmd.SetVal(0)
	return cmd
}

func (hc *HybridCache) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	var local *redis.BoolCmd
	if hc.config.LocalEnabled {
		local = hc.local.Expire(ctx, key, hc.localTTL(expiration))
	}
	if hc.config.RemoteEnabled {
		return hc.remote.Expire(ctx, key, expiration)
	}
	if local != nil {
		return local
	}
	cmd := redis.NewBoolCmd(ctx, "expire", key)
	cmd.SetVal(false)
	return cmd
}

func (hc *HybridCache) localTTL(remoteTTL time.Duration) time.Duration {
	if hc.config.LocalTTLRatio > 0 && hc.config.LocalTTLRatio < 1.0 {
		return time.Duration(float64(remoteTTL) * hc.config.LocalTTLRatio)
	}
	return remoteTTL
}
