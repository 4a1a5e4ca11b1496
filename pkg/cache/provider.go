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
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

// Config sizes the in-process layer of the hybrid cache.
type Config struct {
	LocalEnabled  bool
	LocalMaxBytes int
	LocalTTLRatio float64
	BackfillTTL   int // seconds
}

// ProviderSet 提供缓存依赖（Redis + 本地 FastCache）
var ProviderSet = wire.NewSet(
	ProvideRedisCache,
	ProvideFastCache,
	ProvideHybridCache,
	wire.Bind(new(ICache), new(*HybridCache)),
)

// ProvideRedisCache wraps an established redis client.
func ProvideRedisCache(client *redis.Client) *RedisCache {
	return NewRedisCache(client)
}

// ProvideFastCache 提供本地 FastCache 实例
func ProvideFastCache(conf Config) *FastCache {
	return NewFastCache(FastCacheConfig{MaxBytes: conf.LocalMaxBytes})
}

// ProvideHybridCache 提供混合缓存实例（本地 FastCache + 远程 Redis）
func ProvideHybridCache(conf Config, local *FastCache, remote *RedisCache) *HybridCache {
	return NewHybridCache(local, remote, HybridCacheConfig{
		LocalEnabled:  conf.LocalEnabled,
		RemoteEnabled: true,
		LocalMaxBytes: conf.LocalMaxBytes,
		LocalTTLRatio: conf.LocalTTLRatio,
		BackfillTTL:   time.Duration(conf.BackfillTTL) * time.Second,
	})
}
