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
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// mockCache is a map-backed ICache
type mockCache struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]string)}
}

func (m *mockCache) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewStringCmd(ctx, "get", key)
	val, ok := m.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(val)
	return cmd
}

func (m *mockCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, _ := toBytes(value)
	m.data[key] = string(data)
	m.sets++
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	cmd.SetVal("OK")
	return cmd
}

func (m *mockCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, key := range keys {
		if _, ok := m.data[key]; ok {
			delete(m.data, key)
			count++
		}
	}
	cmd := redis.NewIntCmd(ctx, "del")
	cmd.SetVal(count)
	return cmd
}

func (m *mockCache) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, key := range keys {
		if _, ok := m.data[key]; ok {
			count++
		}
	}
	cmd := redis.NewIntCmd(ctx, "exists")
	cmd.SetVal(count)
	return cmd
}

func (m *mockCache) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	cmd := redis.NewBoolCmd(ctx, "expire", key)
	cmd.SetVal(ok)
	return cmd
}

type testData struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func testKey(params ...any) string {
	return "test:" + params[0].(string)
}

func TestCachedQuery_Get_CacheHit(t *testing.T) {
	mc := newMockCache()
	ctx := context.Background()
	mc.Set(ctx, "test:1", `{"id":1,"name":"test"}`, time.Hour)

	cq := NewCachedQuery(mc, testKey, func(ctx context.Context, params ...any) (testData, error) {
		t.Error("queryFunc should not be called on cache hit")
		return testData{}, nil
	}, WithLogPrefix[testData]("[Test]"))

	result, err := cq.Get(ctx, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID != 1 || result.Name != "test" {
		t.Errorf("expected {ID:1 Name:test}, got %+v", result)
	}
}

func TestCachedQuery_Get_CacheMiss(t *testing.T) {
	mc := newMockCache()
	ctx := context.Background()
	calls := 0

	cq := NewCachedQuery(mc, testKey, func(ctx context.Context, params ...any) (testData, error) {
		calls++
		return testData{ID: 2, Name: params[0].(string)}, nil
	}, WithTTL[testData](time.Minute))

	for range 2 {
		result, err := cq.Get(ctx, "2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.ID != 2 || result.Name != "2" {
			t.Errorf("unexpected result %+v", result)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 query call, got %d", calls)
	}
	if _, ok := mc.data["test:2"]; !ok {
		t.Error("expected result to be cached")
	}
}

func TestCachedQuery_Get_QueryError(t *testing.T) {
	mc := newMockCache()
	sentinel := errors.New("db down")

	cq := NewCachedQuery(mc, testKey, func(ctx context.Context, params ...any) (testData, error) {
		return testData{}, sentinel
	})

	if _, err := cq.Get(context.Background(), "3"); !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel error, got %v", err)
	}
	if mc.sets != 0 {
		t.Errorf("failed query must not be cached, got %d sets", mc.sets)
	}
}

func TestCachedQuery_Get_CorruptEntry(t *testing.T) {
	mc := newMockCache()
	ctx := context.Background()
	mc.Set(ctx, "test:4", "not-json", time.Hour)

	cq := NewCachedQuery(mc, testKey, func(ctx context.Context, params ...any) (testData, error) {
		return testData{ID: 4}, nil
	})

	result, err := cq.Get(ctx, "4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID != 4 {
		t.Errorf("expected fallback to query, got %+v", result)
	}
}

func TestCachedQuery_Invalidate(t *testing.T) {
	mc := newMockCache()
	ctx := context.Background()
	mc.Set(ctx, "test:5", `{"id":5}`, time.Hour)

	cq := NewCachedQuery(mc, testKey, func(ctx context.Context, params ...any) (testData, error) {
		return testData{}, nil
	})
	if err := cq.Invalidate(ctx, "5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := mc.data["test:5"]; ok {
		t.Error("expected key to be removed")
	}
}

func TestCachedQuery_NilCache(t *testing.T) {
	cq := NewCachedQuery[testData](nil, testKey, func(ctx context.Context, params ...any) (testData, error) {
		return testData{ID: 6}, nil
	})
	result, err := cq.Get(context.Background(), "6")
	if err != nil || result.ID != 6 {
		t.Fatalf("expected direct query result, got %+v, %v", result, err)
	}
	if err := cq.Invalidate(context.Background(), "6"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
