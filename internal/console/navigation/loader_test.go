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

package navigation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
	panics  bool
	tree    []MenuNode
}

func (f *fakeSource) UserMenuTree(ctx context.Context, userID string) ([]MenuNode, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.panics {
		panic("source exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.tree, nil
}

// memCache is an in-memory cache.ICache.
type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache { return &memCache{data: map[string]string{}} }

func (m *memCache) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewStringCmd(ctx, "get", key)
	if v, ok := m.data[key]; ok {
		cmd.SetVal(v)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func (m *memCache) Set(ctx context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value.(string)
	cmd := redis.NewStatusCmd(ctx, "set", key)
	cmd.SetVal("OK")
	return cmd
}

func (m *memCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			n++
			delete(m.data, k)
		}
	}
	cmd := redis.NewIntCmd(ctx, "del")
	cmd.SetVal(n)
	return cmd
}

func (m *memCache) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			n++
		}
	}
	cmd := redis.NewIntCmd(ctx, "exists")
	cmd.SetVal(n)
	return cmd
}

func (m *memCache) Expire(ctx context.Context, key string, _ time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx, "expire", key)
	cmd.SetVal(true)
	return cmd
}

func TestLoader_AwaitReady(t *testing.T) {
	src := &fakeSource{tree: []MenuNode{node(1, "d", "/dashboard", "Dashboard", 0)}}
	l := NewLoader(src, LoaderConfig{})

	snap := l.Await(context.Background(), "u1", time.Second)
	require.Equal(t, StateReady, snap.State)
	assert.Equal(t, "u1", snap.UserID)
	assert.Len(t, snap.Tree, 1)

	// fresh snapshot is served without another fetch
	snap = l.Await(context.Background(), "u1", time.Second)
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestLoader_ConcurrentCallersShareOneFetch(t *testing.T) {
	src := &fakeSource{release: make(chan struct{}), tree: []MenuNode{}}
	l := NewLoader(src, LoaderConfig{})

	var wg sync.WaitGroup
	results := make([]Snapshot, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = l.Await(context.Background(), "u1", 2*time.Second)
		}(i)
	}

	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	for _, s := range results {
		assert.Equal(t, StateReady, s.State)
	}
}

func TestLoader_LoadingWhileFetchOutstanding(t *testing.T) {
	src := &fakeSource{release: make(chan struct{}), tree: []MenuNode{node(1, "d", "/d", "Dashboard", 0)}}
	l := NewLoader(src, LoaderConfig{})

	snap := l.Await(context.Background(), "u1", 10*time.Millisecond)
	assert.Equal(t, StateLoading, snap.State)
	assert.Empty(t, snap.Tree, "no partial tree while loading")

	close(src.release)
	require.Eventually(t, func() bool {
		return l.Snapshot("u1").State == StateReady
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestLoader_FailureBackoff(t *testing.T) {
	src := &fakeSource{err: errors.New("backend down")}
	l := NewLoader(src, LoaderConfig{FailureBackoff: 30 * time.Second})
	now := time.Now()
	l.now = func() time.Time { return now }

	snap := l.Await(context.Background(), "u1", time.Second)
	require.Equal(t, StateFailed, snap.State)
	assert.Error(t, snap.Err)
	assert.NotNil(t, snap.Tree)
	assert.Empty(t, snap.Tree)

	// within backoff the failure is served as is
	l.Await(context.Background(), "u1", time.Second)
	assert.Equal(t, int32(1), src.calls.Load())

	// after backoff it is retried
	now = now.Add(31 * time.Second)
	src.err = nil
	src.tree = []MenuNode{}
	snap = l.Await(context.Background(), "u1", time.Second)
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestLoader_PanicBecomesFailure(t *testing.T) {
	l := NewLoader(&fakeSource{panics: true}, LoaderConfig{})
	snap := l.Await(context.Background(), "u1", time.Second)
	assert.Equal(t, StateFailed, snap.State)
	assert.Error(t, snap.Err)
}

func TestLoader_StaleTreeRefetched(t *testing.T) {
	src := &fakeSource{tree: []MenuNode{}}
	l := NewLoader(src, LoaderConfig{TreeTTL: time.Minute})
	now := time.Now()
	l.now = func() time.Time { return now }

	l.Await(context.Background(), "u1", time.Second)
	now = now.Add(2 * time.Minute)
	l.Await(context.Background(), "u1", time.Second)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestLoader_SetWindows(t *testing.T) {
	src := &fakeSource{tree: []MenuNode{}}
	l := NewLoader(src, LoaderConfig{TreeTTL: time.Hour})
	now := time.Now()
	l.now = func() time.Time { return now }

	l.Await(context.Background(), "u1", time.Second)
	now = now.Add(2 * time.Minute)
	l.Await(context.Background(), "u1", time.Second)
	assert.Equal(t, int32(1), src.calls.Load())

	l.SetWindows(time.Minute, 0)
	l.Await(context.Background(), "u1", time.Second)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestLoader_UserChangeFetchesAgain(t *testing.T) {
	src := &fakeSource{tree: []MenuNode{}}
	l := NewLoader(src, LoaderConfig{})

	assert.Equal(t, "u1", l.Await(context.Background(), "u1", time.Second).UserID)
	assert.Equal(t, "u2", l.Await(context.Background(), "u2", time.Second).UserID)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestLoader_SharedCacheAndInvalidate(t *testing.T) {
	mc := newMemCache()
	src := &fakeSource{tree: []MenuNode{node(1, "d", "/dashboard", "Dashboard", 0)}}

	first := NewLoader(src, LoaderConfig{Cache: mc})
	require.Equal(t, StateReady, first.Await(context.Background(), "u1", time.Second).State)

	// a second instance is served from the shared cache
	second := NewLoader(src, LoaderConfig{Cache: mc})
	snap := second.Await(context.Background(), "u1", time.Second)
	require.Equal(t, StateReady, snap.State)
	assert.Equal(t, "/dashboard", snap.Tree[0].Path)
	assert.Equal(t, int32(1), src.calls.Load())

	require.NoError(t, second.Invalidate(context.Background(), "u1"))
	assert.Equal(t, StateLoading, second.Snapshot("u1").State)
	assert.Equal(t, int64(0), mc.Exists(context.Background(), treeCacheKey("u1")).Val())

	second.Await(context.Background(), "u1", time.Second)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestLoader_InvalidateDropsInFlightResult(t *testing.T) {
	src := &fakeSource{release: make(chan struct{}), tree: []MenuNode{}}
	l := NewLoader(src, LoaderConfig{})

	l.Prefetch("u1")
	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, l.Invalidate(context.Background(), "u1"))
	close(src.release)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, StateLoading, l.Snapshot("u1").State)
}

func (l *Loader) pending(userID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inflight[userID]
}

func TestLoader_InvalidateDuringFetchKeepsSharedCacheClean(t *testing.T) {
	mc := newMemCache()
	src := &fakeSource{release: make(chan struct{}), tree: []MenuNode{node(1, "old", "/old", "Old", 0)}}
	l := NewLoader(src, LoaderConfig{Cache: mc})

	l.Prefetch("u1")
	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, l.Invalidate(context.Background(), "u1"))
	close(src.release)
	require.Eventually(t, func() bool { return l.pending("u1") == 0 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, int64(0), mc.Exists(context.Background(), treeCacheKey("u1")).Val(),
		"tree fetched before logout must not stay in the shared cache")

	src.release = nil
	src.tree = []MenuNode{node(2, "new", "/new", "New", 0)}
	snap := l.Await(context.Background(), "u1", time.Second)
	require.Equal(t, StateReady, snap.State)
	require.Len(t, snap.Tree, 1)
	assert.Equal(t, "/new", snap.Tree[0].Path)
	assert.Equal(t, int32(2), src.calls.Load())

	// another instance reading the shared cache sees the new tree as well
	other := NewLoader(&fakeSource{err: errors.New("unused")}, LoaderConfig{Cache: mc})
	assert.Equal(t, "/new", other.Await(context.Background(), "u1", time.Second).Tree[0].Path)
}

func TestLoader_EvictsIdleEntries(t *testing.T) {
	src := &fakeSource{tree: []MenuNode{}}
	l := NewLoader(src, LoaderConfig{TreeTTL: time.Minute, FailureBackoff: time.Second})
	now := time.Now()
	l.now = func() time.Time { return now }

	for _, id := range []string{"u1", "u2", "u3"} {
		l.Await(context.Background(), id, time.Second)
	}
	require.NoError(t, l.Invalidate(context.Background(), "u1"))

	l.mu.RLock()
	assert.Len(t, l.snapshots, 2)
	assert.Empty(t, l.generation)
	assert.Empty(t, l.inflight)
	l.mu.RUnlock()

	// u2 and u3 went idle, the next fetch sweeps them
	now = now.Add(3 * time.Minute)
	l.Await(context.Background(), "u4", time.Second)

	l.mu.RLock()
	defer l.mu.RUnlock()
	assert.Len(t, l.snapshots, 1)
	assert.Contains(t, l.snapshots, "u4")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "failed", StateFailed.String())
}
