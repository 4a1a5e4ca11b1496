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
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/s-khaon/expert-tracking-site/pkg/cache"
	"github.com/s-khaon/expert-tracking-site/pkg/log"
	"github.com/s-khaon/expert-tracking-site/pkg/safe"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"
)

// TreeSource fetches the permitted menu tree of a user.
type TreeSource interface {
	UserMenuTree(ctx context.Context, userID string) ([]MenuNode, error)
}

// State is the lifecycle of a user's menu tree.
type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "loading"
	}
}

// Snapshot is an immutable view of a user's menu tree. A Failed snapshot
// always carries an empty tree.
type Snapshot struct {
	UserID    string
	State     State
	Tree      []MenuNode
	Err       error
	FetchedAt time.Time
}

const (
	DefaultTreeTTL        = 5 * time.Minute
	DefaultFetchTimeout   = 10 * time.Second
	DefaultFailureBackoff = 30 * time.Second

	treeCacheKeyPrefix = "ets:menu:tree:"
)

type LoaderConfig struct {
	TreeTTL        time.Duration
	FetchTimeout   time.Duration
	FailureBackoff time.Duration
	// Cache shares fetched trees between console instances; nil disables it.
	Cache cache.ICache
}

var (
	fetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "console",
		Subsystem: "menu",
		Name:      "tree_fetch_total",
		Help:      "Menu tree fetches by result.",
	}, []string{"result"})
	fetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "console",
		Subsystem: "menu",
		Name:      "tree_fetch_duration_seconds",
		Help:      "Menu tree fetch latency.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Collectors returns the loader's prometheus collectors.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{fetchTotal, fetchDuration}
}

// Loader owns the per-user menu trees. At most one fetch per user is in
// flight; concurrent callers join it.
type Loader struct {
	source TreeSource
	query  *cache.CachedQuery[[]MenuNode]
	config LoaderConfig
	group  singleflight.Group
	now    func() time.Time

	mu        sync.RWMutex
	snapshots map[string]Snapshot
	// generation is bumped on Invalidate so that a fetch started before it
	// cannot publish its result. Entries live only while a fetch is in flight.
	generation map[string]uint64
	inflight   map[string]int
	lastSweep  time.Time
}

func NewLoader(source TreeSource, config LoaderConfig) *Loader {
	if config.TreeTTL <= 0 {
		config.TreeTTL = DefaultTreeTTL
	}
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = DefaultFetchTimeout
	}
	if config.FailureBackoff <= 0 {
		config.FailureBackoff = DefaultFailureBackoff
	}

	l := &Loader{
		source:     source,
		config:     config,
		now:        time.Now,
		snapshots:  make(map[string]Snapshot),
		generation: make(map[string]uint64),
		inflight:   make(map[string]int),
	}
	if config.Cache != nil {
		l.query = cache.NewCachedQuery(
			config.Cache,
			func(params ...any) string { return treeCacheKey(params[0].(string)) },
			func(ctx context.Context, params ...any) ([]MenuNode, error) {
				return source.UserMenuTree(ctx, params[0].(string))
			},
			cache.WithTTL[[]MenuNode](config.TreeTTL),
			cache.WithLogPrefix[[]MenuNode]("[MenuTree]"),
		)
	}
	return l
}

func treeCacheKey(userID string) string {
	return treeCacheKeyPrefix + userID
}

// Snapshot returns the current snapshot of userID without starting a fetch.
func (l *Loader) Snapshot(userID string) Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if s, ok := l.snapshots[userID]; ok {
		return s
	}
	return Snapshot{UserID: userID, State: StateLoading}
}

// Await returns the tree of userID, fetching it if it is missing, stale, or
// failed longer than the backoff ago. When the fetch does not finish within
// wait, a stale Ready snapshot is returned if there is one, otherwise a
// Loading snapshot. The fetch itself keeps running.
func (l *Loader) Await(ctx context.Context, userID string, wait time.Duration) Snapshot {
	current, ok := l.current(userID)
	if ok && l.usable(current) {
		return current
	}

	ch := l.group.DoChan(userID, func() (any, error) {
		return l.fetch(userID), nil
	})

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case res := <-ch:
		return res.Val.(Snapshot)
	case <-timer.C:
	case <-ctx.Done():
	}

	if ok && current.State == StateReady {
		return current
	}
	return Snapshot{UserID: userID, State: StateLoading}
}

// Prefetch starts a fetch for userID without waiting, e.g. right after login.
func (l *Loader) Prefetch(userID string) {
	if current, ok := l.current(userID); ok && l.usable(current) {
		return
	}
	l.group.DoChan(userID, func() (any, error) {
		return l.fetch(userID), nil
	})
}

// Invalidate drops the snapshot and the shared cache entry of userID. A fetch
// already in flight is not published.
func (l *Loader) Invalidate(ctx context.Context, userID string) error {
	l.mu.Lock()
	delete(l.snapshots, userID)
	if l.inflight[userID] > 0 {
		l.generation[userID]++
	}
	l.mu.Unlock()
	l.group.Forget(userID)

	if l.query != nil {
		return l.query.Invalidate(ctx, userID)
	}
	return nil
}

func (l *Loader) current(userID string) (Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.snapshots[userID]
	return s, ok
}

func (l *Loader) usable(s Snapshot) bool {
	l.mu.RLock()
	ttl, backoff := l.config.TreeTTL, l.config.FailureBackoff
	l.mu.RUnlock()

	age := l.now().Sub(s.FetchedAt)
	switch s.State {
	case StateReady:
		return age < ttl
	case StateFailed:
		return age < backoff
	default:
		return false
	}
}

// SetWindows changes the staleness and failure backoff windows of snapshots.
// A zero value keeps the current one. Entries already in the shared cache
// keep the TTL they were written with.
func (l *Loader) SetWindows(treeTTL, failureBackoff time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if treeTTL > 0 {
		l.config.TreeTTL = treeTTL
	}
	if failureBackoff > 0 {
		l.config.FailureBackoff = failureBackoff
	}
}

// fetch runs detached from any request so that a client disconnect does not
// abort a fetch other callers are waiting on.
func (l *Loader) fetch(userID string) Snapshot {
	l.mu.Lock()
	gen := l.generation[userID]
	l.inflight[userID]++
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), l.config.FetchTimeout)
	defer cancel()
	ctx, span := otel.Tracer("github.com/s-khaon/expert-tracking-site/internal/console/navigation").Start(ctx, "menu.tree.fetch")
	span.SetAttributes(attribute.String("user.id", userID))
	defer span.End()

	start := l.now()
	var tree []MenuNode
	err := safe.Call(func() error {
		var err error
		if l.query != nil {
			tree, err = l.query.Get(ctx, userID)
		} else {
			tree, err = l.source.UserMenuTree(ctx, userID)
		}
		return err
	})
	fetchDuration.Observe(l.now().Sub(start).Seconds())

	snap := Snapshot{UserID: userID, FetchedAt: l.now()}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("menu tree fetch timed out after %s: %w", l.config.FetchTimeout, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		fetchTotal.WithLabelValues("failed").Inc()
		log.WithContext(ctx).Errorw("failed to fetch menu tree", "userId", userID, "error", err)
		snap.State = StateFailed
		snap.Tree = []MenuNode{}
		snap.Err = err
	} else {
		if tree == nil {
			tree = []MenuNode{}
		}
		fetchTotal.WithLabelValues("ok").Inc()
		log.WithContext(ctx).Debugw("menu tree fetched", "userId", userID, "nodes", Count(tree))
		snap.State = StateReady
		snap.Tree = tree
	}

	l.mu.Lock()
	stale := l.generation[userID] != gen
	if !stale {
		l.snapshots[userID] = snap
	}
	l.mu.Unlock()

	// CachedQuery wrote the pre-invalidation tree back after Invalidate's Del.
	if stale && l.query != nil {
		if err := l.query.Invalidate(context.Background(), userID); err != nil {
			log.Warnw("failed to drop invalidated menu tree", "userId", userID, "error", err)
		}
	}

	l.mu.Lock()
	if l.inflight[userID]--; l.inflight[userID] <= 0 {
		delete(l.inflight, userID)
		delete(l.generation, userID)
	}
	l.sweepLocked()
	l.mu.Unlock()
	return snap
}

// sweepLocked evicts snapshots no Await would serve any more, at most once
// per tree TTL. Caller holds l.mu.
func (l *Loader) sweepLocked() {
	now := l.now()
	if now.Sub(l.lastSweep) < l.config.TreeTTL {
		return
	}
	l.lastSweep = now
	keep := 2 * max(l.config.TreeTTL, l.config.FailureBackoff)
	for userID, s := range l.snapshots {
		if now.Sub(s.FetchedAt) >= keep {
			delete(l.snapshots, userID)
		}
	}
}
