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

// Package guard decides, per request, whether the current user may open a
// console page or call an API route.
package guard

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/s-khaon/expert-tracking-site/internal/console/navigation"
	"github.com/s-khaon/expert-tracking-site/internal/console/session"
	"github.com/s-khaon/expert-tracking-site/pkg/log"
)

// Outcome of a page guard evaluation.
type Outcome int

const (
	OutcomeLoading Outcome = iota
	OutcomeAuthorized
	OutcomeUnauthorized
	OutcomeUnauthenticated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAuthorized:
		return "authorized"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeUnauthenticated:
		return "unauthenticated"
	default:
		return "loading"
	}
}

const (
	DefaultLoginPath = "/login"
	DefaultAwaitWait = 300 * time.Millisecond

	treeKey    = "menu_tree"
	outcomeKey = "guard_outcome"
)

// Trees is the part of the menu loader the guard reads.
type Trees interface {
	Await(ctx context.Context, userID string, wait time.Duration) navigation.Snapshot
}

type Config struct {
	// Next skips the guard when it returns true.
	Next func(c *fiber.Ctx) bool

	Trees Trees
	// RequiredPath is checked instead of the request path when set.
	RequiredPath string
	Fallback     string
	LoginPath    string
	// SkipAuthorization only requires a session; the menu tree is still
	// loaded for the shell.
	SkipAuthorization bool
	// AwaitWait bounds how long a request waits for an in-flight fetch.
	AwaitWait time.Duration
	// Loading renders the page shown while the tree is being fetched.
	Loading fiber.Handler
}

func (c *Config) setDefaults() {
	if c.Fallback == "" {
		c.Fallback = navigation.FallbackPath
	}
	if c.LoginPath == "" {
		c.LoginPath = DefaultLoginPath
	}
	if c.AwaitWait <= 0 {
		c.AwaitWait = DefaultAwaitWait
	}
	if c.Loading == nil {
		c.Loading = defaultLoading
	}
}

var decisions = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "console",
	Subsystem: "guard",
	Name:      "decisions_total",
	Help:      "Route and permission guard decisions by guard and outcome.",
}, []string{"guard", "outcome"})

// Collectors returns the guard's prometheus collectors.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{decisions}
}

// Decide evaluates the page guard for one request. It never retries.
func Decide(sess *session.Session, snap navigation.Snapshot, path string, skipAuthorization bool) Outcome {
	if sess == nil {
		return OutcomeUnauthenticated
	}
	if snap.State == navigation.StateLoading {
		return OutcomeLoading
	}
	if skipAuthorization || navigation.ValidateRouteAccess(path, snap.Tree) {
		return OutcomeAuthorized
	}
	return OutcomeUnauthorized
}

// New returns the page guard middleware. An authorized request continues
// with the user's menu snapshot in locals, see TreeFrom.
func New(config Config) fiber.Handler {
	config.setDefaults()

	return func(c *fiber.Ctx) error {
		if config.Next != nil && config.Next(c) {
			return c.Next()
		}

		path := config.RequiredPath
		if path == "" {
			path = c.Path()
		}

		sess, _ := session.From(c)
		var snap navigation.Snapshot
		if sess != nil && config.Trees != nil {
			snap = config.Trees.Await(c.UserContext(), sess.UserId, config.AwaitWait)
		} else if sess != nil {
			snap = navigation.Snapshot{UserID: sess.UserId, State: navigation.StateReady}
		}

		outcome := Decide(sess, snap, path, config.SkipAuthorization)
		decisions.WithLabelValues("route", outcome.String()).Inc()
		c.Locals(outcomeKey, outcome)

		switch outcome {
		case OutcomeUnauthenticated:
			return c.Redirect(LoginRedirect(config.LoginPath, c.OriginalURL()), fiber.StatusFound)
		case OutcomeLoading:
			return config.Loading(c)
		case OutcomeUnauthorized:
			if path != config.Fallback {
				log.WithContext(c.UserContext()).Debugw("route not granted, redirect to fallback",
					"userId", sess.UserId, "path", path, "fallback", config.Fallback)
				return c.Redirect(config.Fallback, fiber.StatusFound)
			}
			// 已在回退页, 交给页面渲染空状态, 避免重定向循环
		}

		c.Locals(treeKey, snap)
		return c.Next()
	}
}

// TreeFrom returns the menu snapshot the guard resolved for this request.
func TreeFrom(c *fiber.Ctx) (navigation.Snapshot, bool) {
	snap, ok := c.Locals(treeKey).(navigation.Snapshot)
	return snap, ok
}

// OutcomeFrom returns the guard outcome of this request.
func OutcomeFrom(c *fiber.Ctx) (Outcome, bool) {
	o, ok := c.Locals(outcomeKey).(Outcome)
	return o, ok
}

// LoginRedirect builds the login URL carrying the originally requested URI.
func LoginRedirect(loginPath, originalURI string) string {
	path, _, _ := strings.Cut(originalURI, "?")
	if path == "" || path == "/" || path == loginPath {
		return loginPath
	}
	return loginPath + "?redirect=" + url.QueryEscape(originalURI)
}

// SafeRedirect returns target when it is a local path, otherwise fallback.
func SafeRedirect(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") ||
		strings.HasPrefix(target, "/\\") || strings.ContainsAny(target, "\r\n") {
		return fallback
	}
	return target
}

func defaultLoading(c *fiber.Ctx) error {
	c.Set("Refresh", "1")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusOK).SendString("loading")
}
