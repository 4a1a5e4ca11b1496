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

package session

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/s-khaon/expert-tracking-site/pkg/http/jwt"
	"github.com/s-khaon/expert-tracking-site/pkg/log"
)

const (
	localsKey = "session"
	// UserIdKey is also read by the access log.
	UserIdKey = "user_id"
)

// Middleware resolves the request's session from the cookie or a Bearer
// header. Requests without a valid session pass through anonymous.
func Middleware(store *Store, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFrom(c, cookieName)
		if token == "" {
			return c.Next()
		}
		sess, err := store.Hydrate(c.UserContext(), token)
		if err != nil {
			if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, jwt.ErrInvalidToken) {
				log.WithContext(c.UserContext()).Debugw("session not restored", "path", c.Path(), "error", err)
			}
			return c.Next()
		}
		Set(c, sess)
		return c.Next()
	}
}

// TokenFrom returns the bearer token of the request, header first.
func TokenFrom(c *fiber.Ctx, cookieName string) string {
	if auth := c.Get(fiber.HeaderAuthorization); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return c.Cookies(cookieName)
}

// Set attaches sess to the request.
func Set(c *fiber.Ctx, sess *Session) {
	c.Locals(localsKey, sess)
	c.Locals(UserIdKey, sess.UserId)
}

// From returns the session stored by Middleware.
func From(c *fiber.Ctx) (*Session, bool) {
	sess, ok := c.Locals(localsKey).(*Session)
	return sess, ok && sess != nil
}
