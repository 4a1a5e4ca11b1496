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

// Package session holds the authenticated identity of a console request.
// The Store is constructed explicitly and passed to whoever needs it.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/s-khaon/expert-tracking-site/pkg/cache"
	"github.com/s-khaon/expert-tracking-site/pkg/http"
	"github.com/s-khaon/expert-tracking-site/pkg/http/jwt"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyToken      = errors.New("empty token")
)

// Session is the server-side record of a logged-in user.
type Session struct {
	Token       string    `json:"token"`
	UserId      string    `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	IsSuperuser bool      `json:"is_superuser"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Store keeps one session per user in the cache, keyed by user id. A token
// that is not the stored one has been revoked.
type Store struct {
	cache  cache.ICache
	auth   http.Auth
	prefix string
}

func NewStore(c cache.ICache, auth http.Auth) *Store {
	prefix := auth.RedisKeyPrefix
	if prefix == "" {
		prefix = "ets:session:"
	}
	return &Store{cache: c, auth: auth, prefix: prefix}
}

func (s *Store) key(userId string) string {
	return s.prefix + userId
}

// Save persists sess until its expiry.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session of %s already expired", sess.UserId)
	}
	data, err := sonic.MarshalString(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.cache.Set(ctx, s.key(sess.UserId), data, ttl).Err()
}

// Hydrate validates token and returns the stored session it belongs to.
func (s *Store) Hydrate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}
	claims, err := jwt.ParseToken(token, s.auth.SecretKey)
	if err != nil {
		return nil, err
	}

	data, err := s.cache.Get(ctx, s.key(claims.UserId)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := sonic.UnmarshalString(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if sess.Token != token {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

// Clear removes the session of sess's user.
func (s *Store) Clear(ctx context.Context, sess *Session) error {
	if sess == nil {
		return nil
	}
	return s.cache.Del(ctx, s.key(sess.UserId)).Err()
}
