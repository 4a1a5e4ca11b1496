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
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/s-khaon/expert-tracking-site/pkg/cache"
	"github.com/s-khaon/expert-tracking-site/pkg/http"
	"github.com/s-khaon/expert-tracking-site/pkg/http/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuth = http.Auth{SecretKey: "session-test-secret", AccessExpire: 60, RefreshExpire: 120, CookieName: "access_token"}

func newStore() *Store {
	return NewStore(cache.NewFastCache(cache.FastCacheConfig{}), testAuth)
}

func login(t *testing.T, store *Store, userId string) *Session {
	t.Helper()
	pair, err := jwt.GenToken(userId, []byte(testAuth.SecretKey), time.Hour, 2*time.Hour)
	require.NoError(t, err)
	sess := &Session{Token: pair.AccessToken, UserId: userId, Username: "alice", DisplayName: "Alice", ExpiresAt: pair.ExpiresAt}
	require.NoError(t, store.Save(context.Background(), sess))
	return sess
}

func TestStore_SaveHydrateClear(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	sess := login(t, store, "u1")

	got, err := store.Hydrate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserId)
	assert.Equal(t, "Alice", got.DisplayName)

	require.NoError(t, store.Clear(ctx, got))
	_, err = store.Hydrate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_NewLoginRevokesOldToken(t *testing.T) {
	store := newStore()
	first := login(t, store, "u1")
	time.Sleep(1100 * time.Millisecond) // jwt timestamps have second resolution
	second := login(t, store, "u1")
	require.NotEqual(t, first.Token, second.Token)

	_, err := store.Hydrate(context.Background(), first.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Hydrate(context.Background(), second.Token)
	assert.NoError(t, err)
}

func TestStore_HydrateErrors(t *testing.T) {
	store := newStore()

	_, err := store.Hydrate(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyToken)

	_, err = store.Hydrate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	// valid token, nothing stored
	pair, err := jwt.GenToken("ghost", []byte(testAuth.SecretKey), time.Hour, time.Hour)
	require.NoError(t, err)
	_, err = store.Hydrate(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_SaveExpired(t *testing.T) {
	err := newStore().Save(context.Background(), &Session{UserId: "u1", ExpiresAt: time.Now().Add(-time.Second)})
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	store := newStore()
	sess := login(t, store, "u1")

	app := fiber.New()
	app.Use(Middleware(store, testAuth.CookieName))
	app.Get("/", func(c *fiber.Ctx) error {
		if s, ok := From(c); ok {
			return c.SendString(s.UserId)
		}
		return c.SendString("anonymous")
	})

	tests := []struct {
		name string
		hdr  map[string]string
		want string
	}{
		{name: "cookie", hdr: map[string]string{"Cookie": "access_token=" + sess.Token}, want: "u1"},
		{name: "bearer", hdr: map[string]string{"Authorization": "Bearer " + sess.Token}, want: "u1"},
		{name: "none", want: "anonymous"},
		{name: "garbage", hdr: map[string]string{"Authorization": "Bearer nope"}, want: "anonymous"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/", nil)
			for k, v := range tt.hdr {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.want, string(body))
		})
	}
}
