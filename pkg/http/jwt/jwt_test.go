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

package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/s-khaon/expert-tracking-site/pkg/http"
)

const testSecret = "bf284d03-ba65-42d4-a9fe-0d2fbfe61060"

func TestGenAndParseToken(t *testing.T) {
	pair, err := GenToken("42", []byte(testSecret), time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("GenToken error: %v", err)
	}
	if pair.TokenType != "Bearer" || pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("unexpected pair: %+v", pair)
	}

	claims, err := ParseToken(pair.AccessToken, testSecret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserId != "42" || claims.Issuer != issuer {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestParseToken_Errors(t *testing.T) {
	expired, err := GenToken("1", []byte(testSecret), -time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("GenToken error: %v", err)
	}
	if _, err := ParseToken(expired.AccessToken, testSecret); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}

	valid, _ := GenToken("1", []byte(testSecret), time.Hour, time.Hour)
	if _, err := ParseToken(valid.AccessToken, "other-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
	if _, err := ParseToken(valid.RefreshToken, testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh token must not parse as access token, got %v", err)
	}
	if _, err := ParseToken("garbage", testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestRefreshToken(t *testing.T) {
	auth := http.Auth{SecretKey: testSecret, AccessExpire: 60, RefreshExpire: 120}
	pair, err := GenToken("7", []byte(testSecret), time.Hour, 2*time.Hour)
	if err != nil {
		t.Fatalf("GenToken error: %v", err)
	}

	userId, refreshed, err := RefreshToken(auth, pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if userId != "7" {
		t.Errorf("expected user 7, got %s", userId)
	}
	if _, err := ParseToken(refreshed.AccessToken, testSecret); err != nil {
		t.Errorf("refreshed access token should parse: %v", err)
	}

	if _, _, err := RefreshToken(auth, pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access token must not be accepted as refresh token, got %v", err)
	}
}
