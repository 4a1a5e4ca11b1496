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
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/s-khaon/expert-tracking-site/pkg/http"
	"github.com/s-khaon/expert-tracking-site/pkg/log"
)

const issuer = "expert-tracking-site"

// ErrInvalidToken wraps every non-expiry parse failure.
var ErrInvalidToken = errors.New("invalid token")

// AuthClaims are carried by access tokens.
type AuthClaims struct {
	UserId string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// GenToken 生成 access_token 和 refresh_token
func GenToken(userId string, secretKey []byte, accessExpire, refreshExpire time.Duration) (TokenPair, error) {
	now := time.Now()
	expiresAt := now.Add(accessExpire)

	aClaims := &AuthClaims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	aToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, aClaims).SignedString(secretKey)
	if err != nil {
		log.Errorw("sign access token failed", "error", err)
		return TokenPair{}, err
	}

	// refresh token 只携带 subject, 不能当作 access token 使用
	rClaims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userId,
		ExpiresAt: jwt.NewNumericDate(now.Add(refreshExpire)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	rToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, rClaims).SignedString(secretKey)
	if err != nil {
		log.Errorw("sign refresh token failed", "error", err)
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  aToken,
		RefreshToken: rToken,
		TokenType:    "Bearer",
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken 校验 access_token
func ParseToken(aToken, secretKey string) (*AuthClaims, error) {
	claims := new(AuthClaims)
	token, err := jwt.ParseWithClaims(aToken, claims, keyFunc(secretKey), jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, jwt.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserId == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RefreshToken 用 refresh_token 换取新的令牌对
func RefreshToken(auth http.Auth, rToken string) (string, TokenPair, error) {
	var refreshClaims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(rToken, &refreshClaims, keyFunc(auth.SecretKey), jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", TokenPair{}, jwt.ErrTokenExpired
		}
		return "", TokenPair{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || refreshClaims.Subject == "" {
		return "", TokenPair{}, ErrInvalidToken
	}

	userId := refreshClaims.Subject
	pair, err := GenToken(userId, []byte(auth.SecretKey),
		time.Duration(auth.AccessExpire)*time.Minute,
		time.Duration(auth.RefreshExpire)*time.Minute)
	return userId, pair, err
}

func keyFunc(secretKey string) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	}
}
