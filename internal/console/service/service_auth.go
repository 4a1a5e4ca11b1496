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

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/s-khaon/expert-tracking-site/internal/console/model"
	"github.com/s-khaon/expert-tracking-site/internal/console/repo"
	"github.com/s-khaon/expert-tracking-site/internal/console/session"
	"github.com/s-khaon/expert-tracking-site/pkg/http"
	"github.com/s-khaon/expert-tracking-site/pkg/http/jwt"
	"github.com/s-khaon/expert-tracking-site/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCredentialsRequired = errors.New(http.UsernameArePasswordIsRequired.Msg)
	ErrInvalidPassword     = errors.New(http.UserIncorrectPassword.Msg)
	ErrUserDisabled        = errors.New(http.UserDisabled.Msg)
)

// MenuTrees is the part of the menu loader the auth flow drives.
type MenuTrees interface {
	Prefetch(userId string)
	Invalidate(ctx context.Context, userId string) error
}

type LoginResult struct {
	User  model.UserInfo `json:"user"`
	Token jwt.TokenPair  `json:"token"`
}

type AuthService struct {
	userRepo    repo.IUserRepository
	sessions    *session.Store
	permissions *PermissionService
	menus       MenuTrees
	auth        http.Auth
}

func NewAuthService(repos *repo.Repositories, sessions *session.Store, permissions *PermissionService, menus MenuTrees, auth http.Auth) *AuthService {
	return &AuthService{
		userRepo:    repos.User,
		sessions:    sessions,
		permissions: permissions,
		menus:       menus,
		auth:        auth,
	}
}

// Login checks the credentials, issues a token pair and opens the session.
// The user's menu tree starts loading right away.
func (s *AuthService) Login(ctx context.Context, login model.Login) (*LoginResult, error) {
	username := strings.TrimSpace(login.Username)
	if username == "" || login.Password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			// 不区分用户不存在和密码错误
			log.Infow("login with unknown username", "username", username)
			return nil, ErrInvalidPassword
		}
		return nil, err
	}
	if !comparePassword(user.Password, login.Password) {
		log.Infow("incorrect password provided", "username", username)
		return nil, ErrInvalidPassword
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	if s.menus != nil {
		s.menus.Prefetch(user.UserId)
	}
	log.Infow("user logged in", "userId", user.UserId, "username", user.Username)
	return result, nil
}

// Refresh exchanges a refresh token for a new pair. The previous access
// token stops working.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	userId, _, err := jwt.RefreshToken(s.auth, refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}
	return s.openSession(ctx, user)
}

// Logout clears the session and everything derived from it.
func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return nil
	}
	if err := s.sessions.Clear(ctx, sess); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if s.menus != nil {
		if err := s.menus.Invalidate(ctx, sess.UserId); err != nil {
			log.Warnw("failed to invalidate menu tree", "userId", sess.UserId, "error", err)
		}
	}
	if s.permissions != nil {
		if err := s.permissions.Invalidate(ctx, sess.UserId); err != nil {
			log.Warnw("failed to invalidate permissions", "userId", sess.UserId, "error", err)
		}
	}
	log.Infow("user logged out", "userId", sess.UserId)
	return nil
}

func (s *AuthService) Me(ctx context.Context, userId string) (*model.UserInfo, error) {
	user, err := s.userRepo.GetByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	info := user.Info()
	return &info, nil
}

// CreateUser stores a new user with a hashed password.
func (s *AuthService) CreateUser(ctx context.Context, user *model.User, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if user.UserId == "" {
		user.UserId = NewUserId()
	}
	user.Password = hash
	return s.userRepo.Create(ctx, user)
}

// EnsureAdmin creates a superuser named username unless a user with that
// name exists. It reports whether one was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, ErrCredentialsRequired
	}
	_, err := s.userRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, repo.ErrUserNotFound):
		return false, err
	}

	admin := &model.User{Username: username, FullName: username, IsActive: true, IsSuperuser: true}
	if err := s.CreateUser(ctx, admin, password); err != nil {
		return false, fmt.Errorf("create admin %s: %w", username, err)
	}
	log.Infow("admin user created", "userId", admin.UserId, "username", username)
	return true, nil
}

func (s *AuthService) openSession(ctx context.Context, user *model.User) (*LoginResult, error) {
	pair, err := jwt.GenToken(user.UserId, []byte(s.auth.SecretKey),
		time.Duration(s.auth.AccessExpire)*time.Minute,
		time.Duration(s.auth.RefreshExpire)*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}

	sess := &session.Session{
		Token:       pair.AccessToken,
		UserId:      user.UserId,
		Username:    user.Username,
		DisplayName: user.DisplayName(),
		IsSuperuser: user.IsSuperuser,
		ExpiresAt:   pair.ExpiresAt,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &LoginResult{User: user.Info(), Token: pair}, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func comparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func NewUserId() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
