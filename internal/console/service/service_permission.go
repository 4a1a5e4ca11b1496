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
	"fmt"
	"time"

	"github.com/s-khaon/expert-tracking-site/internal/console/model"
	"github.com/s-khaon/expert-tracking-site/internal/console/repo"
	"github.com/s-khaon/expert-tracking-site/pkg/cache"
)

const (
	permissionCacheKeyPrefix = "ets:perm:"
	defaultPermissionTTL     = 5 * time.Minute
)

// PermissionService resolves the permission codes of a user through their
// active roles. Results are cached for a short window.
type PermissionService struct {
	userRepo repo.IUserRepository
	roleRepo repo.IRoleRepository
	query    *cache.CachedQuery[model.Grants]
}

func NewPermissionService(repos *repo.Repositories, c cache.ICache, ttl time.Duration) *PermissionService {
	if ttl <= 0 {
		ttl = defaultPermissionTTL
	}
	s := &PermissionService{
		userRepo: repos.User,
		roleRepo: repos.Role,
	}
	s.query = cache.NewCachedQuery(
		c,
		func(params ...any) string { return permissionCacheKeyPrefix + params[0].(string) },
		func(ctx context.Context, params ...any) (model.Grants, error) {
			return s.loadGrants(ctx, params[0].(string))
		},
		cache.WithTTL[model.Grants](ttl),
		cache.WithLogPrefix[model.Grants]("[Permission]"),
	)
	return s
}

// UserGrants returns the superuser flag and permission codes of userId.
func (s *PermissionService) UserGrants(ctx context.Context, userId string) (model.Grants, error) {
	return s.query.Get(ctx, userId)
}

// UserPermissions returns the permission codes of userId.
func (s *PermissionService) UserPermissions(ctx context.Context, userId string) ([]string, error) {
	g, err := s.UserGrants(ctx, userId)
	if err != nil {
		return nil, err
	}
	return g.Codes, nil
}

func (s *PermissionService) HasPermission(ctx context.Context, userId, code string) (bool, error) {
	g, err := s.UserGrants(ctx, userId)
	if err != nil {
		return false, err
	}
	return g.Has(code), nil
}

// Invalidate drops the cached grants of userId.
func (s *PermissionService) Invalidate(ctx context.Context, userId string) error {
	return s.query.Invalidate(ctx, userId)
}

func (s *PermissionService) loadGrants(ctx context.Context, userId string) (model.Grants, error) {
	user, err := s.userRepo.GetByUserId(ctx, userId)
	if err != nil {
		return model.Grants{}, fmt.Errorf("load user %s: %w", userId, err)
	}
	if !user.IsActive {
		return model.Grants{Codes: []string{}}, nil
	}

	roleIds, err := s.roleRepo.GetActiveRoleIds(ctx, userId)
	if err != nil {
		return model.Grants{}, fmt.Errorf("load roles of %s: %w", userId, err)
	}
	codes, err := s.roleRepo.GetPermissionCodesByRoles(ctx, roleIds)
	if err != nil {
		return model.Grants{}, fmt.Errorf("load permissions of %s: %w", userId, err)
	}
	return model.Grants{Superuser: user.IsSuperuser, Codes: codes}, nil
}
