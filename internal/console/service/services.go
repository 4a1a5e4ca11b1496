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
	"time"

	"github.com/google/wire"
	"github.com/s-khaon/expert-tracking-site/internal/console/repo"
	"github.com/s-khaon/expert-tracking-site/internal/console/session"
	"github.com/s-khaon/expert-tracking-site/pkg/cache"
	"github.com/s-khaon/expert-tracking-site/pkg/http"
)

// Services 统一管理所有 service
type Services struct {
	Menu       *MenuService
	Auth       *AuthService
	Permission *PermissionService
}

// ProviderSet 提供服务层相关的依赖
var ProviderSet = wire.NewSet(NewMenuService, NewServices)

// PermissionTTL is how long resolved grants stay cached; zero means the
// default of five minutes.
type PermissionTTL time.Duration

// NewServices wires the services around menu, which also backs the menu
// loader passed in as menus.
func NewServices(menu *MenuService, repos *repo.Repositories, c cache.ICache, sessions *session.Store, menus MenuTrees, httpConf *http.Http, ttl PermissionTTL) *Services {
	permissions := NewPermissionService(repos, c, time.Duration(ttl))
	return &Services{
		Menu:       menu,
		Auth:       NewAuthService(repos, sessions, permissions, menus, httpConf.Auth),
		Permission: permissions,
	}
}
