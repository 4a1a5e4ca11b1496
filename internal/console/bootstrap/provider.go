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
package bootstrap

import (
	"github.com/google/wire"
	"github.com/s-khaon/expert-tracking-site/internal/console/config"
	"github.com/s-khaon/expert-tracking-site/internal/console/navigation"
	"github.com/s-khaon/expert-tracking-site/internal/console/router"
	"github.com/s-khaon/expert-tracking-site/internal/console/service"
	"github.com/s-khaon/expert-tracking-site/internal/console/session"
	"github.com/s-khaon/expert-tracking-site/internal/console/view"
	"github.com/s-khaon/expert-tracking-site/pkg/cache"
	"github.com/s-khaon/expert-tracking-site/pkg/http"
	"github.com/s-khaon/expert-tracking-site/pkg/metrics"
	"github.com/s-khaon/expert-tracking-site/pkg/pprof"
	"github.com/s-khaon/expert-tracking-site/pkg/shutdown"
)

// ProviderSet 应用层 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideTreeSource,
	ProvideLoader,
	ProvidePermissionTTL,
	ProvideSessionStore,
	ProvideRegistry,
	ProvideRouter,
	metrics.NewServer,
	pprof.NewServer,
	shutdown.NewManager,
	wire.Bind(new(service.MenuTrees), new(*navigation.Loader)),
	wire.Bind(new(router.MenuLoader), new(*navigation.Loader)),
	NewApp,
)

// ProvideTreeSource picks where menu trees come from: the database in
// dynamic mode, a file or the built-in tree in static mode.
func ProvideTreeSource(appConf config.AppConfig, menus *service.MenuService) (navigation.TreeSource, error) {
	if appConf.Console.MenuMode != config.MenuModeStatic {
		return menus, nil
	}
	if appConf.Console.MenuFile == "" {
		return navigation.NewStaticSource(navigation.DefaultTree()), nil
	}
	return navigation.LoadStaticSource(appConf.Console.MenuFile)
}

func ProvideLoader(appConf config.AppConfig, source navigation.TreeSource, c cache.ICache) *navigation.Loader {
	conf := navigation.LoaderConfig{
		TreeTTL:        appConf.Console.TreeTTLDuration(),
		FetchTimeout:   appConf.Console.FetchTimeoutDuration(),
		FailureBackoff: appConf.Console.FailureBackoffDuration(),
	}
	// 静态菜单不经过共享缓存
	if appConf.Console.MenuMode != config.MenuModeStatic {
		conf.Cache = c
	}
	return navigation.NewLoader(source, conf)
}

func ProvidePermissionTTL(appConf config.AppConfig) service.PermissionTTL {
	return service.PermissionTTL(appConf.Console.PermissionTTLDuration())
}

// ProvideSessionStore keeps sessions in redis only. A local cache layer would
// let other instances accept a revoked token until their copy expires.
func ProvideSessionStore(remote *cache.RedisCache, httpConf *http.Http) *session.Store {
	return session.NewStore(remote, httpConf.Auth)
}

func ProvideRegistry() *navigation.Registry {
	return navigation.NewRegistry(view.Pages)
}

func ProvideRouter(
	httpConf *http.Http,
	watcher *config.Watcher,
	services *service.Services,
	sessions *session.Store,
	menus router.MenuLoader,
	registry *navigation.Registry,
	shutdownMgr *shutdown.Manager,
) *router.Router {
	return router.NewRouter(httpConf, watcher, services, sessions, menus, registry, shutdownMgr)
}
