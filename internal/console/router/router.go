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

package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/s-khaon/expert-tracking-site/internal/console/config"
	"github.com/s-khaon/expert-tracking-site/internal/console/guard"
	"github.com/s-khaon/expert-tracking-site/internal/console/model"
	"github.com/s-khaon/expert-tracking-site/internal/console/navigation"
	"github.com/s-khaon/expert-tracking-site/internal/console/service"
	"github.com/s-khaon/expert-tracking-site/internal/console/session"
	"github.com/s-khaon/expert-tracking-site/internal/console/view"
	"github.com/s-khaon/expert-tracking-site/pkg/http"
	"github.com/s-khaon/expert-tracking-site/pkg/http/middleware"
	"github.com/s-khaon/expert-tracking-site/pkg/shutdown"
	"github.com/s-khaon/expert-tracking-site/pkg/version"
)

// MenuLoader is what the router needs from the menu tree loader. Prefetch
// and invalidation go through the auth service.
type MenuLoader interface {
	guard.Trees
}

type Router struct {
	Http     *http.Http
	Console  *config.Watcher
	Services *service.Services
	Sessions *session.Store
	Menus    MenuLoader
	Registry *navigation.Registry
	Shutdown *shutdown.Manager
}

func NewRouter(
	httpConf *http.Http,
	console *config.Watcher,
	services *service.Services,
	sessions *session.Store,
	menus MenuLoader,
	registry *navigation.Registry,
	shutdownMgr *shutdown.Manager,
) *Router {
	return &Router{
		Http:     httpConf,
		Console:  console,
		Services: services,
		Sessions: sessions,
		Menus:    menus,
		Registry: registry,
		Shutdown: shutdownMgr,
	}
}

func (rt *Router) console() config.Console {
	if rt.Console == nil {
		var c config.Console
		c.SetDefaults()
		return c
	}
	return rt.Console.Console()
}

func (rt *Router) Router() *fiber.App {
	bodyLimit := rt.Http.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = 4 * 1024 * 1024
	}

	app := fiber.New(fiber.Config{
		AppName:               "Expert Tracking Site",
		DisableStartupMessage: true,
		ReadTimeout:           time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(rt.Http.IdleTimeout) * time.Second,
		BodyLimit:             bodyLimit,
	})

	app.Use(
		middleware.ExceptionMiddleware,
		middleware.RequestMiddleware(),
		middleware.RealIPMiddleware(),
		middleware.TraceMiddleware(),
		session.Middleware(rt.Sessions, rt.Http.Auth.CookieName),
		middleware.AccessLogMiddleware(rt.Http),
	)

	app.Get("/health", rt.health)
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	rt.apiGroup(app.Group("/api/v1", cors.New()))

	pages := app.Group("", i18nMiddleware())
	pages.Get("/login", rt.loginPage)
	pages.Post("/login", rt.login)
	pages.Get("/logout", rt.logout)
	pages.Post("/logout", rt.logout)
	pages.Get("/", rt.pageGuard(true), rt.index)
	pages.Get("/*", rt.pageGuard(false), rt.page)

	app.Use(func(c *fiber.Ctx) error {
		return http.WithRepErr(c, http.NotFound)
	})
	return app
}

func (rt *Router) apiGroup(r fiber.Router) {
	r.Post("/auth/login", rt.apiLogin)
	r.Post("/auth/refresh", rt.apiRefresh)

	r.Post("/auth/logout", authenticated, rt.apiLogout)
	r.Get("/auth/me", authenticated, rt.apiMe)

	r.Get("/menus/user-tree", authenticated, rt.userTree)
	r.Get("/menus/routes", authenticated, rt.userRoutes)
	r.Get("/menus/tree", authenticated,
		guard.RequirePermission(rt.Services.Permission, guard.Requirement{Permission: model.PermMenuRead}),
		rt.menuTree)

	r.Get("/permissions/user", authenticated, rt.userPermissions)

	r.Use(func(c *fiber.Ctx) error {
		return http.WithRepErr(c, http.NotFound)
	})
}

// pageGuard reads the console section per request so that reloaded
// settings apply without a restart.
func (rt *Router) pageGuard(authenticatedOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		conf := rt.console()
		return guard.New(guard.Config{
			Trees:             rt.Menus,
			Fallback:          conf.FallbackPath,
			LoginPath:         conf.LoginPath,
			SkipAuthorization: authenticatedOnly || conf.MenuMode == config.MenuModeStatic,
			AwaitWait:         conf.AwaitWaitDuration(),
			Loading: func(c *fiber.Ctx) error {
				return view.Render(c, fiber.StatusOK, view.LoadingPage(translator(c), 1))
			},
		})(c)
	}
}

func (rt *Router) health(c *fiber.Ctx) error {
	if rt.Shutdown != nil && rt.Shutdown.IsShuttingDown() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}
	return c.SendString("ok")
}

func authenticated(c *fiber.Ctx) error {
	if _, ok := session.From(c); !ok {
		return http.WithRepErr(c, http.Unauthorized)
	}
	return c.Next()
}
