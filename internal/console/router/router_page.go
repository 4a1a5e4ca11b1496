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
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/s-khaon/expert-tracking-site/internal/console/guard"
	"github.com/s-khaon/expert-tracking-site/internal/console/model"
	"github.com/s-khaon/expert-tracking-site/internal/console/navigation"
	"github.com/s-khaon/expert-tracking-site/internal/console/service"
	"github.com/s-khaon/expert-tracking-site/internal/console/session"
	"github.com/s-khaon/expert-tracking-site/internal/console/view"
	"github.com/s-khaon/expert-tracking-site/pkg/http/jwt"
	"github.com/s-khaon/expert-tracking-site/pkg/log"
)

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Redirect string `form:"redirect"`
}

func (rt *Router) loginPage(c *fiber.Ctx) error {
	redirect := guard.SafeRedirect(c.Query("redirect"), "/")
	if _, ok := session.From(c); ok {
		return c.Redirect(redirect, fiber.StatusFound)
	}
	return view.Render(c, fiber.StatusOK, view.LoginPage(view.LoginProps{
		Action:   rt.console().LoginPath,
		Redirect: c.Query("redirect"),
		T:        translator(c),
	}))
}

func (rt *Router) login(c *fiber.Ctx) error {
	var form loginForm
	if err := c.BodyParser(&form); err != nil {
		log.WithContext(c.UserContext()).Debugw("invalid login form", "error", err)
	}

	result, err := rt.Services.Auth.Login(c.UserContext(), model.Login{Username: form.Username, Password: form.Password})
	if err != nil {
		t := translator(c)
		status, msg := fiber.StatusUnauthorized, ""
		switch {
		case errors.Is(err, service.ErrCredentialsRequired):
			status, msg = fiber.StatusBadRequest, t.T("login.error.required", "Please enter your username and password")
		case errors.Is(err, service.ErrInvalidPassword):
			msg = t.T("login.error.invalid", "Incorrect username or password")
		case errors.Is(err, service.ErrUserDisabled):
			status, msg = fiber.StatusForbidden, t.T("login.error.disabled", "This account is disabled")
		default:
			log.WithContext(c.UserContext()).Errorw("login failed", "username", form.Username, "error", err)
			status, msg = fiber.StatusInternalServerError, t.T("login.error.internal", "Sign in failed, please try again later")
		}
		return view.Render(c, status, view.LoginPage(view.LoginProps{
			Action:   rt.console().LoginPath,
			Redirect: form.Redirect,
			Username: form.Username,
			Error:    msg,
			T:        t,
		}))
	}

	rt.setTokenCookie(c, result.Token)
	return c.Redirect(guard.SafeRedirect(form.Redirect, "/"), fiber.StatusFound)
}

func (rt *Router) logout(c *fiber.Ctx) error {
	if sess, ok := session.From(c); ok {
		if err := rt.Services.Auth.Logout(c.UserContext(), sess); err != nil {
			log.WithContext(c.UserContext()).Errorw("logout failed", "userId", sess.UserId, "error", err)
		}
	}
	rt.clearTokenCookie(c)
	return c.Redirect(rt.console().LoginPath, fiber.StatusFound)
}

// index sends the user to the first page of their menu.
func (rt *Router) index(c *fiber.Ctx) error {
	snap, _ := guard.TreeFrom(c)
	return c.Redirect(rt.defaultRoute(snap.Tree), fiber.StatusFound)
}

func (rt *Router) defaultRoute(tree []navigation.MenuNode) string {
	table := navigation.NewRouteTable(tree, rt.Registry)
	if len(table.Routes()) == 0 {
		return rt.console().FallbackPath
	}
	return table.Default()
}

// page renders the shell with the page of the generated route at the
// request path.
func (rt *Router) page(c *fiber.Ctx) error {
	sess, _ := session.From(c)
	snap, _ := guard.TreeFrom(c)
	t := translator(c)
	path := c.Path()

	var notice *view.Notice
	if snap.State == navigation.StateFailed {
		notice = &view.Notice{Kind: view.NoticeError, Message: t.T("notice.menu_failed", "Failed to load the menu, please refresh later")}
	}

	props := view.ShellProps{
		UserName:   sess.DisplayName,
		LogoutPath: "/logout",
		Sidebar:    navigation.BuildSidebar(snap.Tree, path),
		Notice:     notice,
		T:          t,
	}

	route, ok := navigation.NewRouteTable(snap.Tree, rt.Registry).Lookup(path)
	if !ok {
		// 回退页本身不可访问, 或菜单中有路径但组件未注册
		props.Title = t.T("page.empty", "No page is available for your account.")
		props.Body = view.EmptyBody(t)
		status := fiber.StatusOK
		if outcome, _ := guard.OutcomeFrom(c); outcome == guard.OutcomeAuthorized && path != rt.console().FallbackPath {
			status = fiber.StatusNotFound
		}
		return view.Render(c, status, view.Shell(props))
	}

	props.Title = route.Title
	props.Body = route.Component(navigation.PageContext{
		Page:     route.Page,
		Title:    route.Title,
		Path:     route.Path,
		UserName: sess.DisplayName,
		Localize: t,
	})
	return view.Render(c, fiber.StatusOK, view.Shell(props))
}

func (rt *Router) setTokenCookie(c *fiber.Ctx, pair jwt.TokenPair) {
	c.Cookie(&fiber.Cookie{
		Name:     rt.Http.Auth.CookieName,
		Value:    pair.AccessToken,
		Path:     "/",
		Expires:  pair.ExpiresAt,
		HTTPOnly: true,
		Secure:   rt.Http.Auth.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (rt *Router) clearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     rt.Http.Auth.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   rt.Http.Auth.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
