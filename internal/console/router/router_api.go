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
	"strconv"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/s-khaon/expert-tracking-site/internal/console/model"
	"github.com/s-khaon/expert-tracking-site/internal/console/navigation"
	"github.com/s-khaon/expert-tracking-site/internal/console/repo"
	"github.com/s-khaon/expert-tracking-site/internal/console/service"
	"github.com/s-khaon/expert-tracking-site/internal/console/session"
	"github.com/s-khaon/expert-tracking-site/pkg/http"
	"github.com/s-khaon/expert-tracking-site/pkg/http/jwt"
	"github.com/s-khaon/expert-tracking-site/pkg/log"
)

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

// MenuTreeDetail is the user-tree response.
type MenuTreeDetail struct {
	State string                `json:"state"`
	Tree  []navigation.MenuNode `json:"tree"`
}

// RoutesDetail is the routes response.
type RoutesDetail struct {
	Routes       []navigation.Route `json:"routes"`
	DefaultRoute string             `json:"default_route"`
}

func (rt *Router) apiLogin(c *fiber.Ctx) error {
	var login model.Login
	if err := c.BodyParser(&login); err != nil {
		return http.WithRepErr(c, http.BadRequest)
	}

	result, err := rt.Services.Auth.Login(c.UserContext(), login)
	if err != nil {
		return authError(c, err)
	}
	rt.setTokenCookie(c, result.Token)
	return http.WithRepJSON(c, result)
}

func (rt *Router) apiRefresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return http.WithRepErr(c, http.TokenBeEmpty)
	}

	result, err := rt.Services.Auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return authError(c, err)
	}
	rt.setTokenCookie(c, result.Token)
	return http.WithRepJSON(c, result)
}

func (rt *Router) apiLogout(c *fiber.Ctx) error {
	sess, _ := session.From(c)
	if err := rt.Services.Auth.Logout(c.UserContext(), sess); err != nil {
		log.WithContext(c.UserContext()).Errorw("logout failed", "userId", sess.UserId, "error", err)
		return http.WithRepErr(c, http.InternalError)
	}
	rt.clearTokenCookie(c)
	return http.WithRepNotDetail(c)
}

func (rt *Router) apiMe(c *fiber.Ctx) error {
	sess, _ := session.From(c)
	info, err := rt.Services.Auth.Me(c.UserContext(), sess.UserId)
	if err != nil {
		return authError(c, err)
	}
	return http.WithRepJSON(c, info)
}

// userTree waits up to the fetch timeout; API callers have no loading page.
func (rt *Router) userTree(c *fiber.Ctx) error {
	sess, _ := session.From(c)
	snap := rt.Menus.Await(c.UserContext(), sess.UserId, rt.console().FetchTimeoutDuration())

	switch snap.State {
	case navigation.StateReady:
		return http.WithRepJSON(c, MenuTreeDetail{State: snap.State.String(), Tree: snap.Tree})
	case navigation.StateFailed:
		return http.WithRepErrMsg(c, http.Failed.Code, "menu tree unavailable")
	default:
		return http.WithRepErrMsg(c, http.Failed.Code, "menu tree is still loading")
	}
}

func (rt *Router) userRoutes(c *fiber.Ctx) error {
	sess, _ := session.From(c)
	snap := rt.Menus.Await(c.UserContext(), sess.UserId, rt.console().FetchTimeoutDuration())
	if snap.State != navigation.StateReady {
		return http.WithRepErrMsg(c, http.Failed.Code, "menu tree unavailable")
	}

	table := navigation.NewRouteTable(snap.Tree, rt.Registry)
	return http.WithRepJSON(c, RoutesDetail{
		Routes:       table.Routes(),
		DefaultRoute: rt.defaultRoute(snap.Tree),
	})
}

func (rt *Router) menuTree(c *fiber.Ctx) error {
	var activeOnly *bool
	if v := c.Query("is_active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return http.WithRepErrMsg(c, http.BadRequest.Code, "is_active must be a boolean")
		}
		activeOnly = &b
	}

	tree, err := rt.Services.Menu.MenuTree(c.UserContext(), activeOnly)
	if err != nil {
		log.WithContext(c.UserContext()).Errorw("failed to load menu tree", "error", err)
		return http.WithRepErr(c, http.InternalError)
	}
	return http.WithRepJSON(c, tree)
}

func (rt *Router) userPermissions(c *fiber.Ctx) error {
	sess, _ := session.From(c)
	grants, err := rt.Services.Permission.UserGrants(c.UserContext(), sess.UserId)
	if err != nil {
		log.WithContext(c.UserContext()).Errorw("failed to load permissions", "userId", sess.UserId, "error", err)
		return http.WithRepErr(c, http.InternalError)
	}
	return http.WithRepJSON(c, grants)
}

func authError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrCredentialsRequired):
		return http.WithRepErr(c, http.UsernameArePasswordIsRequired)
	case errors.Is(err, service.ErrInvalidPassword):
		return http.WithRepErr(c, http.UserIncorrectPassword)
	case errors.Is(err, service.ErrUserDisabled):
		return http.WithRepErr(c, http.UserDisabled)
	case errors.Is(err, repo.ErrUserNotFound):
		return http.WithRepErr(c, http.UserNotExist)
	case errors.Is(err, gojwt.ErrTokenExpired):
		return http.WithRepErr(c, http.TokenExpired)
	case errors.Is(err, jwt.ErrInvalidToken):
		return http.WithRepErr(c, http.InvalidToken)
	default:
		log.WithContext(c.UserContext()).Errorw("auth request failed", "path", c.Path(), "error", err)
		return http.WithRepErr(c, http.InternalError)
	}
}
