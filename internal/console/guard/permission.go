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

package guard

import (
	"context"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/gofiber/fiber/v2"
	"github.com/s-khaon/expert-tracking-site/internal/console/model"
	"github.com/s-khaon/expert-tracking-site/internal/console/session"
	"github.com/s-khaon/expert-tracking-site/pkg/http"
	"github.com/s-khaon/expert-tracking-site/pkg/log"
)

// PermissionChecker resolves what a user is allowed to do.
type PermissionChecker interface {
	UserGrants(ctx context.Context, userId string) (model.Grants, error)
}

// Requirement describes the permissions an API route needs. Permission and
// Permissions are merged; RequireAll switches any-of to all-of. Expr, when
// set, must also evaluate to true.
//
// Expr sees `superuser` (bool), `codes` ([]string) and `has(code)`, e.g.
// `has("menu:read") || superuser`.
type Requirement struct {
	Permission  string
	Permissions []string
	RequireAll  bool
	Expr        string
}

func (r Requirement) codes() []string {
	codes := make([]string, 0, len(r.Permissions)+1)
	if r.Permission != "" {
		codes = append(codes, r.Permission)
	}
	return append(codes, r.Permissions...)
}

func exprEnv(g model.Grants) map[string]any {
	return map[string]any{
		"superuser": g.Superuser,
		"codes":     g.Codes,
		"has":       g.Has,
	}
}

// Compile checks the requirement and prepares its expression.
func (r Requirement) Compile() (*vm.Program, error) {
	if strings.TrimSpace(r.Expr) == "" {
		return nil, nil
	}
	program, err := expr.Compile(r.Expr, expr.Env(exprEnv(model.Grants{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile permission expression %q: %w", r.Expr, err)
	}
	return program, nil
}

// Allows reports whether g satisfies the requirement.
func (r Requirement) Allows(g model.Grants, program *vm.Program) (bool, error) {
	if g.Superuser {
		return true, nil
	}
	codes := r.codes()
	if len(codes) > 0 {
		matched := 0
		for _, code := range codes {
			if g.Has(code) {
				matched++
			}
		}
		if matched == 0 || (r.RequireAll && matched < len(codes)) {
			return false, nil
		}
	}
	if program == nil {
		return true, nil
	}
	out, err := expr.Run(program, exprEnv(g))
	if err != nil {
		return false, fmt.Errorf("evaluate permission expression: %w", err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// RequirePermission guards an API route. It panics on an invalid expression
// so that a broken route table fails at startup.
func RequirePermission(checker PermissionChecker, req Requirement) fiber.Handler {
	program, err := req.Compile()
	if err != nil {
		panic(err)
	}

	return func(c *fiber.Ctx) error {
		sess, ok := session.From(c)
		if !ok {
			decisions.WithLabelValues("permission", OutcomeUnauthenticated.String()).Inc()
			return http.WithRepErr(c, http.Unauthorized)
		}

		grants, err := checker.UserGrants(c.UserContext(), sess.UserId)
		if err != nil {
			log.WithContext(c.UserContext()).Errorw("failed to load permissions", "userId", sess.UserId, "error", err)
			return http.WithRepErr(c, http.InternalError)
		}

		allowed, err := req.Allows(grants, program)
		if err != nil {
			log.WithContext(c.UserContext()).Warnw("permission expression failed", "userId", sess.UserId, "error", err)
		}
		if !allowed {
			decisions.WithLabelValues("permission", OutcomeUnauthorized.String()).Inc()
			return http.WithRepErr(c, http.PermissionDenied)
		}

		decisions.WithLabelValues("permission", OutcomeAuthorized.String()).Inc()
		return c.Next()
	}
}
