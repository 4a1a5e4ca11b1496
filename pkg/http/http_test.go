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

package http

import (
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{Success.Code, fiber.StatusOK},
		{Unauthorized.Code, fiber.StatusUnauthorized},
		{TokenExpired.Code, fiber.StatusUnauthorized},
		{PermissionDenied.Code, fiber.StatusForbidden},
		{NotFound.Code, fiber.StatusNotFound},
		{UserIncorrectPassword.Code, fiber.StatusBadRequest},
		{BadRequest.Code, fiber.StatusBadRequest},
		{InternalError.Code, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.code); got != tt.want {
			t.Errorf("StatusOf(%d) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestHttp_SetDefaults(t *testing.T) {
	h := Http{}
	h.SetDefaults()
	if h.Port != 8080 || h.Auth.CookieName != "access_token" || h.Auth.AccessExpire != 120 {
		t.Errorf("unexpected defaults: %+v", h)
	}
}
