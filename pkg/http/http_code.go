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

import "github.com/gofiber/fiber/v2"

var (
	Failed = failed(5001, "Request failed")

	// Unauthorized 44xx
	Unauthorized         = failed(4401, "Unauthorized")
	AuthenticationFailed = failed(4402, "Authentication failed")
	InvalidToken         = failed(4405, "Invalid token")
	TokenBeEmpty         = failed(4406, "Token cannot be empty")
	TokenExpired         = failed(4407, "Token is expired")

	// BadRequest 400
	BadRequest = failed(4000, "Bad request")
	NotFound   = failed(4004, "Not found")

	// Forbidden 403
	Forbidden        = failed(4030, "Forbidden")
	PermissionDenied = failed(4031, "Permission denied")

	InternalError = failed(5000, "Internal error, please contact the administrator")

	UserNotExist                  = failed(4041, "User does not exist")
	UserDisabled                  = failed(4042, "User is disabled")
	UserIncorrectPassword         = failed(4043, "User incorrect password")
	UsernameArePasswordIsRequired = failed(4045, "Username and password are required")
)

var (
	Success = success(200, "Request Success")
)

// StatusOf maps a business code to its HTTP status class.
func StatusOf(code int) int {
	switch {
	case code == Success.Code:
		return fiber.StatusOK
	case code >= 4400 && code < 4500:
		return fiber.StatusUnauthorized
	case code >= 4030 && code < 4040:
		return fiber.StatusForbidden
	case code == NotFound.Code:
		return fiber.StatusNotFound
	case code >= 4000 && code < 5000:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func failed(code int, msg string) *Response {
	return &Response{Code: code, Msg: msg}
}

func success(code int, msg string) *Response {
	return &Response{Code: code, Msg: msg}
}
