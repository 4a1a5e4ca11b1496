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

// Http holds the HTTP listener settings. Timeouts are in seconds.
type Http struct {
	Host            string
	Port            int
	AccessLog       bool
	BodyLimit       int // bytes
	ReadTimeout     int
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	TLS             TLS
	Auth            Auth
}

type TLS struct {
	CertFile string
	KeyFile  string
}

// Auth configures token issuing. Expirations are in minutes.
type Auth struct {
	SecretKey      string
	AccessExpire   int
	RefreshExpire  int
	RedisKeyPrefix string
	CookieName     string
	CookieSecure   bool
}

// SetDefaults fills zero values.
func (h *Http) SetDefaults() {
	if h.Port == 0 {
		h.Port = 8080
	}
	if h.ShutdownTimeout == 0 {
		h.ShutdownTimeout = 30
	}
	if h.Auth.AccessExpire == 0 {
		h.Auth.AccessExpire = 120
	}
	if h.Auth.RefreshExpire == 0 {
		h.Auth.RefreshExpire = 7 * 24 * 60
	}
	if h.Auth.RedisKeyPrefix == "" {
		h.Auth.RedisKeyPrefix = "ets:session:"
	}
	if h.Auth.CookieName == "" {
		h.Auth.CookieName = "access_token"
	}
}
