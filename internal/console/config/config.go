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

package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/s-khaon/expert-tracking-site/pkg/cache"
	"github.com/s-khaon/expert-tracking-site/pkg/database"
	"github.com/s-khaon/expert-tracking-site/pkg/http"
	"github.com/s-khaon/expert-tracking-site/pkg/log"
	"github.com/s-khaon/expert-tracking-site/pkg/metrics"
	"github.com/s-khaon/expert-tracking-site/pkg/pprof"
	"github.com/s-khaon/expert-tracking-site/pkg/trace"
	"github.com/spf13/viper"
)

const (
	MenuModeDynamic = "dynamic"
	MenuModeStatic  = "static"

	envPrefix = "ETS"
)

// Console holds the navigation settings. Durations are in seconds except
// AwaitWait, which is in milliseconds.
type Console struct {
	MenuMode       string `mapstructure:"menuMode"` // dynamic | static
	MenuFile       string `mapstructure:"menuFile"` // static 模式下的菜单文件, 为空用内置菜单
	TreeTTL        int    `mapstructure:"treeTTL"`
	FetchTimeout   int    `mapstructure:"fetchTimeout"`
	FailureBackoff int    `mapstructure:"failureBackoff"`
	AwaitWait      int    `mapstructure:"awaitWait"`
	PermissionTTL  int    `mapstructure:"permissionTTL"`
	LoginPath      string `mapstructure:"loginPath"`
	FallbackPath   string `mapstructure:"fallbackPath"`
}

func (c *Console) SetDefaults() {
	if c.MenuMode == "" {
		c.MenuMode = MenuModeDynamic
	}
	if c.TreeTTL <= 0 {
		c.TreeTTL = 300
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10
	}
	if c.FailureBackoff <= 0 {
		c.FailureBackoff = 30
	}
	if c.AwaitWait <= 0 {
		c.AwaitWait = 300
	}
	if c.PermissionTTL <= 0 {
		c.PermissionTTL = 300
	}
	if c.LoginPath == "" {
		c.LoginPath = "/login"
	}
	if c.FallbackPath == "" {
		c.FallbackPath = "/dashboard"
	}
}

func (c Console) Validate() error {
	switch c.MenuMode {
	case MenuModeDynamic, MenuModeStatic:
	default:
		return fmt.Errorf("unknown console.menuMode %q, want %s or %s", c.MenuMode, MenuModeDynamic, MenuModeStatic)
	}
	if !strings.HasPrefix(c.LoginPath, "/") || !strings.HasPrefix(c.FallbackPath, "/") {
		return fmt.Errorf("console.loginPath and console.fallbackPath must be absolute paths")
	}
	return nil
}

func (c Console) TreeTTLDuration() time.Duration { return time.Duration(c.TreeTTL) * time.Second }

func (c Console) FetchTimeoutDuration() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

func (c Console) FailureBackoffDuration() time.Duration {
	return time.Duration(c.FailureBackoff) * time.Second
}

func (c Console) AwaitWaitDuration() time.Duration {
	return time.Duration(c.AwaitWait) * time.Millisecond
}

func (c Console) PermissionTTLDuration() time.Duration {
	return time.Duration(c.PermissionTTL) * time.Second
}

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Database database.Database
	Redis    cache.Redis
	Cache    cache.Config
	Trace    trace.Conf
	Metrics  metrics.Conf
	Pprof    pprof.Conf
	Console  Console
}

// SetDefaults fills every section's zero values.
func (c *AppConfig) SetDefaults() {
	def := log.SetDefaults()
	if c.Log.Output == "" {
		c.Log.Output = def.Output
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Level
	}
	if c.Log.Path == "" {
		c.Log.Path = def.Path
	}
	if c.Log.Filename == "" {
		c.Log.Filename = def.Filename
	}
	c.Http.SetDefaults()
	c.Trace.SetDefaults()
	c.Metrics.SetDefaults()
	c.Pprof.SetDefaults()
	c.Console.SetDefaults()
}

// Watcher carries the console section across config file changes.
type Watcher struct {
	mu        sync.RWMutex
	console   Console
	listeners []func(Console)
}

func newWatcher(c Console) *Watcher {
	return &Watcher{console: c}
}

// Console returns the current console section.
func (w *Watcher) Console() Console {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.console
}

// OnChange registers fn to run after the console section was reloaded.
func (w *Watcher) OnChange(fn func(Console)) {
	w.mu.Lock()
	w.listeners = append(w.listeners, fn)
	w.mu.Unlock()
}

func (w *Watcher) update(c Console) {
	w.mu.Lock()
	w.console = c
	listeners := append([]func(Console){}, w.listeners...)
	w.mu.Unlock()

	for _, fn := range listeners {
		fn(c)
	}
}

// LoadConfigFile reads path (TOML) with ETS_* environment overrides.
func LoadConfigFile(path string) (AppConfig, *viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.ReadInConfig(); err != nil {
		return cfg, nil, fmt.Errorf("failed to read configuration file: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, nil, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Console.Validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, v, nil
}

// Load reads the config file and watches it. Only the console section is
// applied on change; the other sections need a restart.
func Load(path string) (AppConfig, *Watcher, error) {
	cfg, v, err := LoadConfigFile(path)
	if err != nil {
		return cfg, nil, err
	}

	w := newWatcher(cfg.Console)
	v.OnConfigChange(func(e fsnotify.Event) {
		var next AppConfig
		if err := v.Unmarshal(&next); err != nil {
			log.Errorw("failed to unmarshal changed configuration", "file", e.Name, "error", err)
			return
		}
		next.Console.SetDefaults()
		if err := next.Console.Validate(); err != nil {
			log.Errorw("changed console configuration rejected", "file", e.Name, "error", err)
			return
		}
		log.Infow("console configuration reloaded", "file", e.Name)
		w.update(next.Console)
	})
	v.WatchConfig()

	log.Infow("config file loaded", "path", path)
	return cfg, w, nil
}
