//go:build wireinject
// +build wireinject

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
package main

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"github.com/s-khaon/expert-tracking-site/internal/console/bootstrap"
	"github.com/s-khaon/expert-tracking-site/internal/console/config"
	"github.com/s-khaon/expert-tracking-site/internal/console/repo"
	"github.com/s-khaon/expert-tracking-site/internal/console/service"
	"github.com/s-khaon/expert-tracking-site/pkg/cache"
	"github.com/s-khaon/expert-tracking-site/pkg/database"
)

func initApp(appConf config.AppConfig, watcher *config.Watcher, db database.IDatabase, redisClient *redis.Client) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// 配置层
		config.ProviderSet,
		// 仓储层
		repo.ProviderSet,
		// 缓存层
		cache.ProviderSet,
		// 服务层
		service.ProviderSet,
		// 应用层
		bootstrap.ProviderSet,
	))
}
