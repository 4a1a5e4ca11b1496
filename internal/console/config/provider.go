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
	"github.com/google/wire"
	"github.com/s-khaon/expert-tracking-site/pkg/cache"
	"github.com/s-khaon/expert-tracking-site/pkg/database"
	"github.com/s-khaon/expert-tracking-site/pkg/http"
	"github.com/s-khaon/expert-tracking-site/pkg/metrics"
	"github.com/s-khaon/expert-tracking-site/pkg/pprof"
)

// ProviderSet 配置层 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideHttpConfig,
	ProvideDatabaseConfig,
	ProvideRedisConfig,
	ProvideCacheConfig,
	ProvideMetricsConfig,
	ProvidePprofConfig,
)

func ProvideHttpConfig(appConf AppConfig) *http.Http {
	return &appConf.Http
}

func ProvideDatabaseConfig(appConf AppConfig) database.Database {
	return appConf.Database
}

func ProvideRedisConfig(appConf AppConfig) cache.Redis {
	return appConf.Redis
}

func ProvideCacheConfig(appConf AppConfig) cache.Config {
	return appConf.Cache
}

func ProvideMetricsConfig(appConf AppConfig) metrics.Conf {
	return appConf.Metrics
}

func ProvidePprofConfig(appConf AppConfig) pprof.Conf {
	return appConf.Pprof
}
