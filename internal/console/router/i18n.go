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
	"embed"

	"github.com/gofiber/contrib/fiberi18n/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/s-khaon/expert-tracking-site/internal/console/view"
	"golang.org/x/text/language"
	"sigs.k8s.io/yaml"
)

//go:embed localize/*.yaml
var localizeFS embed.FS

func i18nMiddleware() fiber.Handler {
	return fiberi18n.New(&fiberi18n.Config{
		RootPath:         "localize",
		AcceptLanguages:  []language.Tag{language.Chinese, language.English},
		DefaultLanguage:  language.Chinese,
		FormatBundleFile: "yaml",
		Loader:           &fiberi18n.EmbedLoader{FS: localizeFS},
		UnmarshalFunc: func(data []byte, v any) error {
			return yaml.Unmarshal(data, v)
		},
	})
}

// translator localizes UI strings in the language of the request.
func translator(c *fiber.Ctx) view.Translator {
	return func(id string) string {
		msg, err := fiberi18n.Localize(c, id)
		if err != nil {
			return ""
		}
		return msg
	}
}
