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

package navigation

import (
	"github.com/s-khaon/expert-tracking-site/pkg/log"
)

// FallbackPath is the default route when the tree yields none.
const FallbackPath = "/dashboard"

// Route is one navigable page derived from the menu tree.
type Route struct {
	Path      string    `json:"path"`
	Page      Page      `json:"-"`
	PageName  string    `json:"component"`
	Title     string    `json:"title"`
	MenuID    uint64    `json:"menu_id"`
	Component Component `json:"-"`
}

// GenerateRoutes walks the tree depth-first, pre-order and emits one route per
// routable node. Path-less nodes only contribute their descendants; nodes with
// an unknown component are skipped with a warning. A path never appears
// twice, the first occurrence wins.
func GenerateRoutes(tree []MenuNode, reg *Registry) []Route {
	routes := make([]Route, 0)
	seen := make(map[string]struct{})

	walkEligible(tree, func(n MenuNode) bool {
		if n.Path == "" {
			return true
		}
		page, component, ok := reg.Resolve(n.Component)
		if !ok {
			log.Warnw("component not registered, route skipped",
				"menu", n.Name, "path", n.Path, "component", n.Component)
			return true
		}
		if _, dup := seen[n.Path]; dup {
			log.Warnw("duplicate menu path, route skipped", "menu", n.Name, "path", n.Path)
			return true
		}
		seen[n.Path] = struct{}{}
		routes = append(routes, Route{
			Path:      n.Path,
			Page:      page,
			PageName:  page.String(),
			Title:     n.Title,
			MenuID:    n.ID,
			Component: component,
		})
		return true
	})
	return routes
}

// DefaultRoute returns the path of the first routable node in generator
// order, or FallbackPath.
func DefaultRoute(tree []MenuNode, reg *Registry) string {
	path := FallbackPath
	walkEligible(tree, func(n MenuNode) bool {
		if n.Path != "" && reg.Has(n.Component) {
			path = n.Path
			return false
		}
		return true
	})
	return path
}

// ValidateRouteAccess reports whether some node anywhere in the tree carries
// exactly path. No prefix or parameter matching.
func ValidateRouteAccess(path string, tree []MenuNode) bool {
	if path == "" {
		return false
	}
	for _, n := range tree {
		if n.Path == path || ValidateRouteAccess(path, n.Children) {
			return true
		}
	}
	return false
}

// RouteTable is the immutable route set of one menu tree.
type RouteTable struct {
	routes      []Route
	byPath      map[string]int
	defaultPath string
}

func NewRouteTable(tree []MenuNode, reg *Registry) *RouteTable {
	routes := GenerateRoutes(tree, reg)
	byPath := make(map[string]int, len(routes))
	for i, r := range routes {
		byPath[r.Path] = i
	}
	return &RouteTable{
		routes:      routes,
		byPath:      byPath,
		defaultPath: DefaultRoute(tree, reg),
	}
}

func (t *RouteTable) Lookup(path string) (Route, bool) {
	i, ok := t.byPath[path]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

func (t *RouteTable) Routes() []Route {
	return t.routes
}

func (t *RouteTable) Default() string {
	return t.defaultPath
}
