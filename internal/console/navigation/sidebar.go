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

import "strconv"

// Glyph is the rendered form of a symbolic icon name.
type Glyph struct {
	Name   string
	Symbol string
}

const defaultIcon = "AppstoreOutlined"

var glyphs = map[string]string{
	"DashboardOutlined": "◴",
	"UserOutlined":      "☺",
	"TeamOutlined":      "☷",
	"SafetyOutlined":    "⛨",
	"ControlOutlined":   "☰",
	"AppstoreOutlined":  "▦",
	"SettingOutlined":   "⚙",
}

// IconGlyph resolves an icon name; unknown and empty names get the
// AppstoreOutlined glyph.
func IconGlyph(name string) Glyph {
	if s, ok := glyphs[name]; ok {
		return Glyph{Name: name, Symbol: s}
	}
	return Glyph{Name: defaultIcon, Symbol: glyphs[defaultIcon]}
}

// SidebarItem is one rendered sidebar entry.
type SidebarItem struct {
	Key      string        `json:"key"`
	Title    string        `json:"title"`
	Path     string        `json:"path,omitempty"`
	Icon     Glyph         `json:"icon"`
	Active   bool          `json:"active"`
	Open     bool          `json:"open"`
	Children []SidebarItem `json:"children,omitempty"`
}

// BuildSidebar keeps displayable nodes, orders siblings by SortOrder and marks
// the item whose path equals activePath. Its ancestors are marked open.
func BuildSidebar(tree []MenuNode, activePath string) []SidebarItem {
	items := make([]SidebarItem, 0, len(tree))
	for _, n := range Sorted(tree) {
		if !IsDisplayable(n) {
			continue
		}
		item := SidebarItem{
			Key:      sidebarKey(n),
			Title:    n.Title,
			Path:     n.Path,
			Icon:     IconGlyph(n.Icon),
			Active:   activePath != "" && n.Path == activePath,
			Children: BuildSidebar(n.Children, activePath),
		}
		if item.Title == "" {
			item.Title = n.Name
		}
		for _, c := range item.Children {
			if c.Active || c.Open {
				item.Open = true
				break
			}
		}
		items = append(items, item)
	}
	return items
}

func sidebarKey(n MenuNode) string {
	if n.Path != "" {
		return n.Path
	}
	return "menu-" + strconv.FormatUint(n.ID, 10)
}
