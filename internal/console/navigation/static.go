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
	"context"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// StaticSource serves the same tree to every user. It backs the console when
// menus are not managed in the database.
type StaticSource struct {
	tree []MenuNode
}

func NewStaticSource(tree []MenuNode) *StaticSource {
	return &StaticSource{tree: tree}
}

// LoadStaticSource reads a YAML or JSON menu tree from path.
func LoadStaticSource(path string) (*StaticSource, error) {
	tree, err := ReadTreeFile(path)
	if err != nil {
		return nil, err
	}
	return NewStaticSource(tree), nil
}

// ReadTreeFile decodes a menu tree document. The document is either a list
// of nodes or an object with a "menus" list.
func ReadTreeFile(path string) ([]MenuNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file %s: %w", path, err)
	}
	return ParseTree(data)
}

func ParseTree(data []byte) ([]MenuNode, error) {
	var tree []MenuNode
	if err := yaml.Unmarshal(data, &tree); err == nil {
		return tree, nil
	}
	var doc struct {
		Menus []MenuNode `json:"menus"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode menu tree: %w", err)
	}
	return doc.Menus, nil
}

func (s *StaticSource) UserMenuTree(_ context.Context, _ string) ([]MenuNode, error) {
	return s.tree, nil
}

// DefaultTree is the built-in menu used when no menu file is configured.
func DefaultTree() []MenuNode {
	parent := func(id uint64) *uint64 { return &id }
	return []MenuNode{
		{ID: 1, Name: "dashboard", Title: "仪表盘", Path: "/dashboard", Icon: "DashboardOutlined", Component: "Dashboard", MenuType: MenuTypeMenu, IsActive: true, SortOrder: 1},
		{ID: 2, Name: "experts", Title: "达人管理", Icon: "TeamOutlined", MenuType: MenuTypeMenu, IsActive: true, SortOrder: 2, Children: []MenuNode{
			{ID: 21, Name: "expert-list", Title: "达人列表", Path: "/experts", Icon: "TeamOutlined", Component: "ExpertManagement", MenuType: MenuTypeMenu, IsActive: true, SortOrder: 1, ParentID: parent(2)},
			{ID: 22, Name: "influencers", Title: "达人资料", Path: "/influencers", Icon: "UserOutlined", Component: "InfluencerManagement", MenuType: MenuTypeMenu, IsActive: true, SortOrder: 2, ParentID: parent(2)},
			{ID: 23, Name: "contact-records", Title: "联系记录", Path: "/contact-records", Icon: "ControlOutlined", Component: "ContactRecordManagement", MenuType: MenuTypeMenu, IsActive: true, SortOrder: 3, ParentID: parent(2)},
		}},
		{ID: 3, Name: "system", Title: "系统管理", Icon: "SettingOutlined", MenuType: MenuTypeMenu, IsActive: true, SortOrder: 3, Children: []MenuNode{
			{ID: 31, Name: "users", Title: "用户管理", Path: "/users", Icon: "UserOutlined", Component: "UserManagement", MenuType: MenuTypeMenu, IsActive: true, SortOrder: 1, ParentID: parent(3)},
			{ID: 32, Name: "roles", Title: "角色管理", Path: "/roles", Icon: "SafetyOutlined", Component: "RoleManagement", MenuType: MenuTypeMenu, IsActive: true, SortOrder: 2, ParentID: parent(3)},
			{ID: 33, Name: "menus", Title: "菜单管理", Path: "/menus", Icon: "AppstoreOutlined", Component: "MenuManagement", MenuType: MenuTypeMenu, IsActive: true, SortOrder: 3, ParentID: parent(3)},
		}},
	}
}
