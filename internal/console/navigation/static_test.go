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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menuYAML = `
- id: 1
  name: dashboard
  title: Dashboard
  path: /dashboard
  icon: DashboardOutlined
  component: Dashboard
  menu_type: menu
  is_active: true
  sort_order: 1
- id: 2
  name: system
  title: System
  menu_type: menu
  is_active: true
  sort_order: 2
  children:
    - id: 3
      name: users
      title: Users
      path: /users
      component: UserManagement
      menu_type: menu
      is_active: true
      parent_id: 2
`

func TestParseTree(t *testing.T) {
	tree, err := ParseTree([]byte(menuYAML))
	require.NoError(t, err)
	require.Len(t, tree, 2)
	require.Len(t, tree[1].Children, 1)
	assert.Equal(t, uint64(2), *tree[1].Children[0].ParentID)

	doc, err := ParseTree([]byte(`{"menus":[{"id":9,"path":"/x","menu_type":"menu","is_active":true}]}`))
	require.NoError(t, err)
	require.Len(t, doc, 1)
	assert.Equal(t, "/x", doc[0].Path)

	_, err = ParseTree([]byte("menus: [unterminated"))
	assert.Error(t, err)
}

func TestLoadStaticSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(menuYAML), 0o600))

	src, err := LoadStaticSource(path)
	require.NoError(t, err)

	tree, err := src.UserMenuTree(context.Background(), "anyone")
	require.NoError(t, err)
	assert.Equal(t, []string{"/dashboard", "/users"}, routePaths(GenerateRoutes(tree, testRegistry())))

	_, err = LoadStaticSource(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultTree(t *testing.T) {
	tree := DefaultTree()
	reg := testRegistry()
	routes := GenerateRoutes(tree, reg)

	assert.Len(t, routes, len(Pages()), "every page is reachable")
	assert.Equal(t, "/dashboard", DefaultRoute(tree, reg))
}
