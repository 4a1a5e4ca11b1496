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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/s-khaon/expert-tracking-site/internal/console/navigation"
	"github.com/s-khaon/expert-tracking-site/internal/console/repo"
	"github.com/s-khaon/expert-tracking-site/pkg/database"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

const brokenTree = `
menus:
  - id: 1
    name: dashboard
    path: dashboard
    component: Dashboard
    menu_type: menu
    is_active: true
  - id: 2
    name: reports
    path: /reports
    component: Reports
    menu_type: menu
    is_active: true
`

func TestPrintRoutes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printRoutes(&buf, navigation.DefaultTree(), false))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[0], "PATH"))
	assert.True(t, strings.HasPrefix(lines[1], "/dashboard"))
	assert.Contains(t, lines[1], "Dashboard")
	assert.Equal(t, "default: /dashboard", lines[8])
}

func TestPrintRoutes_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printRoutes(&buf, navigation.DefaultTree(), true))

	var out struct {
		Routes       []navigation.Route `json:"routes"`
		DefaultRoute string             `json:"default_route"`
	}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &out))
	assert.Len(t, out.Routes, 7)
	assert.Equal(t, "/dashboard", out.DefaultRoute)
	assert.Equal(t, "ExpertManagement", out.Routes[1].PageName)
}

func TestPrintSidebar(t *testing.T) {
	var buf bytes.Buffer
	printSidebar(&buf, navigation.BuildSidebar(navigation.DefaultTree(), "/users"), 0)
	out := buf.String()

	assert.Contains(t, out, "+ ☷ 达人管理\n")
	assert.Contains(t, out, "- ⚙ 系统管理\n")
	assert.Contains(t, out, "  * ☺ 用户管理 /users\n")
}

func TestCheckTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, checkTree(&buf, navigation.DefaultTree()))
	assert.Equal(t, "ok 9 menus, no issues\n", buf.String())

	path := filepath.Join(t.TempDir(), "menus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(brokenTree), 0o600))
	tree, err := loadTree(path)
	require.NoError(t, err)

	buf.Reset()
	assert.ErrorIs(t, checkTree(&buf, tree), errTreeInvalid)
	assert.Contains(t, buf.String(), `error menu 1 (dashboard): path "dashboard" must start with /`)
	assert.Contains(t, buf.String(), `warning menu 2 (reports): component "Reports" is not registered, no route`)
}

func TestMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:migrate?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	idb := database.NewGormDB(db)

	run := func() string {
		var buf bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetContext(context.Background())
		cmd.SetOut(&buf)
		require.NoError(t, migrate(cmd, idb, migrateOptions{adminUser: "admin", adminPassword: "pw"}))
		return buf.String()
	}

	first := run()
	assert.Contains(t, first, "ok tables migrated")
	assert.Contains(t, first, "ok 9 menus seeded")
	assert.Contains(t, first, "ok superuser admin created")

	second := run()
	assert.Contains(t, second, "skip menu table not empty")
	assert.Contains(t, second, "skip user admin exists")

	user, err := repo.NewRepositories(idb).User.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.True(t, user.IsSuperuser)
}
