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

package service

import (
	"context"
	"slices"
	"sync"

	"github.com/s-khaon/expert-tracking-site/internal/console/model"
	"github.com/s-khaon/expert-tracking-site/internal/console/repo"
)

type fakeMenuRepo struct {
	menus []model.Menu
	next  uint64
}

func (f *fakeMenuRepo) ListMenus(_ context.Context, activeOnly *bool) ([]model.Menu, error) {
	var out []model.Menu
	for _, m := range f.menus {
		if activeOnly == nil || m.IsActive == *activeOnly {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) GetMenusByIds(_ context.Context, ids []uint64) ([]model.Menu, error) {
	var out []model.Menu
	for _, m := range f.menus {
		if slices.Contains(ids, m.ID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) Count(context.Context) (int64, error) {
	return int64(len(f.menus)), nil
}

func (f *fakeMenuRepo) Create(_ context.Context, m *model.Menu) error {
	f.next++
	m.ID = f.next
	f.menus = append(f.menus, *m)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
	calls int
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUserId(_ context.Context, userId string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if u, ok := f.users[userId]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.users[u.UserId] = &cp
	return nil
}

type fakeRoleRepo struct {
	userRoles map[string][]string
	roleMenus map[string][]uint64
	rolePerms map[string][]string
}

func (f *fakeRoleRepo) GetActiveRoleIds(_ context.Context, userId string) ([]string, error) {
	return f.userRoles[userId], nil
}

func (f *fakeRoleRepo) GetMenuIdsByRoles(_ context.Context, roleIds []string) ([]uint64, error) {
	var out []uint64
	for _, r := range roleIds {
		out = append(out, f.roleMenus[r]...)
	}
	return out, nil
}

func (f *fakeRoleRepo) GetPermissionCodesByRoles(_ context.Context, roleIds []string) ([]string, error) {
	var out []string
	for _, r := range roleIds {
		out = append(out, f.rolePerms[r]...)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func (f *fakeRoleRepo) UpsertRole(context.Context, *model.Role) error { return nil }
func (f *fakeRoleRepo) UpsertPermissions(context.Context, []model.Permission) error { return nil }
func (f *fakeRoleRepo) BindUser(context.Context, string, string) error { return nil }
func (f *fakeRoleRepo) BindMenus(context.Context, string, []uint64) error { return nil }
func (f *fakeRoleRepo) BindPermissions(context.Context, string, []string) error { return nil }

func ptr(v uint64) *uint64 { return &v }

func menu(id uint64, parent *uint64, name, path, component string, sort int) model.Menu {
	return model.Menu{
		BaseModel: model.BaseModel{ID: id},
		ParentID:  parent,
		Name:      name,
		Title:     name,
		Path:      path,
		Component: component,
		MenuType:  model.MenuTypeMenu,
		IsActive:  true,
		SortOrder: sort,
	}
}

// fixture: dashboard, system{users, roles}, experts{contacts}
func newFixture() *repo.Repositories {
	inactive := menu(6, nil, "old", "/old", "Dashboard", 9)
	inactive.IsActive = false
	return &repo.Repositories{
		Menu: &fakeMenuRepo{next: 100, menus: []model.Menu{
			menu(3, ptr(2), "roles", "/roles", "RoleManagement", 2),
			menu(1, nil, "dashboard", "/dashboard", "Dashboard", 1),
			menu(2, nil, "system", "", "", 3),
			menu(4, ptr(2), "users", "/users", "UserManagement", 1),
			menu(5, nil, "experts", "/experts", "ExpertManagement", 2),
			menu(7, ptr(5), "contacts", "/contacts", "ContactRecordManagement", 1),
			inactive,
			menu(8, ptr(6), "old-child", "/old/child", "Dashboard", 1),
		}},
		User: &fakeUserRepo{users: map[string]*model.User{
			"root":  {UserId: "root", Username: "root", IsActive: true, IsSuperuser: true},
			"alice": {UserId: "alice", Username: "alice", FullName: "Alice", IsActive: true},
			"bob":   {UserId: "bob", Username: "bob", IsActive: false},
		}},
		Role: &fakeRoleRepo{
			userRoles: map[string][]string{"alice": {"editor"}, "bob": {"editor"}},
			roleMenus: map[string][]uint64{"editor": {1, 3, 8}},
			rolePerms: map[string][]string{"editor": {model.PermMenuRead, model.PermUserRead}},
		},
	}
}
