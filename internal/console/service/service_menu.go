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
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/s-khaon/expert-tracking-site/internal/console/model"
	"github.com/s-khaon/expert-tracking-site/internal/console/navigation"
	"github.com/s-khaon/expert-tracking-site/internal/console/repo"
	"github.com/s-khaon/expert-tracking-site/pkg/log"
)

// MenuService 菜单服务
type MenuService struct {
	menuRepo repo.IMenuRepository
	userRepo repo.IUserRepository
	roleRepo repo.IRoleRepository
}

func NewMenuService(repos *repo.Repositories) *MenuService {
	return &MenuService{
		menuRepo: repos.Menu,
		userRepo: repos.User,
		roleRepo: repos.Role,
	}
}

// BuildMenuTree links rows into a tree. Siblings are ordered by sort_order
// then id; rows whose parent is missing become roots, rows caught in a
// parent cycle are dropped.
func (s *MenuService) BuildMenuTree(menus []model.Menu) []navigation.MenuNode {
	byId := make(map[uint64]model.Menu, len(menus))
	for _, m := range menus {
		byId[m.ID] = m
	}

	children := make(map[uint64][]model.Menu)
	var roots []model.Menu
	for _, m := range menus {
		switch {
		case m.ParentID == nil || *m.ParentID == 0:
			roots = append(roots, m)
		case !hasMenu(byId, *m.ParentID):
			log.Warnw("parent menu not found, promoted to root", "menuId", m.ID, "parentId", *m.ParentID)
			roots = append(roots, m)
		default:
			children[*m.ParentID] = append(children[*m.ParentID], m)
		}
	}

	visited := make(map[uint64]bool, len(menus))
	var build func(level []model.Menu) []navigation.MenuNode
	build = func(level []model.Menu) []navigation.MenuNode {
		sortMenus(level)
		nodes := make([]navigation.MenuNode, 0, len(level))
		for _, m := range level {
			if visited[m.ID] {
				continue
			}
			visited[m.ID] = true
			n := toNode(m)
			n.Children = build(children[m.ID])
			nodes = append(nodes, n)
		}
		return nodes
	}
	tree := build(roots)

	if len(visited) < len(byId) {
		for id := range byId {
			if !visited[id] {
				log.Warnw("menu unreachable from any root, dropped", "menuId", id)
			}
		}
	}
	return tree
}

// UserMenuTree returns the active menus the user may see. Folders above a
// granted menu are included so the tree stays connected.
func (s *MenuService) UserMenuTree(ctx context.Context, userId string) ([]navigation.MenuNode, error) {
	user, err := s.userRepo.GetByUserId(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", userId, err)
	}
	if !user.IsActive {
		return []navigation.MenuNode{}, nil
	}

	menus, err := s.menuRepo.ListMenus(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	if user.IsSuperuser {
		return pruneInactive(s.BuildMenuTree(menus)), nil
	}

	roleIds, err := s.roleRepo.GetActiveRoleIds(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("load roles of %s: %w", userId, err)
	}
	menuIds, err := s.roleRepo.GetMenuIdsByRoles(ctx, roleIds)
	if err != nil {
		return nil, fmt.Errorf("load menu bindings of %s: %w", userId, err)
	}

	granted := withAncestors(menus, menuIds)
	allowed := make([]model.Menu, 0, len(granted))
	for _, m := range menus {
		if granted[m.ID] {
			allowed = append(allowed, m)
		}
	}
	return pruneInactive(s.BuildMenuTree(allowed)), nil
}

// MenuTree returns the whole menu tree; activeOnly nil means every menu.
func (s *MenuService) MenuTree(ctx context.Context, activeOnly *bool) ([]navigation.MenuNode, error) {
	menus, err := s.menuRepo.ListMenus(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	return s.BuildMenuTree(menus), nil
}

// SeedMenus inserts tree when the menu table is empty and returns the ids of
// the inserted rows.
func (s *MenuService) SeedMenus(ctx context.Context, tree []navigation.MenuNode) ([]uint64, error) {
	n, err := s.menuRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		log.Infow("menu table not empty, seed skipped", "count", n)
		return nil, nil
	}

	var ids []uint64
	var insert func(nodes []navigation.MenuNode, parent *uint64) error
	insert = func(nodes []navigation.MenuNode, parent *uint64) error {
		for _, n := range nodes {
			m := fromNode(n)
			m.ParentID = parent
			if err := s.menuRepo.Create(ctx, &m); err != nil {
				return fmt.Errorf("create menu %s: %w", n.Name, err)
			}
			ids = append(ids, m.ID)
			if err := insert(n.Children, &m.ID); err != nil {
				return err
			}
		}
		return nil
	}
	if err := insert(tree, nil); err != nil {
		return ids, err
	}
	return ids, nil
}

func hasMenu(byId map[uint64]model.Menu, id uint64) bool {
	_, ok := byId[id]
	return ok
}

func withAncestors(menus []model.Menu, ids []uint64) map[uint64]bool {
	parents := make(map[uint64]*uint64, len(menus))
	for _, m := range menus {
		parents[m.ID] = m.ParentID
	}
	granted := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		for cur := id; !granted[cur]; {
			if _, ok := parents[cur]; !ok {
				break
			}
			granted[cur] = true
			p := parents[cur]
			if p == nil || *p == 0 {
				break
			}
			cur = *p
		}
	}
	return granted
}

// pruneInactive drops inactive nodes together with their subtrees.
func pruneInactive(tree []navigation.MenuNode) []navigation.MenuNode {
	out := make([]navigation.MenuNode, 0, len(tree))
	for _, n := range tree {
		if !n.IsActive {
			continue
		}
		n.Children = pruneInactive(n.Children)
		out = append(out, n)
	}
	return out
}

func sortMenus(menus []model.Menu) {
	slices.SortStableFunc(menus, func(a, b model.Menu) int {
		return cmp.Or(cmp.Compare(a.SortOrder, b.SortOrder), cmp.Compare(a.ID, b.ID))
	})
}

func toNode(m model.Menu) navigation.MenuNode {
	return navigation.MenuNode{
		ID:        m.ID,
		Name:      m.Name,
		Title:     m.Title,
		Path:      m.Path,
		Icon:      m.Icon,
		Component: m.Component,
		MenuType:  m.MenuType,
		IsHidden:  m.IsHidden,
		IsActive:  m.IsActive,
		SortOrder: m.SortOrder,
		ParentID:  m.ParentID,
	}
}

func fromNode(n navigation.MenuNode) model.Menu {
	menuType := n.MenuType
	if menuType == "" {
		menuType = model.MenuTypeMenu
	}
	return model.Menu{
		Name:      n.Name,
		Title:     n.Title,
		Path:      n.Path,
		Icon:      n.Icon,
		Component: n.Component,
		MenuType:  menuType,
		IsHidden:  n.IsHidden,
		IsActive:  n.IsActive,
		SortOrder: n.SortOrder,
	}
}
