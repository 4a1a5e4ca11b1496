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

package repo

import (
	"context"

	"github.com/s-khaon/expert-tracking-site/internal/console/model"
	"github.com/s-khaon/expert-tracking-site/pkg/database"
)

type IMenuRepository interface {
	// ListMenus returns menus ordered by sort_order, id. activeOnly nil means all.
	ListMenus(ctx context.Context, activeOnly *bool) ([]model.Menu, error)
	GetMenusByIds(ctx context.Context, ids []uint64) ([]model.Menu, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, menu *model.Menu) error
}

type MenuRepo struct {
	database.IDatabase
}

func NewMenuRepo(db database.IDatabase) IMenuRepository {
	return &MenuRepo{
		IDatabase: db,
	}
}

// ListMenus 获取菜单列表
func (r *MenuRepo) ListMenus(ctx context.Context, activeOnly *bool) ([]model.Menu, error) {
	var menus []model.Menu
	tx := r.Database().WithContext(ctx).Model(&model.Menu{})
	if activeOnly != nil {
		tx = tx.Where("is_active = ?", *activeOnly)
	}
	err := tx.Order("sort_order ASC").Order("id ASC").Find(&menus).Error
	return menus, err
}

// GetMenusByIds 根据菜单ID列表获取菜单
func (r *MenuRepo) GetMenusByIds(ctx context.Context, ids []uint64) ([]model.Menu, error) {
	if len(ids) == 0 {
		return []model.Menu{}, nil
	}
	var menus []model.Menu
	err := r.Database().WithContext(ctx).
		Where("id IN ?", ids).
		Order("sort_order ASC").Order("id ASC").
		Find(&menus).Error
	return menus, err
}

func (r *MenuRepo) Count(ctx context.Context) (int64, error) {
	return Count(r.Database().WithContext(ctx).Model(&model.Menu{}))
}

func (r *MenuRepo) Create(ctx context.Context, menu *model.Menu) error {
	return r.Database().WithContext(ctx).Create(menu).Error
}
