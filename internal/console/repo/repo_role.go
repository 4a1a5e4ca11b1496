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
	"slices"

	"github.com/s-khaon/expert-tracking-site/internal/console/model"
	"github.com/s-khaon/expert-tracking-site/pkg/database"
	"gorm.io/gorm/clause"
)

type IRoleRepository interface {
	// GetActiveRoleIds returns the ids of the active roles bound to the user.
	GetActiveRoleIds(ctx context.Context, userId string) ([]string, error)
	GetMenuIdsByRoles(ctx context.Context, roleIds []string) ([]uint64, error)
	GetPermissionCodesByRoles(ctx context.Context, roleIds []string) ([]string, error)

	UpsertRole(ctx context.Context, role *model.Role) error
	UpsertPermissions(ctx context.Context, perms []model.Permission) error
	BindUser(ctx context.Context, userId, roleId string) error
	BindMenus(ctx context.Context, roleId string, menuIds []uint64) error
	BindPermissions(ctx context.Context, roleId string, codes []string) error
}

type RoleRepo struct {
	database.IDatabase
}

func NewRoleRepo(db database.IDatabase) IRoleRepository {
	return &RoleRepo{IDatabase: db}
}

func (r *RoleRepo) GetActiveRoleIds(ctx context.Context, userId string) ([]string, error) {
	var roleIds []string
	err := r.Database().WithContext(ctx).
		Table(model.UserRoleBinding{}.TableName()+" AS b").
		Joins("JOIN "+model.Role{}.TableName()+" AS r ON r.role_id = b.role_id").
		Where("b.user_id = ? AND r.is_active = ?", userId, true).
		Distinct().
		Pluck("b.role_id", &roleIds).Error
	return roleIds, err
}

func (r *RoleRepo) GetMenuIdsByRoles(ctx context.Context, roleIds []string) ([]uint64, error) {
	if len(roleIds) == 0 {
		return []uint64{}, nil
	}
	var menuIds []uint64
	err := r.Database().WithContext(ctx).
		Model(&model.RoleMenuBinding{}).
		Where("role_id IN ?", roleIds).
		Distinct().
		Pluck("menu_id", &menuIds).Error
	return menuIds, err
}

func (r *RoleRepo) GetPermissionCodesByRoles(ctx context.Context, roleIds []string) ([]string, error) {
	if len(roleIds) == 0 {
		return []string{}, nil
	}
	var codes []string
	err := r.Database().WithContext(ctx).
		Model(&model.RolePermissionBinding{}).
		Where("role_id IN ?", roleIds).
		Distinct().
		Order("permission_code ASC").
		Pluck("permission_code", &codes).Error
	return codes, err
}

func (r *RoleRepo) UpsertRole(ctx context.Context, role *model.Role) error {
	return r.Database().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "is_active"}),
	}).Create(role).Error
}

func (r *RoleRepo) UpsertPermissions(ctx context.Context, perms []model.Permission) error {
	if len(perms) == 0 {
		return nil
	}
	// gorm writes generated ids back, keep the caller's slice untouched
	rows := slices.Clone(perms)
	return r.Database().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "resource", "action", "description"}),
	}).Create(&rows).Error
}

func (r *RoleRepo) BindUser(ctx context.Context, userId, roleId string) error {
	return r.Database().WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserRoleBinding{UserId: userId, RoleId: roleId}).Error
}

func (r *RoleRepo) BindMenus(ctx context.Context, roleId string, menuIds []uint64) error {
	if len(menuIds) == 0 {
		return nil
	}
	bindings := make([]model.RoleMenuBinding, 0, len(menuIds))
	for _, id := range menuIds {
		bindings = append(bindings, model.RoleMenuBinding{RoleId: roleId, MenuId: id})
	}
	return r.Database().WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&bindings).Error
}

func (r *RoleRepo) BindPermissions(ctx context.Context, roleId string, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	bindings := make([]model.RolePermissionBinding, 0, len(codes))
	for _, code := range codes {
		bindings = append(bindings, model.RolePermissionBinding{RoleId: roleId, PermissionCode: code})
	}
	return r.Database().WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&bindings).Error
}
