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

package model

// Role 角色表
type Role struct {
	BaseModel
	RoleId      string `gorm:"column:role_id;not null;uniqueIndex" json:"role_id"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	IsActive    bool   `gorm:"column:is_active;not null" json:"is_active"`
}

func (Role) TableName() string {
	return "t_role"
}

// Permission 权限点
type Permission struct {
	BaseModel
	Code        string `gorm:"column:code;not null;uniqueIndex" json:"code"` // resource:action
	Name        string `gorm:"column:name" json:"name"`
	Resource    string `gorm:"column:resource;index" json:"resource"`
	Action      string `gorm:"column:action" json:"action"`
	Description string `gorm:"column:description" json:"description"`
}

func (Permission) TableName() string {
	return "t_permission"
}

// UserRoleBinding 用户角色绑定
type UserRoleBinding struct {
	BaseModel
	UserId string `gorm:"column:user_id;not null;uniqueIndex:uk_user_role" json:"user_id"`
	RoleId string `gorm:"column:role_id;not null;uniqueIndex:uk_user_role" json:"role_id"`
}

func (UserRoleBinding) TableName() string {
	return "t_user_role_binding"
}

// RoleMenuBinding 角色菜单关联（定义角色可访问的菜单）
type RoleMenuBinding struct {
	BaseModel
	RoleId string `gorm:"column:role_id;not null;uniqueIndex:uk_role_menu" json:"role_id"`
	MenuId uint64 `gorm:"column:menu_id;not null;uniqueIndex:uk_role_menu" json:"menu_id"`
}

func (RoleMenuBinding) TableName() string {
	return "t_role_menu_binding"
}

// RolePermissionBinding 角色权限关联
type RolePermissionBinding struct {
	BaseModel
	RoleId         string `gorm:"column:role_id;not null;uniqueIndex:uk_role_perm" json:"role_id"`
	PermissionCode string `gorm:"column:permission_code;not null;uniqueIndex:uk_role_perm" json:"permission_code"`
}

func (RolePermissionBinding) TableName() string {
	return "t_role_permission_binding"
}

// 内置权限代码
const (
	PermMenuRead       = "menu:read"
	PermMenuWrite      = "menu:write"
	PermUserRead       = "user:read"
	PermUserWrite      = "user:write"
	PermRoleRead       = "role:read"
	PermRoleWrite      = "role:write"
	PermExpertRead     = "expert:read"
	PermExpertWrite    = "expert:write"
	PermContactRead    = "contact:read"
	PermContactWrite   = "contact:write"
	PermPermissionRead = "permission:read"
)

// BuiltinPermissions is seeded by migrate.
var BuiltinPermissions = []Permission{
	{Code: PermMenuRead, Name: "查看菜单", Resource: "menu", Action: "read"},
	{Code: PermMenuWrite, Name: "管理菜单", Resource: "menu", Action: "write"},
	{Code: PermUserRead, Name: "查看用户", Resource: "user", Action: "read"},
	{Code: PermUserWrite, Name: "管理用户", Resource: "user", Action: "write"},
	{Code: PermRoleRead, Name: "查看角色", Resource: "role", Action: "read"},
	{Code: PermRoleWrite, Name: "管理角色", Resource: "role", Action: "write"},
	{Code: PermExpertRead, Name: "查看达人", Resource: "expert", Action: "read"},
	{Code: PermExpertWrite, Name: "管理达人", Resource: "expert", Action: "write"},
	{Code: PermContactRead, Name: "查看联系记录", Resource: "contact", Action: "read"},
	{Code: PermContactWrite, Name: "管理联系记录", Resource: "contact", Action: "write"},
	{Code: PermPermissionRead, Name: "查看权限", Resource: "permission", Action: "read"},
}

// Grants is what a user is allowed to do. Superusers pass every check.
type Grants struct {
	Superuser bool     `json:"superuser"`
	Codes     []string `json:"codes"`
}

func (g Grants) Has(code string) bool {
	if g.Superuser {
		return true
	}
	for _, c := range g.Codes {
		if c == code {
			return true
		}
	}
	return false
}
