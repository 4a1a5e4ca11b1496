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

import "gorm.io/datatypes"

// Menu 菜单表
type Menu struct {
	BaseModel
	// 父菜单ID，为空表示顶级菜单
	ParentID  *uint64 `gorm:"column:parent_id;index" json:"parent_id"`
	Name      string  `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Title     string  `gorm:"column:title;not null" json:"title"`
	Path      string  `gorm:"column:path" json:"path"`
	Component string  `gorm:"column:component" json:"component"`
	Icon      string  `gorm:"column:icon" json:"icon"`
	// menu | button
	MenuType string `gorm:"column:menu_type;not null;default:menu" json:"menu_type"`
	// 按钮类菜单携带的权限代码
	Permission string `gorm:"column:permission" json:"permission"`
	IsHidden   bool   `gorm:"column:is_hidden;not null" json:"is_hidden"`
	IsActive   bool   `gorm:"column:is_active;not null" json:"is_active"`
	// 数值越小越靠前
	SortOrder   int            `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	Description string         `gorm:"column:description" json:"description"`
	Meta        datatypes.JSON `gorm:"column:meta" json:"meta,omitempty"`
}

func (Menu) TableName() string {
	return "t_menu"
}

const (
	MenuTypeMenu   = "menu"
	MenuTypeButton = "button"
)
