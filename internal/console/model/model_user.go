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

type User struct {
	BaseModel
	UserId      string `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	Username    string `gorm:"column:username;not null;uniqueIndex" json:"username"`
	FullName    string `gorm:"column:full_name" json:"full_name"`
	Email       string `gorm:"column:email" json:"email"`
	Password    string `gorm:"column:password;not null" json:"-"` // bcrypt hash
	IsActive    bool   `gorm:"column:is_active;not null" json:"is_active"`
	IsSuperuser bool   `gorm:"column:is_superuser;not null" json:"is_superuser"`
}

func (User) TableName() string {
	return "t_user"
}

// DisplayName is what the console header shows for the user.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

type Login struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type UserInfo struct {
	UserId      string `json:"user_id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	IsSuperuser bool   `json:"is_superuser"`
}

func (u User) Info() UserInfo {
	return UserInfo{
		UserId:      u.UserId,
		Username:    u.Username,
		FullName:    u.FullName,
		Email:       u.Email,
		IsSuperuser: u.IsSuperuser,
	}
}
