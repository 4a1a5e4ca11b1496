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
	"errors"

	"github.com/s-khaon/expert-tracking-site/internal/console/model"
	"github.com/s-khaon/expert-tracking-site/pkg/database"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type IUserRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByUserId(ctx context.Context, userId string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}

type UserRepo struct {
	database.IDatabase
}

func NewUserRepo(db database.IDatabase) IUserRepository {
	return &UserRepo{IDatabase: db}
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *UserRepo) GetByUserId(ctx context.Context, userId string) (*model.User, error) {
	return r.first(ctx, "user_id = ?", userId)
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	return r.Database().WithContext(ctx).Create(user).Error
}

func (r *UserRepo) first(ctx context.Context, query string, args ...any) (*model.User, error) {
	var user model.User
	err := r.Database().WithContext(ctx).Where(query, args...).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
