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
	"fmt"

	"github.com/s-khaon/expert-tracking-site/internal/console/config"
	"github.com/s-khaon/expert-tracking-site/internal/console/model"
	"github.com/s-khaon/expert-tracking-site/internal/console/navigation"
	"github.com/s-khaon/expert-tracking-site/internal/console/repo"
	"github.com/s-khaon/expert-tracking-site/internal/console/service"
	"github.com/s-khaon/expert-tracking-site/pkg/database"
	"github.com/s-khaon/expert-tracking-site/pkg/http"
	"github.com/s-khaon/expert-tracking-site/pkg/log"
	"github.com/spf13/cobra"
)

type migrateOptions struct {
	configFile    string
	menuFile      string
	adminUser     string
	adminPassword string
}

func newMigrateCmd() *cobra.Command {
	var opts migrateOptions
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the console tables and seed menus, permissions and an admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			appConf, _, err := config.LoadConfigFile(opts.configFile)
			if err != nil {
				return err
			}
			if _, err := log.NewLog(&appConf.Log); err != nil {
				return err
			}
			gdb, err := database.NewDatabase(appConf.Database)
			if err != nil {
				return err
			}
			if sqlDB, err := gdb.DB(); err == nil {
				defer sqlDB.Close()
			}
			return migrate(cmd, database.NewGormDB(gdb), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configFile, "conf", "c", "conf.d/config.toml", "conf file path")
	cmd.Flags().StringVar(&opts.menuFile, "menu-file", "", "seed menus from this file instead of the built-in tree")
	cmd.Flags().StringVar(&opts.adminUser, "admin-user", "admin", "superuser to create when missing")
	cmd.Flags().StringVar(&opts.adminPassword, "admin-password", "", "password of the superuser, skipped when empty")
	return cmd
}

func migrate(cmd *cobra.Command, db database.IDatabase, opts migrateOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if err := repo.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	fmt.Fprintln(out, okText("ok"), "tables migrated")

	repos := repo.NewRepositories(db)
	if err := repos.Role.UpsertPermissions(ctx, model.BuiltinPermissions); err != nil {
		return fmt.Errorf("seed permissions: %w", err)
	}
	fmt.Fprintln(out, okText("ok"), len(model.BuiltinPermissions), "permissions")

	tree, err := loadTree(opts.menuFile)
	if err != nil {
		return err
	}
	if issues := navigation.CheckTree(tree, registry()); navigation.HasErrors(issues) {
		return checkTree(out, tree)
	}
	menus := service.NewMenuService(repos)
	ids, err := menus.SeedMenus(ctx, tree)
	if err != nil {
		return fmt.Errorf("seed menus: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(out, dimText("skip"), "menu table not empty")
	} else {
		fmt.Fprintln(out, okText("ok"), len(ids), "menus seeded")
	}

	if opts.adminPassword == "" {
		return nil
	}
	auth := service.NewAuthService(repos, nil, nil, nil, http.Auth{})
	created, err := auth.EnsureAdmin(ctx, opts.adminUser, opts.adminPassword)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintln(out, okText("ok"), "superuser", opts.adminUser, "created")
	} else {
		fmt.Fprintln(out, dimText("skip"), "user", opts.adminUser, "exists")
	}
	return nil
}
