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
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/s-khaon/expert-tracking-site/internal/console/navigation"
	"github.com/s-khaon/expert-tracking-site/internal/console/view"
	"github.com/spf13/cobra"
)

var errTreeInvalid = errors.New("menu tree has errors")

var (
	okText    = color.New(color.FgGreen).SprintFunc()
	warnText  = color.New(color.FgYellow).SprintFunc()
	errorText = color.New(color.FgRed, color.Bold).SprintFunc()
	dimText   = color.New(color.FgHiBlack).SprintFunc()
)

func newMenuCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Inspect a menu tree file",
		Long:  "Inspect a menu tree file (YAML or JSON). Without --file the built-in tree is used.",
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", "menu tree file")

	var asJSON bool
	routes := &cobra.Command{
		Use:   "routes",
		Short: "Print the routes the tree produces",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, err := loadTree(file)
			if err != nil {
				return err
			}
			return printRoutes(cmd.OutOrStdout(), tree, asJSON)
		},
	}
	routes.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	var active string
	sidebar := &cobra.Command{
		Use:   "sidebar",
		Short: "Print the sidebar the tree renders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, err := loadTree(file)
			if err != nil {
				return err
			}
			printSidebar(cmd.OutOrStdout(), navigation.BuildSidebar(tree, active), 0)
			return nil
		},
	}
	sidebar.Flags().StringVar(&active, "active", "", "mark the item with this path as active")

	check := &cobra.Command{
		Use:   "check",
		Short: "Lint the tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, err := loadTree(file)
			if err != nil {
				return err
			}
			return checkTree(cmd.OutOrStdout(), tree)
		},
	}

	cmd.AddCommand(routes, sidebar, check)
	return cmd
}

func loadTree(file string) ([]navigation.MenuNode, error) {
	if file == "" {
		return navigation.DefaultTree(), nil
	}
	return navigation.ReadTreeFile(file)
}

func registry() *navigation.Registry {
	return navigation.NewRegistry(view.Pages)
}

func printRoutes(w io.Writer, tree []navigation.MenuNode, asJSON bool) error {
	table := navigation.NewRouteTable(tree, registry())
	if asJSON {
		data, err := sonic.ConfigStd.MarshalIndent(map[string]any{
			"routes":        table.Routes(),
			"default_route": table.Default(),
		}, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tCOMPONENT\tTITLE\tMENU")
	for _, r := range table.Routes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", r.Path, r.PageName, r.Title, r.MenuID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "default: %s\n", table.Default())
	return err
}

func printSidebar(w io.Writer, items []navigation.SidebarItem, depth int) {
	for _, item := range items {
		marker := " "
		switch {
		case item.Active:
			marker = okText("*")
		case item.Open:
			marker = "-"
		case len(item.Children) > 0:
			marker = "+"
		}
		line := fmt.Sprintf("%s%s %s %s", strings.Repeat("  ", depth), marker, item.Icon.Symbol, item.Title)
		if item.Path != "" {
			line += " " + dimText(item.Path)
		}
		fmt.Fprintln(w, line)
		printSidebar(w, item.Children, depth+1)
	}
}

func checkTree(w io.Writer, tree []navigation.MenuNode) error {
	issues := navigation.CheckTree(tree, registry())
	if len(issues) == 0 {
		fmt.Fprintf(w, "%s %d menus, no issues\n", okText("ok"), navigation.Count(tree))
		return nil
	}
	for _, i := range issues {
		level := warnText(string(i.Level))
		if i.Level == navigation.IssueError {
			level = errorText(string(i.Level))
		}
		fmt.Fprintf(w, "%s menu %d (%s): %s\n", level, i.MenuID, i.Name, i.Message)
	}
	if navigation.HasErrors(issues) {
		return errTreeInvalid
	}
	return nil
}
