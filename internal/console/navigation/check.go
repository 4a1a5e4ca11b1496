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
package navigation

import (
	"fmt"
	"strings"
)

type IssueLevel string

const (
	IssueError   IssueLevel = "error"
	IssueWarning IssueLevel = "warning"
)

// Issue is one problem found in a menu tree.
type Issue struct {
	Level   IssueLevel `json:"level"`
	MenuID  uint64     `json:"menu_id"`
	Name    string     `json:"name"`
	Message string     `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: menu %d (%s): %s", i.Level, i.MenuID, i.Name, i.Message)
}

// CheckTree lints a menu tree the way it will be rendered with reg.
// Errors make a node unusable; warnings point at nodes that will be
// silently skipped or hidden.
func CheckTree(tree []MenuNode, reg *Registry) []Issue {
	var issues []Issue
	report := func(level IssueLevel, n MenuNode, format string, args ...any) {
		issues = append(issues, Issue{Level: level, MenuID: n.ID, Name: n.Name, Message: fmt.Sprintf(format, args...)})
	}

	ids := make(map[uint64]struct{})
	var walkAll func(nodes []MenuNode)
	walkAll = func(nodes []MenuNode) {
		for _, n := range nodes {
			if _, dup := ids[n.ID]; dup && n.ID != 0 {
				report(IssueError, n, "duplicate id")
			}
			ids[n.ID] = struct{}{}
			if n.Name == "" {
				report(IssueError, n, "name is empty")
			}
			if n.Path != "" && !strings.HasPrefix(n.Path, "/") {
				report(IssueError, n, "path %q must start with /", n.Path)
			}
			walkAll(n.Children)
		}
	}
	walkAll(tree)

	paths := make(map[string]uint64)
	walkEligible(tree, func(n MenuNode) bool {
		if n.Path == "" {
			if !IsDisplayable(n) {
				report(IssueWarning, n, "folder has no visible children and is hidden")
			}
			return true
		}
		if !reg.Has(n.Component) {
			report(IssueWarning, n, "component %q is not registered, no route", n.Component)
		}
		if first, dup := paths[n.Path]; dup {
			report(IssueWarning, n, "path %s already used by menu %d", n.Path, first)
			return true
		}
		paths[n.Path] = n.ID
		return true
	})
	return issues
}

// HasErrors reports whether issues contains an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Level == IssueError {
			return true
		}
	}
	return false
}
