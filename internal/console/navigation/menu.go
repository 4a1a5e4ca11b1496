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

// Package navigation turns a user's permitted menu tree into the console's
// route table and sidebar. Every consumer filters nodes through the same
// predicates declared here.
package navigation

import (
	"cmp"
	"slices"
)

// MenuTypeMenu marks a navigable node. Any other type (button, api, ...) is
// a permission carrier only.
const MenuTypeMenu = "menu"

// MenuNode is one entry of the permitted menu tree.
type MenuNode struct {
	ID        uint64     `json:"id"`
	Name      string     `json:"name"`
	Title     string     `json:"title"`
	Path      string     `json:"path,omitempty"`
	Icon      string     `json:"icon,omitempty"`
	Component string     `json:"component,omitempty"`
	MenuType  string     `json:"menu_type"`
	IsHidden  bool       `json:"is_hidden"`
	IsActive  bool       `json:"is_active"`
	SortOrder int        `json:"sort_order"`
	ParentID  *uint64    `json:"parent_id,omitempty"`
	Children  []MenuNode `json:"children,omitempty"`
}

// IsEligible reports whether n may appear anywhere in navigation. An
// ineligible node hides its whole subtree.
func IsEligible(n MenuNode) bool {
	return n.MenuType == MenuTypeMenu && n.IsActive && !n.IsHidden
}

// IsDisplayable reports whether n gets a sidebar entry: it is eligible and
// either has a path or at least one displayable child.
func IsDisplayable(n MenuNode) bool {
	if !IsEligible(n) {
		return false
	}
	if n.Path != "" {
		return true
	}
	return slices.ContainsFunc(n.Children, IsDisplayable)
}

// IsRoutable reports whether n produces a route: it is eligible, has a path
// and its component resolves in reg.
func IsRoutable(n MenuNode, reg *Registry) bool {
	return IsEligible(n) && n.Path != "" && reg.Has(n.Component)
}

// Sorted returns a copy of siblings stable-sorted by SortOrder ascending.
func Sorted(siblings []MenuNode) []MenuNode {
	out := slices.Clone(siblings)
	slices.SortStableFunc(out, func(a, b MenuNode) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})
	return out
}

// walkEligible visits eligible nodes depth-first, pre-order, siblings in sort
// order. Returning false from fn stops the walk.
func walkEligible(nodes []MenuNode, fn func(MenuNode) bool) bool {
	for _, n := range Sorted(nodes) {
		if !IsEligible(n) {
			continue
		}
		if !fn(n) {
			return false
		}
		if !walkEligible(n.Children, fn) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes in the tree, eligible or not.
func Count(tree []MenuNode) int {
	total := 0
	for _, n := range tree {
		total += 1 + Count(n.Children)
	}
	return total
}
