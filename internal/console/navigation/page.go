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
	"sync"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// Page is the closed set of pages the console can render.
type Page int

const (
	PageDashboard Page = iota + 1
	PageUserManagement
	PageExpertManagement
	PageRoleManagement
	PageMenuManagement
	PageInfluencerManagement
	PageContactRecordManagement
)

var pageNames = map[Page]string{
	PageDashboard:               "Dashboard",
	PageUserManagement:          "UserManagement",
	PageExpertManagement:        "ExpertManagement",
	PageRoleManagement:          "RoleManagement",
	PageMenuManagement:          "MenuManagement",
	PageInfluencerManagement:    "InfluencerManagement",
	PageContactRecordManagement: "ContactRecordManagement",
}

func (p Page) String() string {
	if name, ok := pageNames[p]; ok {
		return name
	}
	return "Unknown"
}

// ParsePage maps a menu's component key to a Page. Matching is exact and
// case-sensitive.
func ParsePage(name string) (Page, bool) {
	switch name {
	case "Dashboard":
		return PageDashboard, true
	case "UserManagement":
		return PageUserManagement, true
	case "ExpertManagement":
		return PageExpertManagement, true
	case "RoleManagement":
		return PageRoleManagement, true
	case "MenuManagement":
		return PageMenuManagement, true
	case "InfluencerManagement":
		return PageInfluencerManagement, true
	case "ContactRecordManagement":
		return PageContactRecordManagement, true
	default:
		return 0, false
	}
}

// Pages lists every page in declaration order.
func Pages() []Page {
	return []Page{
		PageDashboard,
		PageUserManagement,
		PageExpertManagement,
		PageRoleManagement,
		PageMenuManagement,
		PageInfluencerManagement,
		PageContactRecordManagement,
	}
}

// PageContext is what a page component receives when rendered.
type PageContext struct {
	Page     Page
	Title    string
	Path     string
	UserName string
	// Localize looks up a UI string; nil means untranslated.
	Localize func(id string) string
}

// T returns the localized text for id, or fallback.
func (pc PageContext) T(id, fallback string) string {
	if pc.Localize == nil {
		return fallback
	}
	if s := pc.Localize(id); s != "" && s != id {
		return s
	}
	return fallback
}

// Component renders a page body.
type Component func(PageContext) g.Node

// PageFactory builds the component of a page. It may return nil when the
// page is not available in this build.
type PageFactory func(Page) Component

type RegistryOption func(*Registry)

// WithPlaceholder sets what a route renders while its component is not
// available.
func WithPlaceholder(c Component) RegistryOption {
	return func(r *Registry) {
		r.placeholder = c
	}
}

// Registry resolves component keys to pages. Components are built by the
// factory on first render and memoized.
type Registry struct {
	factory     PageFactory
	placeholder Component

	mu    sync.Mutex
	built map[Page]Component
}

func NewRegistry(factory PageFactory, opts ...RegistryOption) *Registry {
	r := &Registry{
		factory:     factory,
		placeholder: loadingPlaceholder,
		built:       make(map[Page]Component),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Has reports whether name is a known component key. Nil registries know
// nothing.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := ParsePage(name)
	return ok
}

// Resolve looks up name and returns the page with a lazy component. The
// component is not built until it is rendered.
func (r *Registry) Resolve(name string) (Page, Component, bool) {
	if !r.Has(name) {
		return 0, nil, false
	}
	page, _ := ParsePage(name)
	return page, r.lazy(page), true
}

func (r *Registry) lazy(page Page) Component {
	return func(pc PageContext) g.Node {
		if c := r.load(page); c != nil {
			return c(pc)
		}
		return r.placeholder(pc)
	}
}

func (r *Registry) load(page Page) Component {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.built[page]; ok {
		return c
	}
	if r.factory == nil {
		return nil
	}
	c := r.factory(page)
	if c != nil {
		r.built[page] = c
	}
	return c
}

func loadingPlaceholder(pc PageContext) g.Node {
	return html.Div(html.Class("page-loading"), g.Text(pc.T("loading", "Loading...")))
}
