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

package view

import (
	"github.com/s-khaon/expert-tracking-site/internal/console/navigation"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	"maragu.dev/gomponents/html"
)

type NoticeKind string

const (
	NoticeInfo  NoticeKind = "info"
	NoticeError NoticeKind = "error"
)

// Notice is a transient message shown above the page body.
type Notice struct {
	Kind    NoticeKind
	Message string
}

type ShellProps struct {
	Title      string
	UserName   string
	LogoutPath string
	Sidebar    []navigation.SidebarItem
	Notice     *Notice
	Body       g.Node
	T          Translator
}

// Shell renders the authenticated layout: sidebar, header and page body.
func Shell(p ShellProps) g.Node {
	if p.LogoutPath == "" {
		p.LogoutPath = "/logout"
	}
	return Document(p.T, p.Title, nil,
		html.Div(html.Class("layout"),
			html.Aside(html.Class("sider"),
				html.Div(html.Class("brand"), g.Text(p.T.T("app.title", "Expert Tracking Site"))),
				Sidebar(p.Sidebar),
			),
			html.Div(html.Class("main"),
				header(p),
				g.Iff(p.Notice != nil && p.Notice.Message != "", func() g.Node { return notice(p.Notice) }),
				html.Main(html.Class("content"), p.Body),
			),
		),
	)
}

func header(p ShellProps) g.Node {
	return html.Header(html.Class("header"),
		html.Span(html.Class("page-title"), g.Text(p.Title)),
		html.Div(
			html.Span(html.Class("user"), g.Text(p.UserName)),
			g.Text(" "),
			html.Form(html.Method("post"), html.Action(p.LogoutPath),
				html.Button(html.Type("submit"), g.Text(p.T.T("header.logout", "Logout"))),
			),
		),
	)
}

func notice(n *Notice) g.Node {
	kind := n.Kind
	if kind == "" {
		kind = NoticeInfo
	}
	return html.Div(html.Class("notice notice-"+string(kind)), html.Role("alert"), g.Text(n.Message))
}

// Sidebar renders the menu items; folders become collapsible groups.
func Sidebar(items []navigation.SidebarItem) g.Node {
	return html.Nav(html.Ul(html.Class("menu"), g.Map(items, sidebarItem)))
}

func sidebarItem(item navigation.SidebarItem) g.Node {
	label := g.Group{
		html.Span(html.Class("icon"), html.Title(item.Icon.Name), g.Text(item.Icon.Symbol)),
		html.Span(g.Text(item.Title)),
	}

	if len(item.Children) == 0 {
		return html.Li(html.ID(item.Key),
			html.A(html.Href(item.Path),
				components.Classes{"active": item.Active},
				g.If(item.Active, html.Aria("current", "page")),
				label,
			),
		)
	}

	// 既有路径又有子菜单: 分组标题本身可点击
	summary := g.Node(label)
	if item.Path != "" {
		summary = html.A(html.Href(item.Path), components.Classes{"active": item.Active}, label)
	}
	return html.Li(html.ID(item.Key),
		html.Details(
			g.If(item.Open || item.Active, g.Attr("open")),
			html.Summary(summary),
			html.Ul(g.Map(item.Children, sidebarItem)),
		),
	)
}
