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
	"strconv"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

type LoginProps struct {
	Action   string
	Redirect string
	Username string
	Error    string
	T        Translator
}

// LoginPage renders the sign-in form. The redirect target travels in a
// hidden field.
func LoginPage(p LoginProps) g.Node {
	if p.Action == "" {
		p.Action = "/login"
	}
	title := p.T.T("login.title", "Sign in")
	return Document(p.T, title, nil,
		html.Div(html.Class("center"),
			html.Form(html.Class("card"), html.Method("post"), html.Action(p.Action),
				html.H1(g.Text(p.T.T("app.title", "Expert Tracking Site"))),
				g.If(p.Error != "", html.Div(html.Class("notice notice-error"), html.Role("alert"), g.Text(p.Error))),
				html.Label(html.For("username"), g.Text(p.T.T("login.username", "Username"))),
				html.Input(html.ID("username"), html.Name("username"), html.Type("text"),
					html.Value(p.Username), html.AutoComplete("username"), html.Required(), html.AutoFocus()),
				html.Label(html.For("password"), g.Text(p.T.T("login.password", "Password"))),
				html.Input(html.ID("password"), html.Name("password"), html.Type("password"),
					html.AutoComplete("current-password"), html.Required()),
				g.If(p.Redirect != "", html.Input(html.Type("hidden"), html.Name("redirect"), html.Value(p.Redirect))),
				html.Button(html.Type("submit"), g.Text(p.T.T("login.submit", "Sign in"))),
			),
		),
	)
}

// LoadingPage fills the viewport while the menu tree is fetched and reloads
// itself after refreshSeconds.
func LoadingPage(t Translator, refreshSeconds int) g.Node {
	if refreshSeconds <= 0 {
		refreshSeconds = 1
	}
	return Document(t, "",
		[]g.Node{html.Meta(g.Attr("http-equiv", "refresh"), html.Content(strconv.Itoa(refreshSeconds)))},
		html.Div(html.Class("center"),
			html.Div(html.Role("status"),
				html.Div(html.Class("spinner")),
				html.P(g.Text(t.T("loading", "Loading..."))),
			),
		),
	)
}
