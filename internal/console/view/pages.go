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
	"maragu.dev/gomponents/html"
)

// Pages is the console's page factory.
func Pages(p navigation.Page) navigation.Component {
	switch p {
	case navigation.PageDashboard:
		return dashboard
	case navigation.PageUserManagement,
		navigation.PageExpertManagement,
		navigation.PageRoleManagement,
		navigation.PageMenuManagement,
		navigation.PageInfluencerManagement,
		navigation.PageContactRecordManagement:
		return placeholder
	default:
		return nil
	}
}

func dashboard(pc navigation.PageContext) g.Node {
	return html.Div(html.Class("page page-dashboard"),
		html.H1(g.Text(pc.Title)),
		html.P(g.Text(pc.T("page.dashboard.welcome", "Welcome back")+", "+pc.UserName)),
	)
}

// 业务页面暂未接入, 保留页面框架
func placeholder(pc navigation.PageContext) g.Node {
	return html.Div(html.Class("page page-"+pc.Page.String()),
		html.H1(g.Text(pc.Title)),
		html.P(html.Class("empty"), g.Text(pc.T("page.placeholder", "This page is under construction."))),
	)
}

// EmptyBody is shown when the user has no page to open.
func EmptyBody(t Translator) g.Node {
	return html.Div(html.Class("empty"), g.Text(t.T("page.empty", "No page is available for your account.")))
}
