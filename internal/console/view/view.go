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

// Package view renders the console's HTML with gomponents.
package view

import (
	"github.com/gofiber/fiber/v2"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	"maragu.dev/gomponents/html"
)

// Translator looks up a UI string by message id. A nil Translator, or one
// that returns "" or the id itself, leaves the fallback text in place.
type Translator func(id string) string

// T returns the translation of id, or fallback.
func (t Translator) T(id, fallback string) string {
	if t == nil {
		return fallback
	}
	if s := t(id); s != "" && s != id {
		return s
	}
	return fallback
}

// Document wraps body in a complete HTML page.
func Document(t Translator, title string, head []g.Node, body ...g.Node) g.Node {
	app := t.T("app.title", "Expert Tracking Site")
	if title != "" {
		title = title + " - " + app
	} else {
		title = app
	}
	return components.HTML5(components.HTML5Props{
		Title:    title,
		Language: t.T("app.lang", "zh-CN"),
		Head: append([]g.Node{
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.StyleEl(g.Raw(stylesheet)),
		}, head...),
		Body: body,
	})
}

// Render writes node as the HTML response.
func Render(c *fiber.Ctx, status int, node g.Node) error {
	c.Status(status)
	c.Type("html", "utf-8")
	return node.Render(c)
}

const stylesheet = `
*{box-sizing:border-box}
body{margin:0;font-family:-apple-system,"PingFang SC","Microsoft YaHei",sans-serif;background:#f0f2f5;color:#1f1f1f}
a{color:inherit;text-decoration:none}
.layout{display:flex;min-height:100vh}
.sider{width:220px;background:#001529;color:#ffffffa6;flex-shrink:0}
.sider .brand{height:64px;display:flex;align-items:center;padding:0 24px;color:#fff;font-weight:600}
.sider ul{list-style:none;margin:0;padding:0}
.sider li a,.sider summary{display:flex;gap:10px;align-items:center;padding:10px 24px;cursor:pointer}
.sider li li a{padding-left:48px}
.sider a:hover,.sider summary:hover{color:#fff}
.sider a.active{background:#1677ff;color:#fff}
.main{flex:1;display:flex;flex-direction:column}
.header{height:64px;background:#fff;display:flex;justify-content:space-between;align-items:center;padding:0 24px;box-shadow:0 1px 4px #00152914}
.header form{display:inline}
.header button{border:0;background:none;color:#1677ff;cursor:pointer}
.content{margin:24px;padding:24px;background:#fff;border-radius:8px;flex:1}
.notice{margin:16px 24px 0;padding:8px 16px;border-radius:6px}
.notice-error{background:#fff2f0;border:1px solid #ffccc7}
.notice-info{background:#e6f4ff;border:1px solid #91caff}
.center{min-height:100vh;display:flex;align-items:center;justify-content:center}
.card{width:360px;background:#fff;padding:32px;border-radius:8px;box-shadow:0 2px 8px #00000014}
.card label{display:block;margin:12px 0 4px}
.card input{width:100%;padding:8px;border:1px solid #d9d9d9;border-radius:6px}
.card button{width:100%;margin-top:20px;padding:8px;border:0;border-radius:6px;background:#1677ff;color:#fff;cursor:pointer}
.spinner{width:32px;height:32px;border:3px solid #d9d9d9;border-top-color:#1677ff;border-radius:50%;animation:spin 1s linear infinite;margin:0 auto 12px}
@keyframes spin{to{transform:rotate(360deg)}}
.empty{color:#8c8c8c;text-align:center;padding:48px 0}
`
