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
	"bytes"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func TestParsePage(t *testing.T) {
	for _, p := range Pages() {
		got, ok := ParsePage(p.String())
		require.True(t, ok, p.String())
		assert.Equal(t, p, got)
	}

	for _, name := range []string{"", "dashboard", "Unknown", " Dashboard"} {
		_, ok := ParsePage(name)
		assert.False(t, ok, name)
	}
}

func TestRegistry_ResolveIsLazyAndMemoized(t *testing.T) {
	var built atomic.Int32
	reg := NewRegistry(func(p Page) Component {
		built.Add(1)
		return func(pc PageContext) g.Node { return g.Text("page:" + p.String()) }
	})

	page, c, ok := reg.Resolve("Dashboard")
	require.True(t, ok)
	assert.Equal(t, PageDashboard, page)
	assert.Equal(t, int32(0), built.Load(), "resolve must not build the component")

	var buf bytes.Buffer
	require.NoError(t, c(PageContext{}).Render(&buf))
	require.NoError(t, c(PageContext{}).Render(&buf))
	assert.Equal(t, "page:Dashboardpage:Dashboard", buf.String())
	assert.Equal(t, int32(1), built.Load())
}

func TestRegistry_UnknownKey(t *testing.T) {
	reg := testRegistry()
	_, c, ok := reg.Resolve("NotAPage")
	assert.False(t, ok)
	assert.Nil(t, c)
}

func TestRegistry_Placeholder(t *testing.T) {
	reg := NewRegistry(func(Page) Component { return nil },
		WithPlaceholder(func(pc PageContext) g.Node { return g.Text("wait") }))

	_, c, ok := reg.Resolve("MenuManagement")
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, c(PageContext{}).Render(&buf))
	assert.Equal(t, "wait", buf.String())
}

func TestPageContext_T(t *testing.T) {
	pc := PageContext{}
	assert.Equal(t, "fallback", pc.T("id", "fallback"))

	pc.Localize = func(id string) string {
		if id == "known" {
			return "已知"
		}
		return id
	}
	assert.Equal(t, "已知", pc.T("known", "x"))
	assert.Equal(t, "x", pc.T("missing", "x"))
}
