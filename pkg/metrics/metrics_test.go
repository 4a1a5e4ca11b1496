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

package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_RegisterCollector(t *testing.T) {
	s := NewServer(Conf{})
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "console_test_total", Help: "test"})

	require.NoError(t, s.RegisterCollector(counter))
	require.NoError(t, s.RegisterCollector(counter))
	counter.Inc()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), "console_test_total 1"))
}

func TestServer_DisabledStart(t *testing.T) {
	s := NewServer(Conf{Enable: false})
	require.NoError(t, s.Start())
	require.NoError(t, s.Stop(t.Context()))
}
