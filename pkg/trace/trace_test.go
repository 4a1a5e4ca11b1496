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

package trace

import (
	"context"
	"testing"
)

func TestConf_SetDefaults(t *testing.T) {
	c := Conf{ExporterType: ExporterOTLPGRPC}
	c.SetDefaults()
	if c.Endpoint != "localhost:4317" {
		t.Errorf("grpc endpoint = %q", c.Endpoint)
	}
	if c.BatchTimeout != 5 || c.ExportTimeout != 30 || c.MaxExportBatchSize != 512 {
		t.Errorf("unexpected batch defaults: %+v", c)
	}

	n := Conf{}
	n.SetDefaults()
	if n.ExporterType != ExporterNone || n.Endpoint != "" {
		t.Errorf("unexpected defaults for disabled tracing: %+v", n)
	}
}

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Conf{})
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown error: %v", err)
	}
}

func TestInit_UnsupportedExporter(t *testing.T) {
	if _, err := Init(context.Background(), Conf{Enabled: true, ExporterType: "jaeger"}); err == nil {
		t.Error("expected error for unsupported exporter")
	}
}
