// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

// runCommand executes a fresh root command with the given args and returns
// whatever it printed.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "mealdeck ") {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestConfigShowPrintsDefaults(t *testing.T) {
	out, err := runCommand(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"api.base_url:", "page_size: 20", "language: en"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show output missing %q:\n%s", want, out)
		}
	}
}

func TestExportWritesCSVToStdout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "pizza" {
			t.Errorf("search query = %q, want %q", got, "pizza")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"ord-1","restaurant":"Luigi","courier":"kai","status":"placed","total_cents":1250,"currency":"EUR","placed_at":"2026-08-27T10:00:00Z"}]`))
	}))
	defer srv.Close()

	t.Setenv("MEALDECK_CACHE_PATH", filepath.Join(t.TempDir(), "snapshots.db"))
	out, err := runCommand(t, "export", "--api.base_url", srv.URL, "--search", "pizza")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "id,restaurant,courier,status,total,placed_at") {
		t.Fatalf("missing CSV header in output:\n%s", out)
	}
	if !strings.Contains(out, "ord-1,Luigi,kai,placed,EUR 12.50,2026-08-27T10:00:00Z") {
		t.Fatalf("missing order row in output:\n%s", out)
	}
}
