// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsApply(t *testing.T) {
	cfg, err := LoadConfig[Config](nil, Defaults(), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Fatalf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Fatalf("timeout = %v", cfg.API.Timeout)
	}
	if cfg.PageSize != 20 {
		t.Fatalf("page size = %d", cfg.PageSize)
	}
	if cfg.Language != "en" {
		t.Fatalf("language = %q", cfg.Language)
	}
	if cfg.Debug {
		t.Fatal("debug should default to false")
	}
}

func TestExplicitConfigFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mealdeck.yaml")
	content := []byte("api:\n  base_url: https://ops.example.com\nlanguage: de\npage_size: 50\n")
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig[Config](nil, Defaults(), &path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "https://ops.example.com" {
		t.Fatalf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.Language != "de" {
		t.Fatalf("language = %q", cfg.Language)
	}
	if cfg.PageSize != 50 {
		t.Fatalf("page size = %d", cfg.PageSize)
	}
	// Untouched keys keep their defaults.
	if cfg.Cache.TTL != 30*time.Second {
		t.Fatalf("cache ttl = %v", cfg.Cache.TTL)
	}
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("MEALDECK_PAGE_SIZE", "7")
	cfg, err := LoadConfig[Config](nil, Defaults(), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PageSize != 7 {
		t.Fatalf("page size = %d, want env override 7", cfg.PageSize)
	}
}

func TestCachePathExplicit(t *testing.T) {
	got, err := CachePath("/tmp/custom.db")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got != "/tmp/custom.db" {
		t.Fatalf("path = %q", got)
	}
}

func TestCachePathDefaultsToUserCacheDir(t *testing.T) {
	got, err := CachePath("")
	if err != nil {
		t.Skipf("no user cache dir in this environment: %v", err)
	}
	if filepath.Base(got) != "snapshots.db" {
		t.Fatalf("path = %q, want a snapshots.db location", got)
	}
}
