// File path: internal/store/config_test.go
package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"OPSBOARD_DB_CONFIG", "OPSBOARD_DB_PATH", "OPSBOARD_DB_MAX_OPEN_CONNS", "OPSBOARD_DB_MAX_IDLE_CONNS", "OPSBOARD_DB_BUSY_TIMEOUT", "OPSBOARD_DB_SEED"} {
		t.Setenv(key, "")
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Path != filepath.Join("data", "opsboard.db") {
		t.Fatalf("path = %q", cfg.Path)
	}
	if cfg.MaxOpenConns != 8 || cfg.MaxIdleConns != 8 {
		t.Fatalf("conns = %d/%d", cfg.MaxOpenConns, cfg.MaxIdleConns)
	}
	if cfg.BusyTimeout != 5*time.Second {
		t.Fatalf("busy timeout = %v", cfg.BusyTimeout)
	}
	if cfg.SeedDemoData {
		t.Fatal("seed defaulted on")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("OPSBOARD_DB_CONFIG", "")
	t.Setenv("OPSBOARD_DB_PATH", "/tmp/custom.db")
	t.Setenv("OPSBOARD_DB_MAX_OPEN_CONNS", "4")
	t.Setenv("OPSBOARD_DB_BUSY_TIMEOUT", "2s")
	t.Setenv("OPSBOARD_DB_SEED", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Path != "/tmp/custom.db" || cfg.MaxOpenConns != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.BusyTimeout != 2*time.Second || !cfg.SeedDemoData {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte(`{"path": "/tmp/from-file.db", "max_open_conns": 2, "busy_timeout": "10s"}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OPSBOARD_DB_CONFIG", path)
	t.Setenv("OPSBOARD_DB_PATH", "/tmp/from-env.db")
	t.Setenv("OPSBOARD_DB_MAX_OPEN_CONNS", "")
	t.Setenv("OPSBOARD_DB_BUSY_TIMEOUT", "")
	t.Setenv("OPSBOARD_DB_SEED", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// Env beats file; the file still supplies what env left unset.
	if cfg.Path != "/tmp/from-env.db" {
		t.Fatalf("path = %q", cfg.Path)
	}
	if cfg.MaxOpenConns != 2 {
		t.Fatalf("max open conns = %d", cfg.MaxOpenConns)
	}
	if cfg.BusyTimeout != 10*time.Second {
		t.Fatalf("busy timeout = %v", cfg.BusyTimeout)
	}
}

func TestLoadConfigBadEnv(t *testing.T) {
	t.Setenv("OPSBOARD_DB_CONFIG", "")
	t.Setenv("OPSBOARD_DB_MAX_OPEN_CONNS", "many")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("bad conn count accepted")
	}
}
