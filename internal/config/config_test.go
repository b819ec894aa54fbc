package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOOTFORGE_ADDR", "")
	t.Setenv("BOOTFORGE_NODE_ID", "")
	t.Setenv("BOOTFORGE_ENROLL_JWT_SECRET", "")
	t.Setenv("BOOTFORGE_HISTORY_DB", "")

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
	if cfg.NodeID == "" {
		t.Fatal("node id should default to the hostname")
	}
	if cfg.HistoryDB != "/var/lib/bootforge/runs.db" {
		t.Fatalf("unexpected history db: %s", cfg.HistoryDB)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOOTFORGE_ADDR", ":9000")
	t.Setenv("BOOTFORGE_NODE_ID", "node-42")
	t.Setenv("BOOTFORGE_ENROLL_JWT_SECRET", "s3cret")
	t.Setenv("BOOTFORGE_HISTORY_DB", "/tmp/runs.db")

	cfg := Load()
	if cfg.Addr != ":9000" || cfg.NodeID != "node-42" || cfg.EnrollSecret != "s3cret" || cfg.HistoryDB != "/tmp/runs.db" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}
