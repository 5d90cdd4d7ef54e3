package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `game:
  quit_word: exit
  max_players: 6
report:
  format: markdown
  dir: reports
audit:
  csv_dir: logs
  sqlite_path: history.db
redis:
  addr: localhost:6379
  ttl: 5m
watch:
  addr: ":8080"
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.QuitWord != "exit" || cfg.Game.MaxPlayers != 6 || cfg.Game.MinPlayers != 0 {
		t.Fatalf("unexpected game section %+v", cfg.Game)
	}
	if cfg.Report.Format != "markdown" || cfg.Audit.SQLitePath != "history.db" || cfg.Watch.Addr != ":8080" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if TTLDuration(cfg.Redis.TTL, time.Minute) != 5*time.Minute {
		t.Fatalf("expected 5m ttl")
	}
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing config should not fail: %v", err)
	}
	if cfg.Log.Level != "" {
		t.Fatalf("expected zero config")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Load must report a missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("game: ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadOptional(bad); err == nil {
		t.Fatalf("malformed config must fail")
	}
}

func TestTTLDuration(t *testing.T) {
	if TTLDuration("", time.Minute) != time.Minute || TTLDuration("nope", time.Minute) != time.Minute {
		t.Fatalf("expected fallback")
	}
	if TTLDuration("90s", time.Minute) != 90*time.Second {
		t.Fatalf("expected parsed duration")
	}
}
