package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.HistorySize != 10 {
		t.Errorf("HistorySize = %d, want 10", cfg.HistorySize)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.AI.Strategy != "explorer" {
		t.Errorf("AI.Strategy = %q", cfg.AI.Strategy)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
player_name: Kael
save_dir: /tmp/dungeoneer-saves
content_dir: ./worlds/classic
seed: 42
history_size: 25
server:
  addr: ":9090"
ai:
  strategy: quester
  max_turns: 50
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PlayerName != "Kael" {
		t.Errorf("PlayerName = %q", cfg.PlayerName)
	}
	if cfg.SaveDir != "/tmp/dungeoneer-saves" {
		t.Errorf("SaveDir = %q", cfg.SaveDir)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d", cfg.Seed)
	}
	if cfg.HistorySize != 25 {
		t.Errorf("HistorySize = %d", cfg.HistorySize)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.AI.Strategy != "quester" || cfg.AI.MaxTurns != 50 {
		t.Errorf("AI = %+v", cfg.AI)
	}
	// Unset fields keep their defaults.
	if cfg.AI.Model != "gemini-2.0-flash" {
		t.Errorf("AI.Model = %q", cfg.AI.Model)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("DUNGEONEER_SAVE_DIR", "/tmp/env-saves")

	path := writeConfig(t, "save_dir: /tmp/file-saves\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.APIKey != "test-key" {
		t.Errorf("APIKey = %q", cfg.AI.APIKey)
	}
	if cfg.SaveDir != "/tmp/env-saves" {
		t.Errorf("env should win over the file, got %q", cfg.SaveDir)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	if _, err := Load(writeConfig(t, "history_size: -1\n")); err == nil {
		t.Error("negative history_size should fail")
	}
	if _, err := Load(writeConfig(t, "ai:\n  strategy: berserker\n")); err == nil {
		t.Error("unknown strategy should fail")
	}
	if _, err := Load(writeConfig(t, "history_size: [broken\n")); err == nil {
		t.Error("bad yaml should fail")
	}
}
