// Package config loads runtime settings from a YAML file with
// environment overrides for secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the CLI, TUI and server front ends.
type Config struct {
	// PlayerName overrides the world's default player name when set.
	PlayerName string `yaml:"player_name"`
	// SaveDir is where save files are written.
	SaveDir string `yaml:"save_dir"`
	// ContentDir points at a directory of Lua world scripts. Empty means
	// the built-in world.
	ContentDir string `yaml:"content_dir"`
	// Seed fixes the RNG seed. Zero means seed from the clock.
	Seed int64 `yaml:"seed"`
	// HistorySize caps the command history shown by the history command.
	HistorySize int `yaml:"history_size"`
	// Server holds the websocket server settings.
	Server ServerConfig `yaml:"server"`
	// AI holds the automated player settings.
	AI AIConfig `yaml:"ai"`
}

// ServerConfig configures the websocket front end.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AIConfig configures the automated player. The API key is never read
// from the file, only from GEMINI_API_KEY.
type AIConfig struct {
	Strategy string `yaml:"strategy"`
	Model    string `yaml:"model"`
	MaxTurns int    `yaml:"max_turns"`
	APIKey   string `yaml:"-"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		SaveDir:     filepath.Join(home, ".dungeoneer", "saves"),
		HistorySize: 10,
		Server:      ServerConfig{Addr: ":8080"},
		AI: AIConfig{
			Strategy: "explorer",
			Model:    "gemini-2.0-flash",
			MaxTurns: 100,
		},
	}
}

// Load reads a YAML config file and applies environment overrides. A
// missing file is not an error; defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.AI.APIKey = key
	}
	if dir := os.Getenv("DUNGEONEER_SAVE_DIR"); dir != "" {
		cfg.SaveDir = dir
	}
}

func (c Config) validate() error {
	if c.HistorySize < 0 {
		return fmt.Errorf("history_size must not be negative")
	}
	if c.AI.MaxTurns < 0 {
		return fmt.Errorf("ai.max_turns must not be negative")
	}
	switch c.AI.Strategy {
	case "", "explorer", "combatant", "collector", "quester", "random", "llm":
	default:
		return fmt.Errorf("unknown ai.strategy %q", c.AI.Strategy)
	}
	return nil
}
