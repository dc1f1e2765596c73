// Dungeoneer is a single-player text adventure with combat, crafting and
// quests.
// Usage: dungeoneer [--version] [--plain] [--script <file>] [--seed <n>] [--config <file>] [--ai <strategy>] [--serve] [game_directory]
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kmoss/dungeoneer/aiplayer"
	"github.com/kmoss/dungeoneer/cli"
	"github.com/kmoss/dungeoneer/config"
	"github.com/kmoss/dungeoneer/engine"
	"github.com/kmoss/dungeoneer/server"
	"github.com/kmoss/dungeoneer/tui"
	"github.com/kmoss/dungeoneer/types"
	"github.com/kmoss/dungeoneer/world"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	serve := false
	var gameDir string
	var scriptFile string
	var configFile string
	var aiStrategy string
	var seedOverride int64
	seedSet := false

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("dungeoneer %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--serve":
			serve = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "--config":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--config requires a file path\n")
				os.Exit(1)
			}
			i++
			configFile = args[i]
		case "--ai":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--ai requires a strategy (explorer, combatant, collector, quester, random, llm)\n")
				os.Exit(1)
			}
			i++
			aiStrategy = args[i]
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires a number\n")
				os.Exit(1)
			}
			i++
			n, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed: %v\n", err)
				os.Exit(1)
			}
			seedOverride = n
			seedSet = true
		default:
			if gameDir == "" {
				gameDir = args[i]
			}
		}
	}

	if configFile == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			configFile = filepath.Join(home, ".dungeoneer", "config.yaml")
		}
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if gameDir == "" {
		gameDir = cfg.ContentDir
	}
	if seedSet {
		cfg.Seed = seedOverride
	}
	if aiStrategy != "" {
		cfg.AI.Strategy = aiStrategy
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Websocket mode: every connection gets its own world and dice.
	if serve {
		s := server.New(func() (*engine.Engine, error) {
			gs, err := newWorld(gameDir, cfg)
			if err != nil {
				return nil, err
			}
			return engine.New(gs, engine.NewRNG(time.Now().UnixNano())), nil
		})
		if err := s.ListenAndServe(cfg.Server.Addr); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gs, err := newWorld(gameDir, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}
	rng := engine.NewRNG(seed)
	eng := engine.New(gs, rng)

	// Automated play: run the strategy and print its report.
	if aiStrategy != "" {
		if err := runAI(eng, rng, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng, rng)
		c.In = f
		c.SaveDir = cfg.SaveDir
		c.EchoInput = true
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(eng, rng)
		c.SaveDir = cfg.SaveDir
		c.Run()
		return
	}

	if err := tui.Run(eng, rng, cfg.SaveDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newWorld loads Lua content from dir, or falls back to the built-in
// dungeon. The configured player name, when set, replaces the world's.
func newWorld(dir string, cfg config.Config) (*types.GameState, error) {
	var gs *types.GameState
	if dir != "" {
		loaded, err := world.Load(dir)
		if err != nil {
			return nil, err
		}
		gs = loaded
	} else {
		gs = world.Builtin()
	}
	if cfg.PlayerName != "" {
		gs.Player.Name = cfg.PlayerName
	}
	return gs, nil
}

func runAI(eng *engine.Engine, rng *engine.RNG, cfg config.Config) error {
	if cfg.AI.Strategy == "llm" {
		ctx := context.Background()
		p, err := aiplayer.NewLLMPlayer(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.MaxTurns)
		if err != nil {
			return err
		}
		defer p.Close()
		stats, err := p.Play(ctx, eng)
		fmt.Println(stats.Summary())
		return err
	}

	p := aiplayer.NewPlayer(aiplayer.Strategy(cfg.AI.Strategy), cfg.AI.MaxTurns, rng)
	stats := p.Play(eng)
	fmt.Println(stats.Summary())
	return nil
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
