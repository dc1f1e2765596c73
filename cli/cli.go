// Package cli provides terminal I/O and meta-command dispatch for the
// Dungeoneer engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kmoss/dungeoneer/engine"
	"github.com/kmoss/dungeoneer/engine/save"
)

// CLI handles terminal interaction with the player. Game commands go to
// the engine; meta-commands starting with '/' are handled here. The bare
// words quit, exit and q also end the session.
type CLI struct {
	Engine    *engine.Engine
	RNG       *engine.RNG
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, rng *engine.RNG) *CLI {
	home, _ := os.UserHomeDir()
	return &CLI{
		Engine:  eng,
		RNG:     rng,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: filepath.Join(home, ".dungeoneer", "saves"),
	}
}

// Run starts the game loop: prompt, input, dispatch, output. It returns
// when the player quits or input runs out.
func (c *CLI) Run() {
	c.printLine(fmt.Sprintf("Welcome, %s!", c.Engine.State.Player.Name))
	c.printLine("")
	c.printLine(c.Engine.Step("look"))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return
			}
			continue
		}

		lower := strings.ToLower(input)
		switch lower {
		case "quit", "exit", "q":
			c.printSystem("Goodbye.")
			return
		case "again", "g":
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		default:
			c.lastCmd = input
		}

		c.printLine(c.Engine.Step(input))
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/saves":
		c.cmdSaves()

	case "/delete":
		c.cmdDelete(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) saveSystem() (*save.System, error) {
	return save.NewSystem(c.SaveDir)
}

func (c *CLI) rngBookkeeping() (int64, int64) {
	if c.RNG == nil {
		return 0, 0
	}
	return c.RNG.Seed(), c.RNG.Position()
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}
	sys, err := c.saveSystem()
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	seed, pos := c.rngBookkeeping()
	if err := sys.Save(c.Engine.State, name, seed, pos); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}
	sys, err := c.saveSystem()
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	doc, err := sys.Load(name)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	rng := engine.RestoreRNG(doc.RNGSeed, doc.RNGPosition)
	gs := doc.GameState
	c.Engine = engine.New(&gs, rng)
	c.RNG = rng
	c.printSystem(fmt.Sprintf("Game loaded from %s.", name))
	c.printLine(c.Engine.Step("look"))
}

func (c *CLI) cmdSaves() {
	sys, err := c.saveSystem()
	if err != nil {
		c.printSystem(fmt.Sprintf("List failed: %v", err))
		return
	}
	saves, err := sys.List()
	if err != nil {
		c.printSystem(fmt.Sprintf("List failed: %v", err))
		return
	}
	if len(saves) == 0 {
		c.printSystem("No saved games.")
		return
	}
	for _, m := range saves {
		c.printSystem(fmt.Sprintf("%s — %s, level %d, %s", m.SaveName, m.PlayerName, m.PlayerLevel, m.SaveDate))
	}
}

func (c *CLI) cmdDelete(name string) {
	if name == "" {
		c.printSystem("Delete which save?")
		return
	}
	sys, err := c.saveSystem()
	if err != nil {
		c.printSystem(fmt.Sprintf("Delete failed: %v", err))
		return
	}
	if err := sys.Delete(name); err != nil {
		c.printSystem(fmt.Sprintf("Delete failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Deleted save %s.", name))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]   — Save game (default: quicksave)",
		"  /load [name]   — Load game (default: quicksave)",
		"  /saves         — List saved games",
		"  /delete <name> — Delete a saved game",
		"  /quit          — Exit game (also: quit, exit, q)",
		"  /help          — Show this help",
		"  /state         — Debug: dump current state",
		"",
		"Type 'help' for the in-game command list.",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	p := c.Engine.State.Player
	c.printSystem(fmt.Sprintf("Location: %s", p.CurrentRoom))
	c.printSystem(fmt.Sprintf("Health: %d/%d", p.Health, p.MaxHealth))
	c.printSystem(fmt.Sprintf("Level: %d (%d/%d xp)", p.Level, p.Experience, p.ExperienceToNext))
	c.printSystem(fmt.Sprintf("Gold: %d  Score: %d  Moves: %d", p.Gold, p.Score, p.Moves))
	c.printSystem(fmt.Sprintf("Inventory: %v", p.Inventory))
	if seed, pos := c.rngBookkeeping(); seed != 0 || pos != 0 {
		c.printSystem(fmt.Sprintf("RNG: seed %d, position %d", seed, pos))
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
