package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kmoss/dungeoneer/engine"
	"github.com/kmoss/dungeoneer/world"
)

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	rng := engine.NewRNG(1)
	eng := engine.New(world.Builtin(), rng)
	var out bytes.Buffer
	c := &CLI{
		Engine:  eng,
		RNG:     rng,
		In:      strings.NewReader(input),
		Out:     &out,
		SaveDir: t.TempDir(),
	}
	return c, &out
}

func TestCLI_WelcomeAndStartingRoom(t *testing.T) {
	c, out := newTestCLI(t, "quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Welcome, Adventurer!") {
		t.Error("expected welcome line in output")
	}
	if !strings.Contains(output, "DUNGEON ENTRANCE") {
		t.Error("expected starting room description in output")
	}
	if !strings.Contains(output, "Goodbye.") {
		t.Error("expected goodbye on quit")
	}
}

func TestCLI_QuitAliases(t *testing.T) {
	for _, word := range []string{"quit", "exit", "q"} {
		c, out := newTestCLI(t, word+"\nlook\n")
		c.Run()
		if strings.Count(out.String(), "DUNGEON ENTRANCE") != 1 {
			t.Errorf("%q should end the session before the look command", word)
		}
	}
}

func TestCLI_Navigation(t *testing.T) {
	c, out := newTestCLI(t, "north\nquit\n")
	c.Run()

	if !strings.Contains(out.String(), "GUARD ROOM") {
		t.Error("expected guard room description after going north")
	}
}

func TestCLI_EmptyAndCommentLinesSkipped(t *testing.T) {
	c, out := newTestCLI(t, "\n# a comment\n\nquit\n")
	c.Run()

	if strings.Contains(out.String(), "I don't understand") {
		t.Error("blank and comment lines must not reach the engine")
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/save", "/load", "/saves", "/quit"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in help output", want)
		}
	}
}

func TestCLI_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	c, out := newTestCLI(t, "north\n/save test\n/quit\n")
	c.SaveDir = dir
	c.Run()

	if !strings.Contains(out.String(), "Game saved to test.") {
		t.Error("expected save confirmation")
	}

	c2, out2 := newTestCLI(t, "/load test\n/quit\n")
	c2.SaveDir = dir
	c2.Run()

	loadOutput := out2.String()
	if !strings.Contains(loadOutput, "Game loaded from test.") {
		t.Error("expected load confirmation")
	}
	if !strings.Contains(loadOutput, "GUARD ROOM") {
		t.Error("expected guard room after loading the save")
	}
	if c2.Engine.State.Player.CurrentRoom != "guard_room" {
		t.Errorf("loaded position = %q, want guard_room", c2.Engine.State.Player.CurrentRoom)
	}
}

func TestCLI_SavesList(t *testing.T) {
	c, out := newTestCLI(t, "/saves\n/save alpha\n/saves\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "No saved games.") {
		t.Error("expected empty list message before saving")
	}
	if !strings.Contains(output, "alpha") {
		t.Error("expected alpha in the save list")
	}
}

func TestCLI_DeleteSave(t *testing.T) {
	c, out := newTestCLI(t, "/save alpha\n/delete alpha\n/delete alpha\n/delete\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Deleted save alpha.") {
		t.Error("expected delete confirmation")
	}
	if !strings.Contains(output, "Delete failed") {
		t.Error("expected failure deleting a missing save")
	}
	if !strings.Contains(output, "Delete which save?") {
		t.Error("expected prompt when no name given")
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "/state\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Location: entrance") {
		t.Error("expected location in state output")
	}
	if !strings.Contains(output, "Health: 100/100") {
		t.Error("expected health in state output")
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "look\nagain\n/quit\n")
	c.Run()

	// Startup look plus two explicit looks.
	count := strings.Count(out.String(), "DUNGEON ENTRANCE")
	if count < 3 {
		t.Errorf("expected room description at least 3 times, got %d", count)
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat.") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}

func TestCLI_LoadNonexistent(t *testing.T) {
	c, out := newTestCLI(t, "/load nonexistent\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Load failed") {
		t.Error("expected load failure message")
	}
}
