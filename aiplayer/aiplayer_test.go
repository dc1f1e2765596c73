package aiplayer

import (
	"strings"
	"testing"

	"github.com/kmoss/dungeoneer/engine"
	"github.com/kmoss/dungeoneer/world"
)

// fakeDice returns scripted values so strategy choices are predictable.
type fakeDice struct {
	chances []bool
	choices []int
}

func (d *fakeDice) Intn(n int) int { return 0 }

func (d *fakeDice) Range(lo, hi int) int { return lo }

func (d *fakeDice) Chance(p float64) bool {
	if len(d.chances) == 0 {
		return false
	}
	v := d.chances[0]
	d.chances = d.chances[1:]
	return v
}

func (d *fakeDice) Choice(n int) int {
	if len(d.choices) == 0 {
		return 0
	}
	v := d.choices[0]
	d.choices = d.choices[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func TestExplorer_PrefersUnvisitedExits(t *testing.T) {
	gs := world.Builtin()
	p := NewPlayer(Explorer, 10, &fakeDice{})
	p.observe(gs)

	// From the entrance both exits lead to unvisited rooms; the scripted
	// dice picks the first in direction order, which is north.
	if got := p.ChooseAction(gs); got != "north" {
		t.Errorf("expected north, got %q", got)
	}
}

func TestExplorer_TakesItemsWhenNothingUnvisited(t *testing.T) {
	gs := world.Builtin()
	p := NewPlayer(Explorer, 10, &fakeDice{})
	// Mark every room visited so movement loses priority.
	for id := range gs.Rooms {
		p.visitedRooms[id] = true
	}

	got := p.ChooseAction(gs)
	if !strings.HasPrefix(got, "take ") {
		t.Errorf("expected a take command, got %q", got)
	}
}

func TestCombatant_AttacksWhenChancePasses(t *testing.T) {
	gs := world.Builtin()
	gs.Player.CurrentRoom = "corridor"

	p := NewPlayer(Combatant, 10, &fakeDice{chances: []bool{true}})
	if got := p.ChooseAction(gs); got != "attack goblin" {
		t.Errorf("expected attack goblin, got %q", got)
	}
}

func TestCombatant_EquipsWeaponFirst(t *testing.T) {
	gs := world.Builtin()
	gs.Player.Inventory = []string{"sword"}

	p := NewPlayer(Combatant, 10, &fakeDice{})
	if got := p.ChooseAction(gs); got != "equip sword" {
		t.Errorf("expected equip sword, got %q", got)
	}
}

func TestCombatant_HealsWhenLow(t *testing.T) {
	gs := world.Builtin()
	gs.Player.Health = 20
	gs.Player.Inventory = []string{"potion"}

	p := NewPlayer(Combatant, 10, &fakeDice{})
	// Every room visited so explorer fallback cannot shadow the heal.
	for id := range gs.Rooms {
		p.visitedRooms[id] = true
	}

	if got := p.ChooseAction(gs); got != "use health potion" {
		t.Errorf("expected use health potion, got %q", got)
	}
}

func TestCollector_CraftsKnownRecipes(t *testing.T) {
	gs := world.Builtin()
	gs.Rooms["entrance"].Items = nil

	p := NewPlayer(Collector, 10, &fakeDice{chances: []bool{true}})
	got := p.ChooseAction(gs)
	// Known recipes are health_potion and torch; sorted order puts
	// health_potion first and the scripted dice picks index 0.
	if got != "craft health_potion" {
		t.Errorf("expected craft health_potion, got %q", got)
	}
}

func TestQuester_ChecksQuestBoard(t *testing.T) {
	gs := world.Builtin()
	gs.Player.CurrentRoom = "guard_room"

	p := NewPlayer(Quester, 10, &fakeDice{chances: []bool{true}})
	if got := p.ChooseAction(gs); got != "quests" {
		t.Errorf("expected quests, got %q", got)
	}
}

func TestRandom_StaysWithinKnownCommands(t *testing.T) {
	gs := world.Builtin()
	p := NewPlayer(Random, 10, engine.NewRNG(7))

	for i := 0; i < 50; i++ {
		got := p.ChooseAction(gs)
		if got == "" {
			t.Fatal("random strategy returned an empty command")
		}
	}
}

func TestPlay_SessionRunsAndReports(t *testing.T) {
	rng := engine.NewRNG(42)
	gs := world.Builtin()
	eng := engine.New(gs, rng)

	p := NewPlayer(Explorer, 30, rng)
	stats := p.Play(eng)

	if stats.Turns == 0 {
		t.Fatal("expected the session to take turns")
	}
	if stats.Turns > 30 {
		t.Errorf("turn budget exceeded: %d", stats.Turns)
	}
	if stats.RoomsVisited < 2 {
		t.Errorf("explorer should leave the entrance, visited %d rooms", stats.RoomsVisited)
	}
	if len(p.Log()) == 0 {
		t.Error("expected a session log")
	}

	summary := stats.Summary()
	if !strings.Contains(summary, "Strategy: EXPLORER") {
		t.Errorf("summary missing strategy: %q", summary)
	}
	if !strings.Contains(summary, "Turns:") {
		t.Errorf("summary missing turns: %q", summary)
	}
}

func TestPlay_StopsOnGameOver(t *testing.T) {
	rng := engine.NewRNG(1)
	gs := world.Builtin()
	gs.IsGameOver = true
	eng := engine.New(gs, rng)

	p := NewPlayer(Explorer, 10, rng)
	stats := p.Play(eng)
	if stats.Turns != 0 {
		t.Errorf("expected no turns on a finished game, got %d", stats.Turns)
	}
}
