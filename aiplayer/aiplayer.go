// Package aiplayer drives the engine automatically for soak testing and
// demos. Strategies pick one command per turn from the current state;
// the LLM-backed player lives in llm.go.
package aiplayer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kmoss/dungeoneer/engine"
	"github.com/kmoss/dungeoneer/types"
)

// Strategy selects how the automated player chooses commands.
type Strategy string

const (
	Explorer  Strategy = "explorer"  // visit every room
	Combatant Strategy = "combatant" // fight and level
	Collector Strategy = "collector" // hoard items and craft
	Quester   Strategy = "quester"   // chase quests
	Random    Strategy = "random"    // chaos testing
)

// Stats summarizes one automated session.
type Stats struct {
	Strategy        Strategy
	Turns           int
	RoomsVisited    int
	ItemsSeen       int
	NPCsMet         int
	EnemiesMet      int
	FinalLevel      int
	FinalHealth     int
	FinalGold       int
	InventorySize   int
	QuestsActive    int
	QuestsCompleted int
	GameOver        bool
	Victory         bool
	PlayerAlive     bool
}

// Player is an automated player. It shares the engine's dice so scripted
// tests stay deterministic.
type Player struct {
	Strategy Strategy
	MaxTurns int

	dice engine.Dice

	visitedRooms map[string]bool
	seenItems    map[string]bool
	seenNPCs     map[string]bool
	seenEnemies  map[string]bool
	log          []string
}

// NewPlayer creates an automated player with the given strategy.
func NewPlayer(strategy Strategy, maxTurns int, dice engine.Dice) *Player {
	return &Player{
		Strategy:     strategy,
		MaxTurns:     maxTurns,
		dice:         dice,
		visitedRooms: map[string]bool{},
		seenItems:    map[string]bool{},
		seenNPCs:     map[string]bool{},
		seenEnemies:  map[string]bool{},
	}
}

// Play runs the session until the turn budget is spent, the game ends,
// or the player dies. It returns session statistics.
func (p *Player) Play(eng *engine.Engine) Stats {
	turns := 0
	for turns < p.MaxTurns && !eng.State.IsGameOver && eng.State.Player.IsAlive {
		p.observe(eng.State)

		command := p.ChooseAction(eng.State)
		if command == "" {
			break
		}

		out := eng.Step(command)
		p.log = append(p.log, "> "+command, out)
		turns++
	}
	return p.stats(eng.State, turns)
}

// Log returns the commands and responses of the session so far.
func (p *Player) Log() []string {
	return p.log
}

// observe updates the player's knowledge from the current room.
func (p *Player) observe(gs *types.GameState) {
	room, ok := gs.Rooms[gs.Player.CurrentRoom]
	if !ok {
		return
	}
	p.visitedRooms[room.ID] = true
	for _, id := range room.Items {
		if it, ok := gs.Items[id]; ok {
			p.seenItems[it.Name] = true
		}
	}
	for _, id := range room.NPCs {
		if npc, ok := gs.NPCs[id]; ok && npc.IsAlive {
			p.seenNPCs[npc.Name] = true
		}
	}
	for _, id := range room.Enemies {
		if enemy, ok := gs.Enemies[id]; ok && enemy.IsAlive {
			p.seenEnemies[enemy.Name] = true
		}
	}
}

// ChooseAction picks the next command for the current state.
func (p *Player) ChooseAction(gs *types.GameState) string {
	room, ok := gs.Rooms[gs.Player.CurrentRoom]
	if !ok {
		return ""
	}

	switch p.Strategy {
	case Combatant:
		return p.combatantAction(gs, room)
	case Collector:
		return p.collectorAction(gs, room)
	case Quester:
		return p.questerAction(gs, room)
	case Random:
		return p.randomAction(gs, room)
	default:
		return p.explorerAction(gs, room)
	}
}

func (p *Player) explorerAction(gs *types.GameState, room *types.Room) string {
	// Unexplored open exits first.
	var unvisited []string
	for _, dir := range types.AllDirections {
		exit, ok := room.Exits[dir]
		if ok && exit.IsOpen && !p.visitedRooms[exit.Destination] {
			unvisited = append(unvisited, string(dir))
		}
	}
	if len(unvisited) > 0 {
		return p.pick(unvisited)
	}

	// Then items worth carrying.
	items := visibleItemNames(gs, room)
	if len(items) > 0 && len(gs.Player.Inventory) < 20 {
		return "take " + p.pick(items)
	}

	// Then NPCs for information.
	npcs := livingNPCNames(gs, room)
	if len(npcs) > 0 {
		return "talk " + p.pick(npcs)
	}

	// Then any open exit.
	var open []string
	for _, dir := range types.AllDirections {
		if exit, ok := room.Exits[dir]; ok && exit.IsOpen {
			open = append(open, string(dir))
		}
	}
	if len(open) > 0 {
		return p.pick(open)
	}

	return p.pick([]string{"look", "inventory", "status"})
}

func (p *Player) combatantAction(gs *types.GameState, room *types.Room) string {
	enemies := livingEnemyNames(gs, room)
	if len(enemies) > 0 && p.dice.Chance(0.3) {
		return "attack " + p.pick(enemies)
	}

	// Equip gear lying in the inventory.
	for _, id := range gs.Player.Inventory {
		it, ok := gs.Items[id]
		if !ok {
			continue
		}
		if it.Type == types.ItemWeapon && gs.Player.Equipment.Weapon == "" {
			return "equip " + it.Name
		}
		if it.Type == types.ItemArmor && gs.Player.Equipment.Armor == "" {
			return "equip " + it.Name
		}
	}

	// Heal when below half health.
	if gs.Player.Health < gs.Player.MaxHealth/2 {
		var healing []string
		for _, id := range gs.Player.Inventory {
			if it, ok := gs.Items[id]; ok && it.HealingValue > 0 {
				healing = append(healing, it.Name)
			}
		}
		if len(healing) > 0 {
			return "use " + p.pick(healing)
		}
	}

	return p.explorerAction(gs, room)
}

func (p *Player) collectorAction(gs *types.GameState, room *types.Room) string {
	items := visibleItemNames(gs, room)
	if len(items) > 0 && len(gs.Player.Inventory) < 20 {
		return "take " + p.pick(items)
	}

	if len(gs.Player.KnownRecipes) > 0 && p.dice.Chance(0.4) {
		known := make([]string, 0, len(gs.Player.KnownRecipes))
		for id := range gs.Player.KnownRecipes {
			known = append(known, id)
		}
		sort.Strings(known)
		return "craft " + p.pick(known)
	}

	for _, name := range livingNPCNames(gs, room) {
		if strings.Contains(strings.ToLower(name), "merchant") {
			return "shop"
		}
	}

	return p.explorerAction(gs, room)
}

func (p *Player) questerAction(gs *types.GameState, room *types.Room) string {
	if len(livingNPCNames(gs, room)) > 0 && p.dice.Chance(0.6) {
		return "quests"
	}

	if len(gs.Player.ActiveQuests) > 0 && p.dice.Chance(0.3) {
		return "progress"
	}

	items := visibleItemNames(gs, room)
	if len(items) > 0 && len(gs.Player.Inventory) < 20 {
		return "take " + p.pick(items)
	}

	return p.explorerAction(gs, room)
}

func (p *Player) randomAction(gs *types.GameState, room *types.Room) string {
	commands := []string{
		"look", "inventory", "status", "help", "stats", "gold", "level",
		"north", "south", "east", "west", "up", "down",
		"recipes", "quests", "progress", "equipment", "history",
	}

	items := visibleItemNames(gs, room)
	for i, name := range items {
		if i >= 3 {
			break
		}
		commands = append(commands, "take "+name, "examine "+name)
	}
	for _, name := range livingNPCNames(gs, room) {
		commands = append(commands, "talk "+name)
	}
	for _, name := range livingEnemyNames(gs, room) {
		commands = append(commands, "attack "+name)
	}

	return p.pick(commands)
}

// pick selects one entry using the shared dice.
func (p *Player) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[p.dice.Choice(len(options))]
}

func visibleItemNames(gs *types.GameState, room *types.Room) []string {
	var names []string
	for _, id := range room.Items {
		if it, ok := gs.Items[id]; ok && it.IsVisible {
			names = append(names, it.Name)
		}
	}
	return names
}

func livingNPCNames(gs *types.GameState, room *types.Room) []string {
	var names []string
	for _, id := range room.NPCs {
		if npc, ok := gs.NPCs[id]; ok && npc.IsAlive {
			names = append(names, npc.Name)
		}
	}
	return names
}

func livingEnemyNames(gs *types.GameState, room *types.Room) []string {
	var names []string
	for _, id := range room.Enemies {
		if enemy, ok := gs.Enemies[id]; ok && enemy.IsAlive {
			names = append(names, enemy.Name)
		}
	}
	return names
}

func (p *Player) stats(gs *types.GameState, turns int) Stats {
	return Stats{
		Strategy:        p.Strategy,
		Turns:           turns,
		RoomsVisited:    len(p.visitedRooms),
		ItemsSeen:       len(p.seenItems),
		NPCsMet:         len(p.seenNPCs),
		EnemiesMet:      len(p.seenEnemies),
		FinalLevel:      gs.Player.Level,
		FinalHealth:     gs.Player.Health,
		FinalGold:       gs.Player.Gold,
		InventorySize:   len(gs.Player.Inventory),
		QuestsActive:    len(gs.Player.ActiveQuests),
		QuestsCompleted: len(gs.Player.CompletedQuests),
		GameOver:        gs.IsGameOver,
		Victory:         gs.Victory,
		PlayerAlive:     gs.Player.IsAlive,
	}
}

// Summary renders the session statistics as a short report.
func (s Stats) Summary() string {
	status := "IN PROGRESS"
	if s.Victory {
		status = "VICTORY"
	} else if s.GameOver {
		status = "GAME OVER"
	}
	alive := "ALIVE"
	if !s.PlayerAlive {
		alive = "DEAD"
	}
	lines := []string{
		fmt.Sprintf("Strategy: %s", strings.ToUpper(string(s.Strategy))),
		fmt.Sprintf("Turns: %d", s.Turns),
		fmt.Sprintf("Exploration: %d rooms, %d items, %d NPCs, %d enemies",
			s.RoomsVisited, s.ItemsSeen, s.NPCsMet, s.EnemiesMet),
		fmt.Sprintf("Player: level %d, %d HP, %d gold, %d items carried",
			s.FinalLevel, s.FinalHealth, s.FinalGold, s.InventorySize),
		fmt.Sprintf("Quests: %d active, %d completed", s.QuestsActive, s.QuestsCompleted),
		fmt.Sprintf("Status: %s, player %s", status, alive),
	}
	return strings.Join(lines, "\n")
}
