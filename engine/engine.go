// Package engine provides the Step() orchestrator that turns one line of
// player input into one atomic mutation of the game state plus a response
// string. Gameplay failures are part of the response, never errors.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kmoss/dungeoneer/engine/resolve"
	"github.com/kmoss/dungeoneer/engine/state"
	"github.com/kmoss/dungeoneer/types"
)

// Engine holds the mutable game state and its subsystems.
type Engine struct {
	State    *types.GameState
	RNG      Dice
	Combat   *CombatSystem
	Crafting *CraftingSystem
	Quests   *QuestSystem
	History  []string
}

// New creates an engine over an already-built world.
func New(gs *types.GameState, dice Dice) *Engine {
	return &Engine{
		State:    gs,
		RNG:      dice,
		Combat:   NewCombatSystem(gs, dice),
		Crafting: NewCraftingSystem(gs),
		Quests:   NewQuestSystem(gs),
	}
}

const victoryBanner = "*** VICTORY! ***\nYou have claimed the treasure chest. Your adventure is complete!"

// Step processes one player command and returns the response. After every
// command the quest completion pass and the victory check run, regardless
// of which verb was dispatched.
func (e *Engine) Step(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	e.History = append(e.History, input)

	if e.State.IsGameOver {
		return "The game is over."
	}

	parts := strings.Fields(strings.ToLower(input))
	verb := parts[0]
	args := parts[1:]

	out := e.dispatch(verb, args)

	e.Quests.CompleteFinished()

	if !e.State.Player.IsAlive {
		e.State.IsGameOver = true
		return out
	}

	if !e.State.Victory && state.HasInventoryID(e.State, "treasure_chest") {
		e.State.Victory = true
		e.State.IsGameOver = true
		if out != "" {
			return out + "\n\n" + victoryBanner
		}
		return victoryBanner
	}

	return out
}

func (e *Engine) dispatch(verb string, args []string) string {
	if dir, ok := resolve.Direction(verb); ok {
		return e.move(dir)
	}

	arg := strings.Join(args, " ")

	switch verb {
	case "help":
		return helpText
	case "look", "l":
		return e.look()
	case "examine":
		if arg == "" {
			return "Examine what?"
		}
		return e.examine(arg)
	case "take":
		if arg == "" {
			return "Take what?"
		}
		return e.take(arg)
	case "drop":
		if arg == "" {
			return "Drop what?"
		}
		return e.drop(arg)
	case "inventory":
		return e.inventory()
	case "use":
		if arg == "" {
			return "Use what?"
		}
		return e.use(arg)
	case "talk":
		if arg == "" {
			return "Talk to whom?"
		}
		return e.talk(arg)
	case "status":
		return e.status()
	case "score":
		return fmt.Sprintf("Your score is %d points.", e.State.Player.Score)
	case "stats":
		return e.stats()
	case "gold":
		return fmt.Sprintf("You have %d gold pieces.", e.State.Player.Gold)
	case "level":
		p := e.State.Player
		return fmt.Sprintf("Level: %d | Experience: %d/%d | Next level in: %d XP",
			p.Level, p.Experience, p.ExperienceToNext, p.ExperienceToNext-p.Experience)

	case "attack":
		return e.Combat.Attack(arg)
	case "flee":
		return e.Combat.Flee()
	case "combat":
		return e.Combat.Status()

	case "equip":
		if arg == "" {
			return "Equip what?"
		}
		return e.equip(arg)
	case "unequip":
		if arg == "" {
			return "Unequip what?"
		}
		return e.unequip(args[0])
	case "equipment":
		return e.equipment()

	case "craft":
		if arg == "" {
			return "Craft what?"
		}
		return e.Crafting.Craft(arg)
	case "recipes":
		return e.Crafting.ListRecipes()
	case "recipe":
		if arg == "" {
			return "Recipe info for what?"
		}
		return e.Crafting.RecipeInfo(arg)
	case "learn":
		if arg == "" {
			return "Learn what recipe?"
		}
		return e.Crafting.Learn(args[0])

	case "quest":
		if arg == "" {
			return "Quest info for what?"
		}
		return e.Quests.QuestDetails(arg)
	case "quests":
		return e.Quests.ListQuests()
	case "accept":
		if arg == "" {
			return "Accept what quest?"
		}
		return e.Quests.Accept(arg)
	case "progress":
		return e.Quests.CheckProgress()

	case "shop":
		return e.shop()
	case "buy":
		if arg == "" {
			return "Buy what?"
		}
		return e.buy(arg)
	case "sell":
		if arg == "" {
			return "Sell what?"
		}
		return e.sell(arg)

	case "history":
		return e.historyList(args)
	}

	return fmt.Sprintf("I don't understand '%s'. Type 'help' for available commands.", verb)
}

// move walks the exit gates in fixed order and reports the first failure:
// exit exists, open, locked/key, level, required items.
func (e *Engine) move(dir types.Direction) string {
	room := state.CurrentRoom(e.State)

	exit, ok := room.Exits[dir]
	if !ok {
		return fmt.Sprintf("You can't go %s from here.", dir)
	}
	if !exit.IsOpen {
		return fmt.Sprintf("The exit to the %s is closed.", dir)
	}
	if exit.IsLocked {
		if exit.RequiredKey != "" {
			if !state.HasInventoryID(e.State, exit.RequiredKey) {
				return fmt.Sprintf("The exit to the %s is locked. You need a key.", dir)
			}
		} else {
			return fmt.Sprintf("The exit to the %s is locked.", dir)
		}
	}
	if e.State.Player.Level < exit.RequiredLevel {
		return fmt.Sprintf("You need to be level %d to go %s.", exit.RequiredLevel, dir)
	}
	for _, required := range exit.RequiredItems {
		if state.CountMaterial(e.State, required) == 0 {
			return fmt.Sprintf("You need %s to go %s.", required, dir)
		}
	}

	e.State.Player.CurrentRoom = exit.Destination
	e.State.Player.Moves++

	newRoom := state.CurrentRoom(e.State)
	lines := []string{fmt.Sprintf("Moving %s...", dir), ""}
	lines = append(lines, e.describeRoom(newRoom, true)...)
	return joinLines(lines)
}

// describeRoom renders a room. With firstVisit handling enabled, the long
// description shows exactly once and the visited flag latches.
func (e *Engine) describeRoom(room *types.Room, firstVisit bool) []string {
	lines := []string{strings.ToUpper(room.Name), strings.Repeat("-", len(room.Name)+4)}

	if firstVisit && !room.IsVisited {
		if room.LongDescription != "" {
			lines = append(lines, room.LongDescription)
		} else {
			lines = append(lines, room.Description)
		}
		room.IsVisited = true
	} else {
		lines = append(lines, room.Description)
	}

	var exits []string
	for _, dir := range types.AllDirections {
		if exit, ok := room.Exits[dir]; ok && exit.IsOpen {
			exits = append(exits, string(dir))
		}
	}
	if len(exits) > 0 {
		lines = append(lines, "", "Exits: "+strings.Join(exits, ", "))
	}

	var items []string
	for _, id := range room.Items {
		if it, ok := e.State.Items[id]; ok && it.IsVisible {
			items = append(items, it.Name)
		}
	}
	if len(items) > 0 {
		lines = append(lines, "You see: "+strings.Join(items, ", "))
	}

	var npcs []string
	for _, id := range room.NPCs {
		if npc, ok := e.State.NPCs[id]; ok && npc.IsAlive {
			npcs = append(npcs, npc.Name)
		}
	}
	if len(npcs) > 0 {
		lines = append(lines, "Present: "+strings.Join(npcs, ", "))
	}

	var enemies []string
	for _, id := range room.Enemies {
		if enemy, ok := e.State.Enemies[id]; ok && enemy.IsAlive {
			enemies = append(enemies, enemy.Name)
		}
	}
	if len(enemies) > 0 {
		lines = append(lines, "Enemies: "+strings.Join(enemies, ", "))
	}

	if room.AmbientSound != "" {
		lines = append(lines, "", room.AmbientSound)
	}

	return lines
}

// Look renders the current room without touching the visited flag.
func (e *Engine) look() string {
	return joinLines(e.describeRoom(state.CurrentRoom(e.State), false))
}

func (e *Engine) examine(target string) string {
	kind, id, err := resolve.Examine(e.State, target)
	if err != nil {
		return fmt.Sprintf("You don't see a '%s' here.", target)
	}
	switch kind {
	case resolve.KindItem:
		it := e.State.Items[id]
		return fmt.Sprintf("%s: %s", it.Name, it.Description)
	case resolve.KindNPC:
		npc := e.State.NPCs[id]
		return fmt.Sprintf("%s: %s", npc.Name, npc.Description)
	default:
		enemy := e.State.Enemies[id]
		return fmt.Sprintf("%s: %s", enemy.Name, enemy.Description)
	}
}

// take moves an item from the room to the inventory and adds its value to
// the score.
func (e *Engine) take(target string) string {
	room := state.CurrentRoom(e.State)

	for _, id := range room.Items {
		it, ok := e.State.Items[id]
		if !ok || !state.ItemMatches(it, target) {
			continue
		}
		if !it.IsTakeable {
			return fmt.Sprintf("You can't take the %s.", it.Name)
		}
		if !it.IsVisible {
			return fmt.Sprintf("You don't see a %s here.", it.Name)
		}
		room.Items = state.RemoveID(room.Items, id)
		e.State.Player.Inventory = append(e.State.Player.Inventory, id)
		e.State.Player.Score += it.Value
		return fmt.Sprintf("You take the %s.", it.Name)
	}

	return fmt.Sprintf("You don't see a '%s' here.", target)
}

func (e *Engine) drop(target string) string {
	id, err := resolve.InventoryItem(e.State, target)
	if err != nil {
		return fmt.Sprintf("You don't have a '%s'.", target)
	}
	it := e.State.Items[id]
	e.State.Player.Inventory = state.RemoveID(e.State.Player.Inventory, id)
	room := state.CurrentRoom(e.State)
	room.Items = append(room.Items, id)
	return fmt.Sprintf("You drop the %s.", it.Name)
}

func (e *Engine) inventory() string {
	if len(e.State.Player.Inventory) == 0 {
		return "You are carrying nothing."
	}
	var names []string
	for _, id := range e.State.Player.Inventory {
		if it, ok := e.State.Items[id]; ok {
			names = append(names, it.Name)
		}
	}
	return "You are carrying: " + strings.Join(names, ", ")
}

// use routes to the combat item handler when living enemies share the
// room; otherwise it just reads the item's use description.
func (e *Engine) use(target string) string {
	room := state.CurrentRoom(e.State)
	if len(state.AliveEnemiesInRoom(e.State, room.ID)) > 0 {
		return e.Combat.UseItem(target)
	}

	id, err := resolve.InventoryItem(e.State, target)
	if err != nil {
		return fmt.Sprintf("You don't have a '%s'.", target)
	}
	it := e.State.Items[id]
	if it.UseDescription != "" {
		return it.UseDescription
	}
	return fmt.Sprintf("You use the %s, but nothing happens.", it.Name)
}

func (e *Engine) talk(target string) string {
	id, err := resolve.NPCInRoom(e.State, target)
	if err != nil {
		return fmt.Sprintf("You don't see '%s' here.", target)
	}
	npc := e.State.NPCs[id]
	if len(npc.Dialogue) == 0 {
		return fmt.Sprintf("%s doesn't respond.", npc.Name)
	}
	greeting, ok := npc.Dialogue["greeting"]
	if !ok {
		return fmt.Sprintf("%s doesn't seem interested in talking.", npc.Name)
	}
	return fmt.Sprintf("%s: %s", npc.Name, greeting)
}

func (e *Engine) status() string {
	p := e.State.Player
	lines := []string{fmt.Sprintf(
		"Health: %d/%d | Level: %d | Experience: %d/%d | Gold: %d | Score: %d | Moves: %d",
		p.Health, p.MaxHealth, p.Level, p.Experience, p.ExperienceToNext, p.Gold, p.Score, p.Moves)}

	if len(p.StatusEffects) > 0 {
		lines = append(lines, "Status Effects:")
		for _, effect := range sortedKeys(p.StatusEffects) {
			lines = append(lines, fmt.Sprintf("  %s: %d turns", effect, p.StatusEffects[effect]))
		}
	}
	return joinLines(lines)
}

func (e *Engine) stats() string {
	p := e.State.Player
	lines := []string{
		fmt.Sprintf("Name: %s", p.Name),
		fmt.Sprintf("Level: %d", p.Level),
		fmt.Sprintf("Experience: %d/%d", p.Experience, p.ExperienceToNext),
		fmt.Sprintf("Health: %d/%d", p.Health, p.MaxHealth),
		fmt.Sprintf("Gold: %d", p.Gold),
		fmt.Sprintf("Score: %d", p.Score),
		fmt.Sprintf("Moves: %d", p.Moves),
		"",
		"Attributes:",
		fmt.Sprintf("  Strength: %d", p.Strength),
		fmt.Sprintf("  Dexterity: %d", p.Dexterity),
		fmt.Sprintf("  Intelligence: %d", p.Intelligence),
		fmt.Sprintf("  Constitution: %d", p.Constitution),
	}
	if len(p.StatusEffects) > 0 {
		lines = append(lines, "", "Status Effects:")
		for _, effect := range sortedKeys(p.StatusEffects) {
			lines = append(lines, fmt.Sprintf("  %s: %d turns", effect, p.StatusEffects[effect]))
		}
	}
	return joinLines(lines)
}

// equip moves an inventory item into its slot. Only weapons and armor
// auto-slot; anything else is refused.
func (e *Engine) equip(target string) string {
	id, err := resolve.InventoryItem(e.State, target)
	if err != nil {
		return fmt.Sprintf("You don't have a %s.", target)
	}
	it := e.State.Items[id]

	var slot string
	switch it.Type {
	case types.ItemWeapon:
		slot = "weapon"
	case types.ItemArmor:
		slot = "armor"
	default:
		return fmt.Sprintf("You can't equip %s.", it.Name)
	}

	if current, _ := state.SlotGet(&e.State.Player.Equipment, slot); current != "" {
		e.State.Player.Inventory = append(e.State.Player.Inventory, current)
	}
	state.SlotSet(&e.State.Player.Equipment, slot, id)
	e.State.Player.Inventory = state.RemoveID(e.State.Player.Inventory, id)
	return fmt.Sprintf("You equip %s.", it.Name)
}

func (e *Engine) unequip(slot string) string {
	current, ok := state.SlotGet(&e.State.Player.Equipment, slot)
	if !ok {
		return fmt.Sprintf("Invalid slot. Valid slots: %s", strings.Join(state.EquipmentSlots, ", "))
	}
	if current == "" {
		return fmt.Sprintf("You don't have anything equipped in %s.", slot)
	}
	it := e.State.Items[current]
	e.State.Player.Inventory = append(e.State.Player.Inventory, current)
	state.SlotSet(&e.State.Player.Equipment, slot, "")
	return fmt.Sprintf("You unequip %s.", it.Name)
}

func (e *Engine) equipment() string {
	lines := []string{"Equipped Items:"}
	for _, slot := range state.EquipmentSlots {
		id, _ := state.SlotGet(&e.State.Player.Equipment, slot)
		label := strings.ToUpper(slot[:1]) + slot[1:]
		if id == "" {
			lines = append(lines, fmt.Sprintf("%s: Nothing", label))
			continue
		}
		if it, ok := e.State.Items[id]; ok {
			lines = append(lines, fmt.Sprintf("%s: %s", label, it.Name))
		}
	}
	return joinLines(lines)
}

// merchantInRoom finds the first NPC in the room with "merchant" in the
// name. Trading always goes through a merchant.
func (e *Engine) merchantInRoom() *types.NPC {
	room := state.CurrentRoom(e.State)
	for _, id := range room.NPCs {
		if npc, ok := e.State.NPCs[id]; ok && state.NameContains(npc.Name, "merchant") {
			return npc
		}
	}
	return nil
}

func (e *Engine) shop() string {
	merchant := e.merchantInRoom()
	if merchant == nil {
		return "There's no merchant here."
	}
	if len(merchant.ShopItems) == 0 {
		return fmt.Sprintf("%s has nothing for sale.", merchant.Name)
	}

	lines := []string{fmt.Sprintf("%s's Shop:", merchant.Name)}
	for _, id := range merchant.ShopItems {
		it, ok := e.State.Items[id]
		if !ok {
			continue
		}
		price := it.Value
		if p, ok := merchant.ShopPrices[id]; ok {
			price = p
		}
		lines = append(lines, fmt.Sprintf("  %s: %d gold", it.Name, price))
	}
	return joinLines(lines)
}

func (e *Engine) buy(target string) string {
	merchant := e.merchantInRoom()
	if merchant == nil {
		return "There's no merchant here."
	}

	id, err := resolve.ItemIn(e.State, merchant.ShopItems, target)
	if err != nil {
		return fmt.Sprintf("%s doesn't sell %s.", merchant.Name, target)
	}
	it := e.State.Items[id]
	price := it.Value
	if p, ok := merchant.ShopPrices[id]; ok {
		price = p
	}
	if e.State.Player.Gold < price {
		return fmt.Sprintf("You don't have enough gold. %s costs %d gold.", it.Name, price)
	}

	e.State.Player.Gold -= price
	e.State.Player.Inventory = append(e.State.Player.Inventory, id)
	return fmt.Sprintf("You buy %s for %d gold.", it.Name, price)
}

// sell trades an inventory item at half its value.
func (e *Engine) sell(target string) string {
	merchant := e.merchantInRoom()
	if merchant == nil {
		return "There's no merchant here."
	}

	id, err := resolve.InventoryItem(e.State, target)
	if err != nil {
		return fmt.Sprintf("You don't have %s.", target)
	}
	it := e.State.Items[id]
	price := it.Value / 2

	e.State.Player.Gold += price
	e.State.Player.Inventory = state.RemoveID(e.State.Player.Inventory, id)
	return fmt.Sprintf("You sell %s for %d gold.", it.Name, price)
}

func (e *Engine) historyList(args []string) string {
	if len(e.History) == 0 {
		return "No command history yet."
	}

	count := 10
	if len(args) > 0 {
		if n, err := parsePositive(args[0]); err == nil {
			count = n
		}
	}
	if count > len(e.History) {
		count = len(e.History)
	}

	lines := []string{fmt.Sprintf("Last %d commands:", count)}
	recent := e.History[len(e.History)-count:]
	for i, cmd := range recent {
		lines = append(lines, fmt.Sprintf("%2d. %s", i+1, cmd))
	}
	return joinLines(lines)
}

func parsePositive(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not a number: %q", s)
		}
		n = n*10 + int(r-'0')
	}
	if n == 0 {
		return 0, fmt.Errorf("not positive: %q", s)
	}
	return n, nil
}

const helpText = `GAME COMMANDS

Movement: north, south, east, west, up, down, northeast, northwest, southeast, southwest
Actions: look, examine <item>, take <item>, drop <item>, use <item>
Information: inventory, status, score, help, stats, gold, level

Combat: attack <enemy>, flee, combat
Equipment: equip <item>, unequip <slot>, equipment
Crafting: craft <recipe>, recipes, recipe <name>, learn <recipe>
Quests: quest <name>, quests, accept <quest>, progress
Trading: shop, buy <item>, sell <item>

System: save, load, history, quit`

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// sortedKeys returns map keys in sorted order for stable output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
