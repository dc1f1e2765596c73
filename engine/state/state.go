// Package state provides lookup helpers and invariant checks over the
// mutable GameState aggregate. All mutation happens through the engine;
// this package never holds state of its own.
package state

import (
	"fmt"
	"strings"

	"github.com/kmoss/dungeoneer/types"
)

// NewPlayer creates a level-1 player placed in the given start room.
func NewPlayer(name, startRoom string) types.Player {
	return types.Player{
		Name:             name,
		Health:           100,
		MaxHealth:        100,
		Level:            1,
		Experience:       0,
		ExperienceToNext: 100,
		Strength:         10,
		Dexterity:        10,
		Intelligence:     10,
		Constitution:     10,
		CurrentRoom:      startRoom,
		Inventory:        []string{},
		KnownRecipes:     map[string]bool{},
		ActiveQuests:     []string{},
		CompletedQuests:  map[string]bool{},
		StatusEffects:    map[string]int{},
		IsAlive:          true,
	}
}

// ItemMatches reports whether the query is a case-insensitive substring of
// the item's name or any of its keywords. "sword" matches both "sword" and
// "iron sword"; disambiguation is by pool order, not by this predicate.
func ItemMatches(it *types.Item, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(it.Name), q) {
		return true
	}
	for _, kw := range it.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}

// NameContains reports whether fragment is a case-insensitive substring of
// name. Material, tool, and exit-requirement checks all use this predicate
// against item names only (keywords do not count as materials).
func NameContains(name, fragment string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(fragment))
}

// CountMaterial returns how many inventory items have the fragment in
// their name.
func CountMaterial(gs *types.GameState, fragment string) int {
	count := 0
	for _, id := range gs.Player.Inventory {
		if it, ok := gs.Items[id]; ok && NameContains(it.Name, fragment) {
			count++
		}
	}
	return count
}

// ConsumeMaterial removes up to n inventory items whose name contains the
// fragment, in inventory order. Returns the number actually removed.
func ConsumeMaterial(gs *types.GameState, fragment string, n int) int {
	consumed := 0
	kept := gs.Player.Inventory[:0]
	for _, id := range gs.Player.Inventory {
		if consumed < n {
			if it, ok := gs.Items[id]; ok && NameContains(it.Name, fragment) {
				consumed++
				continue
			}
		}
		kept = append(kept, id)
	}
	gs.Player.Inventory = kept
	return consumed
}

// HasInventoryID reports whether the exact item id is in the inventory.
func HasInventoryID(gs *types.GameState, itemID string) bool {
	for _, id := range gs.Player.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// RemoveID removes the first occurrence of id from the slice.
func RemoveID(slice []string, id string) []string {
	for i, v := range slice {
		if v == id {
			return append(slice[:i], slice[i+1:]...)
		}
	}
	return slice
}

// AliveEnemiesInRoom returns the living enemies present in the room,
// in room-list order. That order is the combat tie-break.
func AliveEnemiesInRoom(gs *types.GameState, roomID string) []*types.Enemy {
	room, ok := gs.Rooms[roomID]
	if !ok {
		return nil
	}
	var out []*types.Enemy
	for _, id := range room.Enemies {
		if e, ok := gs.Enemies[id]; ok && e.IsAlive {
			out = append(out, e)
		}
	}
	return out
}

// CurrentRoom returns the player's room. The room must exist; a missing
// room is a programming defect surfaced by Validate.
func CurrentRoom(gs *types.GameState) *types.Room {
	return gs.Rooms[gs.Player.CurrentRoom]
}

// EquipmentSlots lists the seven slot names in display order.
var EquipmentSlots = []string{"weapon", "armor", "helmet", "boots", "gloves", "ring", "amulet"}

// SlotGet returns the item id held in the named slot, or ("", false) for an
// unknown slot name.
func SlotGet(eq *types.Equipment, slot string) (string, bool) {
	switch slot {
	case "weapon":
		return eq.Weapon, true
	case "armor":
		return eq.Armor, true
	case "helmet":
		return eq.Helmet, true
	case "boots":
		return eq.Boots, true
	case "gloves":
		return eq.Gloves, true
	case "ring":
		return eq.Ring, true
	case "amulet":
		return eq.Amulet, true
	}
	return "", false
}

// SlotSet stores an item id in the named slot. Unknown slots are ignored;
// callers validate against EquipmentSlots first.
func SlotSet(eq *types.Equipment, slot, itemID string) {
	switch slot {
	case "weapon":
		eq.Weapon = itemID
	case "armor":
		eq.Armor = itemID
	case "helmet":
		eq.Helmet = itemID
	case "boots":
		eq.Boots = itemID
	case "gloves":
		eq.Gloves = itemID
	case "ring":
		eq.Ring = itemID
	case "amulet":
		eq.Amulet = itemID
	}
}

// EquippedIDs returns the non-empty slot contents in slot order.
func EquippedIDs(eq *types.Equipment) []string {
	var out []string
	for _, slot := range EquipmentSlots {
		if id, _ := SlotGet(eq, slot); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// Validate checks the referential-integrity and disjointness invariants
// that must hold after every command. A non-nil error is a programming
// defect, not a gameplay condition.
func Validate(gs *types.GameState) error {
	if _, ok := gs.Rooms[gs.Player.CurrentRoom]; !ok {
		return fmt.Errorf("player room %q not in room table", gs.Player.CurrentRoom)
	}
	for _, id := range gs.Player.Inventory {
		if _, ok := gs.Items[id]; !ok {
			return fmt.Errorf("inventory item %q not in item catalog", id)
		}
	}
	inInventory := map[string]bool{}
	for _, id := range gs.Player.Inventory {
		inInventory[id] = true
	}
	for _, id := range EquippedIDs(&gs.Player.Equipment) {
		if _, ok := gs.Items[id]; !ok {
			return fmt.Errorf("equipped item %q not in item catalog", id)
		}
		if inInventory[id] {
			return fmt.Errorf("item %q is both equipped and in inventory", id)
		}
	}
	for roomID, room := range gs.Rooms {
		for _, id := range room.Items {
			if _, ok := gs.Items[id]; !ok {
				return fmt.Errorf("room %q item %q not in item catalog", roomID, id)
			}
			if inInventory[id] {
				return fmt.Errorf("item %q is in both room %q and inventory", id, roomID)
			}
		}
		for _, id := range room.NPCs {
			if _, ok := gs.NPCs[id]; !ok {
				return fmt.Errorf("room %q npc %q not in npc table", roomID, id)
			}
		}
		for _, id := range room.Enemies {
			if _, ok := gs.Enemies[id]; !ok {
				return fmt.Errorf("room %q enemy %q not in enemy table", roomID, id)
			}
		}
	}
	if gs.Player.Health < 0 || gs.Player.Health > gs.Player.MaxHealth {
		return fmt.Errorf("player health %d outside [0, %d]", gs.Player.Health, gs.Player.MaxHealth)
	}
	if gs.Player.IsAlive != (gs.Player.Health > 0) {
		return fmt.Errorf("player alive flag %v inconsistent with health %d", gs.Player.IsAlive, gs.Player.Health)
	}
	for id, e := range gs.Enemies {
		if e.Health < 0 || e.Health > e.MaxHealth {
			return fmt.Errorf("enemy %q health %d outside [0, %d]", id, e.Health, e.MaxHealth)
		}
		if e.IsAlive != (e.Health > 0) {
			return fmt.Errorf("enemy %q alive flag %v inconsistent with health %d", id, e.IsAlive, e.Health)
		}
	}
	return nil
}
