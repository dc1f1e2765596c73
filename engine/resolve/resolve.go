// Package resolve maps player-typed names to entity IDs.
//
// Matching is a case-insensitive substring test against an entity's name or
// any of its keywords. Each verb searches a fixed pool in a fixed order and
// the first match wins; "sword" happily resolves to "iron sword" when that
// is the first candidate. There is no ambiguity reporting.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kmoss/dungeoneer/engine/state"
	"github.com/kmoss/dungeoneer/types"
)

// NotFoundError indicates no entity in the searched pools matched the name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("you don't see %q here", e.Name)
}

// Kind tags which catalog an examined entity came from.
type Kind string

const (
	KindItem  Kind = "item"
	KindNPC   Kind = "npc"
	KindEnemy Kind = "enemy"
)

// ItemIn returns the first item in the id list matching the query.
func ItemIn(gs *types.GameState, ids []string, query string) (string, error) {
	for _, id := range ids {
		if it, ok := gs.Items[id]; ok && state.ItemMatches(it, query) {
			return id, nil
		}
	}
	return "", &NotFoundError{Name: query}
}

// InventoryItem resolves against the player's inventory, in carry order.
func InventoryItem(gs *types.GameState, query string) (string, error) {
	return ItemIn(gs, gs.Player.Inventory, query)
}

// RoomItem resolves against the items in the player's current room.
func RoomItem(gs *types.GameState, query string) (string, error) {
	room := state.CurrentRoom(gs)
	if room == nil {
		return "", &NotFoundError{Name: query}
	}
	return ItemIn(gs, room.Items, query)
}

// NPCInRoom resolves against the NPCs present in the player's current room.
// NPC matching is by name substring only; NPCs carry no keywords.
func NPCInRoom(gs *types.GameState, query string) (string, error) {
	room := state.CurrentRoom(gs)
	if room == nil {
		return "", &NotFoundError{Name: query}
	}
	for _, id := range room.NPCs {
		if npc, ok := gs.NPCs[id]; ok && state.NameContains(npc.Name, query) {
			return id, nil
		}
	}
	return "", &NotFoundError{Name: query}
}

// EnemyInRoom resolves against the living enemies in the player's current
// room, in room-list order.
func EnemyInRoom(gs *types.GameState, query string) (string, error) {
	room := state.CurrentRoom(gs)
	if room == nil {
		return "", &NotFoundError{Name: query}
	}
	for _, id := range room.Enemies {
		e, ok := gs.Enemies[id]
		if !ok || !e.IsAlive {
			continue
		}
		if state.NameContains(e.Name, query) {
			return id, nil
		}
	}
	return "", &NotFoundError{Name: query}
}

// Examine resolves a target for inspection. The pool priority is fixed:
// inventory items, then room items, then NPCs, then living enemies.
func Examine(gs *types.GameState, query string) (Kind, string, error) {
	if id, err := InventoryItem(gs, query); err == nil {
		return KindItem, id, nil
	}
	if id, err := RoomItem(gs, query); err == nil {
		return KindItem, id, nil
	}
	if id, err := NPCInRoom(gs, query); err == nil {
		return KindNPC, id, nil
	}
	if id, err := EnemyInRoom(gs, query); err == nil {
		return KindEnemy, id, nil
	}
	return "", "", &NotFoundError{Name: query}
}

// Recipe resolves a recipe by name substring in canonical definition order.
func Recipe(gs *types.GameState, query string) (string, error) {
	q := strings.ToLower(query)
	for _, id := range gs.RecipeOrder {
		r, ok := gs.Recipes[id]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(id), q) {
			return id, nil
		}
	}
	return "", &NotFoundError{Name: query}
}

// Quest resolves a quest by name or id substring. Active quests take
// priority; the remaining table is scanned in sorted id order so the result
// is stable.
func Quest(gs *types.GameState, query string) (string, error) {
	q := strings.ToLower(query)
	for _, id := range gs.Player.ActiveQuests {
		if qu, ok := gs.Quests[id]; ok {
			if strings.Contains(strings.ToLower(qu.Name), q) || strings.Contains(strings.ToLower(id), q) {
				return id, nil
			}
		}
	}
	ids := make([]string, 0, len(gs.Quests))
	for id := range gs.Quests {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		qu := gs.Quests[id]
		if strings.Contains(strings.ToLower(qu.Name), q) || strings.Contains(strings.ToLower(id), q) {
			return id, nil
		}
	}
	return "", &NotFoundError{Name: query}
}

// Direction parses a movement direction word.
func Direction(word string) (types.Direction, bool) {
	d := types.Direction(strings.ToLower(word))
	for _, valid := range types.AllDirections {
		if d == valid {
			return d, true
		}
	}
	return "", false
}
