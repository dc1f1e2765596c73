package world

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kmoss/dungeoneer/types"
	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during file execution. Definition
// order is preserved for recipes so listings stay stable.
type collector struct {
	world   *lua.LTable
	rooms   []rawDef
	items   []rawDef
	npcs    []rawDef
	enemies []rawDef
	quests  []rawDef
	recipes []rawDef
}

type rawDef struct {
	id    string
	table *lua.LTable
}

// Load reads all .lua files from dir, compiles them into a game state,
// and validates every cross-reference. The Lua VM is discarded after
// loading.
func Load(dir string) (*types.GameState, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading world directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		path := filepath.Join(dir, f)
		if err := L.DoFile(path); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	gs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling world data: %w", err)
	}
	if err := validateWorld(gs); err != nil {
		return nil, err
	}
	return gs, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Remove math.randomseed to preserve determinism.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}

// sortedLuaFiles returns .lua files with world.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var worldFile string
	var others []string
	for _, f := range files {
		if f == "world.lua" {
			worldFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if worldFile != "" {
		return append([]string{worldFile}, others...)
	}
	return others
}

// validateWorld checks every cross-reference in the compiled state.
func validateWorld(gs *types.GameState) error {
	if _, ok := gs.Rooms[gs.Player.CurrentRoom]; !ok {
		return fmt.Errorf("start room %q is not defined", gs.Player.CurrentRoom)
	}

	for id, room := range gs.Rooms {
		for dir, exit := range room.Exits {
			if _, ok := gs.Rooms[exit.Destination]; !ok {
				return fmt.Errorf("room %s: exit %s leads to undefined room %q", id, dir, exit.Destination)
			}
		}
		for _, itemID := range room.Items {
			if _, ok := gs.Items[itemID]; !ok {
				return fmt.Errorf("room %s: undefined item %q", id, itemID)
			}
		}
		for _, npcID := range room.NPCs {
			if _, ok := gs.NPCs[npcID]; !ok {
				return fmt.Errorf("room %s: undefined npc %q", id, npcID)
			}
		}
		for _, enemyID := range room.Enemies {
			if _, ok := gs.Enemies[enemyID]; !ok {
				return fmt.Errorf("room %s: undefined enemy %q", id, enemyID)
			}
		}
	}

	for id, npc := range gs.NPCs {
		if _, ok := gs.Rooms[npc.CurrentRoom]; !ok {
			return fmt.Errorf("npc %s: undefined room %q", id, npc.CurrentRoom)
		}
		for _, itemID := range npc.ShopItems {
			if _, ok := gs.Items[itemID]; !ok {
				return fmt.Errorf("npc %s: undefined shop item %q", id, itemID)
			}
		}
		for _, questID := range npc.QuestsOffered {
			if _, ok := gs.Quests[questID]; !ok {
				return fmt.Errorf("npc %s: undefined quest %q", id, questID)
			}
		}
	}

	for id, enemy := range gs.Enemies {
		if _, ok := gs.Rooms[enemy.CurrentRoom]; !ok {
			return fmt.Errorf("enemy %s: undefined room %q", id, enemy.CurrentRoom)
		}
		for _, itemID := range enemy.Inventory {
			if _, ok := gs.Items[itemID]; !ok {
				return fmt.Errorf("enemy %s: undefined inventory item %q", id, itemID)
			}
		}
	}

	for id, quest := range gs.Quests {
		if quest.QuestGiver != "" {
			if _, ok := gs.NPCs[quest.QuestGiver]; !ok {
				return fmt.Errorf("quest %s: undefined giver %q", id, quest.QuestGiver)
			}
		}
		for itemID := range quest.Rewards {
			if _, ok := gs.Items[itemID]; !ok {
				return fmt.Errorf("quest %s: undefined reward item %q", id, itemID)
			}
		}
	}

	for recipeID := range gs.Player.KnownRecipes {
		if _, ok := gs.Recipes[recipeID]; !ok {
			return fmt.Errorf("player knows undefined recipe %q", recipeID)
		}
	}
	return nil
}
