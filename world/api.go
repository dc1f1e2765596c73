package world

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the Lua world constructors as globals. All
// constructors except World are curried: Room("id") returns a function
// that takes the definition table, so scripts read as
//
//	Room "entrance" { name = "Dungeon Entrance", ... }
func registerAPI(L *lua.LState, coll *collector) {
	// World { title = "...", start = "...", player = {...} }
	L.SetGlobal("World", L.NewFunction(func(L *lua.LState) int {
		coll.world = L.CheckTable(1)
		return 0
	}))

	curried := func(sink *[]rawDef) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			id := L.CheckString(1)
			L.Push(L.NewFunction(func(L *lua.LState) int {
				tbl := L.CheckTable(1)
				*sink = append(*sink, rawDef{id: id, table: tbl})
				return 0
			}))
			return 1
		})
	}

	L.SetGlobal("Room", curried(&coll.rooms))
	L.SetGlobal("Item", curried(&coll.items))
	L.SetGlobal("NPC", curried(&coll.npcs))
	L.SetGlobal("Enemy", curried(&coll.enemies))
	L.SetGlobal("Quest", curried(&coll.quests))
	L.SetGlobal("Recipe", curried(&coll.recipes))
}
