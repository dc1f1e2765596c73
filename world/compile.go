package world

import (
	"fmt"

	"github.com/kmoss/dungeoneer/engine/state"
	"github.com/kmoss/dungeoneer/types"
	lua "github.com/yuin/gopher-lua"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// toStringSlice converts a Lua array to a []string, skipping non-strings.
func toStringSlice(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// toStringMap converts a Lua table to a map[string]string.
func toStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok {
			return
		}
		if vs, ok := v.(lua.LString); ok {
			m[string(ks)] = string(vs)
		}
	})
	return m
}

// toIntMap converts a Lua table to a map[string]int.
func toIntMap(tbl *lua.LTable) map[string]int {
	if tbl == nil {
		return nil
	}
	m := map[string]int{}
	tbl.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok {
			return
		}
		if vn, ok := v.(lua.LNumber); ok {
			m[string(ks)] = int(vn)
		}
	})
	return m
}

// compile converts all collected Lua data into a GameState.
func compile(coll *collector) (*types.GameState, error) {
	if coll.world == nil {
		return nil, fmt.Errorf("no World{} definition found")
	}

	start := getString(coll.world, "start")
	if start == "" {
		return nil, fmt.Errorf("World{} must name a start room")
	}
	playerName := "Adventurer"
	if playerTbl := getTable(coll.world, "player"); playerTbl != nil {
		if n := getString(playerTbl, "name"); n != "" {
			playerName = n
		}
	}

	gs := &types.GameState{
		Player:  state.NewPlayer(playerName, start),
		Rooms:   map[string]*types.Room{},
		Items:   map[string]*types.Item{},
		NPCs:    map[string]*types.NPC{},
		Enemies: map[string]*types.Enemy{},
		Quests:  map[string]*types.Quest{},
		Recipes: map[string]*types.CraftingRecipe{},
		Weather: types.Weather{Current: types.WeatherClear, Temperature: 20, Visibility: 100},
		Time:    types.TimeSystem{TimeOfDay: "morning", Day: 1, Hour: 8},
	}

	for _, raw := range coll.items {
		if _, dup := gs.Items[raw.id]; dup {
			return nil, fmt.Errorf("duplicate item id %q", raw.id)
		}
		gs.Items[raw.id] = compileItem(raw.table)
	}
	for _, raw := range coll.npcs {
		if _, dup := gs.NPCs[raw.id]; dup {
			return nil, fmt.Errorf("duplicate npc id %q", raw.id)
		}
		gs.NPCs[raw.id] = compileNPC(raw.id, raw.table)
	}
	for _, raw := range coll.enemies {
		if _, dup := gs.Enemies[raw.id]; dup {
			return nil, fmt.Errorf("duplicate enemy id %q", raw.id)
		}
		gs.Enemies[raw.id] = compileEnemy(raw.id, raw.table)
	}
	for _, raw := range coll.rooms {
		if _, dup := gs.Rooms[raw.id]; dup {
			return nil, fmt.Errorf("duplicate room id %q", raw.id)
		}
		room, err := compileRoom(raw.id, raw.table)
		if err != nil {
			return nil, err
		}
		gs.Rooms[raw.id] = room
	}
	for _, raw := range coll.quests {
		if _, dup := gs.Quests[raw.id]; dup {
			return nil, fmt.Errorf("duplicate quest id %q", raw.id)
		}
		gs.Quests[raw.id] = compileQuest(raw.id, raw.table)
	}
	for _, raw := range coll.recipes {
		if _, dup := gs.Recipes[raw.id]; dup {
			return nil, fmt.Errorf("duplicate recipe id %q", raw.id)
		}
		gs.Recipes[raw.id] = compileRecipe(raw.id, raw.table)
		gs.RecipeOrder = append(gs.RecipeOrder, raw.id)
	}

	if playerTbl := getTable(coll.world, "player"); playerTbl != nil {
		for _, id := range toStringSlice(getTable(playerTbl, "recipes")) {
			gs.Player.KnownRecipes[id] = true
		}
		if gold := getInt(playerTbl, "gold"); gold > 0 {
			gs.Player.Gold = gold
		}
		for _, id := range toStringSlice(getTable(playerTbl, "inventory")) {
			gs.Player.Inventory = append(gs.Player.Inventory, id)
		}
	}

	return gs, nil
}

func compileItem(tbl *lua.LTable) *types.Item {
	itemType := types.ItemType(getString(tbl, "type"))
	if itemType == "" {
		itemType = types.ItemMisc
	}
	return &types.Item{
		Name:           getString(tbl, "name"),
		Description:    getString(tbl, "description"),
		Type:           itemType,
		Value:          getInt(tbl, "value"),
		Damage:         getInt(tbl, "damage"),
		ArmorValue:     getInt(tbl, "armor"),
		HealingValue:   getInt(tbl, "healing"),
		IsTakeable:     getBool(tbl, "takeable", true),
		IsVisible:      getBool(tbl, "visible", true),
		Keywords:       toStringSlice(getTable(tbl, "keywords")),
		UseDescription: getString(tbl, "use_description"),
	}
}

func compileNPC(id string, tbl *lua.LTable) *types.NPC {
	return &types.NPC{
		ID:            id,
		Name:          getString(tbl, "name"),
		Description:   getString(tbl, "description"),
		CurrentRoom:   getString(tbl, "room"),
		IsAlive:       true,
		IsFriendly:    getBool(tbl, "friendly", true),
		Dialogue:      toStringMap(getTable(tbl, "dialogue")),
		ShopItems:     toStringSlice(getTable(tbl, "shop_items")),
		ShopPrices:    toIntMap(getTable(tbl, "shop_prices")),
		QuestsOffered: toStringSlice(getTable(tbl, "quests")),
	}
}

func compileEnemy(id string, tbl *lua.LTable) *types.Enemy {
	health := getInt(tbl, "health")
	return &types.Enemy{
		ID:               id,
		Name:             getString(tbl, "name"),
		Type:             types.EnemyType(getString(tbl, "type")),
		Description:      getString(tbl, "description"),
		Health:           health,
		MaxHealth:        health,
		Damage:           getInt(tbl, "damage"),
		Armor:            getInt(tbl, "armor"),
		ExperienceReward: getInt(tbl, "xp"),
		GoldReward:       getInt(tbl, "gold"),
		CurrentRoom:      getString(tbl, "room"),
		IsAlive:          true,
		AggressionLevel:  getInt(tbl, "aggression"),
		Inventory:        toStringSlice(getTable(tbl, "inventory")),
		SpecialAbilities: toStringSlice(getTable(tbl, "abilities")),
	}
}

func compileRoom(id string, tbl *lua.LTable) (*types.Room, error) {
	room := &types.Room{
		ID:              id,
		Name:            getString(tbl, "name"),
		Description:     getString(tbl, "description"),
		LongDescription: getString(tbl, "long_description"),
		Exits:           map[types.Direction]types.Exit{},
		Items:           toStringSlice(getTable(tbl, "items")),
		NPCs:            toStringSlice(getTable(tbl, "npcs")),
		Enemies:         toStringSlice(getTable(tbl, "enemies")),
		IsDark:          getBool(tbl, "dark", false),
		IsSafeZone:      getBool(tbl, "safe", false),
		AmbientSound:    getString(tbl, "ambient"),
	}

	exitsTbl := getTable(tbl, "exits")
	if exitsTbl == nil {
		return room, nil
	}
	var exitErr error
	exitsTbl.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok {
			return
		}
		dir, valid := parseDirection(string(ks))
		if !valid {
			exitErr = fmt.Errorf("room %s: unknown exit direction %q", id, string(ks))
			return
		}
		exit, err := compileExit(dir, v)
		if err != nil {
			exitErr = fmt.Errorf("room %s: %w", id, err)
			return
		}
		room.Exits[dir] = exit
	})
	return room, exitErr
}

// compileExit accepts either a bare destination string or a table with
// gate fields: { to = "room", closed = true, locked = true, key = "id",
// level = 3, requires = {"torch"} }.
func compileExit(dir types.Direction, v lua.LValue) (types.Exit, error) {
	switch val := v.(type) {
	case lua.LString:
		return types.Exit{Direction: dir, Destination: string(val), IsOpen: true}, nil
	case *lua.LTable:
		dest := getString(val, "to")
		if dest == "" {
			return types.Exit{}, fmt.Errorf("exit %s has no destination", dir)
		}
		return types.Exit{
			Direction:     dir,
			Destination:   dest,
			IsOpen:        !getBool(val, "closed", false),
			IsLocked:      getBool(val, "locked", false),
			RequiredKey:   getString(val, "key"),
			RequiredLevel: getInt(val, "level"),
			RequiredItems: toStringSlice(getTable(val, "requires")),
		}, nil
	default:
		return types.Exit{}, fmt.Errorf("exit %s must be a string or table", dir)
	}
}

func parseDirection(s string) (types.Direction, bool) {
	for _, d := range types.AllDirections {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

func compileQuest(id string, tbl *lua.LTable) *types.Quest {
	return &types.Quest{
		ID:               id,
		Name:             getString(tbl, "name"),
		Description:      getString(tbl, "description"),
		QuestGiver:       getString(tbl, "giver"),
		Status:           types.QuestNotStarted,
		Requirements:     toIntMap(getTable(tbl, "requires")),
		Rewards:          toIntMap(getTable(tbl, "rewards")),
		ExperienceReward: getInt(tbl, "xp"),
		GoldReward:       getInt(tbl, "gold"),
		IsRepeatable:     getBool(tbl, "repeatable", false),
	}
}

func compileRecipe(id string, tbl *lua.LTable) *types.CraftingRecipe {
	result := getString(tbl, "result")
	if result == "" {
		result = id
	}
	return &types.CraftingRecipe{
		ID:            id,
		Name:          getString(tbl, "name"),
		Description:   getString(tbl, "description"),
		Materials:     toIntMap(getTable(tbl, "materials")),
		ResultItem:    result,
		RequiredLevel: getInt(tbl, "level"),
		RequiredTools: toStringSlice(getTable(tbl, "tools")),
		CraftingTime:  getInt(tbl, "time"),
	}
}
