package world

import (
	"strings"
	"testing"

	"github.com/kmoss/dungeoneer/types"
	lua "github.com/yuin/gopher-lua"
)

func TestLoad_MinimalWorld(t *testing.T) {
	gs, err := Load("testdata/minimal")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if gs.Player.CurrentRoom != "hall" {
		t.Errorf("start room = %q, want hall", gs.Player.CurrentRoom)
	}
	room, ok := gs.Rooms["hall"]
	if !ok {
		t.Fatal("room 'hall' not found")
	}
	if room.Description != "A grand hall." {
		t.Errorf("hall description = %q", room.Description)
	}
	if room.Exits == nil {
		t.Error("exits map should be initialized")
	}
}

func TestLoad_FullWorld(t *testing.T) {
	gs, err := Load("testdata/full")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Player block.
	if gs.Player.Name != "Tester" {
		t.Errorf("player name = %q", gs.Player.Name)
	}
	if gs.Player.Gold != 75 {
		t.Errorf("player gold = %d, want 75", gs.Player.Gold)
	}
	if !gs.Player.KnownRecipes["torch"] {
		t.Error("player should know the torch recipe")
	}
	if len(gs.Player.Inventory) != 1 || gs.Player.Inventory[0] != "tonic" {
		t.Errorf("player inventory = %v", gs.Player.Inventory)
	}

	// Rooms and exit gates.
	if len(gs.Rooms) != 5 {
		t.Errorf("expected 5 rooms, got %d", len(gs.Rooms))
	}
	entrance := gs.Rooms["entrance"]
	if entrance.LongDescription != "A long first look at the way in." {
		t.Errorf("long description = %q", entrance.LongDescription)
	}
	if !entrance.IsSafeZone {
		t.Error("entrance should be a safe zone")
	}

	north := entrance.Exits[types.North]
	if north.Destination != "vault_door" || !north.IsOpen || north.IsLocked {
		t.Errorf("plain string exit compiled wrong: %+v", north)
	}
	east := entrance.Exits[types.East]
	if !east.IsLocked || east.RequiredKey != "brass_key" || !east.IsOpen {
		t.Errorf("locked exit compiled wrong: %+v", east)
	}
	down := entrance.Exits[types.Down]
	if down.IsOpen {
		t.Errorf("closed exit compiled wrong: %+v", down)
	}
	up := entrance.Exits[types.Up]
	if up.RequiredLevel != 5 || len(up.RequiredItems) != 1 || up.RequiredItems[0] != "lamp" {
		t.Errorf("gated exit compiled wrong: %+v", up)
	}

	vault := gs.Rooms["vault_door"]
	if !vault.IsDark || vault.AmbientSound != "Something scurries in the dark." {
		t.Errorf("room flags compiled wrong: %+v", vault)
	}

	// Items: defaults and overrides.
	lamp := gs.Items["lamp"]
	if lamp == nil || !lamp.IsTakeable || !lamp.IsVisible {
		t.Errorf("lamp should default takeable and visible: %+v", lamp)
	}
	if lamp.Type != types.ItemTool || lamp.Value != 12 {
		t.Errorf("lamp fields wrong: %+v", lamp)
	}
	if len(lamp.Keywords) != 2 {
		t.Errorf("lamp keywords = %v", lamp.Keywords)
	}
	bones := gs.Items["bones"]
	if bones.IsTakeable || bones.IsVisible {
		t.Errorf("bones overrides lost: %+v", bones)
	}
	if bones.Type != types.ItemMisc {
		t.Errorf("untyped item should default to misc, got %s", bones.Type)
	}
	tonic := gs.Items["tonic"]
	if tonic.HealingValue != 15 || tonic.UseDescription == "" {
		t.Errorf("tonic fields wrong: %+v", tonic)
	}

	// NPC with shop and quest.
	keeper := gs.NPCs["keeper"]
	if keeper == nil {
		t.Fatal("keeper not found")
	}
	if keeper.CurrentRoom != "entrance" || !keeper.IsAlive {
		t.Errorf("keeper placement wrong: %+v", keeper)
	}
	if keeper.Dialogue["greeting"] != "Welcome to the vault." {
		t.Errorf("keeper dialogue = %v", keeper.Dialogue)
	}
	if keeper.ShopPrices["tonic"] != 25 {
		t.Errorf("keeper shop prices = %v", keeper.ShopPrices)
	}

	// Enemy.
	rat := gs.Enemies["rat"]
	if rat == nil {
		t.Fatal("rat not found")
	}
	if rat.Health != 12 || rat.MaxHealth != 12 {
		t.Errorf("enemy health should seed max health: %+v", rat)
	}
	if rat.Type != types.EnemyWolf || !rat.IsAlive {
		t.Errorf("enemy fields wrong: %+v", rat)
	}
	if len(rat.SpecialAbilities) != 1 || rat.SpecialAbilities[0] != "poison" {
		t.Errorf("enemy abilities = %v", rat.SpecialAbilities)
	}

	// Quest.
	quest := gs.Quests["rat_problem"]
	if quest == nil {
		t.Fatal("rat_problem not found")
	}
	if quest.Requirements["wolf_defeated"] != 1 || !quest.IsRepeatable {
		t.Errorf("quest fields wrong: %+v", quest)
	}
	if quest.Status != types.QuestNotStarted {
		t.Errorf("quest status = %s", quest.Status)
	}

	// Recipes keep definition order within a file.
	if len(gs.RecipeOrder) != 2 {
		t.Fatalf("recipe order = %v", gs.RecipeOrder)
	}
	if gs.RecipeOrder[0] != "torch" || gs.RecipeOrder[1] != "lamp_oil" {
		t.Errorf("recipe order = %v", gs.RecipeOrder)
	}
	if gs.Recipes["lamp_oil"].ResultItem != "lamp" {
		t.Errorf("explicit result item lost: %+v", gs.Recipes["lamp_oil"])
	}
	if gs.Recipes["torch"].ResultItem != "torch" {
		t.Errorf("result item should default to the recipe id")
	}
}

func TestLoad_InvalidRefs_Fails(t *testing.T) {
	_, err := Load("testdata/invalid_refs")
	if err == nil {
		t.Fatal("expected error for invalid references")
	}
	if !strings.Contains(err.Error(), "undefined room") {
		t.Errorf("error = %q, expected 'undefined room'", err.Error())
	}
}

func TestLoad_BadLuaSyntax_Fails(t *testing.T) {
	if _, err := Load("testdata/bad_lua"); err == nil {
		t.Fatal("expected error for bad Lua syntax")
	}
}

func TestLoad_NoWorldDef_Fails(t *testing.T) {
	_, err := Load("testdata/no_world")
	if err == nil {
		t.Fatal("expected error for missing World{} definition")
	}
	if !strings.Contains(err.Error(), "no World{} definition") {
		t.Errorf("error = %q, expected 'no World{} definition'", err.Error())
	}
}

func TestLoad_MissingDir_Fails(t *testing.T) {
	if _, err := Load("testdata/does_not_exist"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestSandboxEnforced(t *testing.T) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	if err := L.DoString(`os.execute("echo pwned")`); err == nil {
		t.Fatal("expected sandbox to block os.execute")
	}
	if err := L.DoString(`return loadstring("return 1")`); err == nil {
		t.Fatal("expected sandbox to remove loadstring")
	}
}

func TestFileOrdering(t *testing.T) {
	files := sortedLuaFiles([]string{"rooms.lua", "world.lua", "items.lua", "actors.lua"})
	if files[0] != "world.lua" {
		t.Errorf("first file = %q, want world.lua", files[0])
	}
	if files[1] != "actors.lua" {
		t.Errorf("second file = %q, want actors.lua", files[1])
	}
}
