package engine

import (
	"strings"
	"testing"

	"github.com/kmoss/dungeoneer/engine/state"
	"github.com/kmoss/dungeoneer/types"
)

func craftingState() *types.GameState {
	gs := &types.GameState{
		Player: state.NewPlayer("Adventurer", "workshop"),
		Rooms: map[string]*types.Room{
			"workshop": {ID: "workshop", Name: "Workshop"},
		},
		Items: map[string]*types.Item{
			"herb":     {Name: "herb", Type: types.ItemMaterial, Value: 2, IsTakeable: true, IsVisible: true},
			"water":    {Name: "water", Type: types.ItemMaterial, Value: 1, IsTakeable: true, IsVisible: true},
			"iron_ore": {Name: "iron ore", Type: types.ItemMaterial, Value: 5, IsTakeable: true, IsVisible: true},
			"wood":     {Name: "wood", Type: types.ItemMaterial, Value: 1, IsTakeable: true, IsVisible: true},
			"hammer":   {Name: "hammer", Type: types.ItemTool, Value: 8, IsTakeable: true, IsVisible: true},
		},
		NPCs:    map[string]*types.NPC{},
		Enemies: map[string]*types.Enemy{},
		Quests:  map[string]*types.Quest{},
		Recipes: map[string]*types.CraftingRecipe{
			"health_potion": {
				ID: "health_potion", Name: "Health Potion",
				Description:   "A potion that restores health",
				Materials:     map[string]int{"herb": 2, "water": 1},
				ResultItem:    "health_potion",
				RequiredLevel: 1,
				CraftingTime:  2,
			},
			"iron_sword": {
				ID: "iron_sword", Name: "Iron Sword",
				Description:   "A sturdy iron sword",
				Materials:     map[string]int{"iron ore": 3, "wood": 1},
				ResultItem:    "iron_sword",
				RequiredLevel: 3,
				RequiredTools: []string{"hammer"},
				CraftingTime:  10,
			},
		},
		RecipeOrder: []string{"health_potion", "iron_sword"},
	}
	return gs
}

func TestCraft_Success(t *testing.T) {
	gs := craftingState()
	gs.Player.KnownRecipes["health_potion"] = true
	gs.Player.Inventory = []string{"herb", "herb", "water"}

	c := NewCraftingSystem(gs)
	out := c.Craft("health potion")

	if out != "You successfully craft Health Potion!" {
		t.Fatalf("unexpected output: %q", out)
	}
	if !state.HasInventoryID(gs, "health_potion") {
		t.Error("crafted item should be in inventory")
	}
	if state.CountMaterial(gs, "herb") != 0 || state.CountMaterial(gs, "water") != 0 {
		t.Error("materials should be consumed")
	}

	// The memoized result item carries potion properties.
	it := gs.Items["health_potion"]
	if it == nil {
		t.Fatal("result item missing from catalog")
	}
	if it.Type != types.ItemPotion || it.HealingValue != 25 {
		t.Errorf("expected potion with healing 25, got %s/%d", it.Type, it.HealingValue)
	}
}

func TestCraft_FailureReasons(t *testing.T) {
	tests := []struct {
		name  string
		setup func(gs *types.GameState)
		query string
		want  string
	}{
		{
			"unknown recipe name", func(gs *types.GameState) {}, "elixir",
			"Recipe 'elixir' not found.",
		},
		{
			"not learned", func(gs *types.GameState) {
				gs.Player.Inventory = []string{"herb", "herb", "water"}
			}, "health potion",
			"You don't know how to craft Health Potion.",
		},
		{
			"level gate", func(gs *types.GameState) {
				gs.Player.KnownRecipes["iron_sword"] = true
				gs.Player.Inventory = []string{"iron_ore", "iron_ore", "iron_ore", "wood", "hammer"}
			}, "iron sword",
			"You need level 3 to craft Iron Sword.",
		},
		{
			"missing materials", func(gs *types.GameState) {
				gs.Player.KnownRecipes["health_potion"] = true
				gs.Player.Inventory = []string{"herb"}
			}, "health potion",
			"You don't have the required materials to craft Health Potion.",
		},
		{
			"missing tool", func(gs *types.GameState) {
				gs.Player.Level = 3
				gs.Player.KnownRecipes["iron_sword"] = true
				gs.Player.Inventory = []string{"iron_ore", "iron_ore", "iron_ore", "wood"}
			}, "iron sword",
			"You don't have the required materials to craft Iron Sword.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := craftingState()
			tt.setup(gs)
			c := NewCraftingSystem(gs)
			if got := c.Craft(tt.query); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if len(gs.Player.Inventory) > 0 && state.HasInventoryID(gs, "health_potion") {
				t.Error("failed craft must not produce items")
			}
		})
	}
}

func TestCraft_ToolsNotConsumed(t *testing.T) {
	gs := craftingState()
	gs.Player.Level = 3
	gs.Player.KnownRecipes["iron_sword"] = true
	gs.Player.Inventory = []string{"iron_ore", "iron_ore", "iron_ore", "wood", "hammer"}

	c := NewCraftingSystem(gs)
	out := c.Craft("iron sword")

	if out != "You successfully craft Iron Sword!" {
		t.Fatalf("unexpected output: %q", out)
	}
	if !state.HasInventoryID(gs, "hammer") {
		t.Error("tools must never be consumed")
	}
	if state.CountMaterial(gs, "iron ore") != 0 || state.CountMaterial(gs, "wood") != 0 {
		t.Error("materials should be consumed")
	}
}

func TestCraft_ResultItemMemoized(t *testing.T) {
	gs := craftingState()
	gs.Player.KnownRecipes["health_potion"] = true
	gs.Player.Inventory = []string{"herb", "herb", "water"}

	c := NewCraftingSystem(gs)
	c.Craft("health potion")
	first := gs.Items["health_potion"]

	gs.Player.Inventory = append(gs.Player.Inventory, "herb", "herb", "water")
	c.Craft("health potion")

	if gs.Items["health_potion"] != first {
		t.Error("second craft must reuse the memoized catalog entry")
	}
	count := 0
	for _, id := range gs.Player.Inventory {
		if id == "health_potion" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected two potions in inventory, got %d", count)
	}
}

func TestLearn_Idempotent(t *testing.T) {
	gs := craftingState()
	c := NewCraftingSystem(gs)

	if got := c.Learn("health_potion"); got != "You learn how to craft Health Potion!" {
		t.Errorf("unexpected output: %q", got)
	}
	if got := c.Learn("health_potion"); got != "You already know the Health Potion recipe." {
		t.Errorf("unexpected output: %q", got)
	}
	if got := c.Learn("fireball"); got != "Recipe 'fireball' not found." {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestRecipeInfo(t *testing.T) {
	gs := craftingState()
	gs.Player.KnownRecipes["health_potion"] = true
	gs.Player.Inventory = []string{"herb"}

	c := NewCraftingSystem(gs)
	out := c.RecipeInfo("health potion")

	if !strings.Contains(out, "Recipe: Health Potion") {
		t.Errorf("missing header in %q", out)
	}
	if !strings.Contains(out, "herb: 1/2") {
		t.Errorf("missing material progress in %q", out)
	}
	if !strings.Contains(out, "Can Craft: No") {
		t.Errorf("missing craftable verdict in %q", out)
	}
	if !strings.Contains(out, "Reason: Missing required materials or tools.") {
		t.Errorf("missing reason in %q", out)
	}
}

func TestListRecipes(t *testing.T) {
	gs := craftingState()
	c := NewCraftingSystem(gs)

	if got := c.ListRecipes(); got != "You don't know any crafting recipes." {
		t.Errorf("unexpected output: %q", got)
	}

	gs.Player.KnownRecipes["health_potion"] = true
	gs.Player.KnownRecipes["iron_sword"] = true
	gs.Player.Inventory = []string{"herb", "herb", "water"}

	out := c.ListRecipes()
	if !strings.Contains(out, "[+] Health Potion (Level 1)") {
		t.Errorf("missing craftable recipe in %q", out)
	}
	if !strings.Contains(out, "[x] Iron Sword (Level 3)") {
		t.Errorf("missing uncraftable recipe in %q", out)
	}
}
