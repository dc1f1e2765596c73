package engine

import (
	"fmt"
	"strings"

	"github.com/kmoss/dungeoneer/engine/resolve"
	"github.com/kmoss/dungeoneer/engine/state"
	"github.com/kmoss/dungeoneer/types"
)

// CraftingSystem turns materials into catalog items. Recipes gate on
// knowledge, level, tool presence, and material counts; tools are checked
// but never consumed.
type CraftingSystem struct {
	state *types.GameState
}

// NewCraftingSystem creates a crafting system over the shared game state.
func NewCraftingSystem(gs *types.GameState) *CraftingSystem {
	return &CraftingSystem{state: gs}
}

// canCraft checks every gate for a recipe. Failure reasons are reported by
// Craft, which re-checks the gates in priority order.
func (c *CraftingSystem) canCraft(recipe *types.CraftingRecipe) bool {
	if c.state.Player.Level < recipe.RequiredLevel {
		return false
	}
	if !c.state.Player.KnownRecipes[recipe.ID] {
		return false
	}
	for _, tool := range recipe.RequiredTools {
		if state.CountMaterial(c.state, tool) == 0 {
			return false
		}
	}
	for material, quantity := range recipe.Materials {
		if state.CountMaterial(c.state, material) < quantity {
			return false
		}
	}
	return true
}

// Craft resolves the recipe by name substring and produces its result item.
func (c *CraftingSystem) Craft(recipeName string) string {
	id, err := resolve.Recipe(c.state, recipeName)
	if err != nil {
		return fmt.Sprintf("Recipe '%s' not found.", recipeName)
	}
	recipe := c.state.Recipes[id]

	if !c.canCraft(recipe) {
		if !c.state.Player.KnownRecipes[recipe.ID] {
			return fmt.Sprintf("You don't know how to craft %s.", recipe.Name)
		}
		if c.state.Player.Level < recipe.RequiredLevel {
			return fmt.Sprintf("You need level %d to craft %s.", recipe.RequiredLevel, recipe.Name)
		}
		return fmt.Sprintf("You don't have the required materials to craft %s.", recipe.Name)
	}

	for material, quantity := range recipe.Materials {
		state.ConsumeMaterial(c.state, material, quantity)
	}

	c.ensureResultItem(recipe)
	c.state.Player.Inventory = append(c.state.Player.Inventory, recipe.ResultItem)
	return fmt.Sprintf("You successfully craft %s!", recipe.Name)
}

// ensureResultItem memoizes the recipe's result in the item catalog. Once
// created, the catalog entry is reused by every later craft.
func (c *CraftingSystem) ensureResultItem(recipe *types.CraftingRecipe) {
	if _, ok := c.state.Items[recipe.ResultItem]; ok {
		return
	}

	item := &types.Item{
		Name:        recipe.Name,
		Description: recipe.Description,
		Type:        itemTypeForRecipe(recipe),
		Value:       craftedItemValue(recipe),
		IsTakeable:  true,
		IsVisible:   true,
		Keywords:    []string{strings.ReplaceAll(strings.ToLower(recipe.Name), " ", "_")},
	}

	name := strings.ToLower(recipe.Name)
	switch {
	case strings.Contains(name, "potion"):
		item.Type = types.ItemPotion
		item.HealingValue = 25
	case strings.Contains(name, "sword"):
		item.Type = types.ItemWeapon
		item.Damage = 15
	case strings.Contains(name, "armor"):
		item.Type = types.ItemArmor
		item.ArmorValue = 10
	case strings.Contains(name, "torch"):
		item.Type = types.ItemTool
		item.UseDescription = "The torch provides light in dark areas."
	}

	c.state.Items[recipe.ResultItem] = item
}

func itemTypeForRecipe(recipe *types.CraftingRecipe) types.ItemType {
	name := strings.ToLower(recipe.Name)
	switch {
	case strings.Contains(name, "potion"):
		return types.ItemPotion
	case strings.Contains(name, "sword"), strings.Contains(name, "weapon"):
		return types.ItemWeapon
	case strings.Contains(name, "armor"):
		return types.ItemArmor
	case strings.Contains(name, "scroll"):
		return types.ItemScroll
	case strings.Contains(name, "key"), strings.Contains(name, "lockpick"):
		return types.ItemTool
	}
	return types.ItemMisc
}

func craftedItemValue(recipe *types.CraftingRecipe) int {
	value := 10
	for _, quantity := range recipe.Materials {
		value += quantity * 5
	}
	value += recipe.RequiredLevel * 10
	value += recipe.CraftingTime * 2
	return value
}

// Learn adds a recipe to the player's known set. Learning is idempotent.
func (c *CraftingSystem) Learn(recipeID string) string {
	recipe, ok := c.state.Recipes[recipeID]
	if !ok {
		return fmt.Sprintf("Recipe '%s' not found.", recipeID)
	}
	if c.state.Player.KnownRecipes[recipeID] {
		return fmt.Sprintf("You already know the %s recipe.", recipe.Name)
	}
	c.state.Player.KnownRecipes[recipeID] = true
	return fmt.Sprintf("You learn how to craft %s!", recipe.Name)
}

// RecipeInfo reports a recipe's gates and the player's material progress.
func (c *CraftingSystem) RecipeInfo(recipeName string) string {
	id, err := resolve.Recipe(c.state, recipeName)
	if err != nil {
		return fmt.Sprintf("Recipe '%s' not found.", recipeName)
	}
	recipe := c.state.Recipes[id]

	info := []string{
		fmt.Sprintf("Recipe: %s", recipe.Name),
		fmt.Sprintf("Description: %s", recipe.Description),
		fmt.Sprintf("Required Level: %d", recipe.RequiredLevel),
		fmt.Sprintf("Crafting Time: %d minutes", recipe.CraftingTime),
	}
	if len(recipe.RequiredTools) > 0 {
		info = append(info, fmt.Sprintf("Required Tools: %s", strings.Join(recipe.RequiredTools, ", ")))
	}

	info = append(info, "Materials:")
	for _, material := range sortedKeys(recipe.Materials) {
		quantity := recipe.Materials[material]
		have := state.CountMaterial(c.state, material)
		mark := "x"
		if have >= quantity {
			mark = "+"
		}
		info = append(info, fmt.Sprintf("  [%s] %s: %d/%d", mark, material, have, quantity))
	}

	if c.canCraft(recipe) {
		info = append(info, "", "Can Craft: Yes")
	} else {
		info = append(info, "", "Can Craft: No")
		switch {
		case !c.state.Player.KnownRecipes[recipe.ID]:
			info = append(info, "Reason: You don't know this recipe.")
		case c.state.Player.Level < recipe.RequiredLevel:
			info = append(info, fmt.Sprintf("Reason: You need level %d.", recipe.RequiredLevel))
		default:
			info = append(info, "Reason: Missing required materials or tools.")
		}
	}

	return joinLines(info)
}

// ListRecipes lists known recipes in definition order with a craftable mark.
func (c *CraftingSystem) ListRecipes() string {
	var lines []string
	for _, id := range c.state.RecipeOrder {
		if !c.state.Player.KnownRecipes[id] {
			continue
		}
		recipe, ok := c.state.Recipes[id]
		if !ok {
			continue
		}
		mark := "x"
		if c.canCraft(recipe) {
			mark = "+"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s (Level %d)", mark, recipe.Name, recipe.RequiredLevel))
	}
	if len(lines) == 0 {
		return "You don't know any crafting recipes."
	}
	return "Known Recipes:\n" + joinLines(lines)
}
