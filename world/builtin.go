// Package world constructs game worlds: the built-in dungeon and worlds
// defined by Lua content scripts.
package world

import (
	"github.com/kmoss/dungeoneer/engine/state"
	"github.com/kmoss/dungeoneer/types"
)

// Builtin returns the default nine-room dungeon. The world is fully
// self-contained: every id referenced by a room, NPC, enemy, quest or
// recipe resolves against the catalogs.
func Builtin() *types.GameState {
	gs := &types.GameState{
		Player:  state.NewPlayer("Adventurer", "entrance"),
		Items:   builtinItems(),
		NPCs:    builtinNPCs(),
		Enemies: builtinEnemies(),
		Rooms:   builtinRooms(),
		Quests:  builtinQuests(),
		Weather: types.Weather{Current: types.WeatherClear, Temperature: 20, Visibility: 100},
		Time:    types.TimeSystem{TimeOfDay: "morning", Day: 1, Hour: 8},
	}
	gs.Recipes, gs.RecipeOrder = builtinRecipes()
	gs.Player.KnownRecipes["torch"] = true
	gs.Player.KnownRecipes["health_potion"] = true
	return gs
}

func builtinItems() map[string]*types.Item {
	items := map[string]*types.Item{
		"rusty_key": {
			Name:        "rusty key",
			Description: "An old, rusty key that might unlock something.",
			Type:        types.ItemKey,
			Value:       5,
			Keywords:    []string{"key", "rusty"},
		},
		"torch": {
			Name:        "torch",
			Description: "A wooden torch that provides light in dark places.",
			Type:        types.ItemTool,
			Value:       10,
			Keywords:    []string{"light", "fire"},
		},
		"sword": {
			Name:        "sword",
			Description: "A sharp steel sword with a leather-wrapped hilt.",
			Type:        types.ItemWeapon,
			Damage:      12,
			Value:       50,
			Keywords:    []string{"weapon", "blade"},
		},
		"gold_coin": {
			Name:        "gold coin",
			Description: "A shiny gold coin worth 10 points.",
			Type:        types.ItemTreasure,
			Value:       10,
			Keywords:    []string{"coin", "gold", "money"},
		},
		"treasure_chest": {
			Name:        "treasure chest",
			Description: "A magnificent chest filled with untold riches!",
			Type:        types.ItemTreasure,
			Value:       1000,
			Keywords:    []string{"chest", "treasure", "riches"},
		},
		"potion": {
			Name:           "health potion",
			Description:    "A red potion that restores health when consumed.",
			Type:           types.ItemPotion,
			HealingValue:   25,
			Value:          25,
			Keywords:       []string{"potion", "health", "red"},
			UseDescription: "You drink the potion and feel your strength returning!",
		},
		"map": {
			Name:        "old map",
			Description: "A weathered map showing the layout of the dungeon.",
			Type:        types.ItemTool,
			Value:       15,
			Keywords:    []string{"map", "paper"},
		},
		"gem": {
			Name:        "ruby gem",
			Description: "A beautiful red ruby that sparkles in the light.",
			Type:        types.ItemTreasure,
			Value:       100,
			Keywords:    []string{"gem", "ruby", "red"},
		},

		// Crafting materials.
		"herb": {
			Name:        "herb",
			Description: "A common herb used in potion making.",
			Type:        types.ItemMaterial,
			Value:       2,
			Keywords:    []string{"herb", "plant", "material"},
		},
		"iron_ore": {
			Name:        "iron ore",
			Description: "Raw iron ore that can be smelted into metal.",
			Type:        types.ItemMaterial,
			Value:       5,
			Keywords:    []string{"ore", "iron", "metal", "material"},
		},
		"wood": {
			Name:        "wood",
			Description: "A piece of wood suitable for crafting.",
			Type:        types.ItemMaterial,
			Value:       1,
			Keywords:    []string{"wood", "material"},
		},
		"leather": {
			Name:        "leather",
			Description: "Treated animal hide used for armor.",
			Type:        types.ItemMaterial,
			Value:       3,
			Keywords:    []string{"leather", "hide", "material"},
		},
		"thread": {
			Name:        "thread",
			Description: "Strong thread for sewing and crafting.",
			Type:        types.ItemMaterial,
			Value:       1,
			Keywords:    []string{"thread", "string", "material"},
		},
		"cloth": {
			Name:        "cloth",
			Description: "A piece of fabric for various uses.",
			Type:        types.ItemMaterial,
			Value:       1,
			Keywords:    []string{"cloth", "fabric", "material"},
		},
		"parchment": {
			Name:        "parchment",
			Description: "Fine parchment for writing and scrolls.",
			Type:        types.ItemMaterial,
			Value:       2,
			Keywords:    []string{"parchment", "paper", "material"},
		},
		"magic_essence": {
			Name:        "magic essence",
			Description: "A glowing essence of pure magic.",
			Type:        types.ItemMaterial,
			Value:       20,
			Keywords:    []string{"essence", "magic", "material"},
		},
		"water": {
			Name:        "water",
			Description: "Clear water in a small vial.",
			Type:        types.ItemMaterial,
			Value:       1,
			Keywords:    []string{"water", "liquid", "material"},
		},

		// Craftable equipment.
		"iron_sword": {
			Name:        "iron sword",
			Description: "A sturdy iron sword with excellent balance.",
			Type:        types.ItemWeapon,
			Damage:      18,
			Value:       75,
			Keywords:    []string{"sword", "iron", "weapon"},
		},
		"leather_armor": {
			Name:        "leather armor",
			Description: "Light leather armor that provides good protection.",
			Type:        types.ItemArmor,
			ArmorValue:  8,
			Value:       40,
			Keywords:    []string{"armor", "leather", "protection"},
		},
		"lockpick": {
			Name:        "lockpick",
			Description: "A delicate tool for picking locks.",
			Type:        types.ItemTool,
			Value:       15,
			Keywords:    []string{"lockpick", "tool", "lock"},
		},
		"magic_scroll": {
			Name:        "magic scroll",
			Description: "A scroll inscribed with ancient magical runes.",
			Type:        types.ItemScroll,
			Value:       50,
			Keywords:    []string{"scroll", "magic", "rune"},
		},

		// Tools.
		"hammer": {
			Name:        "hammer",
			Description: "A sturdy hammer for crafting and repairs.",
			Type:        types.ItemTool,
			Value:       8,
			Keywords:    []string{"hammer", "tool", "craft"},
		},
		"needle": {
			Name:        "needle",
			Description: "A fine needle for sewing and leatherwork.",
			Type:        types.ItemTool,
			Value:       3,
			Keywords:    []string{"needle", "tool", "sew"},
		},
	}
	for _, it := range items {
		it.IsTakeable = true
		it.IsVisible = true
	}
	return items
}

func builtinEnemies() map[string]*types.Enemy {
	return map[string]*types.Enemy{
		"goblin": {
			ID:               "goblin",
			Name:             "goblin",
			Type:             types.EnemyGoblin,
			Description:      "A small, green-skinned goblin with sharp teeth and malicious eyes.",
			Health:           30,
			MaxHealth:        30,
			Damage:           8,
			Armor:            2,
			ExperienceReward: 25,
			GoldReward:       10,
			CurrentRoom:      "corridor",
			IsAlive:          true,
			AggressionLevel:  7,
			Inventory:        []string{"herb"},
			SpecialAbilities: []string{"poison"},
		},
		"skeleton": {
			ID:               "skeleton",
			Name:             "skeleton",
			Type:             types.EnemySkeleton,
			Description:      "An animated skeleton with glowing red eyes.",
			Health:           40,
			MaxHealth:        40,
			Damage:           10,
			Armor:            3,
			ExperienceReward: 35,
			GoldReward:       15,
			CurrentRoom:      "secret_passage",
			IsAlive:          true,
			AggressionLevel:  8,
			Inventory:        []string{"iron_ore"},
			SpecialAbilities: []string{"stun"},
		},
		"bandit": {
			ID:               "bandit",
			Name:             "bandit",
			Type:             types.EnemyBandit,
			Description:      "A rough-looking bandit with a scarred face and leather armor.",
			Health:           50,
			MaxHealth:        50,
			Damage:           12,
			Armor:            5,
			ExperienceReward: 45,
			GoldReward:       25,
			CurrentRoom:      "cave",
			IsAlive:          true,
			AggressionLevel:  6,
			Inventory:        []string{"gold_coin", "leather"},
			SpecialAbilities: []string{"heal"},
		},
	}
}

func builtinNPCs() map[string]*types.NPC {
	return map[string]*types.NPC{
		"guard": {
			ID:          "guard",
			Name:        "guard",
			Description: "A stern-looking guard in chainmail armor.",
			CurrentRoom: "guard_room",
			IsAlive:     true,
			IsFriendly:  true,
			Dialogue: map[string]string{
				"greeting": "Halt! Who goes there? Oh, just an adventurer. Be careful in the dungeon ahead.",
				"help":     "The dungeon is dangerous. You'll need a torch to see in the dark areas.",
				"quest":    "There's a goblin causing trouble in the corridor. If you can defeat it, I'll reward you.",
				"crafting": "I've seen some adventurers crafting their own gear. You might want to learn some recipes.",
			},
			QuestsOffered: []string{"defeat_goblin", "explore_caves"},
		},
		"merchant": {
			ID:          "merchant",
			Name:        "merchant",
			Description: "A friendly merchant with a backpack full of goods.",
			CurrentRoom: "market",
			IsAlive:     true,
			IsFriendly:  true,
			Dialogue: map[string]string{
				"greeting": "Welcome, traveler! I have many fine items for sale... if you have the coin.",
				"trade":    "I'm always looking for rare items. Bring me something valuable and I'll make you a deal.",
				"quest":    "I need herbs for my potion making. If you can collect some for me, I'll pay you well.",
				"crafting": "Crafting is a valuable skill. I can teach you some basic recipes if you're interested.",
			},
			QuestsOffered: []string{"collect_herbs", "craft_sword"},
			ShopItems:     []string{"torch", "potion", "map"},
			ShopPrices:    map[string]int{"torch": 15, "potion": 30, "map": 20},
		},
		"wizard": {
			ID:          "wizard",
			Name:        "wizard",
			Description: "An elderly wizard in flowing robes covered in mystical symbols.",
			CurrentRoom: "library",
			IsAlive:     true,
			IsFriendly:  true,
			Dialogue: map[string]string{
				"greeting": "Ah, a visitor! I sense great potential in you, young adventurer.",
				"quest":    "I've lost my precious ruby gem somewhere in the dungeon. If you find it, I'll reward you handsomely.",
				"magic":    "Magic is everywhere, young one. You just need to know where to look.",
				"crafting": "The most powerful items are those crafted with your own hands and magic.",
			},
			QuestsOffered: []string{"find_gem"},
		},
	}
}

func builtinRooms() map[string]*types.Room {
	return map[string]*types.Room{
		"entrance": {
			ID:              "entrance",
			Name:            "Dungeon Entrance",
			Description:     "You stand at the entrance to an ancient dungeon. Stone walls rise around you, and the air is thick with mystery.",
			LongDescription: "You find yourself at the entrance to an ancient dungeon. The stone walls are covered in moss and strange runes. A cool breeze whispers through the corridors, carrying the scent of old stone and adventure. Torches flicker on the walls, casting dancing shadows.",
			Exits: map[types.Direction]types.Exit{
				types.North: {Direction: types.North, Destination: "guard_room", IsOpen: true},
				types.East:  {Direction: types.East, Destination: "market", IsOpen: true},
			},
			Items:      []string{"torch", "map", "herb"},
			IsSafeZone: true,
		},
		"guard_room": {
			ID:          "guard_room",
			Name:        "Guard Room",
			Description: "A small room with a guard stationed at a wooden table. Weapons and armor line the walls.",
			Exits: map[types.Direction]types.Exit{
				types.South: {Direction: types.South, Destination: "entrance", IsOpen: true},
				types.East:  {Direction: types.East, Destination: "corridor", IsOpen: true},
			},
			NPCs:       []string{"guard"},
			Items:      []string{"hammer"},
			IsSafeZone: true,
		},
		"market": {
			ID:          "market",
			Name:        "Market Square",
			Description: "A bustling market square with stalls and merchants. The air is filled with the sounds of haggling and the smell of spices.",
			Exits: map[types.Direction]types.Exit{
				types.West:  {Direction: types.West, Destination: "entrance", IsOpen: true},
				types.North: {Direction: types.North, Destination: "library", IsOpen: true},
			},
			NPCs:       []string{"merchant"},
			Items:      []string{"gold_coin", "thread", "cloth"},
			IsSafeZone: true,
		},
		"library": {
			ID:          "library",
			Name:        "Ancient Library",
			Description: "Rows of dusty bookshelves line the walls. The air is thick with the smell of old parchment and magic.",
			Exits: map[types.Direction]types.Exit{
				types.South: {Direction: types.South, Destination: "market", IsOpen: true},
				types.West:  {Direction: types.West, Destination: "corridor", IsOpen: true},
			},
			NPCs:       []string{"wizard"},
			Items:      []string{"parchment", "magic_essence"},
			IsSafeZone: true,
		},
		"corridor": {
			ID:          "corridor",
			Name:        "Dark Corridor",
			Description: "A long, dark corridor with stone walls. The only light comes from occasional torches.",
			Exits: map[types.Direction]types.Exit{
				types.West:  {Direction: types.West, Destination: "guard_room", IsOpen: true},
				types.East:  {Direction: types.East, Destination: "library", IsOpen: true},
				types.North: {Direction: types.North, Destination: "treasure_room", IsOpen: true},
			},
			Enemies: []string{"goblin"},
			Items:   []string{"iron_ore"},
			IsDark:  true,
		},
		"treasure_room": {
			ID:          "treasure_room",
			Name:        "Treasure Chamber",
			Description: "A magnificent chamber filled with gold and jewels. The walls sparkle with embedded gems.",
			Exits: map[types.Direction]types.Exit{
				types.South: {Direction: types.South, Destination: "corridor", IsOpen: true},
				types.East:  {Direction: types.East, Destination: "secret_passage", IsOpen: true},
			},
			Items:      []string{"treasure_chest", "gem"},
			IsSafeZone: true,
		},
		"secret_passage": {
			ID:          "secret_passage",
			Name:        "Secret Passage",
			Description: "A hidden passage behind a loose stone. The air is stale and the walls are rough.",
			Exits: map[types.Direction]types.Exit{
				types.West:  {Direction: types.West, Destination: "treasure_room", IsOpen: true},
				types.North: {Direction: types.North, Destination: "cave", IsOpen: true},
			},
			Enemies: []string{"skeleton"},
			Items:   []string{"rusty_key", "wood"},
			IsDark:  true,
		},
		"cave": {
			ID:          "cave",
			Name:        "Underground Cave",
			Description: "A natural cave with stalactites hanging from the ceiling. Water drips somewhere in the darkness.",
			Exits: map[types.Direction]types.Exit{
				types.South: {Direction: types.South, Destination: "secret_passage", IsOpen: true},
				types.Down:  {Direction: types.Down, Destination: "deep_cavern", IsOpen: true},
			},
			Enemies:      []string{"bandit"},
			Items:        []string{"leather", "water"},
			IsDark:       true,
			AmbientSound: "The sound of dripping water echoes through the cave.",
		},
		"deep_cavern": {
			ID:          "deep_cavern",
			Name:        "Deep Cavern",
			Description: "A vast cavern deep underground. Strange crystals glow with an otherworldly light.",
			Exits: map[types.Direction]types.Exit{
				types.Up: {Direction: types.Up, Destination: "cave", IsOpen: true},
			},
			Items:        []string{"sword", "potion", "needle"},
			AmbientSound: "The crystals hum with a mysterious energy.",
		},
	}
}

// Quest requirements that refer to items use item names so they match
// the inventory the same way every other name lookup does. Rewards use
// item ids because they are granted directly.
func builtinQuests() map[string]*types.Quest {
	return map[string]*types.Quest{
		"find_gem": {
			ID:               "find_gem",
			Name:             "The Lost Ruby",
			Description:      "Find the wizard's lost ruby gem somewhere in the dungeon.",
			QuestGiver:       "wizard",
			Status:           types.QuestNotStarted,
			Requirements:     map[string]int{"gem": 1},
			Rewards:          map[string]int{"gold_coin": 2},
			ExperienceReward: 50,
			GoldReward:       25,
		},
		"defeat_goblin": {
			ID:               "defeat_goblin",
			Name:             "Goblin Hunter",
			Description:      "Defeat the goblin that has been terrorizing the area.",
			QuestGiver:       "guard",
			Status:           types.QuestNotStarted,
			Requirements:     map[string]int{"goblin_defeated": 1},
			Rewards:          map[string]int{"sword": 1},
			ExperienceReward: 100,
			GoldReward:       50,
		},
		"collect_herbs": {
			ID:               "collect_herbs",
			Name:             "Herb Collection",
			Description:      "Collect herbs for the merchant's potion making.",
			QuestGiver:       "merchant",
			Status:           types.QuestNotStarted,
			Requirements:     map[string]int{"herb": 5},
			Rewards:          map[string]int{"potion": 2},
			ExperienceReward: 30,
			GoldReward:       15,
			IsRepeatable:     true,
		},
		"explore_caves": {
			ID:               "explore_caves",
			Name:             "Cave Explorer",
			Description:      "Explore the deep caverns and report back what you find.",
			QuestGiver:       "guard",
			Status:           types.QuestNotStarted,
			Requirements:     map[string]int{"cave_explored": 1},
			Rewards:          map[string]int{"torch": 1},
			ExperienceReward: 75,
			GoldReward:       30,
		},
		"craft_sword": {
			ID:               "craft_sword",
			Name:             "Master Craftsman",
			Description:      "Craft an iron sword to prove your crafting skills.",
			QuestGiver:       "merchant",
			Status:           types.QuestNotStarted,
			Requirements:     map[string]int{"iron sword": 1},
			Rewards:          map[string]int{"gold_coin": 3},
			ExperienceReward: 80,
			GoldReward:       40,
		},
	}
}

// Recipe materials use item names for the same reason quest requirements do.
func builtinRecipes() (map[string]*types.CraftingRecipe, []string) {
	order := []string{
		"health_potion", "iron_sword", "leather_armor",
		"torch", "lockpick", "magic_scroll",
	}
	recipes := map[string]*types.CraftingRecipe{
		"health_potion": {
			ID:            "health_potion",
			Name:          "Health Potion",
			Description:   "A potion that restores health",
			Materials:     map[string]int{"herb": 2, "water": 1},
			ResultItem:    "health_potion",
			RequiredLevel: 1,
			CraftingTime:  2,
		},
		"iron_sword": {
			ID:            "iron_sword",
			Name:          "Iron Sword",
			Description:   "A sturdy iron sword",
			Materials:     map[string]int{"iron ore": 3, "wood": 1},
			ResultItem:    "iron_sword",
			RequiredLevel: 3,
			RequiredTools: []string{"hammer"},
			CraftingTime:  10,
		},
		"leather_armor": {
			ID:            "leather_armor",
			Name:          "Leather Armor",
			Description:   "Light leather armor",
			Materials:     map[string]int{"leather": 4, "thread": 2},
			ResultItem:    "leather_armor",
			RequiredLevel: 2,
			RequiredTools: []string{"needle"},
			CraftingTime:  8,
		},
		"torch": {
			ID:            "torch",
			Name:          "Torch",
			Description:   "A wooden torch for light",
			Materials:     map[string]int{"wood": 1, "cloth": 1},
			ResultItem:    "torch",
			RequiredLevel: 1,
			CraftingTime:  1,
		},
		"lockpick": {
			ID:            "lockpick",
			Name:          "Lockpick",
			Description:   "A tool for picking locks",
			Materials:     map[string]int{"iron ore": 1},
			ResultItem:    "lockpick",
			RequiredLevel: 2,
			RequiredTools: []string{"hammer"},
			CraftingTime:  3,
		},
		"magic_scroll": {
			ID:            "magic_scroll",
			Name:          "Magic Scroll",
			Description:   "A scroll with magical properties",
			Materials:     map[string]int{"parchment": 1, "magic essence": 1},
			ResultItem:    "magic_scroll",
			RequiredLevel: 5,
			CraftingTime:  5,
		},
	}
	return recipes, order
}
