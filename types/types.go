// Package types defines the shared data structures for the Dungeoneer engine.
// This package contains only type definitions — no logic, no methods.
package types

// Direction is a movement direction. Directions double as command verbs.
type Direction string

const (
	North     Direction = "north"
	South     Direction = "south"
	East      Direction = "east"
	West      Direction = "west"
	Up        Direction = "up"
	Down      Direction = "down"
	Northeast Direction = "northeast"
	Northwest Direction = "northwest"
	Southeast Direction = "southeast"
	Southwest Direction = "southwest"
)

// AllDirections lists every valid direction in a stable order.
var AllDirections = []Direction{
	North, South, East, West, Up, Down,
	Northeast, Northwest, Southeast, Southwest,
}

// ItemType classifies items.
type ItemType string

const (
	ItemWeapon   ItemType = "weapon"
	ItemArmor    ItemType = "armor"
	ItemTool     ItemType = "tool"
	ItemKey      ItemType = "key"
	ItemTreasure ItemType = "treasure"
	ItemPotion   ItemType = "potion"
	ItemScroll   ItemType = "scroll"
	ItemMaterial ItemType = "material"
	ItemMisc     ItemType = "misc"
)

// EnemyType classifies enemies. Quest requirements of the form
// "<type>_defeated" refer to these values.
type EnemyType string

const (
	EnemyGoblin   EnemyType = "goblin"
	EnemyOrc      EnemyType = "orc"
	EnemyTroll    EnemyType = "troll"
	EnemyDragon   EnemyType = "dragon"
	EnemySkeleton EnemyType = "skeleton"
	EnemyZombie   EnemyType = "zombie"
	EnemyBandit   EnemyType = "bandit"
	EnemyWolf     EnemyType = "wolf"
)

// QuestStatus is the lifecycle state of a quest.
type QuestStatus string

const (
	QuestNotStarted QuestStatus = "not_started"
	QuestInProgress QuestStatus = "in_progress"
	QuestCompleted  QuestStatus = "completed"
	QuestFailed     QuestStatus = "failed"
)

// Item is a catalog entry keyed by its id in GameState.Items. An item id
// appearing in multiple inventories references the same catalog record;
// quantity is represented by repeating the id. Durability exists on the
// schema but is never tracked per instance.
type Item struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Type           ItemType `json:"item_type"`
	Value          int      `json:"value"`
	Damage         int      `json:"damage"`
	ArmorValue     int      `json:"armor_value"`
	HealingValue   int      `json:"healing_value"`
	Durability     int      `json:"durability"`
	MaxDurability  int      `json:"max_durability"`
	IsTakeable     bool     `json:"is_takeable"`
	IsVisible      bool     `json:"is_visible"`
	Keywords       []string `json:"keywords"`
	UseDescription string   `json:"use_description,omitempty"`
}

// Exit connects a room to a destination, guarded by up to four gates
// checked in order: open, locked/key, level, required items.
type Exit struct {
	Direction     Direction `json:"direction"`
	Destination   string    `json:"destination"`
	IsOpen        bool      `json:"is_open"`
	IsLocked      bool      `json:"is_locked"`
	RequiredKey   string    `json:"required_key,omitempty"`
	RequiredLevel int       `json:"required_level"`
	RequiredItems []string  `json:"required_items,omitempty"`
}

// Room holds the entities present at a location. Item/NPC/enemy lists are
// id references into the GameState catalogs.
type Room struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	LongDescription string             `json:"long_description,omitempty"`
	Exits           map[Direction]Exit `json:"exits"`
	Items           []string           `json:"items"`
	NPCs            []string           `json:"npcs"`
	Enemies         []string           `json:"enemies"`
	IsVisited       bool               `json:"is_visited"`
	IsDark          bool               `json:"is_dark"`
	IsSafeZone      bool               `json:"is_safe_zone"`
	AmbientSound    string             `json:"ambient_sounds,omitempty"`
}

// Equipment holds the seven named slots. A slot holds an item id or "".
// An equipped id must never also appear in the loose inventory list.
type Equipment struct {
	Weapon string `json:"weapon,omitempty"`
	Armor  string `json:"armor,omitempty"`
	Helmet string `json:"helmet,omitempty"`
	Boots  string `json:"boots,omitempty"`
	Gloves string `json:"gloves,omitempty"`
	Ring   string `json:"ring,omitempty"`
	Amulet string `json:"amulet,omitempty"`
}

// Player is the player character's full runtime state.
type Player struct {
	Name             string          `json:"name"`
	Health           int             `json:"health"`
	MaxHealth        int             `json:"max_health"`
	Level            int             `json:"level"`
	Experience       int             `json:"experience"`
	ExperienceToNext int             `json:"experience_to_next"`
	Gold             int             `json:"gold"`
	Strength         int             `json:"strength"`
	Dexterity        int             `json:"dexterity"`
	Intelligence     int             `json:"intelligence"`
	Constitution     int             `json:"constitution"`
	CurrentRoom      string          `json:"current_room"`
	Inventory        []string        `json:"inventory"`
	Equipment        Equipment       `json:"equipment"`
	KnownRecipes     map[string]bool `json:"known_recipes"`
	ActiveQuests     []string        `json:"active_quests"`
	CompletedQuests  map[string]bool `json:"completed_quests"`
	StatusEffects    map[string]int  `json:"status_effects"`
	IsAlive          bool            `json:"is_alive"`
	Score            int             `json:"score"`
	Moves            int             `json:"moves"`
}

// NPC is a non-player character, optionally a quest giver or shopkeeper.
type NPC struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Dialogue      map[string]string `json:"dialogue"`
	CurrentRoom   string            `json:"current_room"`
	IsAlive       bool              `json:"is_alive"`
	IsFriendly    bool              `json:"is_friendly"`
	ShopItems     []string          `json:"shop_items,omitempty"`
	ShopPrices    map[string]int    `json:"shop_prices,omitempty"`
	QuestsOffered []string          `json:"quests_offered,omitempty"`
}

// Enemy is a hostile combatant. Inventory items drop into the room on death.
type Enemy struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Type             EnemyType `json:"enemy_type"`
	Description      string    `json:"description"`
	Health           int       `json:"health"`
	MaxHealth        int       `json:"max_health"`
	Damage           int       `json:"damage"`
	Armor            int       `json:"armor"`
	ExperienceReward int       `json:"experience_reward"`
	GoldReward       int       `json:"gold_reward"`
	CurrentRoom      string    `json:"current_room"`
	IsAlive          bool      `json:"is_alive"`
	AggressionLevel  int       `json:"aggression_level"` // 1-10
	Inventory        []string  `json:"inventory"`
	SpecialAbilities []string  `json:"special_abilities,omitempty"`
}

// Quest maps requirement keys to counts. Most keys are inventory substring
// checks; "<enemy-type>_defeated" and "cave_explored" are world predicates.
type Quest struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	QuestGiver       string         `json:"quest_giver"`
	Status           QuestStatus    `json:"status"`
	Requirements     map[string]int `json:"requirements"`
	Rewards          map[string]int `json:"rewards"` // item id → count
	ExperienceReward int            `json:"experience_reward"`
	GoldReward       int            `json:"gold_reward"`
	IsRepeatable     bool           `json:"is_repeatable"`
}

// CraftingRecipe maps material name-fragments to required counts. Tools are
// checked for presence only, never consumed.
type CraftingRecipe struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Materials     map[string]int `json:"materials"`
	ResultItem    string         `json:"result_item"`
	RequiredLevel int            `json:"required_level"`
	RequiredTools []string       `json:"required_tools,omitempty"`
	CraftingTime  int            `json:"crafting_time"` // cosmetic, minutes
}

// WeatherType classifies weather conditions.
type WeatherType string

const (
	WeatherClear  WeatherType = "clear"
	WeatherCloudy WeatherType = "cloudy"
	WeatherRainy  WeatherType = "rainy"
	WeatherStormy WeatherType = "stormy"
	WeatherFoggy  WeatherType = "foggy"
	WeatherSnowy  WeatherType = "snowy"
)

// Weather is cosmetic state. Nothing in the core drives it.
type Weather struct {
	Current     WeatherType `json:"current_weather"`
	Temperature int         `json:"temperature"`
	Visibility  int         `json:"visibility"`
}

// TimeSystem is cosmetic state. Nothing in the core drives it.
type TimeSystem struct {
	TimeOfDay string `json:"time_of_day"`
	Day       int    `json:"day"`
	Hour      int    `json:"hour"`
	Minute    int    `json:"minute"`
}

// GameState is the aggregate root: one live instance per session, mutated
// in place, fully serializable to a plain JSON document.
type GameState struct {
	Player      Player                     `json:"player"`
	Rooms       map[string]*Room           `json:"rooms"`
	Items       map[string]*Item           `json:"items"`
	NPCs        map[string]*NPC            `json:"npcs"`
	Enemies     map[string]*Enemy          `json:"enemies"`
	Quests      map[string]*Quest          `json:"quests"`
	Recipes     map[string]*CraftingRecipe `json:"crafting_recipes"`
	RecipeOrder []string                   `json:"recipe_order"` // canonical definition order
	CombatLog   []string                   `json:"combat_log"`
	Weather     Weather                    `json:"weather"`
	Time        TimeSystem                 `json:"time_system"`
	IsGameOver  bool                       `json:"is_game_over"`
	Victory     bool                       `json:"victory"`
}
