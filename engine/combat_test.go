package engine

import (
	"strings"
	"testing"

	"github.com/kmoss/dungeoneer/engine/state"
	"github.com/kmoss/dungeoneer/types"
)

// scriptDice returns pre-scripted draws so combat outcomes are forced.
// Exhausted scripts fall back to zero values.
type scriptDice struct {
	ranges  []int
	chances []bool
	choices []int
}

func (d *scriptDice) Intn(n int) int { return d.pop(&d.ranges) }

func (d *scriptDice) Range(lo, hi int) int {
	v := d.pop(&d.ranges)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (d *scriptDice) Chance(p float64) bool {
	if len(d.chances) == 0 {
		return false
	}
	v := d.chances[0]
	d.chances = d.chances[1:]
	return v
}

func (d *scriptDice) Choice(n int) int {
	v := d.pop(&d.choices)
	if v >= n {
		return n - 1
	}
	return v
}

func (d *scriptDice) pop(s *[]int) int {
	if len(*s) == 0 {
		return 0
	}
	v := (*s)[0]
	*s = (*s)[1:]
	return v
}

func combatState() *types.GameState {
	gs := &types.GameState{
		Player: state.NewPlayer("Adventurer", "arena"),
		Rooms: map[string]*types.Room{
			"arena": {
				ID:      "arena",
				Name:    "Arena",
				Enemies: []string{"goblin", "bandit"},
			},
		},
		Items: map[string]*types.Item{
			"health_potion": {Name: "health potion", Type: types.ItemPotion, HealingValue: 25},
			"torch":         {Name: "torch", Type: types.ItemTool},
			"iron_sword":    {Name: "iron sword", Type: types.ItemWeapon, Damage: 18},
			"leather_armor": {Name: "leather armor", Type: types.ItemArmor, ArmorValue: 8},
			"herb":          {Name: "herb", Type: types.ItemMaterial},
		},
		NPCs: map[string]*types.NPC{},
		Enemies: map[string]*types.Enemy{
			"goblin": {
				ID: "goblin", Name: "goblin", Type: types.EnemyGoblin,
				Health: 30, MaxHealth: 30, Damage: 8, Armor: 2,
				ExperienceReward: 25, GoldReward: 10,
				CurrentRoom: "arena", IsAlive: true,
				Inventory:        []string{"herb"},
				SpecialAbilities: []string{"poison"},
			},
			"bandit": {
				ID: "bandit", Name: "bandit", Type: types.EnemyBandit,
				Health: 50, MaxHealth: 50, Damage: 12, Armor: 5,
				ExperienceReward: 45, GoldReward: 25,
				CurrentRoom: "arena", IsAlive: true,
				SpecialAbilities: []string{"heal"},
			},
		},
		Quests:  map[string]*types.Quest{},
		Recipes: map[string]*types.CraftingRecipe{},
	}
	return gs
}

func TestAttack_NoEnemies(t *testing.T) {
	gs := combatState()
	gs.Enemies["goblin"].IsAlive = false
	gs.Enemies["bandit"].IsAlive = false

	c := NewCombatSystem(gs, &scriptDice{})
	if got := c.Attack(""); got != "There are no enemies to attack." {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestAttack_DamageFormula(t *testing.T) {
	gs := combatState()
	// Strength 10, no weapon: base damage max(1, 10/3) = 3.
	// Against armor 2: max(1, 3-2) = 1, +2 variance = 3.
	dice := &scriptDice{ranges: []int{2, -2}, chances: []bool{false}}
	c := NewCombatSystem(gs, dice)

	out := c.Attack("goblin")

	if gs.Enemies["goblin"].Health != 27 {
		t.Errorf("expected goblin at 27 health, got %d", gs.Enemies["goblin"].Health)
	}
	if !strings.Contains(out, "You attack goblin with your fists for 3 damage!") {
		t.Errorf("missing attack line in %q", out)
	}
	// Counter-attack: max(1, 8-0) = 8, -2 variance = 6.
	if gs.Player.Health != 94 {
		t.Errorf("expected player at 94 health, got %d", gs.Player.Health)
	}
	if !strings.Contains(out, "goblin attacks you for 6 damage!") {
		t.Errorf("missing counter-attack line in %q", out)
	}
}

func TestAttack_EquippedWeaponAndArmor(t *testing.T) {
	gs := combatState()
	gs.Player.Equipment.Weapon = "iron_sword"
	gs.Player.Equipment.Armor = "leather_armor"

	// Player: base 3 + weapon 18 = 21, vs armor 2: 19, +0 variance.
	// Goblin survives (30-19=11) and counters: max(1, 8-8) = 1, +0 variance.
	dice := &scriptDice{ranges: []int{0, 0}, chances: []bool{false}}
	c := NewCombatSystem(gs, dice)

	out := c.Attack("goblin")

	if gs.Enemies["goblin"].Health != 11 {
		t.Errorf("expected goblin at 11 health, got %d", gs.Enemies["goblin"].Health)
	}
	if !strings.Contains(out, "You attack goblin with iron sword for 19 damage!") {
		t.Errorf("missing weapon name in %q", out)
	}
	if gs.Player.Health != 99 {
		t.Errorf("expected armor to reduce counter to 1, player at %d", gs.Player.Health)
	}
}

func TestAttack_DefeatGrantsRewards(t *testing.T) {
	gs := combatState()
	gs.Enemies["goblin"].Health = 1

	dice := &scriptDice{ranges: []int{0}}
	c := NewCombatSystem(gs, dice)

	out := c.Attack("goblin")

	goblin := gs.Enemies["goblin"]
	if goblin.IsAlive || goblin.Health != 0 {
		t.Errorf("goblin should be dead at 0 health, got alive=%v health=%d", goblin.IsAlive, goblin.Health)
	}
	if gs.Player.Experience != 25 || gs.Player.Gold != 10 {
		t.Errorf("expected 25 xp / 10 gold, got %d / %d", gs.Player.Experience, gs.Player.Gold)
	}
	if !strings.Contains(out, "You have defeated goblin!") {
		t.Errorf("missing defeat line in %q", out)
	}
	// Loot drops into the room.
	found := false
	for _, id := range gs.Rooms["arena"].Items {
		if id == "herb" {
			found = true
		}
	}
	if !found {
		t.Error("goblin inventory should drop into the room")
	}
	if !strings.Contains(out, "goblin drops some items!") {
		t.Errorf("missing drop line in %q", out)
	}
	// No counter-attack from a dead enemy.
	if gs.Player.Health != 100 {
		t.Errorf("dead enemy should not counter, player at %d", gs.Player.Health)
	}
}

func TestAttack_SingleLevelUp(t *testing.T) {
	gs := combatState()
	gs.Player.Experience = 95
	gs.Enemies["goblin"].Health = 1
	gs.Enemies["goblin"].ExperienceReward = 10

	dice := &scriptDice{ranges: []int{0}}
	c := NewCombatSystem(gs, dice)

	out := c.Attack("goblin")

	p := gs.Player
	if p.Level != 2 {
		t.Fatalf("expected level 2, got %d", p.Level)
	}
	if p.Experience != 5 {
		t.Errorf("expected 5 carry-over xp, got %d", p.Experience)
	}
	if p.ExperienceToNext != 150 {
		t.Errorf("expected threshold 150, got %d", p.ExperienceToNext)
	}
	if p.MaxHealth != 110 || p.Health != 110 {
		t.Errorf("expected full heal at 110, got %d/%d", p.Health, p.MaxHealth)
	}
	if p.Strength != 11 || p.Dexterity != 11 || p.Intelligence != 11 || p.Constitution != 11 {
		t.Errorf("expected all attributes 11, got %d/%d/%d/%d",
			p.Strength, p.Dexterity, p.Intelligence, p.Constitution)
	}
	if !strings.Contains(out, "Level up! You are now level 2!") {
		t.Errorf("missing level-up line in %q", out)
	}
}

func TestAttack_UnmatchedNameFallsBackToFirst(t *testing.T) {
	gs := combatState()
	dice := &scriptDice{ranges: []int{0, 0}, chances: []bool{false}}
	c := NewCombatSystem(gs, dice)

	c.Attack("dragon")

	if gs.Enemies["goblin"].Health == 30 {
		t.Error("expected first living enemy to take the hit")
	}
	if gs.Enemies["bandit"].Health != 50 {
		t.Error("bandit should be untouched")
	}
}

func TestAttack_NamedTarget(t *testing.T) {
	gs := combatState()
	dice := &scriptDice{ranges: []int{0, 0}, chances: []bool{false}}
	c := NewCombatSystem(gs, dice)

	c.Attack("bandit")

	if gs.Enemies["bandit"].Health == 50 {
		t.Error("expected bandit to take the hit")
	}
	if gs.Enemies["goblin"].Health != 30 {
		t.Error("goblin should be untouched")
	}
}

func TestFlee_NoEnemies(t *testing.T) {
	gs := combatState()
	gs.Enemies["goblin"].IsAlive = false
	gs.Enemies["bandit"].IsAlive = false

	c := NewCombatSystem(gs, &scriptDice{})
	if got := c.Flee(); got != "There are no enemies to flee from." {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestFlee_Success(t *testing.T) {
	gs := combatState()
	dice := &scriptDice{chances: []bool{true}}
	c := NewCombatSystem(gs, dice)

	out := c.Flee()

	if !strings.Contains(out, "You successfully flee from combat!") {
		t.Errorf("missing flee line in %q", out)
	}
	if gs.Player.Health != 100 {
		t.Errorf("successful flee should cost nothing, player at %d", gs.Player.Health)
	}
}

func TestFlee_FailureCostsHealthAndFreeAttack(t *testing.T) {
	gs := combatState()
	// Fail the flee, take 3 backlash, then goblin hits for 8+0.
	dice := &scriptDice{chances: []bool{false, false}, ranges: []int{3, 0}}
	c := NewCombatSystem(gs, dice)

	out := c.Flee()

	if !strings.Contains(out, "You fail to flee!") {
		t.Errorf("missing failure line in %q", out)
	}
	if !strings.Contains(out, "You take 3 damage while trying to flee!") {
		t.Errorf("missing backlash line in %q", out)
	}
	if gs.Player.Health != 89 {
		t.Errorf("expected 100-3-8=89 health, got %d", gs.Player.Health)
	}
}

func TestUseItem_PotionHealsAndEnemyGetsTurn(t *testing.T) {
	gs := combatState()
	gs.Player.Health = 50
	gs.Player.Inventory = []string{"health_potion"}

	dice := &scriptDice{ranges: []int{0}, chances: []bool{false}}
	c := NewCombatSystem(gs, dice)

	out := c.UseItem("potion")

	if !strings.Contains(out, "You use health potion and heal 25 health!") {
		t.Errorf("missing heal line in %q", out)
	}
	// 50+25=75, then goblin free attack for 8.
	if gs.Player.Health != 67 {
		t.Errorf("expected 67 health after heal and counter, got %d", gs.Player.Health)
	}
	if len(gs.Player.Inventory) != 0 {
		t.Error("potion should be consumed")
	}
}

func TestUseItem_HealClampsAtMax(t *testing.T) {
	gs := combatState()
	gs.Player.Health = 90
	gs.Player.Inventory = []string{"health_potion"}

	dice := &scriptDice{ranges: []int{0}, chances: []bool{false}}
	c := NewCombatSystem(gs, dice)

	out := c.UseItem("potion")

	if !strings.Contains(out, "heal 10 health!") {
		t.Errorf("expected clamped heal of 10 in %q", out)
	}
}

func TestUseItem_NonPotionRefused(t *testing.T) {
	gs := combatState()
	gs.Player.Inventory = []string{"torch"}

	c := NewCombatSystem(gs, &scriptDice{})
	out := c.UseItem("torch")

	if out != "You can't use torch in combat." {
		t.Errorf("unexpected output: %q", out)
	}
	if len(gs.Player.Inventory) != 1 {
		t.Error("refused item must not be consumed")
	}
	if gs.Player.Health != 100 {
		t.Error("refused use must not trigger a counter-attack")
	}
}

func TestUseItem_Missing(t *testing.T) {
	gs := combatState()
	c := NewCombatSystem(gs, &scriptDice{})

	if got := c.UseItem("elixir"); got != "You don't have a elixir." {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestEnemySpecialAbility_Poison(t *testing.T) {
	gs := combatState()
	// Goblin survives and rolls its 30% special.
	dice := &scriptDice{ranges: []int{0, 0}, chances: []bool{true}, choices: []int{0}}
	c := NewCombatSystem(gs, dice)

	out := c.Attack("goblin")

	if gs.Player.StatusEffects["poisoned"] != 3 {
		t.Errorf("expected 3 turns of poison, got %d", gs.Player.StatusEffects["poisoned"])
	}
	if !strings.Contains(out, "goblin poisons you!") {
		t.Errorf("missing poison line in %q", out)
	}
}

func TestEnemySpecialAbility_HealClamps(t *testing.T) {
	gs := combatState()
	gs.Enemies["bandit"].Health = 45

	dice := &scriptDice{ranges: []int{-2, 0}, chances: []bool{true}, choices: []int{0}}
	c := NewCombatSystem(gs, dice)

	out := c.Attack("bandit")

	// Attack for max(1, 3-5)=1, -2 variance floored to 1: 45-1=44.
	// Heal is maxHealth/4 = 12, clamped to 50.
	if gs.Enemies["bandit"].Health != 50 {
		t.Errorf("expected bandit clamped at 50, got %d", gs.Enemies["bandit"].Health)
	}
	if !strings.Contains(out, "bandit heals themselves for 12 health!") {
		t.Errorf("missing heal line in %q", out)
	}
}

func TestPlayerDefeat(t *testing.T) {
	gs := combatState()
	gs.Player.Health = 5

	// Goblin counter: max(1, 8-0)=8, +0 variance kills the player.
	dice := &scriptDice{ranges: []int{0, 0}}
	c := NewCombatSystem(gs, dice)

	out := c.Attack("goblin")

	if gs.Player.IsAlive {
		t.Error("player should be dead")
	}
	if gs.Player.Health != 0 {
		t.Errorf("health should clamp at 0, got %d", gs.Player.Health)
	}
	if !strings.Contains(out, "You have been defeated!") {
		t.Errorf("missing defeat line in %q", out)
	}
}

func TestCombatStatus(t *testing.T) {
	gs := combatState()
	gs.Enemies["goblin"].Health = 15

	c := NewCombatSystem(gs, &scriptDice{})
	out := c.Status()

	if !strings.Contains(out, "Your Health: 100/100") {
		t.Errorf("missing player line in %q", out)
	}
	if !strings.Contains(out, "goblin: 15/30 (50%)") {
		t.Errorf("missing goblin line in %q", out)
	}
	if !strings.Contains(out, "bandit: 50/50 (100%)") {
		t.Errorf("missing bandit line in %q", out)
	}
}
