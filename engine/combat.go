package engine

import (
	"fmt"

	"github.com/kmoss/dungeoneer/engine/state"
	"github.com/kmoss/dungeoneer/types"
)

// CombatSystem resolves attacks, flees, and in-combat item use against the
// living enemies in the player's room. Each command starts a fresh combat
// log and returns the joined lines.
type CombatSystem struct {
	state *types.GameState
	dice  Dice
}

// NewCombatSystem creates a combat system over the shared game state.
func NewCombatSystem(gs *types.GameState, dice Dice) *CombatSystem {
	return &CombatSystem{state: gs, dice: dice}
}

// Attack strikes the named enemy, or the first living enemy in the room
// when the name is empty or matches nothing. A surviving enemy
// counter-attacks in the same turn.
func (c *CombatSystem) Attack(targetName string) string {
	c.state.CombatLog = nil
	room := state.CurrentRoom(c.state)

	var enemy *types.Enemy
	if targetName != "" {
		for _, id := range room.Enemies {
			e, ok := c.state.Enemies[id]
			if ok && e.IsAlive && state.NameContains(e.Name, targetName) {
				enemy = e
				break
			}
		}
	}
	if enemy == nil {
		for _, id := range room.Enemies {
			if e, ok := c.state.Enemies[id]; ok && e.IsAlive {
				enemy = e
				break
			}
		}
	}
	if enemy == nil {
		return "There are no enemies to attack."
	}

	baseDamage := c.state.Player.Strength / 3
	if baseDamage < 1 {
		baseDamage = 1
	}
	totalDamage := baseDamage + c.weaponDamage()
	actual := c.calculateDamage(totalDamage, enemy.Armor)
	enemy.Health -= actual

	weaponName := "your fists"
	if id := c.state.Player.Equipment.Weapon; id != "" {
		if it, ok := c.state.Items[id]; ok {
			weaponName = it.Name
		}
	}
	c.log("You attack %s with %s for %d damage!", enemy.Name, weaponName, actual)

	if enemy.Health <= 0 {
		enemy.Health = 0
		enemy.IsAlive = false
		c.log("You have defeated %s!", enemy.Name)

		c.state.Player.Experience += enemy.ExperienceReward
		c.state.Player.Gold += enemy.GoldReward
		c.log("You gain %d experience and %d gold!", enemy.ExperienceReward, enemy.GoldReward)

		if c.state.Player.Experience >= c.state.Player.ExperienceToNext {
			c.levelUp()
		}

		if len(enemy.Inventory) > 0 {
			room.Items = append(room.Items, enemy.Inventory...)
			enemy.Inventory = nil
			c.log("%s drops some items!", enemy.Name)
		}
		return c.joined()
	}

	return c.enemyTurn(enemy)
}

// Flee attempts to escape. The chance is min(0.8, dexterity/20); failure
// costs 1-5 health and grants the first living enemy a free attack.
func (c *CombatSystem) Flee() string {
	c.state.CombatLog = nil
	room := state.CurrentRoom(c.state)

	alive := state.AliveEnemiesInRoom(c.state, room.ID)
	if len(alive) == 0 {
		return "There are no enemies to flee from."
	}

	fleeChance := float64(c.state.Player.Dexterity) / 20.0
	if fleeChance > 0.8 {
		fleeChance = 0.8
	}

	if c.dice.Chance(fleeChance) {
		c.log("You successfully flee from combat!")
		return c.joined()
	}

	c.log("You fail to flee!")
	damage := c.dice.Range(1, 5)
	c.state.Player.Health -= damage
	c.log("You take %d damage while trying to flee!", damage)

	if c.state.Player.Health <= 0 {
		c.state.Player.Health = 0
		c.state.Player.IsAlive = false
		c.log("You have been defeated!")
		return c.joined()
	}

	return c.enemyTurn(alive[0])
}

// UseItem drinks a healing potion mid-combat. Anything else is refused.
// Using an item always gives the enemy a free turn.
func (c *CombatSystem) UseItem(itemName string) string {
	c.state.CombatLog = nil

	var item *types.Item
	var itemID string
	for _, id := range c.state.Player.Inventory {
		if it, ok := c.state.Items[id]; ok && state.ItemMatches(it, itemName) {
			item = it
			itemID = id
			break
		}
	}
	if item == nil {
		return fmt.Sprintf("You don't have a %s.", itemName)
	}

	if item.Type != types.ItemPotion || item.HealingValue <= 0 {
		return fmt.Sprintf("You can't use %s in combat.", item.Name)
	}

	oldHealth := c.state.Player.Health
	c.state.Player.Health += item.HealingValue
	if c.state.Player.Health > c.state.Player.MaxHealth {
		c.state.Player.Health = c.state.Player.MaxHealth
	}
	healed := c.state.Player.Health - oldHealth

	c.state.Player.Inventory = state.RemoveID(c.state.Player.Inventory, itemID)
	c.log("You use %s and heal %d health!", item.Name, healed)

	room := state.CurrentRoom(c.state)
	if alive := state.AliveEnemiesInRoom(c.state, room.ID); len(alive) > 0 {
		return c.enemyTurn(alive[0])
	}
	return c.joined()
}

// Status reports player and enemy health for the current room.
func (c *CombatSystem) Status() string {
	room := state.CurrentRoom(c.state)
	alive := state.AliveEnemiesInRoom(c.state, room.ID)
	if len(alive) == 0 {
		return "No enemies present."
	}

	lines := []string{fmt.Sprintf("Your Health: %d/%d", c.state.Player.Health, c.state.Player.MaxHealth)}
	for _, e := range alive {
		percent := e.Health * 100 / e.MaxHealth
		lines = append(lines, fmt.Sprintf("%s: %d/%d (%d%%)", e.Name, e.Health, e.MaxHealth, percent))
	}
	return joinLines(lines)
}

// enemyTurn applies one enemy attack against the player, then rolls the 30%
// special-ability chance if the player survives.
func (c *CombatSystem) enemyTurn(enemy *types.Enemy) string {
	damage := c.calculateDamage(enemy.Damage, c.playerArmor())
	c.state.Player.Health -= damage
	c.log("%s attacks you for %d damage!", enemy.Name, damage)

	if c.state.Player.Health <= 0 {
		c.state.Player.Health = 0
		c.state.Player.IsAlive = false
		c.log("You have been defeated!")
		return c.joined()
	}

	if len(enemy.SpecialAbilities) > 0 && c.dice.Chance(0.3) {
		if line := c.useSpecialAbility(enemy); line != "" {
			c.state.CombatLog = append(c.state.CombatLog, line)
		}
	}

	return c.joined()
}

// calculateDamage applies defense then a -2..+2 variance, flooring at 1
// both before and after the variance.
func (c *CombatSystem) calculateDamage(attackDamage, defense int) int {
	damage := attackDamage - defense
	if damage < 1 {
		damage = 1
	}
	damage += c.dice.Range(-2, 2)
	if damage < 1 {
		damage = 1
	}
	return damage
}

// playerArmor sums the armor value of the armor, helmet, boots, and gloves
// slots. The weapon, ring, and amulet slots never contribute.
func (c *CombatSystem) playerArmor() int {
	total := 0
	for _, slot := range []string{"armor", "helmet", "boots", "gloves"} {
		id, _ := state.SlotGet(&c.state.Player.Equipment, slot)
		if id == "" {
			continue
		}
		if it, ok := c.state.Items[id]; ok {
			total += it.ArmorValue
		}
	}
	return total
}

func (c *CombatSystem) weaponDamage() int {
	if id := c.state.Player.Equipment.Weapon; id != "" {
		if it, ok := c.state.Items[id]; ok {
			return it.Damage
		}
	}
	return 0
}

// levelUp advances the player one level. The threshold check is never
// looped; huge experience gains still grant a single level per event.
func (c *CombatSystem) levelUp() {
	p := &c.state.Player
	p.Level++
	p.Experience -= p.ExperienceToNext
	p.ExperienceToNext = p.ExperienceToNext * 3 / 2

	p.MaxHealth += 10
	p.Health = p.MaxHealth
	p.Strength++
	p.Dexterity++
	p.Intelligence++
	p.Constitution++

	c.log("Level up! You are now level %d!", p.Level)
	c.log("Your stats have increased!")
}

// useSpecialAbility picks one of the enemy's abilities at random and
// applies it. Unknown ability names do nothing.
func (c *CombatSystem) useSpecialAbility(enemy *types.Enemy) string {
	ability := enemy.SpecialAbilities[c.dice.Choice(len(enemy.SpecialAbilities))]

	switch ability {
	case "poison":
		c.state.Player.StatusEffects["poisoned"] = 3
		return fmt.Sprintf("%s poisons you!", enemy.Name)
	case "stun":
		c.state.Player.StatusEffects["stunned"] = 1
		return fmt.Sprintf("%s stuns you!", enemy.Name)
	case "heal":
		healAmount := enemy.MaxHealth / 4
		enemy.Health += healAmount
		if enemy.Health > enemy.MaxHealth {
			enemy.Health = enemy.MaxHealth
		}
		return fmt.Sprintf("%s heals themselves for %d health!", enemy.Name, healAmount)
	}
	return ""
}

func (c *CombatSystem) log(format string, args ...any) {
	c.state.CombatLog = append(c.state.CombatLog, fmt.Sprintf(format, args...))
}

func (c *CombatSystem) joined() string {
	return joinLines(c.state.CombatLog)
}
