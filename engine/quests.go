package engine

import (
	"fmt"
	"strings"

	"github.com/kmoss/dungeoneer/engine/resolve"
	"github.com/kmoss/dungeoneer/engine/state"
	"github.com/kmoss/dungeoneer/types"
)

// QuestSystem tracks acceptance, progress, and completion. Completion is
// lazy: nothing fires the moment a requirement is met, the pass after each
// command picks it up.
type QuestSystem struct {
	state *types.GameState
}

// NewQuestSystem creates a quest system over the shared game state.
func NewQuestSystem(gs *types.GameState) *QuestSystem {
	return &QuestSystem{state: gs}
}

// canAccept checks the acceptance gates: not already active, not completed
// (unless repeatable), and the quest giver present in the player's room.
func (q *QuestSystem) canAccept(quest *types.Quest) bool {
	for _, id := range q.state.Player.ActiveQuests {
		if id == quest.ID {
			return false
		}
	}
	if q.state.Player.CompletedQuests[quest.ID] && !quest.IsRepeatable {
		return false
	}
	giver, ok := q.state.NPCs[quest.QuestGiver]
	if !ok || giver.CurrentRoom != q.state.Player.CurrentRoom {
		return false
	}
	return true
}

// Accept takes on a quest by name substring.
func (q *QuestSystem) Accept(questName string) string {
	id, err := resolve.Quest(q.state, questName)
	if err != nil {
		return fmt.Sprintf("Quest '%s' not found.", questName)
	}
	quest := q.state.Quests[id]

	if !q.canAccept(quest) {
		for _, active := range q.state.Player.ActiveQuests {
			if active == quest.ID {
				return fmt.Sprintf("You have already accepted the %s quest.", quest.Name)
			}
		}
		if q.state.Player.CompletedQuests[quest.ID] && !quest.IsRepeatable {
			return fmt.Sprintf("You have already completed the %s quest.", quest.Name)
		}
		return fmt.Sprintf("You cannot accept the %s quest right now.", quest.Name)
	}

	q.state.Player.ActiveQuests = append(q.state.Player.ActiveQuests, quest.ID)
	quest.Status = types.QuestInProgress
	return fmt.Sprintf("You accept the quest: %s\n%s", quest.Name, quest.Description)
}

// CheckProgress completes any finished active quests and reports progress
// on the rest.
func (q *QuestSystem) CheckProgress() string {
	if len(q.state.Player.ActiveQuests) == 0 {
		return "You have no active quests."
	}

	var progress []string
	var completed []*types.Quest

	for _, id := range q.state.Player.ActiveQuests {
		quest, ok := q.state.Quests[id]
		if !ok {
			continue
		}
		if q.isComplete(quest) {
			completed = append(completed, quest)
		} else {
			progress = append(progress, q.questProgress(quest))
		}
	}

	for _, quest := range completed {
		q.complete(quest)
	}

	if len(progress) > 0 {
		return strings.Join(progress, "\n\n")
	}
	return "All active quests are complete!"
}

// CompleteFinished runs the completion pass without producing output. The
// engine calls this after every command.
func (q *QuestSystem) CompleteFinished() {
	var completed []*types.Quest
	for _, id := range q.state.Player.ActiveQuests {
		if quest, ok := q.state.Quests[id]; ok && q.isComplete(quest) {
			completed = append(completed, quest)
		}
	}
	for _, quest := range completed {
		q.complete(quest)
	}
}

func (q *QuestSystem) isComplete(quest *types.Quest) bool {
	for requirement, count := range quest.Requirements {
		if q.requirementProgress(requirement) < count {
			return false
		}
	}
	return true
}

// requirementProgress evaluates one requirement key. "<enemy-type>_defeated"
// is satisfied by any dead enemy of that type anywhere in the world;
// "cave_explored" by the deep cavern's visited flag. Everything else is an
// inventory name-substring count.
func (q *QuestSystem) requirementProgress(requirement string) int {
	if enemyType, ok := strings.CutSuffix(requirement, "_defeated"); ok {
		for _, enemy := range q.state.Enemies {
			if string(enemy.Type) == enemyType && !enemy.IsAlive {
				return 1
			}
		}
		return 0
	}

	if requirement == "cave_explored" {
		if cavern, ok := q.state.Rooms["deep_cavern"]; ok && cavern.IsVisited {
			return 1
		}
		return 0
	}

	return state.CountMaterial(q.state, requirement)
}

// isWorldPredicate reports whether a requirement key refers to world state
// rather than carried items. World predicates are never consumed.
func isWorldPredicate(requirement string) bool {
	return strings.HasSuffix(requirement, "_defeated") || requirement == "cave_explored"
}

// complete pays out a finished quest and consumes its item requirements.
func (q *QuestSystem) complete(quest *types.Quest) {
	q.state.Player.ActiveQuests = state.RemoveID(q.state.Player.ActiveQuests, quest.ID)
	quest.Status = types.QuestCompleted
	q.state.Player.CompletedQuests[quest.ID] = true

	q.state.Player.Experience += quest.ExperienceReward
	q.state.Player.Gold += quest.GoldReward

	for _, itemID := range sortedKeys(quest.Rewards) {
		if _, ok := q.state.Items[itemID]; !ok {
			continue
		}
		for i := 0; i < quest.Rewards[itemID]; i++ {
			q.state.Player.Inventory = append(q.state.Player.Inventory, itemID)
		}
	}

	for requirement, count := range quest.Requirements {
		if !isWorldPredicate(requirement) {
			state.ConsumeMaterial(q.state, requirement, count)
		}
	}
}

func (q *QuestSystem) questProgress(quest *types.Quest) string {
	lines := []string{fmt.Sprintf("Quest: %s", quest.Name)}
	for _, requirement := range sortedKeys(quest.Requirements) {
		current := q.requirementProgress(requirement)
		lines = append(lines, fmt.Sprintf("  %s: %d/%d", requirement, current, quest.Requirements[requirement]))
	}
	return joinLines(lines)
}

// ListQuests groups quests into active, available, and completed sections.
func (q *QuestSystem) ListQuests() string {
	var out []string

	var active []string
	for _, id := range q.state.Player.ActiveQuests {
		if quest, ok := q.state.Quests[id]; ok {
			active = append(active, fmt.Sprintf("ACTIVE: %s", quest.Name))
		}
	}
	if len(active) > 0 {
		out = append(out, "Active Quests:")
		out = append(out, active...)
		out = append(out, "")
	}

	var available []string
	for _, id := range sortedKeys(q.state.Quests) {
		quest := q.state.Quests[id]
		if q.canAccept(quest) {
			giver := q.state.NPCs[quest.QuestGiver]
			available = append(available, fmt.Sprintf("AVAILABLE: %s (from %s)", quest.Name, giver.Name))
		}
	}
	if len(available) > 0 {
		out = append(out, "Available Quests:")
		out = append(out, available...)
		out = append(out, "")
	}

	var completed []string
	for _, id := range sortedKeys(q.state.Player.CompletedQuests) {
		if quest, ok := q.state.Quests[id]; ok {
			completed = append(completed, fmt.Sprintf("COMPLETED: %s", quest.Name))
		}
	}
	if len(completed) > 0 {
		out = append(out, "Completed Quests:")
		out = append(out, completed...)
	}

	if len(out) == 0 {
		return "No quests available."
	}
	return strings.TrimRight(joinLines(out), "\n")
}

// QuestDetails reports a quest's description, status, and progress.
func (q *QuestSystem) QuestDetails(questName string) string {
	id, err := resolve.Quest(q.state, questName)
	if err != nil {
		return fmt.Sprintf("Quest '%s' not found.", questName)
	}
	quest := q.state.Quests[id]

	details := []string{
		fmt.Sprintf("Quest: %s", quest.Name),
		fmt.Sprintf("Description: %s", quest.Description),
		fmt.Sprintf("Status: %s", quest.Status),
	}

	if len(quest.Requirements) > 0 {
		details = append(details, "Requirements:")
		for _, requirement := range sortedKeys(quest.Requirements) {
			current := q.requirementProgress(requirement)
			details = append(details, fmt.Sprintf("  %s: %d/%d", requirement, current, quest.Requirements[requirement]))
		}
	}

	if len(quest.Rewards) > 0 {
		details = append(details, "Rewards:")
		for _, itemID := range sortedKeys(quest.Rewards) {
			name := itemID
			if item, ok := q.state.Items[itemID]; ok {
				name = item.Name
			}
			details = append(details, fmt.Sprintf("  %s: %d", name, quest.Rewards[itemID]))
		}
	}

	if quest.ExperienceReward > 0 {
		details = append(details, fmt.Sprintf("Experience Reward: %d", quest.ExperienceReward))
	}
	if quest.GoldReward > 0 {
		details = append(details, fmt.Sprintf("Gold Reward: %d", quest.GoldReward))
	}
	if quest.IsRepeatable {
		details = append(details, "This quest can be repeated.")
	}

	return joinLines(details)
}
