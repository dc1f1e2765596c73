package aiplayer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/kmoss/dungeoneer/engine"
)

// commandModel is the narrow slice of the genai model the LLM player
// needs. *genai.GenerativeModel satisfies it.
type commandModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// LLMPlayer asks a Gemini model for the next command each turn. The
// model sees the engine's response to its previous command plus a
// compact status line; the engine stays the single source of truth.
type LLMPlayer struct {
	MaxTurns int

	model  commandModel
	client *genai.Client
	log    []string
}

// NewLLMPlayer creates a Gemini-backed player. Close must be called
// when done.
func NewLLMPlayer(ctx context.Context, apiKey, modelName string, maxTurns int) (*LLMPlayer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing API key: set GEMINI_API_KEY")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &LLMPlayer{
		MaxTurns: maxTurns,
		model:    client.GenerativeModel(modelName),
		client:   client,
	}, nil
}

// Close releases the underlying API client.
func (p *LLMPlayer) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// Log returns the commands and responses of the session so far.
func (p *LLMPlayer) Log() []string {
	return p.log
}

const systemPrompt = `You are playing a text adventure game. Your goal is to find and take the treasure chest.

Available commands: look, examine <thing>, take <item>, drop <item>, use <item>,
north/south/east/west/up/down, attack <enemy>, flee, equip <item>, talk <npc>,
shop, buy <item>, sell <item>, craft <recipe>, recipes, quest, accept <quest>,
progress, inventory, status.

Respond with EXACTLY ONE command and nothing else.`

// Play drives the engine with model-chosen commands until the turn
// budget is spent, the game ends, or the model fails.
func (p *LLMPlayer) Play(ctx context.Context, eng *engine.Engine) (Stats, error) {
	lastOutput := eng.Step("look")
	p.log = append(p.log, lastOutput)

	turns := 0
	for turns < p.MaxTurns && !eng.State.IsGameOver && eng.State.Player.IsAlive {
		command, err := p.nextCommand(ctx, eng, lastOutput)
		if err != nil {
			return p.statsFor(eng, turns), fmt.Errorf("turn %d: %w", turns+1, err)
		}

		lastOutput = eng.Step(command)
		p.log = append(p.log, "> "+command, lastOutput)
		turns++
	}
	return p.statsFor(eng, turns), nil
}

func (p *LLMPlayer) nextCommand(ctx context.Context, eng *engine.Engine, lastOutput string) (string, error) {
	player := eng.State.Player
	prompt := fmt.Sprintf(`%s

Status: level %d, %d/%d HP, %d gold, carrying %d items.

Game output:
%s

Your next command:`,
		systemPrompt,
		player.Level, player.Health, player.MaxHealth, player.Gold, len(player.Inventory),
		lastOutput,
	)

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generating command: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}

	command := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	// Models sometimes wrap the command in quotes or add a trailing period.
	command = strings.Trim(command, "\"'` .")
	if command == "" {
		return "look", nil
	}
	if idx := strings.IndexByte(command, '\n'); idx >= 0 {
		command = command[:idx]
	}
	return command, nil
}

func (p *LLMPlayer) statsFor(eng *engine.Engine, turns int) Stats {
	gs := eng.State
	visited := 0
	for _, room := range gs.Rooms {
		if room.IsVisited {
			visited++
		}
	}
	return Stats{
		Strategy:        "llm",
		Turns:           turns,
		RoomsVisited:    visited,
		FinalLevel:      gs.Player.Level,
		FinalHealth:     gs.Player.Health,
		FinalGold:       gs.Player.Gold,
		InventorySize:   len(gs.Player.Inventory),
		QuestsActive:    len(gs.Player.ActiveQuests),
		QuestsCompleted: len(gs.Player.CompletedQuests),
		GameOver:        gs.IsGameOver,
		Victory:         gs.Victory,
		PlayerAlive:     gs.Player.IsAlive,
	}
}
