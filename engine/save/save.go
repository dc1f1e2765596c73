// Package save implements JSON persistence of the full game state.
//
// A save file is one plain JSON document: the GameState fields at the top
// level plus a metadata block. Loading validates the required top-level
// keys before unmarshalling so a truncated or foreign file is rejected
// with a useful error.
package save

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kmoss/dungeoneer/types"
)

// Metadata describes a save file without loading the whole world.
type Metadata struct {
	SaveName    string `json:"save_name"`
	SaveDate    string `json:"save_date"`
	GameVersion string `json:"game_version"`
	PlayerName  string `json:"player_name"`
	PlayerLevel int    `json:"player_level"`
	CurrentRoom string `json:"current_room"`
	PlayTime    int    `json:"play_time"`
	Score       int    `json:"score"`
}

// Document is the on-disk save format: the game state plus metadata and
// the RNG bookkeeping needed to restore deterministic draws.
type Document struct {
	types.GameState
	Metadata    Metadata `json:"metadata"`
	RNGSeed     int64    `json:"rng_seed"`
	RNGPosition int64    `json:"rng_position"`
}

// requiredKeys must be present at the top level of any loadable save.
var requiredKeys = []string{"player", "rooms", "items", "npcs", "enemies", "quests"}

// System reads and writes save files under a directory.
type System struct {
	dir string
}

// NewSystem creates a save system rooted at dir, creating it if needed.
func NewSystem(dir string) (*System, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating save directory: %w", err)
	}
	return &System{dir: dir}, nil
}

func (s *System) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Save writes the game state under the given name. The metadata block is
// rebuilt on every save.
func (s *System) Save(gs *types.GameState, name string, rngSeed, rngPosition int64) error {
	doc := Document{
		GameState: *gs,
		Metadata: Metadata{
			SaveName:    name,
			SaveDate:    time.Now().Format(time.RFC3339),
			GameVersion: "1.0.0",
			PlayerName:  gs.Player.Name,
			PlayerLevel: gs.Player.Level,
			CurrentRoom: gs.Player.CurrentRoom,
			PlayTime:    gs.Player.Moves,
			Score:       gs.Player.Score,
		},
		RNGSeed:     rngSeed,
		RNGPosition: rngPosition,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing game state: %w", err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("writing save file: %w", err)
	}
	return nil
}

// Load reads a named save and returns the restored document.
func (s *System) Load(name string) (*Document, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("reading save file: %w", err)
	}
	return Decode(data)
}

// Decode validates and unmarshals save bytes.
func Decode(data []byte) (*Document, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("parsing save data: %w", err)
	}
	for _, key := range requiredKeys {
		if _, ok := keys[key]; !ok {
			return nil, fmt.Errorf("invalid save data: missing required field %q", key)
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing save data: %w", err)
	}
	normalize(&doc.GameState)
	return &doc, nil
}

// normalize ensures maps and slices are never nil after load so gameplay
// code can index and append without guards.
func normalize(gs *types.GameState) {
	if gs.Rooms == nil {
		gs.Rooms = map[string]*types.Room{}
	}
	if gs.Items == nil {
		gs.Items = map[string]*types.Item{}
	}
	if gs.NPCs == nil {
		gs.NPCs = map[string]*types.NPC{}
	}
	if gs.Enemies == nil {
		gs.Enemies = map[string]*types.Enemy{}
	}
	if gs.Quests == nil {
		gs.Quests = map[string]*types.Quest{}
	}
	if gs.Recipes == nil {
		gs.Recipes = map[string]*types.CraftingRecipe{}
	}
	if gs.Player.Inventory == nil {
		gs.Player.Inventory = []string{}
	}
	if gs.Player.KnownRecipes == nil {
		gs.Player.KnownRecipes = map[string]bool{}
	}
	if gs.Player.ActiveQuests == nil {
		gs.Player.ActiveQuests = []string{}
	}
	if gs.Player.CompletedQuests == nil {
		gs.Player.CompletedQuests = map[string]bool{}
	}
	if gs.Player.StatusEffects == nil {
		gs.Player.StatusEffects = map[string]int{}
	}
	for _, room := range gs.Rooms {
		if room.Exits == nil {
			room.Exits = map[types.Direction]types.Exit{}
		}
	}
}

// List returns the metadata of every readable save, newest first.
// Unreadable files are skipped.
func (s *System) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading save directory: %w", err)
	}

	var saves []Metadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var doc struct {
			Metadata Metadata `json:"metadata"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			continue
		}
		if doc.Metadata.SaveName == "" {
			doc.Metadata.SaveName = strings.TrimSuffix(entry.Name(), ".json")
		}
		saves = append(saves, doc.Metadata)
	}

	sort.Slice(saves, func(i, j int) bool {
		return saves[i].SaveDate > saves[j].SaveDate
	})
	return saves, nil
}

// Delete removes a named save file.
func (s *System) Delete(name string) error {
	if err := os.Remove(s.path(name)); err != nil {
		return fmt.Errorf("deleting save file: %w", err)
	}
	return nil
}

// Backup writes the state under a timestamped name.
func (s *System) Backup(gs *types.GameState, rngSeed, rngPosition int64) (string, error) {
	name := "backup_" + time.Now().Format("20060102_150405")
	if err := s.Save(gs, name, rngSeed, rngPosition); err != nil {
		return "", err
	}
	return name, nil
}
