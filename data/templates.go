package data

import (
	"fmt"
	"image/color"
	"strconv"
)

// ItemDef defines a template for creating items
type ItemDef struct {
	ID          string `yaml:"id"`          // Unique identifier for the item type
	Name        string `yaml:"name"`        // Display name
	Description string `yaml:"description"` // Item description
	Kind        string `yaml:"kind"`        // weapon, armor, consumable, trinket
	Slot        string `yaml:"slot"`        // Equipment slot for wearables

	Damage  float64 `yaml:"damage"`
	Armor   float64 `yaml:"armor"`
	Bonuses Bonuses `yaml:"bonuses"`

	// Consumable effects
	Heal           float64 `yaml:"heal"`
	RestoreMana    float64 `yaml:"restore_mana"`
	RestoreStamina float64 `yaml:"restore_stamina"`

	Stackable bool   `yaml:"stackable"`
	MaxStack  int    `yaml:"max_stack"`
	Visual    string `yaml:"visual"` // VisualDef ID
	Value     int    `yaml:"value"`
}

// Bonuses are attribute modifiers granted while an item is equipped
type Bonuses struct {
	Strength  int `yaml:"strength"`
	Agility   int `yaml:"agility"`
	Intellect int `yaml:"intellect"`
	Vitality  int `yaml:"vitality"`
}

// IsZero reports whether the item grants no bonus at all
func (b Bonuses) IsZero() bool {
	return b == Bonuses{}
}

// VisualDef describes how an entity is drawn
type VisualDef struct {
	ID     string  `yaml:"id"`
	Color  string  `yaml:"color"` // Color in hex format (e.g. "#00FF00")
	Scale  float64 `yaml:"scale"`
	Height float64 `yaml:"height"`
}

// RGBA returns the parsed color of the visual
func (v *VisualDef) RGBA() color.RGBA {
	return ParseHexColor(v.Color)
}

// BodyPartDef is a hit zone spawned as a child of an enemy
type BodyPartDef struct {
	Name       string  `yaml:"name"`
	Multiplier float64 `yaml:"multiplier"`
	Height     float64 `yaml:"height"`
}

// EnemyDef represents a template for creating enemies
type EnemyDef struct {
	// Basic info
	ID   string `yaml:"id"`
	Name string `yaml:"name"`

	// Stats
	Health float64 `yaml:"health"`
	Damage float64 `yaml:"damage"`
	Armor  float64 `yaml:"armor"`
	XP     int     `yaml:"xp"` // XP awarded when killed

	// Behavior
	Speed           float64 `yaml:"speed"`
	SightRange      float64 `yaml:"sight_range"`
	AttackRange     float64 `yaml:"attack_range"`
	Attack          string  `yaml:"attack"` // melee or ranged
	Cooldown        float64 `yaml:"cooldown"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	CanFlee         bool    `yaml:"can_flee"`

	Visual    string        `yaml:"visual"`
	Loot      string        `yaml:"loot"` // LootTableDef ID
	BodyParts []BodyPartDef `yaml:"body_parts"`

	SpawnWeight int `yaml:"spawn_weight"` // Relative chance of spawning (higher = more common)
	MinDepth    int `yaml:"min_depth"`
}

// LootEntry is one weighted row of a loot table
type LootEntry struct {
	Item   string `yaml:"item"`
	Weight int    `yaml:"weight"`
	Min    int    `yaml:"min"`
	Max    int    `yaml:"max"`
}

// LootTableDef is a weighted list of drops
type LootTableDef struct {
	ID      string      `yaml:"id"`
	Rolls   int         `yaml:"rolls"`
	Entries []LootEntry `yaml:"entries"`
}

// TotalWeight sums the weights of all entries
func (t *LootTableDef) TotalWeight() int {
	total := 0
	for _, e := range t.Entries {
		total += e.Weight
	}
	return total
}

// AudioCueDef describes one sound cue; File wins over a synthesized tone
type AudioCueDef struct {
	File     string  `yaml:"file"`
	Freq     float64 `yaml:"freq"`
	Duration float64 `yaml:"duration"`
	Volume   float64 `yaml:"volume"`
}

// MusicDef is the looping background track played during a run. File wins
// over the synthesized melody built from Notes.
type MusicDef struct {
	File       string    `yaml:"file"`
	Notes      []float64 `yaml:"notes"`       // Frequencies in Hz, 0 for a rest
	NoteLength float64   `yaml:"note_length"` // Seconds per note
	Volume     float64   `yaml:"volume"`
}

// AudioDef maps cue names to their sounds and holds the music track
type AudioDef struct {
	Cues  map[string]AudioCueDef `yaml:"cues"`
	Music *MusicDef              `yaml:"music"`
}

// ParseHexColor converts a #rrggbb string to a color.RGBA. Malformed input
// gives white; catalogs reject it at load time.
func ParseHexColor(hex string) color.RGBA {
	c, err := parseHex(hex)
	if err != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	return c
}

// parseHex is the strict form of ParseHexColor
func parseHex(hex string) (color.RGBA, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", hex)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", hex)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
