package data

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"

	"ebiten-arpg/components"

	"gopkg.in/yaml.v3"
)

// assetFile is the shape of one YAML definition file. Every section is
// optional so definitions can be split over any number of files.
type assetFile struct {
	Items      []ItemDef      `yaml:"items"`
	Visuals    []VisualDef    `yaml:"visuals"`
	Enemies    []EnemyDef     `yaml:"enemies"`
	LootTables []LootTableDef `yaml:"loot_tables"`
	Themes     []ThemeDef     `yaml:"themes"`
	Levels     *LevelTable    `yaml:"levels"`
	Audio      *AudioDef      `yaml:"audio"`
}

// Catalog manages all asset definitions
type Catalog struct {
	Items      map[string]*ItemDef
	Visuals    map[string]*VisualDef
	Enemies    map[string]*EnemyDef
	LootTables map[string]*LootTableDef
	Themes     map[string]*ThemeDef
	Levels     LevelTable
	Audio      AudioDef

	enemyOrder []string
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		Items:      make(map[string]*ItemDef),
		Visuals:    make(map[string]*VisualDef),
		Enemies:    make(map[string]*EnemyDef),
		LootTables: make(map[string]*LootTableDef),
		Themes:     make(map[string]*ThemeDef),
		Audio:      AudioDef{Cues: make(map[string]AudioCueDef)},
	}
}

// LoadCatalogDir loads all YAML definition files from a directory on disk
func LoadCatalogDir(dir string) (*Catalog, error) {
	return LoadCatalog(os.DirFS(dir), ".")
}

// LoadCatalog loads all YAML definition files in dir of fsys and validates them
func LoadCatalog(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Kind: ErrKindIO, Err: err}
	}

	c := NewCatalog()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := path.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		fullPath := path.Join(dir, entry.Name())
		raw, err := fs.ReadFile(fsys, fullPath)
		if err != nil {
			return nil, &LoadError{Path: fullPath, Kind: ErrKindIO, Err: err}
		}
		if err := c.LoadBytes(fullPath, raw); err != nil {
			return nil, err
		}
	}

	if err := c.Validate(); err != nil {
		return nil, &LoadError{Path: dir, Kind: ErrKindInvalid, Err: err}
	}
	return c, nil
}

// LoadBytes decodes one definition file and merges it into the catalog.
// Duplicate IDs are rejected.
func (c *Catalog) LoadBytes(name string, raw []byte) error {
	var file assetFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return &LoadError{Path: name, Kind: ErrKindDecode, Err: err}
	}

	dup := func(kind, id string) error {
		return &LoadError{Path: name, Kind: ErrKindInvalid, Err: fmt.Errorf("duplicate %s id %q", kind, id)}
	}

	for i := range file.Items {
		def := file.Items[i]
		if _, exists := c.Items[def.ID]; exists {
			return dup("item", def.ID)
		}
		c.Items[def.ID] = &def
	}
	for i := range file.Visuals {
		def := file.Visuals[i]
		if _, exists := c.Visuals[def.ID]; exists {
			return dup("visual", def.ID)
		}
		c.Visuals[def.ID] = &def
	}
	for i := range file.Enemies {
		def := file.Enemies[i]
		if _, exists := c.Enemies[def.ID]; exists {
			return dup("enemy", def.ID)
		}
		c.Enemies[def.ID] = &def
		c.enemyOrder = append(c.enemyOrder, def.ID)
	}
	for i := range file.LootTables {
		def := file.LootTables[i]
		if _, exists := c.LootTables[def.ID]; exists {
			return dup("loot table", def.ID)
		}
		c.LootTables[def.ID] = &def
	}
	for i := range file.Themes {
		def := file.Themes[i]
		if _, exists := c.Themes[def.ID]; exists {
			return dup("theme", def.ID)
		}
		c.Themes[def.ID] = &def
	}
	if file.Levels != nil {
		c.Levels = *file.Levels
	}
	if file.Audio != nil {
		for name, cue := range file.Audio.Cues {
			c.Audio.Cues[name] = cue
		}
		if file.Audio.Music != nil {
			c.Audio.Music = file.Audio.Music
		}
	}
	return nil
}

// Validate checks ids and cross references between definitions
func (c *Catalog) Validate() error {
	var problems []error
	bad := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	for id, item := range c.Items {
		if id == "" {
			bad("item with empty id")
			continue
		}
		if item.Name == "" {
			bad("item %q missing name", id)
		}
		switch item.Kind {
		case "weapon", "armor", "trinket":
			if item.Slot == "" {
				bad("item %q of kind %s missing slot", id, item.Kind)
			} else if _, ok := components.ParseSlot(item.Slot); !ok {
				bad("item %q has unknown slot %q", id, item.Slot)
			}
		case "consumable":
		default:
			bad("item %q has unknown kind %q", id, item.Kind)
		}
		if item.Stackable && item.MaxStack < 1 {
			bad("item %q is stackable without max_stack", id)
		}
		if item.Visual != "" {
			if _, ok := c.Visuals[item.Visual]; !ok {
				bad("item %q references unknown visual %q", id, item.Visual)
			}
		}
	}

	for id, visual := range c.Visuals {
		if id == "" {
			bad("visual with empty id")
		}
		if visual.Color != "" {
			if _, err := parseHex(visual.Color); err != nil {
				bad("visual %q: %v", id, err)
			}
		}
	}

	for id, enemy := range c.Enemies {
		if id == "" {
			bad("enemy with empty id")
			continue
		}
		if enemy.Health <= 0 {
			bad("enemy %q must have positive health", id)
		}
		if enemy.Attack != "melee" && enemy.Attack != "ranged" {
			bad("enemy %q has unknown attack %q", id, enemy.Attack)
		}
		if enemy.Visual != "" {
			if _, ok := c.Visuals[enemy.Visual]; !ok {
				bad("enemy %q references unknown visual %q", id, enemy.Visual)
			}
		}
		if enemy.Loot != "" {
			if _, ok := c.LootTables[enemy.Loot]; !ok {
				bad("enemy %q references unknown loot table %q", id, enemy.Loot)
			}
		}
	}

	for id, table := range c.LootTables {
		if id == "" {
			bad("loot table with empty id")
			continue
		}
		for _, entry := range table.Entries {
			if _, ok := c.Items[entry.Item]; !ok {
				bad("loot table %q references unknown item %q", id, entry.Item)
			}
			if entry.Weight < 0 || entry.Max < entry.Min {
				bad("loot table %q entry %q has invalid weight or range", id, entry.Item)
			}
		}
	}

	for id, theme := range c.Themes {
		if id == "" {
			bad("theme with empty id")
			continue
		}
		if theme.MinDepth < 1 {
			bad("theme %q must start at depth 1 or deeper", id)
		}
		if theme.MaxDepth != 0 && theme.MaxDepth < theme.MinDepth {
			bad("theme %q ends before it starts", id)
		}
		if theme.DensityFactor < 0 || theme.LootChance < 0 || theme.LootChance > 1 {
			bad("theme %q has invalid density or loot chance", id)
		}
		for _, hex := range []string{theme.Wall, theme.Floor, theme.Ceiling} {
			if hex == "" {
				continue
			}
			if _, err := parseHex(hex); err != nil {
				bad("theme %q: %v", id, err)
			}
		}
	}

	if m := c.Audio.Music; m != nil {
		if m.File == "" && len(m.Notes) == 0 {
			bad("music needs a file or notes")
		}
		if m.File == "" && m.NoteLength <= 0 {
			bad("music notes need a positive note_length")
		}
	}

	for i, need := range c.Levels.Thresholds {
		if i == 0 && need != 0 {
			bad("level thresholds must start at 0")
		}
		if i > 0 && need <= c.Levels.Thresholds[i-1] {
			bad("level threshold %d is not ascending", i+1)
		}
	}

	// Map iteration is random; keep the report stable
	sort.Slice(problems, func(i, j int) bool { return problems[i].Error() < problems[j].Error() })
	return errors.Join(problems...)
}

// GetItem returns an item definition by ID
func (c *Catalog) GetItem(id string) (*ItemDef, bool) {
	def, ok := c.Items[id]
	return def, ok
}

// GetEnemy returns an enemy definition by ID
func (c *Catalog) GetEnemy(id string) (*EnemyDef, bool) {
	def, ok := c.Enemies[id]
	return def, ok
}

// GetVisual returns a visual definition by ID
func (c *Catalog) GetVisual(id string) (*VisualDef, bool) {
	def, ok := c.Visuals[id]
	return def, ok
}

// GetLootTable returns a loot table by ID
func (c *Catalog) GetLootTable(id string) (*LootTableDef, bool) {
	def, ok := c.LootTables[id]
	return def, ok
}

// EnemiesForDepth returns enemies allowed at depth in load order
func (c *Catalog) EnemiesForDepth(depth int) []*EnemyDef {
	var out []*EnemyDef
	for _, id := range c.enemyOrder {
		def := c.Enemies[id]
		if def.MinDepth <= depth && def.SpawnWeight > 0 {
			out = append(out, def)
		}
	}
	return out
}
