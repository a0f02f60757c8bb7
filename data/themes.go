package data

import (
	"image/color"
	"sort"
)

// ThemeDef defines how the levels of a depth range look and how crowded they are
type ThemeDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	MinDepth    int    `yaml:"min_depth"` // First depth the theme applies to
	MaxDepth    int    `yaml:"max_depth"` // Last depth, 0 for no limit

	Wall    string `yaml:"wall"`    // Hex colors, empty keeps the renderer default
	Floor   string `yaml:"floor"`
	Ceiling string `yaml:"ceiling"`

	DensityFactor float64 `yaml:"density_factor"` // Enemy density (1.0 = standard)
	LootChance    float64 `yaml:"loot_chance"`    // Chance of a floor drop per room
}

// Covers reports whether the theme applies at depth
func (t *ThemeDef) Covers(depth int) bool {
	return depth >= t.MinDepth && (t.MaxDepth == 0 || depth <= t.MaxDepth)
}

// Colors returns the parsed wall, floor and ceiling colors. ok is false for
// any that are unset.
func (t *ThemeDef) Colors() (wall, floor, ceiling color.RGBA, ok [3]bool) {
	for i, s := range []string{t.Wall, t.Floor, t.Ceiling} {
		if s == "" {
			continue
		}
		c := ParseHexColor(s)
		ok[i] = true
		switch i {
		case 0:
			wall = c
		case 1:
			floor = c
		case 2:
			ceiling = c
		}
	}
	return wall, floor, ceiling, ok
}

// ThemeForDepth returns the theme covering depth with the highest MinDepth.
// Ties go to the lower ID. nil when no theme covers depth.
func (c *Catalog) ThemeForDepth(depth int) *ThemeDef {
	var matches []*ThemeDef
	for _, t := range c.Themes {
		if t.Covers(depth) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].MinDepth != matches[j].MinDepth {
			return matches[i].MinDepth > matches[j].MinDepth
		}
		return matches[i].ID < matches[j].ID
	})
	return matches[0]
}
