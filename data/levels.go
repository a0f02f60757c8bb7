package data

// LevelTable lists the total XP needed to reach each level. Thresholds[0] is
// level 1 and must be 0; the last entry is the level cap.
type LevelTable struct {
	Thresholds []int `yaml:"thresholds"`
}

// MaxLevel returns the level cap
func (t *LevelTable) MaxLevel() int {
	if len(t.Thresholds) == 0 {
		return 1
	}
	return len(t.Thresholds)
}

// LevelFor returns the level reached with xp total experience
func (t *LevelTable) LevelFor(xp int) int {
	level := 1
	for i, need := range t.Thresholds {
		if xp >= need {
			level = i + 1
		} else {
			break
		}
	}
	return level
}

// NextThreshold returns the XP total required for the level after level.
// ok is false when level is at the cap.
func (t *LevelTable) NextThreshold(level int) (xp int, ok bool) {
	if level < 1 || level >= len(t.Thresholds) {
		return 0, false
	}
	return t.Thresholds[level], true
}

// Progress returns how far xp is between the current and next level, 0..1
func (t *LevelTable) Progress(xp int) float64 {
	level := t.LevelFor(xp)
	next, ok := t.NextThreshold(level)
	if !ok {
		return 1
	}
	base := t.Thresholds[level-1]
	if next <= base {
		return 1
	}
	return float64(xp-base) / float64(next-base)
}
