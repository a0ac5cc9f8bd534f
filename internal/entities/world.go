package entities

// RealmTier is the static description of one rung of the realm ladder
type RealmTier struct {
	ID                  string     `yaml:"id"`
	Name                string     `yaml:"name"`
	Levels              int        `yaml:"levels"`
	CultivationPerLevel int64      `yaml:"cultivation_per_level"`
	BreakthroughCost    int64      `yaml:"breakthrough_cost"`
	SuccessRate         float64    `yaml:"success_rate"`
	Bonus               Attributes `yaml:"bonus"`
}

// Range is an inclusive integer interval
type Range struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

// DropTable describes what a monster yields when defeated
type DropTable struct {
	Currency      Range   `yaml:"currency"`
	Experience    Range   `yaml:"experience"`
	Comprehension *Range  `yaml:"comprehension,omitempty"`
	EnhanceStones *Range  `yaml:"enhance_stones,omitempty"`
	EquipmentRate float64 `yaml:"equipment_rate"`
	SkillRate     float64 `yaml:"skill_rate"`
}

// Monster is a static opponent definition
type Monster struct {
	ID           string     `yaml:"id"`
	Name         string     `yaml:"name"`
	Map          string     `yaml:"map"`
	Level        int        `yaml:"level"`
	RequireTier  int        `yaml:"require_tier"`
	RequireLevel int        `yaml:"require_level"`
	Boss         bool       `yaml:"boss"`
	Attributes   Attributes `yaml:"attributes"`
	Drops        DropTable  `yaml:"drops"`
}

// Map is a hunting ground. Monsters lists monster IDs.
type Map struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	RequireTier  int      `yaml:"require_tier"`
	RequireLevel int      `yaml:"require_level"`
	Monsters     []string `yaml:"monsters"`
}

// Unlocked reports whether a player at tier/level may hunt on m
func (m Map) Unlocked(tier, level int) bool {
	if tier != m.RequireTier {
		return tier > m.RequireTier
	}
	return level >= m.RequireLevel
}
