// Package config loads the static game data and the runtime settings.
//
// Game data (realms, maps, monsters, loot tables and tuning constants) is
// YAML. A default copy is embedded in the binary; a file on disk may replace
// it. Runtime settings come from the environment.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/cultivation-sim/internal/entities"
	"github.com/KirkDiggler/cultivation-sim/internal/errors"
)

//go:embed data/game.yaml
var defaultGameData []byte

// FloatRange is an interval of floats, min inclusive
type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// RarityBand is the ordered set of rarities a map tier can drop, lowest
// first. Members need not be adjacent.
type RarityBand []entities.Rarity

func (b RarityBand) valid() bool {
	if len(b) == 0 {
		return false
	}
	for i, r := range b {
		if r < 0 || int(r) >= entities.RarityCount {
			return false
		}
		if i > 0 && r <= b[i-1] {
			return false
		}
	}
	return true
}

// Contains reports whether r is a member of the band
func (b RarityBand) Contains(r entities.Rarity) bool {
	for _, m := range b {
		if m == r {
			return true
		}
	}
	return false
}

// SkillNames are the per-type skill name tables, indexed by rarity
type SkillNames struct {
	Active  []string `yaml:"active"`
	Passive []string `yaml:"passive"`
}

// Loot tunes the loot generator
type Loot struct {
	EquipmentWeights     []float64                  `yaml:"equipment_weights"`
	SkillWeights         []float64                  `yaml:"skill_weights"`
	QualityWeights       []float64                  `yaml:"quality_weights"`
	QualityRanges        []FloatRange               `yaml:"quality_ranges"`
	MapBands             []RarityBand               `yaml:"map_bands"`
	ActiveSkillRatio     float64                    `yaml:"active_skill_ratio"`
	BossDoubleDropChance float64                    `yaml:"boss_double_drop_chance"`
	EquipmentNames       map[entities.Slot][]string `yaml:"equipment_names"`
	SkillNames           SkillNames                 `yaml:"skill_names"`
}

// Combat tunes the combat resolver and the battle driver
type Combat struct {
	BossChance     float64       `yaml:"boss_chance"`
	SkillChance    float64       `yaml:"skill_chance"`
	RoundCap       int           `yaml:"round_cap"`
	ManaRegenRatio float64       `yaml:"mana_regen_ratio"`
	BlockFactor    float64       `yaml:"block_factor"`
	Interval       time.Duration `yaml:"interval"`
	ReviveDelay    time.Duration `yaml:"revive_delay"`
	LogSize        int           `yaml:"log_size"`
}

// Meditation tunes cultivation accrual
type Meditation struct {
	BaseRate        float64       `yaml:"base_rate"`
	RealmMultiplier float64       `yaml:"realm_multiplier"`
	Interval        time.Duration `yaml:"interval"`
}

// RatePerTick is the cultivation gained per meditation tick at tier
func (m Meditation) RatePerTick(tier int) float64 {
	return m.BaseRate * (1 + float64(tier)*m.RealmMultiplier)
}

// Offline tunes the offline projector
type Offline struct {
	MaxHours     float64       `yaml:"max_hours"`
	Efficiency   float64       `yaml:"efficiency"`
	MinDuration  time.Duration `yaml:"min_duration"`
	BattleReward int64         `yaml:"battle_reward"`
}

// Enhance tunes equipment enhancement
type Enhance struct {
	MaxLevel       int     `yaml:"max_level"`
	StoneBase      float64 `yaml:"stone_base"`
	StoneGrowth    float64 `yaml:"stone_growth"`
	CurrencyBase   float64 `yaml:"currency_base"`
	CurrencyGrowth float64 `yaml:"currency_growth"`
	SuccessStep    float64 `yaml:"success_step"`
	SuccessFloor   float64 `yaml:"success_floor"`
	DowngradeFrom  int     `yaml:"downgrade_from"`
	StatGrowth     float64 `yaml:"stat_growth"`
}

// Market tunes sell prices
type Market struct {
	RarityPrices       []int64   `yaml:"rarity_prices"`
	LevelBonus         int64     `yaml:"level_bonus"`
	EnhanceBonus       int64     `yaml:"enhance_bonus"`
	QualityMultipliers []float64 `yaml:"quality_multipliers"`
	SkillSellRatio     float64   `yaml:"skill_sell_ratio"`
}

// NewPlayer is the template for a fresh save
type NewPlayer struct {
	Name              string              `yaml:"name"`
	Currency          int64               `yaml:"currency"`
	CultivationMax    int64               `yaml:"cultivation_max"`
	InventoryCapacity int                 `yaml:"inventory_capacity"`
	AutoMeditate      bool                `yaml:"auto_meditate"`
	AutoBattle        bool                `yaml:"auto_battle"`
	Attributes        entities.Attributes `yaml:"attributes"`
}

// Game is the full static game data
type Game struct {
	Realms     []entities.RealmTier `yaml:"realms"`
	Maps       []entities.Map       `yaml:"maps"`
	Monsters   []entities.Monster   `yaml:"monsters"`
	Loot       Loot                 `yaml:"loot"`
	Combat     Combat               `yaml:"combat"`
	Meditation Meditation           `yaml:"meditation"`
	Offline    Offline              `yaml:"offline"`
	Enhance    Enhance              `yaml:"enhance"`
	Market     Market               `yaml:"market"`
	NewPlayer  NewPlayer            `yaml:"new_player"`

	monsterByID map[string]*entities.Monster
}

// DefaultGame returns the embedded game data
func DefaultGame() (*Game, error) {
	g := &Game{}
	if err := yaml.Unmarshal(defaultGameData, g); err != nil {
		return nil, fmt.Errorf("parsing embedded game data: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(err, "embedded game data is invalid")
	}
	return g, nil
}

// LoadGame loads game data from a YAML file layered over the embedded
// defaults. An empty path or a missing file yields the defaults.
func LoadGame(path string) (*Game, error) {
	g := &Game{}
	if err := yaml.Unmarshal(defaultGameData, g); err != nil {
		return nil, fmt.Errorf("parsing embedded game data: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, g); err != nil {
				return nil, fmt.Errorf("parsing game data %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading game data %s: %w", path, err)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid game data %s", path)
	}
	return g, nil
}

// Validate checks table shapes and cross references, then builds the
// lookup indexes.
func (g *Game) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(g.Realms) == 0 {
		vb.RequiredField("realms")
	}
	for i, r := range g.Realms {
		if r.Levels < 1 {
			vb.Fieldf(fmt.Sprintf("realms[%d].levels", i), "must be at least 1")
		}
		errors.ValidateProbability(fmt.Sprintf("realms[%d].success_rate", i), r.SuccessRate, vb)
	}

	if len(g.Loot.EquipmentWeights) != entities.RarityCount {
		vb.Fieldf("loot.equipment_weights", "needs %d entries, got %d", entities.RarityCount, len(g.Loot.EquipmentWeights))
	}
	if len(g.Loot.SkillWeights) != entities.SkillRarityCount {
		vb.Fieldf("loot.skill_weights", "needs %d entries, got %d", entities.SkillRarityCount, len(g.Loot.SkillWeights))
	}
	if len(g.Loot.QualityWeights) != len(entities.AllQualities) {
		vb.Fieldf("loot.quality_weights", "needs %d entries", len(entities.AllQualities))
	}
	if len(g.Loot.QualityRanges) != len(entities.AllQualities) {
		vb.Fieldf("loot.quality_ranges", "needs %d entries", len(entities.AllQualities))
	}
	for i, band := range g.Loot.MapBands {
		if !band.valid() {
			vb.Fieldf(fmt.Sprintf("loot.map_bands[%d]", i), "must list known rarities in ascending order")
		}
	}
	errors.ValidateProbability("loot.active_skill_ratio", g.Loot.ActiveSkillRatio, vb)
	errors.ValidateProbability("loot.boss_double_drop_chance", g.Loot.BossDoubleDropChance, vb)

	errors.ValidateProbability("combat.boss_chance", g.Combat.BossChance, vb)
	errors.ValidateProbability("combat.skill_chance", g.Combat.SkillChance, vb)
	errors.ValidatePositive("combat.round_cap", g.Combat.RoundCap, vb)
	errors.ValidatePositive("combat.interval", g.Combat.Interval, vb)
	errors.ValidateNonNegative("combat.revive_delay", g.Combat.ReviveDelay, vb)
	errors.ValidatePositive("combat.log_size", g.Combat.LogSize, vb)
	errors.ValidatePositive("meditation.interval", g.Meditation.Interval, vb)
	errors.ValidatePositive("offline.max_hours", g.Offline.MaxHours, vb)
	errors.ValidateProbability("offline.efficiency", g.Offline.Efficiency, vb)
	errors.ValidatePositive("enhance.max_level", g.Enhance.MaxLevel, vb)

	if len(g.Market.RarityPrices) != entities.RarityCount {
		vb.Fieldf("market.rarity_prices", "needs %d entries", entities.RarityCount)
	}
	if len(g.Market.QualityMultipliers) != len(entities.AllQualities) {
		vb.Fieldf("market.quality_multipliers", "needs %d entries", len(entities.AllQualities))
	}
	errors.ValidatePositive("new_player.inventory_capacity", g.NewPlayer.InventoryCapacity, vb)

	g.monsterByID = make(map[string]*entities.Monster, len(g.Monsters))
	for i := range g.Monsters {
		m := &g.Monsters[i]
		if _, dup := g.monsterByID[m.ID]; dup {
			vb.Fieldf("monsters", "duplicate id %s", m.ID)
		}
		g.monsterByID[m.ID] = m
	}
	if len(g.Maps) == 0 {
		vb.RequiredField("maps")
	}
	for _, m := range g.Maps {
		for _, id := range m.Monsters {
			if _, ok := g.monsterByID[id]; !ok {
				vb.Fieldf("maps."+m.ID, "unknown monster %s", id)
			}
		}
	}

	return vb.Build()
}

// Realm returns the realm tier at index
func (g *Game) Realm(tier int) (entities.RealmTier, bool) {
	if tier < 0 || tier >= len(g.Realms) {
		return entities.RealmTier{}, false
	}
	return g.Realms[tier], true
}

// FinalTier is the index of the last realm
func (g *Game) FinalTier() int {
	return len(g.Realms) - 1
}

// Map returns the map at index
func (g *Game) Map(index int) (entities.Map, bool) {
	if index < 0 || index >= len(g.Maps) {
		return entities.Map{}, false
	}
	return g.Maps[index], true
}

// Monster returns the monster with id
func (g *Game) Monster(id string) (*entities.Monster, bool) {
	m, ok := g.monsterByID[id]
	return m, ok
}

// MonstersOn returns the monsters of the map at index, in table order
func (g *Game) MonstersOn(index int) []*entities.Monster {
	m, ok := g.Map(index)
	if !ok {
		return nil
	}
	out := make([]*entities.Monster, 0, len(m.Monsters))
	for _, id := range m.Monsters {
		if monster, ok := g.monsterByID[id]; ok {
			out = append(out, monster)
		}
	}
	return out
}

// UnlockedMaps returns the indexes of the maps open at tier/level
func (g *Game) UnlockedMaps(tier, level int) []int {
	var out []int
	for i, m := range g.Maps {
		if m.Unlocked(tier, level) {
			out = append(out, i)
		}
	}
	return out
}
