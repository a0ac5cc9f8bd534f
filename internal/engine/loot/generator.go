// Package loot generates equipment and skills.
package loot

import (
	"math"

	"github.com/KirkDiggler/cultivation-sim/internal/config"
	"github.com/KirkDiggler/cultivation-sim/internal/engine/rarity"
	"github.com/KirkDiggler/cultivation-sim/internal/entities"
	"github.com/KirkDiggler/cultivation-sim/internal/errors"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/idgen"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/random"
)

// Tier thresholds used by the attribute and requirement formulas
const (
	realmBonusFrom    = 7
	mortalCapTier     = 6
	maxRequireTier    = 15
	chaosRequireFloor = 12
	maxRequireLevel   = 9
)

// Config holds the generator's dependencies
type Config struct {
	Loot   config.Loot
	IDs    idgen.Generator
	Random random.Source
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDs == nil {
		vb.RequiredField("IDs")
	}
	if c.Random == nil {
		vb.RequiredField("Random")
	}
	if len(c.Loot.QualityRanges) != len(entities.AllQualities) {
		vb.InvalidField("Loot.QualityRanges", "one range per quality")
	}

	return vb.Build()
}

// Generator creates items. It never fails once constructed.
type Generator struct {
	loot      config.Loot
	equipIDs  idgen.Generator
	skillIDs  idgen.Generator
	rng       random.Source
	equipment rarity.Table[entities.Rarity]
	skills    rarity.Table[entities.SkillRarity]
	qualities rarity.Table[entities.Quality]
}

// NewGenerator creates a loot generator
func NewGenerator(cfg *Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Generator{
		loot:      cfg.Loot,
		equipIDs:  idgen.WithPrefix("eq", cfg.IDs),
		skillIDs:  idgen.WithPrefix("sk", cfg.IDs),
		rng:       cfg.Random,
		equipment: rarity.EquipmentTable(cfg.Loot.EquipmentWeights),
		skills:    rarity.SkillTable(cfg.Loot.SkillWeights),
		qualities: rarity.QualityTable(cfg.Loot.QualityWeights),
	}, nil
}

// EquipmentInput describes one piece of equipment to generate
type EquipmentInput struct {
	Slot entities.Slot
	// ContextTier is the skew for progression-weighted drops and the map
	// tier for band-restricted drops.
	ContextTier int
	Level       int
	// Restrict draws the rarity from the map band for ContextTier instead
	// of the skewed global table.
	Restrict bool
}

// Equipment generates a piece of equipment
func (g *Generator) Equipment(in EquipmentInput) *entities.Equipment {
	var r entities.Rarity
	if in.Restrict {
		band := g.band(in.ContextTier)
		r = rarity.SelectInBand(g.rng, band)
	} else {
		r = rarity.Select(g.rng, g.equipment, float64(in.ContextTier))
	}

	quality := rarity.Draw(g.rng, g.qualities)

	return &entities.Equipment{
		ID:           g.equipIDs.Generate(),
		Name:         g.equipmentName(in.Slot, r),
		Slot:         in.Slot,
		Rarity:       r,
		Quality:      quality,
		Level:        in.Level,
		RequireTier:  RequireTier(r, in.ContextTier),
		RequireLevel: min(int(r)*2, maxRequireLevel),
		Bonus:        g.rollBonus(in.Slot, r, quality, in.Level),
		EnhanceLevel: 0,
	}
}

// band returns the rarity band for a map tier, [common] when the tier has
// no configured band.
func (g *Generator) band(tier int) config.RarityBand {
	if tier >= 0 && tier < len(g.loot.MapBands) {
		return g.loot.MapBands[tier]
	}
	return config.RarityBand{entities.RarityCommon}
}

// RequireTier derives the realm requirement of an item of rarity r found in
// a context of tier contextTier.
func RequireTier(r entities.Rarity, contextTier int) int {
	tier := int(r)
	switch {
	case tier >= chaosRequireFloor:
		return max(contextTier, chaosRequireFloor)
	case tier >= realmBonusFrom:
		return min(tier, maxRequireTier)
	default:
		return min(int(math.Floor(float64(tier)*1.5)), mortalCapTier)
	}
}

func (g *Generator) equipmentName(slot entities.Slot, r entities.Rarity) string {
	names := g.loot.EquipmentNames[slot]
	if len(names) == 0 {
		return string(slot)
	}
	return names[min(int(r), len(names)-1)]
}

// QualityFactor draws a multiplier from the quality's configured range
func (g *Generator) qualityFactor(q entities.Quality) float64 {
	i := int(q) - int(entities.QualityLow)
	if i < 0 || i >= len(g.loot.QualityRanges) {
		return 1
	}
	rng := g.loot.QualityRanges[i]
	return random.Uniform(g.rng, rng.Min, rng.Max)
}

type bonusRoll struct {
	rng        random.Source
	tier       float64
	multiplier float64
	realmBonus float64
	quality    float64
}

// flat is floor(base × 1.5^r × (1+0.1·level) × realmBonus × quality × jitter)
func (b bonusRoll) flat(base float64, withRealmBonus bool) float64 {
	realm := 1.0
	if withRealmBonus {
		realm = b.realmBonus
	}
	jitter := random.Uniform(b.rng, 0.9, 1.1)
	return math.Floor(base * b.multiplier * realm * b.quality * jitter)
}

// rate is a chance-type bonus such as crit rate, dodge or block
func (b bonusRoll) rate() float64 {
	return (0.02 + b.tier*0.01 + b.rng.Float64()*0.02) * b.quality
}

func (b bonusRoll) critDamage() float64 {
	return (0.1 + b.tier*0.05 + b.rng.Float64()*0.1) * b.quality
}

var accessoryStats = []entities.Stat{
	entities.StatAttack, entities.StatDefense, entities.StatHPMax, entities.StatCritRate, entities.StatDodge,
}

func (g *Generator) rollBonus(slot entities.Slot, r entities.Rarity, q entities.Quality, level int) entities.Attributes {
	tier := int(r)
	b := bonusRoll{
		rng:        g.rng,
		tier:       float64(tier),
		multiplier: math.Pow(1.5, float64(tier)) * (1 + float64(level)*0.1),
		realmBonus: 1,
		quality:    g.qualityFactor(q),
	}
	if tier >= realmBonusFrom {
		b.realmBonus = math.Pow(1.5, float64(tier-mortalCapTier))
	}

	var a entities.Attributes
	switch slot {
	case entities.SlotWeapon:
		a.Attack = b.flat(3, true)
		if tier >= 2 {
			a.CritRate = b.rate()
		}
		if tier >= 3 {
			a.CritDamage = b.critDamage()
		}
	case entities.SlotArmor:
		a.Defense = b.flat(2, true)
		a.HPMax = b.flat(30, true)
		if tier >= 2 {
			a.Block = b.rate()
		}
	case entities.SlotHelmet:
		a.Defense = b.flat(1.5, true)
		a.HPMax = b.flat(20, true)
		if tier >= 2 {
			a.MPMax = b.flat(10, true)
		}
	case entities.SlotBoots:
		a.Speed = b.flat(2, false)
		if tier >= 2 {
			a.Dodge = b.rate()
		}
		if tier >= 3 {
			a.Defense = b.flat(1, true)
		}
	case entities.SlotRing, entities.SlotNecklace:
		stats := make([]entities.Stat, len(accessoryStats))
		copy(stats, accessoryStats)
		for i := len(stats) - 1; i > 0; i-- {
			j := g.rng.IntN(i + 1)
			stats[i], stats[j] = stats[j], stats[i]
		}
		for _, stat := range stats[:min(2+min(tier, 3), len(stats))] {
			switch stat {
			case entities.StatAttack:
				a.Attack = b.flat(2, true)
			case entities.StatDefense:
				a.Defense = b.flat(1.5, true)
			case entities.StatHPMax:
				a.HPMax = b.flat(15, true)
			case entities.StatCritRate:
				a.CritRate = b.rate()
			case entities.StatDodge:
				a.Dodge = b.rate()
			}
		}
	}
	return a
}

// RandomSlot picks a slot uniformly
func (g *Generator) RandomSlot() entities.Slot {
	return random.Pick(g.rng, entities.AllSlots)
}

// RandomSkillType picks active with the configured ratio, passive otherwise
func (g *Generator) RandomSkillType() entities.SkillType {
	if random.Chance(g.rng, g.loot.ActiveSkillRatio) {
		return entities.SkillActive
	}
	return entities.SkillPassive
}

var passiveStats = []entities.Stat{
	entities.StatAttack, entities.StatDefense, entities.StatHPMax, entities.StatCritRate, entities.StatDodge,
}

// Skill generates a skill of type t with rarity skewed by skew
func (g *Generator) Skill(t entities.SkillType, skew int) *entities.Skill {
	r := rarity.Select(g.rng, g.skills, float64(skew))
	i := int(r)
	fi := float64(i)

	names := g.loot.SkillNames.Passive
	if t == entities.SkillActive {
		names = g.loot.SkillNames.Active
	}
	name := string(t)
	if len(names) > 0 {
		name = names[min(i, len(names)-1)]
	}

	skill := &entities.Skill{
		ID:       g.skillIDs.Generate(),
		Name:     name,
		Type:     t,
		Rarity:   r,
		Level:    1,
		MaxLevel: 10 + i*5,
		LearnCost: entities.LearnCost{
			Currency: int64(1000 + i*5000),
		},
		UpgradeCost: entities.UpgradeCost{
			Comprehension: int64(10 + i*10),
			Currency:      int64(500 + i*2000),
		},
	}

	if t == entities.SkillActive {
		skill.ManaCost = 30 + fi*20
		skill.CooldownMS = int64(3000 - i*200)
		skill.Effect = entities.SkillEffect{Kind: entities.EffectDamage, Value: 1.5 + fi*0.3}
		return skill
	}

	skill.Effect = entities.SkillEffect{Kind: entities.EffectBuff, Value: 1}
	switch passiveStats[i%len(passiveStats)] {
	case entities.StatAttack:
		skill.Passive.Attack = 20 + fi*15
	case entities.StatDefense:
		skill.Passive.Defense = 15 + fi*10
	case entities.StatHPMax:
		skill.Passive.HPMax = 100 + fi*80
	case entities.StatCritRate:
		skill.Passive.CritRate = 0.02 + fi*0.015
	case entities.StatDodge:
		skill.Passive.Dodge = 0.02 + fi*0.015
	}
	return skill
}
