// Package combat resolves a single encounter between the player and a
// monster. It is pure: the caller passes the player's total attributes and
// current HP/MP and writes the result back.
package combat

import (
	"fmt"
	"math"

	"github.com/KirkDiggler/cultivation-sim/internal/config"
	"github.com/KirkDiggler/cultivation-sim/internal/entities"
	"github.com/KirkDiggler/cultivation-sim/internal/errors"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/random"
)

// Outcome is how an encounter ended
type Outcome string

// Encounter outcomes
const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	// OutcomeDraw means the round cap was reached with both sides standing.
	// No rewards, no death.
	OutcomeDraw Outcome = "draw"
)

const defaultSkillMultiplier = 1.5

// Config holds the resolver's tuning and randomness
type Config struct {
	Combat config.Combat
	Random random.Source
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Random == nil {
		vb.RequiredField("Random")
	}
	errors.ValidateProbability("Combat.BossChance", c.Combat.BossChance, vb)
	errors.ValidateProbability("Combat.SkillChance", c.Combat.SkillChance, vb)
	errors.ValidatePositive("Combat.RoundCap", c.Combat.RoundCap, vb)
	errors.ValidateNonNegative("Combat.ManaRegenRatio", c.Combat.ManaRegenRatio, vb)
	errors.ValidateProbability("Combat.BlockFactor", c.Combat.BlockFactor, vb)

	return vb.Build()
}

// Resolver runs encounters
type Resolver struct {
	cfg config.Combat
	rng random.Source
}

// NewResolver creates a combat resolver
func NewResolver(cfg *Config) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Resolver{cfg: cfg.Combat, rng: cfg.Random}, nil
}

// PickMonster chooses the opponent from the monsters of a map. A boss
// appears with the configured chance when the map has one; otherwise a
// regular monster is picked uniformly. Returns nil for an empty map.
func (r *Resolver) PickMonster(monsters []*entities.Monster) *entities.Monster {
	var bosses, normals []*entities.Monster
	for _, m := range monsters {
		if m.Boss {
			bosses = append(bosses, m)
		} else {
			normals = append(normals, m)
		}
	}

	if len(bosses) > 0 && (len(normals) == 0 || random.Chance(r.rng, r.cfg.BossChance)) {
		return random.Pick(r.rng, bosses)
	}
	return random.Pick(r.rng, normals)
}

// ResolveInput is one encounter
type ResolveInput struct {
	// Player holds total attributes; HP and MP are the current pools
	Player entities.Attributes
	// Skills are the learned active skills
	Skills  []*entities.Skill
	Monster *entities.Monster
}

// Result is the outcome of one encounter
type Result struct {
	Outcome     Outcome
	Rounds      int
	Log         []string
	FinalHP     float64
	FinalMP     float64
	DamageDealt int64
}

// Resolve runs rounds until one side drops or the round cap is hit.
// The player always acts first.
func (r *Resolver) Resolve(in *ResolveInput) *Result {
	p := in.Player
	m := in.Monster.Attributes

	hp := p.HP
	mp := p.MP
	monsterHP := m.HP

	res := &Result{}
	res.Log = append(res.Log, encounterLine(in.Monster))

	for hp > 0 && monsterHP > 0 && res.Rounds < r.cfg.RoundCap {
		res.Rounds++

		damage := math.Max(1, p.Attack-m.Defense)
		action := "attacks"
		if skill := r.chooseSkill(in.Skills, mp); skill != nil {
			mp -= skill.ManaCost
			multiplier := skill.Effect.Value
			if multiplier == 0 {
				multiplier = defaultSkillMultiplier
			}
			damage = math.Floor(damage * multiplier)
			action = fmt.Sprintf("casts %s", skill.Name)
		}

		crit := random.Chance(r.rng, p.CritRate)
		if crit {
			damage = math.Floor(damage * p.CritDamage)
		}

		monsterHP -= damage
		res.DamageDealt += int64(damage)
		res.Log = append(res.Log, attackLine(res.Rounds, action, in.Monster.Name, damage, crit, monsterHP))

		if monsterHP <= 0 {
			break
		}

		hp -= r.monsterTurn(res, in.Monster, p, hp)

		if mp < p.MPMax {
			mp = math.Min(p.MPMax, mp+math.Floor(p.MPMax*r.cfg.ManaRegenRatio))
		}
	}

	res.FinalMP = mp
	switch {
	case monsterHP <= 0:
		res.Outcome = OutcomeWin
		res.FinalHP = math.Max(0, hp)
		res.Log = append(res.Log, fmt.Sprintf("Defeated %s", in.Monster.Name))
	case hp <= 0:
		res.Outcome = OutcomeLoss
		res.FinalHP = 0
		res.Log = append(res.Log, fmt.Sprintf("Defeated by %s", in.Monster.Name))
	default:
		res.Outcome = OutcomeDraw
		res.FinalHP = hp
		res.Log = append(res.Log, fmt.Sprintf("%s withdraws after %d rounds", in.Monster.Name, res.Rounds))
	}

	return res
}

// chooseSkill returns an affordable active skill with the configured
// chance, nil for a basic attack.
func (r *Resolver) chooseSkill(skills []*entities.Skill, mp float64) *entities.Skill {
	var affordable []*entities.Skill
	for _, s := range skills {
		if s != nil && s.Type == entities.SkillActive && s.ManaCost <= mp {
			affordable = append(affordable, s)
		}
	}
	if len(affordable) == 0 || !random.Chance(r.rng, r.cfg.SkillChance) {
		return nil
	}
	return random.Pick(r.rng, affordable)
}

// monsterTurn returns the damage the player takes
func (r *Resolver) monsterTurn(res *Result, monster *entities.Monster, p entities.Attributes, hp float64) float64 {
	m := monster.Attributes
	damage := math.Max(1, m.Attack-p.Defense)

	if random.Chance(r.rng, p.Dodge) {
		res.Log = append(res.Log, fmt.Sprintf("Dodged %s's attack", monster.Name))
		return 0
	}

	if random.Chance(r.rng, p.Block) {
		damage = math.Floor(damage * r.cfg.BlockFactor)
		res.Log = append(res.Log, fmt.Sprintf("%s hits for %.0f (blocked), %.0f HP left",
			monster.Name, damage, math.Max(0, hp-damage)))
		return damage
	}

	crit := random.Chance(r.rng, m.CritRate)
	if crit {
		damage = math.Floor(damage * m.CritDamage)
	}
	res.Log = append(res.Log, fmt.Sprintf("%s hits for %.0f%s, %.0f HP left",
		monster.Name, damage, critSuffix(crit), math.Max(0, hp-damage)))
	return damage
}

func encounterLine(m *entities.Monster) string {
	if m.Boss {
		return fmt.Sprintf("Boss fight: %s", m.Name)
	}
	return fmt.Sprintf("Encountered %s", m.Name)
}

func attackLine(round int, action, target string, damage float64, crit bool, remaining float64) string {
	line := fmt.Sprintf("Round %d: %s on %s for %.0f%s", round, action, target, damage, critSuffix(crit))
	if remaining > 0 {
		line += fmt.Sprintf(", %.0f HP left", remaining)
	}
	return line
}

func critSuffix(crit bool) string {
	if crit {
		return " (critical)"
	}
	return ""
}
