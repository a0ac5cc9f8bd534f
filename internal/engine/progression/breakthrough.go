package progression

import (
	"math"

	"github.com/KirkDiggler/cultivation-sim/internal/entities"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/random"
)

// Transition says which kind of breakthrough was attempted
type Transition string

// Breakthrough transitions
const (
	// TransitionNone means a precondition failed and nothing was paid
	TransitionNone Transition = "none"
	// TransitionLevel is a guaranteed sub-level advance within a tier
	TransitionLevel Transition = "level"
	// TransitionTier is a successful advance to the next tier
	TransitionTier Transition = "tier"
	// TransitionFailed is a paid tier attempt that did not succeed
	TransitionFailed Transition = "failed"
)

// breakthroughStats are the attributes realm bonuses apply to
var breakthroughStats = []entities.Stat{
	entities.StatHPMax, entities.StatAttack, entities.StatDefense, entities.StatSpeed,
}

// BreakthroughResult is the outcome of a breakthrough attempt
type BreakthroughResult struct {
	Outcome
	Transition Transition `json:"transition"`
}

// Breakthrough advances the player along the realm ladder once the
// cultivation bar is full and the cost is affordable.
//
// Below the tier's last level the advance always succeeds and grants
// floor(bonus/levels) of the tier's bonus. At the last level the player
// rolls against the tier's success rate for the next tier; the cost is paid
// either way. Overflow cultivation carries over in both cases.
func (l *Ledger) Breakthrough(p *entities.Player) BreakthroughResult {
	realm := &p.Realm
	tier, ok := l.game.Realm(realm.Tier)
	if !ok {
		return BreakthroughResult{Outcome: refuse("unknown realm %d", realm.Tier), Transition: TransitionNone}
	}

	if realm.Cultivation < realm.CultivationMax {
		return BreakthroughResult{
			Outcome:    refuse("need %d more cultivation", realm.CultivationMax-realm.Cultivation),
			Transition: TransitionNone,
		}
	}
	if p.Resources.Currency < tier.BreakthroughCost {
		return BreakthroughResult{
			Outcome:    refuse("need %d more currency", tier.BreakthroughCost-p.Resources.Currency),
			Transition: TransitionNone,
		}
	}

	if realm.Level < tier.Levels {
		overflow := realm.Cultivation - realm.CultivationMax
		realm.Level++
		realm.Cultivation = max(0, overflow)
		realm.CultivationMax = tier.CultivationPerLevel
		p.Resources.Currency -= tier.BreakthroughCost

		for _, stat := range breakthroughStats {
			p.Attributes.Set(stat, p.Attributes.Get(stat)+math.Floor(tier.Bonus.Get(stat)/float64(tier.Levels)))
		}
		refill(p)

		return BreakthroughResult{
			Outcome:    succeed("reached %s level %d", tier.Name, realm.Level),
			Transition: TransitionLevel,
		}
	}

	if realm.Tier >= l.game.FinalTier() {
		return BreakthroughResult{Outcome: refuse("max tier reached"), Transition: TransitionNone}
	}

	p.Resources.Currency -= tier.BreakthroughCost
	if !random.Chance(l.rng, tier.SuccessRate) {
		realm.FailCount++
		return BreakthroughResult{
			Outcome:    refuse("breakthrough failed, %d failures so far", realm.FailCount),
			Transition: TransitionFailed,
		}
	}

	next, _ := l.game.Realm(realm.Tier + 1)
	overflow := realm.Cultivation - realm.CultivationMax
	realm.Tier++
	realm.Level = 1
	realm.Cultivation = max(0, overflow)
	realm.CultivationMax = next.CultivationPerLevel
	realm.FailCount = 0

	for _, stat := range breakthroughStats {
		p.Attributes.Set(stat, p.Attributes.Get(stat)+next.Bonus.Get(stat))
	}
	refill(p)

	return BreakthroughResult{
		Outcome:    succeed("broke through to %s", next.Name),
		Transition: TransitionTier,
	}
}

// refill restores HP to the total maximum
func refill(p *entities.Player) {
	p.Attributes.HP = p.TotalAttributes().HPMax
}
