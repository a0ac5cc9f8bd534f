package progression

import (
	"math"

	"github.com/KirkDiggler/cultivation-sim/internal/entities"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/random"
)

// enhanceStats grow on every successful enhancement. Rates do not.
var enhanceStats = []entities.Stat{
	entities.StatAttack, entities.StatDefense, entities.StatHPMax, entities.StatMPMax, entities.StatSpeed,
}

// EnhanceQuote is the price and odds of the next enhancement
type EnhanceQuote struct {
	Level        int     `json:"level"`
	StoneCost    int64   `json:"stoneCost"`
	CurrencyCost int64   `json:"currencyCost"`
	SuccessRate  float64 `json:"successRate"`
	Maxed        bool    `json:"maxed"`
}

// EnhancePreview quotes the next enhancement of eq
func (l *Ledger) EnhancePreview(eq *entities.Equipment) EnhanceQuote {
	return l.quote(eq.EnhanceLevel)
}

func (l *Ledger) quote(level int) EnhanceQuote {
	cfg := l.game.Enhance
	fl := float64(level)
	return EnhanceQuote{
		Level:        level,
		StoneCost:    int64(math.Floor(cfg.StoneBase * math.Pow(cfg.StoneGrowth, fl))),
		CurrencyCost: int64(math.Floor(cfg.CurrencyBase * math.Pow(cfg.CurrencyGrowth, fl))),
		SuccessRate:  math.Max(cfg.SuccessFloor, 1-fl*cfg.SuccessStep),
		Maxed:        level >= cfg.MaxLevel,
	}
}

// EnhanceResult is the outcome of one enhancement attempt
type EnhanceResult struct {
	Outcome
	Level      int  `json:"level"`
	Downgraded bool `json:"downgraded"`
	// Attempted is true when the cost was paid
	Attempted bool `json:"attempted"`
}

// Enhance tries to raise the enhancement level of the equipment with id,
// worn or carried. The cost is paid on every attempt. Success adds a level
// and grows the flat stats by the configured ratio, floored. Failure from
// the downgrade level upward loses a level.
func (l *Ledger) Enhance(p *entities.Player, equipmentID string) EnhanceResult {
	eq, ok := p.FindEquipment(equipmentID)
	if !ok {
		return EnhanceResult{Outcome: refuse("equipment %s not found", equipmentID)}
	}

	level := eq.EnhanceLevel
	q := l.quote(level)
	if q.Maxed {
		return EnhanceResult{Outcome: refuse("%s is already +%d", eq.Name, level), Level: level}
	}
	if p.Resources.EnhanceStones < q.StoneCost {
		return EnhanceResult{Outcome: refuse("need %d enhance stones", q.StoneCost), Level: level}
	}
	if p.Resources.Currency < q.CurrencyCost {
		return EnhanceResult{Outcome: refuse("need %d currency", q.CurrencyCost), Level: level}
	}

	p.Resources.EnhanceStones -= q.StoneCost
	p.Resources.Currency -= q.CurrencyCost

	if random.Chance(l.rng, q.SuccessRate) {
		eq.EnhanceLevel = level + 1
		eq.Bonus.ScaleFloor(1+l.game.Enhance.StatGrowth, enhanceStats...)
		return EnhanceResult{
			Outcome:   succeed("%s is now +%d", eq.Name, eq.EnhanceLevel),
			Level:     eq.EnhanceLevel,
			Attempted: true,
		}
	}

	if level >= l.game.Enhance.DowngradeFrom {
		eq.EnhanceLevel = max(0, level-1)
		return EnhanceResult{
			Outcome:    refuse("enhancement failed, %s dropped to +%d", eq.Name, eq.EnhanceLevel),
			Level:      eq.EnhanceLevel,
			Downgraded: true,
			Attempted:  true,
		}
	}

	return EnhanceResult{
		Outcome:   refuse("enhancement failed, %s stays at +%d", eq.Name, level),
		Level:     level,
		Attempted: true,
	}
}
