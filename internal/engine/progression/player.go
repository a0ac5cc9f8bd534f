package progression

import (
	"math"
	"time"

	"github.com/KirkDiggler/cultivation-sim/internal/engine/combat"
	"github.com/KirkDiggler/cultivation-sim/internal/entities"
)

// NewPlayer builds a fresh save from the new player template
func (l *Ledger) NewPlayer(id string, now time.Time) *entities.Player {
	t := l.game.NewPlayer
	return &entities.Player{
		ID:        id,
		Name:      t.Name,
		CreatedAt: now,
		Realm: entities.RealmProgress{
			Tier:           0,
			Level:          1,
			CultivationMax: t.CultivationMax,
		},
		Attributes: t.Attributes,
		Resources:  entities.Resources{Currency: t.Currency},
		Equipped:   make(entities.Equipped),
		Skills: entities.SkillSet{
			Active:  []*entities.Skill{},
			Passive: []*entities.Skill{},
		},
		Inventory: entities.Inventory{
			Equipment:  []*entities.Equipment{},
			SkillBooks: []*entities.Skill{},
			Capacity:   t.InventoryCapacity,
		},
		Battle: entities.BattleStats{
			AutoMeditate: t.AutoMeditate,
			AutoBattle:   t.AutoBattle,
		},
		Offline: entities.OfflineState{
			LastOnline:      now,
			MaxOfflineHours: l.game.Offline.MaxHours,
		},
	}
}

// Migrate brings a loaded snapshot up to the current shape: equipment
// saved before qualities existed becomes medium, missing containers are
// created and zeroed limits take their defaults. Returns true when
// anything changed.
func (l *Ledger) Migrate(p *entities.Player) bool {
	changed := false

	fix := func(eq *entities.Equipment) {
		if eq != nil && eq.Quality == entities.QualityUnset {
			eq.Quality = entities.QualityMedium
			changed = true
		}
	}
	for _, eq := range p.Equipped {
		fix(eq)
	}
	for _, eq := range p.Inventory.Equipment {
		fix(eq)
	}

	if p.Equipped == nil {
		p.Equipped = make(entities.Equipped)
		changed = true
	}
	for slot, eq := range p.Equipped {
		if eq == nil {
			delete(p.Equipped, slot)
			changed = true
		}
	}
	if p.Skills.Active == nil {
		p.Skills.Active = []*entities.Skill{}
		changed = true
	}
	if p.Skills.Passive == nil {
		p.Skills.Passive = []*entities.Skill{}
		changed = true
	}
	if p.Inventory.Equipment == nil {
		p.Inventory.Equipment = []*entities.Equipment{}
		changed = true
	}
	if p.Inventory.SkillBooks == nil {
		p.Inventory.SkillBooks = []*entities.Skill{}
		changed = true
	}
	if p.Inventory.Capacity <= 0 {
		p.Inventory.Capacity = l.game.NewPlayer.InventoryCapacity
		changed = true
	}
	if p.Offline.MaxOfflineHours <= 0 {
		p.Offline.MaxOfflineHours = l.game.Offline.MaxHours
		changed = true
	}
	if p.Realm.CultivationMax <= 0 && p.Realm.Tier < l.game.FinalTier() {
		p.Realm.CultivationMax = l.game.NewPlayer.CultivationMax
		if p.Realm.Level > 1 || p.Realm.Tier > 0 {
			if tier, ok := l.game.Realm(p.Realm.Tier); ok {
				p.Realm.CultivationMax = tier.CultivationPerLevel
			}
		}
		changed = true
	}
	if _, ok := l.game.Map(p.Battle.MapIndex); !ok {
		p.Battle.MapIndex = 0
		changed = true
	}
	return changed
}

// Meditate adds one tick of cultivation and returns the amount gained
func (l *Ledger) Meditate(p *entities.Player) int64 {
	before := p.Realm.Cultivation
	p.Realm.Cultivation = int64(math.Floor(float64(before) + l.game.Meditation.RatePerTick(p.Realm.Tier)))
	return p.Realm.Cultivation - before
}

// Revive restores HP and MP to their total maximums
func Revive(p *entities.Player) {
	total := p.TotalAttributes()
	p.Attributes.HP = total.HPMax
	p.Attributes.MP = total.MPMax
}

// RecordBattle writes an encounter's result back onto the player. The
// resolver works on total attributes, but HP and MP live in the base
// attributes since equipment never grants current pools.
func RecordBattle(p *entities.Player, res *combat.Result) {
	p.Attributes.HP = res.FinalHP
	p.Attributes.MP = res.FinalMP
	p.Battle.TotalDamage += res.DamageDealt

	switch res.Outcome {
	case combat.OutcomeWin:
		p.Battle.Kills++
	case combat.OutcomeLoss:
		p.Attributes.HP = 0
		p.Battle.Deaths++
	}
}
