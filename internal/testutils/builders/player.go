// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/cultivation-sim/internal/entities"
)

// PlayerBuilder provides a fluent interface for building test Player instances
type PlayerBuilder struct {
	player *entities.Player
}

// NewPlayerBuilder creates a builder for a fresh Qi Refining player with
// the starting attributes.
func NewPlayerBuilder() *PlayerBuilder {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &PlayerBuilder{
		player: &entities.Player{
			ID:        "player-test-1",
			Name:      "Fellow Daoist",
			CreatedAt: created,
			Realm: entities.RealmProgress{
				Level:          1,
				CultivationMax: 10000,
			},
			Attributes: entities.Attributes{
				HP: 80, HPMax: 80, MP: 20, MPMax: 20,
				Attack: 8, Defense: 4, Speed: 6,
				CritRate: 0.05, CritDamage: 1.5, Dodge: 0.03, Block: 0.02,
			},
			Resources: entities.Resources{Currency: 100},
			Equipped:  entities.Equipped{},
			Skills: entities.SkillSet{
				Active:  []*entities.Skill{},
				Passive: []*entities.Skill{},
			},
			Inventory: entities.Inventory{
				Equipment:  []*entities.Equipment{},
				SkillBooks: []*entities.Skill{},
				Capacity:   500,
			},
			Battle: entities.BattleStats{AutoMeditate: true, AutoBattle: true},
			Offline: entities.OfflineState{
				LastOnline:      created,
				MaxOfflineHours: 24,
			},
		},
	}
}

// WithID sets the player ID
func (b *PlayerBuilder) WithID(id string) *PlayerBuilder {
	b.player.ID = id
	return b
}

// WithRealm places the player at tier and level
func (b *PlayerBuilder) WithRealm(tier, level int) *PlayerBuilder {
	b.player.Realm.Tier = tier
	b.player.Realm.Level = level
	return b
}

// WithCultivation sets current and maximum cultivation
func (b *PlayerBuilder) WithCultivation(current, limit int64) *PlayerBuilder {
	b.player.Realm.Cultivation = current
	b.player.Realm.CultivationMax = limit
	return b
}

// WithResources replaces the resource balances
func (b *PlayerBuilder) WithResources(r entities.Resources) *PlayerBuilder {
	b.player.Resources = r
	return b
}

// WithHP sets current HP
func (b *PlayerBuilder) WithHP(hp float64) *PlayerBuilder {
	b.player.Attributes.HP = hp
	return b
}

// WithEquipped puts eq in its slot
func (b *PlayerBuilder) WithEquipped(eq *entities.Equipment) *PlayerBuilder {
	b.player.Equipped[eq.Slot] = eq
	return b
}

// WithInventoryEquipment appends items to the inventory
func (b *PlayerBuilder) WithInventoryEquipment(items ...*entities.Equipment) *PlayerBuilder {
	b.player.Inventory.Equipment = append(b.player.Inventory.Equipment, items...)
	return b
}

// WithSkillBooks appends skill books to the inventory
func (b *PlayerBuilder) WithSkillBooks(books ...*entities.Skill) *PlayerBuilder {
	b.player.Inventory.SkillBooks = append(b.player.Inventory.SkillBooks, books...)
	return b
}

// WithMap selects the map index
func (b *PlayerBuilder) WithMap(index int) *PlayerBuilder {
	b.player.Battle.MapIndex = index
	return b
}

// WithLastOnline sets the offline timestamp
func (b *PlayerBuilder) WithLastOnline(t time.Time) *PlayerBuilder {
	b.player.Offline.LastOnline = t
	return b
}

// Build returns the constructed player
func (b *PlayerBuilder) Build() *entities.Player {
	return b.player
}

// NewEquipment returns a common medium level-1 item in slot
func NewEquipment(id string, slot entities.Slot) *entities.Equipment {
	return &entities.Equipment{
		ID:           id,
		Name:         "Wooden " + string(slot),
		Slot:         slot,
		Rarity:       entities.RarityCommon,
		Quality:      entities.QualityMedium,
		Level:        1,
		RequireLevel: 1,
		Bonus:        entities.Attributes{Attack: 2},
	}
}

// NewSkillBook returns a yellow active skill book
func NewSkillBook(id string) *entities.Skill {
	return &entities.Skill{
		ID:         id,
		Name:       "Fire Palm",
		Type:       entities.SkillActive,
		Rarity:     entities.SkillRarityYellow,
		Level:      1,
		MaxLevel:   10,
		ManaCost:   30,
		CooldownMS: 3000,
		Effect:     entities.SkillEffect{Kind: entities.EffectDamage, Value: 1.2},
		LearnCost:  entities.LearnCost{Currency: 1000},
	}
}
