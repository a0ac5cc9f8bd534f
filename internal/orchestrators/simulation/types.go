package simulation

import (
	"time"

	"github.com/KirkDiggler/cultivation-sim/internal/engine/offline"
	"github.com/KirkDiggler/cultivation-sim/internal/engine/progression"
	"github.com/KirkDiggler/cultivation-sim/internal/entities"
)

// LoadInput defines the input for loading the player
type LoadInput struct{}

// LoadOutput defines the output for loading the player
type LoadOutput struct {
	Player *entities.Player
	// Created is true when no snapshot existed and a new player was made
	Created bool
	// Migrated is true when an old snapshot was brought up to date
	Migrated bool
}

// StartInput defines the input for starting the drivers
type StartInput struct{}

// StartOutput reports which drivers were started by this call
type StartOutput struct {
	Meditation bool
	Battle     bool
	// AlreadyRunning is true when every enabled driver was running before
	// the call
	AlreadyRunning bool
}

// StopInput defines the input for stopping the drivers
type StopInput struct{}

// StopOutput reports how many drivers were stopped
type StopOutput struct {
	Stopped int
}

// BreakthroughInput defines the input for a breakthrough attempt
type BreakthroughInput struct{}

// BreakthroughOutput defines the output for a breakthrough attempt
type BreakthroughOutput struct {
	Result progression.BreakthroughResult
	Realm  entities.RealmProgress
}

// SellEquipmentInput defines the input for selling equipment
type SellEquipmentInput struct {
	EquipmentID string
}

// SellSkillInput defines the input for selling a skill book
type SellSkillInput struct {
	SkillID string
}

// SellOutput defines the output for either sale
type SellOutput struct {
	Result progression.SaleResult
	// Currency is the balance after the sale
	Currency int64
}

// EnhanceInput defines the input for an enhancement attempt
type EnhanceInput struct {
	EquipmentID string
}

// EnhanceOutput defines the output for an enhancement attempt
type EnhanceOutput struct {
	Result progression.EnhanceResult
	// Next is the quote for the following attempt
	Next progression.EnhanceQuote
}

// EnhancePreviewInput defines the input for an enhancement preview
type EnhancePreviewInput struct {
	EquipmentID string
}

// EnhancePreviewOutput defines the output for an enhancement preview
type EnhancePreviewOutput struct {
	Equipment *entities.Equipment
	Quote     progression.EnhanceQuote
	SellPrice int64
}

// DropRatesInput defines the input for a drop-rate preview. A nil
// MapIndex means the player's current map.
type DropRatesInput struct {
	MapIndex *int
}

// MonsterDrops pairs a monster with its loot preview
type MonsterDrops struct {
	Monster *entities.Monster
	Drops   progression.DropPreview
}

// DropRatesOutput defines the output for a drop-rate preview
type DropRatesOutput struct {
	MapIndex int
	Map      entities.Map
	Monsters []MonsterDrops
}

// ApplyOfflineInput defines the input for crediting offline gains
type ApplyOfflineInput struct{}

// ApplyOfflineOutput defines the output for crediting offline gains
type ApplyOfflineOutput struct {
	Projection offline.Projection
}

// ResetInput defines the input for a full reset
type ResetInput struct{}

// ResetOutput defines the output for a full reset
type ResetOutput struct {
	Player *entities.Player
}

// StatusInput defines the input for a status snapshot
type StatusInput struct{}

// StatusOutput is a point-in-time copy of the simulation
type StatusOutput struct {
	Player          *entities.Player
	Total           entities.Attributes
	Realm           entities.RealmTier
	Map             entities.Map
	AvailableMaps   []int
	Running         bool
	ReviveScheduled bool
	Log             []string
}

// EquipInput defines the input for equipping an item
type EquipInput struct {
	EquipmentID string
}

// UnequipInput defines the input for unequipping a slot
type UnequipInput struct {
	Slot entities.Slot
}

// LearnSkillInput defines the input for learning a skill book
type LearnSkillInput struct {
	SkillID string
}

// SelectMapInput defines the input for changing maps
type SelectMapInput struct {
	MapIndex int
}

// OutcomeOutput is returned by actions that only succeed or refuse
type OutcomeOutput struct {
	Outcome progression.Outcome
}

// SaveInput defines the input for a synchronous save
type SaveInput struct{}

// SaveOutput defines the output for a synchronous save
type SaveOutput struct {
	SavedAt time.Time
}
