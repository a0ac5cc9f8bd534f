package progression

import (
	"fmt"

	"github.com/KirkDiggler/cultivation-sim/internal/engine/loot"
	"github.com/KirkDiggler/cultivation-sim/internal/entities"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/random"
)

const bossMultiplier = 3

var defaultComprehension = entities.Range{Min: 0, Max: 1}

// Reward is what one victory yields
type Reward struct {
	Currency      int64
	Experience    int64
	Comprehension int64
	EnhanceStones int64
	Equipment     []*entities.Equipment
	SkillBooks    []*entities.Skill
}

// GenerateReward rolls the spoils of defeating monster. playerTier skews
// skill book rarity.
//
// Bosses triple every resource and always drop one or two pieces of
// equipment plus exactly one skill book. Other monsters roll equipment and
// a skill book independently at their table rates.
func (l *Ledger) GenerateReward(monster *entities.Monster, playerTier int) *Reward {
	mult := int64(1)
	if monster.Boss {
		mult = bossMultiplier
	}

	drops := monster.Drops
	comprehension := defaultComprehension
	if drops.Comprehension != nil {
		comprehension = *drops.Comprehension
	}

	r := &Reward{
		Currency:      l.rollRange(drops.Currency) * mult,
		Experience:    l.rollRange(drops.Experience) * mult,
		Comprehension: l.rollRange(comprehension) * mult,
	}
	if drops.EnhanceStones != nil {
		r.EnhanceStones = l.rollRange(*drops.EnhanceStones) * mult
	}

	equipment := loot.EquipmentInput{
		ContextTier: monster.RequireTier,
		Level:       monster.Level,
		Restrict:    true,
	}

	if monster.Boss {
		count := 1
		if random.Chance(l.rng, l.game.Loot.BossDoubleDropChance) {
			count = 2
		}
		for range count {
			equipment.Slot = l.loot.RandomSlot()
			r.Equipment = append(r.Equipment, l.loot.Equipment(equipment))
		}
		r.SkillBooks = append(r.SkillBooks, l.loot.Skill(l.loot.RandomSkillType(), playerTier))
		return r
	}

	if random.Chance(l.rng, drops.EquipmentRate) {
		equipment.Slot = l.loot.RandomSlot()
		r.Equipment = append(r.Equipment, l.loot.Equipment(equipment))
	}
	if random.Chance(l.rng, drops.SkillRate) {
		r.SkillBooks = append(r.SkillBooks, l.loot.Skill(l.loot.RandomSkillType(), playerTier))
	}
	return r
}

func (l *Ledger) rollRange(r entities.Range) int64 {
	return random.IntRange(l.rng, r.Min, r.Max)
}

// ApplyResult counts what made it into the inventory
type ApplyResult struct {
	KeptEquipment     int
	DroppedEquipment  int
	KeptSkillBooks    int
	DroppedSkillBooks int
}

// ApplyReward credits resources and stores items until the inventory is
// full. Items that do not fit are discarded.
func ApplyReward(p *entities.Player, r *Reward) ApplyResult {
	p.Resources.Currency += r.Currency
	p.Resources.Experience += r.Experience
	p.Resources.Comprehension += r.Comprehension
	p.Resources.EnhanceStones += r.EnhanceStones

	var res ApplyResult
	for _, eq := range r.Equipment {
		if p.Inventory.AddEquipment(eq) {
			res.KeptEquipment++
		} else {
			res.DroppedEquipment++
		}
	}
	for _, book := range r.SkillBooks {
		if p.Inventory.AddSkillBook(book) {
			res.KeptSkillBooks++
		} else {
			res.DroppedSkillBooks++
		}
	}
	return res
}

// DropPreview describes a monster's loot table for display
type DropPreview struct {
	EquipmentRate     float64 `json:"equipmentRate"`
	SkillRate         float64 `json:"skillRate"`
	EnhanceStoneRate  float64 `json:"enhanceStoneRate"`
	EquipmentCount    string  `json:"equipmentCount"`
	SkillCount        string  `json:"skillCount"`
	EnhanceStoneRange string  `json:"enhanceStoneRange"`
}

// DropRates previews what monster can drop. Boss drops are guaranteed so
// their rates read 1.
func DropRates(monster *entities.Monster) DropPreview {
	d := monster.Drops
	preview := DropPreview{
		EquipmentRate:     d.EquipmentRate,
		SkillRate:         d.SkillRate,
		EquipmentCount:    "1",
		SkillCount:        "1",
		EnhanceStoneRange: "0",
	}
	if monster.Boss {
		preview.EquipmentRate = 1
		preview.SkillRate = 1
		preview.EquipmentCount = "1-2"
	}
	if d.EnhanceStones != nil {
		preview.EnhanceStoneRate = 1
		preview.EnhanceStoneRange = fmt.Sprintf("%d-%d", d.EnhanceStones.Min, d.EnhanceStones.Max)
	}
	return preview
}
