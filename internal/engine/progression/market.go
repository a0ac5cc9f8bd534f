package progression

import (
	"math"

	"github.com/KirkDiggler/cultivation-sim/internal/entities"
)

// SaleResult is the outcome of selling an item
type SaleResult struct {
	Outcome
	Price int64 `json:"price"`
}

// EquipmentPrice is floor((rarity base + levels past the first × level
// bonus + enhance level × enhance bonus) × quality multiplier).
func (l *Ledger) EquipmentPrice(eq *entities.Equipment) int64 {
	m := l.game.Market

	var base int64
	if r := int(eq.Rarity); r >= 0 && r < len(m.RarityPrices) {
		base = m.RarityPrices[r]
	} else if len(m.RarityPrices) > 0 {
		base = m.RarityPrices[0]
	}

	mult := 1.0
	if i := int(eq.Quality) - int(entities.QualityLow); i >= 0 && i < len(m.QualityMultipliers) {
		mult = m.QualityMultipliers[i]
	}

	levels := int64(max(eq.Level-1, 0))
	sum := base + levels*m.LevelBonus + int64(eq.EnhanceLevel)*m.EnhanceBonus
	return int64(math.Floor(float64(sum) * mult))
}

// SkillPrice is the configured share of the learn cost, floored
func (l *Ledger) SkillPrice(s *entities.Skill) int64 {
	return int64(math.Floor(float64(s.LearnCost.Currency) * l.game.Market.SkillSellRatio))
}

// SellEquipment sells a carried piece of equipment. Worn items must be
// unequipped first.
func (l *Ledger) SellEquipment(p *entities.Player, equipmentID string) SaleResult {
	eq, ok := p.Inventory.TakeEquipment(equipmentID)
	if !ok {
		return SaleResult{Outcome: refuse("equipment %s is not in the inventory", equipmentID)}
	}

	price := l.EquipmentPrice(eq)
	p.Resources.Currency += price
	return SaleResult{Outcome: succeed("sold %s for %d", eq.Name, price), Price: price}
}

// SellSkill sells a skill book from the inventory
func (l *Ledger) SellSkill(p *entities.Player, skillID string) SaleResult {
	book, ok := p.Inventory.TakeSkillBook(skillID)
	if !ok {
		return SaleResult{Outcome: refuse("skill book %s is not in the inventory", skillID)}
	}

	price := l.SkillPrice(book)
	p.Resources.Currency += price
	return SaleResult{Outcome: succeed("sold %s for %d", book.Name, price), Price: price}
}
