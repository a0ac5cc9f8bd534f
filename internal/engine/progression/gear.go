package progression

import (
	"math"

	"github.com/KirkDiggler/cultivation-sim/internal/entities"
)

// Equip moves a carried item into its slot. Whatever was worn there goes
// back to the inventory.
func (l *Ledger) Equip(p *entities.Player, equipmentID string) Outcome {
	eq, ok := p.Inventory.FindEquipment(equipmentID)
	if !ok {
		return refuse("equipment %s is not in the inventory", equipmentID)
	}
	if !eq.Slot.Valid() {
		return refuse("%s has no slot", eq.Name)
	}
	if !meetsRequirement(p, eq.RequireTier, eq.RequireLevel) {
		return refuse("%s requires realm %d level %d", eq.Name, eq.RequireTier, eq.RequireLevel)
	}

	p.Inventory.TakeEquipment(equipmentID)
	if p.Equipped == nil {
		p.Equipped = make(entities.Equipped)
	}
	if prev := p.Equipped[eq.Slot]; prev != nil {
		// the slot just freed by the take always fits it
		p.Inventory.Equipment = append(p.Inventory.Equipment, prev)
	}
	p.Equipped[eq.Slot] = eq
	clampPools(p)

	return succeed("equipped %s", eq.Name)
}

// Unequip moves the item worn in slot back to the inventory
func (l *Ledger) Unequip(p *entities.Player, slot entities.Slot) Outcome {
	eq := p.Equipped[slot]
	if eq == nil {
		return refuse("nothing equipped in %s", slot)
	}
	if !p.Inventory.AddEquipment(eq) {
		return refuse("inventory is full")
	}

	delete(p.Equipped, slot)
	clampPools(p)
	return succeed("unequipped %s", eq.Name)
}

// LearnSkill pays a skill book's learn cost and moves it into the matching
// skill list.
func (l *Ledger) LearnSkill(p *entities.Player, skillID string) Outcome {
	var book *entities.Skill
	for _, s := range p.Inventory.SkillBooks {
		if s.ID == skillID {
			book = s
			break
		}
	}
	if book == nil {
		return refuse("skill book %s is not in the inventory", skillID)
	}
	if p.Resources.Currency < book.LearnCost.Currency {
		return refuse("need %d currency to learn %s", book.LearnCost.Currency, book.Name)
	}

	p.Inventory.TakeSkillBook(skillID)
	p.Resources.Currency -= book.LearnCost.Currency
	if book.Type == entities.SkillActive {
		p.Skills.Active = append(p.Skills.Active, book)
	} else {
		p.Skills.Passive = append(p.Skills.Passive, book)
		clampPools(p)
	}
	return succeed("learned %s", book.Name)
}

// SelectMap moves the player to the map at index if it is unlocked
func (l *Ledger) SelectMap(p *entities.Player, index int) Outcome {
	m, ok := l.game.Map(index)
	if !ok {
		return refuse("no map %d", index)
	}
	if !m.Unlocked(p.Realm.Tier, p.Realm.Level) {
		return refuse("%s requires realm %d level %d", m.Name, m.RequireTier, m.RequireLevel)
	}

	p.Battle.MapIndex = index
	return succeed("moved to %s", m.Name)
}

// AvailableMaps lists the indexes of the maps the player may hunt on
func (l *Ledger) AvailableMaps(p *entities.Player) []int {
	return l.game.UnlockedMaps(p.Realm.Tier, p.Realm.Level)
}

func meetsRequirement(p *entities.Player, tier, level int) bool {
	if p.Realm.Tier != tier {
		return p.Realm.Tier > tier
	}
	return p.Realm.Level >= level
}

// clampPools keeps current HP and MP within the total maximums
func clampPools(p *entities.Player) {
	total := p.TotalAttributes()
	p.Attributes.HP = math.Min(p.Attributes.HP, total.HPMax)
	p.Attributes.MP = math.Min(p.Attributes.MP, total.MPMax)
}
