package main

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/KirkDiggler/cultivation-sim/internal/engine/progression"
	"github.com/KirkDiggler/cultivation-sim/internal/entities"
	"github.com/KirkDiggler/cultivation-sim/internal/orchestrators/simulation"
)

// newPrinter formats numbers with thousands separators
func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

func printStatus(p *message.Printer, out *simulation.StatusOutput, withLog bool) {
	pl := out.Player
	p.Printf("%s (%s)\n", pl.Name, pl.ID)
	p.Printf("Realm:       %s level %d\n", out.Realm.Name, pl.Realm.Level)
	p.Printf("Cultivation: %d / %d\n", pl.Realm.Cultivation, pl.Realm.CultivationMax)
	p.Printf("Currency:    %d  Comprehension: %d  Experience: %d  Stones: %d\n",
		pl.Resources.Currency, pl.Resources.Comprehension, pl.Resources.Experience, pl.Resources.EnhanceStones)
	printAttributes(p, out.Total)
	p.Printf("Map:         %s (available: %v)\n", out.Map.Name, out.AvailableMaps)
	p.Printf("Battles:     %d kills, %d deaths, %d damage\n",
		pl.Battle.Kills, pl.Battle.Deaths, pl.Battle.TotalDamage)
	if out.ReviveScheduled {
		p.Printf("Status:      defeated, reviving\n")
	}

	p.Printf("\nEquipped:\n")
	for _, slot := range entities.AllSlots {
		if eq := pl.Equipped[slot]; eq != nil {
			p.Printf("  %-9s %s\n", slot, describeEquipment(eq))
		} else {
			p.Printf("  %-9s -\n", slot)
		}
	}

	if n := len(pl.Skills.Active) + len(pl.Skills.Passive); n > 0 {
		p.Printf("\nSkills:\n")
		for _, sk := range append(append([]*entities.Skill{}, pl.Skills.Active...), pl.Skills.Passive...) {
			p.Printf("  %s\n", describeSkill(sk))
		}
	}

	p.Printf("\nInventory (%d/%d):\n", len(pl.Inventory.Equipment)+len(pl.Inventory.SkillBooks), pl.Inventory.Capacity)
	for _, eq := range pl.Inventory.Equipment {
		p.Printf("  %s\n", describeEquipment(eq))
	}
	for _, book := range pl.Inventory.SkillBooks {
		p.Printf("  book %s\n", describeSkill(book))
	}

	if withLog && len(out.Log) > 0 {
		p.Printf("\nLog:\n")
		for _, line := range out.Log {
			p.Printf("  %s\n", line)
		}
	}
}

func printAttributes(p *message.Printer, a entities.Attributes) {
	p.Printf("HP %.0f/%.0f  MP %.0f/%.0f  ATK %.0f  DEF %.0f  SPD %.0f\n",
		a.HP, a.HPMax, a.MP, a.MPMax, a.Attack, a.Defense, a.Speed)
	p.Printf("Crit %.1f%% x%.2f  Dodge %.1f%%  Block %.1f%%\n",
		a.CritRate*100, a.CritDamage, a.Dodge*100, a.Block*100)
}

func describeEquipment(eq *entities.Equipment) string {
	name := eq.Name
	if eq.EnhanceLevel > 0 {
		name = fmt.Sprintf("%s +%d", name, eq.EnhanceLevel)
	}
	return fmt.Sprintf("%s [%s, %s] %s", name, eq.Rarity, eq.Quality, eq.ID)
}

func describeSkill(sk *entities.Skill) string {
	return fmt.Sprintf("%s Lv%d [%s, %s] %s", sk.Name, sk.Level, sk.Rarity, sk.Type, sk.ID)
}

func printOutcome(p *message.Printer, o progression.Outcome) {
	if o.Success {
		p.Printf("OK: %s\n", o.Reason)
		return
	}
	p.Printf("Refused: %s\n", o.Reason)
}

func printQuote(p *message.Printer, q progression.EnhanceQuote) {
	if q.Maxed {
		p.Printf("Enhancement is at the maximum level\n")
		return
	}
	p.Printf("Next +%d: %d stones, %d currency, %.0f%% success\n",
		q.Level+1, q.StoneCost, q.CurrencyCost, q.SuccessRate*100)
}
