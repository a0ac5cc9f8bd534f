package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/KirkDiggler/cultivation-sim/internal/engine/progression"
	"github.com/KirkDiggler/cultivation-sim/internal/entities"
	"github.com/KirkDiggler/cultivation-sim/internal/orchestrators/simulation"
)

var breakthroughCmd = &cobra.Command{
	Use:   "breakthrough",
	Short: "Attempt a realm breakthrough",
	Long: `Advance one realm level once the cultivation bar is full. At the last level
of a realm the attempt may fail; the cost is paid either way.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, p *message.Printer) error {
			out, err := a.svc.Breakthrough(ctx, &simulation.BreakthroughInput{})
			if err != nil {
				return fmt.Errorf("failed to break through: %w", err)
			}
			printOutcome(p, out.Result.Outcome)
			if out.Result.Transition != progression.TransitionNone {
				realm, _ := a.game.Realm(out.Realm.Tier)
				p.Printf("Now %s level %d (%d / %d)\n",
					realm.Name, out.Realm.Level, out.Realm.Cultivation, out.Realm.CultivationMax)
			}
			return nil
		})
	},
}

var learnCmd = &cobra.Command{
	Use:   "learn <skill-id>",
	Short: "Learn a skill book from the inventory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, p *message.Printer) error {
			out, err := a.svc.LearnSkill(ctx, &simulation.LearnSkillInput{SkillID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to learn skill: %w", err)
			}
			printOutcome(p, out.Outcome)
			return nil
		})
	},
}

var equipCmd = &cobra.Command{
	Use:   "equip <equipment-id>",
	Short: "Wear equipment from the inventory",
	Long:  `Wear equipment from the inventory. Whatever was in that slot goes back to the inventory.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, p *message.Printer) error {
			out, err := a.svc.Equip(ctx, &simulation.EquipInput{EquipmentID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to equip: %w", err)
			}
			printOutcome(p, out.Outcome)
			return nil
		})
	},
}

var unequipCmd = &cobra.Command{
	Use:       "unequip <slot>",
	Short:     "Move worn equipment back to the inventory",
	Args:      cobra.ExactArgs(1),
	ValidArgs: slotNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot := entities.Slot(args[0])
		if !slot.Valid() {
			return fmt.Errorf("unknown slot %q, want one of %v", args[0], slotNames())
		}
		return withApp(cmd, func(ctx context.Context, a *app, p *message.Printer) error {
			out, err := a.svc.Unequip(ctx, &simulation.UnequipInput{Slot: slot})
			if err != nil {
				return fmt.Errorf("failed to unequip: %w", err)
			}
			printOutcome(p, out.Outcome)
			return nil
		})
	},
}

var mapCmd = &cobra.Command{
	Use:   "map <index>",
	Short: "Choose the hunting map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("map index must be a number: %w", err)
		}
		return withApp(cmd, func(ctx context.Context, a *app, p *message.Printer) error {
			out, err := a.svc.SelectMap(ctx, &simulation.SelectMapInput{MapIndex: index})
			if err != nil {
				return fmt.Errorf("failed to select map: %w", err)
			}
			printOutcome(p, out.Outcome)
			return nil
		})
	},
}

func slotNames() []string {
	names := make([]string, 0, len(entities.AllSlots))
	for _, s := range entities.AllSlots {
		names = append(names, string(s))
	}
	return names
}
