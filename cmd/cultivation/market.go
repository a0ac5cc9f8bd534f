package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/KirkDiggler/cultivation-sim/internal/orchestrators/simulation"
)

var sellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Sell items from the inventory",
}

var sellEquipmentCmd = &cobra.Command{
	Use:   "equipment <equipment-id>",
	Short: "Sell a piece of equipment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, p *message.Printer) error {
			out, err := a.svc.SellEquipment(ctx, &simulation.SellEquipmentInput{EquipmentID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to sell equipment: %w", err)
			}
			printSale(p, out)
			return nil
		})
	},
}

var sellSkillCmd = &cobra.Command{
	Use:   "skill <skill-id>",
	Short: "Sell a skill book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, p *message.Printer) error {
			out, err := a.svc.SellSkill(ctx, &simulation.SellSkillInput{SkillID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to sell skill book: %w", err)
			}
			printSale(p, out)
			return nil
		})
	},
}

var enhancePreview bool

var enhanceCmd = &cobra.Command{
	Use:   "enhance <equipment-id>",
	Short: "Enhance worn or carried equipment",
	Long: `Spend enhance stones and currency to raise an item's enhancement level. The
cost is paid on every attempt; a failure past the safe level may downgrade the item.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, p *message.Printer) error {
			if enhancePreview {
				out, err := a.svc.EnhancePreview(ctx, &simulation.EnhancePreviewInput{EquipmentID: args[0]})
				if err != nil {
					return fmt.Errorf("failed to preview enhancement: %w", err)
				}
				p.Printf("%s\n", describeEquipment(out.Equipment))
				printQuote(p, out.Quote)
				p.Printf("Sells for %d currency\n", out.SellPrice)
				return nil
			}

			out, err := a.svc.Enhance(ctx, &simulation.EnhanceInput{EquipmentID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to enhance: %w", err)
			}
			printOutcome(p, out.Result.Outcome)
			if out.Result.Attempted {
				printQuote(p, out.Next)
			}
			return nil
		})
	},
}

var dropsMap int

var dropsCmd = &cobra.Command{
	Use:   "drops",
	Short: "Show what the monsters on a map drop",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, p *message.Printer) error {
			input := &simulation.DropRatesInput{}
			if cmd.Flags().Changed("map") {
				input.MapIndex = &dropsMap
			}
			out, err := a.svc.DropRates(ctx, input)
			if err != nil {
				return fmt.Errorf("failed to get drop rates: %w", err)
			}

			p.Printf("%s (map %d)\n", out.Map.Name, out.MapIndex)
			for _, m := range out.Monsters {
				kind := ""
				if m.Monster.Boss {
					kind = " [boss]"
				}
				d := m.Drops
				p.Printf("  %s%s\n", m.Monster.Name, kind)
				p.Printf("    equipment %.0f%% x%s  skill book %.0f%% x%s  stones %.0f%% (%s)\n",
					d.EquipmentRate*100, d.EquipmentCount,
					d.SkillRate*100, d.SkillCount,
					d.EnhanceStoneRate*100, d.EnhanceStoneRange)
			}
			return nil
		})
	},
}

func init() {
	sellCmd.AddCommand(sellEquipmentCmd)
	sellCmd.AddCommand(sellSkillCmd)

	enhanceCmd.Flags().BoolVar(&enhancePreview, "preview", false, "Show the cost and odds without enhancing")
	dropsCmd.Flags().IntVar(&dropsMap, "map", 0, "Map index (defaults to the current map)")
}

func printSale(p *message.Printer, out *simulation.SellOutput) {
	printOutcome(p, out.Result.Outcome)
	p.Printf("Currency: %d\n", out.Currency)
}
