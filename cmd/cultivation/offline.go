package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/KirkDiggler/cultivation-sim/internal/orchestrators/simulation"
)

var offlineCmd = &cobra.Command{
	Use:   "offline",
	Short: "Collect offline progress",
	Long: `Credit the cultivation and currency earned since the player was last online.
Every command does this on load; this one only reports it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(_ context.Context, a *app, p *message.Printer) error {
			// withApp already applied and printed anything earned
			if a.offline.Empty() {
				p.Printf("Nothing earned offline\n")
			}
			return nil
		})
	},
}

var resetConfirmed bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the save and start over",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !resetConfirmed {
			return fmt.Errorf("reset deletes all progress; pass --yes to confirm")
		}
		return withApp(cmd, func(ctx context.Context, a *app, p *message.Printer) error {
			out, err := a.svc.Reset(ctx, &simulation.ResetInput{})
			if err != nil {
				return fmt.Errorf("failed to reset: %w", err)
			}
			p.Printf("Started over as %s (%s)\n", out.Player.Name, out.Player.ID)
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "Confirm the reset")
}

func printProjection(p *message.Printer, out *simulation.ApplyOfflineOutput) {
	pr := out.Projection
	p.Printf("Offline for %s: +%d cultivation, +%d currency\n",
		pr.Elapsed.Round(time.Second), pr.Cultivation, pr.Currency)
}
