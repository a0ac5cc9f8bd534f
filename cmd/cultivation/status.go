package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/KirkDiggler/cultivation-sim/internal/orchestrators/simulation"
)

var statusShowLog bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the player",
	Long:  `Show realm, resources, attributes, gear, skills and inventory of the saved player.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, p *message.Printer) error {
			out, err := a.svc.Status(ctx, &simulation.StatusInput{})
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}
			printStatus(p, out, statusShowLog)
			return nil
		})
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusShowLog, "log", false, "Include the battle log")
}

// withApp builds the app, credits offline progress, runs fn and saves.
// Every one-shot command goes through it.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app, p *message.Printer) error) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}

	p := newPrinter()
	offline, err := a.svc.ApplyOffline(ctx, &simulation.ApplyOfflineInput{})
	if err != nil {
		a.release(ctx)
		return fmt.Errorf("failed to apply offline progress: %w", err)
	}
	a.offline = offline.Projection
	if !a.offline.Empty() {
		printProjection(p, offline)
	}

	runErr := fn(ctx, a, p)
	if err := a.close(ctx); err != nil && runErr == nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return runErr
}
