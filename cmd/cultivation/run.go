package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/cultivation-sim/internal/journal"
	"github.com/KirkDiggler/cultivation-sim/internal/orchestrators/simulation"
)

const shutdownTimeout = 10 * time.Second

var (
	runFor       time.Duration
	autosaveEach time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation until interrupted",
	Long: `Load the player, credit offline progress and run meditation and battles in
the foreground, printing the battle log. The player is saved on exit.`,
	RunE: runSimulation,
}

func init() {
	runCmd.Flags().DurationVar(&runFor, "for", 0, "Stop after this long (0 runs until interrupted)")
	runCmd.Flags().DurationVar(&autosaveEach, "autosave", 30*time.Second, "Autosave interval (0 disables)")
}

// journalEvents are printed while the simulation runs
var journalEvents = []string{
	journal.EventBattleLog,
	journal.EventOfflineSummary,
	journal.EventBreakthrough,
	journal.EventEnhance,
	journal.EventSaveFailed,
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if runFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runFor)
		defer cancel()
	}

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}

	lines := make(chan string, 64)
	for _, eventType := range journalEvents {
		a.journal.Bus().SubscribeFunc(eventType, 0, func(_ context.Context, e events.Event) error {
			line, _ := e.Context().Get(journal.KeyLine)
			s, ok := line.(string)
			if !ok {
				return nil
			}
			select {
			case lines <- s:
			case <-ctx.Done():
			}
			return nil
		})
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case line := <-lines:
				fmt.Println(line)
			case <-gctx.Done():
				return nil
			}
		}
	})

	if autosaveEach > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(autosaveEach)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if _, err := a.svc.Save(gctx, &simulation.SaveInput{}); err != nil && gctx.Err() == nil {
						slog.ErrorContext(gctx, "Autosave failed", "error", err)
					}
				case <-gctx.Done():
					return nil
				}
			}
		})
	}

	if _, err := a.svc.ApplyOffline(ctx, &simulation.ApplyOfflineInput{}); err != nil {
		stop()
		_ = g.Wait()
		a.release(ctx)
		return fmt.Errorf("failed to apply offline progress: %w", err)
	}
	started, err := a.svc.Start(ctx, &simulation.StartInput{})
	if err != nil {
		stop()
		_ = g.Wait()
		a.release(ctx)
		return fmt.Errorf("failed to start simulation: %w", err)
	}
	slog.InfoContext(ctx, "Simulation running",
		"meditation", started.Meditation,
		"battle", started.Battle,
	)

	waitErr := g.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// status before close so the summary reflects the final tick
	status, statusErr := a.svc.Status(shutdownCtx, &simulation.StatusInput{})
	if err := a.close(shutdownCtx); err != nil {
		return fmt.Errorf("failed to save on shutdown: %w", err)
	}
	if statusErr == nil {
		fmt.Println()
		printStatus(newPrinter(), status, false)
	}
	return waitErr
}
