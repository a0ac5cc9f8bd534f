package simulation

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/cultivation-sim/internal/entities"
	"github.com/KirkDiggler/cultivation-sim/internal/errors"
	"github.com/KirkDiggler/cultivation-sim/internal/journal"
	playerrepo "github.com/KirkDiggler/cultivation-sim/internal/repositories/player"
)

// stampLocked marks the player as online now and returns a copy to save.
// The copy is what lets a save run while ticks keep mutating the player.
func (o *orchestrator) stampLocked() *entities.Player {
	o.player.Offline.LastOnline = o.clock.Now()
	return o.player.Clone()
}

func (o *orchestrator) write(ctx context.Context, snapshot *entities.Player) (*playerrepo.SaveOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, o.saveTimeout)
	defer cancel()

	return o.repo.Save(ctx, playerrepo.SaveInput{Key: o.key, Player: snapshot})
}

// saveAsyncLocked starts a background save of the current player. The
// simulation never waits for it; the last write wins.
func (o *orchestrator) saveAsyncLocked() {
	snapshot := o.stampLocked()

	o.saves.Add(1)
	go func() {
		defer o.saves.Done()

		ctx := context.Background()
		if _, err := o.write(ctx, snapshot); err != nil {
			level := slog.LevelError
			if errors.IsRetryable(err) {
				level = slog.LevelWarn
			}
			slog.Log(ctx, level, "background save failed",
				"player_id", snapshot.ID,
				"error", err,
			)
			o.journal.Publish(ctx, journal.EventSaveFailed, "Save failed: "+err.Error(), map[string]any{
				"code": string(errors.GetCode(err)),
			})
		}
	}()
}

func (o *orchestrator) Save(ctx context.Context, _ *SaveInput) (*SaveOutput, error) {
	o.mu.Lock()
	if o.player == nil {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errNotLoaded)
	}
	snapshot := o.stampLocked()
	o.mu.Unlock()

	out, err := o.write(ctx, snapshot)
	if err != nil {
		return nil, errors.Wrap(err, "failed to save player")
	}
	return &SaveOutput{SavedAt: out.SavedAt}, nil
}
