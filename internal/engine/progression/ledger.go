// Package progression owns every rule that changes the player's standing:
// battle rewards, realm breakthroughs, enhancement, the market, gear and
// skill management, meditation and save migration.
//
// Precondition failures (not enough cultivation, a full inventory, an
// unknown item) are reported as an unsuccessful Outcome and leave the player
// untouched. None of these operations return errors.
package progression

import (
	"fmt"

	"github.com/KirkDiggler/cultivation-sim/internal/config"
	"github.com/KirkDiggler/cultivation-sim/internal/engine/loot"
	"github.com/KirkDiggler/cultivation-sim/internal/errors"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/random"
)

// Outcome reports whether an action went through. Reason is a short human
// readable message in both cases.
type Outcome struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason"`
}

func succeed(format string, args ...any) Outcome {
	return Outcome{Success: true, Reason: fmt.Sprintf(format, args...)}
}

func refuse(format string, args ...any) Outcome {
	return Outcome{Reason: fmt.Sprintf(format, args...)}
}

// Config holds the ledger's dependencies
type Config struct {
	Game   *config.Game
	Loot   *loot.Generator
	Random random.Source
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Game == nil {
		vb.RequiredField("Game")
	}
	if c.Loot == nil {
		vb.RequiredField("Loot")
	}
	if c.Random == nil {
		vb.RequiredField("Random")
	}

	return vb.Build()
}

// Ledger applies progression rules against static game data
type Ledger struct {
	game *config.Game
	loot *loot.Generator
	rng  random.Source
}

// NewLedger creates a progression ledger
func NewLedger(cfg *Config) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Ledger{
		game: cfg.Game,
		loot: cfg.Loot,
		rng:  cfg.Random,
	}, nil
}
