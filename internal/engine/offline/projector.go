// Package offline projects what the player earned while the simulation was
// not running.
package offline

import (
	"math"
	"time"

	"github.com/KirkDiggler/cultivation-sim/internal/config"
	"github.com/KirkDiggler/cultivation-sim/internal/entities"
	"github.com/KirkDiggler/cultivation-sim/internal/errors"
)

// Config holds the projector's tuning
type Config struct {
	Offline        config.Offline
	Meditation     config.Meditation
	BattleInterval time.Duration
}

// Validate ensures the tuning is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidatePositive("Meditation.Interval", c.Meditation.Interval, vb)
	errors.ValidatePositive("BattleInterval", c.BattleInterval, vb)
	errors.ValidatePositive("Offline.MaxHours", c.Offline.MaxHours, vb)
	errors.ValidateProbability("Offline.Efficiency", c.Offline.Efficiency, vb)
	errors.ValidateNonNegative("Offline.MinDuration", c.Offline.MinDuration, vb)

	return vb.Build()
}

// Projection is the gain for one offline period
type Projection struct {
	Elapsed     time.Duration `json:"elapsed"`
	Cultivation int64         `json:"cultivation"`
	Currency    int64         `json:"currency"`
}

// Empty reports whether nothing was earned
func (p Projection) Empty() bool {
	return p.Cultivation == 0 && p.Currency == 0
}

// Projector computes offline gains
type Projector struct {
	cfg Config
}

// NewProjector creates an offline projector
func NewProjector(cfg *Config) (*Projector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Projector{cfg: *cfg}, nil
}

// Project computes the gain from the player's last online time to now
// without changing the player. The period is capped at the player's
// maximum offline hours; periods shorter than the minimum yield nothing.
func (p *Projector) Project(player *entities.Player, now time.Time) Projection {
	elapsed := now.Sub(player.Offline.LastOnline)
	if elapsed < 0 {
		elapsed = 0
	}

	maxHours := player.Offline.MaxOfflineHours
	if maxHours <= 0 {
		maxHours = p.cfg.Offline.MaxHours
	}
	if limit := time.Duration(maxHours * float64(time.Hour)); elapsed > limit {
		elapsed = limit
	}

	if elapsed < p.cfg.Offline.MinDuration || elapsed == 0 {
		return Projection{Elapsed: elapsed}
	}

	eff := p.cfg.Offline.Efficiency
	rate := p.cfg.Meditation.RatePerTick(player.Realm.Tier)
	ticks := float64(elapsed) / float64(p.cfg.Meditation.Interval)
	battles := math.Floor(float64(elapsed) / float64(p.cfg.BattleInterval) * eff)

	return Projection{
		Elapsed:     elapsed,
		Cultivation: int64(math.Floor(rate * ticks * eff)),
		Currency:    int64(battles) * p.cfg.Offline.BattleReward,
	}
}

// Apply credits the projection and moves the player's last online time to
// now, so applying again for the same now earns nothing.
func (p *Projector) Apply(player *entities.Player, now time.Time) Projection {
	proj := p.Project(player, now)

	player.Realm.Cultivation += proj.Cultivation
	player.Resources.Currency += proj.Currency
	player.Offline.LastOnline = now

	return proj
}
