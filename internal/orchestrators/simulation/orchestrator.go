// Package simulation runs the idle game for one player: the meditation and
// battle drivers, the deferred revive, and every player-facing action.
package simulation

//go:generate mockgen -destination=mock/mock_service.go -package=simulationmock github.com/KirkDiggler/cultivation-sim/internal/orchestrators/simulation Service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/cultivation-sim/internal/config"
	"github.com/KirkDiggler/cultivation-sim/internal/engine/combat"
	"github.com/KirkDiggler/cultivation-sim/internal/engine/offline"
	"github.com/KirkDiggler/cultivation-sim/internal/engine/progression"
	"github.com/KirkDiggler/cultivation-sim/internal/entities"
	"github.com/KirkDiggler/cultivation-sim/internal/errors"
	"github.com/KirkDiggler/cultivation-sim/internal/journal"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/clock"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/idgen"
	playerrepo "github.com/KirkDiggler/cultivation-sim/internal/repositories/player"
	"github.com/KirkDiggler/cultivation-sim/internal/scheduler"
)

const defaultSaveTimeout = 5 * time.Second

const errNotLoaded = "player not loaded"

// Service defines the simulation operations
type Service interface {
	// Load reads the saved player, or creates and saves a new one
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)

	// Start begins the drivers the player has enabled. Drivers already
	// running are left alone.
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// Stop cancels the running drivers. Calling it again is a no-op.
	Stop(ctx context.Context, input *StopInput) (*StopOutput, error)

	Breakthrough(ctx context.Context, input *BreakthroughInput) (*BreakthroughOutput, error)
	SellEquipment(ctx context.Context, input *SellEquipmentInput) (*SellOutput, error)
	SellSkill(ctx context.Context, input *SellSkillInput) (*SellOutput, error)
	Enhance(ctx context.Context, input *EnhanceInput) (*EnhanceOutput, error)

	// EnhancePreview returns errors.NotFound for an unknown item
	EnhancePreview(ctx context.Context, input *EnhancePreviewInput) (*EnhancePreviewOutput, error)

	// DropRates returns errors.InvalidArgument for an unknown map
	DropRates(ctx context.Context, input *DropRatesInput) (*DropRatesOutput, error)

	// ApplyOffline credits what was earned since the last save
	ApplyOffline(ctx context.Context, input *ApplyOfflineInput) (*ApplyOfflineOutput, error)

	// Reset stops everything, cancels a pending revive, deletes the save
	// and starts over with a new player.
	Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error)

	Status(ctx context.Context, input *StatusInput) (*StatusOutput, error)
	Equip(ctx context.Context, input *EquipInput) (*OutcomeOutput, error)
	Unequip(ctx context.Context, input *UnequipInput) (*OutcomeOutput, error)
	LearnSkill(ctx context.Context, input *LearnSkillInput) (*OutcomeOutput, error)
	SelectMap(ctx context.Context, input *SelectMapInput) (*OutcomeOutput, error)

	// Save writes the player and waits for the write
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Close stops the drivers and the revive, waits for background saves
	// and writes a final save.
	Close(ctx context.Context) error
}

// Config holds the dependencies for the simulation orchestrator
type Config struct {
	Game       *config.Game
	Ledger     *progression.Ledger
	Resolver   *combat.Resolver
	Projector  *offline.Projector
	Repository playerrepo.Repository
	Scheduler  scheduler.Scheduler
	Journal    *journal.Journal
	Clock      clock.Clock
	IDs        idgen.Generator

	// PlayerKey is the logical key the snapshot is stored under
	PlayerKey   string
	SaveTimeout time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Game == nil {
		vb.RequiredField("Game")
	}
	if c.Ledger == nil {
		vb.RequiredField("Ledger")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Projector == nil {
		vb.RequiredField("Projector")
	}
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Scheduler == nil {
		vb.RequiredField("Scheduler")
	}
	if c.Journal == nil {
		vb.RequiredField("Journal")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDs == nil {
		vb.RequiredField("IDs")
	}
	errors.ValidateRequired("PlayerKey", c.PlayerKey, vb)
	errors.ValidateNonNegative("SaveTimeout", c.SaveTimeout, vb)

	return vb.Build()
}

type orchestrator struct {
	game      *config.Game
	ledger    *progression.Ledger
	resolver  *combat.Resolver
	projector *offline.Projector
	repo      playerrepo.Repository
	sched     scheduler.Scheduler
	journal   *journal.Journal
	clock     clock.Clock
	ids       idgen.Generator

	key         string
	saveTimeout time.Duration

	// mu serializes every read-modify-write of player
	mu         sync.Mutex
	player     *entities.Player
	meditation scheduler.Handle
	battle     scheduler.Handle
	// epoch invalidates ticks already in flight when the drivers stop
	epoch     uint64
	revive    scheduler.Handle
	reviveSeq uint64

	saves sync.WaitGroup
}

// NewOrchestrator creates a simulation orchestrator. Call Load before any
// other operation.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	timeout := cfg.SaveTimeout
	if timeout == 0 {
		timeout = defaultSaveTimeout
	}

	return &orchestrator{
		game:        cfg.Game,
		ledger:      cfg.Ledger,
		resolver:    cfg.Resolver,
		projector:   cfg.Projector,
		repo:        cfg.Repository,
		sched:       cfg.Scheduler,
		journal:     cfg.Journal,
		clock:       cfg.Clock,
		ids:         cfg.IDs,
		key:         cfg.PlayerKey,
		saveTimeout: timeout,
	}, nil
}

func (o *orchestrator) Load(ctx context.Context, _ *LoadInput) (*LoadOutput, error) {
	loaded, err := o.repo.Load(ctx, playerrepo.LoadInput{Key: o.key})
	if err != nil && !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, "failed to load player")
	}

	out := &LoadOutput{}
	var p *entities.Player
	if err != nil {
		p = o.ledger.NewPlayer(o.ids.Generate(), o.clock.Now())
		out.Created = true
	} else {
		p = loaded.Player
		out.Migrated = o.ledger.Migrate(p)
	}

	o.mu.Lock()
	o.player = p
	o.journal.SetSource(journal.PlayerEntity(p.ID))
	out.Player = p.Clone()
	o.mu.Unlock()

	if out.Created {
		snapshot := out.Player.Clone()
		if _, err := o.write(ctx, snapshot); err != nil {
			return nil, errors.Wrap(err, "failed to save new player")
		}
	}

	slog.InfoContext(ctx, "player loaded",
		"player_id", out.Player.ID,
		"created", out.Created,
		"migrated", out.Migrated,
		"tier", out.Player.Realm.Tier,
		"level", out.Player.Realm.Level,
	)

	return out, nil
}

func (o *orchestrator) Start(ctx context.Context, _ *StartInput) (*StartOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return nil, errors.FailedPrecondition(errNotLoaded)
	}

	out := &StartOutput{}
	epoch := o.epoch
	wanted := 0

	if o.player.Battle.AutoMeditate {
		wanted++
		if o.meditation == nil {
			o.meditation = o.sched.Every(o.game.Meditation.Interval, func() { o.meditationTick(epoch) })
			out.Meditation = true
		}
	}
	if o.player.Battle.AutoBattle {
		wanted++
		if o.battle == nil {
			o.battle = o.sched.Every(o.game.Combat.Interval, func() { o.battleTick(epoch) })
			out.Battle = true
		}
	}
	out.AlreadyRunning = wanted > 0 && !out.Meditation && !out.Battle

	slog.DebugContext(ctx, "drivers started",
		"meditation", out.Meditation,
		"battle", out.Battle,
		"already_running", out.AlreadyRunning,
	)

	return out, nil
}

func (o *orchestrator) Stop(ctx context.Context, _ *StopInput) (*StopOutput, error) {
	o.mu.Lock()
	stopped := o.stopDriversLocked()
	o.mu.Unlock()

	if stopped > 0 {
		slog.DebugContext(ctx, "drivers stopped", "count", stopped)
	}
	return &StopOutput{Stopped: stopped}, nil
}

// stopDriversLocked cancels the drivers and returns how many were running
func (o *orchestrator) stopDriversLocked() int {
	stopped := 0
	if o.meditation != nil {
		o.meditation.Stop()
		o.meditation = nil
		stopped++
	}
	if o.battle != nil {
		o.battle.Stop()
		o.battle = nil
		stopped++
	}
	o.epoch++
	return stopped
}

// cancelReviveLocked drops a pending revive so it never fires
func (o *orchestrator) cancelReviveLocked() {
	if o.revive != nil {
		o.revive.Stop()
		o.revive = nil
	}
	o.reviveSeq++
}

func (o *orchestrator) Reset(ctx context.Context, _ *ResetInput) (*ResetOutput, error) {
	o.mu.Lock()
	o.stopDriversLocked()
	o.cancelReviveLocked()
	o.player = nil
	o.mu.Unlock()

	o.journal.Clear()
	// a reset must not be overwritten by a save that was already in flight
	o.saves.Wait()

	if _, err := o.repo.Delete(ctx, playerrepo.DeleteInput{Key: o.key}); err != nil {
		return nil, errors.Wrap(err, "failed to delete save")
	}

	p := o.ledger.NewPlayer(o.ids.Generate(), o.clock.Now())

	o.mu.Lock()
	o.player = p
	o.journal.SetSource(journal.PlayerEntity(p.ID))
	snapshot := o.stampLocked()
	out := &ResetOutput{Player: p.Clone()}
	o.mu.Unlock()

	if _, err := o.write(ctx, snapshot); err != nil {
		return nil, errors.Wrap(err, "failed to save new player")
	}

	slog.InfoContext(ctx, "game reset", "player_id", p.ID)
	return out, nil
}

func (o *orchestrator) Status(_ context.Context, _ *StatusInput) (*StatusOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	p := o.player
	if p == nil {
		return nil, errors.FailedPrecondition(errNotLoaded)
	}

	realm, _ := o.game.Realm(p.Realm.Tier)
	m, _ := o.game.Map(p.Battle.MapIndex)

	return &StatusOutput{
		Player:          p.Clone(),
		Total:           p.TotalAttributes(),
		Realm:           realm,
		Map:             m,
		AvailableMaps:   o.ledger.AvailableMaps(p),
		Running:         o.meditation != nil || o.battle != nil,
		ReviveScheduled: o.revive != nil,
		Log:             o.journal.Lines(),
	}, nil
}

func (o *orchestrator) Close(ctx context.Context) error {
	o.mu.Lock()
	o.stopDriversLocked()
	o.cancelReviveLocked()
	loaded := o.player != nil
	o.mu.Unlock()

	o.saves.Wait()

	if !loaded {
		return nil
	}
	_, err := o.Save(ctx, &SaveInput{})
	return err
}
