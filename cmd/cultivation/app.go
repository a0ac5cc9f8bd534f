package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/cultivation-sim/internal/config"
	"github.com/KirkDiggler/cultivation-sim/internal/engine/combat"
	"github.com/KirkDiggler/cultivation-sim/internal/engine/loot"
	"github.com/KirkDiggler/cultivation-sim/internal/engine/offline"
	"github.com/KirkDiggler/cultivation-sim/internal/engine/progression"
	"github.com/KirkDiggler/cultivation-sim/internal/journal"
	"github.com/KirkDiggler/cultivation-sim/internal/orchestrators/simulation"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/clock"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/idgen"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/random"
	"github.com/KirkDiggler/cultivation-sim/internal/redis"
	playerrepo "github.com/KirkDiggler/cultivation-sim/internal/repositories/player"
	"github.com/KirkDiggler/cultivation-sim/internal/scheduler"
)

// app is a wired simulation plus what it needs to shut down
type app struct {
	svc     simulation.Service
	journal *journal.Journal
	game    *config.Game
	closers []func() error

	// offline is what the command collected on load
	offline offline.Projection
}

// close saves the player and releases the store
func (a *app) close(ctx context.Context) error {
	err := a.svc.Close(ctx)
	a.release(ctx)
	return err
}

func (a *app) release(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.WarnContext(ctx, "Failed to close store", "error", err)
		}
	}
	a.closers = nil
}

// loadRuntime reads the environment and applies flag overrides
func loadRuntime() (config.Runtime, error) {
	rt, err := config.ParseEnv()
	if err != nil {
		return rt, err
	}
	if storeKind != "" {
		rt.Store = storeKind
	}
	if redisAddr != "" {
		rt.RedisAddr = redisAddr
	}
	if sqlitePath != "" {
		rt.SQLitePath = sqlitePath
	}
	if playerKey != "" {
		rt.PlayerKey = playerKey
	}
	if gameData != "" {
		rt.GameData = gameData
	}
	if seed != 0 {
		rt.Seed = seed
	}
	if logLevel != "" {
		rt.LogLevel = logLevel
	}
	return rt, nil
}

// buildApp wires the engine, the store and the orchestrator, then loads
// the player.
func buildApp(ctx context.Context) (_ *app, err error) {
	rt, err := loadRuntime()
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: rt.SlogLevel()})))

	game, err := config.LoadGame(rt.GameData)
	if err != nil {
		return nil, fmt.Errorf("failed to load game data: %w", err)
	}

	var src random.Source = random.NewDice(dice.DefaultRoller)
	if rt.Seed != 0 {
		src = random.NewSeeded(rt.Seed)
	}
	clk := clock.New()

	gen, err := loot.NewGenerator(&loot.Config{
		Loot:   game.Loot,
		IDs:    idgen.NewUUID("item"),
		Random: src,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create loot generator: %w", err)
	}

	ledger, err := progression.NewLedger(&progression.Config{Game: game, Loot: gen, Random: src})
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger: %w", err)
	}

	resolver, err := combat.NewResolver(&combat.Config{Combat: game.Combat, Random: src})
	if err != nil {
		return nil, fmt.Errorf("failed to create combat resolver: %w", err)
	}

	projector, err := offline.NewProjector(&offline.Config{
		Offline:        game.Offline,
		Meditation:     game.Meditation,
		BattleInterval: game.Combat.Interval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create offline projector: %w", err)
	}

	j, err := journal.New(&journal.Config{Size: game.Combat.LogSize, Clock: clk, Bus: events.NewBus()})
	if err != nil {
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	a := &app{journal: j, game: game}
	defer func() {
		if err != nil {
			a.release(ctx)
		}
	}()

	repo, err := openStore(ctx, rt, clk, a)
	if err != nil {
		return nil, err
	}

	svc, err := simulation.NewOrchestrator(&simulation.Config{
		Game:        game,
		Ledger:      ledger,
		Resolver:    resolver,
		Projector:   projector,
		Repository:  repo,
		Scheduler:   scheduler.New(),
		Journal:     j,
		Clock:       clk,
		IDs:         idgen.NewUUID("player"),
		PlayerKey:   rt.PlayerKey,
		SaveTimeout: rt.SaveTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}
	a.svc = svc

	if _, err := svc.Load(ctx, &simulation.LoadInput{}); err != nil {
		return nil, fmt.Errorf("failed to load player: %w", err)
	}
	return a, nil
}

// openStore connects the configured save backend and registers its closer
func openStore(ctx context.Context, rt config.Runtime, clk clock.Clock, a *app) (playerrepo.Repository, error) {
	slog.DebugContext(ctx, "Opening store", "store", rt.Store)

	switch rt.Store {
	case config.StoreRedis:
		client, err := redis.Connect(ctx, rt.RedisAddr, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return playerrepo.NewRedis(&playerrepo.RedisConfig{Client: client, Clock: clk})

	case config.StoreSQLite:
		db, err := playerrepo.OpenSQLite(rt.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		return playerrepo.NewSQLite(ctx, &playerrepo.SQLiteConfig{DB: db, Clock: clk})

	case config.StoreMemory:
		return playerrepo.NewInMemory(clk), nil

	default:
		return nil, fmt.Errorf("unknown store %q", rt.Store)
	}
}
