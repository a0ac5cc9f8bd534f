package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cultivation-sim/internal/config"
	"github.com/KirkDiggler/cultivation-sim/internal/orchestrators/simulation"
)

type AppTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) SetupTest() {
	s.ctx = context.Background()
	storeKind, redisAddr, sqlitePath, playerKey, gameData, logLevel = "", "", "", "", "", ""
	seed = 0
}

func (s *AppTestSuite) TestFlagsOverrideEnvironment() {
	s.T().Setenv("CULTIVATION_STORE", "redis")
	s.T().Setenv("CULTIVATION_PLAYER_KEY", "from-env")
	s.T().Setenv("CULTIVATION_LOG_LEVEL", "warn")
	storeKind = config.StoreMemory
	seed = 42

	rt, err := loadRuntime()
	s.Require().NoError(err)
	s.Equal(config.StoreMemory, rt.Store)
	s.Equal("from-env", rt.PlayerKey)
	s.Equal(uint64(42), rt.Seed)
	s.Equal("warn", rt.LogLevel)
}

func (s *AppTestSuite) TestUnknownStore() {
	storeKind = "floppy"

	_, err := buildApp(s.ctx)
	s.Require().Error(err)
	s.Contains(err.Error(), `unknown store "floppy"`)
}

func (s *AppTestSuite) TestMemoryStoreLoadsNewPlayer() {
	storeKind = config.StoreMemory
	seed = 7

	a, err := buildApp(s.ctx)
	s.Require().NoError(err)

	out, err := a.svc.Status(s.ctx, &simulation.StatusInput{})
	s.Require().NoError(err)
	s.Equal(0, out.Player.Realm.Tier)
	s.Equal(1, out.Player.Realm.Level)
	s.False(out.Running)

	s.NoError(a.close(s.ctx))
}

func (s *AppTestSuite) TestSQLiteStoreKeepsProgress() {
	storeKind = config.StoreSQLite
	sqlitePath = filepath.Join(s.T().TempDir(), "save.db")
	seed = 7

	first, err := buildApp(s.ctx)
	s.Require().NoError(err)
	status, err := first.svc.Status(s.ctx, &simulation.StatusInput{})
	s.Require().NoError(err)
	id := status.Player.ID
	s.Require().NoError(first.close(s.ctx))

	second, err := buildApp(s.ctx)
	s.Require().NoError(err)
	status, err = second.svc.Status(s.ctx, &simulation.StatusInput{})
	s.Require().NoError(err)
	s.Equal(id, status.Player.ID)
	s.NoError(second.close(s.ctx))
}
