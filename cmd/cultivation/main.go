// Package main is the entry point for the cultivation simulator
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Store flags; empty values fall back to the environment
	storeKind  string
	redisAddr  string
	sqlitePath string
	playerKey  string
	gameData   string
	seed       uint64
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "cultivation",
	Short: "Idle cultivation simulator",
	Long: `Cultivation runs an idle cultivation game for a single player: meditation,
automatic battles, realm breakthroughs, loot, enhancement and offline progress.

Settings come from CULTIVATION_* environment variables; flags override them.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&storeKind, "store", "", "Save backend: sqlite, redis or memory")
	flags.StringVar(&redisAddr, "redis-addr", "", "Redis address")
	flags.StringVar(&sqlitePath, "sqlite-path", "", "SQLite database file")
	flags.StringVar(&playerKey, "key", "", "Save slot key")
	flags.StringVar(&gameData, "game-data", "", "YAML file overriding the built-in game data")
	flags.Uint64Var(&seed, "seed", 0, "Seed for reproducible runs (0 uses dice)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(breakthroughCmd)
	rootCmd.AddCommand(enhanceCmd)
	rootCmd.AddCommand(sellCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(equipCmd)
	rootCmd.AddCommand(unequipCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(dropsCmd)
	rootCmd.AddCommand(offlineCmd)
	rootCmd.AddCommand(resetCmd)
}
