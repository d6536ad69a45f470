// Package main is the entry point for the arena command line game
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/config"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/logger"
)

var (
	envFile   string
	logLevel  string
	logFormat string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Turn-based arena combat",
	Long: `Arena pits a single hero against goblins and trolls. Fight, loot, level up
and manage your gear from the terminal.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.GetCode(err).ExitCode())
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to read before the environment (default .env when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides ARENA_LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json); overrides ARENA_LOG_FORMAT")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(battleCmd)
	rootCmd.AddCommand(catalogCmd)
}

// loadConfig reads configuration, applies flag overrides and installs the logger
func loadConfig(cmd *cobra.Command, _ []string) error {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}

	loaded, err := config.Load(files...)
	if err != nil {
		return err
	}

	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if logFormat != "" {
		loaded.LogFormat = logFormat
	}
	if err := applyCommandFlags(cmd, loaded); err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return errors.Wrap(err, "invalid flags")
	}

	logger.Setup(loaded.Logger(), cmd.ErrOrStderr())
	cfg = loaded
	return nil
}

// applyCommandFlags copies explicitly set gameplay flags over the config
func applyCommandFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("name") {
		name, err := flags.GetString("name")
		if err != nil {
			return errors.Wrap(err, "failed to read --name")
		}
		c.PlayerName = name
	}
	if flags.Changed("max-rounds") {
		rounds, err := flags.GetInt("max-rounds")
		if err != nil {
			return errors.Wrap(err, "failed to read --max-rounds")
		}
		c.MaxRounds = rounds
	}
	if flags.Changed("redis") {
		addr, err := flags.GetString("redis")
		if err != nil {
			return errors.Wrap(err, "failed to read --redis")
		}
		c.RedisAddr = addr
	}

	return nil
}

// addGameplayFlags registers the flags shared by play and battle
func addGameplayFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "hero name; overrides ARENA_PLAYER_NAME")
	cmd.Flags().Int("max-rounds", 0, "round cap per battle; overrides ARENA_MAX_ROUNDS")
}
