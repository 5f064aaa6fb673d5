package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"anilistbot/internal/logging"
	"anilistbot/pkg/utils"
)

var (
	debug   bool
	timeout time.Duration

	cfg    utils.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "anilistctl",
	Short: "Operate the AniList Discord bot from a terminal",
	Long: `anilistctl runs the bot's AniList searches, registers its slash commands
and moves Plan to Rewatch lists in and out of the configured store.

Configuration comes from the same environment, .env and ANILISTBOT_CONFIG
file as the bot itself.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = utils.Load(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		level := cfg.LogLevel
		if debug {
			level = "debug"
		}
		if logger, err = logging.New(level); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(watchlistCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
