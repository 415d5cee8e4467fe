package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storyloom/internal/bootstrap"
	"storyloom/internal/config"
	"storyloom/internal/logging"
)

var (
	// store is opened by the root pre-run and closed by its post-run.
	store   *bootstrap.Store
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "storyctl",
	Short: "Manage storyloom personas, fonts and chats",
	Long: `storyctl works on the same database as the storyloom desktop app.
Configuration comes from STORYLOOM_* environment variables or a .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		level := "warn"
		if verbose {
			level = "debug"
		}
		log, err := logging.New(level, cfg.LogJSON)
		if err != nil {
			return err
		}
		store, err = bootstrap.Open(cfg, log.Named("storyctl"))
		if err != nil {
			log.Error("failed to open storage", zap.Error(err))
			return err
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return nil
		}
		err := store.Close()
		store = nil
		return err
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
}
