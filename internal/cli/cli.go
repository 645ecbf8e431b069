// Package cli wires the scene-crowdin commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"scene-crowdin/internal/config"
	"scene-crowdin/internal/export"
	"scene-crowdin/internal/logging"
)

// app holds what every command shares once the configuration is loaded.
type app struct {
	cfg    *config.Config
	closer io.Closer
}

// Execute runs the CLI application.
func Execute() {
	logging.Setup(logging.Options{})

	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "scene-crowdin",
		Short:         "Prepare visual-novel scene scripts for Crowdin",
		Long:          "Extracts dialogue and choices from scene-script JSON exports and merges two languages into upload-ready Crowdin files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closer != nil {
				_ = a.closer.Close()
			}
		},
	}
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level")

	rootCmd.AddCommand(a.extractCmd())
	rootCmd.AddCommand(a.mergeCmd())
	rootCmd.AddCommand(a.batchCmd())
	rootCmd.AddCommand(a.validateCmd())
	rootCmd.AddCommand(a.crowdinCmd())
	rootCmd.AddCommand(a.archiveCmd())
	rootCmd.AddCommand(a.graphCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	a.cfg = cfg
	a.closer = logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	return nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// output writes v to path, or to stdout when path is empty.
func output(cmd *cobra.Command, path, format string, v any) error {
	if path == "" {
		return export.Encode(cmd.OutOrStdout(), format, v)
	}
	if err := export.Write(path, format, v); err != nil {
		return err
	}
	log.Info().Str("output", path).Msg("Wrote file")
	return nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("input file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input file %s is a directory", path)
	}
	return nil
}
