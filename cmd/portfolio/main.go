// Command portfolio serves and manages the portfolio backend.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aTrapDeer/portfolio-backend/internal/config"
)

const (
	Version = "0.1.0"
	appName = "portfolio"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globals struct {
	envFile  string
	logLevel string
	cfg      *config.Config
	logger   *slog.Logger
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Personal portfolio backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.init(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&g.envFile, "env-file", "", "Env file to load (default .env)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	cmd.AddCommand(
		serveCmd(g),
		migrateCmd(g),
		seedCmd(g),
		snapshotCmd(g),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

func (g *globals) init(logOut io.Writer) error {
	var files []string
	if g.envFile != "" {
		files = append(files, g.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(logOut, opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(logOut, opts)
	}
	g.logger = slog.New(handler)
	slog.SetDefault(g.logger)
	g.cfg = cfg
	return nil
}
