package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/quotes/internal/config"
	"github.com/nikbrunner/quotes/internal/logging"
)

var (
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "quotes",
	Short: "Keep a personal quote collection in sync with a remote posts API",
	Long: `quotes stores quotes (text + category) locally, shows a random one,
filters by category, imports and exports files, and merges new posts from a
remote placeholder API on a fixed interval.

Run without arguments to open the interactive viewer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

func init() {
	// Assigned here rather than in the literal: the hook refers to rootCmd.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return fmt.Errorf("config path: %w", err)
			}
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}

		opts := logging.Options{Level: cfg.Log.Level, Verbose: verbose, File: cfg.Log.File}
		if cmd == rootCmd && opts.File == "" {
			// The viewer owns the terminal.
			opts.File = filepath.Join(filepath.Dir(path), "quotes.log")
		}
		logger, err = logging.New(opts)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/quotes/config.yaml)")

	rootCmd.AddCommand(
		showCmd,
		addCmd,
		listCmd,
		categoriesCmd,
		filterCmd,
		searchCmd,
		importCmd,
		exportCmd,
		syncCmd,
		pushCmd,
		watchCmd,
		serveCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
