package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nikbrunner/quotes/internal/model"
	"github.com/nikbrunner/quotes/internal/server"
	"github.com/nikbrunner/quotes/internal/storage"
	"github.com/nikbrunner/quotes/internal/syncer"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch remote posts once and merge new ones",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

var pushCmd = &cobra.Command{
	Use:   "push <text> <category>",
	Short: "Post a quote to the remote endpoint without storing it",
	Args:  cobra.ExactArgs(2),
	RunE:  runPush,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sync on the configured interval until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local placeholder posts endpoint",
	Long: `Serve GET and POST /posts on server.addr, shaped like the public placeholder
API. Point remote.url at http://localhost:8080/posts to sync against it.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// printNotifier writes notices to the command's output.
func printNotifier(cmd *cobra.Command) syncer.NotifierFunc {
	return func(n syncer.Notice) {
		fmt.Fprintln(cmd.OutOrStdout(), n.Message)
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	s, kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	sy := newSyncer(s, printNotifier(cmd), nil)
	if _, err := sy.Run(contextOrBackground(cmd.Context()), syncer.TriggerManual); err != nil {
		return errReported
	}
	return nil
}

func runPush(cmd *cobra.Command, args []string) error {
	q, err := model.NewQuote(args[0], args[1])
	if err != nil {
		return err
	}

	s, kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	sy := newSyncer(s, printNotifier(cmd), nil)
	res, err := sy.Push(contextOrBackground(cmd.Context()), q)
	if err != nil {
		return errReported
	}
	logger.Debug("push response", zap.Int("status", res.StatusCode), zap.ByteString("body", res.Body))
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	sy := newSyncer(s, printNotifier(cmd), nil)
	sched := syncer.NewScheduler(sy, cfg.Sync.Interval, logger)

	ctx := contextOrBackground(cmd.Context())
	g, ctx := errgroup.WithContext(ctx)

	if path := storagePath(kv); path != "" {
		w, err := storage.NewWatcher(path, func() {
			if err := s.Reload(); err != nil {
				logger.Warn("reload after external change failed", zap.Error(err))
				return
			}
			logger.Info("store reloaded", zap.Int("count", s.Len()))
		}, logger)
		if err != nil {
			logger.Warn("watching store file failed", zap.String("path", path), zap.Error(err))
		} else {
			defer w.Close()
		}
	}

	g.Go(func() error {
		// First cycle runs immediately, the scheduler takes over from there.
		_, _ = sy.Run(ctx, syncer.TriggerTimer)
		sched.Start(ctx)
		<-ctx.Done()
		sched.Stop()
		return nil
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Syncing every %s, press Ctrl+C to stop\n", sched.Interval())
	return g.Wait()
}

func runServe(cmd *cobra.Command, args []string) error {
	srv := server.New(server.Params{
		Posts:  server.NewPosts(server.DefaultPosts()...),
		Logger: logger,
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Serving posts on %s\n", cfg.Server.Addr)
	err := srv.Run(contextOrBackground(cmd.Context()), cfg.Server.Addr)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
