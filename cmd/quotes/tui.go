package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/quotes/internal/storage"
	"github.com/nikbrunner/quotes/internal/syncer"
	"github.com/nikbrunner/quotes/internal/tui"
)

// noticeBuffer bounds the notices queued for the viewer; extras are dropped.
const noticeBuffer = 16

func runTUI(cmd *cobra.Command, args []string) error {
	s, kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	notices := make(syncer.ChanNotifier, noticeBuffer)

	var p *tea.Program
	send := func(msg tea.Msg) {
		if p != nil {
			p.Send(msg)
		}
	}

	sy := newSyncer(s, syncer.Notifiers{notices, syncer.LogNotifier{Logger: logger}}, func(r syncer.Report) {
		if r.Trigger == syncer.TriggerTimer {
			send(tui.SyncCommittedMsg{Report: r})
		}
	})

	app := tui.NewApp(tui.AppParams{
		Store:   s,
		Syncer:  sy,
		Notices: notices,
		Logger:  logger,
	})
	p = tea.NewProgram(app, tea.WithAltScreen())

	if path := storagePath(kv); path != "" {
		w, err := storage.NewWatcher(path, func() { send(tui.StoreChangedMsg{}) }, logger)
		if err != nil {
			logger.Warn("watching store file failed", zap.String("path", path), zap.Error(err))
		} else {
			defer w.Close()
		}
	}

	if cfg.SyncEnabled() {
		sched := syncer.NewScheduler(sy, cfg.Sync.Interval, logger)
		sched.Start(contextOrBackground(cmd.Context()))
		defer sched.Stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
