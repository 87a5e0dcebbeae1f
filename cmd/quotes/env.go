package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/nikbrunner/quotes/internal/model"
	"github.com/nikbrunner/quotes/internal/remote"
	"github.com/nikbrunner/quotes/internal/storage"
	"github.com/nikbrunner/quotes/internal/store"
	"github.com/nikbrunner/quotes/internal/syncer"
)

// openStore opens the configured backend and loads the collection. A corrupt
// collection is replaced by the seed with a warning.
func openStore() (*store.Store, storage.KV, error) {
	kv, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}

	s := store.New(store.Params{Persistent: kv, Logger: logger})
	res, err := s.Load()
	switch {
	case errors.Is(err, model.ErrParse):
		logger.Warn("stored quotes are unreadable, restoring built-in quotes", zap.Error(err))
		if err := s.Reseed(); err != nil {
			kv.Close()
			return nil, nil, err
		}
	case err != nil:
		kv.Close()
		return nil, nil, err
	case res.Seeded:
		logger.Debug("seeded quote collection", zap.Int("count", res.Count))
	}

	return s, kv, nil
}

// storagePath returns the file behind kv, if it has one.
func storagePath(kv storage.KV) string {
	if p, ok := kv.(interface{ Path() string }); ok {
		return p.Path()
	}
	return ""
}

func newClient() *remote.Client {
	return remote.NewClient(cfg.Remote.URL,
		remote.WithTimeout(cfg.Remote.Timeout),
		remote.WithLogger(logger),
	)
}

func newSyncer(s *store.Store, notifier syncer.Notifier, onCommit func(syncer.Report)) *syncer.Syncer {
	return syncer.New(syncer.Params{
		Store:    s,
		Remote:   newClient(),
		Notifier: notifier,
		Logger:   logger,
		OnCommit: onCommit,
	})
}

// errReported marks a failure that was already shown to the user as a notice.
var errReported = errors.New("already reported")

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
