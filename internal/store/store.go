// Package store owns the quote collection and its persistence.
//
// Every mutation is written through to the persistent KV as a whole
// collection; the session KV holds the last viewed quote.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/nikbrunner/quotes/internal/model"
	"github.com/nikbrunner/quotes/internal/storage"
)

// Store holds the in-memory quote collection and writes it through on change.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	quotes  []model.Quote
	kv      storage.KV
	session storage.KV
	logger  *zap.Logger
}

// Params holds parameters for creating a new Store.
type Params struct {
	Persistent storage.KV
	Session    storage.KV  // optional, in-memory if nil
	Logger     *zap.Logger // optional, no-op if nil
}

// New creates an empty Store. Call Load before use.
func New(params Params) *Store {
	session := params.Session
	if session == nil {
		session = storage.NewMemoryStorage()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		quotes:  []model.Quote{},
		kv:      params.Persistent,
		session: session,
		logger:  logger,
	}
}

// LoadResult describes what Load found in the persistent store.
type LoadResult struct {
	Seeded bool // collection came from the built-in seed
	Count  int
}

// Load reads the persisted collection. When nothing is persisted yet the seed
// collection is installed and written. When the persisted value cannot be
// parsed, the store holds the seed (unpersisted) and a *model.ParseError is
// returned; callers decide whether to Reseed.
func (s *Store) Load() (LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, found, err := s.readLocked()
	if err != nil {
		if errors.Is(err, model.ErrParse) {
			s.quotes = model.Seed()
			return LoadResult{Seeded: true, Count: len(s.quotes)}, err
		}
		return LoadResult{}, err
	}

	if !found {
		s.quotes = model.Seed()
		if err := s.persistLocked(s.quotes); err != nil {
			return LoadResult{}, err
		}
		s.logger.Debug("seeded quote store", zap.Int("count", len(s.quotes)))
		return LoadResult{Seeded: true, Count: len(s.quotes)}, nil
	}

	s.quotes = quotes
	return LoadResult{Count: len(quotes)}, nil
}

// Reseed replaces the collection with the seed and persists it.
func (s *Store) Reseed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceLocked(model.Seed())
}

// Reload re-reads the persisted collection, e.g. after another process wrote
// the store file. On failure the current collection is kept.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, found, err := s.readLocked()
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	s.quotes = quotes
	return nil
}

// Add validates and appends a quote, then persists the collection.
// Duplicate texts are allowed here; only sync merges deduplicate.
func (s *Store) Add(text, category string) (model.Quote, error) {
	q, err := model.NewQuote(text, category)
	if err != nil {
		return model.Quote{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(model.Clone(s.quotes), q)
	if err := s.replaceLocked(next); err != nil {
		return model.Quote{}, err
	}
	return q, nil
}

// ImportAppend appends items without deduplication and persists.
// Nothing is appended if any item has an empty field.
func (s *Store) ImportAppend(items []model.Quote) error {
	for i, q := range items {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(model.Clone(s.quotes), items...)
	return s.replaceLocked(next)
}

// Update replaces the collection with the result of fn, applied to a copy of
// the current collection, and persists it. The store is locked for the
// duration so concurrent mutations cannot interleave with fn.
// If fn returns an error nothing changes.
func (s *Store) Update(fn func(current []model.Quote) ([]model.Quote, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(model.Clone(s.quotes))
	if err != nil {
		return err
	}
	return s.replaceLocked(next)
}

// All returns a copy of the current collection.
func (s *Store) All() []model.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.Clone(s.quotes)
}

// Len returns the number of quotes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quotes)
}

// Categories returns "all" plus the distinct categories of the collection.
func (s *Store) Categories() []string {
	return model.Categories(s.All())
}

// Filter returns the persisted filter selection, AllCategories if unset.
func (s *Store) Filter() (string, error) {
	raw, ok, err := s.kv.Get(storage.KeyFilter)
	if err != nil || !ok {
		return model.AllCategories, err
	}

	var selection string
	if err := json.Unmarshal(raw, &selection); err != nil || selection == "" {
		return model.AllCategories, nil
	}
	return selection, nil
}

// SetFilter persists the filter selection.
func (s *Store) SetFilter(selection string) error {
	if selection == "" {
		selection = model.AllCategories
	}
	raw, err := json.Marshal(selection)
	if err != nil {
		return err
	}
	return s.kv.Set(storage.KeyFilter, raw)
}

// LastViewed returns the quote most recently displayed in this session.
func (s *Store) LastViewed() (model.Quote, bool, error) {
	raw, ok, err := s.session.Get(storage.KeyLastViewed)
	if err != nil || !ok {
		return model.Quote{}, false, err
	}

	var q model.Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		return model.Quote{}, false, &model.ParseError{Source: "session", Err: err}
	}
	return q, true, nil
}

// SetLastViewed records q in the session slot.
func (s *Store) SetLastViewed(q model.Quote) error {
	raw, err := json.Marshal(q)
	if err != nil {
		return err
	}
	return s.session.Set(storage.KeyLastViewed, raw)
}

// readLocked decodes the persisted collection. found is false when the key
// is absent or holds null.
func (s *Store) readLocked() ([]model.Quote, bool, error) {
	raw, found, err := s.kv.Get(storage.KeyQuotes)
	if err != nil || !found {
		return nil, found, err
	}

	var quotes []model.Quote
	if err := json.Unmarshal(raw, &quotes); err != nil {
		return nil, true, &model.ParseError{Source: "storage", Err: err}
	}
	if quotes == nil {
		// A null value holds no collection, same as a missing key.
		return nil, false, nil
	}
	return quotes, true, nil
}

// replaceLocked persists next and only then makes it the current collection.
func (s *Store) replaceLocked(next []model.Quote) error {
	if next == nil {
		next = []model.Quote{}
	}
	if err := s.persistLocked(next); err != nil {
		return err
	}
	s.quotes = next
	return nil
}

func (s *Store) persistLocked(quotes []model.Quote) error {
	raw, err := json.Marshal(quotes)
	if err != nil {
		return err
	}
	if err := s.kv.Set(storage.KeyQuotes, raw); err != nil {
		return fmt.Errorf("persist quotes: %w", err)
	}
	return nil
}
