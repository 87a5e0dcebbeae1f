// Package syncer reconciles the local quote store with the remote endpoint.
//
// A cycle moves Idle -> Fetching -> Merging -> Committed -> Idle, or
// Fetching -> Failed -> Idle. A failed cycle never touches the store.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/nikbrunner/quotes/internal/model"
	"github.com/nikbrunner/quotes/internal/remote"
	"github.com/nikbrunner/quotes/internal/store"
)

// State is the phase of the current sync cycle.
type State int

const (
	Idle State = iota
	Fetching
	Merging
	Committed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case Merging:
		return "merging"
	case Committed:
		return "committed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Trigger names what started a cycle.
type Trigger string

const (
	TriggerTimer  Trigger = "timer"
	TriggerManual Trigger = "manual"
)

// Remote is the endpoint a Syncer reads from and pushes to.
type Remote interface {
	Fetch(ctx context.Context) ([]model.RemoteItem, error)
	Push(ctx context.Context, q model.Quote) (*remote.PushResult, error)
}

// Report summarizes one sync cycle.
type Report struct {
	CycleID    string
	Trigger    Trigger
	Fetched    int      // remote items received
	Skipped    int      // remote items without a title
	Added      int      // quotes appended by the merge
	Total      int      // collection size after commit
	Categories []string // category index after commit
	Shared     bool     // caller joined a cycle that was already in flight
	Started    time.Time
	Finished   time.Time
	Err        error
}

// Syncer runs sync cycles against a store. Only one cycle runs at a time.
type Syncer struct {
	store    *store.Store
	remote   Remote
	notifier Notifier
	logger   *zap.Logger
	onCommit func(Report)
	onState  func(State)
	now      func() time.Time

	group    singleflight.Group
	inFlight atomic.Bool

	mu    sync.Mutex
	state State
}

// Params holds parameters for creating a new Syncer.
type Params struct {
	Store    *store.Store
	Remote   Remote
	Notifier Notifier     // optional
	Logger   *zap.Logger  // optional
	OnCommit func(Report) // optional, called after a successful commit
	OnState  func(State)  // optional, called on every state change
}

// New creates a Syncer.
func New(params Params) *Syncer {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	notifier := params.Notifier
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}

	return &Syncer{
		store:    params.Store,
		remote:   params.Remote,
		notifier: notifier,
		logger:   logger,
		onCommit: params.OnCommit,
		onState:  params.OnState,
		now:      time.Now,
		state:    Idle,
	}
}

// State returns the phase of the current cycle.
func (s *Syncer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// InFlight reports whether a cycle is running.
func (s *Syncer) InFlight() bool {
	return s.inFlight.Load()
}

// Run performs one full cycle. If a cycle is already in flight the caller
// waits for it and receives its report with Shared set, instead of starting
// a second one.
//
// A joined cycle runs under the context of the caller that started it, not
// the joiner's. Cancelling the first caller's context (Scheduler.Stop does
// this for timer cycles) fails the cycle for every caller waiting on it.
func (s *Syncer) Run(ctx context.Context, trigger Trigger) (Report, error) {
	v, err, shared := s.group.Do("sync", func() (any, error) {
		s.inFlight.Store(true)
		defer s.inFlight.Store(false)

		report := s.cycle(ctx, trigger)
		return report, report.Err
	})

	report := v.(Report)
	report.Shared = shared
	return report, err
}

func (s *Syncer) cycle(ctx context.Context, trigger Trigger) Report {
	report := Report{
		CycleID: uuid.NewString(),
		Trigger: trigger,
		Started: s.now(),
	}
	log := s.logger.With(zap.String("cycle", report.CycleID), zap.String("trigger", string(trigger)))

	s.setState(Fetching)
	log.Debug("sync fetching")

	items, err := s.remote.Fetch(ctx)
	if err != nil {
		return s.fail(report, fmt.Errorf("fetch: %w", err), log)
	}
	report.Fetched = len(items)

	mapped := make([]model.Quote, 0, len(items))
	for _, item := range items {
		q := model.FromRemote(item)
		if q.Validate() != nil {
			report.Skipped++
			continue
		}
		mapped = append(mapped, q)
	}

	s.setState(Merging)
	err = s.store.Update(func(local []model.Quote) ([]model.Quote, error) {
		merged, added := model.Merge(local, mapped)
		report.Added = added
		report.Total = len(merged)
		return merged, nil
	})
	if err != nil {
		return s.fail(report, fmt.Errorf("commit: %w", err), log)
	}

	s.setState(Committed)
	report.Categories = s.store.Categories()
	report.Finished = s.now()

	log.Debug("sync committed",
		zap.Int("fetched", report.Fetched),
		zap.Int("added", report.Added),
		zap.Int("total", report.Total),
		zap.Duration("took", report.Finished.Sub(report.Started)))

	if s.onCommit != nil {
		s.onCommit(report)
	}
	s.notifier.Notify(Notice{
		Level:   LevelSuccess,
		Message: successMessage(report.Added),
		CycleID: report.CycleID,
		Time:    report.Finished,
	})

	s.setState(Idle)
	return report
}

func (s *Syncer) fail(report Report, err error, log *zap.Logger) Report {
	s.setState(Failed)
	report.Err = err
	report.Finished = s.now()

	log.Debug("sync failed", zap.Error(err))
	s.notifier.Notify(Notice{
		Level:   LevelFailure,
		Message: "Sync failed: " + reason(err),
		CycleID: report.CycleID,
		Err:     err,
		Time:    report.Finished,
	})

	s.setState(Idle)
	return report
}

// Push sends q to the remote endpoint and reports the outcome. The store is
// never modified, whatever the endpoint replies.
func (s *Syncer) Push(ctx context.Context, q model.Quote) (*remote.PushResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	res, err := s.remote.Push(ctx, q)
	if err != nil {
		s.notifier.Notify(Notice{
			Level:   LevelFailure,
			Message: "Push failed: " + reason(err),
			Err:     err,
			Time:    s.now(),
		})
		return nil, err
	}

	s.logger.Debug("quote pushed", zap.String("text", q.Text), zap.Int("status", res.StatusCode))
	s.notifier.Notify(Notice{
		Level:   LevelSuccess,
		Message: "Quote pushed to server",
		Time:    s.now(),
	})
	return res, nil
}

func (s *Syncer) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	if s.onState != nil {
		s.onState(state)
	}
}

func successMessage(added int) string {
	switch added {
	case 0:
		return "Quotes are up to date"
	case 1:
		return "Synced 1 new quote from server"
	default:
		return fmt.Sprintf("Synced %d new quotes from server", added)
	}
}

// reason shortens err for a notice line.
func reason(err error) string {
	if errors.Is(err, model.ErrParse) {
		return "invalid response from server"
	}
	return remote.Reason(err)
}
