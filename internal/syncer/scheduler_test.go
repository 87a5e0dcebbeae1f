package syncer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nikbrunner/quotes/internal/model"
	"github.com/nikbrunner/quotes/internal/syncer"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestScheduler_PollsUntilStopped(t *testing.T) {
	defer goleak.VerifyNone(t)

	st, _ := newStore(t)
	fake := &fakeRemote{items: []model.RemoteItem{{Title: "Hello"}}}
	s := newSyncer(st, fake, &recorder{}, nil)

	sc := syncer.NewScheduler(s, 10*time.Millisecond, nil)
	sc.Start(context.Background())
	sc.Start(context.Background()) // no second loop

	waitFor(t, func() bool { return fake.fetchCount() >= 2 })
	sc.Stop()
	sc.Stop()

	stopped := fake.fetchCount()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, stopped, fake.fetchCount())
	assert.Equal(t, 4, st.Len())
}

func TestScheduler_SkipsTickWhileInFlight(t *testing.T) {
	defer goleak.VerifyNone(t)

	st, _ := newStore(t)
	fake := &fakeRemote{
		items:   []model.RemoteItem{{Title: "Hello"}},
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
	s := newSyncer(st, fake, &recorder{}, nil)
	sc := syncer.NewScheduler(s, 5*time.Millisecond, nil)

	done := make(chan syncer.Report, 1)
	go func() {
		report, _ := s.Run(context.Background(), syncer.TriggerManual)
		done <- report
	}()
	<-fake.started

	sc.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, fake.fetchCount())

	close(fake.release)
	report := <-done
	assert.Equal(t, syncer.TriggerManual, report.Trigger)
	assert.Equal(t, 1, report.Added)
	sc.Stop()
}

func TestScheduler_StopCancelsCycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	st, _ := newStore(t)
	fake := &fakeRemote{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	rec := &recorder{}
	s := newSyncer(st, fake, rec, nil)
	sc := syncer.NewScheduler(s, 5*time.Millisecond, nil)

	sc.Start(context.Background())
	<-fake.started
	sc.Stop()

	notices, _ := rec.snapshot()
	require.Len(t, notices, 1)
	assert.Equal(t, syncer.LevelFailure, notices[0].Level)
	assert.Equal(t, model.Seed(), st.All())
}

func TestNewScheduler_DefaultInterval(t *testing.T) {
	sc := syncer.NewScheduler(nil, 0, nil)
	assert.Equal(t, syncer.DefaultInterval, sc.Interval())
}
