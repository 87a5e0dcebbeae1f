package syncer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nikbrunner/quotes/internal/syncer"
)

func TestChanNotifier_DropsWhenFull(t *testing.T) {
	ch := make(syncer.ChanNotifier, 1)
	ch.Notify(syncer.Notice{Message: "first"})
	ch.Notify(syncer.Notice{Message: "second"})

	require.Len(t, ch, 1)
	assert.Equal(t, "first", (<-ch).Message)
}

func TestNotifiers_FanOut(t *testing.T) {
	var got []string
	ns := syncer.Notifiers{
		syncer.NotifierFunc(func(n syncer.Notice) { got = append(got, "a:"+n.Message) }),
		nil,
		syncer.NotifierFunc(func(n syncer.Notice) { got = append(got, "b:"+n.Message) }),
	}
	ns.Notify(syncer.Notice{Message: "hi"})
	assert.Equal(t, []string{"a:hi", "b:hi"}, got)
}

func TestLogNotifier_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := syncer.LogNotifier{Logger: zap.New(core)}

	n.Notify(syncer.Notice{Level: syncer.LevelSuccess, Message: "Synced 1 new quote from server", CycleID: "abc"})
	n.Notify(syncer.Notice{Level: syncer.LevelFailure, Message: "Sync failed: Timeout", Err: errors.New("timeout")})

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "abc", entries[0].ContextMap()["cycle"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "Sync failed: Timeout", entries[1].Message)
}
