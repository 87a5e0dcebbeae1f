package syncer

import (
	"time"

	"go.uber.org/zap"
)

// Level classifies a notice for display.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelFailure
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelFailure:
		return "failure"
	default:
		return "info"
	}
}

// Notice is a user-visible outcome of a sync cycle or push.
type Notice struct {
	Level   Level
	Message string
	CycleID string // empty for pushes
	Err     error
	Time    time.Time
}

// Notifier receives notices. Implementations must not block for long; they
// are called from the goroutine running the cycle.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) {
	if f != nil {
		f(n)
	}
}

// LogNotifier writes notices to a zap logger.
type LogNotifier struct {
	Logger *zap.Logger
}

func (l LogNotifier) Notify(n Notice) {
	fields := []zap.Field{zap.String("level", n.Level.String())}
	if n.CycleID != "" {
		fields = append(fields, zap.String("cycle", n.CycleID))
	}
	if n.Err != nil {
		fields = append(fields, zap.Error(n.Err))
		l.Logger.Warn(n.Message, fields...)
		return
	}
	l.Logger.Info(n.Message, fields...)
}

// ChanNotifier forwards notices to a channel, dropping them when the
// receiver falls behind.
type ChanNotifier chan Notice

func (c ChanNotifier) Notify(n Notice) {
	select {
	case c <- n:
	default:
	}
}

// Notifiers fans a notice out to several notifiers in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(n Notice) {
	for _, notifier := range ns {
		if notifier != nil {
			notifier.Notify(n)
		}
	}
}
