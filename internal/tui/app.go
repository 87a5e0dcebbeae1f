// Package tui is the interactive quote viewer.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nikbrunner/quotes/internal/display"
	"github.com/nikbrunner/quotes/internal/model"
	"github.com/nikbrunner/quotes/internal/remote"
	"github.com/nikbrunner/quotes/internal/store"
	"github.com/nikbrunner/quotes/internal/syncer"
	"github.com/nikbrunner/quotes/internal/tui/layout"
)

const requestTimeout = 45 * time.Second

// Syncer is the part of *syncer.Syncer the App drives.
type Syncer interface {
	Run(ctx context.Context, trigger syncer.Trigger) (syncer.Report, error)
	Push(ctx context.Context, q model.Quote) (*remote.PushResult, error)
	State() syncer.State
}

// App is the main bubbletea model for the quote viewer.
type App struct {
	store   *store.Store
	syncer  Syncer // nil when sync is disabled
	notices <-chan syncer.Notice
	rnd     display.Picker
	copy    func(string) error
	logger  *zap.Logger

	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	mode     Mode
	filter   FilterState
	form     AddFormState
	current  model.Quote
	hasQuote bool
	syncing  bool

	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store        *store.Store
	Syncer       Syncer               // optional, sync and push keys report "disabled" if nil
	Notices      <-chan syncer.Notice // optional, sync and push notices
	Rand         display.Picker       // optional, global source if nil
	Clipboard    func(string) error   // optional, system clipboard if nil
	Logger       *zap.Logger          // optional
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
}

// NewApp creates a new App and displays the first quote.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	copyFn := params.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := App{
		store:        params.Store,
		syncer:       params.Syncer,
		notices:      params.Notices,
		rnd:          params.Rand,
		copy:         copyFn,
		logger:       logger,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		form:         NewAddFormState(layoutCfg),
		width:        80,
		height:       24,
	}

	selection, err := app.store.Filter()
	if err != nil {
		app.logger.Warn("reading saved filter failed", zap.Error(err))
	}
	app.filter.Selection = selection
	app.refreshCategories()
	app.showQuote()

	return app
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Current returns the displayed quote; ok is false when nothing matches the filter.
func (a App) Current() (model.Quote, bool) {
	return a.current, a.hasQuote
}

// Selection returns the active category filter.
func (a App) Selection() string {
	return a.filter.Selection
}

// Categories returns the category index shown in the filter bar.
func (a App) Categories() []string {
	return a.filter.Categories
}

// Message returns the current status message and its type.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// WithDimensions returns a copy of the app sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Messages produced by commands and background work.
type (
	// noticeMsg carries a sync or push notice from the notifier channel.
	noticeMsg syncer.Notice

	// syncDoneMsg reports the end of a manual sync.
	syncDoneMsg struct {
		report syncer.Report
		err    error
	}

	// pushDoneMsg reports the end of a push.
	pushDoneMsg struct {
		err error
	}

	// StoreChangedMsg tells the app that the store file was rewritten by
	// another process.
	StoreChangedMsg struct{}

	// SyncCommittedMsg tells the app that a background cycle committed.
	SyncCommittedMsg struct{ Report syncer.Report }
)

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.waitForNotice()
}

// waitForNotice blocks on the notifier channel for the next notice.
func (a App) waitForNotice() tea.Cmd {
	if a.notices == nil {
		return nil
	}
	ch := a.notices
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg(n)
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case noticeMsg:
		a.applyNotice(syncer.Notice(msg))
		return a, a.waitForNotice()

	case syncDoneMsg:
		a.syncing = false
		if msg.err == nil {
			a.afterCommit()
		}
		if a.notices == nil {
			a.applyResult("Sync", msg.err)
		}
		return a, nil

	case pushDoneMsg:
		if a.notices == nil {
			a.applyResult("Push", msg.err)
		}
		return a, nil

	case SyncCommittedMsg:
		a.afterCommit()
		return a, nil

	case StoreChangedMsg:
		if err := a.store.Reload(); err != nil {
			a.setMessage(MessageWarning, "Reload failed: "+err.Error())
			return a, nil
		}
		a.refreshCategories()
		if !a.hasQuote || !model.ContainsText(a.store.All(), a.current.Text) {
			a.showQuote()
		}
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeAdd:
			return a.updateAdd(msg)
		case ModeHelp:
			return a.updateHelp(msg)
		default:
			return a.updateNormal(msg)
		}
	}

	if a.mode == ModeAdd {
		return a.updateFormInputs(msg)
	}
	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.NewQuote):
		a.clearMessage()
		a.showQuote()

	case key.Matches(msg, a.keys.NextFilter):
		a.selectFilter(a.filter.Step(1))

	case key.Matches(msg, a.keys.PrevFilter):
		a.selectFilter(a.filter.Step(-1))

	case key.Matches(msg, a.keys.AllFilter):
		a.selectFilter(model.AllCategories)

	case key.Matches(msg, a.keys.Add):
		a.mode = ModeAdd
		a.form.Reset()
		return a, nil

	case key.Matches(msg, a.keys.Sync):
		return a.startSync()

	case key.Matches(msg, a.keys.Push):
		return a.startPush()

	case key.Matches(msg, a.keys.Yank):
		a.yank()

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help), key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return a, tea.Quit

	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
		a.form.Reset()
		return a, nil

	case key.Matches(msg, a.keys.NextField):
		a.form.Cycle(1)
		return a, nil

	case key.Matches(msg, a.keys.PrevField):
		a.form.Cycle(-1)
		return a, nil

	case key.Matches(msg, a.keys.Submit):
		if a.form.Focus == fieldText && a.form.CategoryInput.Value() == "" {
			a.form.Cycle(1)
			return a, nil
		}
		a.submitForm()
		return a, nil
	}

	return a.updateFormInputs(msg)
}

func (a App) updateFormInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if a.form.Focus == fieldText {
		a.form.TextInput, cmd = a.form.TextInput.Update(msg)
	} else {
		a.form.CategoryInput, cmd = a.form.CategoryInput.Update(msg)
	}
	return a, cmd
}

// submitForm adds the quote in the form. The form stays open with a
// validation message when a field is empty.
func (a *App) submitForm() {
	text, category := a.form.Values()
	q, err := a.store.Add(text, category)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			a.form.Error = "Please fill in both the quote and category fields."
			return
		}
		a.form.Error = "Save failed: " + err.Error()
		return
	}

	a.logger.Info("quote added", zap.String("category", q.Category))
	a.mode = ModeNormal
	a.form.Reset()
	a.refreshCategories()
	a.showQuote()
	a.setMessage(MessageSuccess, "Quote added")
}

func (a App) startSync() (tea.Model, tea.Cmd) {
	if a.syncer == nil {
		a.setMessage(MessageWarning, "Sync is disabled")
		return a, nil
	}
	if a.syncing {
		return a, nil
	}
	a.syncing = true
	a.setMessage(MessageInfo, "Syncing...")

	s := a.syncer
	return a, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		report, err := s.Run(ctx, syncer.TriggerManual)
		return syncDoneMsg{report: report, err: err}
	}
}

func (a App) startPush() (tea.Model, tea.Cmd) {
	if a.syncer == nil {
		a.setMessage(MessageWarning, "Sync is disabled")
		return a, nil
	}
	if !a.hasQuote {
		a.setMessage(MessageWarning, "No quote to push")
		return a, nil
	}
	a.setMessage(MessageInfo, "Pushing...")

	s, q := a.syncer, a.current
	return a, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := s.Push(ctx, q)
		return pushDoneMsg{err: err}
	}
}

func (a *App) yank() {
	if !a.hasQuote {
		a.setMessage(MessageWarning, "Nothing to copy")
		return
	}
	if err := a.copy(display.Text(a.current)); err != nil {
		a.setMessage(MessageError, "Copy failed: "+err.Error())
		return
	}
	a.setMessage(MessageSuccess, "Copied to clipboard")
}

// applyNotice turns a sync or push notice into the status message.
func (a *App) applyNotice(n syncer.Notice) {
	switch n.Level {
	case syncer.LevelFailure:
		a.setMessage(MessageError, n.Message)
	case syncer.LevelSuccess:
		a.setMessage(MessageSuccess, n.Message)
	default:
		a.setMessage(MessageInfo, n.Message)
	}
}

// applyResult reports the outcome of an operation when no notifier
// channel delivers notices.
func (a *App) applyResult(op string, err error) {
	if err != nil {
		a.setMessage(MessageError, op+" failed: "+remote.Reason(err))
		return
	}
	a.setMessage(MessageSuccess, op+" done")
}

// afterCommit refreshes what a committed sync may have changed.
func (a *App) afterCommit() {
	a.refreshCategories()
	a.showQuote()
}

func (a *App) selectFilter(selection string) {
	a.filter.Selection = selection
	if err := a.store.SetFilter(selection); err != nil {
		a.setMessage(MessageError, "Saving filter failed: "+err.Error())
	} else {
		a.clearMessage()
	}
	a.showQuote()
}

func (a *App) refreshCategories() {
	a.filter.Categories = a.store.Categories()
}

// showQuote picks the quote for the current filter and records it as last
// viewed.
func (a *App) showQuote() {
	q, ok := display.Pick(a.store.All(), a.filter.Selection, a.rnd)
	a.current, a.hasQuote = q, ok
	if !ok {
		return
	}
	if err := a.store.SetLastViewed(q); err != nil {
		a.logger.Warn("saving last viewed quote failed", zap.Error(err))
	}
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
	a.messageType = MessageInfo
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
