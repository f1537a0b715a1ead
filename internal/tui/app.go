// Package tui is the kiosk display: a bubbletea program that follows the
// snapshot store, owns the rotation timers and renders the current screen.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/signboard/internal/present"
	"github.com/jask/signboard/internal/rotation"
	"github.com/jask/signboard/internal/signage"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
)

// Options configures timers and header text.
type Options struct {
	ScreenInterval time.Duration
	ImageInterval  time.Duration
	ClockInterval  time.Duration
	Present        present.Options
	Logger         *zap.Logger
	Now            func() time.Time
}

type keyMap struct {
	Quit key.Binding
}

// App is the bubbletea model for the display.
type App struct {
	snapshots <-chan signage.Snapshot
	snap      signage.Snapshot
	rot       *rotation.Rotator
	now       time.Time

	width  int
	height int

	opts Options
	keys keyMap
	log  *zap.Logger
}

type (
	snapshotMsg   signage.Snapshot
	screenTickMsg struct{}
	imageTickMsg  struct{ gen uint64 }
	clockTickMsg  time.Time
)

// New builds the model. snapshots is a store subscription; initial is what the
// store held when it was taken.
func New(initial signage.Snapshot, snapshots <-chan signage.Snapshot, opts Options) *App {
	if opts.ScreenInterval <= 0 {
		opts.ScreenInterval = rotation.DefaultScreenInterval
	}
	if opts.ImageInterval <= 0 {
		opts.ImageInterval = rotation.DefaultImageInterval
	}
	if opts.ClockInterval <= 0 {
		opts.ClockInterval = time.Second
	}
	if opts.Present.Title == "" && opts.Present.Subtitle == "" {
		opts.Present = present.DefaultOptions()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		snapshots: snapshots,
		snap:      initial,
		rot:       rotation.New(),
		now:       opts.Now(),
		opts:      opts,
		keys:      keyMap{Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))},
		log:       log.Named("tui"),
	}
	a.rot.SetMediaCount(len(initial.Media))
	return a
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.waitSnapshot(), a.screenTick(), a.clockTick()}
	if a.rot.State().ImageActive {
		cmds = append(cmds, a.imageTick())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	case snapshotMsg:
		a.snap = signage.Snapshot(msg)
		change := a.rot.SetMediaCount(len(a.snap.Media))
		a.log.Debug("snapshot received",
			zap.Bool("loading", a.snap.Loading),
			zap.String("last_error", a.snap.LastError),
			zap.Int("media", len(a.snap.Media)))
		return a, tea.Batch(a.waitSnapshot(), a.applyTimer(change))
	case screenTickMsg:
		change := a.rot.AdvanceScreen()
		return a, tea.Batch(a.screenTick(), a.applyTimer(change))
	case imageTickMsg:
		if a.rot.AdvanceImage(msg.gen) {
			return a, a.imageTick()
		}
		return a, nil
	case clockTickMsg:
		a.now = time.Time(msg)
		return a, a.clockTick()
	}
	return a, nil
}

// applyTimer starts a new image timer when asked to. Stopping needs no command:
// the pending tick carries a stale generation and is dropped.
func (a *App) applyTimer(change rotation.TimerChange) tea.Cmd {
	if change == rotation.TimerStart {
		return a.imageTick()
	}
	return nil
}

func (a *App) waitSnapshot() tea.Cmd {
	ch := a.snapshots
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

func (a *App) screenTick() tea.Cmd {
	return tea.Tick(a.opts.ScreenInterval, func(time.Time) tea.Msg { return screenTickMsg{} })
}

func (a *App) imageTick() tea.Cmd {
	gen := a.rot.ImageGeneration()
	return tea.Tick(a.opts.ImageInterval, func(time.Time) tea.Msg { return imageTickMsg{gen: gen} })
}

func (a *App) clockTick() tea.Cmd {
	return tea.Every(a.opts.ClockInterval, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

func (a *App) View() string {
	width, height := a.width, a.height
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}
	v := present.Map(a.snap, a.rot.State(), a.now, a.opts.Present)
	return render(v, a.opts.Present, width, height)
}
