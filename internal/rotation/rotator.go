// Package rotation tracks which screen and which carousel image are showing.
//
// The Rotator is a plain state machine. Whoever owns the timers calls
// AdvanceScreen on every screen tick and AdvanceImage on every image tick, and
// starts or stops the image timer as the returned TimerChange says. The image
// timer exists only while the welcome screen is showing and there is media.
package rotation

import "time"

const (
	DefaultScreenInterval = 10 * time.Second
	DefaultImageInterval  = 5 * time.Second
)

type Screen int

const (
	Welcome Screen = iota
	Schedule
	Halls
	Notices
)

// Screens is the fixed rotation order.
var Screens = []Screen{Welcome, Schedule, Halls, Notices}

func (s Screen) String() string {
	switch s {
	case Welcome:
		return "welcome"
	case Schedule:
		return "schedule"
	case Halls:
		return "halls"
	case Notices:
		return "notices"
	}
	return "unknown"
}

// TimerChange tells the caller what to do with the image timer.
type TimerChange int

const (
	TimerKeep TimerChange = iota
	TimerStart
	TimerStop
)

// State is a read-only view of the rotator.
type State struct {
	Index       int // position in Screens
	Screen      Screen
	Image       int
	ImageActive bool
}

type Rotator struct {
	index       int
	image       int
	media       int
	imageActive bool
	gen         uint64
}

func New() *Rotator {
	return &Rotator{}
}

func (r *Rotator) State() State {
	return State{
		Index:       r.index,
		Screen:      Screens[r.index],
		Image:       r.image,
		ImageActive: r.imageActive,
	}
}

// AdvanceScreen moves to the next screen, wrapping after the last.
func (r *Rotator) AdvanceScreen() TimerChange {
	r.index = (r.index + 1) % len(Screens)
	return r.reconcile()
}

// SetMediaCount records how many carousel images exist.
func (r *Rotator) SetMediaCount(n int) TimerChange {
	if n < 0 {
		n = 0
	}
	r.media = n
	return r.reconcile()
}

// ImageGeneration identifies the current image timer. Ticks carrying an older
// generation belong to a stopped timer.
func (r *Rotator) ImageGeneration() uint64 {
	return r.gen
}

// AdvanceImage handles one image tick. It returns false, changing nothing, when
// the tick belongs to a stopped timer; the caller must not reschedule then.
func (r *Rotator) AdvanceImage(gen uint64) bool {
	if !r.imageActive || gen != r.gen || r.media == 0 {
		return false
	}
	r.image = (r.image + 1) % r.media
	return true
}

func (r *Rotator) reconcile() TimerChange {
	want := Screens[r.index] == Welcome && r.media > 0
	switch {
	case want && !r.imageActive:
		r.imageActive = true
		r.gen++
		return TimerStart
	case !want && r.imageActive:
		r.imageActive = false
		r.gen++
		return TimerStop
	}
	return TimerKeep
}
