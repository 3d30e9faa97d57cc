// Package chrome drives the informational panel: its inactivity collapse and
// the fade used when the displayed text changes.
package chrome

import "time"

const (
	// CollapseAfter is the inactivity window before the panel collapses.
	CollapseAfter = 20 * time.Second
	// FadeDelay separates the fade-out and fade-in halves of a text swap.
	FadeDelay = 300 * time.Millisecond
)

// State of the informational panel.
type State int

const (
	Expanded State = iota
	Collapsed
)

func (s State) String() string {
	if s == Collapsed {
		return "collapsed"
	}
	return "expanded"
}

// Panel is the expanded/collapsed state machine. It holds at most one
// pending collapse deadline; every reschedule replaces the previous one.
type Panel struct {
	clock    Clock
	window   time.Duration
	state    State
	deadline time.Time
	pending  bool
}

// NewPanel returns an expanded panel with no deadline scheduled.
func NewPanel(clock Clock, window time.Duration) *Panel {
	if clock == nil {
		clock = SystemClock{}
	}
	if window <= 0 {
		window = CollapseAfter
	}
	return &Panel{clock: clock, window: window, state: Expanded}
}

// Start schedules the inactivity deadline.
func (p *Panel) Start() {
	p.schedule()
}

// Touch records pointer or touch activity. It never expands the panel.
func (p *Panel) Touch() {
	p.schedule()
}

// Toggle flips the panel. Expanding restarts the timer, collapsing cancels it.
func (p *Panel) Toggle() {
	if p.state == Collapsed {
		p.state = Expanded
		p.schedule()
		return
	}
	p.state = Collapsed
	p.cancel()
}

// ThemeChanged forces the panel open and restarts the timer.
func (p *Panel) ThemeChanged() {
	p.state = Expanded
	p.schedule()
}

// Tick collapses the panel once the deadline has passed and reports whether
// it did so.
func (p *Panel) Tick() bool {
	if !p.pending || p.clock.Now().Before(p.deadline) {
		return false
	}
	p.pending = false
	if p.state == Collapsed {
		return false
	}
	p.state = Collapsed
	return true
}

func (p *Panel) State() State { return p.state }

func (p *Panel) Collapsed() bool { return p.state == Collapsed }

// nextCollapse returns the pending collapse time, if any.
func (p *Panel) nextCollapse() (time.Time, bool) {
	return p.deadline, p.pending
}

func (p *Panel) schedule() {
	p.cancel()
	p.deadline = p.clock.Now().Add(p.window)
	p.pending = true
}

func (p *Panel) cancel() {
	p.pending = false
	p.deadline = time.Time{}
}
