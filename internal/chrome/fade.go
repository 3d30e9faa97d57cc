package chrome

import "time"

// Fade swaps a piece of text with a fade-out, replace, fade-in sequence.
// Only the most recent Set is applied; there is no queue.
type Fade struct {
	clock Clock
	delay time.Duration
	floor float64

	current  string
	next     string
	from     float64
	started  time.Time
	swapAt   time.Time
	swapped  time.Time
	pending  bool
	hasShown bool
}

// NewFade returns a Fade whose opacity dips to floor while text is swapped.
func NewFade(clock Clock, delay time.Duration, floor float64) *Fade {
	if clock == nil {
		clock = SystemClock{}
	}
	if delay <= 0 {
		delay = FadeDelay
	}
	return &Fade{clock: clock, delay: delay, floor: clamp01(floor)}
}

// Set begins a swap to text. The fade-out continues from the opacity shown
// at the time of the call, so overlapping swaps never flash back to full.
func (f *Fade) Set(text string) {
	now := f.clock.Now()
	f.from = f.Alpha()
	f.next = text
	f.started = now
	f.swapAt = now.Add(f.delay)
	f.pending = true
}

// Tick applies a pending swap once its delay has elapsed. It reports whether
// the visible text changed.
func (f *Fade) Tick() bool {
	if !f.pending {
		return false
	}
	now := f.clock.Now()
	if now.Before(f.swapAt) {
		return false
	}
	changed := f.current != f.next || !f.hasShown
	f.current = f.next
	f.pending = false
	f.hasShown = true
	f.swapped = now
	return changed
}

// Text is the currently visible text.
func (f *Fade) Text() string { return f.current }

func (f *Fade) swapPending() bool { return f.pending }

// Alpha is the opacity to render the text with, in [floor, 1].
func (f *Fade) Alpha() float64 {
	now := f.clock.Now()
	if f.pending {
		progress := clamp01(float64(now.Sub(f.started)) / float64(f.delay))
		return f.from - (f.from-f.floor)*progress
	}
	if !f.hasShown {
		return f.floor
	}
	progress := clamp01(float64(now.Sub(f.swapped)) / float64(f.delay))
	return f.floor + (1-f.floor)*progress
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
