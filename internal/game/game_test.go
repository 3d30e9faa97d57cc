package game

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/iburimskiy/ambience/internal/atmosphere"
	"github.com/iburimskiy/ambience/internal/chrome"
	"github.com/iburimskiy/ambience/internal/config"
	"github.com/iburimskiy/ambience/internal/particle"
	"github.com/iburimskiy/ambience/internal/prefs"
	"github.com/iburimskiy/ambience/internal/soundscape"
	"github.com/iburimskiy/ambience/internal/theme"
)

type silentTrack struct {
	mu      sync.Mutex
	volume  float64
	playing bool
}

func (s *silentTrack) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = true
	return nil
}

func (s *silentTrack) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
}

func (s *silentTrack) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *silentTrack) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = v
}

func (s *silentTrack) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

func (s *silentTrack) Level() float64 { return 0 }
func (s *silentTrack) Close() error   { return nil }

type silentBackend struct{}

func (silentBackend) Open(theme.Sound) (soundscape.Track, error) { return &silentTrack{}, nil }

type volumeCall struct {
	slot    int
	percent float64
}

// recordingSound counts the calls the game makes through the atmosphere.
type recordingSound struct {
	*soundscape.Controller
	activations []theme.ID
	volumes     []volumeCall
}

func (r *recordingSound) Activate(t theme.Theme, shouldPlay bool) {
	r.activations = append(r.activations, t.ID)
	r.Controller.Activate(t, shouldPlay)
}

func (r *recordingSound) SetVolume(slot int, percent float64) bool {
	r.volumes = append(r.volumes, volumeCall{slot: slot, percent: percent})
	return r.Controller.SetVolume(slot, percent)
}

func newTestGame(t *testing.T) (*Game, *recordingSound) {
	t.Helper()
	sound := &recordingSound{Controller: soundscape.NewController(silentBackend{})}
	clock := chrome.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	gen := particle.NewGenerator(rand.New(rand.NewPCG(3, 4)))
	atm := atmosphere.New(prefs.NewMemoryStore(), sound, gen, clock)
	t.Cleanup(atm.Close)

	ctx := context.Background()
	atm.Init(ctx, atmosphere.Startup{Theme: theme.DeepNight}, config.WindowWidth)
	atm.Enter()

	g := New(ctx, atm, config.WindowWidth, config.WindowHeight)
	g.layout = computeLayout(config.WindowWidth, config.WindowHeight, false)
	sound.activations = nil
	return g, sound
}

// stopX is the slider position of the theme at index.
func stopX(r rect, index int) int {
	return int(r.x + r.w*float64(index)/float64(theme.Len()-1))
}

func midY(r rect) int { return int(r.y + r.h/2) }

func TestThemeSliderDragSwitchesOnlyOnNewStop(t *testing.T) {
	t.Parallel()

	g, sound := newTestGame(t)
	slider := g.layout.themes
	y := midY(slider)

	g.press(stopX(slider, 0), y)
	if len(sound.activations) != 1 {
		t.Fatalf("activations after slider click = %d, want 1", len(sound.activations))
	}
	for i := 0; i < 5; i++ {
		g.drag(stopX(slider, 0) + i)
	}
	if len(sound.activations) != 1 {
		t.Fatalf("dragging within a stop re-activated: %v", sound.activations)
	}

	g.drag(stopX(slider, 1))
	g.drag(stopX(slider, 1) + 2)
	if len(sound.activations) != 2 || g.atm.Selected() != theme.MistyForest {
		t.Fatalf("activations = %v, selected = %s", sound.activations, g.atm.Selected())
	}
}

func TestClicksAndKeysReactivateCurrentTheme(t *testing.T) {
	t.Parallel()

	g, sound := newTestGame(t)
	g.selectTheme(0)
	g.selectTheme(0)
	if len(sound.activations) != 2 {
		t.Fatalf("activations = %d, want a fresh activation per selection", len(sound.activations))
	}
	for _, id := range sound.activations {
		if id != theme.DeepNight {
			t.Fatalf("activated %s, want the current theme", id)
		}
	}
}

func TestLabelClickSelectsTheme(t *testing.T) {
	t.Parallel()

	g, sound := newTestGame(t)
	label := g.layout.labels[2]
	g.press(int(label.x+label.w/2), midY(label))

	if g.atm.Selected() != theme.WarmEmber {
		t.Fatalf("selected = %s, want %s", g.atm.Selected(), theme.WarmEmber)
	}
	if len(sound.activations) != 1 {
		t.Fatalf("activations = %d, want 1", len(sound.activations))
	}
}

func TestOutOfRangeSelectionIsIgnored(t *testing.T) {
	t.Parallel()

	g, sound := newTestGame(t)
	g.selectTheme(theme.Index(g.atm.Selected()) - 1)
	g.selectTheme(theme.Len())
	if len(sound.activations) != 0 {
		t.Fatalf("out-of-range selections activated %v", sound.activations)
	}
	if g.atm.Selected() != theme.DeepNight {
		t.Fatalf("selected = %s", g.atm.Selected())
	}
}

func TestHeaderClickTogglesPanel(t *testing.T) {
	t.Parallel()

	g, sound := newTestGame(t)
	header := g.layout.header
	g.press(int(header.x+header.w/3), midY(header))
	if g.atm.PanelState() != chrome.Collapsed {
		t.Fatalf("panel = %v after header click, want collapsed", g.atm.PanelState())
	}
	g.press(int(g.layout.toggle.x+2), midY(g.layout.toggle))
	if g.atm.PanelState() != chrome.Expanded {
		t.Fatalf("panel = %v after toggle click, want expanded", g.atm.PanelState())
	}
	if len(sound.activations) != 0 {
		t.Fatal("panel clicks must not switch themes")
	}
}

func TestVolumeDragDeduplicatesPercent(t *testing.T) {
	t.Parallel()

	g, sound := newTestGame(t)
	slider := g.layout.volumes[1]
	y := midY(slider)
	half := int(slider.x + slider.w/2)

	g.press(half, y)
	g.drag(half)
	g.drag(half)
	if len(sound.volumes) != 1 || sound.volumes[0] != (volumeCall{slot: 1, percent: 50}) {
		t.Fatalf("volume calls = %+v, want one call at 50%%", sound.volumes)
	}
	if got := g.atm.Slots()[1].Volume; got != 0.5 {
		t.Fatalf("slot volume = %v, want 0.5", got)
	}

	g.drag(int(slider.x + slider.w))
	if len(sound.volumes) != 2 || sound.volumes[1].percent != 100 {
		t.Fatalf("volume calls = %+v, want a second call at 100%%", sound.volumes)
	}

	g.selectTheme(1)
	g.press(int(slider.x+slider.w), y)
	if len(sound.volumes) != 3 {
		t.Fatalf("a theme switch must forget the last percent, calls = %+v", sound.volumes)
	}
}
