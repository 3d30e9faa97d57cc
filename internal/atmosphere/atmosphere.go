// Package atmosphere ties the theme registry, soundscape, particle scene and
// panel chrome together behind the theme-switch operation.
package atmosphere

import (
	"context"
	"fmt"

	"github.com/iburimskiy/ambience/internal/chrome"
	applog "github.com/iburimskiy/ambience/internal/log"
	"github.com/iburimskiy/ambience/internal/particle"
	"github.com/iburimskiy/ambience/internal/prefs"
	"github.com/iburimskiy/ambience/internal/soundscape"
	"github.com/iburimskiy/ambience/internal/theme"
)

// Soundscape is the part of the soundscape controller the atmosphere drives.
type Soundscape interface {
	Activate(t theme.Theme, shouldPlay bool)
	Play()
	SetVolume(slot int, percent float64) bool
	Tracks() []*soundscape.ActiveTrack
	Volumes() []float64
	Close()
}

// Startup decides which theme is shown when the application starts.
type Startup struct {
	// UsePersisted reads the stored preference; otherwise Theme is used as is.
	UsePersisted bool
	Theme        theme.ID
}

// Text is a piece of fading panel text.
type Text struct {
	Value string
	Alpha float64
}

// Atmosphere holds the single selected theme and everything derived from it.
type Atmosphere struct {
	store prefs.Store
	sound Soundscape
	gen   *particle.Generator
	panel *chrome.Panel

	title *chrome.Fade
	desc  *chrome.Fade
	slots [theme.MaxSounds]*chrome.Fade

	scene    particle.Scene
	selected theme.ID
	width    int
	overlay  bool
}

// New wires an Atmosphere. A nil store keeps the preference in memory.
func New(store prefs.Store, sound Soundscape, gen *particle.Generator, clock chrome.Clock) *Atmosphere {
	if store == nil {
		store = prefs.NewMemoryStore()
	}
	if gen == nil {
		gen = particle.NewGenerator(nil)
	}
	if clock == nil {
		clock = chrome.SystemClock{}
	}
	a := &Atmosphere{
		store:   store,
		sound:   sound,
		gen:     gen,
		panel:   chrome.NewPanel(clock, chrome.CollapseAfter),
		title:   chrome.NewFade(clock, chrome.FadeDelay, 0),
		desc:    chrome.NewFade(clock, chrome.FadeDelay, 0),
		overlay: true,
	}
	for i := range a.slots {
		a.slots[i] = chrome.NewFade(clock, chrome.FadeDelay, 0.5)
	}
	return a
}

// Init selects the startup theme without starting playback and starts the
// panel's inactivity timer.
func (a *Atmosphere) Init(ctx context.Context, startup Startup, width int) {
	a.width = width
	id := startup.Theme
	if startup.UsePersisted {
		stored, ok, err := a.store.Get(ctx, prefs.ThemeKey)
		switch {
		case err != nil:
			applog.Error("reading stored theme", "error", err)
		case ok:
			id = theme.ID(stored)
		}
	}
	a.SetTheme(ctx, id, false)
	a.panel.Start()
}

// SetTheme switches every theme-derived piece of state to id. Unknown
// identifiers select the default theme.
func (a *Atmosphere) SetTheme(ctx context.Context, id theme.ID, play bool) {
	if !theme.Valid(string(id)) {
		applog.Warn("unknown theme, using default", "theme", id, "default", theme.Default)
	}
	t := theme.Lookup(id)
	a.selected = t.ID

	if err := a.store.Set(ctx, prefs.ThemeKey, string(t.ID)); err != nil {
		applog.Error("persisting theme", "theme", t.ID, "error", err)
	}

	a.title.Set(t.Title)
	a.desc.Set(t.Description)
	for i, fade := range a.slots {
		label := ""
		if i < len(t.Sounds) {
			label = fmt.Sprintf("%s %s", t.Sounds[i].Icon, t.Sounds[i].Label)
		}
		fade.Set(label)
	}

	a.panel.ThemeChanged()
	a.sound.Activate(t, play)
	a.gen.Render(&a.scene, t.ID, a.width)
	applog.Info("theme selected", "theme", t.ID, "play", play, "profile", a.scene.Profile)
}

// SelectIndex switches to the theme at a slider position and plays it.
func (a *Atmosphere) SelectIndex(ctx context.Context, index int) {
	a.SetTheme(ctx, theme.At(index).ID, true)
}

// Enter dismisses the welcome overlay and starts playback.
func (a *Atmosphere) Enter() {
	a.overlay = false
	a.sound.Play()
	applog.Debug("welcome dismissed", "theme", a.selected)
}

// SetVolume applies a 0-100 slider value to a sound slot.
func (a *Atmosphere) SetVolume(slot int, percent float64) {
	a.sound.SetVolume(slot, percent)
	a.panel.Touch()
}

// Touch records pointer activity over the panel or controls.
func (a *Atmosphere) Touch() { a.panel.Touch() }

// TogglePanel flips the informational panel.
func (a *Atmosphere) TogglePanel() { a.panel.Toggle() }

// Resize records the viewport width and regenerates the scene when the
// particle profile changes.
func (a *Atmosphere) Resize(width int) {
	if width == a.width {
		return
	}
	a.width = width
	if particle.ProfileFor(width) != a.scene.Profile {
		a.gen.Render(&a.scene, a.selected, width)
		applog.Debug("scene profile changed", "width", width, "profile", a.scene.Profile)
	}
}

// Tick advances the panel timer and text fades.
func (a *Atmosphere) Tick() {
	if a.panel.Tick() {
		applog.Debug("panel collapsed after inactivity")
	}
	a.title.Tick()
	a.desc.Tick()
	for _, fade := range a.slots {
		fade.Tick()
	}
}

// Close stops every track.
func (a *Atmosphere) Close() {
	a.sound.Close()
}

func (a *Atmosphere) Selected() theme.ID { return a.selected }

func (a *Atmosphere) Scene() *particle.Scene { return &a.scene }

func (a *Atmosphere) PanelState() chrome.State { return a.panel.State() }

func (a *Atmosphere) OverlayVisible() bool { return a.overlay }

func (a *Atmosphere) Title() Text { return Text{Value: a.title.Text(), Alpha: a.title.Alpha()} }

func (a *Atmosphere) Description() Text { return Text{Value: a.desc.Text(), Alpha: a.desc.Alpha()} }

// SlotLabel is the icon and label shown for a sound slot.
func (a *Atmosphere) SlotLabel(slot int) Text {
	if slot < 0 || slot >= len(a.slots) {
		return Text{}
	}
	return Text{Value: a.slots[slot].Text(), Alpha: a.slots[slot].Alpha()}
}

// Slot describes a sound slot for the controls card.
type Slot struct {
	Present bool
	Volume  float64
	Level   float64
	Playing bool
}

// Slots reports every sound slot, present or not.
func (a *Atmosphere) Slots() [theme.MaxSounds]Slot {
	var out [theme.MaxSounds]Slot
	volumes := a.sound.Volumes()
	for i, active := range a.sound.Tracks() {
		if i >= len(out) || i >= len(volumes) || active == nil {
			continue
		}
		out[i] = Slot{Present: true, Volume: volumes[i], Level: active.Level(), Playing: active.Playing()}
	}
	return out
}
