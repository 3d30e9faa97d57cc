// Package soundscape owns the looping ambient tracks of the active theme.
package soundscape

import (
	"errors"
	"sync"

	applog "github.com/iburimskiy/ambience/internal/log"
	"github.com/iburimskiy/ambience/internal/theme"
)

// ErrClosed is returned by a Track used after Close.
var ErrClosed = errors.New("soundscape: track closed")

// Track is a playable, looping audio handle.
type Track interface {
	// Play starts or resumes playback. It may block while the asset loads.
	Play() error
	Pause()
	Playing() bool
	SetVolume(v float64)
	Volume() float64
	// Level is the recent output loudness in [0, 1].
	Level() float64
	Close() error
}

// Backend creates tracks for sound definitions.
type Backend interface {
	Open(sound theme.Sound) (Track, error)
}

// ActiveTrack pairs a sound definition with its live handle.
type ActiveTrack struct {
	Sound    theme.Sound
	Slot     int
	track    Track
	wantPlay bool
}

func (a *ActiveTrack) Volume() float64 { return a.track.Volume() }
func (a *ActiveTrack) Playing() bool   { return a.track.Playing() }
func (a *ActiveTrack) Level() float64  { return a.track.Level() }

// Controller owns the active track set. Activate, Play, SetVolume and Close
// are called from a single goroutine; only playback requests run elsewhere.
type Controller struct {
	backend Backend
	themeID theme.ID
	tracks  []*ActiveTrack
	wg      sync.WaitGroup
}

func NewController(backend Backend) *Controller {
	return &Controller{backend: backend}
}

// Activate tears down every current track and creates one looping track per
// sound of t at its default volume. Playback is requested when shouldPlay is
// set; a failed request is logged and otherwise ignored.
func (c *Controller) Activate(t theme.Theme, shouldPlay bool) {
	c.release()
	c.themeID = t.ID

	sounds := t.Sounds
	if len(sounds) > theme.MaxSounds {
		sounds = sounds[:theme.MaxSounds]
	}
	c.tracks = make([]*ActiveTrack, len(sounds))
	for i, sound := range sounds {
		track, err := c.backend.Open(sound)
		if err != nil {
			applog.Warn("unable to create track", "theme", t.ID, "slot", i, "src", sound.Src, "error", err)
			continue
		}
		track.SetVolume(clamp01(sound.Volume))
		active := &ActiveTrack{Sound: sound, Slot: i, track: track}
		c.tracks[i] = active
		if shouldPlay {
			c.requestPlay(active)
		}
	}
	applog.Debug("soundscape activated", "theme", t.ID, "tracks", len(c.tracks), "play", shouldPlay)
}

// Play requests playback of every active track.
func (c *Controller) Play() {
	for _, active := range c.tracks {
		if active != nil {
			c.requestPlay(active)
		}
	}
}

// SetVolume sets the volume of slot from a 0-100 control value. It reports
// false when the slot holds no track. A track whose playback was requested
// but is not running gets a fresh attempt.
func (c *Controller) SetVolume(slot int, percent float64) bool {
	if slot < 0 || slot >= len(c.tracks) || c.tracks[slot] == nil {
		return false
	}
	active := c.tracks[slot]
	active.track.SetVolume(clamp01(percent / 100))
	if active.wantPlay && !active.track.Playing() {
		c.requestPlay(active)
	}
	return true
}

// Tracks returns the slot-aligned active tracks; absent slots are nil.
func (c *Controller) Tracks() []*ActiveTrack {
	out := make([]*ActiveTrack, len(c.tracks))
	copy(out, c.tracks)
	return out
}

// activeTheme is the theme of the current track set.
func (c *Controller) activeTheme() theme.ID { return c.themeID }

// Volumes returns the slot-aligned volumes; absent slots report 0.
func (c *Controller) Volumes() []float64 {
	out := make([]float64, len(c.tracks))
	for i, active := range c.tracks {
		if active != nil {
			out[i] = active.track.Volume()
		}
	}
	return out
}

// Wait blocks until every outstanding playback request has resolved.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close releases every track and waits for pending playback requests.
func (c *Controller) Close() {
	c.release()
	c.wg.Wait()
}

func (c *Controller) requestPlay(active *ActiveTrack) {
	active.wantPlay = true
	track, sound := active.track, active.Sound
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := track.Play(); err != nil {
			applog.Warn("playback prevented or awaiting interaction", "label", sound.Label, "src", sound.Src, "error", err)
		}
	}()
}

func (c *Controller) release() {
	for _, active := range c.tracks {
		if active == nil {
			continue
		}
		active.track.Pause()
		if err := active.track.Close(); err != nil {
			applog.Debug("closing track", "src", active.Sound.Src, "error", err)
		}
	}
	c.tracks = nil
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
