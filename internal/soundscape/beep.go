package soundscape

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	applog "github.com/iburimskiy/ambience/internal/log"
	"github.com/iburimskiy/ambience/internal/theme"
)

const (
	// SampleRate is the rate the speaker runs at; assets are resampled to it.
	SampleRate beep.SampleRate = 44100

	levelRingSize   = 2048
	resampleQuality = 4
	speakerLatency  = time.Second / 20
)

var (
	// ErrUnsupportedFormat is returned for assets beep cannot decode.
	ErrUnsupportedFormat = errors.New("soundscape: unsupported audio format")
	// ErrNoSource is returned for sound definitions without an asset path.
	ErrNoSource = errors.New("soundscape: sound has no source")
)

// BeepConfig configures the speaker-backed backend.
type BeepConfig struct {
	AssetDir string
	// SynthFallback streams generated noise when an asset file is missing.
	SynthFallback bool
}

// BeepBackend plays assets through the system speaker. The speaker is
// initialised on the first playback request.
type BeepBackend struct {
	cfg        BeepConfig
	initOnce   sync.Once
	initErr    error
	openDevice func() error
}

func NewBeepBackend(cfg BeepConfig) *BeepBackend {
	return &BeepBackend{
		cfg: cfg,
		openDevice: func() error {
			return speaker.Init(SampleRate, SampleRate.N(speakerLatency))
		},
	}
}

func (b *BeepBackend) Open(sound theme.Sound) (Track, error) {
	if strings.TrimSpace(sound.Src) == "" {
		return nil, ErrNoSource
	}
	path := sound.Src
	if !filepath.IsAbs(path) {
		path = filepath.Join(b.cfg.AssetDir, path)
	}
	return &beepTrack{backend: b, sound: sound, path: path, volume: clamp01(sound.Volume)}, nil
}

func (b *BeepBackend) ensureSpeaker() error {
	b.initOnce.Do(func() {
		b.initErr = b.openDevice()
		if b.initErr == nil {
			applog.Debug("speaker initialised", "rate", int(SampleRate))
		}
	})
	return b.initErr
}

// beepTrack is loaded lazily on its first Play so a theme switch costs no
// file I/O for tracks that are never started.
type beepTrack struct {
	backend *BeepBackend
	sound   theme.Sound
	path    string

	mu      sync.Mutex
	volume  float64
	source  io.Closer
	ctrl    *beep.Ctrl
	gain    *effects.Volume
	tap     *levelTap
	playing bool
	closed  bool
}

// Play opens the device and loads the asset on first use. Neither step holds
// the track lock, so readers on the frame path never wait on them.
func (t *beepTrack) Play() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	if t.playing {
		t.mu.Unlock()
		return nil
	}
	loaded := t.ctrl != nil
	t.mu.Unlock()

	if err := t.backend.ensureSpeaker(); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	if !loaded {
		if err := t.load(); err != nil {
			return err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	speaker.Lock()
	t.ctrl.Paused = false
	speaker.Unlock()
	t.playing = true
	return nil
}

// load builds file -> decoder -> loop -> resampler -> volume -> tap -> ctrl
// unlocked, then installs it. A track closed meanwhile discards the chain.
func (t *beepTrack) load() error {
	streamer, closer, err := t.open()
	if err != nil {
		return err
	}
	gain := &effects.Volume{Streamer: streamer, Base: 2}
	tap := newLevelTap(gain, levelRingSize)
	ctrl := &beep.Ctrl{Streamer: tap, Paused: true}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.ctrl != nil {
		_ = closer.Close()
		if t.closed {
			return ErrClosed
		}
		return nil
	}
	applyVolume(gain, t.volume)
	t.source, t.gain, t.tap, t.ctrl = closer, gain, tap, ctrl
	speaker.Play(ctrl)
	return nil
}

func (t *beepTrack) open() (beep.Streamer, io.Closer, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && t.backend.cfg.SynthFallback {
			applog.Debug("asset missing, streaming generated bed", "src", t.sound.Src)
			return newNoiseBed(t.sound.Src, SampleRate), nopCloser{}, nil
		}
		return nil, nil, fmt.Errorf("open %s: %w", t.path, err)
	}

	stream, format, err := decode(f, filepath.Ext(t.path))
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("decode %s: %w", t.path, err)
	}

	var looped beep.Streamer = beep.Loop(-1, stream)
	if format.SampleRate != SampleRate {
		looped = beep.Resample(resampleQuality, format.SampleRate, SampleRate, looped)
	}
	// the decoders close the file along with the stream
	return looped, stream, nil
}

func decode(f *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(ext) {
	case ".mp3":
		return mp3.Decode(f)
	case ".wav":
		return wav.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func (t *beepTrack) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ctrl != nil {
		speaker.Lock()
		t.ctrl.Paused = true
		speaker.Unlock()
	}
	t.playing = false
}

func (t *beepTrack) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

func (t *beepTrack) SetVolume(v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.volume = clamp01(v)
	if t.gain != nil {
		speaker.Lock()
		applyVolume(t.gain, t.volume)
		speaker.Unlock()
	}
}

func (t *beepTrack) Volume() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.volume
}

func (t *beepTrack) Level() float64 {
	t.mu.Lock()
	tap, playing := t.tap, t.playing
	t.mu.Unlock()
	if tap == nil || !playing {
		return 0
	}
	return tap.level()
}

// Close detaches the track from the speaker mixer and releases its file.
func (t *beepTrack) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.playing = false
	if t.ctrl != nil {
		speaker.Lock()
		t.ctrl.Streamer = nil
		speaker.Unlock()
	}
	if t.source != nil {
		return t.source.Close()
	}
	return nil
}

// applyVolume maps a linear volume onto a log2 gain; zero is silent since
// log2(0) is -Inf.
func applyVolume(v *effects.Volume, linear float64) {
	if linear <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(linear)
	v.Silent = false
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
