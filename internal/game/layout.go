package game

import (
	"math"

	"github.com/iburimskiy/ambience/internal/config"
	"github.com/iburimskiy/ambience/internal/theme"
)

type rect struct {
	x, y, w, h float64
}

func (r rect) contains(px, py int) bool {
	x, y := float64(px), float64(py)
	return x >= r.x && x <= r.x+r.w && y >= r.y && y <= r.y+r.h
}

// fraction maps px onto the rect's width, clamped to [0, 1].
func (r rect) fraction(px int) float64 {
	if r.w <= 0 {
		return 0
	}
	return clamp01((float64(px) - r.x) / r.w)
}

// layout holds every hit area for a window size.
type layout struct {
	panel    rect
	header   rect
	toggle   rect
	controls rect
	themes   rect
	labels   [3]rect
	volumes  [theme.MaxSounds]rect
	rows     [theme.MaxSounds]rect
	enter    rect
}

func computeLayout(width, height int, collapsed bool) layout {
	w, h := float64(width), float64(height)
	var l layout

	panelW := math.Min(config.PanelWidth, w-2*config.PanelX)
	l.header = rect{config.PanelX, config.PanelY, panelW, config.PanelHeader}
	l.panel = l.header
	if !collapsed {
		l.panel.h = config.PanelHeight
	}
	l.toggle = rect{l.header.x + l.header.w - config.PanelHeader, l.header.y, config.PanelHeader, config.PanelHeader}

	controlsW := math.Min(config.ControlsWidth, w-2*config.ControlsMargin)
	l.controls = rect{
		x: w - controlsW - config.ControlsMargin,
		y: h - config.ControlsHeight - config.ControlsMargin,
		w: controlsW,
		h: config.ControlsHeight,
	}

	inner := l.controls.x + 20
	innerW := l.controls.w - 40
	l.themes = rect{inner, l.controls.y + 28, innerW, config.SliderHeight}
	for i := range l.labels {
		cx := l.themes.x + l.themes.w*float64(i)/float64(len(l.labels)-1)
		l.labels[i] = rect{cx - 40, l.themes.y + 18, 80, 18}
	}

	for i := range l.volumes {
		rowY := l.controls.y + 92 + float64(i)*44
		l.rows[i] = rect{inner, rowY, innerW, 40}
		l.volumes[i] = rect{inner + 120, rowY + 6, innerW - 120, config.SliderHeight}
	}

	l.enter = rect{(w - config.ButtonWidth) / 2, h/2 + 40, config.ButtonWidth, config.ButtonHeight}
	return l
}

// themeIndexAt snaps a slider position to one of the theme stops.
func themeIndexAt(r rect, px int) int {
	stops := theme.Len() - 1
	return int(math.Round(r.fraction(px) * float64(stops)))
}

// percentAt maps a slider position to a 0-100 volume.
func percentAt(r rect, px int) int {
	return int(math.Round(r.fraction(px) * 100))
}
