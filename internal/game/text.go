package game

import (
	"image/color"
	"strings"
	"sync"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	faceOnce sync.Once
	uiFace   text.Face
)

// face returns the shared UI face. The bitmap font covers CJK glyphs.
func face() text.Face {
	faceOnce.Do(func() {
		uiFace = text.NewGoXFace(bitmapfont.Face)
	})
	return uiFace
}

func lineHeight(f text.Face) float64 {
	m := f.Metrics()
	h := m.HAscent + m.HDescent + m.HLineGap
	if h < 14 {
		h = 14
	}
	return h
}

// drawText draws s with its top-left corner at (x, y).
func drawText(dst *ebiten.Image, s string, x, y float64, clr color.RGBA, alpha float64) {
	if s == "" || alpha <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(clamp01(alpha)))
	op.LineSpacing = lineHeight(face())
	text.Draw(dst, s, face(), op)
}

// drawCentered draws s horizontally centred on cx.
func drawCentered(dst *ebiten.Image, s string, cx, y float64, clr color.RGBA, alpha float64) {
	w := text.Advance(s, face())
	drawText(dst, s, cx-w/2, y, clr, alpha)
}

// wrapText breaks s into lines no wider than width. Lines break between
// words when there are spaces and between runes otherwise.
func wrapText(s string, f text.Face, width float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		var line []rune
		for _, r := range paragraph {
			candidate := append(line, r)
			if len(line) > 0 && text.Advance(string(candidate), f) > width {
				cut := len(line)
				if i := lastSpace(line); i > 0 && r != ' ' {
					cut = i
				}
				lines = append(lines, strings.TrimRight(string(line[:cut]), " "))
				line = []rune(strings.TrimLeft(string(line[cut:])+string(r), " "))
				continue
			}
			line = candidate
		}
		lines = append(lines, string(line))
	}
	return lines
}

func lastSpace(line []rune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i] == ' ' {
			return i
		}
	}
	return -1
}
