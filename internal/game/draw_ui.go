package game

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/ambience/internal/chrome"
	"github.com/iburimskiy/ambience/internal/config"
	"github.com/iburimskiy/ambience/internal/theme"
)

func (g *Game) Draw(screen *ebiten.Image) {
	selected := g.atm.Selected()
	palette := theme.ColorsFor(selected)

	drawSky(screen, palette, g.time)

	scene := g.atm.Scene()
	d := newSceneDrawer(screen, palette, g.time)
	d.layer(&scene.Background)
	d.layer(&scene.Foreground)

	if g.atm.OverlayVisible() {
		g.drawOverlay(screen, palette)
		return
	}
	g.drawPanel(screen, palette)
	g.drawControls(screen, palette, selected)
	g.drawFooter(screen, palette)
}

func fillRect(dst *ebiten.Image, r rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.x), float32(r.y), float32(r.w), float32(r.h), clr, false)
}

func (g *Game) drawPanel(screen *ebiten.Image, p theme.Palette) {
	l := g.layout
	fillRect(screen, l.panel, p.Surface)
	vector.StrokeRect(screen, float32(l.panel.x), float32(l.panel.y), float32(l.panel.w), float32(l.panel.h), 1, withAlpha(p.Accent, 0.35), false)

	title := g.atm.Title()
	drawText(screen, title.Value, l.header.x+14, l.header.y+10, p.Text, title.Alpha)

	glyph := "-"
	if g.atm.PanelState() == chrome.Collapsed {
		glyph = "+"
	}
	drawCentered(screen, glyph, l.toggle.x+l.toggle.w/2, l.toggle.y+10, p.Accent, 1)

	if g.atm.PanelState() == chrome.Collapsed {
		return
	}
	desc := g.atm.Description()
	y := l.header.y + l.header.h + 6
	for _, line := range wrapText(desc.Value, face(), l.panel.w-28) {
		if y > l.panel.y+l.panel.h-40 {
			break
		}
		drawText(screen, line, l.panel.x+14, y, p.Text, desc.Alpha*0.85)
		y += lineHeight(face())
	}
	drawText(screen, "Tab 收合面板 · 1/2/3 切換主題", l.panel.x+14, l.panel.y+l.panel.h-24, p.Muted, 0.8)
}

func (g *Game) drawControls(screen *ebiten.Image, p theme.Palette, selected theme.ID) {
	l := g.layout
	fillRect(screen, l.controls, p.Surface)

	// theme slider
	track := l.themes
	mid := float32(track.y + track.h/2)
	vector.StrokeLine(screen, float32(track.x), mid, float32(track.x+track.w), mid, 2, withAlpha(p.Muted, 0.6), true)
	current := theme.Index(selected)
	for i, id := range theme.IDs() {
		cx := float32(track.x + track.w*float64(i)/float64(theme.Len()-1))
		vector.DrawFilledCircle(screen, cx, mid, 3, p.Muted, true)
		clr, alpha := p.Muted, 0.7
		if i == current {
			vector.DrawFilledCircle(screen, cx, mid, config.KnobRadius, p.Accent, true)
			clr, alpha = p.Accent, 1
		}
		label := l.labels[i]
		drawCentered(screen, theme.Lookup(id).Title, label.x+label.w/2, label.y, clr, alpha)
	}

	// sound rows
	slots := g.atm.Slots()
	for i, slot := range slots {
		row := l.rows[i]
		label := g.atm.SlotLabel(i)
		drawText(screen, label.Value, row.x, row.y+2, p.Text, label.Alpha)

		vol := l.volumes[i]
		fillRect(screen, vol, withAlpha(p.Muted, 0.25))
		if !slot.Present {
			continue
		}
		fill := vol
		fill.w = vol.w * clamp01(slot.Volume)
		fillRect(screen, fill, withAlpha(p.Accent, 0.8))
		vector.DrawFilledCircle(screen, float32(fill.x+fill.w), float32(vol.y+vol.h/2), config.KnobRadius, p.Text, true)

		meter := rect{vol.x, vol.y + vol.h + 6, vol.w * clamp01(slot.Level), 3}
		fillRect(screen, meter, withAlpha(levelColor(slot.Level), 0.9))
	}
}

// levelColor shades the level meter from green to red as the signal grows.
func levelColor(level float64) color.RGBA {
	r, gr, b := hsvToRgb(120-120*clamp01(level), 0.7, 0.95)
	return color.RGBA{R: r, G: gr, B: b, A: 255}
}

func (g *Game) drawFooter(screen *ebiten.Image, p theme.Palette) {
	if g.enteredAt.IsZero() {
		return
	}
	elapsed := time.Since(g.enteredAt)
	drawText(screen, "聆聽中 "+formatDuration(elapsed), config.PanelX, float64(g.height)-32, p.Muted, 0.8)
}

func (g *Game) drawOverlay(screen *ebiten.Image, p theme.Palette) {
	w, h := float64(g.width), float64(g.height)
	fillRect(screen, rect{0, 0, w, h}, color.RGBA{A: 150})

	title := g.atm.Title()
	drawCentered(screen, title.Value, w/2, h/2-90, p.Accent, title.Alpha)
	desc := g.atm.Description()
	y := h/2 - 60
	for _, line := range wrapText(desc.Value, face(), 460) {
		drawCentered(screen, line, w/2, y, p.Text, desc.Alpha)
		y += lineHeight(face())
	}

	b := g.layout.enter
	var bg color.RGBA
	switch {
	case g.buttonPressed:
		bg = withAlpha(p.Accent, 0.55)
	case g.buttonHovered:
		bg = withAlpha(p.Accent, 0.75)
	default:
		bg = withAlpha(p.Accent, 0.9)
	}
	fillRect(screen, b, bg)
	vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 2, p.Text, false)
	drawCentered(screen, "進入", b.x+b.w/2, b.y+b.h/2-8, p.SkyTop, 1)
	drawCentered(screen, "Enter / 點擊開始聆聽", w/2, b.y+b.h+16, p.Muted, 0.8)
}
