// Package game is the ebiten shell around the atmosphere: it maps input to
// theme, volume and panel operations and draws the scene and chrome.
package game

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/ambience/internal/atmosphere"
	"github.com/iburimskiy/ambience/internal/chrome"
	"github.com/iburimskiy/ambience/internal/theme"
)

var watchedKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.KeyArrowLeft, ebiten.KeyArrowRight,
	ebiten.KeyTab, ebiten.KeyEnter, ebiten.KeySpace,
	ebiten.KeyEscape, ebiten.KeyQ,
}

// Game implements ebiten.Game.
type Game struct {
	ctx context.Context
	atm *atmosphere.Atmosphere

	width, height int
	layout        layout

	// animation clock in seconds
	time      float64
	enteredAt time.Time

	// input edge detection
	prevKey       map[ebiten.Key]bool
	prevX         int
	prevY         int
	touches       []ebiten.TouchID
	touchID       ebiten.TouchID
	touched       bool
	touchReleased bool // tracked touch ended this frame

	// drag state
	dragTheme   bool
	dragVolume  int
	lastPercent [theme.MaxSounds]int

	// button state
	buttonHovered bool
	buttonPressed bool

	quit atomic.Bool
}

// New returns a Game driving atm. width and height seed the layout until
// the first Layout call.
func New(ctx context.Context, atm *atmosphere.Atmosphere, width, height int) *Game {
	g := &Game{
		ctx:        ctx,
		atm:        atm,
		width:      width,
		height:     height,
		prevKey:    map[ebiten.Key]bool{},
		dragVolume: -1,
	}
	for i := range g.lastPercent {
		g.lastPercent[i] = -1
	}
	return g
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}
	keys := make(map[ebiten.Key]bool, len(watchedKeys))
	for _, k := range watchedKeys {
		keys[k] = justPressed(k)
	}

	if keys[ebiten.KeyEscape] || keys[ebiten.KeyQ] || g.quit.Load() {
		return ebiten.Termination
	}

	g.atm.Resize(g.width)
	g.layout = computeLayout(g.width, g.height, g.atm.PanelState() == chrome.Collapsed)
	g.time += 1.0 / float64(ebiten.TPS())

	x, y, pressed, held := g.pointer()
	moved := x != g.prevX || y != g.prevY
	g.prevX, g.prevY = x, y

	if g.atm.OverlayVisible() {
		g.updateOverlay(x, y, pressed, keys)
		g.atm.Tick()
		return nil
	}

	if (moved || pressed) && (g.layout.panel.contains(x, y) || g.layout.controls.contains(x, y)) {
		g.atm.Touch()
	}
	if pressed {
		g.press(x, y)
	}
	if held {
		g.drag(x)
	} else {
		g.dragTheme = false
		g.dragVolume = -1
	}

	switch {
	case keys[ebiten.Key1]:
		g.selectTheme(0)
	case keys[ebiten.Key2]:
		g.selectTheme(1)
	case keys[ebiten.Key3]:
		g.selectTheme(2)
	case keys[ebiten.KeyArrowLeft]:
		g.selectTheme(theme.Index(g.atm.Selected()) - 1)
	case keys[ebiten.KeyArrowRight]:
		g.selectTheme(theme.Index(g.atm.Selected()) + 1)
	}
	if keys[ebiten.KeyTab] {
		g.atm.TogglePanel()
	}

	g.atm.Tick()
	return nil
}

// pointer merges the mouse and the first touch into one pointer.
func (g *Game) pointer() (x, y int, pressed, held bool) {
	x, y = ebiten.CursorPosition()
	pressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	held = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	g.touchReleased = false
	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	if len(g.touches) > 0 {
		g.touchID = g.touches[0]
		g.touched = true
		pressed = true
	}
	if g.touched {
		if inpututil.IsTouchJustReleased(g.touchID) {
			g.touched = false
			g.touchReleased = true
			return x, y, pressed, held
		}
		x, y = ebiten.TouchPosition(g.touchID)
		held = true
	}
	return x, y, pressed, held
}

func (g *Game) updateOverlay(x, y int, pressed bool, keys map[ebiten.Key]bool) {
	g.buttonHovered = g.layout.enter.contains(x, y)
	if g.buttonHovered && pressed {
		g.buttonPressed = true
	}
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) || g.touchReleased
	clicked := released && g.buttonPressed && g.buttonHovered
	if released {
		g.buttonPressed = false
	}
	if clicked || keys[ebiten.KeyEnter] || keys[ebiten.KeySpace] {
		g.atm.Enter()
		g.enteredAt = time.Now()
	}
}

func (g *Game) press(x, y int) {
	l := &g.layout
	switch {
	case l.header.contains(x, y):
		g.atm.TogglePanel()
		return
	case l.themes.contains(x, y):
		g.dragTheme = true
		g.selectTheme(themeIndexAt(l.themes, x))
		return
	}
	for i, r := range l.labels {
		if r.contains(x, y) {
			g.selectTheme(i)
			return
		}
	}
	slots := g.atm.Slots()
	for i, r := range l.volumes {
		if slots[i].Present && r.contains(x, y) {
			g.dragVolume = i
			g.setVolume(i, percentAt(r, x))
			return
		}
	}
}

func (g *Game) drag(x int) {
	switch {
	case g.dragTheme:
		if index := themeIndexAt(g.layout.themes, x); theme.At(index).ID != g.atm.Selected() {
			g.selectTheme(index)
		}
	case g.dragVolume >= 0:
		g.setVolume(g.dragVolume, percentAt(g.layout.volumes[g.dragVolume], x))
	}
}

// selectTheme activates the theme at index. Re-selecting the current theme
// restarts its soundscape, which retries blocked playback. Out-of-range
// indices are ignored.
func (g *Game) selectTheme(index int) {
	if index < 0 || index >= theme.Len() {
		return
	}
	g.atm.SelectIndex(g.ctx, index)
	for i := range g.lastPercent {
		g.lastPercent[i] = -1
	}
}

func (g *Game) setVolume(slot, percent int) {
	if g.lastPercent[slot] == percent {
		return
	}
	g.lastPercent[slot] = percent
	g.atm.SetVolume(slot, float64(percent))
}

// Quit ends the game loop on the next frame. Safe to call from any goroutine.
func (g *Game) Quit() { g.quit.Store(true) }

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
