package game

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/ambience/internal/particle"
	"github.com/iburimskiy/ambience/internal/theme"
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// fillPath fills a closed path with a premultiplied color.
func fillPath(dst *ebiten.Image, path *vector.Path, clr color.RGBA) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
	}
	dst.DrawTriangles(vs, is, white(), op)
}

func polygon(points ...[2]float32) *vector.Path {
	var path vector.Path
	for i, p := range points {
		if i == 0 {
			path.MoveTo(p[0], p[1])
			continue
		}
		path.LineTo(p[0], p[1])
	}
	path.Close()
	return &path
}

// drawSky paints a vertical gradient that breathes slowly over time.
func drawSky(dst *ebiten.Image, p theme.Palette, t float64) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	const band = 4
	for y := 0; y < h; y += band {
		ratio := float64(y) / float64(h)
		shift := 0.04 * math.Sin(t*0.2+ratio*math.Pi)
		clr := lerpColor(p.SkyTop, p.SkyBottom, ratio+shift)
		vector.DrawFilledRect(dst, 0, float32(y), float32(w), band, clr, false)
	}
}

// sceneDrawer draws particle layers at animation time t.
type sceneDrawer struct {
	dst     *ebiten.Image
	w, h    float64
	t       float64
	palette theme.Palette
}

func newSceneDrawer(dst *ebiten.Image, p theme.Palette, t float64) *sceneDrawer {
	b := dst.Bounds()
	return &sceneDrawer{dst: dst, w: float64(b.Dx()), h: float64(b.Dy()), t: t, palette: p}
}

func (d *sceneDrawer) layer(l *particle.Layer) {
	for i := range l.Elements {
		d.element(&l.Elements[i])
	}
}

// elementPhase is the animation phase of e at time t. Elements still inside
// their delay hold their starting pose.
func elementPhase(t float64, e *particle.Element) float64 {
	return math.Max(phase(t, e.Delay, e.Duration), 0)
}

func (d *sceneDrawer) px(pct float64) float32 { return float32(pct / 100 * d.w) }
func (d *sceneDrawer) py(pct float64) float32 { return float32(pct / 100 * d.h) }

func (d *sceneDrawer) element(e *particle.Element) {
	p := elementPhase(d.t, e)
	x, y := d.px(e.X), d.py(e.Y)

	switch e.Category {
	case particle.Star, particle.EmberStar:
		twinkle := 0.3 + 0.7*(0.5+0.5*math.Sin(2*math.Pi*p))
		clr := color.RGBA{R: 255, G: 255, B: 240, A: 255}
		if e.Category == particle.EmberStar {
			clr = color.RGBA{R: 255, G: 214, B: 170, A: 255}
		}
		vector.DrawFilledCircle(d.dst, x, y, float32(math.Max(e.Width/2, 0.8)), withAlpha(clr, twinkle*e.Opacity), true)

	case particle.WindGust:
		length := float32(e.Width)
		gx := -length + float32(p)*(float32(d.w)+length)
		alpha := math.Sin(math.Pi*p) * e.Opacity
		vector.StrokeLine(d.dst, gx, y, gx+length, y-4, 1, withAlpha(color.RGBA{R: 200, G: 220, B: 255, A: 255}, alpha), true)

	case particle.NightCloud:
		cx := float32(math.Mod(float64(x)+p*(d.w+e.Width), d.w+e.Width) - e.Width/2)
		rw, rh := float32(e.Width/2), float32(e.Height/2)
		clr := withAlpha(color.RGBA{R: 120, G: 135, B: 165, A: 255}, e.Opacity)
		vector.DrawFilledCircle(d.dst, cx, y, rh, clr, true)
		vector.DrawFilledCircle(d.dst, cx-rw*0.5, y+rh*0.25, rh*0.75, clr, true)
		vector.DrawFilledCircle(d.dst, cx+rw*0.5, y+rh*0.3, rh*0.7, clr, true)

	case particle.Rain:
		fall := float32(p * d.h * 1.2)
		ry := y + fall
		vector.StrokeLine(d.dst, x, ry, x-2, ry+float32(e.Height), 1, withAlpha(color.RGBA{R: 174, G: 194, B: 224, A: 255}, e.Opacity), true)

	case particle.OceanWave:
		for i := range e.Children {
			d.wave(i, &e.Children[i])
		}

	case particle.Lighthouse:
		d.lighthouse(e)

	case particle.SeaMist:
		alpha := 0.12 + 0.06*math.Sin(2*math.Pi*p)
		vector.DrawFilledRect(d.dst, 0, float32(d.h*0.68), float32(d.w), float32(d.h*0.12), withAlpha(color.RGBA{R: 200, G: 210, B: 230, A: 255}, alpha), false)

	case particle.GodRay:
		alpha := e.Opacity * (0.6 + 0.4*math.Sin(2*math.Pi*p))
		top := float32(e.Width / 2)
		fillPath(d.dst, polygon(
			[2]float32{x - top/2, 0}, [2]float32{x + top/2, 0},
			[2]float32{x + top*2, float32(d.h)}, [2]float32{x + top/2, float32(d.h)},
		), withAlpha(color.RGBA{R: 255, G: 250, B: 210, A: 255}, alpha))

	case particle.Fog:
		width := float32(e.Width / 100 * d.w)
		fx := x + float32(pingPong(p)*d.w*0.25)
		clr := withAlpha(color.RGBA{R: 255, G: 255, B: 255, A: 255}, e.Opacity)
		vector.DrawFilledRect(d.dst, fx, y-float32(e.Height/4), width, float32(e.Height/2), clr, false)
		vector.DrawFilledRect(d.dst, fx+width*0.1, y-float32(e.Height/2), width*0.8, float32(e.Height), withAlpha(clr, 0.5), false)

	case particle.Leaf:
		ly := y + float32(p*d.h*1.2)
		lx := x + float32(math.Sin(4*math.Pi*p)*30)
		vector.DrawFilledRect(d.dst, lx, ly, float32(e.Width), float32(e.Height), withAlpha(color.RGBA{R: 150, G: 170, B: 80, A: 255}, e.Opacity), true)

	case particle.Firefly:
		sweep := float32(pingPong(p))
		fx, fy := x+float32(e.MoveX)*sweep, y+float32(e.MoveY)*sweep
		glow := 0.4 + 0.6*(0.5+0.5*math.Sin(6*math.Pi*p))
		vector.DrawFilledCircle(d.dst, fx, fy, float32(e.Width*2.5), withAlpha(d.palette.Accent, glow*0.25), true)
		vector.DrawFilledCircle(d.dst, fx, fy, float32(e.Width/2+0.5), withAlpha(color.RGBA{R: 230, G: 255, B: 150, A: 255}, glow*e.Opacity), true)

	case particle.CampfireGlow:
		pulse := 0.85 + 0.15*math.Sin(2*math.Pi*p)
		cx, cy := float32(d.w/2), float32(d.h*0.95)
		for i := 6; i > 0; i-- {
			r := float32(i) * float32(d.h) * 0.09
			vector.DrawFilledCircle(d.dst, cx, cy, r, withAlpha(color.RGBA{R: 255, G: 120, B: 30, A: 255}, 0.06*pulse), true)
		}

	case particle.HeatHaze:
		cx := d.w / 2
		for i := 0; i < 4; i++ {
			off := math.Sin(2*math.Pi*(p+float64(i)*0.25)) * 6
			hy := float32(d.h*0.62 + float64(i)*d.h*0.06)
			vector.StrokeLine(d.dst, float32(cx-90+off), hy, float32(cx+90-off), hy, 3, withAlpha(color.RGBA{R: 255, G: 190, B: 120, A: 255}, 0.05), true)
		}

	case particle.Ember:
		ey := float32(d.h-e.Bottom) - float32(p*d.h*1.1)
		ex := x + float32(math.Sin(2*math.Pi*p*2)*15)
		alpha := (1 - p) * e.Opacity
		vector.DrawFilledCircle(d.dst, ex, ey, float32(e.Width*1.8), withAlpha(color.RGBA{R: 255, G: 140, B: 0, A: 255}, alpha*0.3), true)
		vector.DrawFilledCircle(d.dst, ex, ey, float32(e.Width/2), withAlpha(color.RGBA{R: 255, G: 204, B: 128, A: 255}, alpha), true)

	case particle.Smoke:
		sy := float32(d.h-e.Bottom) - float32(p*d.h*0.9)
		grow := float32(1 + 2*p)
		alpha := math.Sin(math.Pi*p) * e.Opacity
		vector.DrawFilledCircle(d.dst, x+float32(p*40), sy, float32(e.Width/2)*grow, withAlpha(color.RGBA{R: 160, G: 150, B: 150, A: 255}, alpha), true)

	case particle.Ash:
		ax := float32(math.Mod(float64(x)+p*120, d.w))
		ay := float32(math.Mod(float64(y)-p*d.h*0.3+d.h, d.h))
		vector.DrawFilledRect(d.dst, ax, ay, float32(e.Width), float32(e.Height), withAlpha(color.RGBA{R: 200, G: 200, B: 200, A: 255}, e.Opacity*math.Sin(math.Pi*p)), false)

	case particle.Moon:
		mx, my := float32(d.w*0.78), float32(d.h*0.16)
		vector.DrawFilledCircle(d.dst, mx, my, 70, withAlpha(d.palette.Accent, 0.06), true)
		vector.DrawFilledCircle(d.dst, mx, my, 46, withAlpha(d.palette.Accent, 0.12), true)
		vector.DrawFilledCircle(d.dst, mx, my, 30, color.RGBA{R: 245, G: 243, B: 220, A: 255}, true)

	case particle.MoonGlint:
		mx := d.w * 0.78
		for i := 0; i < 6; i++ {
			shimmer := 0.5 + 0.5*math.Sin(2*math.Pi*(p+float64(i)*0.17))
			gy := float32(d.h*0.74 + float64(i)*10)
			half := float32(40 - i*5)
			vector.StrokeLine(d.dst, float32(mx)-half, gy, float32(mx)+half, gy, 2, withAlpha(d.palette.Accent, 0.25*shimmer), true)
		}

	case particle.ForestBack, particle.ForestMid, particle.ForestFront:
		d.forest(e.Category)

	case particle.Vignette:
		edge := color.RGBA{A: 255}
		for i := 0; i < 5; i++ {
			inset := float32(i * 18)
			a := 0.12
			vector.DrawFilledRect(d.dst, 0, 0, float32(d.w), inset+18, withAlpha(edge, a), false)
			vector.DrawFilledRect(d.dst, 0, float32(d.h)-inset-18, float32(d.w), inset+18, withAlpha(edge, a), false)
			vector.DrawFilledRect(d.dst, 0, 0, inset+18, float32(d.h), withAlpha(edge, a), false)
			vector.DrawFilledRect(d.dst, float32(d.w)-inset-18, 0, inset+18, float32(d.h), withAlpha(edge, a), false)
		}

	case particle.Tent:
		base := float32(d.h)
		left := float32(d.w * 0.08)
		fillPath(d.dst, polygon(
			[2]float32{left, base}, [2]float32{left + 110, base - 130}, [2]float32{left + 220, base},
		), color.RGBA{R: 12, G: 6, B: 4, A: 255})

	case particle.Logs:
		cx, base := float32(d.w/2), float32(d.h-10)
		clr := color.RGBA{R: 20, G: 10, B: 6, A: 255}
		vector.StrokeLine(d.dst, cx-70, base, cx+50, base-30, 16, clr, true)
		vector.StrokeLine(d.dst, cx+70, base, cx-50, base-30, 16, clr, true)
	}
}

func (d *sceneDrawer) wave(layer int, e *particle.Element) {
	p := phase(d.t, 0, e.Duration)
	base := d.h * (0.78 + 0.06*float64(layer))
	amp := 8 + 4*float64(layer)
	shades := []color.RGBA{
		{R: 16, G: 32, B: 58, A: 255},
		{R: 12, G: 26, B: 48, A: 255},
		{R: 8, G: 18, B: 36, A: 255},
	}
	var path vector.Path
	path.MoveTo(0, float32(d.h))
	for x := 0.0; x <= d.w; x += 16 {
		y := base + amp*math.Sin(x/d.w*4*math.Pi+2*math.Pi*p+float64(layer))
		path.LineTo(float32(x), float32(y))
	}
	path.LineTo(float32(d.w), float32(d.h))
	path.Close()
	fillPath(d.dst, &path, shades[layer%len(shades)])
}

func (d *sceneDrawer) lighthouse(e *particle.Element) {
	lx, base := float32(d.w*0.9), float32(d.h*0.8)
	tower := color.RGBA{R: 20, G: 22, B: 30, A: 255}
	fillPath(d.dst, polygon(
		[2]float32{lx - 14, base}, [2]float32{lx - 8, base - 150},
		[2]float32{lx + 8, base - 150}, [2]float32{lx + 14, base},
	), tower)
	lamp := [2]float32{lx, base - 158}

	for i := range e.Children {
		child := &e.Children[i]
		p := phase(d.t, 0, child.Duration)
		switch child.Category {
		case particle.LighthouseGlow:
			pulse := 0.6 + 0.4*math.Sin(2*math.Pi*p)
			vector.DrawFilledCircle(d.dst, lamp[0], lamp[1], 26, withAlpha(d.palette.Accent, 0.2*pulse), true)
			vector.DrawFilledCircle(d.dst, lamp[0], lamp[1], 7, withAlpha(d.palette.Accent, pulse), true)
		case particle.LighthouseBeam:
			angle := math.Pi + math.Sin(2*math.Pi*p)*0.6
			reach := d.w * 0.7
			spread := 0.06
			x1 := lamp[0] + float32(math.Cos(angle-spread)*reach)
			y1 := lamp[1] + float32(math.Sin(angle-spread)*reach)
			x2 := lamp[0] + float32(math.Cos(angle+spread)*reach)
			y2 := lamp[1] + float32(math.Sin(angle+spread)*reach)
			fillPath(d.dst, polygon(lamp, [2]float32{x1, y1}, [2]float32{x2, y2}), withAlpha(d.palette.Accent, 0.08))
		}
	}
}

// forest draws a deterministic pine ridge for one depth layer.
func (d *sceneDrawer) forest(c particle.Category) {
	depth := map[particle.Category]int{particle.ForestBack: 0, particle.ForestMid: 1, particle.ForestFront: 2}[c]
	shades := []color.RGBA{
		{R: 38, G: 62, B: 52, A: 255},
		{R: 22, G: 42, B: 34, A: 255},
		{R: 8, G: 20, B: 14, A: 255},
	}
	base := float32(d.h)
	spacing := 70.0 - float64(depth)*14
	height := d.h * (0.35 + 0.12*float64(depth))
	for i, x := 0, -spacing/2; x < d.w+spacing; i, x = i+1, x+spacing {
		// stable pseudo-random height per tree
		jitter := 0.7 + 0.3*math.Abs(math.Sin(float64(i*7+depth*13)))
		top := base - float32(height*jitter)
		half := float32(spacing * 0.7)
		fillPath(d.dst, polygon(
			[2]float32{float32(x) - half, base}, [2]float32{float32(x), top}, [2]float32{float32(x) + half, base},
		), shades[depth])
	}
}
