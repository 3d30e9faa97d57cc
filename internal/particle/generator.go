// Package particle synthesizes the decorative scene of a theme: randomized
// particles in a background layer and fixed silhouettes in a foreground layer.
package particle

import (
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/ambience/internal/theme"
)

// Category names a kind of decorative element.
type Category string

const (
	// deep-night
	Star       Category = "star"
	WindGust   Category = "wind-gust"
	NightCloud Category = "night-cloud"
	Rain       Category = "rain"
	OceanWave  Category = "ocean-wave"
	Lighthouse Category = "lighthouse"
	SeaMist    Category = "sea-mist"
	Moon       Category = "moon"
	MoonGlint  Category = "moon-reflection"

	// misty-forest
	GodRay      Category = "god-ray"
	Fog         Category = "fog"
	Leaf        Category = "leaf"
	Firefly     Category = "firefly"
	ForestBack  Category = "forest-back"
	ForestMid   Category = "forest-mid"
	ForestFront Category = "forest-front"

	// warm-ember
	EmberStar    Category = "ember-star"
	CampfireGlow Category = "campfire-glow"
	HeatHaze     Category = "heat-haze"
	Ember        Category = "ember"
	Smoke        Category = "smoke"
	Ash          Category = "ash"
	Vignette     Category = "vignette"
	Tent         Category = "tent-silhouette"
	Logs         Category = "logs-silhouette"

	// children
	WaveBack       Category = "wave-back"
	WaveMid        Category = "wave-mid"
	WaveFront      Category = "wave-front"
	LighthouseGlow Category = "lighthouse-glow"
	LighthouseBeam Category = "lighthouse-beam"
)

// Element is one decorative node. X and Y are percentages of the layer;
// Width and Height are pixels unless RelativeWidth is set.
type Element struct {
	Category      Category
	Animation     string
	X, Y          float64
	Bottom        float64
	FromBottom    bool
	Width, Height float64
	RelativeWidth bool
	Opacity       float64
	Duration      float64
	Delay         float64
	MoveX, MoveY  float64
	Children      []Element
}

// Layer is an ordered container of elements.
type Layer struct {
	Elements []Element
}

// Reset removes every element.
func (l *Layer) Reset() { l.Elements = nil }

func (l *Layer) add(e Element) { l.Elements = append(l.Elements, e) }

// Len is the number of top-level elements.
func (l *Layer) Len() int { return len(l.Elements) }

// Categories counts the top-level elements per category.
func (l *Layer) Categories() map[Category]int {
	out := make(map[Category]int)
	for _, e := range l.Elements {
		out[e.Category]++
	}
	return out
}

// Scene is the two layers rendered for a theme.
type Scene struct {
	Theme      theme.ID
	Profile    Profile
	Background Layer
	Foreground Layer
}

var backgroundCategories = map[theme.ID][]Category{
	theme.DeepNight:   {Star, WindGust, NightCloud, Rain, OceanWave, Lighthouse, SeaMist},
	theme.MistyForest: {GodRay, Fog, Leaf, Firefly},
	theme.WarmEmber:   {EmberStar, CampfireGlow, HeatHaze, Ember, Smoke, Ash},
}

var foregroundCategories = map[theme.ID][]Category{
	theme.DeepNight:   {Moon, MoonGlint},
	theme.MistyForest: {ForestBack, ForestMid, ForestFront},
	theme.WarmEmber:   {Vignette, Tent, Logs},
}

// BackgroundCategories lists the categories a theme draws behind the scene.
func BackgroundCategories(id theme.ID) []Category {
	return append([]Category(nil), backgroundCategories[theme.Lookup(id).ID]...)
}

// ForegroundCategories lists the silhouette categories of a theme.
func ForegroundCategories(id theme.ID) []Category {
	return append([]Category(nil), foregroundCategories[theme.Lookup(id).ID]...)
}

// Counts returns the randomized particle counts of a theme for a profile.
func Counts(id theme.ID, p Profile) map[Category]int {
	out := make(map[Category]int)
	for _, c := range BackgroundCategories(id) {
		if r, ok := rangesFor(c); ok {
			out[c] = r.Count.For(p)
		}
	}
	return out
}

// Generator fills scenes. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator drawing from rng, or from a time-seeded
// source when rng is nil.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Generator{rng: rng}
}

// Render clears both layers of dst and fills them for the theme at the given
// viewport width. Unknown themes render the default theme.
func (g *Generator) Render(dst *Scene, id theme.ID, width int) {
	t := theme.Lookup(id)
	profile := ProfileFor(width)

	dst.Theme = t.ID
	dst.Profile = profile
	dst.Background.Reset()
	dst.Foreground.Reset()

	switch t.ID {
	case theme.DeepNight:
		g.scatter(&dst.Background, Star, profile)
		g.scatter(&dst.Background, WindGust, profile)
		g.scatter(&dst.Background, NightCloud, profile)
		g.scatter(&dst.Background, Rain, profile)
		dst.Background.add(Element{Category: OceanWave, Opacity: 1, Children: []Element{
			{Category: WaveBack, Opacity: 1, Duration: 12},
			{Category: WaveMid, Opacity: 1, Duration: 9},
			{Category: WaveFront, Opacity: 1, Duration: 7},
		}})
		dst.Background.add(Element{Category: Lighthouse, Opacity: 1, Children: []Element{
			{Category: LighthouseGlow, Opacity: 1, Duration: 4},
			{Category: LighthouseBeam, Opacity: 1, Duration: 10},
		}})
		dst.Background.add(Element{Category: SeaMist, Opacity: 1, Duration: 30})

		dst.Foreground.add(Element{Category: Moon, Opacity: 1})
		dst.Foreground.add(Element{Category: MoonGlint, Opacity: 1, Duration: 6})

	case theme.MistyForest:
		g.godRays(&dst.Background, profile)
		g.scatter(&dst.Background, Fog, profile)
		g.scatter(&dst.Background, Leaf, profile)
		g.scatter(&dst.Background, Firefly, profile)

		for _, c := range []Category{ForestBack, ForestMid, ForestFront} {
			dst.Foreground.add(Element{Category: c, Opacity: 1})
		}

	case theme.WarmEmber:
		g.scatter(&dst.Background, EmberStar, profile)
		dst.Background.add(Element{Category: CampfireGlow, Opacity: 1, Duration: 3})
		dst.Background.add(Element{Category: HeatHaze, Opacity: 1, Duration: 4})
		g.scatter(&dst.Background, Ember, profile)
		g.scatter(&dst.Background, Smoke, profile)
		g.scatter(&dst.Background, Ash, profile)

		for _, c := range []Category{Vignette, Tent, Logs} {
			dst.Foreground.add(Element{Category: c, Opacity: 1})
		}
	}
}

// scatter appends the randomized elements of a category.
func (g *Generator) scatter(l *Layer, c Category, p Profile) {
	r, _ := rangesFor(c)
	n := r.Count.For(p)
	for i := 0; i < n; i++ {
		l.add(g.draw(c, r))
	}
}

func (g *Generator) draw(c Category, r Ranges) Element {
	e := Element{
		Category:      c,
		Animation:     r.Animation,
		X:             r.X.draw(g.rng),
		Width:         r.Width.draw(g.rng),
		RelativeWidth: r.RelativeWidth,
		Opacity:       r.Opacity.draw(g.rng),
		Duration:      r.Duration.draw(g.rng),
		Delay:         r.Delay.draw(g.rng),
	}
	switch {
	case r.Square:
		e.Height = e.Width
	case r.Aspect != 0:
		e.Height = e.Width * r.Aspect
	default:
		e.Height = r.Height.draw(g.rng)
	}
	if r.Bottom != 0 {
		e.FromBottom = true
		e.Bottom = r.Bottom
	} else {
		e.Y = r.Y.draw(g.rng)
	}
	if r.Move != (Range{}) {
		e.MoveX = r.Move.draw(g.rng)
		e.MoveY = r.Move.draw(g.rng)
	}
	return e
}

// godRays are evenly spaced rather than random.
func (g *Generator) godRays(l *Layer, p Profile) {
	r := table[GodRay]
	n := r.Count.For(p)
	for i := 0; i < n; i++ {
		l.add(Element{
			Category:  GodRay,
			Animation: r.Animation,
			X:         20 + float64(i)*30,
			Y:         r.Y.Min,
			Width:     r.Width.Min,
			Height:    r.Height.Min,
			Opacity:   r.Opacity.Min,
			Duration:  r.Duration.Min,
			Delay:     float64(i) * 2,
		})
	}
}
