package particle

import "math/rand/v2"

// Breakpoint is the viewport width below which the reduced profile is used.
const Breakpoint = 768

// Profile selects a particle budget.
type Profile int

const (
	Desktop Profile = iota
	Mobile
)

func (p Profile) String() string {
	if p == Mobile {
		return "mobile"
	}
	return "desktop"
}

// ProfileFor returns Mobile for viewports narrower than Breakpoint.
func ProfileFor(width int) Profile {
	if width < Breakpoint {
		return Mobile
	}
	return Desktop
}

// Count is a per-profile particle count.
type Count struct {
	Desktop int
	Mobile  int
}

func (c Count) For(p Profile) int {
	if p == Mobile {
		return c.Mobile
	}
	return c.Desktop
}

// Range is a closed-open interval sampled uniformly.
type Range struct {
	Min, Max float64
}

func (r Range) draw(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return rng.Float64()*(r.Max-r.Min) + r.Min
}

// contains reports whether v lies within the range.
func (r Range) contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func fixed(v float64) Range { return Range{Min: v, Max: v} }

// Ranges are the randomization bounds of one randomized category. Positions
// are percentages of the layer, sizes are pixels, times are seconds.
type Ranges struct {
	Count     Count
	Animation string
	X         Range
	Y         Range
	Width     Range
	Height    Range
	Opacity   Range
	Duration  Range
	Delay     Range
	Move      Range
	// Square draws Height equal to Width.
	Square bool
	// Aspect draws Height as Width*Aspect when non-zero.
	Aspect float64
	// RelativeWidth treats Width as a percentage of the layer width.
	RelativeWidth bool
	// Bottom anchors the element this many pixels below the layer bottom.
	Bottom float64
}

var table = map[Category]Ranges{
	Star: {
		Count: Count{60, 20}, Animation: "twinkle",
		X: Range{0, 100}, Y: Range{0, 80}, Width: Range{1, 3}, Square: true,
		Opacity: fixed(1), Duration: Range{2, 5}, Delay: Range{0, 5},
	},
	WindGust: {
		Count: Count{5, 2}, Animation: "gust",
		X: fixed(0), Y: Range{0, 80}, Width: Range{100, 300}, Height: fixed(1),
		Opacity: fixed(0.35), Duration: Range{0.5, 1}, Delay: Range{0, 5},
	},
	NightCloud: {
		Count: Count{5, 2}, Animation: "cloud-drift",
		X: Range{0, 100}, Y: Range{0, 40}, Width: Range{200, 500}, Aspect: 0.6,
		Opacity: fixed(0.25), Duration: Range{60, 120}, Delay: Range{-60, 0},
	},
	Rain: {
		Count: Count{100, 25}, Animation: "rain-fall",
		X: Range{0, 100}, Y: Range{-20, 0}, Width: fixed(1), Height: Range{10, 30},
		Opacity: Range{0.1, 0.6}, Duration: Range{0.5, 1}, Delay: Range{0, 2},
	},
	GodRay: {
		Count: Count{3, 1}, Animation: "god-ray",
		Y: fixed(0), Width: fixed(120), Height: fixed(100),
		Opacity: fixed(0.12), Duration: fixed(8),
	},
	Fog: {
		Count: Count{5, 2}, Animation: "drift",
		X: fixed(-25), Y: Range{0, 100}, Width: fixed(150), RelativeWidth: true, Height: fixed(200),
		Opacity: fixed(0.1), Duration: Range{20, 40}, Delay: Range{-20, 0},
	},
	Leaf: {
		Count: Count{30, 10}, Animation: "leaf-fall",
		X: Range{0, 100}, Y: Range{-20, 0}, Width: fixed(8), Height: fixed(5),
		Opacity: fixed(0.8), Duration: Range{8, 13}, Delay: Range{0, 10},
	},
	Firefly: {
		Count: Count{20, 5}, Animation: "fly",
		X: Range{0, 100}, Y: Range{0, 100}, Width: fixed(3), Square: true,
		Opacity: fixed(0.9), Duration: Range{5, 10}, Delay: Range{0, 5},
		Move: Range{-100, 100},
	},
	EmberStar: {
		Count: Count{50, 15}, Animation: "twinkle",
		X: Range{0, 100}, Y: Range{0, 60}, Width: Range{1, 3}, Square: true,
		Opacity: fixed(0.7), Duration: fixed(3), Delay: Range{0, 5},
	},
	Ember: {
		Count: Count{80, 25}, Animation: "rise",
		X: Range{0, 100}, Width: Range{2, 6}, Square: true, Bottom: -10,
		Opacity: fixed(0.9), Duration: Range{3, 8}, Delay: Range{0, 5},
	},
	Smoke: {
		Count: Count{30, 8}, Animation: "smoke-rise",
		X: Range{0, 100}, Width: fixed(60), Square: true, Bottom: -50,
		Opacity: fixed(0.08), Duration: Range{10, 20}, Delay: Range{0, 10},
	},
	Ash: {
		Count: Count{40, 10}, Animation: "ash-float",
		X: Range{0, 100}, Y: Range{0, 100}, Width: fixed(2), Square: true,
		Opacity: fixed(0.5), Duration: Range{5, 15}, Delay: Range{0, 5},
	},
}

// rangesFor returns the bounds of a randomized category.
func rangesFor(c Category) (Ranges, bool) {
	r, ok := table[c]
	return r, ok
}
