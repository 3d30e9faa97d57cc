package particle

import (
	"math/rand/v2"
	"testing"

	"github.com/iburimskiy/ambience/internal/theme"
)

func seeded() *Generator {
	return NewGenerator(rand.New(rand.NewPCG(7, 11)))
}

func TestProfileFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		width int
		want  Profile
	}{
		{320, Mobile},
		{500, Mobile},
		{767, Mobile},
		{768, Desktop},
		{1024, Desktop},
	}
	for _, tc := range cases {
		if got := ProfileFor(tc.width); got != tc.want {
			t.Fatalf("ProfileFor(%d) = %v, want %v", tc.width, got, tc.want)
		}
	}
}

func TestRenderCountsPerProfile(t *testing.T) {
	t.Parallel()

	gen := seeded()
	for _, id := range theme.IDs() {
		for _, tc := range []struct {
			width   int
			profile Profile
		}{{500, Mobile}, {1024, Desktop}} {
			var scene Scene
			gen.Render(&scene, id, tc.width)
			if scene.Profile != tc.profile {
				t.Fatalf("%s@%d: profile = %v", id, tc.width, scene.Profile)
			}
			got := scene.Background.Categories()
			for category, want := range Counts(id, tc.profile) {
				if got[category] != want {
					t.Fatalf("%s@%d: %s count = %d, want %d", id, tc.width, category, got[category], want)
				}
			}
		}
	}
}

func TestReducedCountsAreSmaller(t *testing.T) {
	t.Parallel()

	for _, id := range theme.IDs() {
		desktop := Counts(id, Desktop)
		mobile := Counts(id, Mobile)
		if len(desktop) == 0 {
			t.Fatalf("%s: no randomized categories", id)
		}
		for category, n := range desktop {
			if mobile[category] >= n {
				t.Fatalf("%s: mobile %s count %d not below desktop %d", id, category, mobile[category], n)
			}
		}
	}
}

func TestRenderOnlyThemeCategories(t *testing.T) {
	t.Parallel()

	gen := seeded()
	for _, id := range theme.IDs() {
		var scene Scene
		gen.Render(&scene, id, 1024)

		allowedBack := setOf(BackgroundCategories(id))
		for category := range scene.Background.Categories() {
			if !allowedBack[category] {
				t.Fatalf("%s: unexpected background category %s", id, category)
			}
		}
		if len(scene.Background.Categories()) != len(allowedBack) {
			t.Fatalf("%s: background categories = %v, want all of %v", id, scene.Background.Categories(), allowedBack)
		}

		allowedFore := setOf(ForegroundCategories(id))
		fore := scene.Foreground.Categories()
		if len(fore) != len(allowedFore) || scene.Foreground.Len() != len(allowedFore) {
			t.Fatalf("%s: foreground = %v, want one each of %v", id, fore, allowedFore)
		}
		for category := range fore {
			if !allowedFore[category] {
				t.Fatalf("%s: unexpected foreground category %s", id, category)
			}
		}
	}
}

type bound struct {
	name  string
	value float64
	rng   Range
}

func TestRenderDrawsWithinRanges(t *testing.T) {
	t.Parallel()

	gen := seeded()
	for _, id := range theme.IDs() {
		var scene Scene
		gen.Render(&scene, id, 1280)
		for _, e := range scene.Background.Elements {
			r, ok := rangesFor(e.Category)
			if !ok || e.Category == GodRay {
				continue
			}
			checks := []bound{
				{"x", e.X, r.X},
				{"width", e.Width, r.Width},
				{"opacity", e.Opacity, r.Opacity},
				{"duration", e.Duration, r.Duration},
				{"delay", e.Delay, r.Delay},
			}
			if !e.FromBottom {
				checks = append(checks, bound{"y", e.Y, r.Y})
			}
			if r.Move != (Range{}) {
				checks = append(checks, bound{"moveX", e.MoveX, r.Move}, bound{"moveY", e.MoveY, r.Move})
			}
			for _, c := range checks {
				if !c.rng.contains(c.value) {
					t.Fatalf("%s %s: %s = %v outside [%v, %v]", id, e.Category, c.name, c.value, c.rng.Min, c.rng.Max)
				}
			}
			if r.Square && e.Height != e.Width {
				t.Fatalf("%s: expected square element, got %vx%v", e.Category, e.Width, e.Height)
			}
			if r.Aspect != 0 && e.Height != e.Width*r.Aspect {
				t.Fatalf("%s: expected aspect %v, got %vx%v", e.Category, r.Aspect, e.Width, e.Height)
			}
		}
	}
}

func TestGodRaysAreEvenlySpaced(t *testing.T) {
	t.Parallel()

	var scene Scene
	seeded().Render(&scene, theme.MistyForest, 1920)
	var xs, delays []float64
	for _, e := range scene.Background.Elements {
		if e.Category == GodRay {
			xs = append(xs, e.X)
			delays = append(delays, e.Delay)
		}
	}
	wantX := []float64{20, 50, 80}
	wantDelay := []float64{0, 2, 4}
	if len(xs) != len(wantX) {
		t.Fatalf("god rays = %d, want %d", len(xs), len(wantX))
	}
	for i := range wantX {
		if xs[i] != wantX[i] || delays[i] != wantDelay[i] {
			t.Fatalf("ray %d at x=%v delay=%v", i, xs[i], delays[i])
		}
	}
}

func TestRenderReplacesPriorOutput(t *testing.T) {
	t.Parallel()

	gen := seeded()
	var scene Scene
	gen.Render(&scene, theme.DeepNight, 1024)
	gen.Render(&scene, theme.WarmEmber, 1024)

	for category := range scene.Background.Categories() {
		if !setOf(BackgroundCategories(theme.WarmEmber))[category] {
			t.Fatalf("stale category %s left after re-render", category)
		}
	}
	if scene.Theme != theme.WarmEmber {
		t.Fatalf("scene theme = %s", scene.Theme)
	}
}

func TestRenderIsStructurallyIdempotent(t *testing.T) {
	t.Parallel()

	gen := seeded()
	for _, id := range theme.IDs() {
		var first, second Scene
		gen.Render(&first, id, 900)
		gen.Render(&second, id, 900)

		a, b := first.Background.Categories(), second.Background.Categories()
		if len(a) != len(b) {
			t.Fatalf("%s: category sets differ: %v vs %v", id, a, b)
		}
		for category, n := range a {
			if b[category] != n {
				t.Fatalf("%s: %s count %d vs %d", id, category, n, b[category])
			}
		}
		if first.Foreground.Len() != second.Foreground.Len() {
			t.Fatalf("%s: foreground sizes differ", id)
		}
	}
}

func TestRenderUnknownThemeFallsBack(t *testing.T) {
	t.Parallel()

	var scene Scene
	seeded().Render(&scene, "corrupted", 1024)
	if scene.Theme != theme.Default {
		t.Fatalf("scene theme = %s, want %s", scene.Theme, theme.Default)
	}
	if scene.Background.Len() == 0 || scene.Foreground.Len() == 0 {
		t.Fatal("expected default theme layers to be populated")
	}
}

func TestNightFixedElementsHaveChildren(t *testing.T) {
	t.Parallel()

	var scene Scene
	seeded().Render(&scene, theme.DeepNight, 500)
	for _, e := range scene.Background.Elements {
		switch e.Category {
		case OceanWave:
			if len(e.Children) != 3 {
				t.Fatalf("wave stack has %d layers", len(e.Children))
			}
		case Lighthouse:
			if len(e.Children) != 2 || e.Children[0].Category != LighthouseGlow || e.Children[1].Category != LighthouseBeam {
				t.Fatalf("lighthouse children = %+v", e.Children)
			}
		}
	}
}

func setOf(categories []Category) map[Category]bool {
	out := make(map[Category]bool, len(categories))
	for _, c := range categories {
		out[c] = true
	}
	return out
}
