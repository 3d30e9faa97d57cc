package theme

import "testing"

func TestLookupKnownThemes(t *testing.T) {
	t.Parallel()

	for _, id := range IDs() {
		got := Lookup(id)
		if got.ID != id {
			t.Fatalf("Lookup(%q).ID = %q", id, got.ID)
		}
		if got.Title == "" || got.Description == "" {
			t.Fatalf("theme %q missing title or description", id)
		}
		if len(got.Sounds) == 0 || len(got.Sounds) > MaxSounds {
			t.Fatalf("theme %q has %d sounds", id, len(got.Sounds))
		}
		for _, sound := range got.Sounds {
			if sound.Volume < 0 || sound.Volume > 1 {
				t.Fatalf("theme %q sound %q volume %v out of range", id, sound.Label, sound.Volume)
			}
		}
	}
}

func TestLookupFallsBackToDefault(t *testing.T) {
	t.Parallel()

	cases := []ID{"", "sunny-beach", "deep_night", "<script>"}
	for _, id := range cases {
		if got := Lookup(id); got.ID != Default {
			t.Fatalf("Lookup(%q).ID = %q, want %q", id, got.ID, Default)
		}
	}
}

func TestNormalizeTrimsAndLowercases(t *testing.T) {
	t.Parallel()

	id, ok := Normalize("  Misty-Forest ")
	if !ok || id != MistyForest {
		t.Fatalf("Normalize returned %q, %v", id, ok)
	}
	if Valid("warm ember") {
		t.Fatal("expected identifier with space to be invalid")
	}
}

func TestIndexAndAt(t *testing.T) {
	t.Parallel()

	for i, id := range IDs() {
		if Index(id) != i {
			t.Fatalf("Index(%q) = %d, want %d", id, Index(id), i)
		}
		if At(i).ID != id {
			t.Fatalf("At(%d).ID = %q, want %q", i, At(i).ID, id)
		}
	}
	if Index("unknown") != 0 {
		t.Fatal("expected unknown identifier to map to slot 0")
	}
	if At(-4).ID != DeepNight || At(99).ID != WarmEmber {
		t.Fatal("expected At to clamp to the allow-list")
	}
}

func TestIDsReturnsCopy(t *testing.T) {
	t.Parallel()

	ids := IDs()
	ids[0] = "mutated"
	if IDs()[0] != DeepNight {
		t.Fatal("IDs must not expose the internal order slice")
	}
}

func TestColorsForFallsBack(t *testing.T) {
	t.Parallel()

	if ColorsFor("nope") != ColorsFor(Default) {
		t.Fatal("expected unknown palette to match default")
	}
	if ColorsFor(WarmEmber) == ColorsFor(DeepNight) {
		t.Fatal("expected distinct palettes per theme")
	}
}

func TestLookupReturnsIndependentSounds(t *testing.T) {
	t.Parallel()

	first := Lookup(WarmEmber)
	first.Sounds[0].Volume = 0.99
	if Lookup(WarmEmber).Sounds[0].Volume != 0.5 {
		t.Fatal("mutating a looked-up theme must not change the registry")
	}
}
