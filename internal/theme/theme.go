package theme

import (
	"image/color"
	"strings"
)

// ID identifies one of the selectable mood presets.
type ID string

const (
	DeepNight   ID = "deep-night"
	MistyForest ID = "misty-forest"
	WarmEmber   ID = "warm-ember"

	// Default is the fallback theme when an identifier is unknown.
	Default = DeepNight

	// MaxSounds is the number of sound slots in the controls card.
	MaxSounds = 3
)

// Sound describes one looping ambient track of a theme.
type Sound struct {
	Icon   string
	Label  string
	Src    string
	Volume float64
}

// Theme is an immutable mood preset.
type Theme struct {
	ID          ID
	Title       string
	Description string
	Sounds      []Sound
}

// Palette holds the colors the renderer uses while a theme is selected.
type Palette struct {
	SkyTop    color.RGBA
	SkyBottom color.RGBA
	Accent    color.RGBA
	Text      color.RGBA
	Muted     color.RGBA
	Surface   color.RGBA
}

// order is the slider order.
var order = []ID{DeepNight, MistyForest, WarmEmber}

var catalogue = map[ID]Theme{
	DeepNight: {
		ID:          DeepNight,
		Title:       "午夜海岬",
		Description: "此刻，您佇立於午夜的海岬。冰冷的雨絲、洶湧的海浪與呼嘯的海風交織，帶走所有的煩惱，只留下大自然的壯闊與寧靜。",
		Sounds: []Sound{
			{Icon: "🌧️", Label: "雨聲強度", Src: "sounds/rain.mp3", Volume: 0.2},
			{Icon: "🌊", Label: "海浪頻率", Src: "sounds/ocean-waves.mp3", Volume: 0.5},
			{Icon: "💨", Label: "風聲流動", Src: "sounds/wind.mp3", Volume: 0.3},
		},
	},
	MistyForest: {
		ID:          MistyForest,
		Title:       "迷霧森林",
		Description: "此刻，您漫步於清晨的迷霧森林。深墨綠與松針綠的色調帶來有機的呼吸感，彷彿能聞到苔蘚與樹皮的氣息。",
		Sounds: []Sound{
			{Icon: "🍃", Label: "林間風聲", Src: "sounds/forest-wind.mp3", Volume: 0.5},
			{Icon: "🐦", Label: "蟲鳴鳥叫", Src: "sounds/birds-and-insects.mp3", Volume: 0.15},
			{Icon: "💧", Label: "溪流潺潺", Src: "sounds/stream.mp3", Volume: 0.4},
		},
	},
	WarmEmber: {
		ID:          WarmEmber,
		Title:       "溫暖營火",
		Description: "此刻，您坐在溫暖的壁爐旁。柴火燃燒的劈啪聲與飄散的火星，營造出極致的安全感，像一個溫暖的擁抱，驅散寒冷。",
		Sounds: []Sound{
			{Icon: "🔥", Label: "營火劈啪", Src: "sounds/campfire.mp3", Volume: 0.5},
			{Icon: "🍂", Label: "落葉沙沙", Src: "sounds/rustling-leaves.mp3", Volume: 0.2},
			{Icon: "🦗", Label: "夜蟲低鳴", Src: "sounds/night-insects-crickets.mp3", Volume: 0.15},
		},
	},
}

var palettes = map[ID]Palette{
	DeepNight: {
		SkyTop:    color.RGBA{R: 6, G: 10, B: 26, A: 255},
		SkyBottom: color.RGBA{R: 18, G: 34, B: 60, A: 255},
		Accent:    color.RGBA{R: 255, G: 236, B: 170, A: 255},
		Text:      color.RGBA{R: 226, G: 232, B: 240, A: 255},
		Muted:     color.RGBA{R: 148, G: 163, B: 184, A: 255},
		Surface:   color.RGBA{R: 15, G: 23, B: 42, A: 190},
	},
	MistyForest: {
		SkyTop:    color.RGBA{R: 20, G: 38, B: 32, A: 255},
		SkyBottom: color.RGBA{R: 58, G: 84, B: 66, A: 255},
		Accent:    color.RGBA{R: 196, G: 230, B: 160, A: 255},
		Text:      color.RGBA{R: 232, G: 240, B: 228, A: 255},
		Muted:     color.RGBA{R: 156, G: 180, B: 160, A: 255},
		Surface:   color.RGBA{R: 18, G: 36, B: 28, A: 190},
	},
	WarmEmber: {
		SkyTop:    color.RGBA{R: 20, G: 10, B: 8, A: 255},
		SkyBottom: color.RGBA{R: 70, G: 30, B: 14, A: 255},
		Accent:    color.RGBA{R: 255, G: 170, B: 80, A: 255},
		Text:      color.RGBA{R: 255, G: 237, B: 213, A: 255},
		Muted:     color.RGBA{R: 214, G: 168, B: 130, A: 255},
		Surface:   color.RGBA{R: 40, G: 18, B: 10, A: 190},
	},
}

// Normalize trims and lower-cases an identifier and reports whether it is
// on the allow-list. Unknown identifiers normalize to Default.
func Normalize(raw string) (ID, bool) {
	id := ID(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := catalogue[id]; ok {
		return id, true
	}
	return Default, false
}

// Valid reports whether raw names a registered theme.
func Valid(raw string) bool {
	_, ok := Normalize(raw)
	return ok
}

// Lookup returns the registered theme, falling back to Default.
func Lookup(id ID) Theme {
	normalized, _ := Normalize(string(id))
	return catalogue[normalized].clone()
}

// IDs returns the identifiers in slider order.
func IDs() []ID {
	out := make([]ID, len(order))
	copy(out, order)
	return out
}

// Index returns the slider position of id, or 0 when unknown.
func Index(id ID) int {
	normalized, _ := Normalize(string(id))
	for i, candidate := range order {
		if candidate == normalized {
			return i
		}
	}
	return 0
}

// At returns the theme at slider position index, clamped to the allow-list.
func At(index int) Theme {
	if index < 0 {
		index = 0
	}
	if index >= len(order) {
		index = len(order) - 1
	}
	return catalogue[order[index]].clone()
}

func (t Theme) clone() Theme {
	t.Sounds = append([]Sound(nil), t.Sounds...)
	return t
}

// Len is the number of slider positions.
func Len() int { return len(order) }

// ColorsFor returns the palette of id, falling back to Default.
func ColorsFor(id ID) Palette {
	normalized, _ := Normalize(string(id))
	return palettes[normalized]
}
