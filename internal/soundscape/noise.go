package soundscape

import (
	"hash/fnv"
	"math"
	"math/rand/v2"

	"github.com/faiface/beep"
)

// noiseBed is an endless low-passed noise stream with a slow swell, used in
// place of a missing asset file.
type noiseBed struct {
	rng    *rand.Rand
	alpha  float64
	gain   float64
	swell  float64
	phase  float64
	state  [2]float64
	stereo float64
}

// newNoiseBed derives the filter color and swell rate from name so each
// sound slot gets a distinct texture.
func newNoiseBed(name string, rate beep.SampleRate) *noiseBed {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	seed := h.Sum64()
	shape := float64(seed%1000) / 1000

	return &noiseBed{
		rng:    rand.New(rand.NewPCG(seed, seed>>7|1)),
		alpha:  0.01 + 0.15*shape,
		gain:   0.6,
		swell:  (0.05 + 0.2*shape) / float64(rate),
		stereo: 0.3,
	}
}

func (n *noiseBed) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		mod := 0.65 + 0.35*math.Sin(2*math.Pi*n.phase)
		n.phase += n.swell
		if n.phase >= 1 {
			n.phase -= 1
		}
		shared := n.rng.Float64()*2 - 1
		for ch := 0; ch < 2; ch++ {
			x := (1-n.stereo)*shared + n.stereo*(n.rng.Float64()*2-1)
			n.state[ch] += n.alpha * (x - n.state[ch])
			// low-passing loses energy; scale back up by the filter gain
			samples[i][ch] = clampSample(n.state[ch] * n.gain * mod / math.Sqrt(n.alpha))
		}
	}
	return len(samples), true
}

func (n *noiseBed) Err() error { return nil }

func clampSample(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
