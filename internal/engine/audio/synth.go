package audio

import (
	"math"
	"math/rand/v2"

	"github.com/gopxl/beep/v2"
)

// rustleSamples synthesizes n stereo samples of paper noise: white noise
// through a one-pole low-pass with a sin² envelope and a slow flutter.
// The output is silent at both ends and bounded by amplitude.
func rustleSamples(n int, amplitude float64, seed uint64) [][2]float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([][2]float64, n)

	var lpL, lpR float64
	const smoothing = 0.35
	for i := range out {
		t := float64(i) / float64(n)
		env := math.Sin(math.Pi * t)
		env *= env
		flutter := 0.7 + 0.3*math.Sin(2*math.Pi*9*t)

		lpL += smoothing * (rng.Float64()*2 - 1 - lpL)
		lpR += smoothing * (rng.Float64()*2 - 1 - lpR)

		g := amplitude * env * flutter
		out[i] = [2]float64{g * lpL, g * lpR}
	}
	return out
}

func sliceStreamer(samples [][2]float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(dst [][2]float64) (n int, ok bool) {
		if pos >= len(samples) {
			return 0, false
		}
		n = copy(dst, samples[pos:])
		pos += n
		return n, true
	})
}
