// Package analysis measures simulated and recorded array responses: peak
// positions, channel energies, inter-channel delays and a combined distance
// between two multichannel impulse responses.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// PeakIndex returns the index of the largest absolute sample, or -1 for an
// empty signal.
func PeakIndex(x []float64) int {
	if len(x) == 0 {
		return -1
	}
	best, idx := -1.0, 0
	for i, v := range x {
		if a := math.Abs(v); a > best {
			best, idx = a, i
		}
	}
	return idx
}

// Energy returns the sum of squared samples.
func Energy(x []float64) float64 {
	return floats.Dot(x, x)
}

// ChannelEnergies returns the energy of every channel of a [sample][channel]
// frame.
func ChannelEnergies(frame [][]float64) []float64 {
	chans := channels(frame)
	out := make([]float64, len(chans))
	for i, c := range chans {
		out[i] = Energy(c)
	}
	return out
}

// Channel extracts one channel of a [sample][channel] frame.
func Channel(frame [][]float64, ch int) []float64 {
	out := make([]float64, len(frame))
	for t, row := range frame {
		out[t] = row[ch]
	}
	return out
}

// RelativeDelay returns how many samples b lags behind a, searching lags in
// [-maxLag, maxLag] for the maximum cross-correlation.
func RelativeDelay(a, b []float64, maxLag int) int {
	if maxLag < 0 {
		maxLag = -maxLag
	}
	return estimateLag(b, a, maxLag)
}

// channels transposes a [sample][channel] frame into [channel][sample].
func channels(frame [][]float64) [][]float64 {
	if len(frame) == 0 {
		return nil
	}
	out := make([][]float64, len(frame[0]))
	for c := range out {
		out[c] = make([]float64, len(frame))
	}
	for t, row := range frame {
		for c := range out {
			out[c][t] = row[c]
		}
	}
	return out
}

// estimateLag returns lag such that ref[i+lag] best matches cand[i].
func estimateLag(ref []float64, cand []float64, maxLag int) int {
	if len(ref) == 0 || len(cand) == 0 {
		return 0
	}
	step := 1
	if len(ref) > 200000 || len(cand) > 200000 {
		step = 4
	}
	bestLag := 0
	best := math.Inf(-1)
	for lag := -maxLag; lag <= maxLag; lag++ {
		s := dotAtLag(ref, cand, lag, step)
		if s > best || (s == best && abs(lag) < abs(bestLag)) {
			best = s
			bestLag = lag
		}
	}
	return bestLag
}

func dotAtLag(a []float64, b []float64, lag int, step int) float64 {
	var ai, bi int
	if lag >= 0 {
		ai = lag
	} else {
		bi = -lag
	}
	n := min(len(a)-ai, len(b)-bi)
	if n <= 0 {
		return 0
	}
	if step == 1 {
		return floats.Dot(a[ai:ai+n], b[bi:bi+n])
	}
	var sum float64
	for i := 0; i < n; i += step {
		sum += a[ai+i] * b[bi+i]
	}
	return sum
}

func alignByLag(ref []float64, cand []float64, lag int) ([]float64, []float64) {
	if lag >= 0 {
		if lag >= len(ref) {
			return nil, nil
		}
		return ref[lag:], cand
	}
	o := -lag
	if o >= len(cand) {
		return nil, nil
	}
	return ref, cand[o:]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
