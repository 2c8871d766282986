package analysis

import (
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
	"gonum.org/v1/gonum/floats"
)

// Metrics compares a candidate multichannel response against a reference.
type Metrics struct {
	Channels      int `json:"channels"`
	AlignedFrames int `json:"aligned_frames"`
	LagSamples    int `json:"lag_samples"`

	TimeRMSE       float64 `json:"time_rmse"`
	SpectralRMSEDB float64 `json:"spectral_rmse_db"`
	Correlation    float64 `json:"correlation"`

	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
}

func worst(m Metrics) Metrics {
	m.Score = 1
	m.Similarity = 0
	return m
}

// Compare is CompareFrames for single channel signals.
func Compare(reference, candidate []float64) Metrics {
	ref := make([][]float64, len(reference))
	for i, v := range reference {
		ref[i] = []float64{v}
	}
	cand := make([][]float64, len(candidate))
	for i, v := range candidate {
		cand[i] = []float64{v}
	}
	return CompareFrames(ref, cand)
}

// CompareFrames returns distance metrics between two [sample][channel]
// responses and a combined score in [0,1] where 0 is identical.
//
// Both responses are normalised to unit total energy, so the score ignores
// overall gain. A single lag, estimated on the channel sums, aligns the two
// before comparison; delays between channels are preserved. Responses with
// different channel counts get the worst score.
func CompareFrames(reference, candidate [][]float64) Metrics {
	var m Metrics
	if len(reference) == 0 || len(candidate) == 0 {
		return worst(m)
	}
	nch := len(reference[0])
	if nch == 0 || len(candidate[0]) != nch {
		return worst(m)
	}
	m.Channels = nch

	ref := channels(reference)
	cand := channels(candidate)

	maxLag := min(len(reference), len(candidate)) / 4
	lag := estimateLag(sumChannels(ref), sumChannels(cand), maxLag)
	m.LagSamples = lag

	n := -1
	for c := range ref {
		ref[c], cand[c] = alignByLag(ref[c], cand[c], lag)
		if l := min(len(ref[c]), len(cand[c])); n < 0 || l < n {
			n = l
		}
	}
	if n < 8 {
		return worst(m)
	}
	for c := range ref {
		ref[c] = ref[c][:n]
		cand[c] = cand[c][:n]
	}
	m.AlignedFrames = n

	if !normalizeEnergy(ref) || !normalizeEnergy(cand) {
		return worst(m)
	}

	var sq float64
	for c := range ref {
		m.Correlation += floats.Dot(ref[c], cand[c])
		sq += squaredDistance(ref[c], cand[c])
	}
	m.TimeRMSE = math.Sqrt(sq / float64(n*nch))

	var spec float64
	for c := range ref {
		spec += spectralRMSEDB(ref[c], cand[c])
	}
	m.SpectralRMSEDB = spec / float64(nch)

	corrNorm := clamp01((1 - m.Correlation) / 2)
	specNorm := clamp01(m.SpectralRMSEDB / 30.0)
	m.Score = clamp01(0.7*corrNorm + 0.3*specNorm)
	m.Similarity = clamp01(math.Exp(-4.0 * m.Score))
	return m
}

func sumChannels(chans [][]float64) []float64 {
	if len(chans) == 0 {
		return nil
	}
	out := make([]float64, len(chans[0]))
	for _, c := range chans {
		floats.Add(out, c[:len(out)])
	}
	return out
}

// normalizeEnergy scales every channel (in a copy) so the total energy is
// one. It reports false for silent input.
func normalizeEnergy(chans [][]float64) bool {
	var e float64
	for _, c := range chans {
		e += Energy(c)
	}
	if e <= 1e-24 {
		return false
	}
	g := 1 / math.Sqrt(e)
	for i, c := range chans {
		scaled := append([]float64(nil), c...)
		floats.Scale(g, scaled)
		chans[i] = scaled
	}
	return true
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// spectralRMSEDB compares magnitude spectra in dB. Bins more than 60 dB below
// the reference peak are floored so that numerical noise does not dominate.
func spectralRMSEDB(a []float64, b []float64) float64 {
	n := min(len(a), len(b))
	size := 8
	for size < n {
		size <<= 1
	}
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return 0
	}
	bufA := make([]complex128, size)
	bufB := make([]complex128, size)
	for i := 0; i < n; i++ {
		bufA[i] = complex(a[i], 0)
		bufB[i] = complex(b[i], 0)
	}
	specA := make([]complex128, size)
	specB := make([]complex128, size)
	if err := plan.Forward(specA, bufA); err != nil {
		return 0
	}
	if err := plan.Forward(specB, bufB); err != nil {
		return 0
	}

	bins := size / 2
	magA := make([]float64, bins)
	magB := make([]float64, bins)
	for k := 1; k < bins; k++ {
		magA[k] = cmplx.Abs(specA[k])
		magB[k] = cmplx.Abs(specB[k])
	}
	floor := math.Max(floats.Max(magA)*1e-3, 1e-12)

	var sum float64
	for k := 1; k < bins; k++ {
		d := linToDB(math.Max(magA[k], floor)) - linToDB(math.Max(magB[k], floor))
		sum += d * d
	}
	return math.Sqrt(sum / float64(bins-1))
}

func linToDB(x float64) float64 {
	if x < 1e-12 {
		x = 1e-12
	}
	return 20.0 * math.Log10(x)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
