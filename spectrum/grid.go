package spectrum

// FrequencyGrid returns the filterLen/2+1 bin frequencies in Hz from DC to
// Nyquist, spaced sampleRate/filterLen apart.
func FrequencyGrid(filterLen, sampleRate int) []float64 {
	if filterLen <= 0 || sampleRate <= 0 {
		return nil
	}
	bins := filterLen/2 + 1
	df := float64(sampleRate) / float64(filterLen)
	f := make([]float64, bins)
	for k := range f {
		f[k] = float64(k) * df
	}
	return f
}

// HalfLen returns the number of non-negative frequency bins of an n-point DFT.
func HalfLen(n int) int {
	return n/2 + 1
}
