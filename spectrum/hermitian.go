package spectrum

import (
	"errors"
	"fmt"
	"math/cmplx"
)

// Errors returned by spectrum reconstruction.
var (
	ErrEmptySpectrum      = errors.New("spectrum: spectrum is empty")
	ErrRaggedSpectrum     = errors.New("spectrum: rows have different channel counts")
	ErrUnknownNyquistMode = errors.New("spectrum: unknown nyquist mode")
)

// NyquistMode selects how the Nyquist bin is made real before mirroring.
type NyquistMode int

const (
	// NyquistReal keeps the real part of the Nyquist bin.
	NyquistReal NyquistMode = iota
	// NyquistAbs replaces the Nyquist bin by its magnitude.
	NyquistAbs
)

func (m NyquistMode) String() string {
	switch m {
	case NyquistReal:
		return "real"
	case NyquistAbs:
		return "abs"
	default:
		return fmt.Sprintf("NyquistMode(%d)", int(m))
	}
}

func (m NyquistMode) force(z complex128) complex128 {
	if m == NyquistAbs {
		return complex(cmplx.Abs(z), 0)
	}
	return complex(real(z), 0)
}

// Reconstruct converts a one-sided spectrum into centred real time signals.
//
// half is indexed [bin][channel] with bins running from DC to Nyquist
// inclusive, so N = 2*(len(half)-1) output samples are produced per channel.
// The result is indexed [sample][channel] and is fftshifted: sample N/2
// corresponds to time zero.
func Reconstruct(half [][]complex128, mode NyquistMode) ([][]float64, error) {
	channels, err := checkHalf(half, mode)
	if err != nil {
		return nil, err
	}

	n := 2 * (len(half) - 1)
	out := make([][]float64, n)
	for t := range out {
		out[t] = make([]float64, channels)
	}

	plan := newInversePlan(n)
	full := make([]complex128, n)
	sig := make([]complex128, n)
	for ch := 0; ch < channels; ch++ {
		for k := range half {
			full[k] = half[k][ch]
		}
		mirror(full, mode)
		if err := plan.inverse(sig, full); err != nil {
			return nil, err
		}
		for t, v := range sig {
			out[(t+n/2)%n][ch] = real(v)
		}
	}
	return out, nil
}

// ReconstructChannel is Reconstruct for a single channel.
func ReconstructChannel(half []complex128, mode NyquistMode) ([]float64, error) {
	if len(half) < 2 {
		return nil, ErrEmptySpectrum
	}
	if mode != NyquistReal && mode != NyquistAbs {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNyquistMode, mode)
	}
	n := 2 * (len(half) - 1)
	full := make([]complex128, n)
	copy(full, half)
	mirror(full, mode)
	sig, err := Inverse(full)
	if err != nil {
		return nil, err
	}
	re := make([]float64, n)
	for t, v := range sig {
		re[t] = real(v)
	}
	return FFTShift(re), nil
}

// mirror expects full[0..n/2] filled with the half spectrum. It forces the
// Nyquist bin and writes the conjugate negative frequencies into full[n/2+1:].
func mirror(full []complex128, mode NyquistMode) {
	n := len(full)
	nyq := n / 2
	full[nyq] = mode.force(full[nyq])
	for k := 1; k < nyq; k++ {
		full[n-k] = cmplx.Conj(full[k])
	}
}

func checkHalf(half [][]complex128, mode NyquistMode) (int, error) {
	if mode != NyquistReal && mode != NyquistAbs {
		return 0, fmt.Errorf("%w: %v", ErrUnknownNyquistMode, mode)
	}
	if len(half) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 bins, got %d", ErrEmptySpectrum, len(half))
	}
	channels := len(half[0])
	if channels == 0 {
		return 0, fmt.Errorf("%w: no channels", ErrEmptySpectrum)
	}
	for k, row := range half {
		if len(row) != channels {
			return 0, fmt.Errorf("%w: bin %d has %d channels, want %d", ErrRaggedSpectrum, k, len(row), channels)
		}
	}
	return channels, nil
}

// FFTShift rotates x so that element 0 moves to index len(x)/2.
func FFTShift(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i, v := range x {
		out[(i+n/2)%n] = v
	}
	return out
}

// IFFTShift undoes FFTShift.
func IFFTShift(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i := range out {
		out[i] = x[(i+n/2)%n]
	}
	return out
}
