package arraysim

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-array/spectrum"
)

// wavenumbers returns kR on the FFT frequency grid.
func wavenumbers(filterLen, sampleRate int, radius float64) []float64 {
	f := spectrum.FrequencyGrid(filterLen, sampleRate)
	kR := make([]float64, len(f))
	for i, v := range f {
		kR[i] = 2 * math.Pi * v * radius / SpeedOfSound
	}
	return kR
}

// radialFilters holds the modal coefficients b[bin][n] in both domains as
// dense matrices ready to be combined with an angular weight matrix.
type radialFilters struct {
	bt  *mat.Dense // FilterLen x (order+1), time domain
	bRe *mat.Dense // bins x (order+1)
	bIm *mat.Dense
}

func newRadialFilters(b [][]complex128) (*radialFilters, error) {
	bt, err := spectrum.Reconstruct(b, spectrum.NyquistReal)
	if err != nil {
		return nil, err
	}
	bins, orders := len(b), len(b[0])
	rf := &radialFilters{
		bt:  mat.NewDense(len(bt), orders, nil),
		bRe: mat.NewDense(bins, orders, nil),
		bIm: mat.NewDense(bins, orders, nil),
	}
	for t, row := range bt {
		rf.bt.SetRow(t, row)
	}
	for k, row := range b {
		for n, v := range row {
			rf.bRe.Set(k, n, real(v))
			rf.bIm.Set(k, n, imag(v))
		}
	}
	return rf, nil
}

// project combines the radial filters with w, an (order+1) x mics angular
// weight matrix, and stores the result as direction doa of resp.
func (rf *radialFilters) project(resp *Response, doa int, w *mat.Dense) {
	var ir, re, im mat.Dense
	ir.Mul(rf.bt, w)
	re.Mul(rf.bRe, w)
	im.Mul(rf.bIm, w)

	samples, mics := ir.Dims()
	for t := 0; t < samples; t++ {
		for m := 0; m < mics; m++ {
			resp.IR[t][m][doa] = ir.At(t, m)
		}
	}
	bins, _ := re.Dims()
	for k := 0; k < bins; k++ {
		for m := 0; m < mics; m++ {
			resp.TF[k][m][doa] = complex(re.At(k, m), im.At(k, m))
		}
	}
}

func checkRadius(r float64) error {
	if !(r > 0) || math.IsInf(r, 0) {
		return argError("Radius", "a positive finite number of metres", r)
	}
	return nil
}

func checkOrder(n int) error {
	if n < 0 {
		return argError("Order", "a non-negative integer", n)
	}
	return nil
}

func checkSampleRate(fs int) error {
	if fs <= 0 {
		return argError("SampleRate", "a positive integer", fs)
	}
	return nil
}
