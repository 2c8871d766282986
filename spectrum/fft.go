package spectrum

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
	dspfft "github.com/mjibson/go-dsp/fft"

	"github.com/cwbudde/algo-array/internal/logging"
)

// inversePlan performs normalised inverse DFTs of a fixed length.
//
// algo-fft plans are used whenever the library can build one for n. Lengths it
// rejects go through go-dsp, which handles arbitrary sizes with Bluestein's
// algorithm.
type inversePlan struct {
	n    int
	plan *algofft.Plan[complex128]
}

func newInversePlan(n int) *inversePlan {
	return &inversePlan{n: n, plan: tryPlan(n)}
}

func tryPlan(n int) (plan *algofft.Plan[complex128]) {
	defer func() {
		if r := recover(); r != nil {
			logging.Debug("fft plan panicked", logging.Fields{"n": n, "panic": fmt.Sprint(r)})
			plan = nil
		}
	}()
	p, err := algofft.NewPlan64(n)
	if err != nil {
		logging.Debug("no fft plan", logging.Fields{"n": n, "error": err.Error()})
		return nil
	}
	return p
}

func (p *inversePlan) inverse(dst, src []complex128) error {
	if len(dst) != p.n || len(src) != p.n {
		return fmt.Errorf("spectrum: inverse length mismatch: plan=%d dst=%d src=%d", p.n, len(dst), len(src))
	}
	reason := "no plan"
	if p.plan != nil {
		err := p.plan.Inverse(dst, src)
		if err == nil {
			return nil
		}
		reason = err.Error()
	}
	logging.Debug("inverse fft fallback to go-dsp", logging.Fields{"n": p.n, "reason": reason})
	copy(dst, dspfft.IFFT(src))
	return nil
}

// Inverse returns the normalised inverse DFT of x (scaled by 1/len(x)).
func Inverse(x []complex128) ([]complex128, error) {
	if len(x) == 0 {
		return nil, ErrEmptySpectrum
	}
	out := make([]complex128, len(x))
	if err := newInversePlan(len(x)).inverse(out, x); err != nil {
		return nil, err
	}
	return out, nil
}
