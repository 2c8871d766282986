// Package render places a dry mono signal at a simulated direction by
// convolving it with the per-microphone impulse responses of an array.
package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-approx"
	dspconv "github.com/cwbudde/algo-dsp/dsp/conv"
	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"

	"github.com/cwbudde/algo-array/internal/logging"
)

const blockSize = 256

var (
	ErrEmptySignal = errors.New("render: empty dry signal")
	ErrEmptyIR     = errors.New("render: empty impulse response frame")
	ErrRaggedIR    = errors.New("render: impulse response rows have different channel counts")
	ErrSampleRate  = errors.New("render: sample rate must be positive")
)

// Config controls the rendering of one source.
type Config struct {
	// SampleRate of the impulse responses and of the output.
	SampleRate int
	GainDB     float64
	// Normalize rescales the output so its absolute peak equals this value.
	// Zero disables normalisation.
	Normalize float64
}

// DefaultConfig renders at 48 kHz with unit gain and no normalisation.
func DefaultConfig() Config {
	return Config{SampleRate: 48000}
}

// Spatialize convolves dry with every microphone channel of frame, a
// [sample][mic] impulse response as returned by arraysim.Response.DOAFrame.
// The dry signal is resampled to cfg.SampleRate first when dryRate
// differs. The result is [mic][sample] with length len(dry)+len(frame)-1.
func Spatialize(dry []float64, dryRate int, frame [][]float64, cfg Config) ([][]float64, error) {
	if len(dry) == 0 {
		return nil, ErrEmptySignal
	}
	if len(frame) == 0 || len(frame[0]) == 0 {
		return nil, ErrEmptyIR
	}
	if dryRate <= 0 || cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: dry %d, output %d", ErrSampleRate, dryRate, cfg.SampleRate)
	}

	if dryRate != cfg.SampleRate {
		r, err := dspresample.NewForRates(
			float64(dryRate),
			float64(cfg.SampleRate),
			dspresample.WithQuality(dspresample.QualityBest),
		)
		if err != nil {
			return nil, err
		}
		dry = r.Process(dry)
		logging.Debug("resampled dry signal", logging.Fields{"from": dryRate, "to": cfg.SampleRate, "samples": len(dry)})
		if len(dry) == 0 {
			return nil, ErrEmptySignal
		}
	}

	nmic := len(frame[0])
	gain := 1.0
	if cfg.GainDB != 0 {
		const ln10Over20 = 0.11512925464970229
		gain = float64(approx.FastExp(float32(cfg.GainDB * ln10Over20)))
	}

	out := make([][]float64, nmic)
	peak := 0.0
	for m := 0; m < nmic; m++ {
		ir := make([]float64, len(frame))
		for t, row := range frame {
			if len(row) != nmic {
				return nil, fmt.Errorf("%w: row %d has %d channels, want %d", ErrRaggedIR, t, len(row), nmic)
			}
			ir[t] = row[m]
		}
		ola, err := dspconv.NewOverlapAdd(ir, blockSize)
		if err != nil {
			return nil, fmt.Errorf("render: mic %d: %w", m, err)
		}
		y, err := ola.Process(dry)
		if err != nil {
			return nil, fmt.Errorf("render: mic %d: %w", m, err)
		}
		for i, v := range y {
			v = dspcore.FlushDenormals(v * gain)
			y[i] = v
			peak = math.Max(peak, math.Abs(v))
		}
		out[m] = y
	}

	if cfg.Normalize > 0 && peak > 0 {
		g := cfg.Normalize / peak
		for _, ch := range out {
			for i := range ch {
				ch[i] *= g
			}
		}
	}
	return out, nil
}

// Mix sums several [mic][sample] renders. The result has as many channels
// and samples as the largest input.
func Mix(sources ...[][]float64) [][]float64 {
	nch, n := 0, 0
	for _, s := range sources {
		nch = max(nch, len(s))
		for _, ch := range s {
			n = max(n, len(ch))
		}
	}
	if nch == 0 {
		return nil
	}
	out := make([][]float64, nch)
	for c := range out {
		out[c] = make([]float64, n)
	}
	for _, s := range sources {
		for c, ch := range s {
			for i, v := range ch {
				out[c][i] += v
			}
		}
	}
	return out
}
