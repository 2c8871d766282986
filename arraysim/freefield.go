package arraysim

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/cwbudde/algo-array/directivity"
	"github.com/cwbudde/algo-array/geom"
	"github.com/cwbudde/algo-array/internal/logging"
	"github.com/cwbudde/algo-array/spectrum"
)

// FreeFieldConfig describes an arbitrary array of directional sensors in
// the free field.
type FreeFieldConfig struct {
	// DOAs are unit vectors pointing towards the sources.
	DOAs []r3.Vec
	// Mics are sensor positions in metres relative to the array origin.
	Mics []r3.Vec

	FilterLen int
	// SampleRate defaults to DefaultSampleRate when zero.
	SampleRate int

	// Orientations holds no vector (each sensor looks radially outwards),
	// a single vector shared by all sensors, or one vector per sensor.
	Orientations []r3.Vec
	// Directivity holds no pattern (omnidirectional), a single pattern
	// shared by all sensors, or one pattern per sensor.
	Directivity []directivity.Pattern
}

// freeFieldSetup is the validated and broadcast form of a FreeFieldConfig.
type freeFieldSetup struct {
	sampleRate int
	orient     []r3.Vec
	patterns   []directivity.Pattern
}

// Validate checks the config, including the broadcast of orientations and
// directivity patterns, without simulating.
func (c *FreeFieldConfig) Validate() error {
	_, err := c.resolve()
	return err
}

func (c *FreeFieldConfig) resolve() (*freeFieldSetup, error) {
	if err := geom.ValidateVectors("DOAs", c.DOAs); err != nil {
		return nil, wrapArgError("DOAs", "a non-empty set of finite unit vectors", len(c.DOAs), err)
	}
	for i, u := range c.DOAs {
		if r3.Norm(u) == 0 {
			return nil, argError("DOAs", "non-zero vectors", i)
		}
	}
	if err := geom.ValidateVectors("Mics", c.Mics); err != nil {
		return nil, wrapArgError("Mics", "a non-empty set of finite positions", len(c.Mics), err)
	}
	if err := checkFilterLen("FilterLen", c.FilterLen); err != nil {
		return nil, err
	}
	s := &freeFieldSetup{sampleRate: c.SampleRate}
	if s.sampleRate == 0 {
		s.sampleRate = DefaultSampleRate
	}
	if err := checkSampleRate(s.sampleRate); err != nil {
		return nil, err
	}

	patterns, err := directivity.Broadcast(c.Directivity, len(c.Mics))
	if err != nil {
		return nil, directivityError("nil, a single pattern or one non-nil pattern per microphone", len(c.Directivity), err)
	}
	s.patterns = patterns

	orient, err := c.broadcastOrientations()
	if err != nil {
		return nil, err
	}
	s.orient = orient
	return s, nil
}

// broadcastOrientations expands Orientations to one unit vector per
// microphone. Defaulted orientations are the radial directions of the
// sensor positions.
func (c *FreeFieldConfig) broadcastOrientations() ([]r3.Vec, error) {
	n := len(c.Mics)
	out := make([]r3.Vec, n)
	switch len(c.Orientations) {
	case 0:
		for m, pos := range c.Mics {
			if r3.Norm(pos) == 0 {
				if !omniAt(c.Directivity, m) {
					return nil, argError("Orientations", "given for a directional microphone at the origin", m)
				}
				continue
			}
			out[m] = r3.Unit(pos)
		}
		return out, nil
	case 1:
		u, err := unitOrientation(c.Orientations[0], 0)
		if err != nil {
			return nil, err
		}
		for m := range out {
			out[m] = u
		}
		return out, nil
	case n:
		for m, v := range c.Orientations {
			u, err := unitOrientation(v, m)
			if err != nil {
				return nil, err
			}
			out[m] = u
		}
		return out, nil
	default:
		return nil, argError("Orientations", "empty, a single vector or one vector per microphone", len(c.Orientations))
	}
}

func omniAt(patterns []directivity.Pattern, m int) bool {
	switch len(patterns) {
	case 0:
		return true
	case 1:
		return directivity.IsOmni(patterns[0])
	default:
		return directivity.IsOmni(patterns[m])
	}
}

func unitOrientation(v r3.Vec, i int) (r3.Vec, error) {
	norm := r3.Norm(v)
	if !(norm > 0) || math.IsInf(norm, 0) {
		return r3.Vec{}, argError("Orientations", "finite non-zero vectors", i)
	}
	return r3.Scale(1/norm, v), nil
}

// SimulateFreeField simulates a far-field plane wave arriving at each
// sensor as a pure delay weighted by the sensor directivity:
//
//	TF = B · exp(iω (DOA·Rmic)/c),  B = pattern(acos(DOA·orientation))
//
// The Nyquist bin of each response is replaced by its magnitude before the
// inverse transform.
func SimulateFreeField(cfg FreeFieldConfig) (*Response, error) {
	s, err := cfg.resolve()
	if err != nil {
		return nil, err
	}
	nMic, nDOA := len(cfg.Mics), len(cfg.DOAs)
	logging.Debug("simulating free-field array", logging.Fields{
		"mics":        nMic,
		"doas":        nDOA,
		"filter_len":  cfg.FilterLen,
		"sample_rate": s.sampleRate,
	})

	freqs := spectrum.FrequencyGrid(cfg.FilterLen, s.sampleRate)
	resp := newResponse(cfg.FilterLen, nMic, nDOA, s.sampleRate)

	gain := make([]float64, nMic)
	delay := make([]float64, nMic)
	half := make([][]complex128, len(freqs))
	for k := range half {
		half[k] = make([]complex128, nMic)
	}

	for d, u := range cfg.DOAs {
		for m := 0; m < nMic; m++ {
			cosTheta := clampUnit(r3.Dot(u, s.orient[m]))
			gain[m] = s.patterns[m].Gain(math.Acos(cosTheta))
			delay[m] = r3.Dot(u, cfg.Mics[m]) / SpeedOfSound
		}
		for k, f := range freqs {
			omega := 2 * math.Pi * f
			for m := 0; m < nMic; m++ {
				tf := complex(gain[m], 0) * cmplx.Exp(complex(0, omega*delay[m]))
				half[k][m] = tf
				resp.TF[k][m][d] = tf
			}
		}
		ir, err := spectrum.Reconstruct(half, spectrum.NyquistAbs)
		if err != nil {
			return nil, err
		}
		for t, row := range ir {
			for m, v := range row {
				resp.IR[t][m][d] = v
			}
		}
	}
	return resp, nil
}

func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
