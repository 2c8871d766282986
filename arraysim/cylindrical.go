package arraysim

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-array/geom"
	"github.com/cwbudde/algo-array/internal/logging"
	"github.com/cwbudde/algo-array/modal"
)

// CylindricalConfig describes a circular array. Mics and Sources are
// azimuth angles in radians.
type CylindricalConfig struct {
	FilterLen int
	Mics      []float64
	Sources   []float64
	Type      modal.ArrayType
	Radius    float64
	Order     int

	SampleRate int
}

// Validate reports the first invalid field as an *ArgumentError.
func (c *CylindricalConfig) Validate() error {
	if err := checkFilterLen("FilterLen", c.FilterLen); err != nil {
		return err
	}
	if err := geom.ValidateAngles("Mics", c.Mics); err != nil {
		return wrapArgError("Mics", "a non-empty set of finite angles", len(c.Mics), err)
	}
	if err := geom.ValidateAngles("Sources", c.Sources); err != nil {
		return wrapArgError("Sources", "a non-empty set of finite angles", len(c.Sources), err)
	}
	if c.Type != modal.Open && c.Type != modal.Rigid {
		return argError("Type", "open or rigid", c.Type)
	}
	if err := checkRadius(c.Radius); err != nil {
		return err
	}
	if err := checkOrder(c.Order); err != nil {
		return err
	}
	return checkSampleRate(c.SampleRate)
}

// SimulateCylindrical simulates a circular array using the Jacobi-Anger
// expansion: weight 1 for order 0 and 2·cos(n·Δθ) above.
func SimulateCylindrical(cfg CylindricalConfig) (*Response, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.Debug("simulating cylindrical array", logging.Fields{
		"type":       cfg.Type.String(),
		"mics":       len(cfg.Mics),
		"doas":       len(cfg.Sources),
		"order":      cfg.Order,
		"filter_len": cfg.FilterLen,
	})

	kR := wavenumbers(cfg.FilterLen, cfg.SampleRate, cfg.Radius)
	b, err := modal.CylindricalCoefficients(cfg.Order, kR, cfg.Type)
	if err != nil {
		return nil, err
	}
	rf, err := newRadialFilters(b)
	if err != nil {
		return nil, err
	}

	resp := newResponse(cfg.FilterLen, len(cfg.Mics), len(cfg.Sources), cfg.SampleRate)
	w := mat.NewDense(cfg.Order+1, len(cfg.Mics), nil)
	for d, src := range cfg.Sources {
		for m, mic := range cfg.Mics {
			w.Set(0, m, 1)
			for n := 1; n <= cfg.Order; n++ {
				w.Set(n, m, 2*math.Cos(float64(n)*(mic-src)))
			}
		}
		rf.project(resp, d, w)
	}
	return resp, nil
}
