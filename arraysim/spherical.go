package arraysim

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/cwbudde/algo-array/geom"
	"github.com/cwbudde/algo-array/internal/logging"
	"github.com/cwbudde/algo-array/modal"
)

// SphericalConfig describes a spherical array and the directions to simulate.
type SphericalConfig struct {
	FilterLen int
	Mics      []geom.Direction
	Sources   []geom.Direction
	Type      modal.ArrayType
	Radius    float64
	Order     int

	SampleRate int

	// DirCoef is the first-order directivity α of the sensors. Required
	// for modal.Directional, ignored otherwise.
	DirCoef *float64
}

// Validate reports the first invalid field as an *ArgumentError.
func (c *SphericalConfig) Validate() error {
	if err := checkFilterLen("FilterLen", c.FilterLen); err != nil {
		return err
	}
	if err := geom.ValidateDirections("Mics", c.Mics); err != nil {
		return wrapArgError("Mics", "a non-empty set of (azimuth, elevation) directions", len(c.Mics), err)
	}
	if err := geom.ValidateDirections("Sources", c.Sources); err != nil {
		return wrapArgError("Sources", "a non-empty set of (azimuth, elevation) directions", len(c.Sources), err)
	}
	if !c.Type.Valid() {
		return argError("Type", "open, rigid or directional", c.Type)
	}
	if err := checkRadius(c.Radius); err != nil {
		return err
	}
	if err := checkOrder(c.Order); err != nil {
		return err
	}
	if err := checkSampleRate(c.SampleRate); err != nil {
		return err
	}
	if c.Type == modal.Directional {
		if c.DirCoef == nil {
			return argError("DirCoef", "set for directional arrays", "nil")
		}
		if math.IsNaN(*c.DirCoef) || math.IsInf(*c.DirCoef, 0) {
			return argError("DirCoef", "a finite number", *c.DirCoef)
		}
	}
	return nil
}

func (c *SphericalConfig) dirCoef() float64 {
	if c.DirCoef == nil {
		return 0
	}
	return *c.DirCoef
}

// SimulateSpherical simulates a spherical array.
func SimulateSpherical(cfg SphericalConfig) (*Response, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.Debug("simulating spherical array", logging.Fields{
		"type":       cfg.Type.String(),
		"mics":       len(cfg.Mics),
		"doas":       len(cfg.Sources),
		"order":      cfg.Order,
		"filter_len": cfg.FilterLen,
	})

	kR := wavenumbers(cfg.FilterLen, cfg.SampleRate, cfg.Radius)
	b, err := modal.SphericalCoefficients(cfg.Order, kR, cfg.Type, cfg.dirCoef())
	if err != nil {
		return nil, err
	}
	rf, err := newRadialFilters(b)
	if err != nil {
		return nil, err
	}

	resp := newResponse(cfg.FilterLen, len(cfg.Mics), len(cfg.Sources), cfg.SampleRate)
	mics := geom.Units(cfg.Mics)
	w := mat.NewDense(cfg.Order+1, len(mics), nil)
	for d, src := range cfg.Sources {
		u := src.Unit()
		for m, um := range mics {
			p := modal.LegendreAll(cfg.Order, r3.Dot(um, u))
			for n, v := range p {
				w.Set(n, m, float64(2*n+1)/(4*math.Pi)*v)
			}
		}
		rf.project(resp, d, w)
	}
	return resp, nil
}
