package doafit

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/cwbudde/algo-array/arraysim"
	"github.com/cwbudde/algo-array/geom"
)

// Simulator returns the [sample][mic] impulse response of an array for a
// single direction of arrival.
type Simulator interface {
	Simulate(d geom.Direction) ([][]float64, error)
}

// SimulatorFunc adapts a function to the Simulator interface.
type SimulatorFunc func(d geom.Direction) ([][]float64, error)

func (f SimulatorFunc) Simulate(d geom.Direction) ([][]float64, error) { return f(d) }

// FreeField simulates with Config, replacing its DOAs.
type FreeField struct {
	Config arraysim.FreeFieldConfig
}

func (s FreeField) Simulate(d geom.Direction) ([][]float64, error) {
	cfg := s.Config
	cfg.DOAs = []r3.Vec{d.Unit()}
	resp, err := arraysim.SimulateFreeField(cfg)
	if err != nil {
		return nil, err
	}
	return resp.DOAFrame(0), nil
}

// Spherical simulates with Config, replacing its Sources.
type Spherical struct {
	Config arraysim.SphericalConfig
}

func (s Spherical) Simulate(d geom.Direction) ([][]float64, error) {
	cfg := s.Config
	cfg.Sources = []geom.Direction{d}
	resp, err := arraysim.SimulateSpherical(cfg)
	if err != nil {
		return nil, err
	}
	return resp.DOAFrame(0), nil
}

// Cylindrical simulates with Config, replacing its Sources. Only the
// azimuth of d is used.
type Cylindrical struct {
	Config arraysim.CylindricalConfig
}

func (s Cylindrical) Simulate(d geom.Direction) ([][]float64, error) {
	cfg := s.Config
	cfg.Sources = []float64{d.Azimuth}
	resp, err := arraysim.SimulateCylindrical(cfg)
	if err != nil {
		return nil, err
	}
	return resp.DOAFrame(0), nil
}
