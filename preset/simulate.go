package preset

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/cwbudde/algo-array/arraysim"
	"github.com/cwbudde/algo-array/doafit"
	"github.com/cwbudde/algo-array/geom"
)

// SourceDirections returns Sources followed by the directions of DOAs.
func (p *Preset) SourceDirections() []geom.Direction {
	out := append([]geom.Direction(nil), p.Sources...)
	for _, v := range p.DOAs {
		d, _ := geom.CartToSph(v)
		out = append(out, d)
	}
	return out
}

// MicPositions returns the sensor positions in metres.
func (p *Preset) MicPositions() []r3.Vec {
	if p.Kind == FreeField && len(p.Positions) > 0 {
		return p.Positions
	}
	if p.Kind == Cylindrical {
		return geom.Positions(p.cylinderMics(), p.Radius)
	}
	return geom.Positions(p.Mics, p.Radius)
}

func (p *Preset) cylinderMics() []geom.Direction {
	if len(p.MicAngles) == 0 {
		out := make([]geom.Direction, len(p.Mics))
		for i, d := range p.Mics {
			out[i] = geom.Direction{Azimuth: d.Azimuth}
		}
		return out
	}
	out := make([]geom.Direction, len(p.MicAngles))
	for i, a := range p.MicAngles {
		out[i] = geom.Direction{Azimuth: a}
	}
	return out
}

func azimuths(dirs []geom.Direction) []float64 {
	out := make([]float64, len(dirs))
	for i, d := range dirs {
		out[i] = d.Azimuth
	}
	return out
}

func (p *Preset) SphericalConfig() arraysim.SphericalConfig {
	return arraysim.SphericalConfig{
		FilterLen:  p.FilterLen,
		Mics:       p.Mics,
		Sources:    p.SourceDirections(),
		Type:       p.Type,
		Radius:     p.Radius,
		Order:      p.Order,
		SampleRate: p.SampleRate,
		DirCoef:    p.DirCoef,
	}
}

func (p *Preset) CylindricalConfig() arraysim.CylindricalConfig {
	return arraysim.CylindricalConfig{
		FilterLen:  p.FilterLen,
		Mics:       azimuths(p.cylinderMics()),
		Sources:    azimuths(p.SourceDirections()),
		Type:       p.Type,
		Radius:     p.Radius,
		Order:      p.Order,
		SampleRate: p.SampleRate,
	}
}

func (p *Preset) FreeFieldConfig() arraysim.FreeFieldConfig {
	return arraysim.FreeFieldConfig{
		DOAs:         geom.Units(p.SourceDirections()),
		Mics:         p.MicPositions(),
		FilterLen:    p.FilterLen,
		SampleRate:   p.SampleRate,
		Orientations: p.Orientations,
		Directivity:  p.Directivity,
	}
}

// Simulate runs the simulator selected by Kind.
func (p *Preset) Simulate() (*arraysim.Response, error) {
	switch p.Kind {
	case Spherical:
		return arraysim.SimulateSpherical(p.SphericalConfig())
	case Cylindrical:
		return arraysim.SimulateCylindrical(p.CylindricalConfig())
	case FreeField:
		return arraysim.SimulateFreeField(p.FreeFieldConfig())
	}
	return nil, fmt.Errorf("%w: kind %q", ErrInvalid, p.Kind)
}

// Simulator returns a single-direction simulator for DOA fitting.
func (p *Preset) Simulator() (doafit.Simulator, error) {
	switch p.Kind {
	case Spherical:
		return doafit.Spherical{Config: p.SphericalConfig()}, nil
	case Cylindrical:
		return doafit.Cylindrical{Config: p.CylindricalConfig()}, nil
	case FreeField:
		return doafit.FreeField{Config: p.FreeFieldConfig()}, nil
	}
	return nil, fmt.Errorf("%w: kind %q", ErrInvalid, p.Kind)
}
