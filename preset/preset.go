// Package preset loads array simulation setups from JSON files.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/cwbudde/algo-array/arraysim"
	"github.com/cwbudde/algo-array/directivity"
	"github.com/cwbudde/algo-array/geom"
	"github.com/cwbudde/algo-array/modal"
)

// Kind selects the simulator.
type Kind string

const (
	Spherical   Kind = "spherical"
	Cylindrical Kind = "cylindrical"
	FreeField   Kind = "free-field"
)

var ErrInvalid = errors.New("preset: invalid value")

// File is the JSON schema for array presets. Angles are in degrees,
// positions in metres. Unset fields keep the value of the destination.
type File struct {
	Kind       string   `json:"kind"`
	FilterLen  *int     `json:"filter_len"`
	SampleRate *int     `json:"sample_rate"`
	Radius     *float64 `json:"radius"`
	Order      *int     `json:"order"`
	ArrayType  string   `json:"array_type"`
	DirCoef    *float64 `json:"dir_coef"`

	// Mics holds [azimuth, elevation] pairs, MicAngles cylindrical azimuths.
	Mics      [][2]float64 `json:"mics"`
	MicAngles []float64    `json:"mic_angles"`
	Layout    string       `json:"layout"`

	Sources [][2]float64 `json:"sources"`
	// DOAs are free-field arrival vectors, added to Sources.
	DOAs [][3]float64 `json:"doas"`

	Positions    [][3]float64     `json:"positions"`
	Orientations [][3]float64     `json:"orientations"`
	Directivity  []PatternSetting `json:"directivity"`
}

type PatternSetting struct {
	Pattern string  `json:"pattern"`
	Param   float64 `json:"param"`
}

// Preset is a resolved setup. Angles are in radians.
type Preset struct {
	Kind       Kind
	FilterLen  int
	SampleRate int
	Radius     float64
	Order      int
	Type       modal.ArrayType
	DirCoef    *float64

	Mics      []geom.Direction
	MicAngles []float64
	Sources   []geom.Direction
	DOAs      []r3.Vec

	// Positions overrides Mics scaled by Radius for free-field presets.
	Positions    []r3.Vec
	Orientations []r3.Vec
	Directivity  []directivity.Pattern
}

// Default is a rigid spherical tetrahedral array with one frontal source.
func Default() *Preset {
	return &Preset{
		Kind:       Spherical,
		FilterLen:  256,
		SampleRate: arraysim.DefaultSampleRate,
		Radius:     0.042,
		Order:      8,
		Type:       modal.Rigid,
		Mics:       geom.Tetrahedron(),
		Sources:    []geom.Direction{{}},
	}
}

// LoadJSON loads a preset JSON file and applies it on top of Default.
func LoadJSON(path string) (*Preset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	p := Default()
	if err := Apply(p, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Apply applies a parsed preset file onto an existing preset.
func Apply(dst *Preset, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination preset")
	}
	if f == nil {
		return nil
	}

	if f.Kind != "" {
		switch k := Kind(strings.ToLower(strings.TrimSpace(f.Kind))); k {
		case Spherical, Cylindrical, FreeField:
			dst.Kind = k
		default:
			return fmt.Errorf("%w: kind %q", ErrInvalid, f.Kind)
		}
	}
	if f.FilterLen != nil {
		if *f.FilterLen <= 0 || *f.FilterLen%2 != 0 {
			return fmt.Errorf("%w: filter_len must be a positive even integer", ErrInvalid)
		}
		dst.FilterLen = *f.FilterLen
	}
	if f.SampleRate != nil {
		if *f.SampleRate <= 0 {
			return fmt.Errorf("%w: sample_rate must be > 0", ErrInvalid)
		}
		dst.SampleRate = *f.SampleRate
	}
	if f.Radius != nil {
		if *f.Radius <= 0 {
			return fmt.Errorf("%w: radius must be > 0", ErrInvalid)
		}
		dst.Radius = *f.Radius
	}
	if f.Order != nil {
		if *f.Order < 0 {
			return fmt.Errorf("%w: order must be >= 0", ErrInvalid)
		}
		dst.Order = *f.Order
	}
	if f.ArrayType != "" {
		t, err := modal.ParseArrayType(f.ArrayType)
		if err != nil {
			return err
		}
		dst.Type = t
	}
	if f.DirCoef != nil {
		if *f.DirCoef < 0 || *f.DirCoef > 1 {
			return fmt.Errorf("%w: dir_coef must be in [0,1]", ErrInvalid)
		}
		a := *f.DirCoef
		dst.DirCoef = &a
	}

	if f.Layout != "" {
		dirs, angles, err := ParseLayout(f.Layout)
		if err != nil {
			return err
		}
		dst.Mics = dirs
		dst.MicAngles = angles
	}
	if len(f.Mics) > 0 {
		dst.Mics = degrees(f.Mics)
	}
	if len(f.MicAngles) > 0 {
		dst.MicAngles = make([]float64, len(f.MicAngles))
		for i, a := range f.MicAngles {
			dst.MicAngles[i] = a * math.Pi / 180
		}
	}

	if len(f.Sources) > 0 {
		dst.Sources = degrees(f.Sources)
	}
	if len(f.DOAs) > 0 {
		dst.DOAs = vectors(f.DOAs)
		// DOAs alone replace the default source instead of adding to it.
		if len(f.Sources) == 0 {
			dst.Sources = nil
		}
	}
	if len(f.Positions) > 0 {
		dst.Positions = vectors(f.Positions)
	}
	if len(f.Orientations) > 0 {
		dst.Orientations = vectors(f.Orientations)
	}
	if len(f.Directivity) > 0 {
		dst.Directivity = make([]directivity.Pattern, len(f.Directivity))
		for i, s := range f.Directivity {
			p, err := directivity.Parse(s.Pattern, s.Param)
			if err != nil {
				return fmt.Errorf("directivity[%d]: %w", i, err)
			}
			dst.Directivity[i] = p
		}
	}
	return nil
}

func degrees(pairs [][2]float64) []geom.Direction {
	out := make([]geom.Direction, len(pairs))
	for i, p := range pairs {
		out[i] = geom.Deg(p[0], p[1])
	}
	return out
}

func vectors(v [][3]float64) []r3.Vec {
	out := make([]r3.Vec, len(v))
	for i, p := range v {
		out[i] = r3.Vec{X: p[0], Y: p[1], Z: p[2]}
	}
	return out
}
