// Package geom holds direction sets and array layouts.
//
// Directions use azimuth measured counter-clockwise from +x in the
// horizontal plane and elevation measured from that plane towards +z, both
// in radians.
package geom

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrEmptyDirections   = errors.New("geom: direction set is empty")
	ErrNonFinite         = errors.New("geom: non-finite coordinate")
	ErrElevationRange    = errors.New("geom: elevation outside [-pi/2, pi/2]")
	ErrInvalidLayoutSize = errors.New("geom: invalid layout size")
)

const elevationTolerance = 1e-9

// Direction is an (azimuth, elevation) pair in radians.
type Direction struct {
	Azimuth   float64
	Elevation float64
}

// Deg builds a Direction from degrees.
func Deg(azDeg, elDeg float64) Direction {
	return Direction{Azimuth: azDeg * math.Pi / 180, Elevation: elDeg * math.Pi / 180}
}

// Degrees returns azimuth and elevation in degrees.
func (d Direction) Degrees() (az, el float64) {
	return d.Azimuth * 180 / math.Pi, d.Elevation * 180 / math.Pi
}

func (d Direction) String() string {
	az, el := d.Degrees()
	return fmt.Sprintf("(az=%.2f°, el=%.2f°)", az, el)
}

// Unit returns the unit vector pointing along d.
func (d Direction) Unit() r3.Vec {
	return SphToCart(d.Azimuth, d.Elevation, 1)
}

// SphToCart converts spherical coordinates to a Cartesian vector.
func SphToCart(azimuth, elevation, radius float64) r3.Vec {
	sa, ca := math.Sincos(azimuth)
	se, ce := math.Sincos(elevation)
	return r3.Vec{X: radius * ce * ca, Y: radius * ce * sa, Z: radius * se}
}

// CartToSph converts v to a direction and its length. The zero vector maps
// to the zero direction.
func CartToSph(v r3.Vec) (Direction, float64) {
	r := r3.Norm(v)
	if r == 0 {
		return Direction{}, 0
	}
	return Direction{
		Azimuth:   math.Atan2(v.Y, v.X),
		Elevation: math.Asin(math.Max(-1, math.Min(1, v.Z/r))),
	}, r
}

// Units converts a direction set to unit vectors.
func Units(dirs []Direction) []r3.Vec {
	out := make([]r3.Vec, len(dirs))
	for i, d := range dirs {
		out[i] = d.Unit()
	}
	return out
}

// Positions places every direction at the given radius.
func Positions(dirs []Direction, radius float64) []r3.Vec {
	out := make([]r3.Vec, len(dirs))
	for i, d := range dirs {
		out[i] = SphToCart(d.Azimuth, d.Elevation, radius)
	}
	return out
}

// ValidateDirections checks that dirs is non-empty, finite and that every
// elevation lies in [-π/2, π/2]. name is used in error messages.
func ValidateDirections(name string, dirs []Direction) error {
	if len(dirs) == 0 {
		return fmt.Errorf("%s: %w", name, ErrEmptyDirections)
	}
	for i, d := range dirs {
		if !isFinite(d.Azimuth) || !isFinite(d.Elevation) {
			return fmt.Errorf("%s[%d]: %w: %v", name, i, ErrNonFinite, d)
		}
		if math.Abs(d.Elevation) > math.Pi/2+elevationTolerance {
			return fmt.Errorf("%s[%d]: %w: %g", name, i, ErrElevationRange, d.Elevation)
		}
	}
	return nil
}

// ValidateAngles checks a set of planar angles.
func ValidateAngles(name string, angles []float64) error {
	if len(angles) == 0 {
		return fmt.Errorf("%s: %w", name, ErrEmptyDirections)
	}
	for i, a := range angles {
		if !isFinite(a) {
			return fmt.Errorf("%s[%d]: %w: %g", name, i, ErrNonFinite, a)
		}
	}
	return nil
}

// ValidateVectors checks that vecs is non-empty and finite.
func ValidateVectors(name string, vecs []r3.Vec) error {
	if len(vecs) == 0 {
		return fmt.Errorf("%s: %w", name, ErrEmptyDirections)
	}
	for i, v := range vecs {
		if !isFinite(v.X) || !isFinite(v.Y) || !isFinite(v.Z) {
			return fmt.Errorf("%s[%d]: %w: %v", name, i, ErrNonFinite, v)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
