package geom

import (
	"fmt"
	"math"
)

// Ring returns n equally spaced angles starting at offset.
func Ring(n int, offset float64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: ring of %d", ErrInvalidLayoutSize, n)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = offset + 2*math.Pi*float64(i)/float64(n)
	}
	return out, nil
}

// RingDirections returns n equally spaced directions on the horizontal plane.
func RingDirections(n int) ([]Direction, error) {
	angles, err := Ring(n, 0)
	if err != nil {
		return nil, err
	}
	out := make([]Direction, n)
	for i, a := range angles {
		out[i] = Direction{Azimuth: a}
	}
	return out, nil
}

// Tetrahedron returns the capsule directions of a first-order
// tetrahedral microphone (FLU, FRD, BLD, BRU).
func Tetrahedron() []Direction {
	el := math.Asin(1 / math.Sqrt(3))
	return []Direction{
		{Azimuth: math.Pi / 4, Elevation: el},
		{Azimuth: -math.Pi / 4, Elevation: -el},
		{Azimuth: 3 * math.Pi / 4, Elevation: -el},
		{Azimuth: -3 * math.Pi / 4, Elevation: el},
	}
}

// Octahedron returns the six axis directions.
func Octahedron() []Direction {
	return []Direction{
		{Azimuth: 0},
		{Azimuth: math.Pi / 2},
		{Azimuth: math.Pi},
		{Azimuth: -math.Pi / 2},
		{Elevation: math.Pi / 2},
		{Elevation: -math.Pi / 2},
	}
}

// FibonacciSphere returns n nearly uniform directions on the sphere.
func FibonacciSphere(n int) ([]Direction, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: fibonacci sphere of %d", ErrInvalidLayoutSize, n)
	}
	golden := math.Pi * (3 - math.Sqrt(5))
	out := make([]Direction, n)
	for i := range out {
		z := 1 - (2*float64(i)+1)/float64(n)
		az := math.Remainder(golden*float64(i), 2*math.Pi)
		out[i] = Direction{Azimuth: az, Elevation: math.Asin(z)}
	}
	return out, nil
}
