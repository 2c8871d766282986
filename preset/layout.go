package preset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-array/geom"
)

// ParseLayout resolves a named microphone layout: "tetrahedron",
// "octahedron", "fibonacci:N" or "ring:N". Ring layouts also return their
// azimuths for cylindrical arrays.
func ParseLayout(s string) ([]geom.Direction, []float64, error) {
	name, arg, hasArg := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")
	n := 0
	if hasArg {
		v, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: layout %q", ErrInvalid, s)
		}
		n = v
	}

	switch name {
	case "tetrahedron":
		return geom.Tetrahedron(), nil, nil
	case "octahedron":
		return geom.Octahedron(), nil, nil
	case "fibonacci":
		dirs, err := geom.FibonacciSphere(n)
		return dirs, nil, err
	case "ring":
		angles, err := geom.Ring(n, 0)
		if err != nil {
			return nil, nil, err
		}
		dirs, err := geom.RingDirections(n)
		return dirs, angles, err
	}
	return nil, nil, fmt.Errorf("%w: layout %q", ErrInvalid, s)
}
