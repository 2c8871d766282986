// Package directivity models the angular sensitivity of a single sensor.
//
// A Pattern maps the angle between the sensor's look direction and the
// arrival direction, in radians within [0, π], to a real gain.
package directivity

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrCount          = errors.New("directivity: pattern count must be 0, 1 or the number of sensors")
	ErrNilPattern     = errors.New("directivity: nil pattern")
	ErrUnknownPattern = errors.New("directivity: unknown pattern")
	ErrParameter      = errors.New("directivity: invalid pattern parameter")
)

// Pattern is a sensor directivity.
type Pattern interface {
	Gain(angle float64) float64
}

// Omni has unit gain in every direction.
type Omni struct{}

func (Omni) Gain(float64) float64 { return 1 }

// FirstOrder is α + (1−α)·cos θ.
type FirstOrder struct {
	Alpha float64
}

func (p FirstOrder) Gain(angle float64) float64 {
	return p.Alpha + (1-p.Alpha)*math.Cos(angle)
}

func Cardioid() FirstOrder      { return FirstOrder{Alpha: 0.5} }
func Supercardioid() FirstOrder { return FirstOrder{Alpha: (math.Sqrt(3) - 1) / 2} }
func Hypercardioid() FirstOrder { return FirstOrder{Alpha: 0.25} }
func Figure8() FirstOrder       { return FirstOrder{Alpha: 0} }

// HigherCardioid is (½(1+cos θ))^Order.
type HigherCardioid struct {
	Order float64
}

func (p HigherCardioid) Gain(angle float64) float64 {
	return math.Pow(0.5*(1+math.Cos(angle)), p.Order)
}

// Func adapts an ordinary function to Pattern.
type Func func(angle float64) float64

func (f Func) Gain(angle float64) float64 { return f(angle) }

// IsOmni reports whether p is a constant unit gain pattern.
func IsOmni(p Pattern) bool {
	switch v := p.(type) {
	case Omni, *Omni:
		return true
	case FirstOrder:
		return v.Alpha == 1
	case HigherCardioid:
		return v.Order == 0
	}
	return false
}

// Broadcast expands patterns to exactly n entries. An empty set yields n
// omnidirectional patterns and a single pattern is shared by all sensors.
func Broadcast(patterns []Pattern, n int) ([]Pattern, error) {
	for i, p := range patterns {
		if isNil(p) {
			return nil, fmt.Errorf("%w at index %d", ErrNilPattern, i)
		}
	}
	out := make([]Pattern, n)
	switch len(patterns) {
	case 0:
		for i := range out {
			out[i] = Omni{}
		}
	case 1:
		for i := range out {
			out[i] = patterns[0]
		}
	case n:
		copy(out, patterns)
	default:
		return nil, fmt.Errorf("%w: got %d for %d sensors", ErrCount, len(patterns), n)
	}
	return out, nil
}

// isNil reports whether p cannot be evaluated: a nil interface, a nil Func
// or a nil pointer to one of the pattern types.
func isNil(p Pattern) bool {
	switch v := p.(type) {
	case nil:
		return true
	case Func:
		return v == nil
	case *Omni:
		return v == nil
	case *FirstOrder:
		return v == nil
	case *HigherCardioid:
		return v == nil
	}
	return false
}

// Parse builds a pattern from its name. param is the first-order α for
// "first-order" and the exponent for "cardioid-n"; other names ignore it.
func Parse(name string, param float64) (Pattern, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "omni":
		return Omni{}, nil
	case "cardioid":
		return Cardioid(), nil
	case "supercardioid":
		return Supercardioid(), nil
	case "hypercardioid":
		return Hypercardioid(), nil
	case "figure8", "figure-8", "dipole":
		return Figure8(), nil
	case "first-order":
		if math.IsNaN(param) || math.IsInf(param, 0) {
			return nil, fmt.Errorf("%w: alpha %g", ErrParameter, param)
		}
		return FirstOrder{Alpha: param}, nil
	case "cardioid-n":
		if !(param >= 0) || math.IsInf(param, 0) {
			return nil, fmt.Errorf("%w: order %g", ErrParameter, param)
		}
		return HigherCardioid{Order: param}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
}
