package modal

import (
	"fmt"
	"math"
)

// iPow returns iⁿ for n >= 0.
func iPow(n int) complex128 {
	switch n % 4 {
	case 0:
		return 1
	case 1:
		return 1i
	case 2:
		return -1
	default:
		return -1i
	}
}

// SphericalCoefficients returns the modal coefficients of a spherical array
// for orders 0..order at each kR value. The result is indexed [bin][n].
// dirCoef is the first-order directivity α and is only read for
// Directional arrays.
func SphericalCoefficients(order int, kR []float64, t ArrayType, dirCoef float64) ([][]complex128, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeOrder, order)
	}
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownArrayType, int(t))
	}

	b := make([][]complex128, len(kR))
	for bin, x := range kR {
		row := make([]complex128, order+1)
		j := SphericalBesselJ(order, x)
		switch t {
		case Open:
			for n := range row {
				row[n] = 4 * math.Pi * iPow(n) * complex(j[n], 0)
			}
		case Rigid:
			if x == 0 {
				row[0] = 4 * math.Pi
				break
			}
			jp := SphericalBesselJPrime(order, x)
			h := SphericalHankel2(order, x)
			hp := SphericalHankel2Prime(order, x)
			for n := range row {
				ratio := h[n] / hp[n]
				if !finite(ratio) {
					// hₙ/hₙ' → yₙ/yₙ' → −x/(n+1) as x → 0
					ratio = complex(-x/float64(n+1), 0)
				}
				row[n] = 4 * math.Pi * iPow(n) * (complex(j[n], 0) - complex(jp[n], 0)*ratio)
			}
		case Directional:
			jp := SphericalBesselJPrime(order, x)
			for n := range row {
				row[n] = 4 * math.Pi * iPow(n) * complex(dirCoef*j[n], -(1-dirCoef)*jp[n])
			}
		}
		b[bin] = row
	}
	return b, nil
}

// CylindricalCoefficients returns the modal coefficients of a circular
// array for orders 0..order at each kR value, indexed [bin][n].
// Directional cylindrical arrays are not modelled.
func CylindricalCoefficients(order int, kR []float64, t ArrayType) ([][]complex128, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeOrder, order)
	}
	switch t {
	case Open, Rigid:
	case Directional:
		return nil, fmt.Errorf("%w: %v cylindrical array", ErrUnsupportedArrayType, t)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownArrayType, int(t))
	}

	b := make([][]complex128, len(kR))
	for bin, x := range kR {
		row := make([]complex128, order+1)
		if t == Rigid && x == 0 {
			row[0] = 1
			b[bin] = row
			continue
		}
		for n := range row {
			jn := complex(math.Jn(n, x), 0)
			if t == Open {
				row[n] = iPow(n) * jn
				continue
			}
			ratio := Hankel2(n, x) / Hankel2Prime(n, x)
			if !finite(ratio) {
				ratio = smallArgHankelRatio(n, x)
			}
			row[n] = iPow(n) * (jn - complex(BesselJPrime(n, x), 0)*ratio)
		}
		b[bin] = row
	}
	return b, nil
}

// smallArgHankelRatio approximates Hₙ⁽²⁾/Hₙ⁽²⁾' for x → 0 where Yₙ
// overflows. It is Yₙ/Yₙ' to leading order.
func smallArgHankelRatio(n int, x float64) complex128 {
	if n == 0 {
		return complex(x*math.Log(x/2), 0)
	}
	return complex(-x/float64(n), 0)
}
