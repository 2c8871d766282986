package modal

import (
	"math"
	"math/cmplx"
)

const (
	rescaleAbove = 1e250
	rescaleBy    = 1e-250
)

// SphericalBesselJ returns j₀(x) … jₙ(x).
//
// Upward recurrence is used when x >= n; below that it loses all precision,
// so Miller's downward recurrence is run from well above n and normalised
// against the closed forms of j₀ or j₁.
func SphericalBesselJ(n int, x float64) []float64 {
	if n < 0 {
		return nil
	}
	j := make([]float64, n+1)
	if x == 0 {
		j[0] = 1
		return j
	}
	ax := math.Abs(x)
	sign := 1.0
	if x < 0 {
		sign = -1
	}

	s, c := math.Sincos(ax)
	j0 := s / ax
	j1 := s/(ax*ax) - c/ax

	if ax >= float64(n) {
		j[0] = j0
		if n > 0 {
			j[1] = j1
		}
		for k := 1; k < n; k++ {
			j[k+1] = float64(2*k+1)/ax*j[k] - j[k-1]
		}
	} else {
		millerDownward(j, ax, j0, j1)
	}

	// jₙ(−x) = (−1)ⁿ jₙ(x)
	if sign < 0 {
		for k := 1; k <= n; k += 2 {
			j[k] = -j[k]
		}
	}
	return j
}

func millerDownward(j []float64, x, j0, j1 float64) {
	n := len(j) - 1
	start := n + 16 + int(math.Sqrt(40*float64(n+int(x)+1)))
	f := make([]float64, start+2)
	f[start] = 1e-30
	for k := start; k >= 1; k-- {
		f[k-1] = float64(2*k+1)/x*f[k] - f[k+1]
		if math.Abs(f[k-1]) > rescaleAbove {
			for i := k - 1; i < len(f); i++ {
				f[i] *= rescaleBy
			}
		}
	}

	var scale float64
	if n == 0 || math.Abs(j0) >= math.Abs(j1) {
		scale = j0 / f[0]
	} else {
		scale = j1 / f[1]
	}
	for i := range j {
		j[i] = f[i] * scale
	}
}

// SphericalBesselY returns y₀(x) … yₙ(x). Upward recurrence is stable for
// the second kind. y diverges at x = 0, where every entry is -Inf.
func SphericalBesselY(n int, x float64) []float64 {
	if n < 0 {
		return nil
	}
	y := make([]float64, n+1)
	if x == 0 {
		for i := range y {
			y[i] = math.Inf(-1)
		}
		return y
	}
	s, c := math.Sincos(x)
	y[0] = -c / x
	if n == 0 {
		return y
	}
	y[1] = -c/(x*x) - s/x
	for k := 1; k < n; k++ {
		y[k+1] = float64(2*k+1)/x*y[k] - y[k-1]
	}
	return y
}

// SphericalDerivative returns f₀' … fₙ' from f₀ … fₙ₊₁ for any spherical
// Bessel family f. f must hold at least n+2 entries.
//
//	f₀' = −f₁
//	fₖ' = fₖ₋₁ − (k+1)/x · fₖ
func SphericalDerivative(f []float64, n int, x float64) []float64 {
	d := make([]float64, n+1)
	d[0] = -f[1]
	for k := 1; k <= n; k++ {
		d[k] = f[k-1] - float64(k+1)/x*f[k]
	}
	return d
}

// SphericalBesselJPrime returns j₀'(x) … jₙ'(x).
func SphericalBesselJPrime(n int, x float64) []float64 {
	if n < 0 {
		return nil
	}
	if x == 0 {
		d := make([]float64, n+1)
		if n >= 1 {
			d[1] = 1.0 / 3.0
		}
		return d
	}
	return SphericalDerivative(SphericalBesselJ(n+1, x), n, x)
}

// SphericalBesselYPrime returns y₀'(x) … yₙ'(x).
func SphericalBesselYPrime(n int, x float64) []float64 {
	if n < 0 {
		return nil
	}
	if x == 0 {
		d := make([]float64, n+1)
		for i := range d {
			d[i] = math.Inf(1)
		}
		return d
	}
	return SphericalDerivative(SphericalBesselY(n+1, x), n, x)
}

// SphericalHankel2 returns h₀⁽²⁾(x) … hₙ⁽²⁾(x) = j − i·y.
func SphericalHankel2(n int, x float64) []complex128 {
	return hankel2(SphericalBesselJ(n, x), SphericalBesselY(n, x))
}

// SphericalHankel2Prime returns the derivatives of SphericalHankel2.
func SphericalHankel2Prime(n int, x float64) []complex128 {
	return hankel2(SphericalBesselJPrime(n, x), SphericalBesselYPrime(n, x))
}

func hankel2(j, y []float64) []complex128 {
	h := make([]complex128, len(j))
	for i := range j {
		h[i] = complex(j[i], -y[i])
	}
	return h
}

// BesselJPrime returns Jₙ'(x) = (Jₙ₋₁(x) − Jₙ₊₁(x))/2.
func BesselJPrime(n int, x float64) float64 {
	return (math.Jn(n-1, x) - math.Jn(n+1, x)) / 2
}

// BesselYPrime returns Yₙ'(x) = (Yₙ₋₁(x) − Yₙ₊₁(x))/2.
func BesselYPrime(n int, x float64) float64 {
	return (math.Yn(n-1, x) - math.Yn(n+1, x)) / 2
}

// Hankel2 returns the cylindrical Hankel function Hₙ⁽²⁾(x) = Jₙ − i·Yₙ.
func Hankel2(n int, x float64) complex128 {
	return complex(math.Jn(n, x), -math.Yn(n, x))
}

// Hankel2Prime returns Hₙ⁽²⁾'(x).
func Hankel2Prime(n int, x float64) complex128 {
	return complex(BesselJPrime(n, x), -BesselYPrime(n, x))
}

func finite(z complex128) bool {
	return !cmplx.IsInf(z) && !cmplx.IsNaN(z)
}
