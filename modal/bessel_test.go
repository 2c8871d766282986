package modal

import (
	"math"
	"math/cmplx"
	"testing"
)

func closeRel(a, b, tol float64) bool {
	d := math.Abs(a - b)
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return d <= tol*scale
}

func sphJClosed(x float64) [3]float64 {
	s, c := math.Sin(x), math.Cos(x)
	return [3]float64{
		s / x,
		s/(x*x) - c/x,
		(3/(x*x*x)-1/x)*s - 3*c/(x*x),
	}
}

func TestSphericalBesselJClosedForms(t *testing.T) {
	for _, x := range []float64{0.01, 0.3, 1, 2.5, 7, 40} {
		// Order 6 forces the downward branch for small x.
		got := SphericalBesselJ(6, x)
		want := sphJClosed(x)
		for n := 0; n < 3; n++ {
			if !closeRel(got[n], want[n], 1e-9) {
				t.Fatalf("j_%d(%v) = %.15g, want %.15g", n, x, got[n], want[n])
			}
		}
	}
}

func TestSphericalBesselJBranchesAgree(t *testing.T) {
	const x = 5.0
	up := SphericalBesselJ(5, x)    // x >= n: upward recurrence
	down := SphericalBesselJ(20, x) // x < n: Miller recurrence
	for n := range up {
		if !closeRel(up[n], down[n], 1e-10) {
			t.Fatalf("order %d: upward %.15g vs downward %.15g", n, up[n], down[n])
		}
	}
}

func TestSphericalBesselJAtZero(t *testing.T) {
	j := SphericalBesselJ(4, 0)
	if j[0] != 1 {
		t.Fatalf("j_0(0) = %v, want 1", j[0])
	}
	for n := 1; n < len(j); n++ {
		if j[n] != 0 {
			t.Fatalf("j_%d(0) = %v, want 0", n, j[n])
		}
	}
	d := SphericalBesselJPrime(3, 0)
	if d[0] != 0 || math.Abs(d[1]-1.0/3.0) > 1e-15 || d[2] != 0 {
		t.Fatalf("derivatives at zero = %v", d)
	}
}

func TestSphericalBesselJSmallArgumentHighOrder(t *testing.T) {
	// jₙ(x) ≈ xⁿ/(2n+1)!! for x → 0.
	const x = 1e-3
	j := SphericalBesselJ(4, x)
	want := math.Pow(x, 4) / (1 * 3 * 5 * 7 * 9)
	if math.Abs(j[4]/want-1) > 1e-6 {
		t.Fatalf("j_4(%v) = %g, want ≈ %g", x, j[4], want)
	}
}

func TestSphericalWronskian(t *testing.T) {
	// jₙ yₙ' − jₙ' yₙ = 1/x²
	for _, x := range []float64{0.2, 1, 3.3, 12} {
		j := SphericalBesselJ(5, x)
		jp := SphericalBesselJPrime(5, x)
		y := SphericalBesselY(5, x)
		yp := SphericalBesselYPrime(5, x)
		for n := range j {
			w := j[n]*yp[n] - jp[n]*y[n]
			if !closeRel(w, 1/(x*x), 1e-8) {
				t.Fatalf("x=%v n=%d: Wronskian %.12g, want %.12g", x, n, w, 1/(x*x))
			}
		}
	}
}

func TestSphericalBesselJPrimeNumeric(t *testing.T) {
	const h = 1e-6
	for _, x := range []float64{0.4, 2, 9} {
		d := SphericalBesselJPrime(4, x)
		lo := SphericalBesselJ(4, x-h)
		hi := SphericalBesselJ(4, x+h)
		for n := range d {
			num := (hi[n] - lo[n]) / (2 * h)
			if math.Abs(num-d[n]) > 1e-7 {
				t.Fatalf("x=%v n=%d: j' = %.10g, numeric %.10g", x, n, d[n], num)
			}
		}
	}
}

func TestSphericalBesselYClosedForm(t *testing.T) {
	x := 1.7
	y := SphericalBesselY(1, x)
	want0 := -math.Cos(x) / x
	want1 := -math.Cos(x)/(x*x) - math.Sin(x)/x
	if !closeRel(y[0], want0, 1e-14) || !closeRel(y[1], want1, 1e-14) {
		t.Fatalf("y = %v, want [%v %v]", y, want0, want1)
	}
	if z := SphericalBesselY(2, 0); !math.IsInf(z[2], -1) {
		t.Fatalf("y_2(0) = %v, want -Inf", z[2])
	}
}

func TestCylindricalWronskian(t *testing.T) {
	// Jₙ Yₙ' − Jₙ' Yₙ = 2/(πx)
	for _, x := range []float64{0.3, 1.5, 8} {
		for n := 0; n < 5; n++ {
			w := math.Jn(n, x)*BesselYPrime(n, x) - BesselJPrime(n, x)*math.Yn(n, x)
			if !closeRel(w, 2/(math.Pi*x), 1e-9) {
				t.Fatalf("x=%v n=%d: Wronskian %.12g", x, n, w)
			}
		}
	}
}

func TestHankel2(t *testing.T) {
	x := 2.2
	h := Hankel2(1, x)
	if math.Abs(real(h)-math.J1(x)) > 1e-15 || math.Abs(imag(h)+math.Y1(x)) > 1e-15 {
		t.Fatalf("H_1(%v) = %v", x, h)
	}
	hs := SphericalHankel2(2, x)
	if cmplx.Abs(hs[0]-complex(math.Sin(x)/x, math.Cos(x)/x)) > 1e-14 {
		t.Fatalf("h_0(%v) = %v", x, hs[0])
	}
}

func TestLegendre(t *testing.T) {
	tests := []struct {
		n    int
		x    float64
		want float64
	}{
		{0, 0.3, 1},
		{1, 0.3, 0.3},
		{2, 0.5, -0.125},
		{3, 0.5, -0.4375},
		{4, 1, 1},
		{5, -1, -1},
		{2, 1.0000000001, 1},
		{3, -1.2, -1},
	}
	for _, tt := range tests {
		if got := Legendre(tt.n, tt.x); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("P_%d(%v) = %v, want %v", tt.n, tt.x, got, tt.want)
		}
	}
	if LegendreAll(-1, 0) != nil {
		t.Fatalf("expected nil for negative degree")
	}
}
