package modal

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func TestSphericalOpenOrderZero(t *testing.T) {
	kR := []float64{0, 0.5, 2}
	b, err := SphericalCoefficients(0, kR, Open, 0)
	if err != nil {
		t.Fatalf("SphericalCoefficients: %v", err)
	}
	if len(b) != 3 || len(b[0]) != 1 {
		t.Fatalf("shape = %dx%d", len(b), len(b[0]))
	}
	for i, x := range kR {
		want := 4 * math.Pi
		if x != 0 {
			want *= math.Sin(x) / x
		}
		if cmplx.Abs(b[i][0]-complex(want, 0)) > 1e-12 {
			t.Fatalf("bin %d: %v, want %v", i, b[i][0], want)
		}
	}
}

func TestSphericalRigidMatchesWronskianForm(t *testing.T) {
	// j − j'h/h' = (j h' − j' h)/h' = −i/(x² h')
	const order = 4
	kR := []float64{0.05, 0.7, 3, 11}
	b, err := SphericalCoefficients(order, kR, Rigid, 0)
	if err != nil {
		t.Fatalf("SphericalCoefficients: %v", err)
	}
	for i, x := range kR {
		hp := SphericalHankel2Prime(order, x)
		for n := 0; n <= order; n++ {
			want := 4 * math.Pi * iPow(n) * (-1i) / (complex(x*x, 0) * hp[n])
			if cmplx.Abs(b[i][n]-want) > 1e-7*math.Max(1, cmplx.Abs(want)) {
				t.Fatalf("kR=%v n=%d: %v, want %v", x, n, b[i][n], want)
			}
		}
	}
}

func TestSphericalRigidAtZero(t *testing.T) {
	b, err := SphericalCoefficients(3, []float64{0}, Rigid, 0)
	if err != nil {
		t.Fatalf("SphericalCoefficients: %v", err)
	}
	if b[0][0] != complex(4*math.Pi, 0) {
		t.Fatalf("b_0(0) = %v", b[0][0])
	}
	for n := 1; n <= 3; n++ {
		if b[0][n] != 0 {
			t.Fatalf("b_%d(0) = %v, want 0", n, b[0][n])
		}
	}
}

func TestSphericalRigidTinyArgumentIsFinite(t *testing.T) {
	b, err := SphericalCoefficients(12, []float64{1e-4}, Rigid, 0)
	if err != nil {
		t.Fatalf("SphericalCoefficients: %v", err)
	}
	for n, v := range b[0] {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			t.Fatalf("order %d not finite: %v", n, v)
		}
	}
}

func TestSphericalDirectional(t *testing.T) {
	kR := []float64{0.4, 1.9}
	open, err := SphericalCoefficients(3, kR, Open, 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	omni, err := SphericalCoefficients(3, kR, Directional, 1)
	if err != nil {
		t.Fatalf("directional: %v", err)
	}
	for i := range kR {
		for n := range open[i] {
			if cmplx.Abs(open[i][n]-omni[i][n]) > 1e-12 {
				t.Fatalf("alpha=1 should equal open: bin %d n %d: %v vs %v", i, n, omni[i][n], open[i][n])
			}
		}
	}

	card, err := SphericalCoefficients(1, []float64{1.2}, Directional, 0.5)
	if err != nil {
		t.Fatalf("cardioid: %v", err)
	}
	j := SphericalBesselJ(1, 1.2)
	jp := SphericalBesselJPrime(1, 1.2)
	want := 4 * math.Pi * 1i * complex(0.5*j[1], -0.5*jp[1])
	if cmplx.Abs(card[0][1]-want) > 1e-12 {
		t.Fatalf("cardioid n=1: %v, want %v", card[0][1], want)
	}
}

func TestCylindricalCoefficients(t *testing.T) {
	kR := []float64{0, 0.9, 4}
	open, err := CylindricalCoefficients(3, kR, Open)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for i, x := range kR {
		for n := 0; n <= 3; n++ {
			want := iPow(n) * complex(math.Jn(n, x), 0)
			if cmplx.Abs(open[i][n]-want) > 1e-14 {
				t.Fatalf("open kR=%v n=%d: %v want %v", x, n, open[i][n], want)
			}
		}
	}

	rigid, err := CylindricalCoefficients(3, kR, Rigid)
	if err != nil {
		t.Fatalf("rigid: %v", err)
	}
	if rigid[0][0] != 1 || rigid[0][1] != 0 || rigid[0][3] != 0 {
		t.Fatalf("rigid at kR=0 = %v", rigid[0])
	}
	// J − J'H/H' = −2i/(πx H')
	for i := 1; i < len(kR); i++ {
		x := kR[i]
		for n := 0; n <= 3; n++ {
			want := iPow(n) * complex(0, -2/(math.Pi*x)) / Hankel2Prime(n, x)
			if cmplx.Abs(rigid[i][n]-want) > 1e-9 {
				t.Fatalf("rigid kR=%v n=%d: %v want %v", x, n, rigid[i][n], want)
			}
		}
	}
}

func TestCoefficientErrors(t *testing.T) {
	if _, err := SphericalCoefficients(-1, []float64{1}, Open, 0); !errors.Is(err, ErrNegativeOrder) {
		t.Fatalf("negative order: %v", err)
	}
	if _, err := SphericalCoefficients(2, []float64{1}, ArrayType(9), 0); !errors.Is(err, ErrUnknownArrayType) {
		t.Fatalf("unknown type: %v", err)
	}
	if _, err := CylindricalCoefficients(2, []float64{1}, Directional); !errors.Is(err, ErrUnsupportedArrayType) {
		t.Fatalf("directional cylinder: %v", err)
	}
	if _, err := CylindricalCoefficients(-3, []float64{1}, Rigid); !errors.Is(err, ErrNegativeOrder) {
		t.Fatalf("negative cylinder order: %v", err)
	}
}

func TestParseArrayType(t *testing.T) {
	for _, s := range []string{"open", "Rigid", " DIRECTIONAL "} {
		at, err := ParseArrayType(s)
		if err != nil {
			t.Fatalf("ParseArrayType(%q): %v", s, err)
		}
		var back ArrayType
		txt, _ := at.MarshalText()
		if err := back.UnmarshalText(txt); err != nil || back != at {
			t.Fatalf("text round trip of %v = %v, %v", at, back, err)
		}
	}
	if _, err := ParseArrayType("baffled"); !errors.Is(err, ErrUnknownArrayType) {
		t.Fatalf("expected ErrUnknownArrayType, got %v", err)
	}
	if s := ArrayType(7).String(); s != "ArrayType(7)" {
		t.Fatalf("String() = %q", s)
	}
}
