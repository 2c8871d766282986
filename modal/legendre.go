package modal

// Legendre returns the Legendre polynomial Pₙ(x). x is clamped to [-1, 1]
// so rounding noise in direction cosines cannot leave the domain.
func Legendre(n int, x float64) float64 {
	if n < 0 {
		return 0
	}
	p := LegendreAll(n, x)
	return p[n]
}

// LegendreAll returns P₀(x) … Pₙ(x) using Bonnet's recursion.
func LegendreAll(n int, x float64) []float64 {
	if n < 0 {
		return nil
	}
	x = clampUnit(x)
	p := make([]float64, n+1)
	p[0] = 1
	if n == 0 {
		return p
	}
	p[1] = x
	for k := 1; k < n; k++ {
		p[k+1] = (float64(2*k+1)*x*p[k] - float64(k)*p[k-1]) / float64(k+1)
	}
	return p
}

func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
