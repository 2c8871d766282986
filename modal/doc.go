// Package modal provides the frequency dependent modal coefficients of
// spherical and cylindrical microphone arrays together with the special
// functions they are built from.
//
// Coefficient matrices are indexed [bin][order]. For a spherical array of
// radius R the coefficient of order n at wavenumber k is
//
//	open:        4π iⁿ jₙ(kR)
//	rigid:       4π iⁿ (jₙ(kR) − jₙ'(kR)/hₙ⁽²⁾'(kR) · hₙ⁽²⁾(kR))
//	directional: 4π iⁿ (α jₙ(kR) − i(1−α) jₙ'(kR))
//
// and for a cylindrical array
//
//	open:  iⁿ Jₙ(kR)
//	rigid: iⁿ (Jₙ(kR) − Jₙ'(kR)/Hₙ⁽²⁾'(kR) · Hₙ⁽²⁾(kR))
//
// Hankel functions are of the second kind, h = j − i·y.
package modal
