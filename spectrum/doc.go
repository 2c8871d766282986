// Package spectrum turns one-sided complex spectra into real impulse responses.
//
// A real signal of even length N has a DFT whose bins k and N-k are complex
// conjugates and whose DC and Nyquist bins are real. Reconstruct takes the
// non-negative half of such a spectrum (DC through Nyquist, N/2+1 bins),
// enforces a real Nyquist bin, mirrors the conjugate negative frequencies,
// inverse transforms and circularly shifts the result so that time zero lands
// in the middle of the output buffer.
//
// Two Nyquist policies exist because the callers model different things:
// modal array coefficients keep the real part of the Nyquist bin, while the
// delay-only free-field model keeps its magnitude.
package spectrum
