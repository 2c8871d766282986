// Package arraysim simulates impulse responses and transfer functions of
// microphone arrays for a set of plane-wave directions of arrival.
//
// Three geometries are supported:
//
//   - SimulateSpherical: sensors on a sphere, modelled with a spherical
//     harmonic (zonal) expansion of open, rigid or directional arrays.
//   - SimulateCylindrical: sensors on a circle, modelled with the
//     Jacobi-Anger expansion of open or rigid cylinders.
//   - SimulateFreeField: arbitrary sensor positions with per-sensor
//     directivity and orientation, pure delay model without scattering.
//
// Every simulator returns a Response holding IR[t][mic][doa] and
// TF[bin][mic][doa]. Impulse responses are centred: sample FilterLen/2 is
// time zero at the array origin.
package arraysim

// SpeedOfSound in m/s.
const SpeedOfSound = 343.0

// DefaultSampleRate is used by SimulateFreeField when no rate is given.
const DefaultSampleRate = 48000
