package arraysim

// Response holds the simulated array response for every direction of
// arrival.
type Response struct {
	// IR is indexed [sample][mic][doa], FilterLen samples, centred.
	IR [][][]float64
	// TF is indexed [bin][mic][doa], FilterLen/2+1 bins from DC to Nyquist.
	TF [][][]complex128

	SampleRate int
}

func newResponse(filterLen, nMic, nDOA, sampleRate int) *Response {
	bins := filterLen/2 + 1
	r := &Response{
		IR:         make([][][]float64, filterLen),
		TF:         make([][][]complex128, bins),
		SampleRate: sampleRate,
	}
	irFlat := make([]float64, filterLen*nMic*nDOA)
	for t := range r.IR {
		r.IR[t] = make([][]float64, nMic)
		for m := range r.IR[t] {
			off := (t*nMic + m) * nDOA
			r.IR[t][m] = irFlat[off : off+nDOA : off+nDOA]
		}
	}
	tfFlat := make([]complex128, bins*nMic*nDOA)
	for k := range r.TF {
		r.TF[k] = make([][]complex128, nMic)
		for m := range r.TF[k] {
			off := (k*nMic + m) * nDOA
			r.TF[k][m] = tfFlat[off : off+nDOA : off+nDOA]
		}
	}
	return r
}

// FilterLen is the number of IR taps.
func (r *Response) FilterLen() int { return len(r.IR) }

// NumMics is the number of microphones.
func (r *Response) NumMics() int {
	if len(r.IR) == 0 {
		return 0
	}
	return len(r.IR[0])
}

// NumDOAs is the number of simulated directions.
func (r *Response) NumDOAs() int {
	if len(r.IR) == 0 || len(r.IR[0]) == 0 {
		return 0
	}
	return len(r.IR[0][0])
}

// Channel returns a copy of the impulse response of one microphone for one
// direction of arrival.
func (r *Response) Channel(mic, doa int) []float64 {
	out := make([]float64, len(r.IR))
	for t := range r.IR {
		out[t] = r.IR[t][mic][doa]
	}
	return out
}

// Transfer returns a copy of the transfer function of one microphone for one
// direction of arrival.
func (r *Response) Transfer(mic, doa int) []complex128 {
	out := make([]complex128, len(r.TF))
	for k := range r.TF {
		out[k] = r.TF[k][mic][doa]
	}
	return out
}

// DOAFrame returns the multichannel impulse response of one direction of
// arrival, indexed [sample][mic].
func (r *Response) DOAFrame(doa int) [][]float64 {
	out := make([][]float64, len(r.IR))
	for t := range r.IR {
		row := make([]float64, len(r.IR[t]))
		for m := range row {
			row[m] = r.IR[t][m][doa]
		}
		out[t] = row
	}
	return out
}
