// Package wavio reads and writes multichannel WAV files for the command
// line tools.
package wavio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-array/internal/logging"
)

var (
	ErrInvalidFile = errors.New("wavio: invalid wav file")
	ErrEmpty       = errors.New("wavio: no samples")
	ErrRagged      = errors.New("wavio: frame rows have different channel counts")
)

// ReadFrames reads a WAV file into a [sample][channel] frame.
func ReadFrames(path string) ([][]float64, int, error) {
	data, ch, rate, err := readInterleaved(path)
	if err != nil {
		return nil, 0, err
	}
	frames := len(data) / ch
	out := make([][]float64, frames)
	for i := range out {
		row := make([]float64, ch)
		for c := range row {
			row[c] = float64(data[i*ch+c])
		}
		out[i] = row
	}
	return out, rate, nil
}

// ReadMono reads a WAV file and averages its channels.
func ReadMono(path string) ([]float64, int, error) {
	data, ch, rate, err := readInterleaved(path)
	if err != nil {
		return nil, 0, err
	}
	frames := len(data) / ch
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(data[i*ch+c])
		}
		out[i] = sum / float64(ch)
	}
	return out, rate, nil
}

func readInterleaved(path string) ([]float32, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, 0, fmt.Errorf("%w: %s", ErrInvalidFile, path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 || buf.Format.SampleRate <= 0 {
		return nil, 0, 0, fmt.Errorf("%w: bad header in %s", ErrInvalidFile, path)
	}
	if len(buf.Data) < buf.Format.NumChannels {
		return nil, 0, 0, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	return buf.Data, buf.Format.NumChannels, buf.Format.SampleRate, nil
}

// WriteFrames writes a [sample][channel] frame as 16-bit PCM. Frames whose
// peak exceeds full scale are attenuated to fit; the applied gain is
// returned.
func WriteFrames(path string, frame [][]float64, sampleRate int) (float64, error) {
	if len(frame) == 0 || len(frame[0]) == 0 {
		return 0, ErrEmpty
	}
	ch := len(frame[0])
	peak := 0.0
	for i, row := range frame {
		if len(row) != ch {
			return 0, fmt.Errorf("%w: row %d has %d channels, want %d", ErrRagged, i, len(row), ch)
		}
		for _, v := range row {
			peak = math.Max(peak, math.Abs(v))
		}
	}
	gain := 1.0
	if peak > 0.999 {
		gain = 0.999 / peak
		logging.Warn("attenuating to avoid clipping", logging.Fields{"path": path, "peak": peak, "gain": gain})
	}

	data := make([]float32, len(frame)*ch)
	for i, row := range frame {
		for c, v := range row {
			data[i*ch+c] = float32(v * gain)
		}
	}
	return gain, writeInterleaved(path, data, ch, sampleRate)
}

// WriteChannels writes [channel][sample] data, the layout produced by the
// renderer.
func WriteChannels(path string, chans [][]float64, sampleRate int) (float64, error) {
	if len(chans) == 0 {
		return 0, ErrEmpty
	}
	n := len(chans[0])
	frame := make([][]float64, n)
	for i := range frame {
		row := make([]float64, len(chans))
		for c := range chans {
			if len(chans[c]) != n {
				return 0, fmt.Errorf("%w: channel %d has %d samples, want %d", ErrRagged, c, len(chans[c]), n)
			}
			row[c] = chans[c][i]
		}
		frame[i] = row
	}
	return WriteFrames(path, frame, sampleRate)
}

func writeInterleaved(path string, data []float32, ch, sampleRate int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, ch, 1)
	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: ch,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

// Resample converts x from one sample rate to another. Equal rates return x
// unchanged.
func Resample(x []float64, fromRate, toRate int) ([]float64, error) {
	if fromRate == toRate {
		return x, nil
	}
	r, err := dspresample.NewForRates(
		float64(fromRate),
		float64(toRate),
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return nil, err
	}
	return r.Process(x), nil
}
