package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/cwbudde/algo-array/analysis"
	"github.com/cwbudde/algo-array/arraysim"
	"github.com/cwbudde/algo-array/doafit"
	"github.com/cwbudde/algo-array/geom"
	"github.com/cwbudde/algo-array/internal/logging"
	"github.com/cwbudde/algo-array/internal/wavio"
	"github.com/cwbudde/algo-array/preset"
	"github.com/cwbudde/algo-array/render"
)

type PresetFlags struct {
	Preset     string `required:"" type:"existingfile" help:"Array preset JSON"`
	FilterLen  int    `help:"Override the preset filter length"`
	SampleRate int    `help:"Override the preset sample rate"`
}

func (f PresetFlags) load() (*preset.Preset, error) {
	p, err := preset.LoadJSON(f.Preset)
	if err != nil {
		return nil, err
	}
	if f.FilterLen > 0 {
		p.FilterLen = f.FilterLen
	}
	if f.SampleRate > 0 {
		p.SampleRate = f.SampleRate
	}
	return p, nil
}

type SimulateCmd struct {
	PresetFlags `embed:""`
	OutDir string `default:"out" type:"path" help:"Output directory for doa_NNN.wav files"`
}

func (c *SimulateCmd) Run() error {
	p, err := c.load()
	if err != nil {
		return err
	}
	start := time.Now()
	resp, err := p.Simulate()
	if err != nil {
		return err
	}
	logging.Info("simulated", logging.Fields{
		"kind":    string(p.Kind),
		"mics":    resp.NumMics(),
		"sources": resp.NumDOAs(),
		"elapsed": time.Since(start).Round(time.Millisecond).String(),
	})

	for d := 0; d < resp.NumDOAs(); d++ {
		frame := resp.DOAFrame(d)
		path := filepath.Join(c.OutDir, fmt.Sprintf("doa_%03d.wav", d))
		if _, err := wavio.WriteFrames(path, frame, resp.SampleRate); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Println(titleStyle.Render(path))
		energies := analysis.ChannelEnergies(frame)
		for m := range energies {
			ch := analysis.Channel(frame, m)
			peak := analysis.PeakIndex(ch)
			printKV(fmt.Sprintf("  mic %d", m), "peak=%d (%.4f) energy=%.4g", peak, ch[peak], energies[m])
		}
	}
	return nil
}

type RenderCmd struct {
	PresetFlags `embed:""`
	Input     string  `required:"" type:"existingfile" help:"Dry mono WAV"`
	DOA       int     `name:"doa" default:"0" help:"Source index in the preset"`
	Out       string  `default:"out/render.wav" type:"path" help:"Output WAV"`
	GainDB    float64 `name:"gain-db" help:"Output gain in dB"`
	Normalize float64 `help:"Normalise the output peak to this value (0 disables)"`
}

func (c *RenderCmd) Run() error {
	p, err := c.load()
	if err != nil {
		return err
	}
	resp, err := p.Simulate()
	if err != nil {
		return err
	}
	if c.DOA < 0 || c.DOA >= resp.NumDOAs() {
		return fmt.Errorf("doa index %d out of range [0,%d)", c.DOA, resp.NumDOAs())
	}
	dry, rate, err := wavio.ReadMono(c.Input)
	if err != nil {
		return err
	}
	out, err := render.Spatialize(dry, rate, resp.DOAFrame(c.DOA), render.Config{
		SampleRate: resp.SampleRate,
		GainDB:     c.GainDB,
		Normalize:  c.Normalize,
	})
	if err != nil {
		return err
	}
	gain, err := wavio.WriteChannels(c.Out, out, resp.SampleRate)
	if err != nil {
		return err
	}
	printKV("Wrote", "%s (%d channels, %d samples)", c.Out, len(out), len(out[0]))
	if gain < 1 {
		printKV("Attenuated", "%.2f dB", 20*math.Log10(gain))
	}
	return nil
}

type FitDOACmd struct {
	Preset  string        `required:"" type:"existingfile" help:"Array preset JSON"`
	Input   string        `required:"" type:"existingfile" help:"Observed multichannel WAV, one channel per mic"`
	Variant string        `default:"desma" help:"Mayfly variant: ma|desma|olce|eobbma|gsasma|mpma|aoblmoa"`
	Pop     int           `default:"10" help:"Male and female population size"`
	Iters   int           `default:"40" help:"Mayfly iterations"`
	Grid    int           `default:"64" help:"Initial Fibonacci grid size (0 disables)"`
	Seed    int64         `default:"1" help:"Random seed"`
	Timeout time.Duration `default:"0s" help:"Stop the search after this long (0 means no limit)"`
}

func (c *FitDOACmd) Run() error {
	p, err := preset.LoadJSON(c.Preset)
	if err != nil {
		return err
	}
	observed, rate, err := wavio.ReadFrames(c.Input)
	if err != nil {
		return err
	}
	// Simulate at the observation rate.
	p.SampleRate = rate
	if nmic := len(p.MicPositions()); len(observed[0]) != nmic {
		return fmt.Errorf("%s has %d channels, preset has %d mics", c.Input, len(observed[0]), nmic)
	}
	sim, err := p.Simulator()
	if err != nil {
		return err
	}

	cfg := doafit.DefaultConfig()
	cfg.Variant = strings.ToLower(c.Variant)
	cfg.Population = c.Pop
	cfg.Iterations = c.Iters
	cfg.GridPoints = c.Grid
	cfg.Seed = c.Seed
	if p.Kind == preset.Cylindrical {
		cfg.MinElevation, cfg.MaxElevation = 0, 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := doafit.Fit(ctx, observed, sim, cfg)
	if err != nil {
		return err
	}
	az, el := res.Direction.Degrees()
	fmt.Println(titleStyle.Render("Estimated direction"))
	printKV("Azimuth", "%.2f°", az)
	printKV("Elevation", "%.2f°", el)
	printKV("Score", "%.4f (similarity %.2f%%)", res.Metrics.Score, res.Metrics.Similarity*100)
	printKV("Evaluations", "%d in %s", res.Evaluations, time.Since(start).Round(time.Millisecond))
	if res.Stopped {
		logging.Warn("search stopped early", logging.Fields{"reason": ctx.Err().Error()})
	}
	return nil
}

type InfoCmd struct {
	Preset string `required:"" type:"existingfile" help:"Array preset JSON"`
}

func (c *InfoCmd) Run() error {
	p, err := preset.LoadJSON(c.Preset)
	if err != nil {
		return err
	}
	fmt.Println(titleStyle.Render(filepath.Base(c.Preset)))
	printKV("Kind", "%s", p.Kind)
	if p.Kind != preset.FreeField {
		printKV("Array type", "%s", p.Type)
		printKV("Radius", "%.4f m", p.Radius)
		printKV("Order", "%d", p.Order)
	}
	fs := p.SampleRate
	if fs == 0 {
		fs = arraysim.DefaultSampleRate
	}
	printKV("Filter", "%d taps at %d Hz", p.FilterLen, fs)

	fmt.Println(titleStyle.Render("Microphones"))
	for i, pos := range p.MicPositions() {
		d, r := geom.CartToSph(pos)
		printKV(fmt.Sprintf("  %d", i), "%s r=%.4f m (%.4f, %.4f, %.4f)", d, r, pos.X, pos.Y, pos.Z)
	}
	fmt.Println(titleStyle.Render("Sources"))
	for i, d := range p.SourceDirections() {
		printKV(fmt.Sprintf("  %d", i), "%s", d)
	}
	return nil
}
