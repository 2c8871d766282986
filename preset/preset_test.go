package preset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-array/analysis"
	"github.com/cwbudde/algo-array/directivity"
	"github.com/cwbudde/algo-array/modal"
)

func writePreset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	return path
}

func TestDefaultSimulates(t *testing.T) {
	resp, err := Default().Simulate()
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if resp.FilterLen() != 256 || resp.NumMics() != 4 || resp.NumDOAs() != 1 {
		t.Fatalf("shape %d x %d x %d", resp.FilterLen(), resp.NumMics(), resp.NumDOAs())
	}
}

func TestLoadJSONFreeField(t *testing.T) {
	path := writePreset(t, `{
  "kind": "free-field",
  "filter_len": 128,
  "sample_rate": 16000,
  "positions": [[0.1, 0, 0], [-0.1, 0, 0]],
  "orientations": [[1, 0, 0]],
  "directivity": [{"pattern": "cardioid"}],
  "sources": [[0, 0]],
  "doas": [[-1, 0, 0]]
}`)
	p, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if p.Kind != FreeField || p.FilterLen != 128 || p.SampleRate != 16000 {
		t.Fatalf("preset fields mismatch: %+v", p)
	}
	if _, ok := p.Directivity[0].(directivity.FirstOrder); !ok {
		t.Fatalf("directivity = %T", p.Directivity[0])
	}
	dirs := p.SourceDirections()
	if len(dirs) != 2 || math.Abs(math.Abs(dirs[1].Azimuth)-math.Pi) > 1e-12 {
		t.Fatalf("source directions %v", dirs)
	}

	resp, err := p.Simulate()
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	// Both sensors face +x: the frontal source is louder than the rear one.
	front := analysis.Energy(resp.Channel(0, 0))
	back := analysis.Energy(resp.Channel(0, 1))
	if front <= back {
		t.Fatalf("front energy %g <= back energy %g", front, back)
	}
}

func TestLoadJSONDOAsOnlyReplaceDefaultSource(t *testing.T) {
	path := writePreset(t, `{
  "kind": "free-field",
  "filter_len": 64,
  "positions": [[0.05, 0, 0], [-0.05, 0, 0]],
  "doas": [[0, 1, 0], [0, 0, 1]]
}`)
	p, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	dirs := p.SourceDirections()
	if len(dirs) != 2 || math.Abs(dirs[0].Azimuth-math.Pi/2) > 1e-12 {
		t.Fatalf("source directions %v", dirs)
	}
	resp, err := p.Simulate()
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if resp.NumDOAs() != 2 {
		t.Fatalf("NumDOAs = %d, want 2", resp.NumDOAs())
	}
}

func TestLoadJSONCylindricalRing(t *testing.T) {
	path := writePreset(t, `{
  "kind": "cylindrical",
  "array_type": "open",
  "layout": "ring:8",
  "order": 6,
  "radius": 0.05,
  "sources": [[90, 0], [180, 0]]
}`)
	p, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if p.Type != modal.Open || len(p.MicAngles) != 8 {
		t.Fatalf("preset fields mismatch: %+v", p)
	}
	cfg := p.CylindricalConfig()
	if math.Abs(cfg.Sources[0]-math.Pi/2) > 1e-12 || math.Abs(cfg.Mics[2]-math.Pi/2) > 1e-12 {
		t.Fatalf("angles %v %v", cfg.Sources, cfg.Mics)
	}
	resp, err := p.Simulate()
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if resp.NumMics() != 8 || resp.NumDOAs() != 2 {
		t.Fatalf("shape %d x %d", resp.NumMics(), resp.NumDOAs())
	}
	if _, err := p.Simulator(); err != nil {
		t.Fatalf("Simulator: %v", err)
	}
}

func TestLoadJSONSphericalDirectional(t *testing.T) {
	path := writePreset(t, `{
  "array_type": "directional",
  "dir_coef": 0.5,
  "mics": [[0, 0], [180, 0]],
  "order": 4
}`)
	p, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if p.Kind != Spherical || p.Type != modal.Directional || p.DirCoef == nil || *p.DirCoef != 0.5 {
		t.Fatalf("preset fields mismatch: %+v", p)
	}
	if _, err := p.Simulate(); err != nil {
		t.Fatalf("Simulate: %v", err)
	}
}

func TestLoadJSONRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"kind", `{"kind": "planar"}`},
		{"odd filter", `{"filter_len": 255}`},
		{"rate", `{"sample_rate": 0}`},
		{"radius", `{"radius": -1}`},
		{"order", `{"order": -2}`},
		{"dir coef", `{"dir_coef": 1.5}`},
		{"array type", `{"array_type": "soft"}`},
		{"layout", `{"layout": "cube"}`},
		{"layout count", `{"layout": "ring:x"}`},
		{"pattern", `{"directivity": [{"pattern": "shotgun"}]}`},
		{"syntax", `{"kind": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadJSON(writePreset(t, tt.content)); err == nil {
				t.Fatalf("expected error for %s", tt.content)
			}
		})
	}
}

func TestParseLayout(t *testing.T) {
	dirs, angles, err := ParseLayout("Fibonacci:12")
	if err != nil || len(dirs) != 12 || angles != nil {
		t.Fatalf("fibonacci: %d dirs, %v, %v", len(dirs), angles, err)
	}
	if _, _, err := ParseLayout("ring:0"); err == nil {
		t.Fatalf("expected error for empty ring")
	}
	if _, _, err := ParseLayout("dodecahedron"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("unknown layout err = %v", err)
	}
}

func TestApplyNil(t *testing.T) {
	if err := Apply(nil, &File{}); err == nil {
		t.Fatalf("expected error for nil destination")
	}
	if err := Apply(Default(), nil); err != nil {
		t.Fatalf("Apply(nil file) = %v", err)
	}
}
