package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"ftmixer/internal/models"
)

// TestDefaultConfig tests that the defaults are valid and match the mixer defaults
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config is invalid: %v", err)
	}

	mode, _ := cfg.MixMode()
	if mode != models.MagPhase {
		t.Errorf("Expected MagPhase, got %s", mode)
	}
	region, _ := cfg.MixRegion()
	if region != models.DefaultRegion() {
		t.Errorf("Expected default region, got %s", region)
	}
	components, _ := cfg.SlotComponents()
	want := []models.Component{models.Magnitude, models.Phase, models.Magnitude, models.Phase}
	for i, c := range want {
		if components[i] != c {
			t.Errorf("slot %d: expected %s, got %s", i, c, components[i])
		}
	}
}

// TestLoadConfigMissing tests that a missing file yields the defaults
func TestLoadConfigMissing(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.yaml")} {
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(%q) failed: %v", path, err)
		}
		if cfg.Mixer.Mode != "magphase" || cfg.Output.JPEGQuality != 90 {
			t.Errorf("LoadConfig(%q) did not return defaults: %+v", path, cfg)
		}
	}
}

// TestSaveAndLoadConfig tests that a saved configuration loads back unchanged
func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ftmixer.yaml")

	cfg := DefaultConfig()
	cfg.Mixer.Mode = "realimag"
	cfg.Mixer.Region = "outer"
	cfg.Mixer.RegionSize = 25
	cfg.Mixer.Weights = []float64{0.5, 0.25}
	cfg.Mixer.Components = []string{"real", "imaginary"}
	cfg.Output.PreviewOverlay = false

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Mixer.Mode != "realimag" || loaded.Mixer.Region != "outer" || loaded.Mixer.RegionSize != 25 {
		t.Errorf("mixer section not preserved: %+v", loaded.Mixer)
	}
	if len(loaded.Mixer.Weights) != 2 || loaded.Mixer.Weights[1] != 0.25 {
		t.Errorf("weights not preserved: %v", loaded.Mixer.Weights)
	}
	if loaded.Output.PreviewOverlay {
		t.Error("previewOverlay not preserved")
	}
}

// TestLoadConfigPartial tests that unspecified keys keep their defaults
func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "mixer:\n  region: inner\n  regionSize: 10\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	region, _ := cfg.MixRegion()
	if region.Kind != models.Inner || region.Percent != 10 {
		t.Errorf("Expected inner/10, got %s", region)
	}
	if cfg.Mixer.Resample != "lanczos" || cfg.Output.PreviewDir != "previews" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

// TestLoadConfigInvalid tests that malformed or out-of-range files are rejected
func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":     "mixer: [unclosed",
		"bad mode":     "mixer:\n  mode: polar\n",
		"bad region":   "mixer:\n  region: middle\n",
		"region size":  "mixer:\n  regionSize: 150\n",
		"component":    "mixer:\n  components: [magnitude, color]\n",
		"resample":     "mixer:\n  resample: cubic\n",
		"too many":     "mixer:\n  weights: [1, 1, 1, 1, 1]\n",
		"jpeg quality": "output:\n  jpegQuality: 0\n",
	}

	dir := t.TempDir()
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			if err := os.WriteFile(path, []byte(data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

// TestResampleFilter tests filter name lookup
func TestResampleFilter(t *testing.T) {
	tests := []struct {
		name    string
		support float64
		wantErr bool
	}{
		{"", imaging.Lanczos.Support, false},
		{"Lanczos", imaging.Lanczos.Support, false},
		{"catmullrom", imaging.CatmullRom.Support, false},
		{"linear", imaging.Linear.Support, false},
		{"box", imaging.Box.Support, false},
		{"nearest", imaging.NearestNeighbor.Support, false},
		{"sinc", 0, true},
	}

	for _, tt := range tests {
		f, err := ResampleFilter(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ResampleFilter(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && f.Support != tt.support {
			t.Errorf("ResampleFilter(%q) support = %f, want %f", tt.name, f.Support, tt.support)
		}
	}
}
