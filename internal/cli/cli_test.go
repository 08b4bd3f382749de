package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"ftmixer/internal/models"
	"ftmixer/pkg/codec"
	"ftmixer/pkg/config"
	"ftmixer/pkg/registry"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeImage(t *testing.T, dir, name string, img *models.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := codec.Save(path, img, 0); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func pattern(width, height int) *models.Image {
	img := models.NewImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, float64((x*x+3*y)%256))
		}
	}
	return img
}

func TestMixCommandUniform(t *testing.T) {
	dir := t.TempDir()
	src := models.NewUniformImage(32, 32, 128)
	in := writeImage(t, dir, "gray.png", src)
	out := filepath.Join(dir, "out.png")

	if err := execute(t, "mix", "-i", in, "-c", "magnitude", "-w", "1", "-o", out, "--compare"); err != nil {
		t.Fatalf("mix failed: %v", err)
	}

	got, err := codec.Load(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !got.Equal(src) {
		t.Error("Expected the mixed output to equal the input")
	}
}

func TestMixCommandTwoInputs(t *testing.T) {
	dir := t.TempDir()
	a := writeImage(t, dir, "a.png", pattern(40, 30))
	b := writeImage(t, dir, "b.png", models.NewUniformImage(24, 36, 90))
	out := filepath.Join(dir, "out.png")

	err := execute(t, "mix", "-i", a, "-i", b,
		"--mode", "realimag", "-c", "real,imaginary",
		"--region", "inner", "--size", "40", "--target", "2", "-o", out)
	if err != nil {
		t.Fatalf("mix failed: %v", err)
	}

	got, err := codec.Load(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if got.Width != 24 || got.Height != 30 {
		t.Errorf("Expected output at the common size 24x30, got %dx%d", got.Width, got.Height)
	}
}

func TestMixCommandErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeImage(t, dir, "a.png", pattern(8, 8))
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")

	if err := execute(t, "mix", "-i", in, "--mode", "realimag", "-c", "magnitude", "-o", out); !errors.Is(err, registry.ErrInvalidChoice) {
		t.Errorf("Expected ErrInvalidChoice, got %v", err)
	}
	if err := execute(t, "mix", "-i", garbage, "-o", out); !errors.Is(err, registry.ErrDecode) {
		t.Errorf("Expected ErrDecode, got %v", err)
	}
	if err := execute(t, "mix", "-i", in, "--target", "3", "-o", out); err == nil {
		t.Error("Expected error for unknown target")
	}
	if err := execute(t, "mix", "-i", in, "-i", in, "-i", in, "-i", in, "-i", in, "-o", out); err == nil {
		t.Error("Expected error for five inputs")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("No output should be written when mixing fails")
	}
}

func TestMixCommandConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "ftmixer.yaml")
	if err := execute(t, "config", "init", cfgPath); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	cfg.Mixer.Weights = []float64{0}
	if err := config.SaveConfig(cfg, cfgPath); err != nil {
		t.Fatal(err)
	}

	in := writeImage(t, dir, "a.png", models.NewUniformImage(16, 16, 200))
	out := filepath.Join(dir, "out.png")
	if err := execute(t, "--config", cfgPath, "mix", "-i", in, "-o", out); err != nil {
		t.Fatalf("mix failed: %v", err)
	}

	got, err := codec.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(models.NewImage(16, 16)) {
		t.Error("Expected a zero configured weight to produce a black image")
	}
}

func TestPreviewCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeImage(t, dir, "a.png", pattern(20, 16))
	outDir := filepath.Join(dir, "previews")

	if err := execute(t, "preview", "-i", in, "-o", outDir, "--region", "inner", "--size", "50"); err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	for _, kind := range models.Components {
		path := filepath.Join(outDir, "slot1_"+kind.String()+".png")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing preview %s: %v", path, err)
		}
	}
}

func TestAdjustCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeImage(t, dir, "a.png", models.NewUniformImage(8, 8, 100))
	out := filepath.Join(dir, "adj.png")

	if err := execute(t, "adjust", "-i", in, "--brightness", "1.5", "-o", out); err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	got, err := codec.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(models.NewUniformImage(8, 8, 150)) {
		t.Errorf("Expected uniform 150, got %v", got.Pix[:4])
	}
}

func TestResolveComponents(t *testing.T) {
	cfg := config.DefaultConfig()

	got, err := resolveComponents(cfg, nil, models.RealImag)
	if err != nil {
		t.Fatal(err)
	}
	want := []models.Component{models.Real, models.Imaginary, models.Real, models.Imaginary}
	for i, c := range want {
		if got[i] != c {
			t.Errorf("slot %d: expected %s, got %s", i, c, got[i])
		}
	}

	got, err = resolveComponents(cfg, []string{"phase", "mag"}, models.MagPhase)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != models.Phase || got[1] != models.Magnitude {
		t.Errorf("unexpected explicit components %v", got)
	}

	if _, err := resolveComponents(cfg, []string{"hue"}, models.MagPhase); err == nil {
		t.Error("Expected error for unknown component")
	}
}
