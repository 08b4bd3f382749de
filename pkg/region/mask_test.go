package region

import (
	"image"
	"testing"

	"ftmixer/internal/models"
)

// TestRect verifies the rectangle arithmetic for even and odd sizes
func TestRect(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		percent       float64
		want          image.Rectangle
	}{
		{"half of 100x80", 100, 80, 50, image.Rect(25, 20, 75, 60)},
		{"zero", 64, 64, 0, image.Rect(32, 32, 32, 32)},
		{"full even", 64, 32, 100, image.Rect(0, 0, 64, 32)},
		{"full odd", 7, 5, 100, image.Rect(0, 0, 6, 4)},
		{"floor", 10, 10, 33, image.Rect(4, 4, 6, 6)},
		{"clamped above", 10, 10, 150, image.Rect(0, 0, 10, 10)},
		{"clamped below", 10, 10, -5, image.Rect(5, 5, 5, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rect(tt.width, tt.height, tt.percent)
			if !got.Eq(tt.want) {
				t.Errorf("Rect(%d, %d, %g) = %v, want %v", tt.width, tt.height, tt.percent, got, tt.want)
			}
		})
	}
}

// TestBuildMaskExtremes verifies empty inner and outer masks
func TestBuildMaskExtremes(t *testing.T) {
	if n := BuildMask(16, 12, 0, models.Inner).Count(); n != 0 {
		t.Errorf("Expected empty inner mask at 0%%, got %d kept", n)
	}
	if n := BuildMask(16, 12, 0, models.Outer).Count(); n != 16*12 {
		t.Errorf("Expected full outer mask at 0%%, got %d kept", n)
	}
	if n := BuildMask(16, 12, 100, models.Outer).Count(); n != 0 {
		t.Errorf("Expected empty outer mask at 100%%, got %d kept", n)
	}
	if n := BuildMask(16, 12, 100, models.Inner).Count(); n != 16*12 {
		t.Errorf("Expected full inner mask at 100%%, got %d kept", n)
	}

	// Odd sizes leave the last row and column outside the rectangle
	if n := BuildMask(7, 5, 100, models.Outer).Count(); n != 7*5-6*4 {
		t.Errorf("Expected %d kept for odd outer mask at 100%%, got %d", 7*5-6*4, n)
	}
}

// TestBuildMaskComplement verifies inner and outer are exact complements
func TestBuildMaskComplement(t *testing.T) {
	for _, percent := range []float64{0, 10, 33, 50, 77, 100} {
		inner := BuildMask(21, 14, percent, models.Inner)
		outer := BuildMask(21, 14, percent, models.Outer)
		for i := range inner.Keep {
			if inner.Keep[i] == outer.Keep[i] {
				t.Fatalf("%g%%: position %d is %v in both masks", percent, i, inner.Keep[i])
			}
		}
	}
}

// TestBuildMaskInnerRegion verifies the kept positions lie inside the rectangle
func TestBuildMaskInnerRegion(t *testing.T) {
	m := BuildMask(10, 8, 50, models.Inner)
	rect := m.Bounds()
	if !rect.Eq(image.Rect(3, 2, 7, 6)) {
		t.Fatalf("unexpected bounds %v", rect)
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			want := x >= 3 && x < 7 && y >= 2 && y < 6
			if m.Keep[y*m.Width+x] != want {
				t.Errorf("Keep(%d,%d) = %v, want %v", x, y, m.Keep[y*m.Width+x], want)
			}
		}
	}
}

// TestWholeMask verifies the whole region keeps everything
func TestWholeMask(t *testing.T) {
	m := ForRegion(9, 4, models.Region{Kind: models.Whole, Percent: 10})
	if m.Count() != 36 {
		t.Errorf("Expected whole mask to keep 36 positions, got %d", m.Count())
	}
}

// TestApplyCopies verifies Apply zeroes masked positions without touching
// its input
func TestApplyCopies(t *testing.T) {
	m := BuildMask(4, 4, 50, models.Inner)
	values := make([]complex128, 16)
	for i := range values {
		values[i] = complex(float64(i+1), 1)
	}

	out := m.Apply(values)
	for i, v := range out {
		if m.Keep[i] && v != values[i] {
			t.Errorf("kept position %d changed: %v", i, v)
		}
		if !m.Keep[i] && v != 0 {
			t.Errorf("masked position %d not zeroed: %v", i, v)
		}
	}
	for i, v := range values {
		if v != complex(float64(i+1), 1) {
			t.Fatalf("input modified at %d", i)
		}
	}
}
