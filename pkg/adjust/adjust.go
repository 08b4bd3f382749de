// Package adjust applies display brightness and contrast to grayscale images.
// It is a pure function of its inputs; callers keep the current factors.
package adjust

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"ftmixer/internal/models"
)

const (
	// MinFactor and MaxFactor bound both brightness and contrast
	MinFactor = 0.1
	MaxFactor = 3.0

	// dragStep is the factor change per pixel of pointer movement
	dragStep = 0.01
)

// Adjust returns a copy of img with brightness applied as a multiplicative
// factor, then contrast applied around the mean intensity of the brightened
// image. A factor of 1 leaves the image unchanged.
func Adjust(img *models.Image, brightness, contrast float64) *models.Image {
	brightness = clampFactor(brightness)
	contrast = clampFactor(contrast)

	out := img.Clone()
	for i, v := range out.Pix {
		out.Pix[i] = models.Clamp(v * brightness)
	}

	if len(out.Pix) > 0 {
		mean := math.Round(stat.Mean(out.Pix, nil))
		for i, v := range out.Pix {
			out.Pix[i] = models.Clamp(mean + (v-mean)*contrast)
		}
	}

	for i, v := range out.Pix {
		out.Pix[i] = math.Round(v)
	}
	return out
}

// FromDrag updates the factors from a pointer movement of (dx, dy) pixels:
// moving up raises brightness, moving right raises contrast.
func FromDrag(brightness, contrast float64, dx, dy int) (float64, float64) {
	brightness = clampFactor(brightness - float64(dy)*dragStep)
	contrast = clampFactor(contrast + float64(dx)*dragStep)
	return brightness, contrast
}

func clampFactor(f float64) float64 {
	if math.IsNaN(f) {
		return 1
	}
	return math.Max(MinFactor, math.Min(MaxFactor, f))
}
