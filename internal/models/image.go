package models

import (
	"math"
)

// NumSlots is the number of input images the mixer accepts
const NumSlots = 4

// Image represents a single grayscale image held by the mixer
type Image struct {
	// Pix holds the intensity samples (0-255) in row-major order
	Pix []float64

	// Width is the width of the image in pixels
	Width int

	// Height is the height of the image in pixels
	Height int
}

// NewImage allocates a black image of the given dimensions
func NewImage(width, height int) *Image {
	return &Image{
		Pix:    make([]float64, width*height),
		Width:  width,
		Height: height,
	}
}

// NewUniformImage allocates an image where every sample equals value
func NewUniformImage(width, height int, value float64) *Image {
	img := NewImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return img
}

// At returns the sample at column x and row y
func (im *Image) At(x, y int) float64 {
	return im.Pix[y*im.Width+x]
}

// Set stores a sample at column x and row y
func (im *Image) Set(x, y int, value float64) {
	im.Pix[y*im.Width+x] = value
}

// Len returns the number of samples
func (im *Image) Len() int {
	return im.Width * im.Height
}

// Empty reports whether the image holds no samples
func (im *Image) Empty() bool {
	return im == nil || im.Width <= 0 || im.Height <= 0 || len(im.Pix) != im.Width*im.Height
}

// Clone returns a deep copy of the image
func (im *Image) Clone() *Image {
	if im == nil {
		return nil
	}
	pix := make([]float64, len(im.Pix))
	copy(pix, im.Pix)
	return &Image{Pix: pix, Width: im.Width, Height: im.Height}
}

// SameSize reports whether two images have identical dimensions
func (im *Image) SameSize(other *Image) bool {
	return other != nil && im.Width == other.Width && im.Height == other.Height
}

// Equal reports whether two images have identical dimensions and samples
func (im *Image) Equal(other *Image) bool {
	if !im.SameSize(other) || len(im.Pix) != len(other.Pix) {
		return false
	}
	for i, v := range im.Pix {
		if v != other.Pix[i] {
			return false
		}
	}
	return true
}

// Clamp returns the sample clipped to the displayable 0-255 range
func Clamp(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}
