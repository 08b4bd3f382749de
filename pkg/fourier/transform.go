// Package fourier computes centered 2D frequency transforms of grayscale
// images and derives the magnitude, phase, real and imaginary views the
// mixer works with.
package fourier

import (
	"fmt"
	"math"
	"math/cmplx"

	"ftmixer/internal/models"
)

// Spectrum is the frequency-shifted 2D transform of an image. The
// zero-frequency term sits at (Width/2, Height/2).
type Spectrum struct {
	// Data holds the complex coefficients in row-major order
	Data []complex128

	Width  int
	Height int
}

// Transform computes the centered 2D DFT of img. No normalization is applied,
// so the DC term equals the sum of all samples.
func Transform(img *models.Image) *Spectrum {
	data := make([]complex128, img.Len())
	for i, v := range img.Pix {
		data[i] = complex(v, 0)
	}
	fft2D(data, img.Width, img.Height, false)

	return &Spectrum{
		Data:   Shift(data, img.Width, img.Height),
		Width:  img.Width,
		Height: img.Height,
	}
}

// Inverse undoes the shift, applies the inverse 2D DFT and returns the real
// part of the result in row-major order.
func (s *Spectrum) Inverse() []float64 {
	data := Unshift(s.Data, s.Width, s.Height)
	fft2D(data, s.Width, s.Height, true)

	out := make([]float64, len(data))
	for i, c := range data {
		out[i] = real(c)
	}
	return out
}

// Len returns the number of coefficients
func (s *Spectrum) Len() int {
	return s.Width * s.Height
}

// Clone returns a deep copy of the spectrum
func (s *Spectrum) Clone() *Spectrum {
	data := make([]complex128, len(s.Data))
	copy(data, s.Data)
	return &Spectrum{Data: data, Width: s.Width, Height: s.Height}
}

// Component returns the raw, unnormalized view of the spectrum selected by kind.
// Phase values are in radians within [-π, π].
func (s *Spectrum) Component(kind models.Component) []float64 {
	out := make([]float64, len(s.Data))
	switch kind {
	case models.Magnitude:
		for i, c := range s.Data {
			out[i] = cmplx.Abs(c)
		}
	case models.Phase:
		for i, c := range s.Data {
			out[i] = cmplx.Phase(c)
		}
	case models.Real:
		for i, c := range s.Data {
			out[i] = real(c)
		}
	case models.Imaginary:
		for i, c := range s.Data {
			out[i] = imag(c)
		}
	}
	return out
}

// FromPolar builds a spectrum from magnitude and phase arrays as
// magnitude * e^(i*phase).
func FromPolar(magnitude, phase []float64, width, height int) (*Spectrum, error) {
	if err := checkLengths(width, height, magnitude, phase); err != nil {
		return nil, err
	}
	data := make([]complex128, width*height)
	for i := range data {
		data[i] = cmplx.Rect(magnitude[i], phase[i])
	}
	return &Spectrum{Data: data, Width: width, Height: height}, nil
}

// FromCartesian builds a spectrum as re + i*im.
func FromCartesian(re, im []float64, width, height int) (*Spectrum, error) {
	if err := checkLengths(width, height, re, im); err != nil {
		return nil, err
	}
	data := make([]complex128, width*height)
	for i := range data {
		data[i] = complex(re[i], im[i])
	}
	return &Spectrum{Data: data, Width: width, Height: height}, nil
}

func checkLengths(width, height int, a, b []float64) error {
	n := width * height
	if len(a) != n || len(b) != n {
		return fmt.Errorf("component length mismatch: want %d, got %d and %d", n, len(a), len(b))
	}
	return nil
}

// Reconstruct runs the inverse transform and converts the result into a
// displayable image: values are clipped to 0-255 and rounded to the nearest
// integer sample.
func (s *Spectrum) Reconstruct() *models.Image {
	samples := s.Inverse()
	img := &models.Image{Pix: samples, Width: s.Width, Height: s.Height}
	for i, v := range samples {
		img.Pix[i] = math.Round(models.Clamp(v))
	}
	return img
}
