// Package mixer recombines frequency-domain components of up to four images
// into a single output image.
//
// A mix runs in one of two modes:
//   - Magnitude/Phase: weighted magnitudes and phases are averaged separately
//     over the slots that selected them, joined as magnitude * e^(i*phase),
//     and the active region mask is applied to the joined spectrum.
//   - Real/Imaginary: every slot contributes weight*real or i*weight*imaginary,
//     the region mask is applied to each contribution, and the contributions
//     are summed.
//
// The joined spectrum is inverse-transformed, clipped to 0-255 and rounded.
// Mixing is stateless: the same inputs always produce the same output.
package mixer

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"ftmixer/internal/models"
	"ftmixer/pkg/fourier"
	"ftmixer/pkg/region"
)

var (
	// ErrNoData is returned when no slot holds a transform
	ErrNoData = errors.New("no image data to mix")

	// ErrDimensionMismatch is returned when populated slots differ in size
	ErrDimensionMismatch = errors.New("slot dimensions differ")
)

// Slot is one input of a mix.
type Slot struct {
	// Spectrum is the centered transform of the slot's image, nil when the
	// slot is empty
	Spectrum *fourier.Spectrum

	// Weight scales the slot's contribution, 0-1
	Weight float64

	// Choice is the component the slot contributes
	Choice models.Component
}

// Params holds the global settings shared by every slot of a mix.
type Params struct {
	// Mode selects the component pair being mixed
	Mode models.Mode

	// Region restricts the mix to the inner or outer frequencies
	Region models.Region
}

// Mix combines the populated slots according to params and reconstructs the
// spatial-domain image. Slots whose choice is not permitted by the mode are
// ignored.
func Mix(slots []Slot, params Params) (*models.Image, error) {
	width, height, err := dimensions(slots)
	if err != nil {
		return nil, err
	}

	mask := region.ForRegion(width, height, params.Region)

	var mixed *fourier.Spectrum
	switch params.Mode {
	case models.MagPhase:
		mixed, err = mixPolar(slots, mask, width, height)
	case models.RealImag:
		mixed, err = mixCartesian(slots, mask, width, height)
	default:
		return nil, fmt.Errorf("unsupported mode %s", params.Mode)
	}
	if err != nil {
		return nil, err
	}

	return mixed.Reconstruct(), nil
}

// dimensions returns the common size of the populated slots.
func dimensions(slots []Slot) (int, int, error) {
	width, height := 0, 0
	found := false
	for i, s := range slots {
		if s.Spectrum == nil {
			continue
		}
		if !found {
			width, height = s.Spectrum.Width, s.Spectrum.Height
			found = true
			continue
		}
		if s.Spectrum.Width != width || s.Spectrum.Height != height {
			return 0, 0, fmt.Errorf("slot %d is %dx%d, expected %dx%d: %w",
				i, s.Spectrum.Width, s.Spectrum.Height, width, height, ErrDimensionMismatch)
		}
	}
	if !found {
		return 0, 0, ErrNoData
	}
	return width, height, nil
}

// mixPolar averages weighted magnitudes and phases separately. When no slot
// selected Magnitude, the raw magnitude of slot 0 is used instead (or of the
// first populated slot if slot 0 is empty). Phases default to zero when no
// slot selected Phase.
func mixPolar(slots []Slot, mask *region.Mask, width, height int) (*fourier.Spectrum, error) {
	n := width * height
	magnitude := make([]float64, n)
	phase := make([]float64, n)
	magnitudeCount, phaseCount := 0, 0

	for _, s := range slots {
		if s.Spectrum == nil {
			continue
		}
		switch s.Choice {
		case models.Magnitude:
			floats.AddScaled(magnitude, s.Weight, s.Spectrum.Component(models.Magnitude))
			magnitudeCount++
		case models.Phase:
			floats.AddScaled(phase, s.Weight, s.Spectrum.Component(models.Phase))
			phaseCount++
		}
	}

	if magnitudeCount == 0 {
		magnitude = fallbackSpectrum(slots).Component(models.Magnitude)
	} else {
		floats.Scale(1/float64(magnitudeCount), magnitude)
	}
	if phaseCount > 0 {
		floats.Scale(1/float64(phaseCount), phase)
	}

	mixed, err := fourier.FromPolar(magnitude, phase, width, height)
	if err != nil {
		return nil, err
	}
	mixed.Data = mask.Apply(mixed.Data)
	return mixed, nil
}

// mixCartesian superposes the masked real and imaginary contributions.
func mixCartesian(slots []Slot, mask *region.Mask, width, height int) (*fourier.Spectrum, error) {
	sum := make([]complex128, width*height)
	term := make([]complex128, width*height)

	for _, s := range slots {
		if s.Spectrum == nil {
			continue
		}
		switch s.Choice {
		case models.Real:
			for i, c := range s.Spectrum.Data {
				term[i] = complex(s.Weight*real(c), 0)
			}
		case models.Imaginary:
			for i, c := range s.Spectrum.Data {
				term[i] = complex(0, s.Weight*imag(c))
			}
		default:
			continue
		}
		for i, c := range mask.Apply(term) {
			sum[i] += c
		}
	}

	return &fourier.Spectrum{Data: sum, Width: width, Height: height}, nil
}

func fallbackSpectrum(slots []Slot) *fourier.Spectrum {
	for _, s := range slots {
		if s.Spectrum != nil {
			return s.Spectrum
		}
	}
	return nil
}
