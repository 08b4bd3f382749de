package fourier

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"ftmixer/internal/models"
)

// ErrDegenerateComponent is returned when a component view is constant and
// therefore cannot be rescaled for display.
var ErrDegenerateComponent = errors.New("component has no variation")

// Normalize rescales a component view to the 0-255 display range. Magnitude,
// real and imaginary views are compressed with log(1+|x|) first; phase is
// already bounded and is rescaled directly. Samples are truncated to whole
// intensity levels.
func Normalize(values []float64, kind models.Component) ([]float64, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%s: %w", kind, ErrDegenerateComponent)
	}

	out := make([]float64, len(values))
	if kind == models.Phase {
		copy(out, values)
	} else {
		for i, v := range values {
			out[i] = math.Log1p(math.Abs(v))
		}
	}

	lo, hi := floats.Min(out), floats.Max(out)
	if hi == lo {
		return nil, fmt.Errorf("%s (min=max=%g): %w", kind, hi, ErrDegenerateComponent)
	}

	span := hi - lo
	for i, v := range out {
		out[i] = math.Floor(255 * ((v - lo) / span))
	}
	return out, nil
}

// Preview returns the display image of one component of the spectrum.
func Preview(s *Spectrum, kind models.Component) (*models.Image, error) {
	pix, err := Normalize(s.Component(kind), kind)
	if err != nil {
		return nil, err
	}
	return &models.Image{Pix: pix, Width: s.Width, Height: s.Height}, nil
}
