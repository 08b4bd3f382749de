// Package region builds the rectangular masks that restrict a mix to the low
// (inner) or high (outer) frequencies of a centered spectrum.
package region

import (
	"image"
	"math"

	"ftmixer/internal/models"
)

// Mask marks which positions of a centered spectrum take part in a mix.
// Positions where the mask is false are zeroed when the mask is applied.
type Mask struct {
	// Keep holds one flag per coefficient in row-major order
	Keep []bool

	Width  int
	Height int

	// rect is the centered rectangle the mask was built from
	rect image.Rectangle
}

// Rect returns the centered rectangle spanned by sizePercent. The half-width
// is floor(p/100 * width/2) and the rectangle covers [cx-rx, cx+rx) with
// integer centers cx = width/2 and cy = height/2.
func Rect(width, height int, sizePercent float64) image.Rectangle {
	p := math.Max(0, math.Min(100, sizePercent))
	rx := int(math.Floor(p / 100 * float64(width) / 2))
	ry := int(math.Floor(p / 100 * float64(height) / 2))
	cx, cy := width/2, height/2
	return image.Rect(cx-rx, cy-ry, cx+rx, cy+ry)
}

// BuildMask returns the mask for kind over a width x height spectrum.
// Inner keeps only the centered rectangle, Outer keeps everything except it,
// and Whole keeps every position.
func BuildMask(width, height int, sizePercent float64, kind models.RegionKind) *Mask {
	m := &Mask{
		Keep:   make([]bool, width*height),
		Width:  width,
		Height: height,
		rect:   Rect(width, height, sizePercent),
	}
	if kind == models.Whole {
		m.rect = image.Rect(0, 0, width, height)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			inside := image.Pt(x, y).In(m.rect)
			switch kind {
			case models.Inner, models.Whole:
				m.Keep[y*width+x] = inside
			case models.Outer:
				m.Keep[y*width+x] = !inside
			}
		}
	}
	return m
}

// ForRegion is BuildMask with the kind and size taken from r.
func ForRegion(width, height int, r models.Region) *Mask {
	return BuildMask(width, height, r.Percent, r.Kind)
}

// Apply returns a copy of values with every masked-out position set to zero.
// The input slice is left untouched.
func (m *Mask) Apply(values []complex128) []complex128 {
	out := make([]complex128, len(values))
	for i, v := range values {
		if m.Keep[i] {
			out[i] = v
		}
	}
	return out
}

// Count returns the number of kept positions
func (m *Mask) Count() int {
	n := 0
	for _, k := range m.Keep {
		if k {
			n++
		}
	}
	return n
}

// Bounds returns the centered rectangle the mask was built from. For a
// whole-spectrum mask it spans the full array.
func (m *Mask) Bounds() image.Rectangle {
	return m.rect
}
