package registry

import (
	"ftmixer/internal/models"
	"ftmixer/pkg/fourier"
)

// Mode returns the active mixing mode
func (r *Registry) Mode() models.Mode {
	return r.mode
}

// Region returns the active region
func (r *Registry) Region() models.Region {
	return r.region
}

// Weight returns the slot's weight, or 0 for an invalid slot
func (r *Registry) Weight(index int) float64 {
	if checkSlot(index) != nil {
		return 0
	}
	return r.slots[index].weight
}

// Choice returns the slot's selected component
func (r *Registry) Choice(index int) models.Component {
	if checkSlot(index) != nil {
		return r.mode.Components()[0]
	}
	return r.slots[index].choice
}

// Populated reports whether the slot holds an image
func (r *Registry) Populated(index int) bool {
	return checkSlot(index) == nil && r.slots[index].populated()
}

// Image returns a copy of the slot's image at the common size, or nil
func (r *Registry) Image(index int) *models.Image {
	if !r.Populated(index) {
		return nil
	}
	return r.slots[index].image.Clone()
}

// Spectrum returns a copy of the slot's centered transform, or nil
func (r *Registry) Spectrum(index int) *fourier.Spectrum {
	if !r.Populated(index) {
		return nil
	}
	return r.slots[index].spectrum.Clone()
}

// Output returns a copy of the last image mixed into target, or nil
func (r *Registry) Output(target models.Output) *models.Image {
	if !target.Valid() {
		return nil
	}
	return r.outputs[target].Clone()
}

// Dimensions returns the common size shared by all populated slots. ok is
// false when no slot is populated.
func (r *Registry) Dimensions() (width, height int, ok bool) {
	width, height = commonSize(r.slots[:])
	return width, height, width > 0
}
