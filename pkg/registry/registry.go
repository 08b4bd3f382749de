// Package registry owns the mixer state: the four image slots with their
// transforms, per-slot weights and component choices, the global mode and
// region, and the two mix outputs.
//
// Every method either succeeds and updates the state or returns an error and
// leaves the state untouched. A Registry is not safe for concurrent use; it
// is meant to be driven by a single caller such as a UI event loop or a CLI.
package registry

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"ftmixer/internal/models"
	"ftmixer/pkg/codec"
	"ftmixer/pkg/fourier"
	"ftmixer/pkg/mixer"
)

var (
	// ErrDecode is returned by UploadBytes for unreadable input
	ErrDecode = codec.ErrDecode

	// ErrNoData is returned by Mix when no slot holds an image
	ErrNoData = mixer.ErrNoData

	// ErrDegenerateComponent is returned by Preview for constant components
	ErrDegenerateComponent = fourier.ErrDegenerateComponent

	// ErrInvalidChoice is returned when a component is not allowed by the mode
	ErrInvalidChoice = errors.New("component not allowed in current mode")

	// ErrInvalidSlot is returned for slot indexes outside 0-3
	ErrInvalidSlot = errors.New("invalid slot")

	// ErrInvalidOutput is returned for unknown output targets
	ErrInvalidOutput = errors.New("invalid output")

	// ErrInvalidValue is returned for malformed weights, modes or regions
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnavailable is returned when a preview is requested for an empty slot
	ErrUnavailable = errors.New("slot is empty")
)

// slot holds everything the registry knows about one input image
type slot struct {
	// original is the image as uploaded, kept so resampling always starts
	// from the full-resolution source
	original *models.Image

	// image is original resampled to the common size
	image *models.Image

	// spectrum is the centered transform of image
	spectrum *fourier.Spectrum

	weight float64
	choice models.Component
}

func (s *slot) populated() bool {
	return s.original != nil
}

// Registry is the single owner of all mixer state.
type Registry struct {
	slots   [models.NumSlots]slot
	outputs [models.NumOutputs]*models.Image
	mode    models.Mode
	region  models.Region

	filter imaging.ResampleFilter
	logger *log.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the logger used for debug output
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithFilter sets the resampling filter used to bring images to the common
// size. The default is Lanczos.
func WithFilter(f imaging.ResampleFilter) Option {
	return func(r *Registry) {
		r.filter = f
	}
}

// New creates an empty registry in Magnitude/Phase mode with the whole
// spectrum selected.
func New(opts ...Option) *Registry {
	r := &Registry{
		filter: imaging.Lanczos,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Reset()
	return r
}

// Reset clears every slot and output and restores the default weights,
// choices, mode and region.
func (r *Registry) Reset() {
	r.mode = models.MagPhase
	r.region = models.DefaultRegion()
	for i := range r.slots {
		r.slots[i] = slot{choice: r.mode.Components()[0]}
	}
	for i := range r.outputs {
		r.outputs[i] = nil
	}
	r.logger.Debug("registry reset")
}

func checkSlot(index int) error {
	if index < 0 || index >= models.NumSlots {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidSlot, index, models.NumSlots-1)
	}
	return nil
}

// Upload stores img in the slot, resamples every populated slot to the
// smallest width and height among them and recomputes their transforms.
func (r *Registry) Upload(index int, img *models.Image) error {
	if err := checkSlot(index); err != nil {
		return err
	}
	if img.Empty() {
		return fmt.Errorf("slot %d: %w: empty image", index, ErrInvalidValue)
	}

	start := time.Now()

	// Work on a copy so a failure leaves the registry untouched
	slots := r.slots
	slots[index].original = img.Clone()

	width, height := commonSize(slots[:])
	for i := range slots {
		s := &slots[i]
		if !s.populated() {
			continue
		}
		s.image = codec.Resample(s.original, width, height, r.filter)
		s.spectrum = fourier.Transform(s.image)
	}

	r.slots = slots
	r.logger.Debug("image uploaded",
		"slot", index,
		"source", fmt.Sprintf("%dx%d", img.Width, img.Height),
		"common", fmt.Sprintf("%dx%d", width, height),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// UploadBytes decodes an encoded image and uploads it into the slot. A decode
// failure returns an error wrapping ErrDecode and changes nothing.
func (r *Registry) UploadBytes(index int, raw []byte) error {
	if err := checkSlot(index); err != nil {
		return err
	}
	img, err := codec.DecodeBytes(raw)
	if err != nil {
		return fmt.Errorf("slot %d: %w", index, err)
	}
	return r.Upload(index, img)
}

// commonSize returns the smallest width and height among populated slots.
func commonSize(slots []slot) (int, int) {
	width, height := math.MaxInt, math.MaxInt
	for _, s := range slots {
		if !s.populated() {
			continue
		}
		width = min(width, s.original.Width)
		height = min(height, s.original.Height)
	}
	if width == math.MaxInt {
		return 0, 0
	}
	return width, height
}

// SetWeight sets the slot's mixing weight, clamped to 0-1.
func (r *Registry) SetWeight(index int, value float64) error {
	if err := checkSlot(index); err != nil {
		return err
	}
	if math.IsNaN(value) {
		return fmt.Errorf("slot %d: %w: weight is NaN", index, ErrInvalidValue)
	}
	r.slots[index].weight = math.Max(0, math.Min(1, value))
	return nil
}

// SetChoice selects the component the slot contributes. Components not
// permitted by the current mode are rejected and the previous choice kept.
func (r *Registry) SetChoice(index int, kind models.Component) error {
	if err := checkSlot(index); err != nil {
		return err
	}
	if !r.mode.Allows(kind) {
		return fmt.Errorf("slot %d: %s in %s mode: %w", index, kind, r.mode, ErrInvalidChoice)
	}
	r.slots[index].choice = kind
	return nil
}

// SetMode switches the mixing mode and resets every slot's choice to the
// first component the mode permits.
func (r *Registry) SetMode(mode models.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidValue, mode)
	}
	r.mode = mode
	for i := range r.slots {
		r.slots[i].choice = mode.Components()[0]
	}
	return nil
}

// SetRegion sets the global region. The percentage is clamped to 0-100.
func (r *Registry) SetRegion(kind models.RegionKind, percent float64) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidValue, kind)
	}
	if math.IsNaN(percent) {
		return fmt.Errorf("%w: region size is NaN", ErrInvalidValue)
	}
	r.region = models.Region{Kind: kind, Percent: math.Max(0, math.Min(100, percent))}
	return nil
}

// Mix recombines the current slots and stores the result in target. The other
// output is never touched; on error neither is.
func (r *Registry) Mix(target models.Output) (*models.Image, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOutput, target)
	}

	start := time.Now()
	inputs := make([]mixer.Slot, len(r.slots))
	for i, s := range r.slots {
		inputs[i] = mixer.Slot{Spectrum: s.spectrum, Weight: s.weight, Choice: s.choice}
	}

	out, err := mixer.Mix(inputs, mixer.Params{Mode: r.mode, Region: r.region})
	if err != nil {
		return nil, err
	}

	r.outputs[target] = out
	r.logger.Debug("mix complete",
		"target", target,
		"mode", r.mode,
		"region", r.region,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return out.Clone(), nil
}

// Preview returns the display-normalized component of the slot's transform.
func (r *Registry) Preview(index int, kind models.Component) (*models.Image, error) {
	if err := checkSlot(index); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidValue, kind)
	}
	s := r.slots[index]
	if s.spectrum == nil {
		return nil, fmt.Errorf("slot %d: %w", index, ErrUnavailable)
	}
	img, err := fourier.Preview(s.spectrum, kind)
	if err != nil {
		return nil, fmt.Errorf("slot %d: %w", index, err)
	}
	return img, nil
}
