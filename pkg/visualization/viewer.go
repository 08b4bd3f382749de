package visualization

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"ftmixer/internal/models"
	"ftmixer/pkg/codec"
	"ftmixer/pkg/region"
)

// PreviewSource provides display-normalized component images per slot.
// *registry.Registry satisfies it.
type PreviewSource interface {
	Preview(slot int, kind models.Component) (*models.Image, error)
}

// PreviewResult records the outcome of writing one component preview
type PreviewResult struct {
	Component models.Component

	// Path is the written file, empty when Err is set
	Path string

	Err error
}

// Viewer renders mixer images and component previews and writes them to disk.
type Viewer struct {
	// region is outlined on component previews when overlay is enabled
	region  models.Region
	overlay bool

	// quality is the JPEG quality used when saving
	quality int
}

// NewViewer creates a viewer that outlines r on component previews when
// overlay is true.
func NewViewer(r models.Region, overlay bool, quality int) *Viewer {
	return &Viewer{
		region:  r,
		overlay: overlay,
		quality: quality,
	}
}

// Render converts an image to an 8-bit grayscale image.
func (v *Viewer) Render(img *models.Image) image.Image {
	return codec.ToGray(img)
}

// RenderPreview converts a component preview, outlining the active region in
// translucent green when the overlay is enabled and a region is selected.
func (v *Viewer) RenderPreview(img *models.Image) image.Image {
	gray := codec.ToGray(img)
	if !v.overlay || v.region.Kind == models.Whole {
		return gray
	}

	rect := region.Rect(img.Width, img.Height, v.region.Percent)
	if rect.Empty() {
		return gray
	}

	dc := gg.NewContextForImage(gray)
	x, y := float64(rect.Min.X), float64(rect.Min.Y)
	w, h := float64(rect.Dx()), float64(rect.Dy())

	dc.DrawRectangle(x, y, w, h)
	dc.SetRGBA(0, 1, 0, 0.2)
	dc.FillPreserve()
	dc.SetRGB(0, 1, 0)
	dc.SetLineWidth(2)
	dc.Stroke()

	return dc.Image()
}

// Save writes img to filename; the format follows the extension.
func (v *Viewer) Save(img image.Image, filename string) error {
	return codec.SaveImage(filename, img, v.quality)
}

// SaveImage renders and writes img to filename.
func (v *Viewer) SaveImage(img *models.Image, filename string) error {
	return v.Save(v.Render(img), filename)
}

// SavePreviewSet writes one PNG per requested component of the slot into
// outputDir. A component that cannot be previewed (for example a constant
// one) is reported in its PreviewResult and does not stop the others.
// The returned error is only set when the directory cannot be created.
func (v *Viewer) SavePreviewSet(src PreviewSource, slot int, kinds []models.Component, outputDir string) ([]PreviewResult, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating preview directory: %w", err)
	}
	if len(kinds) == 0 {
		kinds = models.Components
	}

	results := make([]PreviewResult, 0, len(kinds))
	for _, kind := range kinds {
		res := PreviewResult{Component: kind}

		img, err := src.Preview(slot, kind)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slot%d_%s.png", slot+1, kind))
		if err := v.Save(v.RenderPreview(img), filename); err != nil {
			res.Err = err
		} else {
			res.Path = filename
		}
		results = append(results, res)
	}
	return results, nil
}

// Failed returns the joined errors of all failed previews, or nil.
func Failed(results []PreviewResult) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Component, r.Err))
		}
	}
	return errors.Join(errs...)
}
