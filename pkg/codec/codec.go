// Package codec converts between encoded image files and the grayscale
// sample arrays used by the mixer. PNG, JPEG, GIF, BMP and TIFF inputs are
// accepted; color inputs are reduced to luma.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"ftmixer/internal/models"
)

// ErrDecode is returned when an input cannot be decoded as an image
var ErrDecode = errors.New("unable to decode image")

// DefaultJPEGQuality is used by Save when no quality is given
const DefaultJPEGQuality = 90

// Decode reads an encoded image from r and converts it to grayscale.
func Decode(r io.Reader) (*models.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty %s image", ErrDecode, format)
	}
	return FromImage(img), nil
}

// DecodeBytes decodes an in-memory encoded image.
func DecodeBytes(raw []byte) (*models.Image, error) {
	return Decode(bytes.NewReader(raw))
}

// Load opens and decodes the image at path.
func Load(path string) (*models.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// FromImage converts any image.Image to grayscale samples using the
// standard luma weights.
func FromImage(img image.Image) *models.Image {
	bounds := img.Bounds()
	out := models.NewImage(bounds.Dx(), bounds.Dy())

	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < out.Height; y++ {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+out.Width]
			for x, v := range row {
				out.Pix[y*out.Width+x] = float64(v)
			}
		}
		return out
	}

	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			out.Pix[y*out.Width+x] = float64(g.Y)
		}
	}
	return out
}

// ToGray converts samples to an 8-bit grayscale image, clipping to 0-255 and
// rounding to the nearest level.
func ToGray(img *models.Image) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.Pix[y*out.Stride+x] = uint8(math.Round(models.Clamp(img.At(x, y))))
		}
	}
	return out
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img *models.Image, format imaging.Format, quality int) error {
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	return imaging.Encode(w, ToGray(img), format, imaging.JPEGQuality(quality))
}

// Save writes img to path, choosing the format from the file extension.
func Save(path string, img *models.Image, quality int) error {
	return SaveImage(path, ToGray(img), quality)
}

// SaveImage writes an already rendered image to path, choosing the format
// from the file extension.
func SaveImage(path string, img image.Image, quality int) error {
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	return nil
}

// Resample scales img to width x height with the given filter.
func Resample(img *models.Image, width, height int, filter imaging.ResampleFilter) *models.Image {
	if img.Width == width && img.Height == height {
		return img.Clone()
	}
	return FromImage(imaging.Resize(ToGray(img), width, height, filter))
}
