package fourier

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// fft2D performs an in-place 2D Fast Fourier Transform on row-major data.
// Rows are transformed first, then columns. Gonum's complex FFT accepts any
// length, so odd dimensions need no padding.
//
// Parameters:
//   - data: complex samples in row-major order, len(data) == width*height
//   - width, height: dimensions of the array
//   - inverse: when true the inverse transform is computed and scaled by
//     1/(width*height)
func fft2D(data []complex128, width, height int, inverse bool) {
	rowFFT := fourier.NewCmplxFFT(width)
	colFFT := fourier.NewCmplxFFT(height)

	// Temporary storage for a single row
	row := make([]complex128, width)
	for y := 0; y < height; y++ {
		copy(row, data[y*width:(y+1)*width])
		if inverse {
			rowFFT.Sequence(row, row)
		} else {
			rowFFT.Coefficients(row, row)
		}
		copy(data[y*width:(y+1)*width], row)
	}

	// Temporary storage for a single column
	col := make([]complex128, height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			col[y] = data[y*width+x]
		}
		if inverse {
			colFFT.Sequence(col, col)
		} else {
			colFFT.Coefficients(col, col)
		}
		for y := 0; y < height; y++ {
			data[y*width+x] = col[y]
		}
	}

	if inverse {
		// Gonum leaves the inverse unnormalized
		scale := complex(1/float64(width*height), 0)
		for i := range data {
			data[i] *= scale
		}
	}
}

// Shift moves the zero-frequency term from index (0,0) to (width/2, height/2).
// It matches numpy's fftshift for both even and odd dimensions.
func Shift(data []complex128, width, height int) []complex128 {
	out := make([]complex128, len(data))
	for y := 0; y < height; y++ {
		sy := (y + height/2) % height
		for x := 0; x < width; x++ {
			sx := (x + width/2) % width
			out[sy*width+sx] = data[y*width+x]
		}
	}
	return out
}

// Unshift undoes Shift, moving the centered zero-frequency term back to (0,0).
func Unshift(data []complex128, width, height int) []complex128 {
	out := make([]complex128, len(data))
	for y := 0; y < height; y++ {
		sy := (y + height/2) % height
		for x := 0; x < width; x++ {
			sx := (x + width/2) % width
			out[y*width+x] = data[sy*width+sx]
		}
	}
	return out
}
