// Package metrics compares mixed outputs against their source images.
package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"ftmixer/internal/models"
)

// peak is the largest representable sample value
const peak = 255.0

// Report holds the similarity metrics between a reference and a candidate.
type Report struct {
	// RMSE is the root mean square error in intensity levels. Lower is better.
	RMSE float64

	// PSNR is the peak signal-to-noise ratio in dB. +Inf for identical images.
	PSNR float64

	// SSIM is the global structural similarity index, 1 for identical images.
	SSIM float64

	// MI approximates the mutual information from the correlation of the
	// two images under a Gaussian assumption.
	MI float64

	// EntropyDiff is the absolute difference of the Shannon entropies.
	EntropyDiff float64
}

// Summary holds descriptive statistics of a single image.
type Summary struct {
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
	Entropy float64
}

// Compare computes a Report for two images of the same size.
func Compare(reference, candidate *models.Image) (Report, error) {
	if reference.Empty() || candidate.Empty() {
		return Report{}, fmt.Errorf("cannot compare empty images")
	}
	if !reference.SameSize(candidate) {
		return Report{}, fmt.Errorf("size mismatch: %dx%d vs %dx%d",
			reference.Width, reference.Height, candidate.Width, candidate.Height)
	}

	rmse := calculateRMSE(reference.Pix, candidate.Pix)
	return Report{
		RMSE:        rmse,
		PSNR:        calculatePSNR(rmse),
		SSIM:        calculateSSIM(reference.Pix, candidate.Pix),
		MI:          calculateMutualInformation(reference.Pix, candidate.Pix),
		EntropyDiff: math.Abs(calculateEntropy(reference.Pix) - calculateEntropy(candidate.Pix)),
	}, nil
}

// Summarize returns descriptive statistics for img.
func Summarize(img *models.Image) Summary {
	if img.Empty() {
		return Summary{}
	}
	mean, std := stat.MeanStdDev(img.Pix, nil)
	return Summary{
		Mean:    mean,
		StdDev:  std,
		Min:     floats.Min(img.Pix),
		Max:     floats.Max(img.Pix),
		Entropy: calculateEntropy(img.Pix),
	}
}

func calculateRMSE(original, reconstructed []float64) float64 {
	return floats.Distance(original, reconstructed, 2) / math.Sqrt(float64(len(original)))
}

func calculatePSNR(rmse float64) float64 {
	if rmse == 0 {
		return math.Inf(1)
	}
	return 20 * math.Log10(peak/rmse)
}

// calculateSSIM computes a single-window SSIM over the whole image.
func calculateSSIM(original, reconstructed []float64) float64 {
	const k1, k2 = 0.01, 0.03
	c1 := (k1 * peak) * (k1 * peak)
	c2 := (k2 * peak) * (k2 * peak)

	muX := stat.Mean(original, nil)
	muY := stat.Mean(reconstructed, nil)

	var sigmaX, sigmaY, sigmaXY float64
	if len(original) > 1 {
		sigmaX = stat.Variance(original, nil)
		sigmaY = stat.Variance(reconstructed, nil)
		sigmaXY = stat.Covariance(original, reconstructed, nil)
	}

	num := (2*muX*muY + c1) * (2*sigmaXY + c2)
	den := (muX*muX + muY*muY + c1) * (sigmaX + sigmaY + c2)
	return num / den
}

// calculateMutualInformation uses MI = -0.5*log(1-rho^2), which holds for
// jointly Gaussian variables. Perfectly correlated inputs return +Inf.
func calculateMutualInformation(original, reconstructed []float64) float64 {
	if len(original) < 2 {
		return 0
	}
	if stat.Variance(original, nil) == 0 || stat.Variance(reconstructed, nil) == 0 {
		return 0
	}
	rho := stat.Correlation(original, reconstructed, nil)
	if 1-rho*rho <= 0 {
		return math.Inf(1)
	}
	return -0.5 * math.Log(1-rho*rho)
}

// calculateEntropy computes the Shannon entropy in bits over the 256
// intensity levels.
func calculateEntropy(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	var hist [256]float64
	for _, v := range data {
		hist[int(math.Round(models.Clamp(v)))]++
	}

	entropy := 0.0
	n := float64(len(data))
	for _, count := range hist {
		if count > 0 {
			p := count / n
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}
