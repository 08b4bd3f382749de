package metrics

import (
	"math"
	"testing"

	"ftmixer/internal/models"
)

func ramp(width, height int, offset float64) *models.Image {
	img := models.NewImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = math.Mod(float64(i*3), 200) + offset
	}
	return img
}

func TestCompareIdentical(t *testing.T) {
	img := ramp(16, 16, 0)
	report, err := Compare(img, img.Clone())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if report.RMSE != 0 {
		t.Errorf("Expected RMSE 0, got %f", report.RMSE)
	}
	if !math.IsInf(report.PSNR, 1) {
		t.Errorf("Expected +Inf PSNR, got %f", report.PSNR)
	}
	if math.Abs(report.SSIM-1) > 1e-9 {
		t.Errorf("Expected SSIM 1, got %f", report.SSIM)
	}
	if report.EntropyDiff != 0 {
		t.Errorf("Expected entropy difference 0, got %f", report.EntropyDiff)
	}
	if !math.IsInf(report.MI, 1) && report.MI < 5 {
		t.Errorf("Expected large mutual information, got %f", report.MI)
	}
}

func TestCompareOffset(t *testing.T) {
	ref := ramp(16, 16, 0)
	cand := ramp(16, 16, 10)

	report, err := Compare(ref, cand)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if math.Abs(report.RMSE-10) > 1e-9 {
		t.Errorf("Expected RMSE 10, got %f", report.RMSE)
	}
	wantPSNR := 20 * math.Log10(255.0/10)
	if math.Abs(report.PSNR-wantPSNR) > 1e-9 {
		t.Errorf("Expected PSNR %f, got %f", wantPSNR, report.PSNR)
	}
	if report.SSIM >= 1 || report.SSIM <= 0 {
		t.Errorf("Expected SSIM in (0, 1), got %f", report.SSIM)
	}
}

func TestCompareErrors(t *testing.T) {
	if _, err := Compare(ramp(4, 4, 0), ramp(4, 5, 0)); err == nil {
		t.Error("Expected error for size mismatch")
	}
	if _, err := Compare(nil, ramp(4, 4, 0)); err == nil {
		t.Error("Expected error for empty reference")
	}
}

func TestSummarize(t *testing.T) {
	uniform := models.NewUniformImage(8, 8, 42)
	s := Summarize(uniform)
	if s.Mean != 42 || s.StdDev != 0 || s.Min != 42 || s.Max != 42 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.Entropy != 0 {
		t.Errorf("Expected entropy 0, got %f", s.Entropy)
	}

	split := &models.Image{Pix: []float64{0, 0, 255, 255}, Width: 2, Height: 2}
	if e := Summarize(split).Entropy; math.Abs(e-1) > 1e-12 {
		t.Errorf("Expected entropy 1 bit, got %f", e)
	}

	if (Summarize(nil) != Summary{}) {
		t.Error("Expected zero summary for nil image")
	}
}
