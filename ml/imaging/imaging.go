// Package imaging decodes crop photos and reduces them to the scalar
// statistics the disease scorer consumes.
package imaging

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// AnalysisSize is the square analysis resolution every image is scaled to
// before feature extraction.
const AnalysisSize = 224

// Features are the scalar statistics extracted from a crop photo.
type Features struct {
	// Brightness is the mean pixel intensity across all channels (0-255).
	Brightness float64
	// StdDev is the standard deviation of all pixel intensities.
	StdDev float64
	// GreenRatio is mean(G) / (Brightness + 1).
	GreenRatio float64
	// BrownScore is (mean(R) + mean(G)/2) / (mean(G) + mean(B) + 1).
	BrownScore float64
}

// Decode reads one image in any registered format (JPEG, PNG, GIF, BMP).
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	_ = format
	return img, nil
}

// Open decodes the image stored at path.
func Open(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Extract scales img to the analysis resolution and computes its features.
// Grayscale input is not an error: the color ratios degrade to a neutral 0.5.
func Extract(img image.Image) Features {
	grayscale := false
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		grayscale = true
	}

	scaled := image.NewRGBA(image.Rect(0, 0, AnalysisSize, AnalysisSize))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	var sum, sumSq float64
	var sumR, sumG, sumB float64
	for y := 0; y < AnalysisSize; y++ {
		for x := 0; x < AnalysisSize; x++ {
			r, g, b, _ := scaled.At(x, y).RGBA()
			rf := float64(r >> 8)
			gf := float64(g >> 8)
			bf := float64(b >> 8)

			sum += rf + gf + bf
			sumSq += rf*rf + gf*gf + bf*bf
			sumR += rf
			sumG += gf
			sumB += bf
		}
	}

	// Statistics run over every channel value, matching a flattened
	// HxWx3 intensity array.
	n := float64(AnalysisSize * AnalysisSize * 3)
	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}

	f := Features{
		Brightness: mean,
		StdDev:     math.Sqrt(variance),
		GreenRatio: 0.5,
		BrownScore: 0.5,
	}

	if !grayscale {
		pixels := float64(AnalysisSize * AnalysisSize)
		meanR := sumR / pixels
		meanG := sumG / pixels
		meanB := sumB / pixels
		f.GreenRatio = meanG / (mean + 1)
		f.BrownScore = (meanR + meanG/2) / (meanG + meanB + 1)
	}

	return f
}
