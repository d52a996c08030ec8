// Package imagecolor extracts the dominant colors of a single image with
// K-Means clustering in LAB space and reduces them to per-image statistics.
package imagecolor

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/nfnt/resize"
)

// DefaultClusters is the number of dominant colors extracted per image.
const DefaultClusters = 6

// DefaultResize bounds the longest image dimension before clustering.
const DefaultResize = 256

// Extraction holds the cluster centroids of one image and the share of
// pixels assigned to each. Proportions always sum to 1.
type Extraction struct {
	Colors      []Lab
	Proportions []float64
}

// Stats are proportion-weighted summary measures of an Extraction.
type Stats struct {
	MeanLightness  float64
	MeanA          float64
	MeanB          float64
	MeanSaturation float64
	Diversity      float64
}

func Load(pathname string) (image.Image, error) {
	f, err := os.Open(pathname)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", pathname, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", pathname, err)
	}

	return img, nil
}

// Thumbnail downscales img so neither dimension exceeds target, preserving
// aspect ratio. Images already small enough are returned unchanged.
func Thumbnail(img image.Image, target int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= target && bounds.Dy() <= target {
		return img
	}
	return resize.Thumbnail(uint(target), uint(target), img, resize.Lanczos3)
}

// Extract clusters the image pixels into k dominant colors. Clustering runs
// in LAB space without cropping; the default masks drop near-white and
// near-black pixels so backdrops and shadows don't swamp the garment colors.
func Extract(img image.Image, k int) (*Extraction, error) {
	if k < 1 {
		k = DefaultClusters
	}

	items, err := prominentcolor.KmeansWithAll(k, img,
		prominentcolor.ArgumentNoCropping|prominentcolor.ArgumentLAB,
		uint(DefaultResize), prominentcolor.GetDefaultMasks())
	if err != nil {
		return nil, fmt.Errorf("unable to extract dominant colors: %w", err)
	}

	if len(items) == 0 {
		return nil, errors.New("no colors found")
	}

	total := 0
	for _, item := range items {
		total += item.Cnt
	}
	if total == 0 {
		return nil, errors.New("no pixels were clustered")
	}

	ext := &Extraction{
		Colors:      make([]Lab, 0, len(items)),
		Proportions: make([]float64, 0, len(items)),
	}
	for _, item := range items {
		if item.Cnt == 0 {
			continue
		}
		ext.Colors = append(ext.Colors, FromRGB8(
			uint8(item.Color.R), uint8(item.Color.G), uint8(item.Color.B)))
		ext.Proportions = append(ext.Proportions, float64(item.Cnt)/float64(total))
	}

	return ext, nil
}

// ExtractFile loads, downscales and clusters one image file.
func ExtractFile(pathname string, k, resizeTo int) (*Extraction, error) {
	img, err := Load(pathname)
	if err != nil {
		return nil, err
	}

	if resizeTo < 1 {
		resizeTo = DefaultResize
	}

	return Extract(Thumbnail(img, resizeTo), k)
}

// Stats reduces the extraction to proportion-weighted means plus a diversity
// index (the mean per-channel standard deviation of the centroids).
func (e *Extraction) Stats() Stats {
	var s Stats
	for i, c := range e.Colors {
		w := e.Proportions[i]
		s.MeanLightness += w * c.L
		s.MeanA += w * c.A
		s.MeanB += w * c.B
		s.MeanSaturation += w * c.Chroma()
	}

	s.Diversity = e.diversity()
	return s
}

// MeanColor is the proportion-weighted centroid of all extracted colors.
func (e *Extraction) MeanColor() Lab {
	var m Lab
	for i, c := range e.Colors {
		w := e.Proportions[i]
		m.L += w * c.L
		m.A += w * c.A
		m.B += w * c.B
	}
	return m
}

func (e *Extraction) diversity() float64 {
	n := float64(len(e.Colors))
	if n < 2 {
		return 0
	}

	var meanL, meanA, meanB float64
	for _, c := range e.Colors {
		meanL += c.L / n
		meanA += c.A / n
		meanB += c.B / n
	}

	var varL, varA, varB float64
	for _, c := range e.Colors {
		varL += (c.L - meanL) * (c.L - meanL) / n
		varA += (c.A - meanA) * (c.A - meanA) / n
		varB += (c.B - meanB) * (c.B - meanB) / n
	}

	return (math.Sqrt(varL) + math.Sqrt(varA) + math.Sqrt(varB)) / 3
}
