package faceobscuring

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// pixelationDivisor is the number of blocks along the longer image side.
const pixelationDivisor = 10

// BlockSize returns the pixelation block side for an image of the given size.
func BlockSize(width, height int) float64 {
	return float64(max(width, height)) / pixelationDivisor
}

// Pixelate replaces each block of side BlockSize with a single color.
func Pixelate(img image.Image) (*image.NRGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.Wrap(ErrInvalidImage, "pixelate")
	}
	b := img.Bounds()
	return PixelateScale(img, BlockSize(b.Dx(), b.Dy()))
}

// PixelateScale pixelates img with blocks of side scale. The scale may be
// fractional; block edges fall at multiples of it and the last row and column
// of blocks may be partial. Every pixel takes the value of the source pixel at
// its block's center, kept inside the block, so pixelating twice with the same
// scale changes nothing.
func PixelateScale(img image.Image, scale float64) (*image.NRGBA, error) {
	return pixelate(img, scale, 1)
}

func pixelate(img image.Image, scale float64, workers int) (*image.NRGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.Wrap(ErrInvalidImage, "pixelate")
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, errors.Wrapf(ErrFilterConstruction, "pixelation scale %v", scale)
	}

	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	sampleX := axisSamples(w, scale)
	sampleY := axisSamples(h, scale)

	parallelRows(h, workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			sy := sampleY[y]
			srow := src.Pix[sy*src.Stride : sy*src.Stride+w*4]
			drow := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
			for x, sx := range sampleX {
				copy(drow[x*4:x*4+4], srow[sx*4:sx*4+4])
			}
		}
	})
	return dst, nil
}

// axisSamples maps every coordinate in [0, n) to the coordinate sampled for
// its block: the block center, kept inside the block's own pixels.
func axisSamples(n int, scale float64) []int {
	samples := make([]int, n)
	for first := 0; first < n; {
		block := math.Floor(float64(first) / scale)
		last := first
		for last+1 < n && math.Floor(float64(last+1)/scale) == block {
			last++
		}
		s := int(math.Floor((block + 0.5) * scale))
		s = min(max(s, first), last)
		for p := first; p <= last; p++ {
			samples[p] = s
		}
		first = last + 1
	}
	return samples
}
