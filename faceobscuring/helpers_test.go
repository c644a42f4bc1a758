package faceobscuring

import (
	"image"
	"image/color"
)

// gradientImage returns an opaque image whose pixels are mostly distinct.
func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 7),
				G: uint8(y * 5),
				B: uint8(x*3 + y*11),
				A: 255,
			})
		}
	}
	return img
}

func fixedDetector(regions ...Region) Detector {
	return DetectorFunc(func(image.Image) ([]Region, error) {
		return regions, nil
	})
}

func sameNRGBA(a, b *image.NRGBA) bool {
	if a.Bounds().Size() != b.Bounds().Size() {
		return false
	}
	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if a.NRGBAAt(a.Rect.Min.X+x, a.Rect.Min.Y+y) != b.NRGBAAt(b.Rect.Min.X+x, b.Rect.Min.Y+y) {
				return false
			}
		}
	}
	return true
}
