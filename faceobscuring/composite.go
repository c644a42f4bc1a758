package faceobscuring

import (
	"image"

	"github.com/pkg/errors"
)

// Blend shows foreground where mask is set and background elsewhere:
// out = fg*m + bg*(1-m) for every channel, alpha included.
func Blend(background, foreground *image.NRGBA, mask *image.Alpha) (*image.NRGBA, error) {
	return blend(background, foreground, mask, 1)
}

func blend(background, foreground *image.NRGBA, mask *image.Alpha, workers int) (*image.NRGBA, error) {
	if background == nil || foreground == nil || mask == nil {
		return nil, errors.Wrap(ErrInvalidImage, "blend: missing input")
	}
	size := background.Bounds().Size()
	if foreground.Bounds().Size() != size || mask.Bounds().Size() != size {
		return nil, errors.Wrapf(ErrDimensionMismatch, "background %v, foreground %v, mask %v",
			size, foreground.Bounds().Size(), mask.Bounds().Size())
	}

	w, h := size.X, size.Y
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	bgMin, fgMin, mMin := background.Rect.Min, foreground.Rect.Min, mask.Rect.Min

	parallelRows(h, workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			bi := background.PixOffset(bgMin.X, bgMin.Y+y)
			fi := foreground.PixOffset(fgMin.X, fgMin.Y+y)
			mi := mask.PixOffset(mMin.X, mMin.Y+y)
			oi := out.PixOffset(0, y)
			for x := 0; x < w; x++ {
				m := uint32(mask.Pix[mi+x])
				for c := 0; c < 4; c++ {
					bg := uint32(background.Pix[bi+x*4+c])
					fg := uint32(foreground.Pix[fi+x*4+c])
					out.Pix[oi+x*4+c] = uint8((fg*m + bg*(255-m) + 127) / 255)
				}
			}
		}
	})
	return out, nil
}
