package faceobscuring

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

// BuildMask draws one soft edged circle per region on a transparent canvas
// and returns the canvas coverage. Inside Radius() the mask is 255, it falls
// to 0 over the next pixel and stays 0 beyond. Circles are composited
// source-over in slice order, so overlapping faces add up instead of
// replacing each other.
func BuildMask(regions []Region, width, height int) (*image.Alpha, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidImage, "mask size %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	for i, r := range regions {
		if !r.Valid() {
			return nil, errors.Wrapf(ErrFilterConstruction, "region %d: %+v", i, r)
		}
		drawCircle(dc, r)
	}

	canvas := dc.Image().(*image.RGBA)
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := canvas.Pix[y*canvas.Stride : y*canvas.Stride+width*4]
		dst := mask.Pix[y*mask.Stride : y*mask.Stride+width]
		for x := range dst {
			dst[x] = src[x*4+3]
		}
	}
	return mask, nil
}

func drawCircle(dc *gg.Context, r Region) {
	cx, cy := r.Center()
	radius := r.Radius()

	grad := gg.NewRadialGradient(cx, cy, radius, cx, cy, radius+1)
	grad.AddColorStop(0, color.White)
	grad.AddColorStop(1, color.Transparent)
	dc.SetFillStyle(grad)

	// Only the square around the outer circle can be affected. Whole pixel
	// edges keep the rasterizer from partially covering the border.
	x0 := math.Floor(cx - radius - 2)
	y0 := math.Floor(cy - radius - 2)
	x1 := math.Ceil(cx + radius + 2)
	y1 := math.Ceil(cy + radius + 2)
	dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	dc.Fill()
}
