package faceobscuring

import (
	"image"
	"math"
)

// Region is a detected face bounding box in image coordinates.
type Region struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Q      float32 // detection score, zero when the detector has none
}

// RegionFromRect converts an integer rectangle.
func RegionFromRect(r image.Rectangle) Region {
	return Region{
		X:      float64(r.Min.X),
		Y:      float64(r.Min.Y),
		Width:  float64(r.Dx()),
		Height: float64(r.Dy()),
	}
}

// Center returns the geometric center of the box.
func (r Region) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Radius returns the radius of the fully obscured circle.
func (r Region) Radius() float64 {
	return math.Min(r.Width, r.Height) / 1.5
}

// Valid reports whether the box has a positive, finite size.
func (r Region) Valid() bool {
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.Width > 0 && r.Height > 0
}
