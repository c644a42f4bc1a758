package faceobscuring

import "github.com/pkg/errors"

var (
	// ErrInvalidImage is returned for nil or empty images.
	ErrInvalidImage = errors.New("invalid image")

	// ErrDetectionUnavailable is returned when the face detector can not be
	// built or invoked. It is never reported as "no faces".
	ErrDetectionUnavailable = errors.New("face detection unavailable")

	// ErrDimensionMismatch is returned when blended images differ in size.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrFilterConstruction is returned when a mask, pixelation or blend step
	// can not be set up with the given parameters.
	ErrFilterConstruction = errors.New("filter construction failure")
)
