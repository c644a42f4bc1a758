package faceobscuring

import (
	"image"
	"os"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
	"github.com/pkg/errors"
)

// Detector finds faces in an image. Implementations must not modify img.
type Detector interface {
	Detect(img image.Image) ([]Region, error)
}

// DetectorFunc adapts a plain function to the Detector interface.
type DetectorFunc func(img image.Image) ([]Region, error)

// Detect calls f(img).
func (f DetectorFunc) Detect(img image.Image) ([]Region, error) {
	return f(img)
}

// Locate runs d over img. A zero sized image yields no regions without
// consulting the detector. Regions with a non-positive size are dropped.
func Locate(d Detector, img image.Image) ([]Region, error) {
	if d == nil {
		return nil, errors.Wrap(ErrDetectionUnavailable, "no detector configured")
	}
	if img == nil || img.Bounds().Empty() {
		return []Region{}, nil
	}

	found, err := d.Detect(img)
	if err != nil {
		if errors.Is(err, ErrDetectionUnavailable) {
			return nil, err
		}
		return nil, errors.Wrapf(ErrDetectionUnavailable, "detect: %v", err)
	}

	regions := make([]Region, 0, len(found))
	for _, r := range found {
		if r.Valid() {
			regions = append(regions, r)
		}
	}
	return regions, nil
}

// PigoDetector detects faces with a pigo cascade classifier.
type PigoDetector struct {
	fd         *Config
	classifier *pigo.Pigo
}

// LoadPigoDetector reads the cascade file and unpacks it.
func LoadPigoDetector(cascadeFile string, config *Config) (*PigoDetector, error) {
	cascade, err := os.ReadFile(cascadeFile)
	if err != nil {
		return nil, errors.Wrapf(ErrDetectionUnavailable, "can not open cascade file %s: %v", cascadeFile, err)
	}
	return NewPigoDetector(cascade, config)
}

// NewPigoDetector unpacks a binary cascade.
func NewPigoDetector(cascade []byte, config *Config) (*PigoDetector, error) {
	if len(cascade) == 0 {
		return nil, errors.Wrap(ErrDetectionUnavailable, "empty cascade")
	}

	var p = pigo.NewPigo()
	// Unpack the binary file. This will return the number of cascade trees,
	// the tree depth, the threshold and the prediction from tree's leaf nodes.
	classifier, err := unpack(p, cascade)
	if err != nil {
		return nil, errors.Wrapf(ErrDetectionUnavailable, "unpack cascade: %v", err)
	}

	return &PigoDetector{
		fd:         withDefaults(config),
		classifier: classifier,
	}, nil
}

// unpack guards against malformed cascades, which pigo reports by panicking
// on out of range reads rather than by error.
func unpack(p *pigo.Pigo, cascade []byte) (classifier *pigo.Pigo, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("malformed cascade: %v", r)
		}
	}()
	return p.Unpack(cascade)
}

// Detect implements Detector.
func (d *PigoDetector) Detect(img image.Image) ([]Region, error) {
	if d == nil || d.classifier == nil {
		return nil, errors.Wrap(ErrDetectionUnavailable, "pigo classifier not initialized")
	}

	src := imaging.Clone(img)
	pixels := pigo.RgbToGrayscale(src)
	cols, rows := src.Bounds().Max.X, src.Bounds().Max.Y

	cParams := pigo.CascadeParams{
		MinSize:     d.fd.MinSize,
		MaxSize:     d.fd.MaxSize,
		ShiftFactor: d.fd.ShiftFactor,
		ScaleFactor: d.fd.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	// Run the classifier over the obtained leaf nodes and return the detection results.
	// The result contains quadruplets representing the row, column, scale and detection score.
	faces := d.classifier.RunCascade(cParams, d.fd.Angle)

	// Calculate the intersection over union (IoU) of two clusters.
	faces = d.classifier.ClusterDetections(faces, d.fd.IouThreshold)

	return detectionsToRegions(faces, d.fd.QualityThreshold), nil
}

// detectionsToRegions turns pigo's (row, col, scale) triples into square boxes
// centered on (col, row) with side scale, skipping low scores.
func detectionsToRegions(faces []pigo.Detection, minQ float32) []Region {
	regions := make([]Region, 0, len(faces))
	for _, face := range faces {
		if face.Q < minQ {
			continue
		}
		side := float64(face.Scale)
		regions = append(regions, Region{
			X:      float64(face.Col) - side/2,
			Y:      float64(face.Row) - side/2,
			Width:  side,
			Height: side,
			Q:      face.Q,
		})
	}
	return regions
}
