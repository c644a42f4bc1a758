package faceobscuring

import (
	"image"
	"path/filepath"
	"testing"

	pigo "github.com/esimov/pigo/core"
	"github.com/pkg/errors"
)

func TestLocateEmptyImage(t *testing.T) {
	called := false
	d := DetectorFunc(func(image.Image) ([]Region, error) {
		called = true
		return nil, nil
	})

	regions, err := Locate(d, image.NewNRGBA(image.Rect(0, 0, 0, 10)))
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if len(regions) != 0 {
		t.Errorf("got %d regions, want 0", len(regions))
	}
	if called {
		t.Error("detector called for an empty image")
	}
}

func TestLocateDropsInvalidRegions(t *testing.T) {
	d := fixedDetector(
		Region{X: 1, Y: 1, Width: 10, Height: 10},
		Region{X: 1, Y: 1, Width: 0, Height: 10},
		Region{X: 5, Y: 5, Width: 4, Height: -4},
	)

	regions, err := Locate(d, gradientImage(20, 20))
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
}

func TestLocateDetectorFailure(t *testing.T) {
	d := DetectorFunc(func(image.Image) ([]Region, error) {
		return nil, errors.New("model crashed")
	})

	if _, err := Locate(d, gradientImage(5, 5)); !errors.Is(err, ErrDetectionUnavailable) {
		t.Errorf("err = %v, want ErrDetectionUnavailable", err)
	}
	if _, err := Locate(nil, gradientImage(5, 5)); !errors.Is(err, ErrDetectionUnavailable) {
		t.Errorf("nil detector: err = %v, want ErrDetectionUnavailable", err)
	}
}

func TestPigoDetectorUnavailable(t *testing.T) {
	tests := []struct {
		name string
		load func() (*PigoDetector, error)
	}{
		{"missing file", func() (*PigoDetector, error) {
			return LoadPigoDetector(filepath.Join(t.TempDir(), "facefinder"), nil)
		}},
		{"empty cascade", func() (*PigoDetector, error) {
			return NewPigoDetector(nil, nil)
		}},
		{"truncated cascade", func() (*PigoDetector, error) {
			return NewPigoDetector([]byte{1, 2, 3}, nil)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.load()
			if !errors.Is(err, ErrDetectionUnavailable) {
				t.Errorf("err = %v, want ErrDetectionUnavailable", err)
			}
			if d != nil {
				t.Error("expected no detector")
			}
		})
	}
}

func TestUninitializedPigoDetector(t *testing.T) {
	var d *PigoDetector
	if _, err := d.Detect(gradientImage(5, 5)); !errors.Is(err, ErrDetectionUnavailable) {
		t.Errorf("err = %v, want ErrDetectionUnavailable", err)
	}
}

func TestDetectionsToRegions(t *testing.T) {
	dets := []pigo.Detection{
		{Row: 50, Col: 60, Scale: 20, Q: 9.5},
		{Row: 10, Col: 10, Scale: 8, Q: 1.0},
	}

	regions := detectionsToRegions(dets, 5.0)
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}

	r := regions[0]
	if r.X != 50 || r.Y != 40 || r.Width != 20 || r.Height != 20 || r.Q != 9.5 {
		t.Errorf("region = %+v", r)
	}
	if cx, cy := r.Center(); cx != 60 || cy != 50 {
		t.Errorf("center = (%v, %v), want (60, 50)", cx, cy)
	}
}
