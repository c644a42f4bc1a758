package faceobscuring

import (
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// FaceObscuring pixelates every face found in an image.
type FaceObscuring struct {
	fd       *Config
	detector Detector
	log      logrus.FieldLogger
}

// New init. The pigo cascade named by config.CascadeFile is loaded eagerly;
// a missing or broken cascade is reported as ErrDetectionUnavailable.
func New(config *Config) (*FaceObscuring, error) {
	fd := withDefaults(config)

	detector, err := LoadPigoDetector(fd.CascadeFile, fd)
	if err != nil {
		return nil, err
	}
	return NewWithDetector(fd, detector), nil
}

// NewWithDetector uses d in place of the pigo classifier.
func NewWithDetector(config *Config, d Detector) *FaceObscuring {
	fd := withDefaults(config)
	return &FaceObscuring{
		fd:       fd,
		detector: d,
		log:      fd.Logger,
	}
}

// Process returns a copy of img with every detected face pixelated. It either
// returns a fully obscured image or an error, never a partial result.
func (f *FaceObscuring) Process(img image.Image) (*image.NRGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.Wrap(ErrInvalidImage, "process")
	}

	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	var (
		pixelated *image.NRGBA
		mask      *image.Alpha
		g         errgroup.Group
	)

	g.Go(func() error {
		scale := BlockSize(w, h)
		f.log.WithField("scale", scale).Debug("pixelating")

		var err error
		pixelated, err = pixelate(src, scale, f.fd.Workers)
		return err
	})

	g.Go(func() error {
		faces, err := Locate(f.detector, src)
		if err != nil {
			return err
		}
		f.log.WithFields(logrus.Fields{
			"faces":  len(faces),
			"width":  w,
			"height": h,
		}).Debug("faces located")

		mask, err = BuildMask(faces, w, h)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return blend(src, pixelated, mask, f.fd.Workers)
}

// ObscureFaces decodes the image at source, pixelates its faces and writes
// the result to dst.
func (f *FaceObscuring) ObscureFaces(source string, dst io.Writer) error {
	srcFile, err := os.Open(source)
	if err != nil {
		return errors.Wrapf(err, "can not open %s", source)
	}
	defer srcFile.Close()

	src, err := imaging.Decode(srcFile, imaging.AutoOrientation(true))
	if err != nil {
		return errors.Wrapf(ErrInvalidImage, "decode %s: %v", source, err)
	}

	out, err := f.Process(src)
	if err != nil {
		return err
	}

	return f.encodeImage(out, dst)
}
