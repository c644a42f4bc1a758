package faceobscuring

import (
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// encodeImage picks the format from the destination file name and falls back
// to JPEG for files without an extension and for other writers.
func (f *FaceObscuring) encodeImage(img image.Image, dst io.Writer) error {
	format := imaging.JPEG

	if file, ok := dst.(*os.File); ok {
		if ext := filepath.Ext(file.Name()); ext != "" {
			var err error
			format, err = imaging.FormatFromExtension(ext)
			if err != nil {
				return errors.Wrapf(err, "unsupported image format %q", ext)
			}
		}
	}

	return imaging.Encode(dst, img, format, imaging.JPEGQuality(f.fd.JPEGQuality))
}
