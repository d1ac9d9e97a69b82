package ocr

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// preprocess writes a cleaned-up grayscale copy of the image next to the
// original (".ocr.png" suffix, which the watcher ignores) and returns its
// path. Small scans are upscaled; Tesseract does noticeably better above
// ~1000px of width.
func preprocess(path string) (string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", err
	}
	img = imaging.Grayscale(img)
	if w := img.Bounds().Dx(); w < 1000 {
		img = imaging.Resize(img, 1600, 0, imaging.Lanczos)
	}
	img = imaging.AdjustContrast(img, 20)
	img = imaging.Sharpen(img, 1.0)

	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".ocr.png"
	if err := imaging.Save(img, out); err != nil {
		os.Remove(out)
		return "", err
	}
	return out, nil
}
