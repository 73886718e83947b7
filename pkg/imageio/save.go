package imageio

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// IsPPM reports whether an output path should be written as PPM.
// "-" means standard output, which is always PPM.
func IsPPM(path string) bool {
	return path == "-" || strings.EqualFold(filepath.Ext(path), ".ppm")
}

// Save writes an image, choosing the encoding (PNG, JPEG, GIF, TIFF, BMP)
// from the file extension
func Save(path string, img image.Image) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("unsupported output format for %s: %w", path, err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Encode returns the image encoded in the format matching the file extension
// of name, along with its MIME type
func Encode(name string, img image.Image) ([]byte, string, error) {
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return nil, "", fmt.Errorf("unsupported format for %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, "", fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return buf.Bytes(), contentType(format), nil
}

func contentType(format imaging.Format) string {
	switch format {
	case imaging.JPEG:
		return "image/jpeg"
	case imaging.GIF:
		return "image/gif"
	case imaging.TIFF:
		return "image/tiff"
	case imaging.BMP:
		return "image/bmp"
	default:
		return "image/png"
	}
}

// ThumbnailPath derives the thumbnail file name for an output path,
// e.g. "out.png" -> "out_thumb.png"
func ThumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}
