package output

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// FormatPPM is the name of the plain-text PPM format
const FormatPPM = "ppm"

// SaveImage writes img to filename, choosing the format from the extension:
// .ppm is written by WritePPM, everything else (.png, .jpg, .gif, .tif, .bmp)
// by imaging
func SaveImage(filename string, img image.Image) error {
	if isPPM(filepath.Ext(filename)) {
		file, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create image file: %w", err)
		}
		if err := WritePPM(file, img); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close image file: %w", err)
		}
		return nil
	}

	if err := imaging.Save(img, filename, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to save image %s: %w", filename, err)
	}
	return nil
}

// EncodeImage writes img to w in the named format ("ppm", "png", "jpg", ...)
func EncodeImage(w io.Writer, img image.Image, format string) error {
	if isPPM(format) {
		return WritePPM(w, img)
	}

	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return fmt.Errorf("unsupported image format %q: %w", format, err)
	}
	if err := imaging.Encode(w, img, f, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", f, err)
	}
	return nil
}

// ContentType returns the MIME type for a format name, or an error for formats
// EncodeImage cannot produce
func ContentType(format string) (string, error) {
	if isPPM(format) {
		return "image/x-portable-pixmap", nil
	}

	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return "", fmt.Errorf("unsupported image format %q: %w", format, err)
	}
	return "image/" + strings.ToLower(f.String()), nil
}

func isPPM(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), FormatPPM)
}
