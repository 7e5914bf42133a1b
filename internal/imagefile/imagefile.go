// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imagefile validates and encodes the raster images sent for
// conversion. Only JPEG, PNG and WEBP images up to types.MaxImageSize are
// accepted.
package imagefile

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/scivector/pkg/types"
)

// acceptedTypes is the set of MIME types the validator lets through.
var acceptedTypes = map[string]bool{
	types.MIMEJPEG: true,
	types.MIMEPNG:  true,
	types.MIMEWEBP: true,
}

// extensionTypes maps file extensions to MIME types when content sniffing
// is inconclusive.
var extensionTypes = map[string]string{
	".jpg":  types.MIMEJPEG,
	".jpeg": types.MIMEJPEG,
	".png":  types.MIMEPNG,
	".webp": types.MIMEWEBP,
}

// ValidationError reports why a candidate image was rejected. Message is
// safe to show to the user as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validate checks the MIME type and size of img. It returns a
// *ValidationError on rejection and has no other side effects.
func Validate(img types.UploadedImage) error {
	if !acceptedTypes[img.MIMEType] {
		return &ValidationError{
			Message: fmt.Sprintf("unsupported file type %q: use JPEG, PNG or WEBP", img.MIMEType),
		}
	}
	if img.Size > types.MaxImageSize {
		return &ValidationError{Message: "file is larger than 10 MB"}
	}
	return nil
}

// Load reads the image at path, detects its MIME type and validates it.
// The size ceiling is checked before the file is read.
func Load(path string) (types.UploadedImage, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.UploadedImage{}, fmt.Errorf("reading image %s: %w", path, err)
	}
	if info.IsDir() {
		return types.UploadedImage{}, fmt.Errorf("reading image %s: is a directory", path)
	}
	if info.Size() > types.MaxImageSize {
		return types.UploadedImage{}, &ValidationError{Message: "file is larger than 10 MB"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.UploadedImage{}, fmt.Errorf("reading image %s: %w", path, err)
	}

	img := types.UploadedImage{
		Name:     filepath.Base(path),
		MIMEType: DetectType(path, data),
		Size:     int64(len(data)),
		Data:     data,
	}
	if err := Validate(img); err != nil {
		return types.UploadedImage{}, err
	}
	return img, nil
}

// DetectType returns the MIME type of data, falling back to the extension
// of name when the content is not recognised as an image.
func DetectType(name string, data []byte) string {
	sniffed := http.DetectContentType(data)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}
	return sniffed
}
