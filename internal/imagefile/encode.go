// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imagefile

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/pdiddy/scivector/pkg/types"
)

// Encode returns the standard base64 encoding of the image bytes.
func Encode(img types.UploadedImage) string {
	return base64.StdEncoding.EncodeToString(img.Data)
}

// StripDataURI removes a "data:<mime>;base64," prefix if present.
func StripDataURI(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if _, payload, ok := strings.Cut(s, ","); ok {
		return payload
	}
	return s
}

// Decode reverses Encode. A data URI prefix is tolerated.
func Decode(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(StripDataURI(s))
	if err != nil {
		return nil, fmt.Errorf("decoding base64 image: %w", err)
	}
	return data, nil
}
