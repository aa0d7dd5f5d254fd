package wordmaze

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	// Register decoders for the formats a figure may carry
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DetectImageType returns the upper-case format name (PNG, JPEG, GIF, BMP,
// TIFF, WEBP) of encoded image data
func DetectImageType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image config: %w", err)
	}
	return strings.ToUpper(format), nil
}
