// File: internal/services/analysis/image.go
package analysis

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"regexp"

	// Decoders for formats that need a re-encode pass.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// The vision endpoint only accepts these data-URL types; everything else gets
// decoded and re-encoded as PNG. Both the string and the raw-bytes paths go
// through the same acceptance rule.
var (
	acceptedDataURLPattern = regexp.MustCompile(`^data:image/(jpeg|jpg|png|gif|webp);base64,`)
	genericDataURLPattern  = regexp.MustCompile(`^data:(image/[a-zA-Z0-9.+-]+);base64,(.+)$`)
)

// PrepareImage normalizes a string input into an accepted base64 data URL.
// Already-accepted data URLs pass through unchanged.
func PrepareImage(input string) (string, error) {
	if acceptedDataURLPattern.MatchString(input) {
		return input, nil
	}
	m := genericDataURLPattern.FindStringSubmatch(input)
	if m == nil {
		return "", ErrUnsupportedImage
	}
	raw, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64 payload", ErrUnsupportedImage)
	}
	return reencodeAsPNG(raw)
}

// PrepareImageBytes normalizes a raw binary image into an accepted data URL,
// mirroring the string path exactly.
func PrepareImageBytes(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", ErrUnsupportedImage
	}
	mimeType := http.DetectContentType(raw)
	if isAcceptedMIME(mimeType) {
		return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
	}
	return reencodeAsPNG(raw)
}

func isAcceptedMIME(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

// reencodeAsPNG is the canvas-redraw equivalent: decode whatever the input is
// and re-encode it as PNG.
func reencodeAsPNG(raw []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to re-encode image: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
