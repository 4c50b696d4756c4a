package pixelize

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	_ "golang.org/x/image/webp"
)

const pngDataURLPrefix = "data:image/png;base64,"

// ErrUnsupportedDataURL is returned for a data URL that is not base64 encoded
// or cannot be decoded
var ErrUnsupportedDataURL = errors.New("unsupported image data url")

// decodeDataURL returns the payload of a "data:<type>;base64,<data>" URL
func decodeDataURL(s string) ([]byte, error) {
	header, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.Contains(header, "base64") {
		return nil, ErrUnsupportedDataURL
	}

	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, ErrUnsupportedDataURL
	}

	return b, nil
}

func decodeImage(b []byte) (image.Image, error) {
	m, _, err := image.Decode(bytes.NewReader(b))
	return m, err
}

// DecodeDataURL decodes the image held in a base64 data URL. PNG, JPEG, GIF
// and WebP images are supported.
func DecodeDataURL(s string) (image.Image, error) {
	b, err := decodeDataURL(s)
	if err != nil {
		return nil, err
	}
	return decodeImage(b)
}

func encodePNG(m image.Image) ([]byte, error) {
	b := new(bytes.Buffer)
	if err := png.Encode(b, m); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func pngDataURL(b []byte) string {
	return pngDataURLPrefix + base64.StdEncoding.EncodeToString(b)
}

// EncodeDataURL encodes m as a PNG base64 data URL
func EncodeDataURL(m image.Image) (string, error) {
	b, err := encodePNG(m)
	if err != nil {
		return "", err
	}
	return pngDataURL(b), nil
}
