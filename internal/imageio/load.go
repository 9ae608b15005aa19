package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	// Register decoders for image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/ironsheep/quicksnap/internal/imaging"
)

// ErrUnsupportedFormat is returned when the data is not a decodable image.
// It wraps image.ErrFormat.
var ErrUnsupportedFormat = fmt.Errorf("unsupported image format: %w", image.ErrFormat)

// LoadFile reads and decodes the image at path.
//
// Parameters:
//   - path: Path to a PNG, JPEG, BMP or GIF file.
//
// Returns:
//   - *imaging.Image: The decoded image, normalised to RGB or RGBA by source format.
//   - error: If the file does not exist, cannot be read, or is not a supported image.
func LoadFile(path string) (*imaging.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes an image stream and returns it with the registered format name
// ("png", "jpeg", "bmp" or "gif").
func Decode(r io.Reader) (*imaging.Image, string, error) {
	src, name, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", ErrUnsupportedFormat
		}
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	img, err := imaging.New(src, pixelFormat(name))
	if err != nil {
		return nil, "", err
	}
	return img, name, nil
}

// DecodeBytes is Decode over an in-memory buffer.
func DecodeBytes(data []byte) (*imaging.Image, error) {
	img, _, err := Decode(bytes.NewReader(data))
	return img, err
}

// pixelFormat maps a decoder name to the in-memory format: formats that can carry
// transparency keep an alpha channel, the rest are opaque.
func pixelFormat(decoder string) imaging.Format {
	switch decoder {
	case "png", "gif":
		return imaging.FormatRGBA
	default:
		return imaging.FormatRGB
	}
}
