package imaging

import (
	"fmt"
)

// ImageInfo contains metadata about an in-memory image.
//
// This struct provides the information shown in the status bar after an image is
// loaded or transformed, without requiring the caller to inspect pixel data.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the pixel format name: "RGB" or "RGBA".
	Format string `json:"format"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// Translucent indicates whether at least one pixel is not fully opaque.
	// Always false for RGB images.
	Translucent bool `json:"translucent"`
}

// Describe returns metadata about img.
//
// Parameters:
//   - img: The image to describe. Must not be nil.
//
// Returns:
//   - *ImageInfo: Dimensions, pixel format and transparency information.
//
// # Transparency Detection
//
// Translucent is determined by scanning the alpha channel and stops at the first
// pixel whose alpha is below 255, so fully opaque images cost one full pass.
func Describe(img *Image) *ImageInfo {
	info := &ImageInfo{
		Width:    img.Width(),
		Height:   img.Height(),
		Format:   img.Format().String(),
		HasAlpha: img.HasAlpha(),
	}
	if img.HasAlpha() {
		pix := img.pix.Pix
		for i := 3; i < len(pix); i += 4 {
			if pix[i] != 0xff {
				info.Translucent = true
				break
			}
		}
	}
	return info
}

// String renders the info the way the status bar shows it, e.g. "800x600 RGBA".
func (i *ImageInfo) String() string {
	return fmt.Sprintf("%dx%d %s", i.Width, i.Height, i.Format)
}
