package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates a single-colour test image of the given format
func createInMemoryImage(t *testing.T, width, height int, c color.Color, format Format) *Image {
	t.Helper()
	src := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src.Set(x, y, c)
		}
	}
	img, err := New(src, format)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return img
}

// createPatternImage creates an RGB image with different colors in each quadrant
func createPatternImage(t *testing.T, width, height int) *Image {
	t.Helper()
	src := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.NRGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.NRGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.NRGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.NRGBA{255, 255, 255, 255} // White bottom-right
			}
			src.Set(x, y, c)
		}
	}
	img, err := New(src, FormatRGB)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return img
}

// createGradientImage creates an image where every pixel differs from its neighbours
func createGradientImage(t *testing.T, width, height int) *Image {
	t.Helper()
	src := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src.Set(x, y, color.NRGBA{uint8(x * 7), uint8(y * 5), uint8(x + y), 255})
		}
	}
	img, err := New(src, FormatRGB)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return img
}

func TestNew_EmptyImage(t *testing.T) {
	tests := []struct {
		name string
		src  image.Image
	}{
		{"nil", nil},
		{"zero width", image.NewNRGBA(image.Rect(0, 0, 0, 10))},
		{"zero height", image.NewNRGBA(image.Rect(0, 0, 10, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.src, FormatRGB); err != ErrEmptyImage {
				t.Errorf("got %v, want ErrEmptyImage", err)
			}
		})
	}
}

func TestNew_RebasesBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 40, 60))
	img, err := New(src, FormatRGBA)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 30, 40) {
		t.Errorf("bounds: got %v, want (0,0)-(30,40)", got)
	}
}

func TestNew_CopiesSource(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img, err := New(src, FormatRGBA)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	src.Set(0, 0, color.NRGBA{1, 2, 3, 4})
	if got := img.At(0, 0); got != (color.NRGBA{}) {
		t.Errorf("image shares memory with source: got %v", got)
	}
}

func TestNew_RGBDropsAlpha(t *testing.T) {
	img := createInMemoryImage(t, 4, 4, color.NRGBA{10, 20, 30, 40}, FormatRGB)

	if got := img.At(1, 1); got != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("pixel: got %v, want (10,20,30,255)", got)
	}
	if img.HasAlpha() {
		t.Error("RGB image reports alpha")
	}
}

func TestImage_FormatConversions(t *testing.T) {
	rgba := createInMemoryImage(t, 3, 3, color.NRGBA{0, 255, 0, 128}, FormatRGBA)

	rgb := rgba.ToRGB()
	if rgb.Format() != FormatRGB {
		t.Fatalf("ToRGB format: got %v", rgb.Format())
	}
	if got := rgb.At(0, 0); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("ToRGB pixel: got %v, want (0,255,0,255)", got)
	}
	if got := rgba.At(0, 0); got.A != 128 {
		t.Errorf("ToRGB modified its receiver: alpha %d", got.A)
	}
	if rgb.ToRGB() != rgb {
		t.Error("ToRGB on an RGB image should return the receiver")
	}

	back := rgb.ToRGBA()
	if back.Format() != FormatRGBA || !back.HasAlpha() {
		t.Errorf("ToRGBA format: got %v", back.Format())
	}
	if got := back.At(2, 2); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("ToRGBA pixel: got %v", got)
	}
}

func TestImage_Equal(t *testing.T) {
	a := createPatternImage(t, 10, 10)
	b := createPatternImage(t, 10, 10)
	c := createInMemoryImage(t, 10, 10, color.White, FormatRGB)

	if !a.Equal(b) {
		t.Error("identical images should be equal")
	}
	if a.Equal(c) {
		t.Error("different pixels should not be equal")
	}
	if a.Equal(a.ToRGBA()) {
		t.Error("different formats should not be equal")
	}
	if a.Equal(nil) {
		t.Error("image should not equal nil")
	}
}

func TestFormat_String(t *testing.T) {
	if FormatRGB.String() != "RGB" || FormatRGBA.String() != "RGBA" {
		t.Errorf("got %s/%s", FormatRGB, FormatRGBA)
	}
	if Format(7).String() != "unknown" {
		t.Errorf("got %s, want unknown", Format(7))
	}
}
