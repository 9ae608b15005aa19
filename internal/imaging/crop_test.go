package imaging

import (
	"image/color"
	"testing"
)

func TestTrim(t *testing.T) {
	img := createPatternImage(t, 100, 100)

	tests := []struct {
		name         string
		r            Rect
		wantW, wantH int
		wantTopLeft  color.NRGBA
	}{
		{"top-left quadrant", Rect{0, 0, 50, 50}, 50, 50, color.NRGBA{255, 0, 0, 255}},
		{"bottom-right quadrant", Rect{50, 50, 100, 100}, 50, 50, color.NRGBA{255, 255, 255, 255}},
		{"reversed corners", Rect{100, 50, 50, 0}, 50, 50, color.NRGBA{0, 255, 0, 255}},
		{"oversized", Rect{-10, -10, 10000, 10000}, 100, 100, color.NRGBA{255, 0, 0, 255}},
		{"partly outside", Rect{90, 90, 200, 200}, 10, 10, color.NRGBA{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Trim(img, tt.r)

			if result.Width() != tt.wantW || result.Height() != tt.wantH {
				t.Errorf("size: got %dx%d, want %dx%d",
					result.Width(), result.Height(), tt.wantW, tt.wantH)
			}
			if got := result.At(0, 0); got != tt.wantTopLeft {
				t.Errorf("top-left: got %v, want %v", got, tt.wantTopLeft)
			}
			if result.Format() != img.Format() {
				t.Errorf("format: got %v, want %v", result.Format(), img.Format())
			}
		})
	}
}

func TestTrim_PreservesAlpha(t *testing.T) {
	img := createInMemoryImage(t, 20, 20, color.NRGBA{9, 8, 7, 60}, FormatRGBA)

	result := Trim(img, Rect{5, 5, 15, 15})

	if result.Format() != FormatRGBA {
		t.Fatalf("format: got %v, want RGBA", result.Format())
	}
	if got := result.At(0, 0); got != (color.NRGBA{9, 8, 7, 60}) {
		t.Errorf("pixel: got %v", got)
	}
}
