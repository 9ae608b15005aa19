package imaging

import (
	"image/color"
	"testing"
)

func TestRotate_Quarter(t *testing.T) {
	img := createPatternImage(t, 40, 20)

	result := Rotate(img, 90)

	if result.Width() != 20 || result.Height() != 40 {
		t.Fatalf("size: got %dx%d, want 20x40", result.Width(), result.Height())
	}
	// counter-clockwise: the top-right quadrant (green) moves to the top-left
	if got := result.At(0, 0); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("top-left after +90: got %v, want green", got)
	}
	if result.Format() != FormatRGB {
		t.Errorf("format: got %v, want RGB", result.Format())
	}
}

func TestRotate_RoundTrips(t *testing.T) {
	img := createGradientImage(t, 31, 17)

	tests := []struct {
		name string
		a, b int
	}{
		{"+90 then -90", 90, -90},
		{"-90 then +90", -90, 90},
		{"180 twice", 180, 180},
		{"270 then 90", 270, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rotate(Rotate(img, tt.a), tt.b); !got.Equal(img) {
				t.Error("rotation did not restore the original")
			}
		})
	}
}

func TestRotate_Zero(t *testing.T) {
	img := createPatternImage(t, 10, 10)
	if Rotate(img, 0) != img || Rotate(img, 360) != img {
		t.Error("full turns should return the input")
	}
}

func TestRotate_ArbitraryAngleIsRGBA(t *testing.T) {
	img := createPatternImage(t, 20, 20)

	result := Rotate(img, 45)

	if result.Format() != FormatRGBA {
		t.Errorf("format: got %v, want RGBA", result.Format())
	}
	if result.Width() <= 20 {
		t.Errorf("canvas should grow: width %d", result.Width())
	}
}

func TestFlip(t *testing.T) {
	img := createPatternImage(t, 20, 20)

	h := Flip(img, FlipHorizontal)
	if got := h.At(0, 0); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("horizontal flip top-left: got %v, want green", got)
	}

	v := Flip(img, FlipVertical)
	if got := v.At(0, 0); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("vertical flip top-left: got %v, want blue", got)
	}

	for _, dir := range []FlipDirection{FlipHorizontal, FlipVertical} {
		if !Flip(Flip(img, dir), dir).Equal(img) {
			t.Errorf("double %s flip did not restore the original", dir)
		}
	}
}

func TestParseFlipDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    FlipDirection
		wantErr bool
	}{
		{"horizontal", FlipHorizontal, false},
		{"h", FlipHorizontal, false},
		{"vertical", FlipVertical, false},
		{"v", FlipVertical, false},
		{"diagonal", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseFlipDirection(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFlipDirection(%q): err %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseFlipDirection(%q): got %v, want %v", tt.input, got, tt.want)
		}
	}
}
