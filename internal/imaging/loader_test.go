package imaging

import (
	"image/color"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name            string
		img             *Image
		wantString      string
		wantAlpha       bool
		wantTranslucent bool
	}{
		{
			name:       "rgb",
			img:        createPatternImage(t, 80, 60),
			wantString: "80x60 RGB",
		},
		{
			name:       "opaque rgba",
			img:        createInMemoryImage(t, 10, 20, color.White, FormatRGBA),
			wantString: "10x20 RGBA",
			wantAlpha:  true,
		},
		{
			name:            "translucent rgba",
			img:             createInMemoryImage(t, 5, 5, color.NRGBA{0, 0, 0, 10}, FormatRGBA),
			wantString:      "5x5 RGBA",
			wantAlpha:       true,
			wantTranslucent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Describe(tt.img)
			if got := info.String(); got != tt.wantString {
				t.Errorf("String: got %q, want %q", got, tt.wantString)
			}
			if info.HasAlpha != tt.wantAlpha {
				t.Errorf("HasAlpha: got %v, want %v", info.HasAlpha, tt.wantAlpha)
			}
			if info.Translucent != tt.wantTranslucent {
				t.Errorf("Translucent: got %v, want %v", info.Translucent, tt.wantTranslucent)
			}
		})
	}
}
