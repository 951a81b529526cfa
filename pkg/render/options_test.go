package render

import (
	"testing"

	"github.com/flagring/flagring/pkg/errors"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"zero value", Options{}, false},
		{"small size", Options{Size: SizeSmall}, false},
		{"large size", Options{Size: SizeLarge}, false},
		{"odd size", Options{Size: 600}, true},
		{"thickness below range", Options{ThicknessPct: 3}, true},
		{"thickness above range", Options{ThicknessPct: 25}, true},
		{"thickness at bounds", Options{ThicknessPct: 5}, false},
		{"negative padding", Options{PaddingPct: -1}, true},
		{"ring presentation", Options{Presentation: PresentationRing}, false},
		{"segment presentation", Options{Presentation: PresentationSegment}, false},
		{"cutout presentation", Options{Presentation: PresentationCutout}, false},
		{"unknown presentation", Options{Presentation: "donut"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if code := errors.GetCode(err); code != errors.ErrCodeInvalidOptions {
					t.Errorf("error code = %q, want %q", code, errors.ErrCodeInvalidOptions)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestOptionsNormalized(t *testing.T) {
	o := Options{}.normalized()
	if o.Size != SizeSmall {
		t.Errorf("default size = %d, want %d", o.Size, SizeSmall)
	}
	if o.ThicknessPct != DefaultThicknessPct {
		t.Errorf("default thickness = %g, want %g", o.ThicknessPct, DefaultThicknessPct)
	}

	o = Options{ThicknessPct: 50, PaddingPct: -3}.normalized()
	if o.ThicknessPct != MaxThicknessPct {
		t.Errorf("thickness = %g, want clamp to %g", o.ThicknessPct, MaxThicknessPct)
	}
	if o.PaddingPct != 0 {
		t.Errorf("padding = %g, want clamp to 0", o.PaddingPct)
	}
}
