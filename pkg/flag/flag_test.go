package flag

import (
	"image/color"
	"math"
	"testing"

	"github.com/flagring/flagring/pkg/errors"
)

func validFlag() *Flag {
	return &Flag{
		ID:          "test-flag",
		DisplayName: "Test Flag",
		Category:    "pride",
		Orientation: Horizontal,
		Stripes: []Stripe{
			{Color: "#FFD000", Weight: 1},
			{Color: "#0050B0", Weight: 1},
		},
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{"six digit", "#FFD000", color.NRGBA{R: 0xFF, G: 0xD0, B: 0x00, A: 0xFF}, false},
		{"six digit lowercase", "#0050b0", color.NRGBA{R: 0x00, G: 0x50, B: 0xB0, A: 0xFF}, false},
		{"three digit", "#f0a", color.NRGBA{R: 0xFF, G: 0x00, B: 0xAA, A: 0xFF}, false},
		{"named color", "red", color.NRGBA{}, true},
		{"empty", "", color.NRGBA{}, true},
		{"bad digits", "#ZZZZZZ", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFlagValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Flag)
		wantErr  bool
		wantCode errors.Code
	}{
		{"valid", func(f *Flag) {}, false, ""},
		{
			"zero stripes",
			func(f *Flag) { f.Stripes = nil },
			true, errors.ErrCodeInvalidPattern,
		},
		{
			"51 stripes",
			func(f *Flag) {
				f.Stripes = make([]Stripe, 51)
				for i := range f.Stripes {
					f.Stripes[i] = Stripe{Color: "#FFFFFF", Weight: 1}
				}
			},
			true, errors.ErrCodeInvalidPattern,
		},
		{
			"50 stripes allowed",
			func(f *Flag) {
				f.Stripes = make([]Stripe, 50)
				for i := range f.Stripes {
					f.Stripes[i] = Stripe{Color: "#FFFFFF", Weight: 1}
				}
			},
			false, "",
		},
		{
			"zero weight",
			func(f *Flag) { f.Stripes[0].Weight = 0 },
			true, errors.ErrCodeInvalidWeight,
		},
		{
			"negative weight",
			func(f *Flag) { f.Stripes[0].Weight = -2 },
			true, errors.ErrCodeInvalidWeight,
		},
		{
			"NaN weight",
			func(f *Flag) { f.Stripes[0].Weight = math.NaN() },
			true, errors.ErrCodeInvalidWeight,
		},
		{
			"infinite weight",
			func(f *Flag) { f.Stripes[0].Weight = math.Inf(1) },
			true, errors.ErrCodeInvalidWeight,
		},
		{
			"named color",
			func(f *Flag) { f.Stripes[0].Color = "red" },
			true, errors.ErrCodeInvalidColor,
		},
		{
			"empty id",
			func(f *Flag) { f.ID = "" },
			true, errors.ErrCodeInvalidMetadata,
		},
		{
			"empty display name",
			func(f *Flag) { f.DisplayName = "  " },
			true, errors.ErrCodeInvalidMetadata,
		},
		{
			"uppercase category",
			func(f *Flag) { f.Category = "Pride" },
			true, errors.ErrCodeInvalidMetadata,
		},
		{
			"bad orientation",
			func(f *Flag) { f.Orientation = "diagonal" },
			true, errors.ErrCodeInvalidPattern,
		},
		{
			"bad asset url",
			func(f *Flag) { f.AssetURL = "ftp://flags.example/x.svg" },
			true, errors.ErrCodeInvalidInput,
		},
		{
			"asset-backed without stripes",
			func(f *Flag) {
				f.Stripes = nil
				f.AssetURL = "https://flags.example/x.svg"
			},
			false, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFlag()
			tt.mutate(f)
			err := f.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestValidationErrorFields(t *testing.T) {
	f := validFlag()
	f.Stripes[1].Color = "blue"

	err := f.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}

	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("Validate() returned %T, want *ValidationError", err)
	}
	if verr.FlagID != "test-flag" {
		t.Errorf("FlagID = %q, want %q", verr.FlagID, "test-flag")
	}
	if verr.Field != "stripes[1].color" {
		t.Errorf("Field = %q, want %q", verr.Field, "stripes[1].color")
	}
}

func TestValidatePattern(t *testing.T) {
	p := &Pattern{
		Stripes:     []Stripe{{Color: "#FF0000", Weight: 2}},
		Orientation: Vertical,
	}
	if err := ValidatePattern(p); err != nil {
		t.Errorf("ValidatePattern() unexpected error: %v", err)
	}

	if err := ValidatePattern(nil); err == nil {
		t.Error("ValidatePattern(nil) expected error")
	}

	if err := ValidatePattern(&Pattern{}); err == nil {
		t.Error("ValidatePattern() expected error for empty stripes")
	}
}

func TestPatternTotalWeight(t *testing.T) {
	p := &Pattern{Stripes: []Stripe{
		{Color: "#111111", Weight: 1},
		{Color: "#222222", Weight: 2.5},
		{Color: "#333333", Weight: 0.5},
	}}
	if got := p.TotalWeight(); got != 4 {
		t.Errorf("TotalWeight() = %g, want 4", got)
	}
}

func TestFlagPatternDefaultsOrientation(t *testing.T) {
	f := validFlag()
	f.Orientation = ""
	if got := f.Pattern().Orientation; got != Horizontal {
		t.Errorf("Pattern().Orientation = %q, want %q", got, Horizontal)
	}
}
