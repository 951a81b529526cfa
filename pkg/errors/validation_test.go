package errors

import "testing"

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name    string
		color   string
		wantErr bool
	}{
		{"six digit", "#FFD000", false},
		{"three digit", "#f0a", false},
		{"lowercase", "#0050b0", false},
		{"named color", "red", true},
		{"missing hash", "FFD000", true},
		{"four digits", "#FFD0", true},
		{"non-hex digits", "#GGHHII", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHexColor(tt.color)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		wantErr  bool
	}{
		{"simple", "pride", false},
		{"with hyphen", "gender-identity", false},
		{"with digits", "region-2", false},
		{"uppercase", "Pride", true},
		{"spaces", "gender identity", true},
		{"empty", "", true},
		{"underscore", "gender_identity", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategory(tt.category)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCategory(%q) error = %v, wantErr %v", tt.category, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFlagID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "rainbow", false},
		{"hyphenated", "trans-pride", false},
		{"empty", "", true},
		{"path traversal", "../etc", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"control char", "a\x01b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFlagID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFlagID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://example.com/flag.svg"); err != nil {
		t.Errorf("ValidateURL() unexpected error: %v", err)
	}
	if err := ValidateURL("ftp://example.com/flag.svg"); err == nil {
		t.Error("ValidateURL() expected error for ftp scheme")
	}
	if err := ValidateURL(""); err == nil {
		t.Error("ValidateURL() expected error for empty URL")
	}
}
