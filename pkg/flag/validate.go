package flag

import (
	"fmt"
	"math"

	"github.com/flagring/flagring/pkg/errors"
)

// Stripe count bounds enforced by the validator.
const (
	MinStripes = 1
	MaxStripes = 50
)

// ValidationError reports a malformed flag, carrying the flag ID and the
// offending field so callers can filter the entry or surface a precise
// message. It wraps a coded *errors.Error for errors.Is/GetCode checks.
type ValidationError struct {
	FlagID string
	Field  string
	Err    *errors.Error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.FlagID == "" {
		return fmt.Sprintf("pattern: field %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("flag %q: field %s: %v", e.FlagID, e.Field, e.Err)
}

// Unwrap returns the underlying coded error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(flagID, field string, err *errors.Error) *ValidationError {
	return &ValidationError{FlagID: flagID, Field: field, Err: err}
}

// Validate checks a flag's metadata and pattern. It is the gatekeeper that
// runs before any pixel work: validation always completes, pass or fail,
// and the renderer never partially draws an invalid flag.
func (f *Flag) Validate() error {
	if err := errors.ValidateFlagID(f.ID); err != nil {
		return invalid(f.ID, "id", err.(*errors.Error))
	}
	if err := errors.ValidateDisplayName(f.DisplayName); err != nil {
		return invalid(f.ID, "display_name", err.(*errors.Error))
	}
	if err := errors.ValidateCategory(f.Category); err != nil {
		return invalid(f.ID, "category", err.(*errors.Error))
	}
	if f.AssetURL != "" {
		if err := errors.ValidateURL(f.AssetURL); err != nil {
			return invalid(f.ID, "asset_url", err.(*errors.Error))
		}
	}
	if f.Orientation != "" && f.Orientation != Horizontal && f.Orientation != Vertical {
		return invalid(f.ID, "orientation",
			errors.New(errors.ErrCodeInvalidPattern, "invalid orientation: %q", f.Orientation))
	}

	// Image-backed flags may omit stripes entirely.
	if f.AssetURL != "" && len(f.Stripes) == 0 {
		return nil
	}

	return validateStripes(f.ID, f.Stripes)
}

// ValidatePattern checks a bare stripe pattern supplied directly to the
// renderer, outside any manifest entry.
func ValidatePattern(p *Pattern) error {
	if p == nil {
		return invalid("", "pattern",
			errors.New(errors.ErrCodeInvalidPattern, "pattern is nil"))
	}
	if p.Orientation != "" && p.Orientation != Horizontal && p.Orientation != Vertical {
		return invalid("", "orientation",
			errors.New(errors.ErrCodeInvalidPattern, "invalid orientation: %q", p.Orientation))
	}
	return validateStripes("", p.Stripes)
}

func validateStripes(flagID string, stripes []Stripe) error {
	if len(stripes) < MinStripes {
		return invalid(flagID, "stripes",
			errors.New(errors.ErrCodeInvalidPattern, "flag must have at least %d stripe", MinStripes))
	}
	if len(stripes) > MaxStripes {
		return invalid(flagID, "stripes",
			errors.New(errors.ErrCodeInvalidPattern, "flag has %d stripes (max %d)", len(stripes), MaxStripes))
	}

	for i, s := range stripes {
		field := fmt.Sprintf("stripes[%d]", i)
		if err := errors.ValidateHexColor(s.Color); err != nil {
			return invalid(flagID, field+".color", err.(*errors.Error))
		}
		if math.IsNaN(s.Weight) || math.IsInf(s.Weight, 0) {
			return invalid(flagID, field+".weight",
				errors.New(errors.ErrCodeInvalidWeight, "weight must be finite"))
		}
		if s.Weight <= 0 {
			return invalid(flagID, field+".weight",
				errors.New(errors.ErrCodeInvalidWeight, "weight must be positive, got %g", s.Weight))
		}
	}

	return nil
}
