package errors

import (
	"strings"
	"unicode"

	"github.com/parkerchace/MusicTheory-sub000/pkg/theory"
)

const maxSymbolLength = 32

// ValidatePitchName checks that name is a pitch class such as "C", "F#" or
// "Bb". Unicode accidentals are accepted.
func ValidatePitchName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidPitch, "pitch name cannot be empty")
	}
	if _, ok := theory.ParsePitch(name); !ok {
		return New(ErrCodeInvalidPitch, "invalid pitch name: %q", name)
	}
	return nil
}

// ValidateChordSymbol checks that symbol parses as root plus a known quality.
func ValidateChordSymbol(symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return New(ErrCodeInvalidChord, "chord symbol cannot be empty")
	}
	if len(symbol) > maxSymbolLength {
		return New(ErrCodeInvalidChord, "chord symbol too long (max %d characters)", maxSymbolLength)
	}
	for _, r := range symbol {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidChord, "chord symbol contains invalid control characters")
		}
	}
	if _, _, err := theory.ParseSymbol(symbol); err != nil {
		return Wrap(ErrCodeInvalidChord, err, "invalid chord symbol: %q", symbol)
	}
	return nil
}

// ValidateScale checks a scale or mode name.
func ValidateScale(name string) error {
	if _, ok := theory.ParseScale(name); !ok {
		return New(ErrCodeInvalidScale, "unknown scale %q (want one of %s)", name, joinScales())
	}
	return nil
}

func joinScales() string {
	names := make([]string, 0, len(theory.Scales()))
	for _, s := range theory.Scales() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// ValidateComplexity checks that c lies in [0, 100].
func ValidateComplexity(c int) error {
	if c < 0 || c > 100 {
		return New(ErrCodeInvalidInput, "complexity must be between 0 and 100, got %d", c)
	}
	return nil
}

// ValidateDegree checks a scale degree. Zero means "no degree".
func ValidateDegree(d int) error {
	if d < 0 || d > 7 {
		return New(ErrCodeInvalidInput, "degree must be between 1 and 7, got %d", d)
	}
	return nil
}

// ValidatePath validates an output or cache path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
