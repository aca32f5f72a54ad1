package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidChord, "bad chord: %s", "Q7")

	if err.Code != ErrCodeInvalidChord {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidChord)
	}

	if err.Message != "bad chord: Q7" {
		t.Errorf("Message = %v, want %v", err.Message, "bad chord: Q7")
	}

	expected := "INVALID_CHORD: bad chord: Q7"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(ErrCodeInternal, cause, "cache unavailable")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "INTERNAL_ERROR: cache unavailable: dial tcp: refused"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidPitch, "test"), ErrCodeInvalidPitch, true},
		{"non-matching code", New(ErrCodeInvalidPitch, "test"), ErrCodeInvalidScale, false},
		{"wrapped error", Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInternal, true},
		{"fmt wrapped", wrapf(New(ErrCodeNotFound, "inner")), ErrCodeNotFound, true},
		{"non-Error type", errors.New("plain error"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func wrapf(err error) error {
	return errors.Join(errors.New("context"), err)
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidMode, "x")); got != ErrCodeInvalidMode {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidMode)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %v, want empty", got)
	}
}

func TestIsInvalid(t *testing.T) {
	if !IsInvalid(New(ErrCodeInvalidFormat, "x")) {
		t.Error("IsInvalid(INVALID_FORMAT) = false")
	}
	if IsInvalid(New(ErrCodeInternal, "x")) {
		t.Error("IsInvalid(INTERNAL_ERROR) = true")
	}
	if IsInvalid(errors.New("plain")) {
		t.Error("IsInvalid(plain) = true")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "friendly message")); got != "friendly message" {
		t.Errorf("UserMessage() = %v", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %v", got)
	}
}
