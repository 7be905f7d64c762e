package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", Input("units must be a number"), "[INPUT_ERROR] units must be a number"},
		{"wrapped", Storage("save session", stderrors.New("disk full")), "[STORAGE_ERROR] save session: disk full"},
		{"not found", NotFound("session", "abc"), "[NOT_FOUND] session not found: abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTypeThroughWrapping(t *testing.T) {
	base := Parsing("studio.hcl:3", stderrors.New("unexpected token"))
	wrapped := fmt.Errorf("load profile: %w", base)

	if !IsType(wrapped, TypeParsing) {
		t.Fatalf("IsType should see through fmt.Errorf wrapping")
	}
	if IsType(wrapped, TypeStorage) {
		t.Fatalf("IsType matched the wrong type")
	}
	if TypeOf(stderrors.New("plain")) != TypeInternal {
		t.Fatalf("foreign errors should report TypeInternal")
	}
	if !stderrors.Is(wrapped, base.Cause) {
		t.Fatalf("Unwrap chain should reach the cause")
	}
}

func TestWithContext(t *testing.T) {
	err := NotFound("preset", "Mug").WithContext("source", "builtin")
	if err.Context["source"] != "builtin" {
		t.Errorf("context not recorded: %+v", err.Context)
	}
	if !err.Is(TypeNotFound) {
		t.Errorf("Is(TypeNotFound) = false")
	}
}
