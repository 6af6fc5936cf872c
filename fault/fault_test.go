package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message only", Network("timeout"), "timeout"},
		{"message and cause", InvalidUI("failed to draw a string", errors.New("out of bounds")), "failed to draw a string: out of bounds"},
		{"cause only", Wrap(KindOther, "", errors.New("boom")), "boom"},
		{"empty", &Error{Kind: KindInvalidUI}, "invalid ui error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestKindMatching(t *testing.T) {
	err := fmt.Errorf("navigating: %w", Network("timeout"))

	if !Is(err, KindNetwork) {
		t.Error("expected wrapped error to match KindNetwork")
	}
	if Is(err, KindInvalidUI) {
		t.Error("network error should not match KindInvalidUI")
	}
	if KindOf(err) != KindNetwork {
		t.Errorf("KindOf = %v, expected network", KindOf(err))
	}
	if KindOf(errors.New("plain")) != KindOther {
		t.Error("plain errors should classify as other")
	}
}

func TestIsWithMessage(t *testing.T) {
	err := Network("timeout")
	if !errors.Is(err, Network("timeout")) {
		t.Error("same kind and message should match")
	}
	if errors.Is(err, Network("refused")) {
		t.Error("different message should not match")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("surface gone")
	err := InvalidUI("failed to clear a content area", cause)
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
}
