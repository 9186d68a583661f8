package apperrors_test

import (
	"fmt"
	"testing"

	apperrors "codestreak/internal/platform/errors"
)

func TestMessageAndKindFollowWrappedSentinels(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err     error
		kind    string
		message string
	}{
		{fmt.Errorf("status: %w", apperrors.ErrMissingIdentity), "missing_identity", "WebApp init data missing. Open this dashboard from Telegram."},
		{fmt.Errorf("%w: reminders: at most 2 allowed", apperrors.ErrValidation), "validation", "invalid input: reminders: at most 2 allowed"},
		{fmt.Errorf("get /api/status: %w: dial tcp: refused", apperrors.ErrTransport), "transport", "Network error. Please try again."},
		{fmt.Errorf("get /api/status: %w: status 502", apperrors.ErrRequestFailed), "request_failed", "Request failed. Please try again."},
		{apperrors.ErrSessionEnded, "session_ended", "session ended"},
	}
	for _, tc := range cases {
		if got := apperrors.Kind(tc.err); got != tc.kind {
			t.Fatalf("kind of %v: expected %q, got %q", tc.err, tc.kind, got)
		}
		if got := apperrors.Message(tc.err); got != tc.message {
			t.Fatalf("message of %v: expected %q, got %q", tc.err, tc.message, got)
		}
	}
	if apperrors.Message(nil) != "" || apperrors.Kind(nil) != "" {
		t.Fatalf("nil error must map to empty strings")
	}
}
