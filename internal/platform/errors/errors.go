package apperrors

import "errors"

var (
	ErrMissingIdentity = errors.New("missing identity")
	ErrRequestFailed   = errors.New("request failed")
	ErrTransport       = errors.New("transport error")
	ErrValidation      = errors.New("invalid input")
	ErrSessionEnded    = errors.New("session ended")
)

// Message converts an error into the inline text shown to the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingIdentity):
		return "WebApp init data missing. Open this dashboard from Telegram."
	case errors.Is(err, ErrValidation):
		return err.Error()
	case errors.Is(err, ErrTransport):
		return "Network error. Please try again."
	case errors.Is(err, ErrRequestFailed):
		return "Request failed. Please try again."
	default:
		return err.Error()
	}
}

// Kind names the error category for logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingIdentity):
		return "missing_identity"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrRequestFailed):
		return "request_failed"
	case errors.Is(err, ErrSessionEnded):
		return "session_ended"
	default:
		return "unknown"
	}
}
