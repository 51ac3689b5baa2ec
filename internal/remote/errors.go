package remote

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories, surfaced to the UI layer so it can pick the right
// message ("check your connection" vs "system busy, retry shortly").
const (
	CategoryTransport = "transport"
	CategoryBusy      = "busy"
	CategoryMalformed = "malformed"
	CategoryRejected  = "rejected"
)

// Error is any failure talking to the remote service.
type Error struct {
	Category string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote %s: %s", e.Category, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("remote %s: %v", e.Category, e.Err)
	}
	return "remote " + e.Category
}

func (e *Error) Unwrap() error { return e.Err }

// busySignatures are the substrings the Apps-Script-style backend uses when
// it throttles a caller.
var busySignatures = []string{"too many", "rate limit", "quota", "quá nhiều"}

func isBusyMessage(msg string) bool {
	m := strings.ToLower(msg)
	for _, sig := range busySignatures {
		if strings.Contains(m, sig) {
			return true
		}
	}
	return false
}

func transportError(err error) *Error {
	if isBusyMessage(err.Error()) {
		return &Error{Category: CategoryBusy, Err: err}
	}
	return &Error{Category: CategoryTransport, Err: err}
}

// CategoryOf extracts the category from any error chain; unknown errors
// count as transport failures.
func CategoryOf(err error) string {
	var re *Error
	if errors.As(err, &re) {
		return re.Category
	}
	return CategoryTransport
}

// MessageOf returns the server-provided message when present.
func MessageOf(err error) string {
	var re *Error
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}
