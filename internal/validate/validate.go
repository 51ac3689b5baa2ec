package validate

import (
	"regexp"
	"strings"
)

var (
	// VN mobile/landline: leading 0, 9-11 digits total
	rePhone = regexp.MustCompile(`^0[0-9]{8,10}$`)
	reTable = regexp.MustCompile(`^[A-Za-z0-9\-]{1,10}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// Name validates a displayable customer name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 40 {
		return "", false
	}
	return s, true
}

// Phone is optional on an order; empty passes, non-empty must look like a
// local number.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, rePhone.MatchString(s)
}

func Table(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, reTable.MatchString(s)
}

// ID validates a simple resource identifier (menu/material/order ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Qty clamps a line quantity into a sane window.
func Qty(n int) int {
	if n < 1 {
		return 1
	}
	if n > 99 {
		return 99
	}
	return n
}
