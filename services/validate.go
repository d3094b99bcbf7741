package services

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time

// SystemClock is the wall clock
func SystemClock() time.Time {
	return time.Now()
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
	colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

	strictPolicy = bluemonday.StrictPolicy()
)

// cleanText trims s and strips any markup
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// cleanOptional cleans an optional text field; blank becomes absent
func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := cleanText(*s)
	if v == "" {
		return nil
	}
	return &v
}

// digitsOnly drops every non-digit rune
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidEmail checks the simple local@domain shape
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidColor checks the #RRGGBB shape
func IsValidColor(color string) bool {
	return colorPattern.MatchString(color)
}

// dateOnly maps t to midnight UTC of its calendar day
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// requireDate rejects a zero date and returns the calendar day
func requireDate(field string, t time.Time) (time.Time, error) {
	if t.IsZero() {
		return t, invalid(field, "is required")
	}
	return dateOnly(t), nil
}

// notInFuture rejects a calendar day after today's, in the clock's location
func notInFuture(field string, day time.Time, now time.Time) error {
	if dateOnly(day).After(dateOnly(now)) {
		return invalid(field, "cannot be in the future")
	}
	return nil
}

func requireText(field, value string) (string, error) {
	v := cleanText(value)
	if v == "" {
		return "", invalid(field, "is required")
	}
	return v, nil
}
