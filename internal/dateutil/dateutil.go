// Package dateutil handles the ISO dates used in document metadata headers.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate indicates a date that is not in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("invalid date")

// isoLayout is the only date format accepted in headers.
const isoLayout = "2006-01-02"

// ParseISO parses a header date field. Dates carry no time zone; they are
// interpreted as midnight UTC so feed timestamps are reproducible.
func ParseISO(s string) (time.Time, error) {
	t, err := time.ParseInLocation(isoLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatISO renders a date the way headers spell them.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}
