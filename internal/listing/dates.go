package listing

import (
	"regexp"
	"time"

	"github.com/pdxmph/todos/internal/db"
)

var plainDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// timestampLayouts are the full-timestamp forms accepted on input
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
}

// NormalizeDate accepts YYYY-MM-DD or a full ISO timestamp and returns the
// calendar date as YYYY-MM-DD. The date is taken as written; timestamps
// are not shifted to another zone.
func NormalizeDate(s string) (string, error) {
	if plainDate.MatchString(s) {
		if _, err := time.Parse(db.DateLayout, s); err != nil {
			return "", invalid("date must be YYYY-MM-DD or ISO format")
		}
		return s, nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(db.DateLayout), nil
		}
	}
	return "", invalid("date must be YYYY-MM-DD or ISO format")
}

// NormalizeOptionalDate is NormalizeDate but passes "" through
func NormalizeOptionalDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	return NormalizeDate(s)
}
