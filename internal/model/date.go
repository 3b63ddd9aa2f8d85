package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/portfolioos/sidecar/internal/apperrors"
)

// DateFormat is the ISO-8601 day format used everywhere on the wire.
const DateFormat = "2006-01-02"

// Date is a day-granularity timestamp that marshals as "YYYY-MM-DD".
// All ledger and simulation interfaces exchange dates in this form.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given year, month and day (UTC).
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date, truncated to day granularity.
func Today() Date {
	y, m, d := time.Now().UTC().Date()
	return NewDate(y, m, d)
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, s)
	}
	return Date{t}, nil
}

// DaysUntil returns the number of whole days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time).Hours() / 24)
}

// AddDays returns the date i days after d.
func (d Date) AddDays(i int) Date {
	return Date{d.Time.AddDate(0, 0, i)}
}

// String returns the date in "YYYY-MM-DD" form.
func (d Date) String() string {
	return d.Format(DateFormat)
}

// MarshalJSON renders the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateFormat) + `"`), nil
}

// UnmarshalJSON accepts a quoted "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
