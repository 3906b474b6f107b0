package domain

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar date formatted as YYYY-MM-DD. The zero value means no date.
type Day string

func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	return Day(t.In(loc).Format(dayLayout))
}

func ParseDay(raw string) (Day, error) {
	if raw == "" {
		return "", nil
	}
	t, err := time.Parse(dayLayout, raw)
	if err != nil {
		return "", fmt.Errorf("parse day %q: %w", raw, err)
	}
	return Day(t.Format(dayLayout)), nil
}

func (d Day) IsZero() bool {
	return d == ""
}

func (d Day) String() string {
	return string(d)
}
