package models

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// Month is a calendar month in "YYYY-MM" form.
type Month string

// ParseMonth validates s and returns it as a Month.
func ParseMonth(s string) (Month, error) {
	if _, err := time.Parse(monthLayout, s); err != nil {
		return "", fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	return Month(s), nil
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month(t.Format(monthLayout))
}

// Valid reports whether m is a well-formed "YYYY-MM" month.
func (m Month) Valid() bool {
	_, err := time.Parse(monthLayout, string(m))
	return err == nil
}

func (m Month) String() string {
	return string(m)
}
