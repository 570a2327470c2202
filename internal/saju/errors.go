package saju

import (
	"errors"
	"fmt"
)

// ErrInvalidDate is returned when a month, day or hour is outside its
// numeric range. Day-of-month is not checked against the month length.
var ErrInvalidDate = errors.New("invalid date")

// DateError names the offending field of a rejected birth moment.
type DateError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *DateError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s %d out of range [%d,%d]", ErrInvalidDate, e.Field, e.Value, e.Min, e.Max)
}

func (e *DateError) Unwrap() error {
	return ErrInvalidDate
}

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &DateError{Field: field, Value: v, Min: lo, Max: hi}
	}
	return nil
}

// Validate checks the month, day and hour ranges accepted by Compute.
func Validate(month, day, hour int) error {
	if err := checkRange("month", month, 1, 12); err != nil {
		return err
	}
	if err := checkRange("day", day, 1, 31); err != nil {
		return err
	}
	return checkRange("hour", hour, 0, 23)
}
