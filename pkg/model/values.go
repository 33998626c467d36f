package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layouts used for the text form of dates and times of day.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var (
	ErrBadWeekdays = errors.New("weekdays must be 7 characters from MTWRFSU or -")
	ErrBadClock    = errors.New("time of day must look like 15:04")
)

// weekdayLetters lists the day letters in the order the bits are stored, starting with Monday.
const weekdayLetters = "MTWRFSU"

// Weekdays is the set of days a course meets. Bit 0 is Monday and bit 6 is Sunday.
type Weekdays uint8

// Has reports whether the course meets on the given day.
func (w Weekdays) Has(day time.Weekday) bool {
	return w&(1<<weekdayBit(day)) != 0
}

// With returns a copy of w with the given day switched on or off.
func (w Weekdays) With(day time.Weekday, on bool) Weekdays {
	if on {
		return w | 1<<weekdayBit(day)
	}

	return w &^ (1 << weekdayBit(day))
}

// String renders the set as seven characters, e.g. "M-W-F--".
func (w Weekdays) String() string {
	var b strings.Builder

	for i := 0; i < len(weekdayLetters); i++ {
		if w&(1<<i) != 0 {
			b.WriteByte(weekdayLetters[i])
		} else {
			b.WriteByte('-')
		}
	}

	return b.String()
}

// ParseWeekdays is the inverse of Weekdays.String. Letters are case insensitive.
func ParseWeekdays(s string) (Weekdays, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != len(weekdayLetters) {
		return 0, fmt.Errorf("error parsing weekdays %q: %w", s, ErrBadWeekdays)
	}

	var w Weekdays

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case weekdayLetters[i]:
			w |= 1 << i
		case '-':
		default:
			return 0, fmt.Errorf("error parsing weekdays %q: %w", s, ErrBadWeekdays)
		}
	}

	return w, nil
}

func weekdayBit(day time.Weekday) int {
	// time.Sunday is 0; shift so Monday is bit 0 and Sunday bit 6
	return (int(day) + 6) % 7
}

// Clock is a time of day in minutes since midnight.
type Clock int

// NewClock returns the Clock for hour:minute.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// ParseClock parses "15:04" (a single-digit hour is accepted).
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("error parsing time %q: %w", s, ErrBadClock)
	}

	return NewClock(t.Hour(), t.Minute()), nil
}

// FormatDate renders a date for display.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a displayed date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing date %q: %w", s, err)
	}

	return t, nil
}
