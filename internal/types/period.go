package types

import (
	"errors"
	"fmt"
	"time"
)

type PeriodKind string

const (
	PeriodWeek  PeriodKind = "week"
	PeriodMonth PeriodKind = "month"
	PeriodYear  PeriodKind = "year"
)

var (
	ErrInvalidPeriod = errors.New("period must be one of week, month, year")
	ErrInvalidYear   = errors.New("year must be between 1970 and 9999")
	ErrInvalidMonth  = errors.New("month must be between 1 and 12")
	ErrInvalidWeek   = errors.New("week must be a valid ISO week of the year")
)

// Period is a half-open time range [Start, End) in UTC.
type Period struct {
	Kind  PeriodKind `json:"period" example:"month"`
	Start time.Time  `json:"start" example:"2026-10-01T00:00:00Z"`
	End   time.Time  `json:"end" example:"2026-11-01T00:00:00Z"`
}

// ResolvePeriod returns the period of the given kind selected by year, month
// and week. Selectors that are zero default to the period containing now.
//
// For weeks, year and week are interpreted as ISO year and ISO week.
func ResolvePeriod(kind PeriodKind, year, month, week int, now time.Time) (Period, error) {
	now = now.UTC()
	if kind == "" {
		kind = PeriodMonth
	}

	switch kind {
	case PeriodYear:
		if year == 0 {
			year = now.Year()
		}
		if err := validateYear(year); err != nil {
			return Period{}, err
		}

		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return Period{Kind: kind, Start: start, End: start.AddDate(1, 0, 0)}, nil

	case PeriodMonth:
		if year == 0 {
			year = now.Year()
		}
		if month == 0 {
			month = int(now.Month())
		}
		if err := validateYear(year); err != nil {
			return Period{}, err
		}
		if month < 1 || month > 12 {
			return Period{}, ErrInvalidMonth
		}

		start := NewMonth(year, time.Month(month)).Start()
		return Period{Kind: kind, Start: start, End: start.AddDate(0, 1, 0)}, nil

	case PeriodWeek:
		isoYear, isoWeek := now.ISOWeek()
		if year == 0 {
			year = isoYear
		}
		if week == 0 {
			week = isoWeek
		}
		if err := validateYear(year); err != nil {
			return Period{}, err
		}
		if week < 1 || week > WeeksInYear(year) {
			return Period{}, fmt.Errorf("%w: %d has %d weeks", ErrInvalidWeek, year, WeeksInYear(year))
		}

		start := isoWeekStart(year, week)
		return Period{Kind: kind, Start: start, End: start.AddDate(0, 0, 7)}, nil
	}

	return Period{}, ErrInvalidPeriod
}

// Months returns all months that overlap with the period.
func (p Period) Months() []Month {
	var months []Month
	for m := MonthOf(p.Start); m.Start().Before(p.End); m = m.AddDate(0, 1) {
		months = append(months, m)
	}
	return months
}

// Contains reports whether t lies within the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// WeeksInYear returns the number of ISO weeks in the ISO year.
func WeeksInYear(year int) int {
	// December 28th is always in the last ISO week of its year
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// isoWeekStart returns the Monday starting the ISO week.
func isoWeekStart(year, week int) time.Time {
	// January 4th is always in ISO week 1
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -offset)
	return monday.AddDate(0, 0, (week-1)*7)
}

func validateYear(year int) error {
	if year < 1970 || year > 9999 {
		return ErrInvalidYear
	}
	return nil
}
