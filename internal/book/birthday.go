package book

import (
	"time"

	"github.com/tartampluch/go-phonebook/internal/config"
)

// Birthday is a calendar date. It keeps the parsed date, not the text it came from,
// so that projecting it onto another year is exact.
type Birthday struct {
	date time.Time
}

// ParseBirthday parses a DD.MM.YYYY date. Impossible dates such as 31.02.2020
// fail with ErrInvalidDate.
func ParseBirthday(raw string) (Birthday, error) {
	if !hasBirthdayShape(raw) {
		return Birthday{}, ErrInvalidDate
	}
	t, err := time.Parse(config.DateFormatBirthday, raw)
	if err != nil {
		return Birthday{}, ErrInvalidDate
	}
	return Birthday{date: t}, nil
}

// NewBirthday builds a Birthday from its components. The components must denote
// a real date; time.Date normalization (Feb 30 -> Mar 2) is rejected.
func NewBirthday(year int, month time.Month, day int) (Birthday, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day || year < 0 {
		return Birthday{}, ErrInvalidDate
	}
	return Birthday{date: t}, nil
}

// hasBirthdayShape checks the DD.MM.YYYY skeleton. time.Parse alone would accept
// a signed year such as "01.01.-123".
func hasBirthdayShape(raw string) bool {
	if len(raw) != len(config.DateFormatBirthday) {
		return false
	}
	for i := 0; i < len(raw); i++ {
		if i == 2 || i == 5 {
			if raw[i] != '.' {
				return false
			}
			continue
		}
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}

// Date returns the birth date at midnight UTC.
func (b Birthday) Date() time.Time {
	return b.date
}

// String formats the birthday as DD.MM.YYYY.
func (b Birthday) String() string {
	return b.date.Format(config.DateFormatBirthday)
}

// NextOccurrence returns the first anniversary on or after today's calendar date.
// Feb 29 falls on Mar 1 in non-leap years (time.Date normalization).
func (b Birthday) NextOccurrence(today time.Time) time.Time {
	start := truncateDay(today)
	candidate := time.Date(start.Year(), b.date.Month(), b.date.Day(), 0, 0, 0, 0, time.UTC)
	if candidate.Before(start) {
		candidate = time.Date(start.Year()+1, b.date.Month(), b.date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return candidate
}

// AgeOn returns the age reached at the anniversary falling in year y.
func (b Birthday) AgeOn(y int) int {
	return y - b.date.Year()
}

// truncateDay keeps only the calendar date of t.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
