package book_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-phonebook/internal/book"
)

func TestParseBirthday_RoundTrip(t *testing.T) {
	for _, raw := range []string{"01.01.1990", "29.02.2000", "31.12.1999", "15.06.1985", "28.02.2023"} {
		b, err := book.ParseBirthday(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, b.String(), "Display must round-trip")
	}
}

func TestParseBirthday_StoresDate(t *testing.T) {
	b, err := book.ParseBirthday("15.06.1985")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1985, time.June, 15, 0, 0, 0, 0, time.UTC), b.Date())
}

func TestParseBirthday_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"impossible day", "31.02.2020"},
		{"feb 29 non leap", "29.02.2023"},
		{"month 13", "01.13.2020"},
		{"day zero", "00.01.2020"},
		{"iso layout", "2020-01-01"},
		{"single digits", "1.1.2020"},
		{"short year", "01.01.90"},
		{"signed year", "01.01.-123"},
		{"trailing text", "01.01.2020x"},
		{"slashes", "01/01/2020"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := book.ParseBirthday(tt.raw)
			assert.ErrorIs(t, err, book.ErrInvalidDate)
			assert.ErrorIs(t, err, book.ErrValidation)
		})
	}
}

func TestNewBirthday(t *testing.T) {
	b, err := book.NewBirthday(2000, time.February, 29)
	require.NoError(t, err)
	assert.Equal(t, "29.02.2000", b.String())

	_, err = book.NewBirthday(2023, time.February, 29)
	assert.ErrorIs(t, err, book.ErrInvalidDate, "Normalized dates are not real dates")

	_, err = book.NewBirthday(2020, time.Month(13), 1)
	assert.ErrorIs(t, err, book.ErrInvalidDate)
}

// TestNextOccurrence covers the year projection, including year boundaries and leap days.
func TestNextOccurrence(t *testing.T) {
	// Reference "today": June 15th, 2025 (non-leap year), with a time of day.
	today := time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		birthday string
		expected time.Time
	}{
		{"already passed", "01.01.1990", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"later this year", "31.12.1990", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"today", "15.06.1990", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"yesterday", "14.06.1990", time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)},
		{"leapling in non-leap year", "29.02.2000", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := book.ParseBirthday(tt.birthday)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, b.NextOccurrence(today))
		})
	}
}

func TestNextOccurrence_LeapYearContext(t *testing.T) {
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b, err := book.ParseBirthday("29.02.2000")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), b.NextOccurrence(today),
		"In a leap year, the birthday should be Feb 29, not Mar 1")
}

func TestAgeOn(t *testing.T) {
	b, err := book.ParseBirthday("01.01.1990")
	require.NoError(t, err)
	assert.Equal(t, 36, b.AgeOn(2026))
	assert.Equal(t, 0, b.AgeOn(1990))
}
