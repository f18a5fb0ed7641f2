package engine_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-phonebook/internal/book"
	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/engine"
)

func TestCalendar_Generate(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	gen := &engine.CalendarGenerator{Clock: engine.FixedClock{At: now}}

	data, count, err := gen.Generate(context.Background(), sampleDirectory(t))
	require.NoError(t, err)

	// Alice and the leapling get 2024, 2025 and 2026; Bob has no birthday.
	assert.Equal(t, 6, count)

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 6)

	summaries := make([]string, 0, len(events))
	for _, e := range events {
		s, err := e.Props.Text(config.PropSummary)
		require.NoError(t, err)
		summaries = append(summaries, s)
	}
	assert.Contains(t, summaries, "Birthday: Alice (35)")
	assert.Contains(t, summaries, "Birthday: Jean Leap (26)")

	// 2025 is not a leap year: the event moves to March 1st.
	assert.Contains(t, string(data), "DTSTART;VALUE=DATE:20250301")
	assert.Contains(t, string(data), "DTSTART;VALUE=DATE:20240229")
}

func TestCalendar_SkipsYearsBeforeBirth(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d := book.NewDirectory()
	baby, err := book.NewRecord("Baby")
	require.NoError(t, err)
	require.NoError(t, baby.SetBirthday("10.10.2025"))
	d.Add(baby)

	var ages []int
	gen := &engine.CalendarGenerator{
		Clock: engine.FixedClock{At: now},
		FormatSummary: func(name string, age int) string {
			ages = append(ages, age)
			return fmt.Sprintf("%s/%d", name, age)
		},
	}

	data, count, err := gen.Generate(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "No event for 2024, before the birth")
	assert.Equal(t, []int{0, 1}, ages)
	assert.Contains(t, string(data), "SUMMARY:Baby/0")
}

func TestCalendar_Empty(t *testing.T) {
	gen := &engine.CalendarGenerator{Clock: engine.RealClock{}}
	data, count, err := gen.Generate(context.Background(), book.NewDirectory())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestCalendar_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birthdays.ics")
	gen := &engine.CalendarGenerator{Clock: engine.FixedClock{At: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}}

	count, err := gen.WriteCalendarFile(context.Background(), path, sampleDirectory(t))
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "BEGIN:VCALENDAR"))
}

func TestExportVCardFile_ReImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.vcf")
	original := sampleDirectory(t)

	count, err := engine.ExportVCardFile(path, original)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	im := &engine.Importer{}
	records, err := im.Import(context.Background(), path, "")
	require.NoError(t, err)

	restored := book.NewDirectory()
	for _, r := range records {
		restored.Merge(r)
	}
	assert.Equal(t, view(original), view(restored))
}
