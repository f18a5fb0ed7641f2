package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-phonebook/internal/book"
	"github.com/tartampluch/go-phonebook/internal/config"
)

// CalendarGenerator renders the birthdays of a directory as an iCalendar feed.
type CalendarGenerator struct {
	Clock Clock

	// FormatSummary lets the command layer inject localized event titles.
	FormatSummary func(name string, age int) string
}

// Generate returns the ICS document and the number of events it contains.
// Each birthday yields one all-day event for the previous, current and next
// year, skipping years before the birth year.
func (g *CalendarGenerator) Generate(ctx context.Context, dir *book.Directory) ([]byte, int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// One DTSTAMP shared by every event of this generation.
	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, r := range dir.Records() {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		b, ok := r.Birthday()
		if !ok {
			continue
		}
		for _, e := range g.createEvents(r.Name(), b, now) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	// An empty directory still yields a valid VCALENDAR.
	count := len(cal.Children)
	if count == 0 {
		g.logSuccess(dir.Len(), 0)
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	g.logSuccess(dir.Len(), count)
	return buf.Bytes(), count, nil
}

// createEvents builds the events of one contact around the current year.
func (g *CalendarGenerator) createEvents(name string, b book.Birthday, now time.Time) []*ical.Event {
	birth := b.Date()
	// UIDs depend only on the name, the birth date and the event year.
	input := fmt.Sprintf(config.FormatHashInput, name, birth.Format(config.DateFormatFullDash), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

	currentYear := now.Year()
	var events []*ical.Event
	for _, y := range []int{currentYear - 1, currentYear, currentYear + 1} {
		if y < birth.Year() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, g.summary(name, b.AgeOn(y)))

		// Feb 29 normalizes to Mar 1 in non-leap years, as in the upcoming query.
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(time.Date(y, birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC))
		event.Props.Set(dtStartProp)

		events = append(events, event)
	}
	return events
}

func (g *CalendarGenerator) summary(name string, age int) string {
	if g.FormatSummary != nil {
		return g.FormatSummary(name, age)
	}
	if age <= 0 {
		return fmt.Sprintf(config.FallbackSummaryBirth, name)
	}
	return fmt.Sprintf(config.FallbackSummaryAge, name, age)
}

func (g *CalendarGenerator) logSuccess(contacts, events int) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyCount, contacts),
			slog.Int(config.LogKeyEvents, events),
		),
	)
}

// WriteCalendarFile renders dir and writes the feed to path.
func (g *CalendarGenerator) WriteCalendarFile(ctx context.Context, path string, dir *book.Directory) (int, error) {
	data, count, err := g.Generate(ctx, dir)
	if err != nil {
		return 0, err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return 0, err
	}
	return count, nil
}
