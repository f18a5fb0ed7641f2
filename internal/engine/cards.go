package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-phonebook/internal/book"
	"github.com/tartampluch/go-phonebook/internal/config"
)

var (
	errCardNoName  = errors.New(config.ErrSnapshotNoName)
	errYearUnknown = errors.New(config.ErrYearUnknown)
)

// telFormatting strips the punctuation address books put inside phone numbers.
var telFormatting = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")

// recordToCard converts a record into a vCard 4.0 card.
// Phones keep their order as repeated TEL fields.
func recordToCard(r *book.Record) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, config.VCardVersion)
	card.SetValue(vcard.FieldFormattedName, r.Name())
	for _, p := range r.Phones() {
		card.Add(vcard.FieldTelephone, &vcard.Field{Value: p.String()})
	}
	if b, ok := r.Birthday(); ok {
		card.SetValue(vcard.FieldBirthday, b.Date().Format(config.DateFormatFullDash))
	}
	return card
}

// WriteVCards encodes every record of dir as a vCard stream, in directory order.
// It returns the number of cards written.
func WriteVCards(w io.Writer, dir *book.Directory) (int, error) {
	enc := vcard.NewEncoder(w)
	count := 0
	for _, r := range dir.Records() {
		if err := enc.Encode(recordToCard(r)); err != nil {
			return count, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
		count++
	}
	return count, nil
}

// cardToRecord builds a record from a vCard. In strict mode any invalid phone or
// birthday fails the card; otherwise the value is skipped and logged.
func cardToRecord(card vcard.Card, strict bool) (*book.Record, error) {
	// Name Strategy: FN (Formatted) > N (Structured).
	// Snapshots are read back verbatim so that a name survives a round trip.
	name := card.Value(vcard.FieldFormattedName)
	if !strict {
		name = strings.TrimSpace(name)
	}
	if name == "" && !strict {
		if n := card.Name(); n != nil {
			name = strings.TrimSpace(strings.Join([]string{n.GivenName, n.FamilyName}, " "))
		}
	}
	if strings.TrimSpace(name) == "" {
		return nil, errCardNoName
	}

	r, err := book.NewRecord(name)
	if err != nil {
		return nil, err
	}

	for _, tel := range card.Values(vcard.FieldTelephone) {
		raw := tel
		if !strict {
			raw = normalizeTel(tel)
		}
		if err := r.AddPhone(raw); err != nil {
			if strict {
				return nil, err
			}
			slog.Warn(config.MsgSkippedPhone,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyName, name,
				config.LogKeyValue, tel)
		}
	}

	if value := card.Value(vcard.FieldBirthday); value != "" {
		b, err := parseDate(value)
		if err != nil {
			if strict {
				return nil, err
			}
			slog.Warn(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyName, name,
				config.LogKeyValue, value,
				config.LogKeyError, err)
		} else if err := r.AssignBirthday(b); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// normalizeTel drops a tel: URI prefix and formatting punctuation.
func normalizeTel(value string) string {
	value = strings.TrimPrefix(strings.TrimSpace(value), "tel:")
	return telFormatting.Replace(value)
}

// parseDate handles the vCard BDAY layouts that carry a year.
// Year-less dates (--MM-DD) are refused: a birthday needs a year.
func parseDate(value string) (book.Birthday, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return book.NewBirthday(t.Year(), t.Month(), t.Day())
		}
	}

	if strings.HasPrefix(value, "--") {
		return book.Birthday{}, errYearUnknown
	}
	return book.Birthday{}, errors.New(config.ErrDateParse)
}
