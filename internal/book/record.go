package book

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/tartampluch/go-phonebook/internal/config"
)

// Record aggregates one contact: a name, its phone numbers and an optional birthday.
type Record struct {
	name     string
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates an empty record. The name is the directory key and cannot be
// empty or blank; it is stored as given, surrounding spaces included.
func NewRecord(name string) (*Record, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &Record{name: name}, nil
}

// Name returns the record key.
func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the phone numbers in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// AddPhone validates raw and appends it. The phone list is untouched on failure.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.AppendPhone(p)
	return nil
}

// AppendPhone appends an already validated phone.
func (r *Record) AppendPhone(p Phone) {
	r.phones = append(r.phones, p)
}

// RemovePhone drops every phone equal to raw. Removing an unknown number is a no-op.
func (r *Record) RemovePhone(raw string) {
	r.phones = lo.Reject(r.phones, func(p Phone, _ int) bool {
		return p.value == raw
	})
}

// EditPhone replaces the first phone equal to oldRaw with newRaw, keeping its position.
// newRaw is validated first; a missing oldRaw yields ErrNotFound and appends nothing.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	p, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	_, idx, ok := lo.FindIndexOf(r.phones, func(existing Phone) bool {
		return existing.value == oldRaw
	})
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, oldRaw)
	}
	r.phones[idx] = p
	return nil
}

// FindPhone returns the first phone equal to raw.
func (r *Record) FindPhone(raw string) (Phone, bool) {
	return lo.Find(r.phones, func(p Phone) bool {
		return p.value == raw
	})
}

// HasPhone reports whether raw is already one of the record's phones.
func (r *Record) HasPhone(raw string) bool {
	_, ok := r.FindPhone(raw)
	return ok
}

// SetBirthday parses raw and stores it. A birthday can be set only once:
// any second call fails with ErrAlreadySet, whatever the input.
func (r *Record) SetBirthday(raw string) error {
	if r.birthday != nil {
		return ErrAlreadySet
	}
	b, err := ParseBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// AssignBirthday stores an already parsed birthday under the same single-assignment rule.
func (r *Record) AssignBirthday(b Birthday) error {
	if r.birthday != nil {
		return ErrAlreadySet
	}
	r.birthday = &b
	return nil
}

// Birthday returns the birthday, if any.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// String describes the record on one line.
func (r *Record) String() string {
	phones := lo.Map(r.phones, func(p Phone, _ int) string {
		return p.value
	})
	bday := config.BirthdayNone
	if r.birthday != nil {
		bday = r.birthday.String()
	}
	return fmt.Sprintf(config.FormatDescribe, r.name, strings.Join(phones, config.PhoneSeparator), bday)
}
