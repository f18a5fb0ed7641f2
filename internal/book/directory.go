package book

import (
	"time"

	"github.com/samber/lo"
)

// Directory maps contact names to records and remembers insertion order for display.
type Directory struct {
	records map[string]*Record
	order   []string
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{records: make(map[string]*Record)}
}

// Add stores record under its name. A record with the same name is replaced
// and keeps its display position.
func (d *Directory) Add(record *Record) {
	if _, exists := d.records[record.name]; !exists {
		d.order = append(d.order, record.name)
	}
	d.records[record.name] = record
}

// Find looks a record up by name.
func (d *Directory) Find(name string) (*Record, bool) {
	r, ok := d.records[name]
	return r, ok
}

// Delete removes the named record. Unknown names are ignored.
func (d *Directory) Delete(name string) {
	if _, ok := d.records[name]; !ok {
		return
	}
	delete(d.records, name)
	d.order = lo.Without(d.order, name)
}

// Len returns the number of records.
func (d *Directory) Len() int {
	return len(d.order)
}

// Records returns the records in insertion order.
func (d *Directory) Records() []*Record {
	return lo.Map(d.order, func(name string, _ int) *Record {
		return d.records[name]
	})
}

// Merge folds incoming into the directory. A new name is added as is. For an
// existing name, phones not already present are appended and the birthday is
// taken only when the existing record has none.
func (d *Directory) Merge(incoming *Record) {
	existing, ok := d.records[incoming.name]
	if !ok {
		d.Add(incoming)
		return
	}
	for _, p := range incoming.phones {
		if !existing.HasPhone(p.value) {
			existing.AppendPhone(p)
		}
	}
	if b, ok := incoming.Birthday(); ok {
		if _, has := existing.Birthday(); !has {
			_ = existing.AssignBirthday(b)
		}
	}
}

// UpcomingBirthdays returns the records whose next birthday falls within
// [today, today+horizonDays], both ends included, in insertion order.
func (d *Directory) UpcomingBirthdays(today time.Time, horizonDays int) []*Record {
	start := truncateDay(today)
	end := start.AddDate(0, 0, horizonDays)
	return lo.Filter(d.Records(), func(r *Record, _ int) bool {
		b, ok := r.Birthday()
		if !ok {
			return false
		}
		next := b.NextOccurrence(start)
		return !next.Before(start) && !next.After(end)
	})
}
