package domain

import (
	"fmt"
	"time"
)

// AvailabilityRecord is one day of availability as delivered by an availability source.
type AvailabilityRecord struct {
	Date  string   // YYYY-MM-DD
	Slots []string // time-of-day strings in provider order
}

// DaySlots holds the bookable times of a single calendar day.
type DaySlots struct {
	Date  CalendarDate
	Times []string
}

// Snapshot is an immutable capture of one specialist's availability.
// Entries keep provider order and days without times are never present.
// A nil *Snapshot behaves as an empty snapshot.
type Snapshot struct {
	specialistID int64
	fetchedAt    time.Time
	entries      []DaySlots
}

// NewSnapshot copies days into a new snapshot, dropping days with no times.
func NewSnapshot(specialistID int64, fetchedAt time.Time, days []DaySlots) *Snapshot {
	entries := make([]DaySlots, 0, len(days))
	for _, day := range days {
		if len(day.Times) == 0 {
			continue
		}
		entries = append(entries, DaySlots{
			Date:  day.Date,
			Times: append([]string(nil), day.Times...),
		})
	}

	return &Snapshot{
		specialistID: specialistID,
		fetchedAt:    fetchedAt,
		entries:      entries,
	}
}

// SnapshotFromRecords parses source records into a snapshot.
// A record with an unparseable date fails the whole snapshot.
func SnapshotFromRecords(specialistID int64, fetchedAt time.Time, records []AvailabilityRecord) (*Snapshot, error) {
	days := make([]DaySlots, 0, len(records))
	for i, rec := range records {
		date, err := ParseDate(rec.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		days = append(days, DaySlots{Date: date, Times: rec.Slots})
	}
	return NewSnapshot(specialistID, fetchedAt, days), nil
}

// SpecialistID returns the specialist the snapshot was fetched for.
func (s *Snapshot) SpecialistID() int64 {
	if s == nil {
		return 0
	}
	return s.specialistID
}

// FetchedAt returns when the snapshot was built.
func (s *Snapshot) FetchedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.fetchedAt
}

// Len returns the number of days in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns a deep copy of the snapshot's days.
func (s *Snapshot) Entries() []DaySlots {
	if s == nil {
		return []DaySlots{}
	}
	out := make([]DaySlots, len(s.entries))
	for i, e := range s.entries {
		out[i] = DaySlots{Date: e.Date, Times: append([]string(nil), e.Times...)}
	}
	return out
}

// Lookup returns the times of the first entry for date.
func (s *Snapshot) Lookup(date CalendarDate) ([]string, bool) {
	if s == nil {
		return nil, false
	}
	for _, e := range s.entries {
		if e.Date == date {
			return append([]string(nil), e.Times...), true
		}
	}
	return nil, false
}

// Records converts the snapshot back to the source wire shape.
func (s *Snapshot) Records() []AvailabilityRecord {
	entries := s.Entries()
	out := make([]AvailabilityRecord, len(entries))
	for i, e := range entries {
		out[i] = AvailabilityRecord{Date: e.Date.String(), Slots: e.Times}
	}
	return out
}
