package domain

// DateIndex is a set of the eligible dates of one snapshot.
// It holds no state beyond what the snapshot already carries and can be rebuilt at any time.
type DateIndex struct {
	set   map[CalendarDate]struct{}
	dates []CalendarDate
}

// NewDateIndex builds the index for snapshot. A nil snapshot yields an empty index.
func NewDateIndex(snapshot *Snapshot) *DateIndex {
	idx := &DateIndex{set: make(map[CalendarDate]struct{}, snapshot.Len())}
	if snapshot == nil {
		return idx
	}
	for _, e := range snapshot.entries {
		if _, seen := idx.set[e.Date]; seen {
			continue
		}
		idx.set[e.Date] = struct{}{}
		idx.dates = append(idx.dates, e.Date)
	}
	return idx
}

// Contains reports whether date has an entry in the snapshot.
// Used to disable calendar days that cannot be selected.
func (i *DateIndex) Contains(date CalendarDate) bool {
	_, ok := i.set[date]
	return ok
}

// Dates returns eligible dates in snapshot order, each once.
func (i *DateIndex) Dates() []CalendarDate {
	return append([]CalendarDate{}, i.dates...)
}
