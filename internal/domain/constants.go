package domain

// DateFormat calendar date wire format (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// User-visible selection messages
const (
	MsgNoSlotsForDate    = "no slots available for selected date"
	MsgFailedToLoadSlots = "failed to load availability"
)

// Selection event names reported to callers
const (
	EventDateSelected = "date"
	EventTimeSelected = "time"
)
