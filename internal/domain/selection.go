package domain

// SelectionPhase is the state of a slot selection.
type SelectionPhase string

const (
	PhaseIdle                SelectionPhase = "idle"
	PhaseDateChosenWithSlots SelectionPhase = "date_chosen_with_slots"
	PhaseDateChosenNoSlots   SelectionPhase = "date_chosen_no_slots"
)

// SelectionView is what the user sees; exactly one at any time.
type SelectionView string

const (
	ViewLoading SelectionView = "loading"
	ViewMessage SelectionView = "message"
	ViewSlots   SelectionView = "slots"
)

// SelectionState is a point-in-time copy of a selection controller's state.
type SelectionState struct {
	SelectedDate     *CalendarDate
	SelectedDaySlots []string
	ErrorMessage     string // empty = no message
	Loading          bool
}

// NewSelectionState returns the initial idle state.
func NewSelectionState() SelectionState {
	return SelectionState{SelectedDaySlots: []string{}}
}

// Phase derives the state machine phase.
func (s SelectionState) Phase() SelectionPhase {
	switch {
	case s.SelectedDate == nil:
		return PhaseIdle
	case len(s.SelectedDaySlots) > 0:
		return PhaseDateChosenWithSlots
	default:
		return PhaseDateChosenNoSlots
	}
}

// View derives the render state: loading wins over a message, a message wins over slots.
func (s SelectionState) View() SelectionView {
	switch {
	case s.Loading:
		return ViewLoading
	case s.ErrorMessage != "":
		return ViewMessage
	default:
		return ViewSlots
	}
}
