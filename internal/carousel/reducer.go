package carousel

import "fmt"

// EventType identifies a page transition.
type EventType int

const (
	EventNext EventType = iota
	EventPrev
	EventJump
)

func (t EventType) String() string {
	switch t {
	case EventNext:
		return "next"
	case EventPrev:
		return "prev"
	case EventJump:
		return "jump"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is a user-initiated page transition. Page is only used by EventJump.
type Event struct {
	Type EventType
	Page int
}

// NextEvent, PrevEvent and JumpEvent build events for the presenter controls.
func NextEvent() Event         { return Event{Type: EventNext} }
func PrevEvent() Event         { return Event{Type: EventPrev} }
func JumpEvent(page int) Event { return Event{Type: EventJump, Page: page} }

// State is the caller-owned page position.
type State struct {
	Page       int
	TotalPages int
}

// NewState returns the first page of a list with itemCount items.
func NewState(itemCount, pageSize int) State {
	return State{Page: 0, TotalPages: TotalPages(itemCount, pageSize)}
}

// Reduce applies event to state and returns the resulting state.
// Events on a list without pages leave the state at page 0.
func Reduce(state State, event Event) State {
	switch event.Type {
	case EventNext:
		state.Page = Next(state.Page, state.TotalPages)
	case EventPrev:
		state.Page = Prev(state.Page, state.TotalPages)
	case EventJump:
		if state.TotalPages == 0 {
			state.Page = 0
			break
		}
		state.Page = JumpTo(event.Page, state.TotalPages)
	}
	return state
}
