package game

// EventKind identifies what happened in an Event.
type EventKind int

const (
	EventQuit EventKind = iota + 1
	EventResize
	EventKeyDown
	EventMouseWheel
)

// Event is one input or window event polled at the start of a frame.
type Event struct {
	Kind EventKind

	Key Key // EventKeyDown

	Width, Height int // EventResize

	Wheel float64 // EventMouseWheel, positive away from the user
}
