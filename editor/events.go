package editor

// EventType identifies what changed in a session.
type EventType string

const (
	// EventHistoryChanged fires whenever the undo or redo stack changes.
	EventHistoryChanged EventType = "history"
	// EventLayersChanged fires when the layer stack or a layer's attributes
	// change. Data is the affected layer index, or -1 when unknown.
	EventLayersChanged EventType = "layers"
	// EventActiveLayerChanged carries the new active layer index.
	EventActiveLayerChanged EventType = "active_layer"
	// EventSelectionChanged carries the selected gid.GID.
	EventSelectionChanged EventType = "selection"
	// EventToolChanged carries the new tool.ID.
	EventToolChanged EventType = "tool"
)

// Event is a session notification for the host.
type Event struct {
	Type EventType
	Data any
}

// EventQueue is a FIFO the host drains once per frame.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports how many events are pending.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
