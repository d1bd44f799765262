// Package tool turns pointer events into map edits. Each strategy mutates
// the map directly and returns the command that reverses it, or nil when
// nothing changed.
package tool

import (
	"github.com/milk9111/tilesmith/command"
	"github.com/milk9111/tilesmith/gid"
	"github.com/milk9111/tilesmith/selection"
	"github.com/milk9111/tilesmith/tilemap"
)

// ID selects a strategy.
type ID int

const (
	Brush ID = iota
	Eraser
	Eyedropper
	Fill
	Line
)

func (id ID) String() string {
	switch id {
	case Brush:
		return "Brush"
	case Eraser:
		return "Eraser"
	case Eyedropper:
		return "Eyedropper"
	case Fill:
		return "Fill"
	case Line:
		return "Line"
	default:
		return "Unknown"
	}
}

// Phase is the pointer phase of an event.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
)

// Event is one pointer sample in tile coordinates. StartCol/StartRow hold
// the cell where the current gesture went down.
type Event struct {
	Phase    Phase
	Col      int
	Row      int
	StartCol int
	StartRow int
}

// State is the editor state a strategy reads.
type State struct {
	Tool        ID
	LayerIndex  int
	SelectedGID gid.GID
	Stamp       *selection.Stamp
	OnEyedrop   func(gid.GID)
}

// Strategy handles one event.
type Strategy func(ev Event, st State, m *tilemap.Map) command.Command

var registry = map[ID]Strategy{
	Brush:      brush,
	Eraser:     eraser,
	Eyedropper: eyedropper,
	Fill:       fill,
	Line:       line,
}

// Lookup returns the strategy registered for id.
func Lookup(id ID) (Strategy, bool) {
	s, ok := registry[id]
	return s, ok
}

// Dispatch runs the strategy for st.Tool. Unknown tools return nil.
func Dispatch(ev Event, st State, m *tilemap.Map) command.Command {
	s, ok := registry[st.Tool]
	if !ok || m == nil {
		return nil
	}
	return s(ev, st, m)
}

// paintable reports whether cells of the layer at index may be written.
func paintable(m *tilemap.Map, index int) bool {
	l, ok := m.Layer(index)
	return ok && l.IsTile() && !l.Locked
}

// paintCommand wraps edits, returning nil for an empty batch.
func paintCommand(edits []command.CellEdit) command.Command {
	if len(edits) == 0 {
		return nil
	}
	return command.Paint{Edits: edits}
}
