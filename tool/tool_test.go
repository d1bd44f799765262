package tool

import (
	"testing"

	"github.com/milk9111/tilesmith/command"
	"github.com/milk9111/tilesmith/gid"
	"github.com/milk9111/tilesmith/selection"
	"github.com/milk9111/tilesmith/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func down(col, row int) Event { return Event{Phase: PhaseDown, Col: col, Row: row, StartCol: col, StartRow: row} }

func paintEdits(t *testing.T, c command.Command) []command.CellEdit {
	t.Helper()
	require.NotNil(t, c)
	p, ok := c.(command.Paint)
	require.True(t, ok, "expected paint command, got %T", c)
	return p.Edits
}

func TestDispatchUnknownTool(t *testing.T) {
	m := tilemap.New(2, 2, 16, 16)
	assert.Nil(t, Dispatch(down(0, 0), State{Tool: ID(42), SelectedGID: 1}, m))
	assert.Equal(t, "Unknown", ID(42).String())
	_, ok := Lookup(Fill)
	assert.True(t, ok)
}

func TestBrush(t *testing.T) {
	m := tilemap.New(3, 3, 16, 16)
	st := State{Tool: Brush, SelectedGID: 5}

	edits := paintEdits(t, Dispatch(down(1, 2), st, m))
	require.Len(t, edits, 1)
	assert.Equal(t, command.CellEdit{Layer: 0, Col: 1, Row: 2, Old: 0, New: 5}, edits[0])
	assert.Equal(t, gid.GID(5), m.CellGID(0, 1, 2))

	assert.Nil(t, Dispatch(down(1, 2), st, m), "second paint of the same gid is a no-op")

	cases := []struct {
		name string
		ev   Event
		st   State
	}{
		{"up", Event{Phase: PhaseUp, Col: 0, Row: 0}, st},
		{"empty_selection", down(0, 0), State{Tool: Brush}},
		{"out_of_bounds", down(3, 0), st},
		{"negative", down(-1, 0), st},
		{"bad_layer", down(0, 0), State{Tool: Brush, SelectedGID: 5, LayerIndex: 4}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Nil(t, Dispatch(c.ev, c.st, m))
			assert.Equal(t, gid.Empty, m.CellGID(0, 0, 0))
		})
	}

	move := paintEdits(t, Dispatch(Event{Phase: PhaseMove, Col: 0, Row: 0}, st, m))
	assert.Len(t, move, 1)
}

func TestBrushSkipsLockedAndObjectLayers(t *testing.T) {
	m := tilemap.New(2, 2, 16, 16)
	l, _ := m.Layer(0)
	m.ReplaceLayer(0, l.WithLocked(true))
	m.AddLayer(tilemap.NewObjectLayer("objs", 1))

	for _, layer := range []int{0, 1} {
		for _, id := range []ID{Brush, Eraser, Fill, Line} {
			ev := down(0, 0)
			if id == Line {
				ev.Phase = PhaseUp
			}
			assert.Nil(t, Dispatch(ev, State{Tool: id, LayerIndex: layer, SelectedGID: 3}, m), "%s on layer %d", id, layer)
		}
	}
}

func TestStampBrush(t *testing.T) {
	t.Run("clipped_at_edge", func(t *testing.T) {
		m := tilemap.New(3, 3, 16, 16)
		var sel selection.Selection
		sel.SelectStamp(10, 2, 2, 8)
		st := State{Tool: Brush, SelectedGID: sel.GID(), Stamp: sel.Stamp()}

		edits := paintEdits(t, Dispatch(down(2, 2), st, m))
		require.Len(t, edits, 1)
		assert.Equal(t, gid.GID(10), m.CellGID(0, 2, 2))
	})

	t.Run("transparent_cells_untouched", func(t *testing.T) {
		m := tilemap.New(3, 3, 16, 16)
		m.SetCellGID(0, 1, 0, 7)
		stamp := &selection.Stamp{Width: 2, Height: 2, GIDs: []gid.GID{4, 0, 0, 6}}
		st := State{Tool: Brush, SelectedGID: 4, Stamp: stamp}

		edits := paintEdits(t, Dispatch(down(0, 0), st, m))
		require.Len(t, edits, 2)
		assert.Equal(t, gid.GID(4), m.CellGID(0, 0, 0))
		assert.Equal(t, gid.GID(7), m.CellGID(0, 1, 0))
		assert.Equal(t, gid.Empty, m.CellGID(0, 0, 1))
		assert.Equal(t, gid.GID(6), m.CellGID(0, 1, 1))

		assert.Nil(t, Dispatch(down(0, 0), st, m), "repainting the same stamp changes nothing")
	})

	t.Run("transparent_top_left", func(t *testing.T) {
		m := tilemap.New(2, 2, 16, 16)
		stamp := &selection.Stamp{Width: 2, Height: 1, GIDs: []gid.GID{0, 3}}
		st := State{Tool: Brush, Stamp: stamp}

		edits := paintEdits(t, Dispatch(down(0, 0), st, m))
		require.Len(t, edits, 1)
		assert.Equal(t, gid.GID(3), m.CellGID(0, 1, 0))
	})
}

func TestEraser(t *testing.T) {
	m := tilemap.New(2, 2, 16, 16)
	m.SetCellGID(0, 1, 1, 8)
	st := State{Tool: Eraser}

	edits := paintEdits(t, Dispatch(down(1, 1), st, m))
	assert.Equal(t, command.CellEdit{Layer: 0, Col: 1, Row: 1, Old: 8, New: 0}, edits[0])
	assert.Nil(t, Dispatch(down(1, 1), st, m))
	assert.Nil(t, Dispatch(down(5, 5), st, m))
	assert.Nil(t, Dispatch(Event{Phase: PhaseUp, Col: 0, Row: 0}, st, m))
}

func TestEyedropper(t *testing.T) {
	m := tilemap.New(2, 2, 16, 16)
	m.SetCellGID(0, 0, 1, gid.Compose(12, true, false, false))

	var picked []gid.GID
	st := State{Tool: Eyedropper, OnEyedrop: func(g gid.GID) { picked = append(picked, g) }}

	assert.Nil(t, Dispatch(down(0, 1), st, m))
	assert.Nil(t, Dispatch(down(1, 1), st, m))
	assert.Nil(t, Dispatch(Event{Phase: PhaseMove, Col: 0, Row: 1}, st, m))
	assert.Nil(t, Dispatch(down(0, 1), State{Tool: Eyedropper}, m))
	assert.Equal(t, []gid.GID{gid.Compose(12, true, false, false)}, picked)
}

func TestFill(t *testing.T) {
	t.Run("whole_empty_map", func(t *testing.T) {
		m := tilemap.New(4, 4, 16, 16)
		edits := paintEdits(t, Dispatch(down(0, 0), State{Tool: Fill, SelectedGID: 5}, m))
		assert.Len(t, edits, 16)
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				assert.Equal(t, gid.GID(5), m.CellGID(0, col, row))
			}
		}
		assert.Equal(t, command.CellEdit{Layer: 0, Col: 0, Row: 0, Old: 0, New: 5}, edits[0])
		assert.Equal(t, command.CellEdit{Layer: 0, Col: 1, Row: 0, Old: 0, New: 5}, edits[1])
		assert.Equal(t, command.CellEdit{Layer: 0, Col: 0, Row: 1, Old: 0, New: 5}, edits[2])
	})

	t.Run("diagonal_is_not_connected", func(t *testing.T) {
		m := tilemap.New(3, 3, 16, 16)
		for i := 0; i < 3; i++ {
			m.SetCellGID(0, i, i, 2)
		}
		edits := paintEdits(t, Dispatch(down(0, 0), State{Tool: Fill, SelectedGID: 9}, m))
		require.Len(t, edits, 1)
		assert.Equal(t, gid.GID(9), m.CellGID(0, 0, 0))
		assert.Equal(t, gid.GID(2), m.CellGID(0, 1, 1))
	})

	t.Run("bounded_by_other_values", func(t *testing.T) {
		m := tilemap.New(5, 1, 16, 16)
		m.SetCellGID(0, 2, 0, 1)
		edits := paintEdits(t, Dispatch(down(4, 0), State{Tool: Fill, SelectedGID: 3}, m))
		assert.Len(t, edits, 2)
		assert.Equal(t, gid.Empty, m.CellGID(0, 0, 0))
	})

	t.Run("no_ops", func(t *testing.T) {
		m := tilemap.New(2, 2, 16, 16)
		m.SetCellGID(0, 0, 0, 4)
		assert.Nil(t, Dispatch(down(0, 0), State{Tool: Fill, SelectedGID: 4}, m))
		assert.Nil(t, Dispatch(down(0, 0), State{Tool: Fill}, m))
		assert.Nil(t, Dispatch(down(2, 0), State{Tool: Fill, SelectedGID: 1}, m))
		assert.Nil(t, Dispatch(Event{Phase: PhaseMove}, State{Tool: Fill, SelectedGID: 1}, m))
	})

	t.Run("capped", func(t *testing.T) {
		m := tilemap.New(120, 100, 16, 16)
		edits := paintEdits(t, Dispatch(down(60, 50), State{Tool: Fill, SelectedGID: 1}, m))
		assert.Len(t, edits, MaxFillEdits)
		filled := 0
		for row := 0; row < 100; row++ {
			for col := 0; col < 120; col++ {
				if m.CellGID(0, col, row) == 1 {
					filled++
				}
			}
		}
		assert.Equal(t, MaxFillEdits, filled)
	})
}

func TestLine(t *testing.T) {
	m := tilemap.New(4, 4, 16, 16)
	st := State{Tool: Line, SelectedGID: 2}

	assert.Nil(t, Dispatch(down(0, 0), st, m))
	edits := paintEdits(t, Dispatch(Event{Phase: PhaseUp, StartCol: 0, StartRow: 0, Col: 3, Row: 3}, st, m))
	require.Len(t, edits, 4)
	for i := 0; i < 4; i++ {
		assert.Equal(t, gid.GID(2), m.CellGID(0, i, i))
	}

	edits = paintEdits(t, Dispatch(Event{Phase: PhaseUp, StartCol: -2, StartRow: 0, Col: 5, Row: 0}, st, m))
	assert.Len(t, edits, 3, "off-map points are clipped and (0,0) already holds the gid")
}
