package editor

import (
	"context"
	"testing"

	"github.com/milk9111/tilesmith/gid"
	"github.com/milk9111/tilesmith/history"
	"github.com/milk9111/tilesmith/script"
	"github.com/milk9111/tilesmith/tilemap"
	"github.com/milk9111/tilesmith/tool"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, w, h int) *Session {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return NewSession(tilemap.New(w, h, 16, 16), WithLogger(logger))
}

func layerNames(m *tilemap.Map) []string {
	var out []string
	for _, l := range m.Layers() {
		out = append(out, l.Name)
	}
	return out
}

func eventTypes(evts []Event) []EventType {
	out := make([]EventType, len(evts))
	for i, e := range evts {
		out[i] = e.Type
	}
	return out
}

func TestFillAndUndo(t *testing.T) {
	s := newSession(t, 4, 4)
	s.SelectTile(3)
	s.SetTool(tool.Fill)

	require.True(t, s.HandlePointer(tool.PhaseDown, 0, 0))
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			assert.Equal(t, gid.GID(3), s.Map.CellGID(0, col, row))
		}
	}
	assert.Equal(t, 1, s.History.UndoLen())
	assert.Equal(t, 16*16, s.History.UndoBytes())

	require.True(t, s.Undo())
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			assert.Equal(t, gid.Empty, s.Map.CellGID(0, col, row))
		}
	}
	assert.False(t, s.Undo())
	require.True(t, s.Redo())
	assert.Equal(t, gid.GID(3), s.Map.CellGID(0, 3, 3))
}

func TestBrushStrokeIsOneEntryPerSample(t *testing.T) {
	s := newSession(t, 4, 1)
	s.SelectTile(2)

	assert.True(t, s.HandlePointer(tool.PhaseDown, 0, 0))
	assert.True(t, s.HandlePointer(tool.PhaseMove, 1, 0))
	assert.False(t, s.HandlePointer(tool.PhaseMove, 1, 0), "repainting the same cell is a no-op")
	assert.False(t, s.HandlePointer(tool.PhaseUp, 1, 0))
	assert.Equal(t, 2, s.History.UndoLen())
}

func TestLineUsesGestureStart(t *testing.T) {
	s := newSession(t, 5, 5)
	s.SelectTile(1)
	s.SetTool(tool.Line)

	assert.False(t, s.HandlePointer(tool.PhaseDown, 0, 0))
	assert.False(t, s.HandlePointer(tool.PhaseMove, 2, 2))
	require.True(t, s.HandlePointer(tool.PhaseUp, 4, 4))
	for i := 0; i < 5; i++ {
		assert.Equal(t, gid.GID(1), s.Map.CellGID(0, i, i))
	}
	assert.Equal(t, 1, s.History.UndoLen())
}

func TestEyedropperSelects(t *testing.T) {
	s := newSession(t, 2, 2)
	s.Map.SetCellGID(0, 1, 1, 9)
	s.SetTool(tool.Eyedropper)
	s.Events.Drain()

	assert.False(t, s.HandlePointer(tool.PhaseDown, 1, 1))
	assert.Equal(t, gid.GID(9), s.Selection.GID())
	assert.Equal(t, 0, s.History.UndoLen())
	evts := s.Events.Drain()
	require.Len(t, evts, 1)
	assert.Equal(t, EventSelectionChanged, evts[0].Type)
	assert.Equal(t, gid.GID(9), evts[0].Data)
}

func TestLayerOperations(t *testing.T) {
	s := newSession(t, 2, 2)

	idx := s.AddTileLayer("")
	assert.Equal(t, 1, idx)
	assert.Equal(t, 1, s.ActiveLayer())
	obj := s.AddObjectLayer("Objects")
	assert.Equal(t, 2, obj)
	assert.Equal(t, []string{"Layer 1", "Layer 2", "Objects"}, layerNames(s.Map))

	assert.True(t, s.MoveLayer(2, 0))
	assert.Equal(t, 0, s.ActiveLayer(), "active layer follows the moved layer")
	assert.Equal(t, []string{"Objects", "Layer 1", "Layer 2"}, layerNames(s.Map))
	assert.False(t, s.MoveLayer(1, 1))

	assert.True(t, s.RenameLayer(1, "Ground"))
	assert.False(t, s.RenameLayer(1, "Ground"))
	assert.False(t, s.RenameLayer(9, "x"))

	assert.True(t, s.DeleteLayer(2))
	assert.Equal(t, []string{"Objects", "Ground"}, layerNames(s.Map))

	require.True(t, s.Undo())
	assert.Equal(t, []string{"Objects", "Ground", "Layer 2"}, layerNames(s.Map))
	require.True(t, s.Undo())
	require.True(t, s.Undo())
	assert.Equal(t, []string{"Layer 1", "Layer 2", "Objects"}, layerNames(s.Map))
	require.True(t, s.Undo())
	require.True(t, s.Undo())
	assert.Equal(t, []string{"Layer 1"}, layerNames(s.Map))
	assert.Equal(t, 0, s.ActiveLayer())
}

func TestDeleteLastLayerRefused(t *testing.T) {
	s := newSession(t, 2, 2)
	assert.False(t, s.DeleteLayer(0))
	assert.False(t, s.DeleteLayer(-1))
	assert.Equal(t, 0, s.History.UndoLen())
}

func TestDuplicateLayerDiverges(t *testing.T) {
	s := newSession(t, 2, 2)
	s.Map.SetCellGID(0, 0, 0, 4)

	dup := s.DuplicateLayer(0)
	require.Equal(t, 1, dup)
	assert.Equal(t, []string{"Layer 1", "Layer 1 copy"}, layerNames(s.Map))
	assert.Equal(t, gid.GID(4), s.Map.CellGID(1, 0, 0))

	s.SelectTile(7)
	require.True(t, s.HandlePointer(tool.PhaseDown, 0, 0))
	assert.Equal(t, gid.GID(7), s.Map.CellGID(1, 0, 0))
	assert.Equal(t, gid.GID(4), s.Map.CellGID(0, 0, 0))

	assert.Equal(t, -1, s.DuplicateLayer(5))
}

func TestActiveLayerTracksStackChanges(t *testing.T) {
	setup := func(t *testing.T) *Session {
		s := newSession(t, 2, 2)
		s.AddTileLayer("B")
		s.AddTileLayer("C")
		require.True(t, s.SetActiveLayer(1))
		return s
	}
	activeName := func(s *Session) string {
		l, _ := s.Map.Layer(s.ActiveLayer())
		return l.Name
	}

	t.Run("delete_below", func(t *testing.T) {
		s := setup(t)
		require.True(t, s.DeleteLayer(0))
		assert.Equal(t, "B", activeName(s))
		require.True(t, s.Undo())
		assert.Equal(t, "B", activeName(s))
		require.True(t, s.Redo())
		assert.Equal(t, "B", activeName(s))
	})

	t.Run("delete_above", func(t *testing.T) {
		s := setup(t)
		require.True(t, s.DeleteLayer(2))
		assert.Equal(t, "B", activeName(s))
	})

	t.Run("move_across_upward", func(t *testing.T) {
		s := setup(t)
		require.True(t, s.MoveLayer(0, 2))
		assert.Equal(t, []string{"B", "C", "Layer 1"}, layerNames(s.Map))
		assert.Equal(t, "B", activeName(s))
		require.True(t, s.Undo())
		assert.Equal(t, "B", activeName(s))
		require.True(t, s.Redo())
		assert.Equal(t, "B", activeName(s))
	})

	t.Run("move_across_downward", func(t *testing.T) {
		s := setup(t)
		require.True(t, s.MoveLayer(2, 0))
		assert.Equal(t, "B", activeName(s))
	})

	t.Run("undo_add_below", func(t *testing.T) {
		s := setup(t)
		require.Equal(t, 1, s.DuplicateLayer(0))
		require.True(t, s.SetActiveLayer(2))
		require.Equal(t, "B", activeName(s))
		require.True(t, s.Undo())
		assert.Equal(t, "B", activeName(s))
		require.True(t, s.Redo())
		assert.Equal(t, "B", activeName(s))
	})

	t.Run("brush_paints_tracked_layer", func(t *testing.T) {
		s := setup(t)
		require.True(t, s.DeleteLayer(0))
		s.SelectTile(3)
		require.True(t, s.HandlePointer(tool.PhaseDown, 1, 1))
		assert.Equal(t, gid.GID(3), s.Map.CellGID(0, 1, 1))
		assert.Equal(t, gid.Empty, s.Map.CellGID(1, 1, 1))
	})
}

func TestClearSelection(t *testing.T) {
	s := newSession(t, 2, 2)
	s.ClearSelection()
	assert.Equal(t, 0, s.Events.Len())

	s.SelectTile(4)
	s.Events.Drain()
	s.ClearSelection()
	assert.True(t, s.Selection.IsEmpty())
	evts := s.Events.Drain()
	require.Len(t, evts, 1)
	assert.Equal(t, EventSelectionChanged, evts[0].Type)
	assert.Equal(t, gid.Empty, evts[0].Data)
}

func TestLayerProps(t *testing.T) {
	s := newSession(t, 2, 2)

	assert.True(t, s.SetLayerVisible(0, false))
	assert.False(t, s.SetLayerVisible(0, false))
	assert.False(t, s.SetLayerOpacity(0, 2), "clamps to the current opacity of 1")
	assert.True(t, s.SetLayerOpacity(0, 0.5))
	assert.True(t, s.SetLayerLocked(0, true))

	s.SelectTile(1)
	assert.False(t, s.HandlePointer(tool.PhaseDown, 0, 0), "locked layers are not painted")

	l, _ := s.Map.Layer(0)
	assert.False(t, l.Visible)
	assert.Equal(t, 0.5, l.Opacity)
	assert.True(t, l.Locked)

	require.True(t, s.Undo())
	require.True(t, s.Undo())
	l, _ = s.Map.Layer(0)
	assert.False(t, l.Locked)
	assert.Equal(t, 1.0, l.Opacity)
}

func TestObjects(t *testing.T) {
	s := newSession(t, 2, 2)
	layer := s.AddObjectLayer("Objects")

	assert.Equal(t, 0, s.AddObject(0, tilemap.Object{Name: "nope"}), "tile layers take no objects")

	id := s.AddObject(layer, tilemap.Object{Name: "spawn", Properties: map[string]any{"team": "red"}})
	assert.Equal(t, 1, id)
	assert.Equal(t, 2, s.AddObject(layer, tilemap.Object{Name: "exit"}))
	assert.Equal(t, 0, s.AddObject(layer, tilemap.Object{ID: 1}), "duplicate id")

	assert.True(t, s.MoveObject(layer, id, 32, 48))
	assert.False(t, s.MoveObject(layer, id, 32, 48))
	assert.False(t, s.MoveObject(layer, 99, 0, 0))

	l, _ := s.Map.Layer(layer)
	o, _ := l.Object(id)
	edited := o.Clone()
	edited.Properties["team"] = "blue"
	assert.True(t, s.EditObject(layer, edited))
	assert.False(t, s.EditObject(layer, edited))

	assert.True(t, s.DeleteObject(layer, id))
	assert.False(t, s.DeleteObject(layer, id))

	require.True(t, s.Undo())
	l, _ = s.Map.Layer(layer)
	require.Len(t, l.Objects, 2)
	assert.Equal(t, id, l.Objects[0].ID, "undo restores the original position in the list")
	assert.Equal(t, "blue", l.Objects[0].Properties["team"])

	require.True(t, s.Undo())
	require.True(t, s.Undo())
	l, _ = s.Map.Layer(layer)
	o, _ = l.Object(id)
	assert.Equal(t, 0.0, o.X)
	assert.Equal(t, "red", o.Properties["team"])
}

func TestEvents(t *testing.T) {
	s := newSession(t, 2, 2)
	s.Events.Drain()

	s.AddTileLayer("top")
	assert.Equal(t, []EventType{EventHistoryChanged, EventLayersChanged, EventActiveLayerChanged}, eventTypes(s.Events.Drain()))

	s.Undo()
	assert.Equal(t, []EventType{EventHistoryChanged, EventLayersChanged, EventActiveLayerChanged}, eventTypes(s.Events.Drain()))

	s.SelectTile(1)
	s.Events.Drain()
	s.HandlePointer(tool.PhaseDown, 0, 0)
	s.Undo()
	assert.Equal(t, []EventType{EventHistoryChanged, EventHistoryChanged}, eventTypes(s.Events.Drain()))
	assert.Nil(t, s.Events.Drain())
	assert.Equal(t, 0, s.Events.Len())
}

func TestSetLimitsTrims(t *testing.T) {
	s := newSession(t, 10, 1)
	s.SelectTile(1)
	for col := 0; col < 10; col++ {
		s.HandlePointer(tool.PhaseDown, col, 0)
	}
	require.Equal(t, 10, s.History.UndoLen())

	s.SetLimits(history.Limits{MaxCommands: 3})
	assert.Equal(t, 3, s.History.UndoLen())
}

func TestRunScript(t *testing.T) {
	s := newSession(t, 3, 2)
	s.SelectTile(6)
	sc, err := script.Compile("row", []byte(`
for x := 0; x < width; x++ {
	paint = append(paint, [x, row, gid])
}`))
	require.NoError(t, err)

	changed, err := s.RunScript(context.Background(), sc, 0, 1)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, gid.GID(6), s.Map.CellGID(0, 2, 1))
	assert.Equal(t, 1, s.History.UndoLen())

	require.True(t, s.Undo())
	assert.Equal(t, gid.Empty, s.Map.CellGID(0, 2, 1))

	bad, err := script.Compile("bad", []byte(`paint = 1`))
	require.NoError(t, err)
	_, err = s.RunScript(context.Background(), bad, 0, 0)
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	s := newSession(t, 2, 2)
	s.AddTileLayer("")
	s.Reset(tilemap.New(3, 3, 8, 8))
	assert.Equal(t, 0, s.ActiveLayer())
	assert.False(t, s.History.CanUndo())
	assert.Equal(t, 3, s.Map.Width)
}

func TestSessionLogsCarryID(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := NewSession(tilemap.New(2, 2, 16, 16), WithLogger(logger))
	s.AddTileLayer("top")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, s.ID.String(), entry.Data["session"])
	assert.Equal(t, "top", entry.Data["name"])
}

func TestCopyRegionPaintsAsStamp(t *testing.T) {
	s := newSession(t, 4, 4)
	s.Map.SetCellGID(0, 0, 0, 1)
	s.Map.SetCellGID(0, 1, 0, 2)
	s.Map.SetCellGID(0, 1, 1, 3)

	require.True(t, s.CopyRegion(0, 0, 2, 2))
	require.True(t, s.Selection.IsStamp())
	assert.False(t, s.CopyRegion(0, 0, 0, 2))

	require.True(t, s.HandlePointer(tool.PhaseDown, 2, 2))
	assert.Equal(t, gid.GID(1), s.Map.CellGID(0, 2, 2))
	assert.Equal(t, gid.GID(2), s.Map.CellGID(0, 3, 2))
	assert.Equal(t, gid.GID(3), s.Map.CellGID(0, 3, 3))
	assert.Equal(t, gid.Empty, s.Map.CellGID(0, 2, 3), "empty stamp cells are transparent")
}
