package tool

import (
	"github.com/milk9111/tilesmith/command"
	"github.com/milk9111/tilesmith/gid"
	"github.com/milk9111/tilesmith/selection"
	"github.com/milk9111/tilesmith/tilemap"
)

func brush(ev Event, st State, m *tilemap.Map) command.Command {
	if ev.Phase == PhaseUp {
		return nil
	}
	// A stamp whose top-left cell is transparent still paints its other cells.
	if st.SelectedGID == gid.Empty && st.Stamp == nil {
		return nil
	}
	if !m.InBounds(ev.Col, ev.Row) || !paintable(m, st.LayerIndex) {
		return nil
	}
	if st.Stamp != nil {
		return stampBrush(ev, st.LayerIndex, st.Stamp, m)
	}
	return setCell(m, st.LayerIndex, ev.Col, ev.Row, st.SelectedGID)
}

// stampBrush paints the stamp with its top-left cell at the event cell.
// Transparent stamp cells and cells falling off the map are skipped.
func stampBrush(ev Event, layer int, s *selection.Stamp, m *tilemap.Map) command.Command {
	var edits []command.CellEdit
	for r := 0; r < s.Height; r++ {
		for c := 0; c < s.Width; c++ {
			v := s.At(c, r)
			if v == gid.Empty {
				continue
			}
			col, row := ev.Col+c, ev.Row+r
			if !m.InBounds(col, row) {
				continue
			}
			old := m.CellGID(layer, col, row)
			if old == v {
				continue
			}
			m.SetCellGID(layer, col, row, v)
			edits = append(edits, command.CellEdit{Layer: layer, Col: col, Row: row, Old: old, New: v})
		}
	}
	return paintCommand(edits)
}

func eraser(ev Event, st State, m *tilemap.Map) command.Command {
	if ev.Phase == PhaseUp {
		return nil
	}
	if !m.InBounds(ev.Col, ev.Row) || !paintable(m, st.LayerIndex) {
		return nil
	}
	return setCell(m, st.LayerIndex, ev.Col, ev.Row, gid.Empty)
}

// setCell writes one cell and records it, or returns nil if it already
// holds v.
func setCell(m *tilemap.Map, layer, col, row int, v gid.GID) command.Command {
	old := m.CellGID(layer, col, row)
	if old == v {
		return nil
	}
	m.SetCellGID(layer, col, row, v)
	return command.Paint{Edits: []command.CellEdit{{Layer: layer, Col: col, Row: row, Old: old, New: v}}}
}

// eyedropper reports the cell under the pointer through st.OnEyedrop. It
// never edits the map.
func eyedropper(ev Event, st State, m *tilemap.Map) command.Command {
	if ev.Phase != PhaseDown {
		return nil
	}
	v := m.CellGID(st.LayerIndex, ev.Col, ev.Row)
	if v != gid.Empty && st.OnEyedrop != nil {
		st.OnEyedrop(v)
	}
	return nil
}
