package tool

import (
	"github.com/milk9111/tilesmith/command"
	"github.com/milk9111/tilesmith/gid"
	"github.com/milk9111/tilesmith/tilemap"
)

// line paints from the gesture's start cell to the release cell.
func line(ev Event, st State, m *tilemap.Map) command.Command {
	if ev.Phase != PhaseUp || st.SelectedGID == gid.Empty || !paintable(m, st.LayerIndex) {
		return nil
	}
	var edits []command.CellEdit
	for _, pt := range bresenhamLine(ev.StartCol, ev.StartRow, ev.Col, ev.Row) {
		col, row := pt[0], pt[1]
		if !m.InBounds(col, row) {
			continue
		}
		old := m.CellGID(st.LayerIndex, col, row)
		if old == st.SelectedGID {
			continue
		}
		m.SetCellGID(st.LayerIndex, col, row, st.SelectedGID)
		edits = append(edits, command.CellEdit{Layer: st.LayerIndex, Col: col, Row: row, Old: old, New: st.SelectedGID})
	}
	return paintCommand(edits)
}

// bresenhamLine returns the cells from (x0, y0) to (x1, y1) inclusive.
func bresenhamLine(x0, y0, x1, y1 int) [][2]int {
	var points [][2]int
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy
	for {
		points = append(points, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return points
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
