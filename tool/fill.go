package tool

import (
	"github.com/milk9111/tilesmith/command"
	"github.com/milk9111/tilesmith/gid"
	"github.com/milk9111/tilesmith/tilemap"
)

// MaxFillEdits caps a single flood fill. A larger region is left partially
// filled.
const MaxFillEdits = 10000

// fill replaces the 4-connected region sharing the start cell's value.
// Cells are converted as they are discovered, so a converted cell never
// matches the target again.
func fill(ev Event, st State, m *tilemap.Map) command.Command {
	if ev.Phase != PhaseDown || st.SelectedGID == gid.Empty {
		return nil
	}
	if !m.InBounds(ev.Col, ev.Row) || !paintable(m, st.LayerIndex) {
		return nil
	}
	layer, repl := st.LayerIndex, st.SelectedGID
	target := m.CellGID(layer, ev.Col, ev.Row)
	if target == repl {
		return nil
	}

	edits := make([]command.CellEdit, 0, 64)
	visit := func(col, row int) bool {
		if len(edits) >= MaxFillEdits || !m.InBounds(col, row) || m.CellGID(layer, col, row) != target {
			return false
		}
		m.SetCellGID(layer, col, row, repl)
		edits = append(edits, command.CellEdit{Layer: layer, Col: col, Row: row, Old: target, New: repl})
		return true
	}

	queue := [][2]int{{ev.Col, ev.Row}}
	visit(ev.Col, ev.Row)
	for head := 0; head < len(queue) && len(edits) < MaxFillEdits; head++ {
		x, y := queue[head][0], queue[head][1]
		for _, n := range [4][2]int{{x + 1, y}, {x - 1, y}, {x, y + 1}, {x, y - 1}} {
			if visit(n[0], n[1]) {
				queue = append(queue, n)
			}
		}
	}
	return paintCommand(edits)
}
