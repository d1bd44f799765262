package command

import (
	"github.com/milk9111/tilesmith/gid"
	"github.com/milk9111/tilesmith/tilemap"
)

// CellEdit records one cell's value before and after an edit.
type CellEdit struct {
	Layer int
	Col   int
	Row   int
	Old   gid.GID
	New   gid.GID
}

// Paint is a batch of cell edits.
type Paint struct {
	Edits []CellEdit
}

func (Paint) Kind() Kind { return KindPaint }
func (Paint) sealed() {}

// Undo writes old values in reverse order.
func (p Paint) Undo(m *tilemap.Map) {
	for i := len(p.Edits) - 1; i >= 0; i-- {
		e := p.Edits[i]
		m.SetCellGID(e.Layer, e.Col, e.Row, e.Old)
	}
}

// Redo writes new values in forward order.
func (p Paint) Redo(m *tilemap.Map) {
	for _, e := range p.Edits {
		m.SetCellGID(e.Layer, e.Col, e.Row, e.New)
	}
}

func (p Paint) EstimatedBytes() int {
	return bytesPerCellEdit * len(p.Edits)
}
