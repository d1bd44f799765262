package command

import "github.com/milk9111/tilesmith/tilemap"

// AddLayer records a layer inserted at Index.
type AddLayer struct {
	Index int
	Layer tilemap.Layer
}

func (AddLayer) Kind() Kind { return KindAddLayer }
func (AddLayer) sealed() {}

func (c AddLayer) Undo(m *tilemap.Map) { m.RemoveLayer(c.Index) }
func (c AddLayer) Redo(m *tilemap.Map) { m.InsertLayer(c.Index, c.Layer) }

func (c AddLayer) EstimatedBytes() int { return layerBytes(c.Layer) }

// DeleteLayer records a removed layer, cell data included, and where it was.
type DeleteLayer struct {
	Index int
	Layer tilemap.Layer
}

func (DeleteLayer) Kind() Kind { return KindDeleteLayer }
func (DeleteLayer) sealed() {}

func (c DeleteLayer) Undo(m *tilemap.Map) { m.InsertLayer(c.Index, c.Layer) }
func (c DeleteLayer) Redo(m *tilemap.Map) { m.RemoveLayer(c.Index) }

func (c DeleteLayer) EstimatedBytes() int { return layerBytes(c.Layer) }

// ReorderLayer records a move of the layer at From to To.
type ReorderLayer struct {
	From int
	To   int
}

func (ReorderLayer) Kind() Kind { return KindReorderLayer }
func (ReorderLayer) sealed() {}

func (c ReorderLayer) Undo(m *tilemap.Map) { m.MoveLayer(c.To, c.From) }
func (c ReorderLayer) Redo(m *tilemap.Map) { m.MoveLayer(c.From, c.To) }

func (ReorderLayer) EstimatedBytes() int { return reorderBytes }

// RenameLayer records a name change.
type RenameLayer struct {
	Index   int
	OldName string
	NewName string
}

func (RenameLayer) Kind() Kind { return KindRenameLayer }
func (RenameLayer) sealed() {}

func (c RenameLayer) Undo(m *tilemap.Map) { c.write(m, c.OldName) }
func (c RenameLayer) Redo(m *tilemap.Map) { c.write(m, c.NewName) }

func (c RenameLayer) write(m *tilemap.Map, name string) {
	l, ok := m.Layer(c.Index)
	if !ok {
		return
	}
	m.ReplaceLayer(c.Index, l.WithName(name))
}

func (c RenameLayer) EstimatedBytes() int { return len(c.OldName) + len(c.NewName) }

// LayerProps holds the display attributes touched by LayerPropsChange.
type LayerProps struct {
	Visible bool
	Opacity float64
	Locked  bool
}

// PropsOf reads the display attributes of l.
func PropsOf(l tilemap.Layer) LayerProps {
	return LayerProps{Visible: l.Visible, Opacity: l.Opacity, Locked: l.Locked}
}

// LayerPropsChange records a visibility, opacity, or lock change.
type LayerPropsChange struct {
	Index int
	Old   LayerProps
	New   LayerProps
}

func (LayerPropsChange) Kind() Kind { return KindLayerProps }
func (LayerPropsChange) sealed() {}

func (c LayerPropsChange) Undo(m *tilemap.Map) { c.write(m, c.Old) }
func (c LayerPropsChange) Redo(m *tilemap.Map) { c.write(m, c.New) }

func (c LayerPropsChange) write(m *tilemap.Map, p LayerProps) {
	l, ok := m.Layer(c.Index)
	if !ok {
		return
	}
	m.ReplaceLayer(c.Index, l.WithVisible(p.Visible).WithOpacity(p.Opacity).WithLocked(p.Locked))
}

func (LayerPropsChange) EstimatedBytes() int { return layerPropsBytes }
