package command

import "github.com/milk9111/tilesmith/tilemap"

// updateObjectLayer applies fn to the object layer at index, if there is one.
func updateObjectLayer(m *tilemap.Map, index int, fn func(tilemap.Layer) tilemap.Layer) {
	l, ok := m.Layer(index)
	if !ok || !l.IsObject() {
		return
	}
	m.ReplaceLayer(index, fn(l))
}

// AddObject records an object appended to an object layer.
type AddObject struct {
	Layer  int
	Object tilemap.Object
}

func (AddObject) Kind() Kind { return KindAddObject }
func (AddObject) sealed() {}

func (c AddObject) Undo(m *tilemap.Map) {
	updateObjectLayer(m, c.Layer, func(l tilemap.Layer) tilemap.Layer { return l.RemoveObject(c.Object.ID) })
}

func (c AddObject) Redo(m *tilemap.Map) {
	updateObjectLayer(m, c.Layer, func(l tilemap.Layer) tilemap.Layer { return l.AddObject(c.Object.Clone()) })
}

func (AddObject) EstimatedBytes() int { return singleObjectBytes }

// DeleteObject records a removed object and its position in the list.
type DeleteObject struct {
	Layer  int
	Index  int
	Object tilemap.Object
}

func (DeleteObject) Kind() Kind { return KindDeleteObject }
func (DeleteObject) sealed() {}

func (c DeleteObject) Undo(m *tilemap.Map) {
	updateObjectLayer(m, c.Layer, func(l tilemap.Layer) tilemap.Layer {
		return insertObject(l, c.Index, c.Object.Clone())
	})
}

func (c DeleteObject) Redo(m *tilemap.Map) {
	updateObjectLayer(m, c.Layer, func(l tilemap.Layer) tilemap.Layer { return l.RemoveObject(c.Object.ID) })
}

func (DeleteObject) EstimatedBytes() int { return singleObjectBytes }

func insertObject(l tilemap.Layer, index int, obj tilemap.Object) tilemap.Layer {
	if index < 0 || index > len(l.Objects) {
		return l.AddObject(obj)
	}
	objs := make([]tilemap.Object, 0, len(l.Objects)+1)
	objs = append(objs, l.Objects[:index]...)
	objs = append(objs, obj)
	objs = append(objs, l.Objects[index:]...)
	l.Objects = objs
	return l
}

// MoveObject records an object's position change. Old and New are full
// snapshots.
type MoveObject struct {
	Layer int
	Old   tilemap.Object
	New   tilemap.Object
}

func (MoveObject) Kind() Kind { return KindMoveObject }
func (MoveObject) sealed() {}

func (c MoveObject) Undo(m *tilemap.Map) { replaceObject(m, c.Layer, c.Old) }
func (c MoveObject) Redo(m *tilemap.Map) { replaceObject(m, c.Layer, c.New) }

func (MoveObject) EstimatedBytes() int { return objectChangeBytes }

// EditObject records a change to an object's name, type, size, or
// properties.
type EditObject struct {
	Layer int
	Old   tilemap.Object
	New   tilemap.Object
}

func (EditObject) Kind() Kind { return KindEditObject }
func (EditObject) sealed() {}

func (c EditObject) Undo(m *tilemap.Map) { replaceObject(m, c.Layer, c.Old) }
func (c EditObject) Redo(m *tilemap.Map) { replaceObject(m, c.Layer, c.New) }

func (EditObject) EstimatedBytes() int { return objectChangeBytes }

func replaceObject(m *tilemap.Map, layer int, obj tilemap.Object) {
	updateObjectLayer(m, layer, func(l tilemap.Layer) tilemap.Layer { return l.UpdateObject(obj.Clone()) })
}
