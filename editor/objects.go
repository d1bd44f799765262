package editor

import (
	"reflect"

	"github.com/milk9111/tilesmith/command"
	"github.com/milk9111/tilesmith/tilemap"
)

// objectLayer returns the layer at index when it is an unlocked object
// layer.
func (s *Session) objectLayer(index int) (tilemap.Layer, bool) {
	l, ok := s.Map.Layer(index)
	if !ok || !l.IsObject() || l.Locked {
		return tilemap.Layer{}, false
	}
	return l, true
}

// AddObject appends obj to an object layer and returns its ID. A zero ID is
// replaced with the layer's next free ID. It returns 0 when the layer
// cannot take objects or the ID is already used.
func (s *Session) AddObject(layer int, obj tilemap.Object) int {
	l, ok := s.objectLayer(layer)
	if !ok {
		return 0
	}
	if obj.ID == 0 {
		obj.ID = l.NextObjectID()
	} else if _, taken := l.Object(obj.ID); taken {
		return 0
	}
	s.apply(command.AddObject{Layer: layer, Object: obj.Clone()})
	return obj.ID
}

// DeleteObject removes the object with id from an object layer.
func (s *Session) DeleteObject(layer, id int) bool {
	l, ok := s.objectLayer(layer)
	if !ok {
		return false
	}
	for i, o := range l.Objects {
		if o.ID == id {
			s.apply(command.DeleteObject{Layer: layer, Index: i, Object: o.Clone()})
			return true
		}
	}
	return false
}

// MoveObject places an object at (x,y) in pixels.
func (s *Session) MoveObject(layer, id int, x, y float64) bool {
	l, ok := s.objectLayer(layer)
	if !ok {
		return false
	}
	old, ok := l.Object(id)
	if !ok || (old.X == x && old.Y == y) {
		return false
	}
	s.apply(command.MoveObject{Layer: layer, Old: old.Clone(), New: old.Clone().MovedTo(x, y)})
	return true
}

// EditObject replaces the object sharing obj.ID with obj.
func (s *Session) EditObject(layer int, obj tilemap.Object) bool {
	l, ok := s.objectLayer(layer)
	if !ok {
		return false
	}
	old, ok := l.Object(obj.ID)
	if !ok || reflect.DeepEqual(old, obj) {
		return false
	}
	s.apply(command.EditObject{Layer: layer, Old: old.Clone(), New: obj.Clone()})
	return true
}
