package editor

import (
	"fmt"

	"github.com/milk9111/tilesmith/command"
	"github.com/milk9111/tilesmith/tilemap"
	"github.com/sirupsen/logrus"
)

func (s *Session) layerLog(index int, name string) *logrus.Entry {
	return s.log.WithFields(logrus.Fields{"layer": index, "name": name})
}

func (s *Session) defaultLayerName() string {
	return fmt.Sprintf("Layer %d", s.Map.LayerCount()+1)
}

// AddTileLayer puts a new empty tile layer on top of the stack, makes it
// active, and returns its index.
func (s *Session) AddTileLayer(name string) int {
	if name == "" {
		name = s.defaultLayerName()
	}
	n := s.Map.LayerCount()
	return s.addLayer(tilemap.NewTileLayer(name, s.Map.Width, s.Map.Height, n))
}

// AddObjectLayer puts a new empty object layer on top of the stack.
func (s *Session) AddObjectLayer(name string) int {
	if name == "" {
		name = s.defaultLayerName()
	}
	return s.addLayer(tilemap.NewObjectLayer(name, s.Map.LayerCount()))
}

func (s *Session) addLayer(l tilemap.Layer) int {
	index := s.Map.LayerCount()
	s.apply(command.AddLayer{Index: index, Layer: l})
	s.layerLog(index, l.Name).WithField("kind", l.Kind.String()).Info("editor: layer added")
	s.Events.Push(Event{Type: EventLayersChanged, Data: index})
	s.SetActiveLayer(index)
	return index
}

// DuplicateLayer inserts a deep copy of the layer at index directly above
// it and returns the copy's index, or -1 when index is invalid.
func (s *Session) DuplicateLayer(index int) int {
	src, ok := s.Map.Layer(index)
	if !ok {
		return -1
	}
	dup := src.Clone().WithName(src.Name + " copy")
	at := index + 1
	s.apply(command.AddLayer{Index: at, Layer: dup})
	s.layerLog(at, dup.Name).Info("editor: layer duplicated")
	s.Events.Push(Event{Type: EventLayersChanged, Data: at})
	s.SetActiveLayer(at)
	return at
}

// DeleteLayer removes the layer at index. The last remaining layer cannot
// be deleted.
func (s *Session) DeleteLayer(index int) bool {
	l, ok := s.Map.Layer(index)
	if !ok || s.Map.LayerCount() <= 1 {
		return false
	}
	s.apply(command.DeleteLayer{Index: index, Layer: l})
	s.layerLog(index, l.Name).Info("editor: layer deleted")
	s.Events.Push(Event{Type: EventLayersChanged, Data: index})
	s.layerRemoved(index)
	return true
}

// MoveLayer moves the layer at from to position to. The active layer keeps
// pointing at the same layer, wherever it ends up.
func (s *Session) MoveLayer(from, to int) bool {
	n := s.Map.LayerCount()
	if from == to || from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	l, _ := s.Map.Layer(from)
	s.apply(command.ReorderLayer{From: from, To: to})
	s.layerLog(to, l.Name).WithField("from", from).Info("editor: layer moved")
	s.Events.Push(Event{Type: EventLayersChanged, Data: to})
	s.layerMoved(from, to)
	return true
}

// RenameLayer changes a layer's display name.
func (s *Session) RenameLayer(index int, name string) bool {
	l, ok := s.Map.Layer(index)
	if !ok || l.Name == name {
		return false
	}
	s.apply(command.RenameLayer{Index: index, OldName: l.Name, NewName: name})
	s.Events.Push(Event{Type: EventLayersChanged, Data: index})
	return true
}

func (s *Session) SetLayerVisible(index int, visible bool) bool {
	return s.setProps(index, func(l tilemap.Layer) tilemap.Layer { return l.WithVisible(visible) })
}

// SetLayerOpacity sets opacity, clamped to [0,1].
func (s *Session) SetLayerOpacity(index int, opacity float64) bool {
	return s.setProps(index, func(l tilemap.Layer) tilemap.Layer { return l.WithOpacity(opacity) })
}

// SetLayerLocked locks or unlocks a layer. Painting tools skip locked
// layers.
func (s *Session) SetLayerLocked(index int, locked bool) bool {
	return s.setProps(index, func(l tilemap.Layer) tilemap.Layer { return l.WithLocked(locked) })
}

func (s *Session) setProps(index int, fn func(tilemap.Layer) tilemap.Layer) bool {
	l, ok := s.Map.Layer(index)
	if !ok {
		return false
	}
	old, next := command.PropsOf(l), command.PropsOf(fn(l))
	if old == next {
		return false
	}
	s.apply(command.LayerPropsChange{Index: index, Old: old, New: next})
	s.Events.Push(Event{Type: EventLayersChanged, Data: index})
	return true
}

// layerInserted keeps the active index on the same layer after a layer
// appears at index.
func (s *Session) layerInserted(index int) {
	if index <= s.layer {
		s.moveActive(s.layer + 1)
	}
	s.clampActiveLayer()
}

// layerRemoved keeps the active index on the same layer after the layer at
// index goes. Removing the active layer leaves the one that slid into its
// place active.
func (s *Session) layerRemoved(index int) {
	if index < s.layer {
		s.moveActive(s.layer - 1)
	}
	s.clampActiveLayer()
}

func (s *Session) layerMoved(from, to int) {
	switch {
	case s.layer == from:
		s.moveActive(to)
	case from < s.layer && s.layer <= to:
		s.moveActive(s.layer - 1)
	case to <= s.layer && s.layer < from:
		s.moveActive(s.layer + 1)
	}
	s.clampActiveLayer()
}

func (s *Session) moveActive(index int) {
	if index == s.layer {
		return
	}
	s.layer = index
	s.Events.Push(Event{Type: EventActiveLayerChanged, Data: index})
}
