// Package tilemap holds the editable map: an ordered layer stack, the
// tileset registry, and bounds-checked cell access.
package tilemap

import (
	"math"

	"github.com/milk9111/tilesmith/gid"
)

// Map is the authoritative in-memory map. Index 0 of the layer stack is the
// bottom layer.
type Map struct {
	Width      int
	Height     int
	TileWidth  int
	TileHeight int

	layers   []Layer
	tilesets []*Tileset
}

// New creates a map with one empty tile layer.
func New(width, height, tileWidth, tileHeight int) *Map {
	m := &Map{
		Width:      width,
		Height:     height,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
	}
	m.layers = append(m.layers, NewTileLayer("Layer 1", width, height, 0))
	return m
}

// NewEmpty creates a map with no layers, for loaders that rebuild the stack.
func NewEmpty(width, height, tileWidth, tileHeight int) *Map {
	return &Map{Width: width, Height: height, TileWidth: tileWidth, TileHeight: tileHeight}
}

func (m *Map) PixelWidth() int  { return m.Width * m.TileWidth }
func (m *Map) PixelHeight() int { return m.Height * m.TileHeight }

// InBounds reports whether (col,row) lies in [0,Width)x[0,Height).
func (m *Map) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < m.Width && row < m.Height
}

// LayerCount returns the number of layers in the stack.
func (m *Map) LayerCount() int {
	return len(m.layers)
}

// Layers returns a copy of the layer stack, bottom first.
func (m *Map) Layers() []Layer {
	out := make([]Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

// Layer returns the layer at index.
func (m *Map) Layer(index int) (Layer, bool) {
	if index < 0 || index >= len(m.layers) {
		return Layer{}, false
	}
	return m.layers[index], true
}

func (m *Map) validTileLayer(l Layer) bool {
	return !l.IsTile() || (l.Width == m.Width && l.Height == m.Height && len(l.Data) == m.Width*m.Height)
}

// AddLayer appends l and returns its index, or -1 when l is a tile layer
// whose size does not match the map.
func (m *Map) AddLayer(l Layer) int {
	if !m.validTileLayer(l) {
		return -1
	}
	m.layers = append(m.layers, l)
	return len(m.layers) - 1
}

// InsertLayer places l at index, clamped to [0,LayerCount]. It returns the
// index used, or -1 when l is a tile layer whose size does not match the map.
func (m *Map) InsertLayer(index int, l Layer) int {
	if !m.validTileLayer(l) {
		return -1
	}
	if index < 0 {
		index = 0
	}
	if index > len(m.layers) {
		index = len(m.layers)
	}
	m.layers = append(m.layers, Layer{})
	copy(m.layers[index+1:], m.layers[index:])
	m.layers[index] = l
	return index
}

// RemoveLayer removes and returns the layer at index.
func (m *Map) RemoveLayer(index int) (Layer, bool) {
	if index < 0 || index >= len(m.layers) {
		return Layer{}, false
	}
	l := m.layers[index]
	m.layers = append(m.layers[:index], m.layers[index+1:]...)
	return l, true
}

// MoveLayer splices the layer at from out and back in at to. Invalid or
// equal indices are a no-op; the return value reports whether anything moved.
func (m *Map) MoveLayer(from, to int) bool {
	n := len(m.layers)
	if from == to || from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	l := m.layers[from]
	m.layers = append(m.layers[:from], m.layers[from+1:]...)
	m.layers = append(m.layers, Layer{})
	copy(m.layers[to+1:], m.layers[to:])
	m.layers[to] = l
	return true
}

// ReplaceLayer swaps in l at index. Out of range is a no-op.
func (m *Map) ReplaceLayer(index int, l Layer) bool {
	if index < 0 || index >= len(m.layers) || !m.validTileLayer(l) {
		return false
	}
	m.layers[index] = l
	return true
}

// Tilesets returns the registered tilesets in registration order.
func (m *Map) Tilesets() []*Tileset {
	out := make([]*Tileset, len(m.tilesets))
	copy(out, m.tilesets)
	return out
}

func (m *Map) AddTileset(ts *Tileset) {
	if ts == nil {
		return
	}
	m.tilesets = append(m.tilesets, ts)
}

// RemoveTileset unregisters ts by identity.
func (m *Map) RemoveTileset(ts *Tileset) {
	for i, t := range m.tilesets {
		if t == ts {
			m.tilesets = append(m.tilesets[:i], m.tilesets[i+1:]...)
			return
		}
	}
}

// TilesetForGID resolves the tileset owning g. Flags are masked first and
// later registrations win when ranges overlap. Empty resolves to nil.
func (m *Map) TilesetForGID(g gid.GID) *Tileset {
	raw := gid.Mask(g)
	if raw == 0 {
		return nil
	}
	for i := len(m.tilesets) - 1; i >= 0; i-- {
		if m.tilesets[i].Contains(raw) {
			return m.tilesets[i]
		}
	}
	return nil
}

// CellGID reads a cell. Invalid layers, object layers, and out-of-range
// coordinates read as gid.Empty.
func (m *Map) CellGID(layerIndex, col, row int) gid.GID {
	l, ok := m.tileLayer(layerIndex)
	if !ok || !m.InBounds(col, row) {
		return gid.Empty
	}
	return l.Cell(col, row)
}

// SetCellGID writes a cell in place under the same guards as CellGID.
func (m *Map) SetCellGID(layerIndex, col, row int, v gid.GID) {
	l, ok := m.tileLayer(layerIndex)
	if !ok || !m.InBounds(col, row) {
		return
	}
	l.SetCell(col, row, v)
}

func (m *Map) tileLayer(index int) (Layer, bool) {
	l, ok := m.Layer(index)
	if !ok || !l.IsTile() || len(l.Data) != m.Width*m.Height {
		return Layer{}, false
	}
	return l, true
}

// PixelToTile converts a pixel position to a cell, clamped to the map.
func (m *Map) PixelToTile(px, py float64) (col, row int) {
	if m.TileWidth > 0 {
		col = int(math.Floor(px / float64(m.TileWidth)))
	}
	if m.TileHeight > 0 {
		row = int(math.Floor(py / float64(m.TileHeight)))
	}
	return clampInt(col, 0, m.Width-1), clampInt(row, 0, m.Height-1)
}

// TileToPixel returns the top-left pixel of a cell.
func (m *Map) TileToPixel(col, row int) (x, y int) {
	return col * m.TileWidth, row * m.TileHeight
}

func clampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
