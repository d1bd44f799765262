package tilemap

import "github.com/milk9111/tilesmith/gid"

// Tileset describes one tile sheet and the GID range it occupies.
type Tileset struct {
	Name        string
	TileWidth   int
	TileHeight  int
	Margin      int
	Spacing     int
	ImageWidth  int
	ImageHeight int
	FirstGID    gid.GID
}

func gridCount(imageSize, tileSize, margin, spacing int) int {
	step := tileSize + spacing
	if step <= 0 {
		return 0
	}
	usable := imageSize - 2*margin
	n := (usable + spacing) / step
	if usable+spacing < 0 || n < 0 {
		return 0
	}
	return n
}

func (ts *Tileset) Columns() int {
	return gridCount(ts.ImageWidth, ts.TileWidth, ts.Margin, ts.Spacing)
}

func (ts *Tileset) Rows() int {
	return gridCount(ts.ImageHeight, ts.TileHeight, ts.Margin, ts.Spacing)
}

func (ts *Tileset) TileCount() int {
	return ts.Columns() * ts.Rows()
}

// LastGID is FirstGID+TileCount-1. For an empty tileset it is below FirstGID.
func (ts *Tileset) LastGID() gid.GID {
	return ts.FirstGID + gid.GID(ts.TileCount()) - 1
}

// Contains reports whether the raw (already masked) id falls in
// [FirstGID, LastGID].
func (ts *Tileset) Contains(raw gid.GID) bool {
	n := ts.TileCount()
	if n <= 0 {
		return false
	}
	return raw >= ts.FirstGID && raw <= ts.FirstGID+gid.GID(n)-1
}
