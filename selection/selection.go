// Package selection tracks what the paint tools put down: one GID or a
// rectangular stamp.
package selection

import "github.com/milk9111/tilesmith/gid"

// Stamp is a row-major block of GIDs. gid.Empty entries are transparent.
type Stamp struct {
	Width  int
	Height int
	GIDs   []gid.GID
}

// At returns the stamp value at (col,row).
func (s *Stamp) At(col, row int) gid.GID {
	return s.GIDs[row*s.Width+col]
}

// Selection is the active paint selection. The zero value is empty.
type Selection struct {
	gid   gid.GID
	stamp *Stamp
}

// SelectTile selects a single GID and clears any stamp.
func (s *Selection) SelectTile(g gid.GID) {
	s.gid = g
	s.stamp = nil
}

// SelectStamp selects a width x height block from a tileset with the given
// column count, starting at topLeft. Cell (r,c) is topLeft + r*columns + c;
// blocks that cross the tileset's right edge spill into the next source row.
func (s *Selection) SelectStamp(topLeft gid.GID, width, height, columns int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == 1 && height == 1 {
		s.SelectTile(topLeft)
		return
	}
	gids := make([]gid.GID, width*height)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			gids[r*width+c] = topLeft + gid.GID(r*columns+c)
		}
	}
	s.stamp = &Stamp{Width: width, Height: height, GIDs: gids}
	s.gid = topLeft
}

// SetStamp installs an arbitrary stamp, e.g. one copied from the map. A 1x1
// stamp degenerates to a tile selection.
func (s *Selection) SetStamp(st Stamp) {
	if st.Width <= 0 || st.Height <= 0 || len(st.GIDs) != st.Width*st.Height {
		return
	}
	if st.Width == 1 && st.Height == 1 {
		s.SelectTile(st.GIDs[0])
		return
	}
	gids := make([]gid.GID, len(st.GIDs))
	copy(gids, st.GIDs)
	s.stamp = &Stamp{Width: st.Width, Height: st.Height, GIDs: gids}
	s.gid = gids[0]
}

func (s *Selection) Clear() {
	s.gid = gid.Empty
	s.stamp = nil
}

// GID is the single selected value, or the stamp's top-left value.
func (s *Selection) GID() gid.GID { return s.gid }

// Stamp returns the active stamp or nil.
func (s *Selection) Stamp() *Stamp { return s.stamp }

func (s *Selection) IsEmpty() bool { return s.gid == gid.Empty && s.stamp == nil }
func (s *Selection) IsStamp() bool { return s.stamp != nil }
