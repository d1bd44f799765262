package main

import (
	"context"

	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tilesmith/gid"
	"github.com/milk9111/tilesmith/selection"
	"github.com/milk9111/tilesmith/tilemap"
	"github.com/milk9111/tilesmith/tool"
	"golang.design/x/clipboard"
)

var toolKeys = map[ebiten.Key]tool.ID{
	ebiten.KeyB: tool.Brush,
	ebiten.KeyE: tool.Eraser,
	ebiten.KeyI: tool.Eyedropper,
	ebiten.KeyF: tool.Fill,
	ebiten.KeyL: tool.Line,
}

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func (g *Game) updateKeys() {
	s := g.session
	if ctrlPressed() {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyZ) && ebiten.IsKeyPressed(ebiten.KeyShift):
			s.Redo()
		case inpututil.IsKeyJustPressed(ebiten.KeyZ):
			s.Undo()
		case inpututil.IsKeyJustPressed(ebiten.KeyY):
			s.Redo()
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			g.save()
		case inpututil.IsKeyJustPressed(ebiten.KeyC):
			g.copyStamp()
		case inpututil.IsKeyJustPressed(ebiten.KeyV):
			g.pasteStamp()
		}
		return
	}

	for key, id := range toolKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.SetTool(id)
		}
	}
	for i, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.SelectTile(gid.GID(i + 1))
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		if v := s.Selection.GID(); !v.IsEmpty() && !s.Selection.IsStamp() {
			s.SelectTile(v ^ gid.FlagFlipH)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		s.AddTileLayer("")
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		s.AddObjectLayer("")
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		s.DuplicateLayer(s.ActiveLayer())
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		s.DeleteLayer(s.ActiveLayer())
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		s.SetActiveLayer(s.ActiveLayer() + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		s.SetActiveLayer(s.ActiveLayer() - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.toggleVisible()
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		g.toggleLocked()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(g.scripts) > 0:
		g.script = (g.script + 1) % len(g.scripts)
	case inpututil.IsKeyJustPressed(ebiten.KeyP) && len(g.prefabs) > 0:
		g.prefab = (g.prefab + 1) % len(g.prefabs)
		g.status = "prefab: " + g.prefabs[g.prefab].Name
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.runScript()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.ClearSelection()
	}
}

func (g *Game) runScript() {
	if len(g.scripts) == 0 || !g.hover {
		return
	}
	sc := g.scripts[g.script]
	if _, err := g.session.RunScript(context.Background(), sc, g.hoverCol, g.hoverRow); err != nil {
		g.status = err.Error()
	}
}

func (g *Game) updatePointer() {
	mx, my := ebiten.CursorPosition()
	g.view.pan(ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle), mx, my)
	if _, wy := ebiten.Wheel(); wy != 0 && !ebuiinput.UIHovered {
		factor := 1.1
		if wy < 0 {
			factor = 1 / 1.1
		}
		g.view.zoomAt(mx, my, factor)
	}

	m := g.session.Map
	px, py, ok := g.view.toMap(mx, my)
	inside := ok && !ebuiinput.UIHovered && px >= 0 && py >= 0 &&
		px < float64(m.PixelWidth()) && py < float64(m.PixelHeight())
	col, row := m.PixelToTile(px, py)
	g.hover, g.hoverCol, g.hoverRow = inside, col, row

	if l, ok := m.Layer(g.session.ActiveLayer()); ok && l.IsObject() {
		g.updateObjectPointer(l, inside, px, py)
		return
	}
	g.updateRegion(inside, col, row)

	left := ebiten.MouseButtonLeft
	switch {
	case inpututil.IsMouseButtonJustPressed(left) && inside:
		g.painting = true
		g.lastCol, g.lastRow = col, row
		g.session.HandlePointer(tool.PhaseDown, col, row)
	case g.painting && inpututil.IsMouseButtonJustReleased(left):
		g.painting = false
		g.session.HandlePointer(tool.PhaseUp, col, row)
	case g.painting && ebiten.IsMouseButtonPressed(left):
		if col != g.lastCol || row != g.lastRow {
			g.lastCol, g.lastRow = col, row
			g.session.HandlePointer(tool.PhaseMove, col, row)
		}
	}
}

// updateObjectPointer places the current prefab with the left button and
// removes the topmost object under the cursor with the right button.
func (g *Game) updateObjectPointer(l tilemap.Layer, inside bool, px, py float64) {
	if !inside {
		return
	}
	m := g.session.Map
	index := g.session.ActiveLayer()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		col, row := m.PixelToTile(px, py)
		x, y := m.TileToPixel(col, row)
		obj := tilemap.Object{
			X:      float64(x),
			Y:      float64(y),
			Width:  float64(m.TileWidth),
			Height: float64(m.TileHeight),
		}
		if len(g.prefabs) > 0 {
			obj = g.prefabs[g.prefab].Instantiate(float64(x), float64(y), m.TileWidth, m.TileHeight)
		}
		g.session.AddObject(index, obj)
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		for i := len(l.Objects) - 1; i >= 0; i-- {
			o := l.Objects[i]
			if px >= o.X && py >= o.Y && px < o.X+o.Width && py < o.Y+o.Height {
				g.session.DeleteObject(index, o.ID)
				return
			}
		}
	}
}

// updateRegion tracks a right-button drag and copies the covered cells as a
// stamp on release.
func (g *Game) updateRegion(inside bool, col, row int) {
	right := ebiten.MouseButtonRight
	switch {
	case inpututil.IsMouseButtonJustPressed(right) && inside:
		g.regionActive = true
		g.regionCol, g.regionRow = col, row
	case g.regionActive && inpututil.IsMouseButtonJustReleased(right):
		g.regionActive = false
		c, r, w, h := g.region()
		g.session.CopyRegion(c, r, w, h)
	}
}

// region is the rectangle spanned by the drag start and the hover cell.
func (g *Game) region() (col, row, w, h int) {
	c0, c1 := g.regionCol, g.hoverCol
	if c1 < c0 {
		c0, c1 = c1, c0
	}
	r0, r1 := g.regionRow, g.hoverRow
	if r1 < r0 {
		r0, r1 = r1, r0
	}
	return c0, r0, c1 - c0 + 1, r1 - r0 + 1
}

func (g *Game) copyStamp() {
	if !g.clipboardOK {
		return
	}
	st := g.session.Selection.Stamp()
	if st == nil {
		v := g.session.Selection.GID()
		if v.IsEmpty() {
			return
		}
		st = &selection.Stamp{Width: 1, Height: 1, GIDs: []gid.GID{v}}
	}
	text, err := st.MarshalText()
	if err != nil {
		return
	}
	clipboard.Write(clipboard.FmtText, text)
	g.status = "copied stamp"
}

func (g *Game) pasteStamp() {
	if !g.clipboardOK {
		return
	}
	st, err := selection.ParseStamp(string(clipboard.Read(clipboard.FmtText)))
	if err != nil {
		g.status = err.Error()
		return
	}
	g.session.SetStamp(st)
}
