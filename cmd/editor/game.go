package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tilesmith/config"
	"github.com/milk9111/tilesmith/editor"
	"github.com/milk9111/tilesmith/levels"
	"github.com/milk9111/tilesmith/prefabs"
	"github.com/milk9111/tilesmith/script"
	"github.com/milk9111/tilesmith/tool"
	"github.com/sirupsen/logrus"
	"golang.design/x/clipboard"
)

const defaultLevelPath = "level.json"

// Game is the ebiten host around one editing session.
type Game struct {
	session *editor.Session
	view    *view
	ui      *ebitenui.UI
	toolBar *toolBar
	layers  *layerPanel
	log     *logrus.Entry

	levelPath  string
	configPath string
	watcher    *config.Watcher

	scripts []*script.Script
	script  int
	prefabs []*prefabs.Spec
	prefab  int

	clipboardOK bool

	// pointer gesture state
	painting bool
	lastCol  int
	lastRow  int
	hover    bool
	hoverCol int
	hoverRow int

	// right-drag region copy
	regionActive bool
	regionCol    int
	regionRow    int

	status       string
	screenWidth  int
	screenHeight int
}

func newGame(s *editor.Session, levelPath string, log *logrus.Entry) *Game {
	if levelPath == "" {
		levelPath = defaultLevelPath
	}
	g := &Game{
		session:   s,
		view:      newView(panelWidth),
		log:       log,
		levelPath: levelPath,
		status:    "ready",
	}
	g.ui, g.toolBar, g.layers = buildUI(uiCallbacks{
		onTool:       s.SetTool,
		onLayer:      func(i int) { s.SetActiveLayer(i) },
		onNewLayer:   func() { s.AddTileLayer("") },
		onNewObjects: func() { s.AddObjectLayer("") },
		onDuplicate:  func() { s.DuplicateLayer(s.ActiveLayer()) },
		onDelete:     func() { s.DeleteLayer(s.ActiveLayer()) },
		onMoveUp:     func() { s.MoveLayer(s.ActiveLayer(), s.ActiveLayer()+1) },
		onMoveDown:   func() { s.MoveLayer(s.ActiveLayer(), s.ActiveLayer()-1) },
		onToggleShow: g.toggleVisible,
		onToggleLock: g.toggleLocked,
		onUndo:       func() { s.Undo() },
		onRedo:       func() { s.Redo() },
		onSave:       g.save,
	}, s.Tool())
	g.layers.setLayers(s.Map.Layers(), s.ActiveLayer())

	specs, err := prefabs.LoadAll()
	if err != nil {
		log.WithError(err).Warn("editor: prefabs unavailable")
	}
	g.prefabs = specs

	if err := clipboard.Init(); err != nil {
		log.WithError(err).Warn("editor: clipboard unavailable")
	} else {
		g.clipboardOK = true
	}
	return g
}

func (g *Game) Update() error {
	g.pollConfig()
	g.ui.Update()
	g.updateKeys()
	g.updatePointer()
	g.drainEvents()
	return nil
}

// drainEvents syncs the widgets with what the session reported.
func (g *Game) drainEvents() {
	refresh := false
	for _, evt := range g.session.Events.Drain() {
		switch evt.Type {
		case editor.EventLayersChanged, editor.EventActiveLayerChanged:
			refresh = true
		case editor.EventToolChanged:
			if id, ok := evt.Data.(tool.ID); ok {
				g.toolBar.setTool(id)
				g.status = "tool: " + id.String()
			}
		case editor.EventHistoryChanged:
			h := g.session.History
			g.status = fmt.Sprintf("undo %d (%d B)  redo %d", h.UndoLen(), h.UndoBytes(), h.RedoLen())
		}
	}
	if refresh {
		g.layers.setLayers(g.session.Map.Layers(), g.session.ActiveLayer())
	}
}

// pollConfig re-applies history limits when the config file changes.
func (g *Game) pollConfig() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case _, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			cfg, err := config.Load(g.configPath)
			if err != nil {
				g.log.WithError(err).Warn("editor: config reload failed")
				continue
			}
			g.session.SetLimits(cfg.HistoryLimits())
		case err := <-g.watcher.Errors:
			g.log.WithError(err).Warn("editor: config watcher")
		default:
			return
		}
	}
}

func (g *Game) save() {
	if err := levels.Save(g.levelPath, g.session.Map); err != nil {
		g.log.WithError(err).Error("editor: save failed")
		g.status = "save failed: " + err.Error()
		return
	}
	g.status = "saved " + g.levelPath
}

func (g *Game) toggleVisible() {
	if l, ok := g.session.Map.Layer(g.session.ActiveLayer()); ok {
		g.session.SetLayerVisible(g.session.ActiveLayer(), !l.Visible)
	}
}

func (g *Game) toggleLocked() {
	if l, ok := g.session.Map.Layer(g.session.ActiveLayer()); ok {
		g.session.SetLayerLocked(g.session.ActiveLayer(), !l.Locked)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backdropColor)
	g.drawMap(screen)
	g.drawOverlay(screen)
	g.ui.Draw(screen)

	sel := g.session.Selection
	info := fmt.Sprintf("%s | layer %d | gid %d", g.session.Tool(), g.session.ActiveLayer()+1, sel.GID().Raw())
	if st := sel.Stamp(); st != nil {
		info += fmt.Sprintf(" (stamp %dx%d)", st.Width, st.Height)
	}
	if len(g.scripts) > 0 {
		info += " | script " + g.scripts[g.script].Name()
	}
	if g.hover {
		info += fmt.Sprintf(" | %d,%d", g.hoverCol, g.hoverRow)
	}
	ebitenutil.DebugPrintAt(screen, info, panelWidth+8, g.screenHeight-36)
	ebitenutil.DebugPrintAt(screen, g.status, panelWidth+8, g.screenHeight-20)
}

func (g *Game) drawMap(screen *ebiten.Image) {
	m := g.session.Map
	x0, y0 := g.view.toScreen(0, 0)
	z := float32(g.view.zoom)
	tw, th := float32(m.TileWidth)*z, float32(m.TileHeight)*z
	vector.FillRect(screen, x0, y0, tw*float32(m.Width), th*float32(m.Height), canvasColor, false)

	for i, l := range m.Layers() {
		if !l.Visible {
			continue
		}
		if l.IsObject() {
			for _, o := range l.Objects {
				ox, oy := g.view.toScreen(o.X, o.Y)
				w, h := float32(o.Width)*z, float32(o.Height)*z
				if w <= 0 || h <= 0 {
					w, h = tw, th
				}
				vector.StrokeRect(screen, ox, oy, w, h, 2, objectColor, false)
			}
			continue
		}
		for row := 0; row < m.Height; row++ {
			for col := 0; col < m.Width; col++ {
				v := l.Cell(col, row)
				if v.IsEmpty() {
					continue
				}
				px, py := m.TileToPixel(col, row)
				sx, sy := g.view.toScreen(float64(px), float64(py))
				vector.FillRect(screen, sx, sy, tw, th, gidColor(i, v, l.Opacity), false)
			}
		}
	}

	if tw >= 8 {
		for col := 0; col <= m.Width; col++ {
			x := x0 + float32(col)*tw
			vector.StrokeLine(screen, x, y0, x, y0+th*float32(m.Height), 1, gridColor, false)
		}
		for row := 0; row <= m.Height; row++ {
			y := y0 + float32(row)*th
			vector.StrokeLine(screen, x0, y, x0+tw*float32(m.Width), y, 1, gridColor, false)
		}
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	if !g.hover {
		return
	}
	m := g.session.Map
	z := float32(g.view.zoom)
	tw, th := float32(m.TileWidth)*z, float32(m.TileHeight)*z

	if g.regionActive {
		col, row, w, h := g.region()
		px, py := m.TileToPixel(col, row)
		sx, sy := g.view.toScreen(float64(px), float64(py))
		vector.StrokeRect(screen, sx, sy, tw*float32(w), th*float32(h), 2, regionColor, false)
		return
	}

	w, h := 1, 1
	if st := g.session.Selection.Stamp(); st != nil && g.session.Tool() == tool.Brush {
		w, h = st.Width, st.Height
	}
	px, py := m.TileToPixel(g.hoverCol, g.hoverRow)
	sx, sy := g.view.toScreen(float64(px), float64(py))
	vector.StrokeRect(screen, sx, sy, tw*float32(w), th*float32(h), 2, hoverColor, false)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenWidth, g.screenHeight = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
