// Package editor is the single editing session: it owns the map, the tile
// selection, the undo history, and the active tool and layer, and turns
// host input into commands.
package editor

import (
	"context"

	"github.com/google/uuid"
	"github.com/milk9111/tilesmith/command"
	"github.com/milk9111/tilesmith/gid"
	"github.com/milk9111/tilesmith/history"
	"github.com/milk9111/tilesmith/script"
	"github.com/milk9111/tilesmith/selection"
	"github.com/milk9111/tilesmith/tilemap"
	"github.com/milk9111/tilesmith/tool"
	"github.com/sirupsen/logrus"
)

// Session is not safe for concurrent use; the host calls it from its update
// loop only.
type Session struct {
	ID        uuid.UUID
	Map       *tilemap.Map
	Selection selection.Selection
	History   *history.Manager
	Events    EventQueue

	tool   tool.ID
	layer  int
	down   bool
	startC int
	startR int
	log    *logrus.Entry
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	limits history.Limits
	logger logrus.FieldLogger
}

func WithLimits(l history.Limits) Option {
	return func(o *sessionOptions) { o.limits = l }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(o *sessionOptions) { o.logger = log }
}

// NewSession starts editing m with the brush on the bottom layer.
func NewSession(m *tilemap.Map, opts ...Option) *Session {
	o := sessionOptions{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	id := uuid.New()
	s := &Session{
		ID:   id,
		Map:  m,
		tool: tool.Brush,
		log:  o.logger.WithField("session", id.String()),
	}
	s.History = history.New(
		history.WithLimits(o.limits),
		history.WithLogger(s.log),
		history.WithOnChange(func() { s.Events.Push(Event{Type: EventHistoryChanged}) }),
	)
	return s
}

func (s *Session) Tool() tool.ID { return s.tool }

// SetTool switches the active tool and abandons any gesture in progress.
func (s *Session) SetTool(id tool.ID) {
	if _, ok := tool.Lookup(id); !ok || id == s.tool {
		return
	}
	s.tool = id
	s.down = false
	s.Events.Push(Event{Type: EventToolChanged, Data: id})
}

func (s *Session) ActiveLayer() int { return s.layer }

// SetActiveLayer selects the layer tools paint on. Out of range is a no-op.
func (s *Session) SetActiveLayer(index int) bool {
	if _, ok := s.Map.Layer(index); !ok {
		return false
	}
	if index != s.layer {
		s.layer = index
		s.Events.Push(Event{Type: EventActiveLayerChanged, Data: index})
	}
	return true
}

// SelectTile selects a single tile for painting.
func (s *Session) SelectTile(g gid.GID) {
	s.Selection.SelectTile(g)
	s.Events.Push(Event{Type: EventSelectionChanged, Data: g})
}

// SelectStamp selects a rectangular block of a tileset sheet.
func (s *Session) SelectStamp(topLeft gid.GID, width, height, columns int) {
	s.Selection.SelectStamp(topLeft, width, height, columns)
	s.Events.Push(Event{Type: EventSelectionChanged, Data: s.Selection.GID()})
}

// ClearSelection drops the current tile or stamp selection.
func (s *Session) ClearSelection() {
	if s.Selection.IsEmpty() {
		return
	}
	s.Selection.Clear()
	s.Events.Push(Event{Type: EventSelectionChanged, Data: gid.Empty})
}

func (s *Session) state() tool.State {
	return tool.State{
		Tool:        s.tool,
		LayerIndex:  s.layer,
		SelectedGID: s.Selection.GID(),
		Stamp:       s.Selection.Stamp(),
		OnEyedrop:   s.SelectTile,
	}
}

// HandlePointer feeds one pointer sample in tile coordinates to the active
// tool and records the resulting command. It reports whether the map
// changed.
func (s *Session) HandlePointer(phase tool.Phase, col, row int) bool {
	switch phase {
	case tool.PhaseDown:
		s.down, s.startC, s.startR = true, col, row
	case tool.PhaseMove, tool.PhaseUp:
		if !s.down {
			s.startC, s.startR = col, row
		}
	}
	ev := tool.Event{Phase: phase, Col: col, Row: row, StartCol: s.startC, StartRow: s.startR}
	if phase == tool.PhaseUp {
		s.down = false
	}

	c := tool.Dispatch(ev, s.state(), s.Map)
	if c == nil {
		return false
	}
	s.History.Push(c)
	return true
}

// RunScript runs sc on the active layer at (col,row) with the current
// selection and records the result as one paint command.
func (s *Session) RunScript(ctx context.Context, sc *script.Script, col, row int) (bool, error) {
	c, err := sc.Run(ctx, s.Map, script.Target{
		LayerIndex: s.layer,
		Col:        col,
		Row:        row,
		GID:        s.Selection.GID(),
	})
	if err != nil {
		s.log.WithError(err).WithField("script", sc.Name()).Warn("editor: script failed")
		return false, err
	}
	if c == nil {
		return false, nil
	}
	s.History.Push(c)
	return true, nil
}

// Undo reverts the newest command.
func (s *Session) Undo() bool {
	c, ok := s.History.PeekUndo()
	if !ok || !s.History.Undo(s.Map) {
		return false
	}
	s.afterHistory(c, true)
	return true
}

// Redo re-applies the most recently undone command.
func (s *Session) Redo() bool {
	c, ok := s.History.PeekRedo()
	if !ok || !s.History.Redo(s.Map) {
		return false
	}
	s.afterHistory(c, false)
	return true
}

// SetLimits applies new history limits, trimming immediately.
func (s *Session) SetLimits(l history.Limits) {
	s.History.SetLimits(l)
	s.log.WithFields(logrus.Fields{
		"max_commands": s.History.Limits().MaxCommands,
		"max_bytes":    s.History.Limits().MaxBytes,
	}).Info("editor: history limits updated")
}

// Reset swaps in a new map, clearing history and returning to the bottom
// layer.
func (s *Session) Reset(m *tilemap.Map) {
	s.Map = m
	s.layer = 0
	s.down = false
	s.History.Clear()
	s.Events.Push(Event{Type: EventLayersChanged, Data: -1})
	s.Events.Push(Event{Type: EventActiveLayerChanged, Data: 0})
}

// afterHistory tracks the active layer through a command that was just
// undone or redone.
func (s *Session) afterHistory(c command.Command, undone bool) {
	if c.Kind() != command.KindPaint {
		s.Events.Push(Event{Type: EventLayersChanged, Data: -1})
	}
	switch c := c.(type) {
	case command.AddLayer:
		if undone {
			s.layerRemoved(c.Index)
		} else {
			s.layerInserted(c.Index)
		}
	case command.DeleteLayer:
		if undone {
			s.layerInserted(c.Index)
		} else {
			s.layerRemoved(c.Index)
		}
	case command.ReorderLayer:
		if undone {
			s.layerMoved(c.To, c.From)
		} else {
			s.layerMoved(c.From, c.To)
		}
	default:
		s.clampActiveLayer()
	}
}

// apply performs c against the map and records it.
func (s *Session) apply(c command.Command) {
	c.Redo(s.Map)
	s.History.Push(c)
}

func (s *Session) clampActiveLayer() {
	n := s.Map.LayerCount()
	layer := s.layer
	if layer >= n {
		layer = n - 1
	}
	if layer < 0 {
		layer = 0
	}
	if layer != s.layer {
		s.layer = layer
		s.Events.Push(Event{Type: EventActiveLayerChanged, Data: layer})
	}
}

// CopyRegion selects the w x h block of the active layer with its top-left
// at (col,row) as a stamp. Cells outside the map copy as empty.
func (s *Session) CopyRegion(col, row, w, h int) bool {
	l, ok := s.Map.Layer(s.layer)
	if !ok || !l.IsTile() || w <= 0 || h <= 0 {
		return false
	}
	gids := make([]gid.GID, 0, w*h)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			gids = append(gids, s.Map.CellGID(s.layer, col+c, row+r))
		}
	}
	s.Selection.SetStamp(selection.Stamp{Width: w, Height: h, GIDs: gids})
	s.Events.Push(Event{Type: EventSelectionChanged, Data: s.Selection.GID()})
	return true
}

// SetStamp installs st as the paint selection.
func (s *Session) SetStamp(st selection.Stamp) {
	s.Selection.SetStamp(st)
	s.Events.Push(Event{Type: EventSelectionChanged, Data: s.Selection.GID()})
}
