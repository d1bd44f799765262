// Package history keeps bounded undo and redo stacks of commands.
package history

import (
	"github.com/milk9111/tilesmith/command"
	"github.com/milk9111/tilesmith/tilemap"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxCommands = 100
	DefaultMaxBytes    = 10 << 20
)

// Limits bound the undo stack. Zero fields fall back to the defaults.
type Limits struct {
	MaxCommands int
	MaxBytes    int
}

func (l Limits) normalized() Limits {
	if l.MaxCommands <= 0 {
		l.MaxCommands = DefaultMaxCommands
	}
	if l.MaxBytes <= 0 {
		l.MaxBytes = DefaultMaxBytes
	}
	return l
}

// Manager owns the undo and redo stacks. It is not safe for concurrent use.
type Manager struct {
	undo     stack
	redo     stack
	limits   Limits
	onChange func()
	log      logrus.FieldLogger
}

// Option configures a Manager.
type Option func(*Manager)

func WithLimits(l Limits) Option {
	return func(m *Manager) { m.limits = l.normalized() }
}

// WithOnChange registers a callback fired after every push, undo, redo and
// clear that changed the stacks.
func WithOnChange(fn func()) Option {
	return func(m *Manager) { m.onChange = fn }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Manager) { m.log = log }
}

func New(opts ...Option) *Manager {
	m := &Manager{
		limits: Limits{}.normalized(),
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (h *Manager) Limits() Limits { return h.limits }

// SetLimits replaces the limits and trims the undo stack to fit.
func (h *Manager) SetLimits(l Limits) {
	h.limits = l.normalized()
	if h.trim() > 0 {
		h.notify()
	}
}

// SetOnChange replaces the change callback.
func (h *Manager) SetOnChange(fn func()) {
	h.onChange = fn
}

// Push records a new command. The redo stack is discarded. The command is
// always kept, even if it alone exceeds the byte limit.
func (h *Manager) Push(c command.Command) {
	if c == nil {
		return
	}
	h.redo.clear()
	h.undo.pushBack(c)
	h.trim()
	h.notify()
}

// Undo reverts the newest command against m. It reports false when there
// was nothing to undo.
func (h *Manager) Undo(m *tilemap.Map) bool {
	c, ok := h.undo.popBack()
	if !ok {
		return false
	}
	c.Undo(m)
	h.redo.pushBack(c)
	h.notify()
	return true
}

// Redo re-applies the most recently undone command against m.
func (h *Manager) Redo(m *tilemap.Map) bool {
	c, ok := h.redo.popBack()
	if !ok {
		return false
	}
	c.Redo(m)
	h.undo.pushBack(c)
	h.trim()
	h.notify()
	return true
}

// Clear empties both stacks.
func (h *Manager) Clear() {
	h.undo.clear()
	h.redo.clear()
	h.notify()
}

func (h *Manager) CanUndo() bool { return h.undo.len() > 0 }
func (h *Manager) CanRedo() bool { return h.redo.len() > 0 }
func (h *Manager) UndoLen() int { return h.undo.len() }
func (h *Manager) RedoLen() int { return h.redo.len() }
func (h *Manager) UndoBytes() int { return h.undo.bytes }
func (h *Manager) RedoBytes() int { return h.redo.bytes }

// PeekUndo returns the command Undo would revert next.
func (h *Manager) PeekUndo() (command.Command, bool) {
	if h.undo.len() == 0 {
		return nil, false
	}
	return h.undo.at(h.undo.len() - 1), true
}

// PeekRedo returns the command Redo would re-apply next.
func (h *Manager) PeekRedo() (command.Command, bool) {
	if h.redo.len() == 0 {
		return nil, false
	}
	return h.redo.at(h.redo.len() - 1), true
}

// UndoCommands returns the undo stack, oldest first.
func (h *Manager) UndoCommands() []command.Command {
	out := make([]command.Command, h.undo.len())
	for i := range out {
		out[i] = h.undo.at(i)
	}
	return out
}

// trim drops the oldest undo entries until the stack fits the limits. The
// newest entry is never dropped. It returns how many entries went.
func (h *Manager) trim() int {
	dropped := 0
	for h.undo.len() > 1 && (h.undo.len() > h.limits.MaxCommands || h.undo.bytes > h.limits.MaxBytes) {
		c, _ := h.undo.popFront()
		dropped++
		h.log.WithFields(logrus.Fields{
			"kind":  c.Kind().String(),
			"bytes": c.EstimatedBytes(),
		}).Debug("history: dropped oldest undo entry")
	}
	return dropped
}

func (h *Manager) notify() {
	if h.onChange != nil {
		h.onChange()
	}
}
