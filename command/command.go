// Package command defines the reversible edit records stored in the undo
// history. The set of kinds is closed: only types in this package satisfy
// Command.
package command

import "github.com/milk9111/tilesmith/tilemap"

// Kind names a command variant.
type Kind int

const (
	KindPaint Kind = iota
	KindAddLayer
	KindDeleteLayer
	KindReorderLayer
	KindRenameLayer
	KindLayerProps
	KindAddObject
	KindDeleteObject
	KindMoveObject
	KindEditObject
)

func (k Kind) String() string {
	switch k {
	case KindPaint:
		return "paint"
	case KindAddLayer:
		return "add-layer"
	case KindDeleteLayer:
		return "delete-layer"
	case KindReorderLayer:
		return "reorder-layer"
	case KindRenameLayer:
		return "rename-layer"
	case KindLayerProps:
		return "layer-props"
	case KindAddObject:
		return "add-object"
	case KindDeleteObject:
		return "delete-object"
	case KindMoveObject:
		return "move-object"
	case KindEditObject:
		return "edit-object"
	default:
		return "unknown"
	}
}

// Command is one reversible edit. Undo and Redo are total: a command that
// no longer fits the map (e.g. its layer index is gone) does nothing.
type Command interface {
	Kind() Kind
	Undo(m *tilemap.Map)
	Redo(m *tilemap.Map)
	// EstimatedBytes is a fixed per-kind cost used for history bounding.
	EstimatedBytes() int

	sealed()
}

const (
	bytesPerCellEdit  = 16
	bytesPerCell      = 4
	objectLayerBytes  = 100
	reorderBytes      = 16
	layerPropsBytes   = 32
	singleObjectBytes = 200
	objectChangeBytes = 400
)

func layerBytes(l tilemap.Layer) int {
	if l.IsTile() {
		return bytesPerCell * len(l.Data)
	}
	return objectLayerBytes
}
