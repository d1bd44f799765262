package tilemap

import "github.com/milk9111/tilesmith/gid"

// LayerKind discriminates the two layer variants.
type LayerKind int

const (
	KindTile LayerKind = iota
	KindObject
)

func (k LayerKind) String() string {
	switch k {
	case KindTile:
		return "tilelayer"
	case KindObject:
		return "objectgroup"
	default:
		return "unknown"
	}
}

// Layer is a value record. Setters return a new Layer and never touch the
// receiver's fields; tile layers keep sharing the same cell slice, so a
// rename does not copy cell data. Cell writes go through SetCell and are
// visible to every Layer value sharing the slice.
type Layer struct {
	Kind    LayerKind
	Name    string
	Visible bool
	Opacity float64
	Locked  bool
	ZOrder  int

	// tile layers only
	Width  int
	Height int
	Data   []gid.GID

	// object layers only
	Objects []Object
}

// NewTileLayer creates a tile layer with every cell empty.
func NewTileLayer(name string, width, height, zOrder int) Layer {
	return Layer{
		Kind:    KindTile,
		Name:    name,
		Visible: true,
		Opacity: 1,
		ZOrder:  zOrder,
		Width:   width,
		Height:  height,
		Data:    make([]gid.GID, width*height),
	}
}

// NewObjectLayer creates an object layer with no objects.
func NewObjectLayer(name string, zOrder int) Layer {
	return Layer{
		Kind:    KindObject,
		Name:    name,
		Visible: true,
		Opacity: 1,
		ZOrder:  zOrder,
	}
}

func (l Layer) IsTile() bool   { return l.Kind == KindTile }
func (l Layer) IsObject() bool { return l.Kind == KindObject }

// Cell reads (col,row). The caller guarantees the coordinates are in range.
func (l Layer) Cell(col, row int) gid.GID {
	return l.Data[row*l.Width+col]
}

// SetCell writes (col,row) in place. The caller guarantees the coordinates
// are in range.
func (l Layer) SetCell(col, row int, v gid.GID) {
	l.Data[row*l.Width+col] = v
}

func (l Layer) WithName(name string) Layer {
	l.Name = name
	return l
}

func (l Layer) WithVisible(visible bool) Layer {
	l.Visible = visible
	return l
}

// WithOpacity clamps opacity to [0,1].
func (l Layer) WithOpacity(opacity float64) Layer {
	l.Opacity = clamp01(opacity)
	return l
}

func (l Layer) WithLocked(locked bool) Layer {
	l.Locked = locked
	return l
}

func (l Layer) WithZOrder(z int) Layer {
	l.ZOrder = z
	return l
}

// Clone returns a layer with its own copy of the cell data and objects.
func (l Layer) Clone() Layer {
	if l.Data != nil {
		data := make([]gid.GID, len(l.Data))
		copy(data, l.Data)
		l.Data = data
	}
	if l.Objects != nil {
		objs := make([]Object, len(l.Objects))
		for i, o := range l.Objects {
			objs[i] = o.Clone()
		}
		l.Objects = objs
	}
	return l
}

// AddObject appends obj.
func (l Layer) AddObject(obj Object) Layer {
	objs := make([]Object, len(l.Objects), len(l.Objects)+1)
	copy(objs, l.Objects)
	l.Objects = append(objs, obj)
	return l
}

// RemoveObject drops every object with the given id.
func (l Layer) RemoveObject(id int) Layer {
	objs := make([]Object, 0, len(l.Objects))
	for _, o := range l.Objects {
		if o.ID != id {
			objs = append(objs, o)
		}
	}
	l.Objects = objs
	return l
}

// UpdateObject replaces the object sharing obj.ID.
func (l Layer) UpdateObject(obj Object) Layer {
	objs := make([]Object, len(l.Objects))
	for i, o := range l.Objects {
		if o.ID == obj.ID {
			objs[i] = obj
		} else {
			objs[i] = o
		}
	}
	l.Objects = objs
	return l
}

// Object finds an object by id.
func (l Layer) Object(id int) (Object, bool) {
	for _, o := range l.Objects {
		if o.ID == id {
			return o, true
		}
	}
	return Object{}, false
}

// NextObjectID is max(existing ids)+1, or 1 for an empty layer.
func (l Layer) NextObjectID() int {
	next := 1
	for _, o := range l.Objects {
		if o.ID >= next {
			next = o.ID + 1
		}
	}
	return next
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
