package tilemap

// Object is a positioned entry on an object layer. Property values are
// strings, float64 numbers, or bools.
type Object struct {
	ID         int
	Name       string
	Type       string
	X          float64
	Y          float64
	Width      float64
	Height     float64
	Properties map[string]any
}

// Clone copies the property bag so the result can be edited independently.
func (o Object) Clone() Object {
	if o.Properties == nil {
		return o
	}
	props := make(map[string]any, len(o.Properties))
	for k, v := range o.Properties {
		props[k] = v
	}
	o.Properties = props
	return o
}

// MovedTo returns a copy positioned at (x,y).
func (o Object) MovedTo(x, y float64) Object {
	o.X = x
	o.Y = y
	return o
}
