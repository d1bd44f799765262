// Package prefabs holds object templates that the editor stamps onto object
// layers.
package prefabs

import (
	"fmt"

	"github.com/milk9111/tilesmith/tilemap"
	"gopkg.in/yaml.v3"
)

// Spec is one object template. Width and Height are in tiles; zero means
// one tile.
type Spec struct {
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	Width      float64        `yaml:"width"`
	Height     float64        `yaml:"height"`
	Properties map[string]any `yaml:"properties"`
}

// LoadSpec reads and decodes the named prefab.
func LoadSpec(name string) (*Spec, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	spec, err := ParseSpec(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return spec, nil
}

// ParseSpec decodes a prefab document.
func ParseSpec(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	for k, v := range spec.Properties {
		switch x := v.(type) {
		case string, bool, float64:
		case int:
			spec.Properties[k] = float64(x)
		default:
			return nil, fmt.Errorf("property %q: unsupported value %T", k, v)
		}
	}
	return &spec, nil
}

// LoadAll loads every embedded prefab in name order.
func LoadAll() ([]*Spec, error) {
	var out []*Spec
	for _, name := range Names() {
		spec, err := LoadSpec(name)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

// Instantiate builds an object at pixel (x,y) sized for tiles of tw x th.
// The ID is left zero for the session to assign.
func (s *Spec) Instantiate(x, y float64, tw, th int) tilemap.Object {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	obj := tilemap.Object{
		Name:   s.Name,
		Type:   s.Type,
		X:      x,
		Y:      y,
		Width:  w * float64(tw),
		Height: h * float64(th),
	}
	if len(s.Properties) > 0 {
		obj.Properties = make(map[string]any, len(s.Properties))
		for k, v := range s.Properties {
			obj.Properties[k] = v
		}
	}
	return obj
}
