// Package script runs tengo paint scripts against a tile layer.
//
// A script sees the globals width, height, col, row and gid, plus a
// cell(col, row) function reading the target layer. It paints by assigning
// an array of [col, row, gid] triples to the global paint:
//
//	for x := 0; x < width; x++ {
//		paint = append(paint, [x, row, gid])
//	}
package script

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/tilesmith/command"
	"github.com/milk9111/tilesmith/gid"
	"github.com/milk9111/tilesmith/tilemap"
)

// Target is where a script runs: the layer it paints, the cell it was
// invoked on, and the selected GID.
type Target struct {
	LayerIndex int
	Col        int
	Row        int
	GID        gid.GID
}

// Script is a compiled paint script, reusable across runs.
type Script struct {
	name     string
	compiled *tengo.Compiled
}

// Compile prepares src. name is used in error messages only.
func Compile(name string, src []byte) (*Script, error) {
	s := tengo.NewScript(src)
	for _, g := range []string{"width", "height", "col", "row", "gid"} {
		_ = s.Add(g, 0)
	}
	_ = s.Add("cell", &tengo.UserFunction{Name: "cell", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return tengo.FromInterface(0)
	}})
	_ = s.Add("paint", []any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

// Load compiles the script file at path.
func Load(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	return Compile(path, src)
}

// LoadFS compiles every .tengo file at the root of fsys, in name order.
// Scripts that fail to compile are skipped and their errors joined.
func LoadFS(fsys fs.FS) ([]*Script, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("script: read dir: %w", err)
	}
	var (
		out  []*Script
		errs []error
	)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), ".tengo") {
			continue
		}
		src, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			errs = append(errs, fmt.Errorf("script: read %s: %w", e.Name(), err))
			continue
		}
		sc, err := Compile(e.Name(), src)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, sc)
	}
	return out, errors.Join(errs...)
}

func (s *Script) Name() string { return s.name }

// Run executes the script and applies its paint list to m. Edits outside
// the map, on a non-paintable layer, or that do not change a cell are
// dropped. It returns nil when nothing changed.
func (s *Script) Run(ctx context.Context, m *tilemap.Map, t Target) (command.Command, error) {
	l, ok := m.Layer(t.LayerIndex)
	if !ok || !l.IsTile() || l.Locked {
		return nil, nil
	}

	c := s.compiled.Clone()
	vars := map[string]any{
		"width":  m.Width,
		"height": m.Height,
		"col":    t.Col,
		"row":    t.Row,
		"gid":    int64(t.GID),
	}
	for k, v := range vars {
		if err := c.Set(k, v); err != nil {
			return nil, fmt.Errorf("script: %s: set %s: %w", s.name, k, err)
		}
	}
	cell := &tengo.UserFunction{Name: "cell", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		col, ok1 := tengo.ToInt(args[0])
		row, ok2 := tengo.ToInt(args[1])
		if !ok1 || !ok2 {
			return nil, tengo.ErrInvalidArgumentType{Name: "col/row", Expected: "int", Found: args[0].TypeName()}
		}
		return &tengo.Int{Value: int64(m.CellGID(t.LayerIndex, col, row))}, nil
	}}
	if err := c.Set("cell", cell); err != nil {
		return nil, fmt.Errorf("script: %s: set cell: %w", s.name, err)
	}
	if err := c.Set("paint", []any{}); err != nil {
		return nil, fmt.Errorf("script: %s: reset paint: %w", s.name, err)
	}

	if err := c.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", s.name, err)
	}

	triples, err := paintList(c.Get("paint"))
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", s.name, err)
	}

	var edits []command.CellEdit
	for _, p := range triples {
		col, row, v := p[0], p[1], gid.GID(uint32(p[2]))
		if !m.InBounds(col, row) {
			continue
		}
		old := m.CellGID(t.LayerIndex, col, row)
		if old == v {
			continue
		}
		m.SetCellGID(t.LayerIndex, col, row, v)
		edits = append(edits, command.CellEdit{Layer: t.LayerIndex, Col: col, Row: row, Old: old, New: v})
	}
	if len(edits) == 0 {
		return nil, nil
	}
	return command.Paint{Edits: edits}, nil
}

// paintList converts the script's paint global to [col,row,gid] triples.
func paintList(v *tengo.Variable) ([][3]int, error) {
	if v == nil || v.IsUndefined() {
		return nil, nil
	}
	items, ok := v.Value().([]any)
	if !ok {
		return nil, fmt.Errorf("paint must be an array, got %s", v.ValueType())
	}
	out := make([][3]int, 0, len(items))
	for i, it := range items {
		triple, ok := it.([]any)
		if !ok || len(triple) != 3 {
			return nil, fmt.Errorf("paint[%d] must be [col, row, gid]", i)
		}
		var p [3]int
		for j, x := range triple {
			n, ok := x.(int64)
			if !ok {
				return nil, fmt.Errorf("paint[%d][%d] must be an int", i, j)
			}
			if j == 2 && (n < 0 || n > math.MaxUint32) {
				return nil, fmt.Errorf("paint[%d] gid %d out of range", i, n)
			}
			p[j] = int(n)
		}
		out = append(out, p)
	}
	return out, nil
}
