package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/milk9111/tilesmith/command"
	"github.com/milk9111/tilesmith/gid"
	"github.com/milk9111/tilesmith/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rowScript = `
for x := 0; x < width; x++ {
	paint = append(paint, [x, row, gid])
}
`

func TestRunPaintsRow(t *testing.T) {
	m := tilemap.New(4, 3, 16, 16)
	m.SetCellGID(0, 2, 1, 7)

	s, err := Compile("row", []byte(rowScript))
	require.NoError(t, err)

	c, err := s.Run(context.Background(), m, Target{LayerIndex: 0, Col: 0, Row: 1, GID: 7})
	require.NoError(t, err)
	p, ok := c.(command.Paint)
	require.True(t, ok)
	assert.Len(t, p.Edits, 3, "the cell already holding 7 is skipped")
	for x := 0; x < 4; x++ {
		assert.Equal(t, gid.GID(7), m.CellGID(0, x, 1))
	}

	c, err = s.Run(context.Background(), m, Target{LayerIndex: 0, Col: 0, Row: 1, GID: 7})
	require.NoError(t, err)
	assert.Nil(t, c, "a compiled script can be rerun and reports no change")
}

func TestRunReadsCells(t *testing.T) {
	m := tilemap.New(3, 1, 16, 16)
	m.SetCellGID(0, 1, 0, 5)
	src := `
for x := 0; x < width; x++ {
	if cell(x, 0) == 5 {
		paint = append(paint, [x, 0, 9])
	}
}
`
	s, err := Compile("replace", []byte(src))
	require.NoError(t, err)
	c, err := s.Run(context.Background(), m, Target{})
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, gid.GID(9), m.CellGID(0, 1, 0))
	assert.Equal(t, gid.Empty, m.CellGID(0, 0, 0))
}

func TestRunClipsAndSkipsLockedLayers(t *testing.T) {
	m := tilemap.New(2, 2, 16, 16)
	s, err := Compile("edge", []byte(`paint = [[-1, 0, 3], [1, 1, 3], [5, 5, 3]]`))
	require.NoError(t, err)

	c, err := s.Run(context.Background(), m, Target{})
	require.NoError(t, err)
	assert.Len(t, c.(command.Paint).Edits, 1)

	l, _ := m.Layer(0)
	m.ReplaceLayer(0, l.WithLocked(true))
	m.SetCellGID(0, 1, 1, 0)
	c, err = s.Run(context.Background(), m, Target{})
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Equal(t, gid.Empty, m.CellGID(0, 1, 1))
}

func TestErrors(t *testing.T) {
	_, err := Compile("broken", []byte(`paint = [`))
	assert.Error(t, err)

	m := tilemap.New(2, 2, 16, 16)
	cases := map[string]string{
		"not_array":    `paint = 3`,
		"bad_triple":   `paint = [[1, 2]]`,
		"non_int":      `paint = [[1, 2, "x"]]`,
		"runtime":      `z := 0; x := 1 / z`,
		"cell_arg_cnt": `y := cell(1)`,
		"negative_gid": `paint = [[0, 0, 1], [1, 0, -1]]`,
		"gid_overflow": `paint = [[0, 0, 4294967296]]`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := Compile(name, []byte(src))
			require.NoError(t, err)
			_, err = s.Run(context.Background(), m, Target{})
			assert.Error(t, err)
		})
	}
	assert.Equal(t, gid.Empty, m.CellGID(0, 0, 0), "a rejected paint list leaves the map untouched")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "row.tengo")
	require.NoError(t, os.WriteFile(path, []byte(rowScript), 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Name())

	_, err = Load(filepath.Join(t.TempDir(), "missing.tengo"))
	assert.Error(t, err)
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"b.tengo":      {Data: []byte(rowScript)},
		"a.TENGO":      {Data: []byte(`paint = []`)},
		"broken.tengo": {Data: []byte(`paint = [`)},
		"notes.txt":    {Data: []byte("ignored")},
		"sub/c.tengo":  {Data: []byte(rowScript)},
	}
	scripts, err := LoadFS(fsys)
	assert.Error(t, err, "the broken script is reported")
	require.Len(t, scripts, 2)
	assert.Equal(t, "a.TENGO", scripts[0].Name())
	assert.Equal(t, "b.tengo", scripts[1].Name())
}
