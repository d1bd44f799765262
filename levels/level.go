// Package levels converts maps to and from the JSON level format.
package levels

import (
	"errors"
	"fmt"

	"github.com/milk9111/tilesmith/gid"
	"github.com/milk9111/tilesmith/tilemap"
)

// CurrentVersion is the newest schema this package writes and understands.
const CurrentVersion = 1

// ErrUnsupportedVersion is returned for files written by a newer editor.
var ErrUnsupportedVersion = errors.New("levels: unsupported schema version")

type Level struct {
	Version    int           `json:"version"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	TileWidth  int           `json:"tile_width"`
	TileHeight int           `json:"tile_height"`
	Layers     []LayerData   `json:"layers"`
	Tilesets   []TilesetData `json:"tilesets,omitempty"`
}

// LayerData is one layer; Data is row-major and only set for tile layers.
type LayerData struct {
	Type    string       `json:"type"`
	Name    string       `json:"name"`
	Visible bool         `json:"visible"`
	Opacity float64      `json:"opacity"`
	Locked  bool         `json:"locked,omitempty"`
	ZOrder  int          `json:"z_order"`
	Data    []uint32     `json:"data,omitempty"`
	Objects []ObjectData `json:"objects,omitempty"`
}

type ObjectData struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Properties map[string]any `json:"properties,omitempty"`
}

// TilesetData carries the derived grid counts for consumers; they are
// ignored on load.
type TilesetData struct {
	Name        string `json:"name"`
	TileWidth   int    `json:"tile_width"`
	TileHeight  int    `json:"tile_height"`
	Margin      int    `json:"margin"`
	Spacing     int    `json:"spacing"`
	ImageWidth  int    `json:"image_width"`
	ImageHeight int    `json:"image_height"`
	FirstGID    uint32 `json:"first_gid"`
	Columns     int    `json:"columns"`
	Rows        int    `json:"rows"`
	TileCount   int    `json:"tile_count"`
}

// FromMap snapshots m.
func FromMap(m *tilemap.Map) *Level {
	lvl := &Level{
		Version:    CurrentVersion,
		Width:      m.Width,
		Height:     m.Height,
		TileWidth:  m.TileWidth,
		TileHeight: m.TileHeight,
	}
	for _, l := range m.Layers() {
		ld := LayerData{
			Type:    l.Kind.String(),
			Name:    l.Name,
			Visible: l.Visible,
			Opacity: l.Opacity,
			Locked:  l.Locked,
			ZOrder:  l.ZOrder,
		}
		if l.IsTile() {
			ld.Data = make([]uint32, len(l.Data))
			for i, v := range l.Data {
				ld.Data[i] = uint32(v)
			}
		}
		for _, o := range l.Objects {
			ld.Objects = append(ld.Objects, ObjectData{
				ID:         o.ID,
				Name:       o.Name,
				Type:       o.Type,
				X:          o.X,
				Y:          o.Y,
				Width:      o.Width,
				Height:     o.Height,
				Properties: o.Clone().Properties,
			})
		}
		lvl.Layers = append(lvl.Layers, ld)
	}
	for _, ts := range m.Tilesets() {
		lvl.Tilesets = append(lvl.Tilesets, TilesetData{
			Name:        ts.Name,
			TileWidth:   ts.TileWidth,
			TileHeight:  ts.TileHeight,
			Margin:      ts.Margin,
			Spacing:     ts.Spacing,
			ImageWidth:  ts.ImageWidth,
			ImageHeight: ts.ImageHeight,
			FirstGID:    uint32(ts.FirstGID),
			Columns:     ts.Columns(),
			Rows:        ts.Rows(),
			TileCount:   ts.TileCount(),
		})
	}
	return lvl
}

// ToMap rebuilds a map, preserving layer order and cell layout.
func (lvl *Level) ToMap() (*tilemap.Map, error) {
	if lvl.Version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d (newest known %d)", ErrUnsupportedVersion, lvl.Version, CurrentVersion)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("levels: invalid size %dx%d", lvl.Width, lvl.Height)
	}

	m := tilemap.NewEmpty(lvl.Width, lvl.Height, lvl.TileWidth, lvl.TileHeight)
	for i, ld := range lvl.Layers {
		var l tilemap.Layer
		switch ld.Type {
		case tilemap.KindTile.String():
			if len(ld.Data) != lvl.Width*lvl.Height {
				return nil, fmt.Errorf("levels: layer %d %q has %d cells, want %d", i, ld.Name, len(ld.Data), lvl.Width*lvl.Height)
			}
			l = tilemap.NewTileLayer(ld.Name, lvl.Width, lvl.Height, ld.ZOrder)
			for j, v := range ld.Data {
				l.Data[j] = gid.GID(v)
			}
		case tilemap.KindObject.String():
			l = tilemap.NewObjectLayer(ld.Name, ld.ZOrder)
			for _, od := range ld.Objects {
				l = l.AddObject(tilemap.Object{
					ID:         od.ID,
					Name:       od.Name,
					Type:       od.Type,
					X:          od.X,
					Y:          od.Y,
					Width:      od.Width,
					Height:     od.Height,
					Properties: od.Properties,
				})
			}
		default:
			return nil, fmt.Errorf("levels: layer %d %q has unknown type %q", i, ld.Name, ld.Type)
		}
		l = l.WithVisible(ld.Visible).WithOpacity(ld.Opacity).WithLocked(ld.Locked)
		m.AddLayer(l)
	}
	for _, td := range lvl.Tilesets {
		m.AddTileset(&tilemap.Tileset{
			Name:        td.Name,
			TileWidth:   td.TileWidth,
			TileHeight:  td.TileHeight,
			Margin:      td.Margin,
			Spacing:     td.Spacing,
			ImageWidth:  td.ImageWidth,
			ImageHeight: td.ImageHeight,
			FirstGID:    gid.GID(td.FirstGID),
		})
	}
	return m, nil
}
