package main

import (
	"fmt"
	"image/color"

	"github.com/milk9111/tilesmith/gid"
	"golang.org/x/image/colornames"
)

// layerTints are cycled per layer so stacked layers stay distinguishable.
var layerTints = []string{"#3c78ff", "#e0a030", "#40c070", "#c050c0", "#d04040", "#30b0c0"}

// parseHexColor parses "#rrggbb", falling back to a default blue.
func parseHexColor(s string) color.RGBA {
	var r, g, b uint8 = 0x3c, 0x78, 0xff
	if len(s) == 7 && s[0] == '#' {
		var ri, gi, bi uint32
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &ri, &gi, &bi); err == nil {
			r, g, b = uint8(ri), uint8(gi), uint8(bi)
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// gidColor shades a cell with no tileset image. The raw index picks the
// brightness within the layer's tint; flipped tiles are drawn darker.
func gidColor(layer int, g gid.GID, opacity float64) color.RGBA {
	if g.IsEmpty() {
		return color.RGBA{}
	}
	base := parseHexColor(layerTints[layer%len(layerTints)])
	shade := 0.55 + 0.45*float64(g.Raw()%8)/7
	if gid.IsFlippedH(g) || gid.IsFlippedV(g) || gid.IsFlippedD(g) {
		shade *= 0.7
	}
	a := opacity
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	// premultiplied alpha
	scale := shade * a
	return color.RGBA{
		R: uint8(float64(base.R) * scale),
		G: uint8(float64(base.G) * scale),
		B: uint8(float64(base.B) * scale),
		A: uint8(255 * a),
	}
}

var (
	gridColor     = colornames.Dimgray
	hoverColor    = colornames.Yellow
	objectColor   = colornames.Orange
	backdropColor = colornames.Black
	canvasColor   = color.RGBA{R: 24, G: 24, B: 28, A: 255}
	regionColor   = colornames.Lightskyblue
)
