package selection

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/tilesmith/gid"
)

// ErrBadStamp is returned by ParseStamp for malformed input.
var ErrBadStamp = errors.New("selection: malformed stamp")

// MarshalText encodes the stamp as "WxH:" followed by its GIDs, comma
// separated within a row and semicolon separated between rows.
func (s Stamp) MarshalText() ([]byte, error) {
	if s.Width <= 0 || s.Height <= 0 || len(s.GIDs) != s.Width*s.Height {
		return nil, ErrBadStamp
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d:", s.Width, s.Height)
	for r := 0; r < s.Height; r++ {
		if r > 0 {
			b.WriteByte(';')
		}
		for c := 0; c < s.Width; c++ {
			if c > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatUint(uint64(s.At(c, r)), 10))
		}
	}
	return []byte(b.String()), nil
}

// ParseStamp decodes text produced by MarshalText. Flip flags survive the
// round trip.
func ParseStamp(text string) (Stamp, error) {
	head, body, ok := strings.Cut(strings.TrimSpace(text), ":")
	if !ok {
		return Stamp{}, ErrBadStamp
	}
	ws, hs, ok := strings.Cut(head, "x")
	if !ok {
		return Stamp{}, ErrBadStamp
	}
	w, err1 := strconv.Atoi(ws)
	h, err2 := strconv.Atoi(hs)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return Stamp{}, ErrBadStamp
	}
	// Every cell takes at least one byte of body.
	if w > len(body) || h > len(body) {
		return Stamp{}, fmt.Errorf("%w: %dx%d does not fit %d bytes", ErrBadStamp, w, h, len(body))
	}

	rows := strings.Split(body, ";")
	if len(rows) != h {
		return Stamp{}, fmt.Errorf("%w: want %d rows, got %d", ErrBadStamp, h, len(rows))
	}
	var gids []gid.GID
	for _, row := range rows {
		cells := strings.Split(row, ",")
		if len(cells) != w {
			return Stamp{}, fmt.Errorf("%w: want %d columns, got %d", ErrBadStamp, w, len(cells))
		}
		for _, cell := range cells {
			v, err := strconv.ParseUint(strings.TrimSpace(cell), 10, 32)
			if err != nil {
				return Stamp{}, fmt.Errorf("%w: %v", ErrBadStamp, err)
			}
			gids = append(gids, gid.GID(v))
		}
	}
	return Stamp{Width: w, Height: h, GIDs: gids}, nil
}
