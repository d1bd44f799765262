// Package gid packs a raw tile index and three orientation flags into a
// single 32-bit cell value.
package gid

// GID is a stored cell value. Bits 0-28 hold the raw tile index, bits 29-31
// hold the flip flags. Zero is the empty cell.
type GID uint32

const (
	FlagFlipH GID = 1 << 31
	FlagFlipV GID = 1 << 30
	FlagFlipD GID = 1 << 29

	flagMask GID = FlagFlipH | FlagFlipV | FlagFlipD

	// MaxRaw is the largest raw tile index that fits below the flag bits.
	MaxRaw GID = 1<<29 - 1
)

// Empty is the cell value for "no tile".
const Empty GID = 0

// Compose builds a GID from a raw index and flags. Bits of raw above bit 28
// are discarded.
func Compose(raw uint32, flipH, flipV, flipD bool) GID {
	g := GID(raw) & MaxRaw
	if flipH {
		g |= FlagFlipH
	}
	if flipV {
		g |= FlagFlipV
	}
	if flipD {
		g |= FlagFlipD
	}
	return g
}

// Mask strips the flip flags. Always mask before comparing against tileset
// ranges.
func Mask(g GID) GID {
	return g &^ flagMask
}

func IsFlippedH(g GID) bool { return g&FlagFlipH != 0 }
func IsFlippedV(g GID) bool { return g&FlagFlipV != 0 }
func IsFlippedD(g GID) bool { return g&FlagFlipD != 0 }

// Raw returns the masked tile index.
func (g GID) Raw() uint32 {
	return uint32(Mask(g))
}

// IsEmpty reports whether g carries no tile, ignoring flags.
func (g GID) IsEmpty() bool {
	return Mask(g) == 0
}
