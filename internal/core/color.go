package core

// Color is a palette slot for a screen cell. The platform layer maps each
// slot to a concrete terminal style.
type Color uint8

// Palette slots.
const (
	ColorDefault Color = iota
	ColorFrame         // board background between tiles
	ColorText
	ColorMuted
	ColorAccent // score changes, new-best banner
	ColorWarning
	ColorEmpty // empty tile
	ColorTile2
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
	ColorTile1024
	ColorTile2048
	ColorTile4096
	ColorTile8192
	ColorTile16384
	ColorTile32768
	ColorTileSuper // anything without its own slot
)

// TileColor returns the slot for a tile value. Values that are not a power
// of two between 2 and 32768 share ColorTileSuper.
func TileColor(value uint32) Color {
	if value == 0 {
		return ColorEmpty
	}
	slot := ColorTile2
	for v := uint32(2); v <= 32768; v <<= 1 {
		if v == value {
			return slot
		}
		slot++
	}
	return ColorTileSuper
}
