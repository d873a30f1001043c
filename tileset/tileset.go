/*
Package tileset implements a decoder and encoder for Westwood terrain
tilesets, also known as iconsets or templates.

A tileset is a header followed by a block of fixed size 8-bit icons, a
table of per-icon transparency flags and an optional map that translates a
cell number into an icon number. Every table is located by a byte offset
from the start of the file.

There are two incompatible header layouts. The legacy layout is 32 bytes:

	width:i16 height:i16 count:i16 allocated:i16 size:i32 icons:i32
	palettes:i32 remaps:i32 transFlag:i32 map:i32

The extended layout is 40 bytes and inserts the map dimensions after the
first four fields and a colour map offset before the map:

	width:i16 height:i16 count:i16 allocated:i16 mapWidth:i16 mapHeight:i16
	size:i32 icons:i32 palettes:i32 remaps:i32 transFlag:i32 colorMap:i32
	map:i32

As the icon data always follows the header, the legacy icons offset is
always 0x20 and that value is what selects the legacy layout. Anything else
is decoded as the extended layout. All values are little-endian.
*/
package tileset

import "fmt"

const (
	// IconWidth is the width of an icon in every known tileset
	IconWidth = 24
	// IconHeight is the height of an icon in every known tileset
	IconHeight = IconWidth

	legacyHeaderSize   = 0x20
	extendedHeaderSize = 0x28

	// Position of the legacy icons field, used to pick the layout
	legacyIconsOffset = 12
	legacyCheck       = legacyHeaderSize
)

// Variant identifies which of the two header layouts a tileset uses.
type Variant int

const (
	// Legacy is the 32 byte header layout
	Legacy Variant = iota
	// Extended is the 40 byte header layout with map dimensions and a
	// colour map
	Extended
)

func (v Variant) String() string {
	switch v {
	case Legacy:
		return "legacy"
	case Extended:
		return "extended"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Tileset is a decoded tileset header. It references the buffer it was
// parsed from rather than copying the icon data.
type Tileset struct {
	Variant Variant

	Width     int
	Height    int
	Count     int
	Allocated int

	// Only set for the extended layout
	MapWidth  int
	MapHeight int

	Size int

	// Offsets from the start of the buffer
	Icons     int
	Palettes  int
	Remaps    int
	TransFlag int
	ColorMap  int
	Map       int

	data    []byte
	mapSpan int
}

// IconSize returns the number of bytes used by a single icon.
func (t *Tileset) IconSize() int {
	return t.Width * t.Height
}

// HasMap reports whether the tileset carries a cell to icon map. Without one
// cells and icons are numbered identically.
func (t *Tileset) HasMap() bool {
	return t.Map != 0
}

// Bytes returns the buffer the tileset was parsed from.
func (t *Tileset) Bytes() []byte {
	return t.data
}

// IconIndex resolves the icon drawn for cell. It returns false if the cell
// cannot be resolved or the resulting icon is not less than Count.
func (t *Tileset) IconIndex(cell int) (int, bool) {
	if cell < 0 {
		return 0, false
	}

	icon := cell
	if t.HasMap() {
		if cell >= t.mapSpan {
			return 0, false
		}
		icon = int(t.data[t.Map+cell])
	}

	if icon >= t.Count {
		return 0, false
	}

	return icon, true
}

// Icon returns the pixels for icon i, one palette index per byte in row
// major order. It returns nil if i is out of range or the icon lies beyond
// the end of the buffer.
func (t *Tileset) Icon(i int) []byte {
	if i < 0 || i >= t.Count {
		return nil
	}

	size := t.IconSize()
	start := t.Icons + i*size
	if start+size > len(t.data) {
		return nil
	}

	return t.data[start : start+size : start+size]
}

// Transparent reports whether icon i contains pixels that must not be drawn.
func (t *Tileset) Transparent(i int) bool {
	if i < 0 || t.TransFlag+i >= len(t.data) {
		return false
	}
	return t.data[t.TransFlag+i] != 0
}
