package tileset

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrMalformed is returned when a tileset header is truncated or describes
// tables that lie outside of the buffer.
var ErrMalformed = errors.New("tileset: malformed asset")

func malformed(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, a...))
}

func i16(b []byte, off int) int {
	return int(int16(binary.LittleEndian.Uint16(b[off:])))
}

func i32(b []byte, off int) int {
	return int(int32(binary.LittleEndian.Uint32(b[off:])))
}

type table struct {
	name   string
	offset int
	length int
}

type decoder struct {
	b []byte
	t *Tileset
}

func (d *decoder) readCommon() {
	d.t.Width = i16(d.b, 0)
	d.t.Height = i16(d.b, 2)
	d.t.Count = i16(d.b, 4)
	d.t.Allocated = i16(d.b, 6)
}

func (d *decoder) readLegacy() {
	d.t.Variant = Legacy
	d.t.Size = i32(d.b, 8)
	d.t.Icons = i32(d.b, 12)
	d.t.Palettes = i32(d.b, 16)
	d.t.Remaps = i32(d.b, 20)
	d.t.TransFlag = i32(d.b, 24)
	d.t.Map = i32(d.b, 28)
}

func (d *decoder) readExtended() {
	d.t.Variant = Extended
	d.t.MapWidth = i16(d.b, 8)
	d.t.MapHeight = i16(d.b, 10)
	d.t.Size = i32(d.b, 12)
	d.t.Icons = i32(d.b, 16)
	d.t.Palettes = i32(d.b, 20)
	d.t.Remaps = i32(d.b, 24)
	d.t.TransFlag = i32(d.b, 28)
	d.t.ColorMap = i32(d.b, 32)
	d.t.Map = i32(d.b, 36)
}

func (d *decoder) validate() error {
	t := d.t

	if t.Width <= 0 || t.Height <= 0 {
		return malformed("invalid icon size %dx%d", t.Width, t.Height)
	}
	if t.Count < 0 {
		return malformed("negative count %d", t.Count)
	}

	checks := []table{
		{"icons", t.Icons, 0},
		{"transparency flags", t.TransFlag, 0},
	}
	if t.HasMap() {
		checks = append(checks, table{"map", t.Map, t.mapSpan})
	}

	for _, c := range checks {
		if c.offset < 0 || c.offset+c.length > len(d.b) {
			return malformed("%s table at %#x exceeds %d byte buffer", c.name, c.offset, len(d.b))
		}
	}

	return nil
}

func (d *decoder) decode(b []byte) error {
	d.b = b
	d.t = &Tileset{data: b}

	if len(b) < legacyHeaderSize {
		return malformed("%d bytes is too short for a header", len(b))
	}

	d.readCommon()

	// The legacy icons field is the only thing that tells the two apart
	if i32(b, legacyIconsOffset) == legacyCheck {
		d.readLegacy()
	} else {
		if len(b) < extendedHeaderSize {
			return malformed("%d bytes is too short for an extended header", len(b))
		}
		d.readExtended()
	}

	d.t.mapSpan = d.t.Count
	if d.t.Variant == Extended && d.t.MapWidth > 0 && d.t.MapHeight > 0 {
		d.t.mapSpan = d.t.MapWidth * d.t.MapHeight
	}

	return d.validate()
}

// Parse decodes the tileset header in b. The returned Tileset references b
// so it must not be modified while the Tileset is in use.
func Parse(b []byte) (*Tileset, error) {
	var d decoder
	if err := d.decode(b); err != nil {
		return nil, err
	}
	return d.t, nil
}
