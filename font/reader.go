package font

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/bodgit/wwgfx/blit"
)

// ErrMalformed is returned when a font header is truncated or describes
// tables or glyphs that lie outside of the buffer.
var ErrMalformed = errors.New("font: malformed asset")

func malformed(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, a...))
}

func u16(b []byte, off int) int {
	return int(binary.LittleEndian.Uint16(b[off:]))
}

func packedSize(width, lines int) int {
	return blit.PackedRowBytes(width) * lines
}

type decoder struct {
	b []byte
	f *Font
}

func (d *decoder) readHeader() {
	d.f.FileSize = u16(d.b, 0)
	d.f.Version = int(d.b[2])
	d.f.Start = u16(d.b, 4)
	d.f.DataOffsets = u16(d.b, 6)
	d.f.Widths = u16(d.b, 8)
	d.f.Data = u16(d.b, 10)
	d.f.Lines = u16(d.b, 12)
	d.f.Count = int(d.b[17]) + 1
	d.f.MaxHeight = int(d.b[18])
	d.f.MaxWidth = int(d.b[19])
}

func (d *decoder) validateTables() error {
	for _, t := range []struct {
		name   string
		offset int
		length int
	}{
		{"data offset", d.f.DataOffsets, d.f.Count << 1},
		{"width", d.f.Widths, d.f.Count},
		{"line", d.f.Lines, d.f.Count << 1},
	} {
		if t.offset+t.length > len(d.b) {
			return malformed("%s table at %#x exceeds %d byte buffer", t.name, t.offset, len(d.b))
		}
	}
	return nil
}

func (d *decoder) validateGlyphs() error {
	for i := 0; i < d.f.Count; i++ {
		c := byte(i)
		w, _ := d.f.Width(c)
		lead, lines := d.f.LineRun(c)

		if lead+lines > d.f.MaxHeight {
			return malformed("glyph %d is %d rows, more than %d", i, lead+lines, d.f.MaxHeight)
		}

		off := u16(d.b, d.f.DataOffsets+i<<1)
		if off+packedSize(w, lines) > len(d.b) {
			return malformed("glyph %d at %#x exceeds %d byte buffer", i, off, len(d.b))
		}
	}
	return nil
}

func (d *decoder) decode(b []byte) error {
	d.b = b
	d.f = &Font{data: b}

	if len(b) < headerSize {
		return malformed("%d bytes is too short for a header", len(b))
	}

	d.readHeader()

	if err := d.validateTables(); err != nil {
		return err
	}

	return d.validateGlyphs()
}

// Parse decodes the font in b. The returned Font references b so it must
// not be modified while the Font is in use.
func Parse(b []byte) (*Font, error) {
	var d decoder
	if err := d.decode(b); err != nil {
		return nil, err
	}
	return d.f, nil
}
