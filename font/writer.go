package font

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/bodgit/wwgfx/blit"
)

const maxGlyphs = 256

// Glyph is a single character bitmap. Rows holds one slice of 4-bit pixel
// values per row, top to bottom, all Width long.
type Glyph struct {
	Width int
	Rows  [][]byte
}

func blank(row []byte) bool {
	for _, p := range row {
		if p&0x0f != 0 {
			return false
		}
	}
	return true
}

// Work out the blank rows above and the rows that need storing
func (g Glyph) lineRun() (int, int) {
	first, last := -1, -1
	for i, row := range g.Rows {
		if !blank(row) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return len(g.Rows), 0
	}
	return first, last - first + 1
}

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(glyphs []Glyph, height int) error {
	n := len(glyphs)

	offsetList := headerSize
	widthList := offsetList + n<<1
	lineList := widthList + n
	data := lineList + n<<1

	var (
		offsets = make([]uint16, n)
		widths  = make([]uint8, n)
		lines   = make([]uint16, n)
		bitmaps = new(bytes.Buffer)
		width   int
	)

	for i, g := range glyphs {
		if g.Width < 0 || g.Width > 0xff {
			return errors.New("font: glyph too wide")
		}
		for _, row := range g.Rows {
			if len(row) != g.Width {
				return errors.New("font: glyph row is the wrong width")
			}
		}

		lead, drawn := g.lineRun()
		if lead+drawn > height || lead > 0xff || drawn > 0xff {
			return errors.New("font: glyph too tall")
		}

		offsets[i] = uint16(data + bitmaps.Len())
		widths[i] = uint8(g.Width)
		lines[i] = uint16(drawn<<8 | lead)
		width = max(width, g.Width)

		packed := make([]byte, blit.PackedRowBytes(g.Width))
		for _, row := range g.Rows[lead : lead+drawn] {
			bitmaps.Write(packed[:blit.Pack(packed, row)])
		}
	}

	size := data + bitmaps.Len()
	if size > 0xffff {
		return errors.New("font: too much glyph data")
	}

	b := new(bytes.Buffer)
	for _, v := range []interface{}{
		uint16(size),
		uint8(defaultVersion),
		uint8(defaultUnknown),
		uint16(defaultStart),
		uint16(offsetList),
		uint16(widthList),
		uint16(data),
		uint16(lineList),
		uint16(defaultConst),
		uint8(0),
		uint8(n - 1),
		uint8(height),
		uint8(width),
		offsets,
		widths,
		lines,
	} {
		if err := binary.Write(b, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	if _, err := bitmaps.WriteTo(b); err != nil {
		return err
	}

	_, err := e.w.Write(b.Bytes())
	return err
}

// Encode writes glyphs to w as a font where every line is height rows. The
// glyph number is its index in glyphs.
func Encode(w io.Writer, glyphs []Glyph, height int) error {
	if len(glyphs) == 0 || len(glyphs) > maxGlyphs {
		return errors.New("font: need between 1 and 256 glyphs")
	}
	if height <= 0 || height > 0xff {
		return errors.New("font: invalid height")
	}

	e := encoder{w: w}

	return e.encode(glyphs, height)
}
