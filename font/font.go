/*
Package font implements a decoder and encoder for Westwood bitmap fonts and
the text printer that draws them onto a palette indexed surface.

A font starts with a 20 byte header:

	fileSize:u16 fileVersion:u8 unknown:u8 start:u16 dataOffsetList:u16
	widthList:u16 data:u16 lineList:u16 unknownConst:u16 pad:u8
	glyphCountMinusOne:u8 maxHeight:u8 maxWidth:u8

The header locates four tables, each indexed by glyph number: a u16 offset
to the glyph bitmap, a u8 width, and a u16 line run whose low byte is the
number of blank rows above the glyph and whose high byte is the number of
rows actually stored. Bitmaps are 4 bits per pixel, two pixels per byte with
the low nibble first, and every row starts on a byte boundary. All values
are little-endian.
*/
package font

const (
	headerSize = 20

	defaultVersion = 1
	defaultUnknown = 5
	defaultStart   = 0x10
	defaultConst   = 0x1012
)

// Font is a decoded font header. It references the buffer it was parsed
// from rather than copying the glyph data.
type Font struct {
	FileSize int
	Version  int
	Start    int

	// Offsets from the start of the buffer
	DataOffsets int
	Widths      int
	Data        int
	Lines       int

	Count     int
	MaxHeight int
	MaxWidth  int

	data []byte
}

// Bytes returns the buffer the font was parsed from.
func (f *Font) Bytes() []byte {
	return f.data
}

// Height returns the height of every line of text.
func (f *Font) Height() int {
	return f.MaxHeight
}

// Width returns the pixel width of glyph c, without any spacing. It returns
// false if the font has no such glyph.
func (f *Font) Width(c byte) (int, bool) {
	if int(c) >= f.Count {
		return 0, false
	}
	return int(f.data[f.Widths+int(c)]), true
}

// LineRun returns the number of blank rows above glyph c and the number of
// rows stored for it.
func (f *Font) LineRun(c byte) (int, int) {
	if int(c) >= f.Count {
		return 0, 0
	}
	v := u16(f.data, f.Lines+int(c)<<1)
	return v & 0xff, v >> 8
}

// Bitmap returns the packed rows of glyph c, or nil if it has none.
func (f *Font) Bitmap(c byte) []byte {
	if int(c) >= f.Count {
		return nil
	}

	w, _ := f.Width(c)
	_, lines := f.LineRun(c)
	n := packedSize(w, lines)
	if n == 0 {
		return nil
	}

	off := u16(f.data, f.DataOffsets+int(c)<<1)
	return f.data[off : off+n : off+n]
}
