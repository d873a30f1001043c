package tileset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/bodgit/wwgfx/palette"
)

// Options control how a tileset is encoded. A nil *Options writes a legacy
// tileset with no map.
type Options struct {
	Variant Variant

	// Map translates cell numbers to icon numbers. Empty means no map.
	Map []byte

	// Count overrides the count written to the header, by default the
	// number of icons
	Count int

	// Map dimensions and per-icon colour map, extended layout only
	MapWidth  int
	MapHeight int
	ColorMap  []byte
}

type encoder struct {
	w    io.Writer
	opts Options
}

func transparent(m *image.Paletted) bool {
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.ColorIndexAt(x, y) == 0 {
				return true
			}
		}
	}
	return false
}

func (e *encoder) encode(icons []*image.Paletted, width, height int) error {
	count := len(icons)
	if e.opts.Count > 0 {
		count = e.opts.Count
	}

	headerSize := legacyHeaderSize
	if e.opts.Variant == Extended {
		headerSize = extendedHeaderSize
	}

	iconsOffset := headerSize
	transOffset := iconsOffset + len(icons)*width*height
	colorMapOffset := transOffset + len(icons)
	mapOffset := colorMapOffset
	if e.opts.Variant == Extended {
		mapOffset += len(icons)
	}
	size := mapOffset + len(e.opts.Map)
	if len(e.opts.Map) == 0 {
		mapOffset = 0
	}

	b := new(bytes.Buffer)

	// Fields common to both layouts
	for _, v := range []int16{int16(width), int16(height), int16(count), 0} {
		if err := binary.Write(b, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	var fields []int32
	switch e.opts.Variant {
	case Legacy:
		fields = []int32{int32(size), int32(iconsOffset), 0, 0, int32(transOffset), int32(mapOffset)}
	case Extended:
		if err := binary.Write(b, binary.LittleEndian, []int16{int16(e.opts.MapWidth), int16(e.opts.MapHeight)}); err != nil {
			return err
		}
		fields = []int32{int32(size), int32(iconsOffset), 0, 0, int32(transOffset), int32(colorMapOffset), int32(mapOffset)}
	default:
		return errors.New("tileset: unknown variant")
	}
	if err := binary.Write(b, binary.LittleEndian, fields); err != nil {
		return err
	}

	// Icon pixels, row by row
	for _, m := range icons {
		r := m.Bounds()
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				b.WriteByte(m.ColorIndexAt(x, y))
			}
		}
	}

	for _, m := range icons {
		if transparent(m) {
			b.WriteByte(1)
		} else {
			b.WriteByte(0)
		}
	}

	if e.opts.Variant == Extended {
		cm := make([]byte, len(icons))
		copy(cm, e.opts.ColorMap)
		b.Write(cm)
	}

	b.Write(e.opts.Map)

	_, err := e.w.Write(b.Bytes())
	return err
}

// Encode writes icons to w as a tileset. Every icon must be the same size.
func Encode(w io.Writer, icons []*image.Paletted, opts *Options) error {
	e := encoder{w: w}
	if opts != nil {
		e.opts = *opts
	}

	if len(icons) == 0 {
		return errors.New("tileset: no icons")
	}

	width, height := icons[0].Bounds().Dx(), icons[0].Bounds().Dy()
	for _, m := range icons {
		if m.Bounds().Dx() != width || m.Bounds().Dy() != height {
			return errors.New("tileset: icons are different sizes")
		}
	}

	return e.encode(icons, width, height)
}

// EncodeImage slices m into IconWidth by IconHeight icons, left to right and
// top to bottom, and writes them to w as a tileset. If m is not already
// paletted it is mapped onto p; when p is nil a palette is computed from m.
func EncodeImage(w io.Writer, m image.Image, p color.Palette, opts *Options) error {
	b := m.Bounds()
	if b.Dx() < IconWidth || b.Dy() < IconHeight || b.Dx()%IconWidth != 0 || b.Dy()%IconHeight != 0 {
		return errors.New("tileset: image is not a whole number of icons")
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil || (p != nil && !samePalette(pm.Palette, p)) {
		if p == nil {
			p = palette.FromImage(m, palette.NumColors)
		}
		pm = image.NewPaletted(b, p)
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	var icons []*image.Paletted
	for y := b.Min.Y; y < b.Max.Y; y += IconHeight {
		for x := b.Min.X; x < b.Max.X; x += IconWidth {
			icons = append(icons, pm.SubImage(image.Rect(x, y, x+IconWidth, y+IconHeight)).(*image.Paletted))
		}
	}

	return Encode(w, icons, opts)
}

func samePalette(a, b color.Palette) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
