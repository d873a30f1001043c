package wwgfx_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/wwgfx/font"
	"github.com/bodgit/wwgfx/tileset"
	"github.com/stretchr/testify/require"
)

const iconSize = tileset.IconWidth

func grey() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{uint8(i)}
	}
	return p
}

func icon(fill func(x, y int) uint8) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, iconSize, iconSize), grey())
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			m.SetColorIndex(x, y, fill(x, y))
		}
	}
	return m
}

// Icons where every pixel encodes its own row or column, plus one so that
// none are transparent
func rowIcon() *image.Paletted {
	return icon(func(_, y int) uint8 { return uint8(y + 1) })
}

func colIcon() *image.Paletted {
	return icon(func(x, _ int) uint8 { return uint8(x + 1) })
}

func solidIcon(c uint8) *image.Paletted {
	return icon(func(int, int) uint8 { return c })
}

func encodeTileset(t *testing.T, icons []*image.Paletted, opts *tileset.Options) []byte {
	t.Helper()
	b := new(bytes.Buffer)
	require.NoError(t, tileset.Encode(b, icons, opts))
	return b.Bytes()
}

func surface(w, h int) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, w, h), grey())
	for i := range m.Pix {
		m.Pix[i] = 0x77
	}
	return m
}

func untouched(m *image.Paletted) bool {
	for _, p := range m.Pix {
		if p != 0x77 {
			return false
		}
	}
	return true
}

// A four row font with a two row 'A' and a solid 'B'
func testFont(t *testing.T) *font.Font {
	t.Helper()

	glyphs := make([]font.Glyph, 128)
	glyphs['A'] = font.Glyph{Width: 3, Rows: [][]byte{
		{0, 0, 0},
		{1, 2, 1},
		{1, 0, 1},
		{0, 0, 0},
	}}
	glyphs['B'] = font.Glyph{Width: 2, Rows: [][]byte{
		{1, 1},
		{1, 1},
		{1, 1},
		{1, 1},
	}}

	b := new(bytes.Buffer)
	require.NoError(t, font.Encode(b, glyphs, 4))

	f, err := font.Parse(b.Bytes())
	require.NoError(t, err)
	return f
}
