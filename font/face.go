package font

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/encoding/charmap"
)

// Alpha above which a rasterised pixel is considered set
const threshold = 0x80

// FromFace rasterises the 256 code page 437 characters of face into glyphs
// drawn with colour index 1. It returns the glyphs and the line height.
func FromFace(face font.Face) ([]Glyph, int) {
	metrics := face.Metrics()
	height := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	glyphs := make([]Glyph, maxGlyphs)
	for i := range glyphs {
		r := charmap.CodePage437.DecodeByte(byte(i))

		advance, ok := face.GlyphAdvance(r)
		if !ok || r < ' ' {
			glyphs[i] = Glyph{Rows: make([][]byte, height)}
			for y := range glyphs[i].Rows {
				glyphs[i].Rows[y] = []byte{}
			}
			continue
		}

		width := advance.Ceil()
		m := image.NewAlpha(image.Rect(0, 0, width, height))
		d := font.Drawer{
			Dst:  m,
			Src:  image.Opaque,
			Face: face,
			Dot:  fixed.P(0, ascent),
		}
		d.DrawString(string(r))

		g := Glyph{
			Width: width,
			Rows:  make([][]byte, height),
		}
		for y := 0; y < height; y++ {
			g.Rows[y] = make([]byte, width)
			for x := 0; x < width; x++ {
				if m.AlphaAt(x, y).A >= threshold {
					g.Rows[y][x] = 1
				}
			}
		}
		glyphs[i] = g
	}

	return glyphs, height
}
