package font

import (
	"image"

	"github.com/bodgit/wwgfx/blit"
	"github.com/bodgit/wwgfx/palette"
)

// Spacing is the extra space added after every glyph and between lines.
type Spacing struct {
	X int
	Y int
}

// CharPixelWidth returns the width of glyph c plus the horizontal spacing.
// Unknown glyphs are zero width.
func CharPixelWidth(f *Font, c byte, sp Spacing) int {
	w, _ := f.Width(c)
	return w + sp.X
}

// StringPixelWidth returns the width of the widest line in s, where lines
// are separated by '\r'. Measuring stops at a NUL byte.
func StringPixelWidth(f *Font, s string, sp Spacing) int {
	var width, line int
	for i := 0; i < len(s) && s[i] != 0; i++ {
		if s[i] == '\r' {
			line = max(line, width)
			width = 0
			continue
		}
		width += CharPixelWidth(f, s[i], sp)
	}
	return max(line, width)
}

type printer struct {
	dst   *image.Paletted
	f     *Font
	xlat  *palette.Xlat
	sp    Spacing
	row   []byte
	x, y  int
	baseX int
	// Bottom edge of the current line
	bottom int
}

// Start a new line. '\n' returns to the left edge of dst, anything else
// returns to the column printing started at. It returns false if the line
// would not fit.
func (p *printer) newline(c byte) bool {
	advance := p.sp.Y + p.f.MaxHeight
	if p.bottom+advance > p.dst.Rect.Dy() {
		return false
	}

	if c == '\n' {
		p.x = 0
	} else {
		p.x = p.baseX
	}
	p.y += advance
	p.bottom += advance

	return true
}

func (p *printer) set(x, y int, c uint8) {
	pt := p.dst.Rect.Min.Add(image.Pt(x, y))
	if pt.In(p.dst.Rect) {
		p.dst.Pix[p.dst.PixOffset(pt.X, pt.Y)] = c
	}
}

func (p *printer) fill(x, y, w, h int) {
	if bg := p.xlat[0]; bg != 0 {
		r := image.Rect(x, y, x+w, y+h).Add(p.dst.Rect.Min)
		blit.Fill(p.dst, r, bg)
	}
}

func (p *printer) glyph(c byte, width int) {
	lead, lines := p.f.LineRun(c)
	y := p.y

	if lead > 0 {
		p.fill(p.x, y, width, lead)
		y += lead
	}

	if lines == 0 {
		return
	}

	if cap(p.row) < width {
		p.row = make([]byte, width)
	}
	row := p.row[:width]

	bitmap := p.f.Bitmap(c)
	stride := blit.PackedRowBytes(width)
	for i := 0; i < lines; i++ {
		blit.Unpack(row, bitmap[i*stride:], width)
		blit.Translate(row, (*[palette.XlatSize]uint8)(p.xlat))
		for j, v := range row {
			if v != 0 {
				p.set(p.x+j, y, v)
			}
		}
		y++
	}

	if trail := p.f.MaxHeight - (lead + lines); trail > 0 {
		p.fill(p.x, y, width, trail)
	}
}

// Print draws s onto dst at (x, y), relative to the top left of dst, using
// f. Every glyph pixel is looked up in xlat and only non-zero results are
// written. Rows above and below a glyph are filled with xlat[0] unless it
// is zero.
//
// Text is wrapped when the next glyph would pass the right edge of dst,
// '\n' starts a new line at the left edge and '\r' starts a new line at x.
// Text is never clipped vertically; printing stops at the first line that
// would not fit, or at a NUL byte.
func Print(dst *image.Paletted, f *Font, s string, x, y int, xlat *palette.Xlat, sp Spacing) {
	if y+f.MaxHeight > dst.Rect.Dy() {
		return
	}

	p := printer{
		dst:    dst,
		f:      f,
		xlat:   xlat,
		sp:     sp,
		x:      x,
		y:      y,
		baseX:  x,
		bottom: y + f.MaxHeight,
	}

	for i := 0; i < len(s); {
		c := s[i]
		switch c {
		case 0:
			return
		case '\n', '\r':
			if !p.newline(c) {
				return
			}
			i++
			continue
		}

		w, ok := f.Width(c)
		if p.x+sp.X+w > dst.Rect.Dx() {
			// Already at the start of a line so it will never fit
			if p.x == p.baseX {
				return
			}
			if !p.newline(0) {
				return
			}
			continue
		}

		if ok {
			p.glyph(c, w)
		}
		p.x += sp.X + w
		i++
	}
}
