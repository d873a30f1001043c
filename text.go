package wwgfx

import (
	"github.com/bodgit/wwgfx/font"
)

// SetFont makes f the font used for text and returns the previous one.
func (r *Renderer) SetFont(f *font.Font) *font.Font {
	prev := r.font
	r.font = f
	return prev
}

// SetFontSpacing sets the extra space added after every glyph and between
// lines of text.
func (r *Renderer) SetFontSpacing(x, y int) {
	r.spacing = font.Spacing{X: x, Y: y}
}

// CharPixelWidth returns the width of c in the current font, including
// spacing.
func (r *Renderer) CharPixelWidth(c byte) int {
	if r.font == nil {
		return 0
	}
	return font.CharPixelWidth(r.font, c, r.spacing)
}

// StringPixelWidth returns the width of the widest '\r' separated line of s
// in the current font.
func (r *Renderer) StringPixelWidth(s string) int {
	if r.font == nil {
		return 0
	}
	return font.StringPixelWidth(r.font, s, r.spacing)
}

// Size of the box covered by s, where both '\n' and '\r' start a new line
func (r *Renderer) textBox(s string) (int, int) {
	var width, line int
	lines := 1
	for i := 0; i < len(s) && s[i] != 0; i++ {
		switch s[i] {
		case '\n', '\r':
			width = max(width, line)
			line = 0
			lines++
		default:
			line += font.CharPixelWidth(r.font, s[i], r.spacing)
		}
	}
	return max(width, line), lines*r.font.Height() + (lines-1)*r.spacing.Y
}

// DrawText prints s at (x, y) in the current font. fg becomes entry 1 and bg
// entry 0 of the colour translation table; unlike icons, a non-zero bg is
// painted behind the glyphs.
//
// Without a surface the text is passed to the backend instead, with the
// background box covering every line filled first when bg is not zero.
func (r *Renderer) DrawText(s string, x, y int, fg, bg uint8) {
	r.xlat[1] = fg
	r.xlat[0] = bg

	switch {
	case r.surface != nil:
		if r.font == nil {
			r.logger.Println("No font set, skipping text")
			return
		}
		font.Print(r.surface, r.font, s, x, y, r.xlat, r.spacing)
	case r.backend != nil:
		if bg != 0 && r.font != nil {
			w, h := r.textBox(s)
			r.backend.FillRect(bg, x, y, w, h)
		}
		r.backend.DrawText(fg, x, y, s)
	}
}
