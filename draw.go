package wwgfx

import (
	"image"

	"github.com/bodgit/wwgfx/blit"
)

// FillRect fills a w by h rectangle at (x, y) with palette index c.
func (r *Renderer) FillRect(c uint8, x, y, w, h int) {
	switch {
	case r.surface != nil:
		blit.Fill(r.surface, image.Rect(x, y, x+w, y+h).Add(r.surface.Rect.Min), c)
	case r.backend != nil:
		r.backend.FillRect(c, x, y, w, h)
	}
}

// DrawLine draws a line from (x, y) to (dx, dy) with palette index c.
func (r *Renderer) DrawLine(c uint8, x, y, dx, dy int) {
	switch {
	case r.surface != nil:
		o := r.surface.Rect.Min
		blit.Line(r.surface, image.Pt(x, y).Add(o), image.Pt(dx, dy).Add(o), c)
	case r.backend != nil:
		r.backend.DrawLine(c, x, y, dx, dy)
	}
}
