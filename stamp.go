package wwgfx

import (
	"fmt"
	"image"

	"github.com/bodgit/wwgfx/blit"
	"github.com/bodgit/wwgfx/iconcache"
	"github.com/bodgit/wwgfx/tileset"
)

func sameBuffer(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// ParseTileset decodes the tileset in b. Parsing the same buffer again, as
// opposed to a buffer with the same contents, returns the previous result
// without reading b.
func (r *Renderer) ParseTileset(b []byte) (*tileset.Tileset, error) {
	if r.lastTileset != nil && sameBuffer(b, r.lastBuffer) {
		return r.lastTileset, nil
	}

	t, err := tileset.Parse(b)
	if err != nil {
		return nil, err
	}

	r.lastBuffer, r.lastTileset = b, t

	return t, nil
}

// ResetIconCache drops every icon converted for the backend. It must be
// called after a palette change for the new colours to be used.
func (r *Renderer) ResetIconCache() {
	if r.cache != nil {
		r.cache.Reset()
	}
}

// BlitCell draws cell from t with its top left corner at (x, y), showing
// only the part inside both clip and the viewport. Coordinates and clip are
// relative to the top left of the viewport.
//
// On a surface, if remap is not nil each pixel is translated through it and
// written unless the result is zero. Otherwise icons flagged as transparent
// skip zero pixels and all other icons are copied as is.
//
// On a backend the icon is converted to an image once and drawn clipped;
// remap and transparency are not applied.
//
// Cells that do not resolve to an icon are silently skipped.
func (r *Renderer) BlitCell(t *tileset.Tileset, cell, x, y int, clip image.Rectangle, remap []byte) {
	if t == nil {
		return
	}

	if t != r.active {
		r.active = t
		r.ResetIconCache()
	}

	icon, ok := t.IconIndex(cell)
	if !ok {
		r.logger.Printf("Cell %d does not resolve to an icon, skipping\n", cell)
		return
	}

	pix := t.Icon(icon)
	if pix == nil {
		r.logger.Printf("Icon %d lies outside the tileset, skipping\n", icon)
		return
	}

	g, ok := blit.Clip(image.Rect(x, y, x+t.Width, y+t.Height), clip.Intersect(r.Viewport()))
	if !ok {
		return
	}

	switch {
	case r.surface != nil:
		g.Dst = g.Dst.Add(r.surface.Rect.Min)
		switch {
		case remap != nil:
			blit.Remap(r.surface, g, pix, t.Width, remap)
		case t.Transparent(icon):
			blit.Transparent(r.surface, g, pix, t.Width)
		default:
			blit.Copy(r.surface, g, pix, t.Width)
		}
	case r.backend != nil:
		k := iconcache.Key{Tileset: t, Icon: icon}
		if _, _, ok := r.cache.Size(k); !ok {
			r.logger.Printf("Converting icon %d\n", icon)
		}
		m := r.cache.GetOrCreate(k, t.Width, t.Height, pix, fmt.Sprintf("icon_%p_%d", t, icon))

		w, h := g.Size()
		r.backend.SetClipRect(g.Dst.Min.X, g.Dst.Min.Y, w, h)
		r.backend.DrawImage(m, x, y, t.Width, t.Height)
		r.backend.ResetClipRect()
	}
}
