package scene

import (
	"image"

	"github.com/bodgit/wwgfx"
	"github.com/bodgit/wwgfx/backend/raster"
	"github.com/bodgit/wwgfx/tileset"
)

func (s *Scene) clip(r *wwgfx.Renderer) image.Rectangle {
	if s.Clip != nil {
		return s.Clip.Rectangle()
	}
	return r.Viewport()
}

func (s *Scene) drawCell(r *wwgfx.Renderer, c Cell, clip image.Rectangle) error {
	t, err := r.ParseTileset(s.tilesets[c.Tileset])
	if err != nil {
		return err
	}

	if c.Clip != nil {
		clip = clip.Intersect(c.Clip.Rectangle())
	}

	if !c.Map {
		r.BlitCell(t, c.Cell, c.X, c.Y, clip, c.remap)
		return nil
	}

	cells, columns := t.Count, c.Columns
	if t.Variant == tileset.Extended && t.MapWidth > 0 && t.MapHeight > 0 {
		cells = t.MapWidth * t.MapHeight
		if columns <= 0 {
			columns = t.MapWidth
		}
	}
	if columns <= 0 {
		columns = cells
	}

	for i := 0; i < cells; i++ {
		x := c.X + i%columns*t.Width
		y := c.Y + i/columns*t.Height
		r.BlitCell(t, i, x, y, clip, c.remap)
	}

	return nil
}

// Draw draws the scene with r: the background first, then cells, fills,
// lines and finally text.
func (s *Scene) Draw(r *wwgfx.Renderer) error {
	vp := r.Viewport()
	r.FillRect(s.Background, vp.Min.X, vp.Min.Y, vp.Dx(), vp.Dy())

	clip := s.clip(r)
	for _, c := range s.Cells {
		if err := s.drawCell(r, c, clip); err != nil {
			return err
		}
	}

	for _, f := range s.Fills {
		r.FillRect(f.Color, f.X, f.Y, f.W, f.H)
	}

	for _, l := range s.Lines {
		r.DrawLine(l.Color, l.X0, l.Y0, l.X1, l.Y1)
	}

	for _, t := range s.Text {
		r.SetFont(s.fonts[t.Font])
		r.SetFontSpacing(t.Spacing.X, t.Spacing.Y)
		if len(t.Colors) > 0 {
			r.SetPaletteRange(t.Colors, 2, 2+len(t.Colors)-1)
		}
		r.DrawText(t.encoded, t.X, t.Y, t.FG, t.BG)
	}

	return nil
}

// Render draws the scene onto a new paletted image.
func Render(s *Scene, opts ...wwgfx.Option) (*image.Paletted, error) {
	if s.palette == nil {
		return nil, ErrNoPalette
	}

	m := image.NewPaletted(s.Bounds(), s.palette)
	r := wwgfx.New(append(opts, wwgfx.WithSurface(m))...)
	if err := s.Draw(r); err != nil {
		return nil, err
	}

	return m, nil
}

// RenderRGBA draws the scene through the raster backend. Icons lose their
// transparency and remapping on this path.
func RenderRGBA(s *Scene, opts ...wwgfx.Option) (*image.RGBA, error) {
	if s.palette == nil {
		return nil, ErrNoPalette
	}

	c := raster.New(s.Width, s.Height, s.palette)
	r := wwgfx.New(append(opts, wwgfx.WithBackend(c))...)
	if err := s.Draw(r); err != nil {
		return nil, err
	}

	return c.Image, nil
}
