/*
Package raster is a software backend that draws onto an *image.RGBA.

Palette indices are turned into colours with the canvas palette at the time
of the call. Text is drawn with an x/image font face, by default
basicfont.Face7x13, after decoding the string from code page 437.
*/
package raster

import (
	"image"
	"image/color"

	"github.com/bodgit/wwgfx/backend"
	"github.com/bodgit/wwgfx/blit"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/encoding/charmap"
)

// Image is an icon converted by a Canvas.
type Image struct {
	*image.RGBA
	Name string
}

// Canvas implements backend.Backend. It is not safe for concurrent use.
type Canvas struct {
	Image   *image.RGBA
	Palette color.Palette
	Face    font.Face

	clips []image.Rectangle
}

var _ backend.Backend = (*Canvas)(nil)

// New returns a w by h canvas using palette p.
func New(w, h int, p color.Palette) *Canvas {
	return &Canvas{
		Image:   image.NewRGBA(image.Rect(0, 0, w, h)),
		Palette: p,
		Face:    basicfont.Face7x13,
	}
}

func (c *Canvas) color(i uint8) color.Color {
	if int(i) >= len(c.Palette) {
		return color.Transparent
	}
	return c.Palette[i]
}

// Clip returns the current clip rectangle.
func (c *Canvas) Clip() image.Rectangle {
	if n := len(c.clips); n > 0 {
		return c.clips[n-1]
	}
	return c.Image.Rect
}

func (c *Canvas) target() *image.RGBA {
	return c.Image.SubImage(c.Clip()).(*image.RGBA)
}

// Bounds implements backend.Backend.
func (c *Canvas) Bounds() image.Rectangle {
	return c.Image.Rect
}

// SetClipRect implements backend.Backend.
func (c *Canvas) SetClipRect(x, y, w, h int) {
	c.clips = append(c.clips, image.Rect(x, y, x+w, y+h).Intersect(c.Clip()))
}

// ResetClipRect implements backend.Backend.
func (c *Canvas) ResetClipRect() {
	if n := len(c.clips); n > 0 {
		c.clips = c.clips[:n-1]
	}
}

// DrawImage scales img to w by h pixels at (x, y). Images not created by
// this canvas are ignored.
func (c *Canvas) DrawImage(img backend.Image, x, y, w, h int) {
	m, ok := img.(*Image)
	if !ok {
		return
	}
	draw.NearestNeighbor.Scale(c.target(), image.Rect(x, y, x+w, y+h), m.RGBA, m.Rect, draw.Over, nil)
}

// FillRect implements backend.Backend.
func (c *Canvas) FillRect(i uint8, x, y, w, h int) {
	draw.Draw(c.target(), image.Rect(x, y, x+w, y+h), image.NewUniform(c.color(i)), image.Point{}, draw.Src)
}

// DrawText draws text with its top left corner at (x, y).
func (c *Canvas) DrawText(i uint8, x, y int, text string) {
	s, err := charmap.CodePage437.NewDecoder().String(text)
	if err != nil {
		return
	}

	d := font.Drawer{
		Dst:  c.target(),
		Src:  image.NewUniform(c.color(i)),
		Face: c.Face,
		Dot:  fixed.P(x, y+c.Face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// DrawLine implements backend.Backend.
func (c *Canvas) DrawLine(i uint8, x, y, dx, dy int) {
	dst, col := c.target(), c.color(i)
	blit.Walk(image.Pt(x, y), image.Pt(dx, dy), func(p image.Point) {
		if p.In(dst.Rect) {
			dst.Set(p.X, p.Y, col)
		}
	})
}

// CreateImageFromIndexedPixels implements backend.Creator.
func (c *Canvas) CreateImageFromIndexedPixels(name string, w, h int, pix []byte) backend.Image {
	return &Image{
		RGBA: backend.Convert(w, h, pix, c.Palette),
		Name: name,
	}
}
