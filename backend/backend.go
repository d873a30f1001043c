/*
Package backend defines the presentation backend that icons and text are
handed to when they are not blitted onto an indexed surface directly.

Colours are always palette indices; a backend owns the palette that turns
them into real colours. Images created from indexed pixels take a snapshot
of that palette, later palette changes do not affect them.
*/
package backend

import (
	"image"
	"image/color"
)

// Image is a handle to an image owned by a backend.
type Image interface {
	Bounds() image.Rectangle
}

// Creator converts indexed pixels into backend images.
type Creator interface {
	// CreateImageFromIndexedPixels converts w by h palette indices into an
	// image using the current palette. name identifies the image for
	// debugging only.
	CreateImageFromIndexedPixels(name string, w, h int, pix []byte) Image
}

// Backend is an immediate mode drawing target.
type Backend interface {
	Creator

	// Bounds returns the drawable area
	Bounds() image.Rectangle

	// SetClipRect pushes a clip rectangle, intersected with any current one
	SetClipRect(x, y, w, h int)
	// ResetClipRect pops the most recent clip rectangle
	ResetClipRect()

	DrawImage(img Image, x, y, w, h int)
	FillRect(color uint8, x, y, w, h int)
	DrawText(color uint8, x, y int, text string)
	// DrawLine draws a line from (x, y) to (dx, dy)
	DrawLine(color uint8, x, y, dx, dy int)
}

// Convert expands w by h palette indices into an RGBA image using p. Indices
// with no palette entry become transparent.
func Convert(w, h int, pix []byte, p color.Palette) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if i >= len(pix) || int(pix[i]) >= len(p) {
				continue
			}
			m.Set(x, y, p[pix[i]])
		}
	}
	return m
}
