/*
Package blit implements the clipping and pixel copy routines used to draw
8-bit icons and 4-bit glyphs onto a palette indexed surface.

Sources are plain byte slices holding one palette index per pixel in row
major order. Destinations are *image.Paletted surfaces; only the index
plane is touched, the surface palette is left to the caller.
*/
package blit

import "image"

// Geometry describes the visible part of a source block once it has been
// placed on a surface and clipped.
type Geometry struct {
	// Src is the offset of the first visible pixel inside the source block
	Src image.Point
	// Dst is the visible destination rectangle
	Dst image.Rectangle
}

// Clip places a block covering r and intersects it with clip. The source
// offset moves with the left and top edges so that every destination pixel
// still reads the source pixel it would have read unclipped. It returns false
// if nothing is visible.
func Clip(r, clip image.Rectangle) (Geometry, bool) {
	dst := r.Intersect(clip)
	if dst.Empty() {
		return Geometry{}, false
	}
	return Geometry{
		Src: dst.Min.Sub(r.Min),
		Dst: dst,
	}, true
}

// Size returns the width and height of the visible area.
func (g Geometry) Size() (int, int) {
	return g.Dst.Dx(), g.Dst.Dy()
}

func rows(dst *image.Paletted, g Geometry, src []byte, stride int, fn func(d, s []byte)) {
	w, h := g.Size()
	for y := 0; y < h; y++ {
		s := (g.Src.Y+y)*stride + g.Src.X
		d := dst.PixOffset(g.Dst.Min.X, g.Dst.Min.Y+y)
		fn(dst.Pix[d:d+w], src[s:s+w])
	}
}

// Copy writes every visible source pixel, including zero.
func Copy(dst *image.Paletted, g Geometry, src []byte, stride int) {
	rows(dst, g, src, stride, func(d, s []byte) {
		copy(d, s)
	})
}

// Transparent writes every visible source pixel except zero.
func Transparent(dst *image.Paletted, g Geometry, src []byte, stride int) {
	rows(dst, g, src, stride, func(d, s []byte) {
		for i, c := range s {
			if c != 0 {
				d[i] = c
			}
		}
	})
}

// Remap translates every visible source pixel through remap and writes the
// result unless it is zero. Pixels with no entry in remap are skipped.
func Remap(dst *image.Paletted, g Geometry, src []byte, stride int, remap []byte) {
	rows(dst, g, src, stride, func(d, s []byte) {
		for i, c := range s {
			if int(c) >= len(remap) {
				continue
			}
			if r := remap[c]; r != 0 {
				d[i] = r
			}
		}
	})
}

// Fill sets every pixel of r that lies on dst to c.
func Fill(dst *image.Paletted, r image.Rectangle, c uint8) {
	r = r.Intersect(dst.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		d := dst.PixOffset(r.Min.X, y)
		row := dst.Pix[d : d+r.Dx()]
		for i := range row {
			row[i] = c
		}
	}
}
