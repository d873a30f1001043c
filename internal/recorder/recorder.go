// Package recorder provides a backend that records every call made to it.
package recorder

import (
	"image"

	"github.com/bodgit/wwgfx/backend"
)

// Image is the handle returned by CreateImageFromIndexedPixels.
type Image struct {
	Name string
	W, H int
	Pix  []byte
}

// Bounds implements backend.Image.
func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.W, i.H)
}

// Call is a single recorded backend call.
type Call struct {
	Op    string
	Color uint8
	Rect  image.Rectangle
	From  image.Point
	To    image.Point
	Text  string
	Image *Image
}

// Backend records calls. It performs no drawing.
type Backend struct {
	Viewport image.Rectangle
	Calls    []Call
	Created  []*Image

	clips []image.Rectangle
}

var _ backend.Backend = (*Backend)(nil)

// New returns a recorder with a w by h viewport.
func New(w, h int) *Backend {
	return &Backend{
		Viewport: image.Rect(0, 0, w, h),
	}
}

// Ops returns the names of the recorded calls in order.
func (b *Backend) Ops() []string {
	ops := make([]string, 0, len(b.Calls))
	for _, c := range b.Calls {
		ops = append(ops, c.Op)
	}
	return ops
}

// Clear forgets the recorded calls but not the created images.
func (b *Backend) Clear() {
	b.Calls = nil
}

// Depth returns the number of clip rectangles currently pushed.
func (b *Backend) Depth() int {
	return len(b.clips)
}

func (b *Backend) Bounds() image.Rectangle {
	return b.Viewport
}

func (b *Backend) SetClipRect(x, y, w, h int) {
	r := image.Rect(x, y, x+w, y+h)
	b.clips = append(b.clips, r)
	b.Calls = append(b.Calls, Call{Op: "SetClipRect", Rect: r})
}

func (b *Backend) ResetClipRect() {
	if len(b.clips) > 0 {
		b.clips = b.clips[:len(b.clips)-1]
	}
	b.Calls = append(b.Calls, Call{Op: "ResetClipRect"})
}

func (b *Backend) DrawImage(img backend.Image, x, y, w, h int) {
	m, _ := img.(*Image)
	b.Calls = append(b.Calls, Call{Op: "DrawImage", Rect: image.Rect(x, y, x+w, y+h), Image: m})
}

func (b *Backend) FillRect(color uint8, x, y, w, h int) {
	b.Calls = append(b.Calls, Call{Op: "FillRect", Color: color, Rect: image.Rect(x, y, x+w, y+h)})
}

func (b *Backend) DrawText(color uint8, x, y int, text string) {
	b.Calls = append(b.Calls, Call{Op: "DrawText", Color: color, From: image.Pt(x, y), Text: text})
}

func (b *Backend) DrawLine(color uint8, x, y, dx, dy int) {
	b.Calls = append(b.Calls, Call{Op: "DrawLine", Color: color, From: image.Pt(x, y), To: image.Pt(dx, dy)})
}

func (b *Backend) CreateImageFromIndexedPixels(name string, w, h int, pix []byte) backend.Image {
	m := &Image{
		Name: name,
		W:    w,
		H:    h,
		Pix:  append([]byte(nil), pix...),
	}
	b.Created = append(b.Created, m)
	b.Calls = append(b.Calls, Call{Op: "CreateImageFromIndexedPixels", Image: m})
	return m
}
