/*
Package wwgfx draws Westwood terrain tilesets and bitmap fonts, either
directly onto a palette indexed surface or through a presentation backend
that works with whole images.

A Renderer holds all of the state the drawing routines share: the font
colour translation table, the current font and spacing, the most recently
parsed tileset and the cache of icons already converted for the backend. A
Renderer is not safe for concurrent use.
*/
package wwgfx

import (
	"image"
	"io"
	"log"

	"github.com/bodgit/wwgfx/backend"
	"github.com/bodgit/wwgfx/font"
	"github.com/bodgit/wwgfx/iconcache"
	"github.com/bodgit/wwgfx/palette"
	"github.com/bodgit/wwgfx/tileset"
)

// Renderer is a drawing context.
type Renderer struct {
	surface *image.Paletted
	backend backend.Backend
	logger  *log.Logger

	xlat    *palette.Xlat
	font    *font.Font
	spacing font.Spacing

	// Most recently parsed buffer and its tileset
	lastBuffer  []byte
	lastTileset *tileset.Tileset

	// Tileset the icon cache was last used with
	active *tileset.Tileset
	cache  *iconcache.Cache
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSurface draws directly onto s. A surface takes priority over a
// backend for icons and text.
func WithSurface(s *image.Paletted) Option {
	return func(r *Renderer) {
		r.surface = s
	}
}

// WithBackend draws through b, converting icons to images as they are first
// used.
func WithBackend(b backend.Backend) Option {
	return func(r *Renderer) {
		r.backend = b
	}
}

// WithLogger logs skipped draws and icon conversions to l.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		r.logger = l
	}
}

// New returns a Renderer configured with opts.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		logger: log.New(io.Discard, "", 0),
		xlat:   palette.NewXlat(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.backend != nil {
		r.cache = iconcache.New(r.backend)
	}

	return r
}

// Viewport returns the drawable area of the surface, or the backend if
// there is no surface. A surface viewport always starts at (0, 0), even when
// the surface is a sub-image; every drawing call is relative to it.
func (r *Renderer) Viewport() image.Rectangle {
	switch {
	case r.surface != nil:
		return image.Rect(0, 0, r.surface.Rect.Dx(), r.surface.Rect.Dy())
	case r.backend != nil:
		return r.backend.Bounds()
	default:
		return image.Rectangle{}
	}
}

// SetPaletteRange copies colors into the font colour translation table from
// first to last inclusive, both wrapping modulo 16.
func (r *Renderer) SetPaletteRange(colors []byte, first, last int) {
	r.xlat.SetRange(colors, first, last)
}

// Xlat returns the font colour translation table.
func (r *Renderer) Xlat() *palette.Xlat {
	return r.xlat
}
