/*
Package ebiten is a backend that draws onto an *ebiten.Image, typically the
screen passed to ebiten.Game.Draw.

Converted icons are ordinary *ebiten.Image values, so they outlive the
frame they were created in and can be cached between frames.
*/
package ebiten

import (
	"image"
	"image/color"

	"github.com/bodgit/wwgfx/backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/text/encoding/charmap"
)

// Screen implements backend.Backend. Target may be swapped between frames.
type Screen struct {
	Target  *ebiten.Image
	Palette color.Palette
	Face    font.Face

	clips []image.Rectangle
}

var _ backend.Backend = (*Screen)(nil)

// NewScreen returns a Screen drawing onto target with palette p.
func NewScreen(target *ebiten.Image, p color.Palette) *Screen {
	return &Screen{
		Target:  target,
		Palette: p,
		Face:    basicfont.Face7x13,
	}
}

func (s *Screen) color(i uint8) color.Color {
	if int(i) >= len(s.Palette) {
		return color.Transparent
	}
	return s.Palette[i]
}

func (s *Screen) clip() image.Rectangle {
	if n := len(s.clips); n > 0 {
		return s.clips[n-1]
	}
	return s.Target.Bounds()
}

func (s *Screen) target() *ebiten.Image {
	return s.Target.SubImage(s.clip()).(*ebiten.Image)
}

func (s *Screen) Bounds() image.Rectangle {
	return s.Target.Bounds()
}

func (s *Screen) SetClipRect(x, y, w, h int) {
	s.clips = append(s.clips, image.Rect(x, y, x+w, y+h).Intersect(s.clip()))
}

func (s *Screen) ResetClipRect() {
	if n := len(s.clips); n > 0 {
		s.clips = s.clips[:n-1]
	}
}

func (s *Screen) DrawImage(img backend.Image, x, y, w, h int) {
	m, ok := img.(*ebiten.Image)
	if !ok {
		return
	}

	b := m.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	s.target().DrawImage(m, op)
}

func (s *Screen) FillRect(i uint8, x, y, w, h int) {
	vector.DrawFilledRect(s.target(), float32(x), float32(y), float32(w), float32(h), s.color(i), false)
}

// DrawText draws text with its top left corner at (x, y).
func (s *Screen) DrawText(i uint8, x, y int, str string) {
	decoded, err := charmap.CodePage437.NewDecoder().String(str)
	if err != nil {
		return
	}
	text.Draw(s.target(), decoded, s.Face, x, y+s.Face.Metrics().Ascent.Ceil(), s.color(i))
}

func (s *Screen) DrawLine(i uint8, x, y, dx, dy int) {
	vector.StrokeLine(s.target(), float32(x), float32(y), float32(dx), float32(dy), 1, s.color(i), false)
}

func (s *Screen) CreateImageFromIndexedPixels(_ string, w, h int, pix []byte) backend.Image {
	rgba := backend.Convert(w, h, pix, s.Palette)
	m := ebiten.NewImage(w, h)
	m.WritePixels(rgba.Pix)
	return m
}

// Game calls Render against a Screen every frame.
type Game struct {
	Width  int
	Height int

	// Screen is retargeted at the frame being drawn before Render is called
	Screen *Screen
	Render func(*Screen)
}

var _ ebiten.Game = (*Game)(nil)

// NewGame returns a w by h Game that draws with palette p.
func NewGame(w, h int, p color.Palette, render func(*Screen)) *Game {
	return &Game{
		Width:  w,
		Height: h,
		Screen: NewScreen(nil, p),
		Render: render,
	}
}

func (g *Game) Update() error {
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Screen.Target = screen
	g.Screen.clips = g.Screen.clips[:0]
	g.Render(g.Screen)
}

func (g *Game) Layout(int, int) (int, int) {
	return g.Width, g.Height
}

// Run opens a window titled title and draws g until it is closed.
func Run(title string, scale int, g *Game) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.Width*scale, g.Height*scale)
	return ebiten.RunGame(g)
}
