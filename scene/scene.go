/*
Package scene describes a picture built from tilesets, fonts and simple
shapes in YAML, for example:

	width: 320
	height: 200
	palette: TEMPERAT.PAL
	background: 12
	tilesets:
	  clear: CLEAR1.TEM
	fonts:
	  small: 8POINT.FNT
	cells:
	  - {tileset: clear, map: true, columns: 5, x: 0, y: 0}
	  - {tileset: clear, cell: 3, x: 48, y: 24, remap: {1: 176}}
	text:
	  - {font: small, x: 4, y: 180, fg: 15, string: "Hello"}

Asset paths are relative to the directory the scene is loaded from. Text is
written in UTF-8 and converted to code page 437 when the scene is loaded.
*/
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/wwgfx/font"
	"github.com/bodgit/wwgfx/palette"
	"github.com/bodgit/wwgfx/tileset"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoPalette is returned when drawing a scene that has no palette
	ErrNoPalette = errors.New("scene: no palette")
	// ErrUnknownAsset is returned when a scene refers to an undeclared asset
	ErrUnknownAsset = errors.New("scene: unknown asset")
)

// Rect is a rectangle given by its top left corner and size.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Rectangle converts r to an image.Rectangle.
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Cell draws one cell of a tileset, or every cell when Map is set.
type Cell struct {
	Tileset string `yaml:"tileset"`
	Cell    int    `yaml:"cell"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`

	// Map draws every cell, Columns to a row. Columns defaults to the map
	// width of an extended tileset, otherwise every cell is on one row.
	Map     bool `yaml:"map"`
	Columns int  `yaml:"columns"`

	// Remap overrides entries of an identity remap table
	Remap map[uint8]uint8 `yaml:"remap"`
	// Clip limits this cell further
	Clip *Rect `yaml:"clip"`

	remap []byte
}

// Fill is a filled rectangle.
type Fill struct {
	Rect  `yaml:",inline"`
	Color uint8 `yaml:"color"`
}

// Line is a straight line.
type Line struct {
	X0    int   `yaml:"x0"`
	Y0    int   `yaml:"y0"`
	X1    int   `yaml:"x1"`
	Y1    int   `yaml:"y1"`
	Color uint8 `yaml:"color"`
}

// Text is a string printed in one of the scene fonts.
type Text struct {
	Font    string       `yaml:"font"`
	X       int          `yaml:"x"`
	Y       int          `yaml:"y"`
	FG      uint8        `yaml:"fg"`
	BG      uint8        `yaml:"bg"`
	Spacing font.Spacing `yaml:"spacing"`
	// Colors are copied into the font colour table from entry 2 onwards
	Colors []uint8 `yaml:"colors"`
	String string  `yaml:"string"`

	encoded string
}

// Scene is a decoded scene with its assets loaded.
type Scene struct {
	Width      int               `yaml:"width"`
	Height     int               `yaml:"height"`
	Palette    string            `yaml:"palette"`
	Background uint8             `yaml:"background"`
	Clip       *Rect             `yaml:"clip"`
	Tilesets   map[string]string `yaml:"tilesets"`
	Fonts      map[string]string `yaml:"fonts"`
	Cells      []Cell            `yaml:"cells"`
	Fills      []Fill            `yaml:"fills"`
	Lines      []Line            `yaml:"lines"`
	Text       []Text            `yaml:"text"`

	palette  color.Palette
	tilesets map[string][]byte
	fonts    map[string]*font.Font
}

func readFile(dir, file string) ([]byte, error) {
	if !filepath.IsAbs(file) {
		file = filepath.Join(dir, file)
	}
	return os.ReadFile(file)
}

// Load decodes a scene from r, reading assets relative to dir.
func Load(r io.Reader, dir string) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	s := new(Scene)
	if err := dec.Decode(s); err != nil {
		return nil, err
	}

	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("scene: invalid size %dx%d", s.Width, s.Height)
	}

	if s.Palette != "" {
		b, err := readFile(dir, s.Palette)
		if err != nil {
			return nil, err
		}
		if s.palette, err = palette.Decode(bytes.NewReader(b)); err != nil {
			return nil, err
		}
	}

	s.tilesets = make(map[string][]byte, len(s.Tilesets))
	for name, file := range s.Tilesets {
		b, err := readFile(dir, file)
		if err != nil {
			return nil, err
		}
		if _, err := tileset.Parse(b); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		s.tilesets[name] = b
	}

	s.fonts = make(map[string]*font.Font, len(s.Fonts))
	for name, file := range s.Fonts {
		b, err := readFile(dir, file)
		if err != nil {
			return nil, err
		}
		if s.fonts[name], err = font.Parse(b); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}

	for i := range s.Cells {
		c := &s.Cells[i]
		if _, ok := s.tilesets[c.Tileset]; !ok {
			return nil, fmt.Errorf("%w: tileset %q", ErrUnknownAsset, c.Tileset)
		}
		if c.Remap != nil {
			c.remap = make([]byte, 256)
			for j := range c.remap {
				c.remap[j] = byte(j)
			}
			for from, to := range c.Remap {
				c.remap[from] = to
			}
		}
	}

	enc := charmap.CodePage437.NewEncoder()
	for i := range s.Text {
		t := &s.Text[i]
		if _, ok := s.fonts[t.Font]; !ok {
			return nil, fmt.Errorf("%w: font %q", ErrUnknownAsset, t.Font)
		}
		var err error
		if t.encoded, err = enc.String(t.String); err != nil {
			return nil, fmt.Errorf("scene: text %q: %w", t.String, err)
		}
	}

	return s, nil
}

// LoadFile loads the scene in file.
func LoadFile(file string) (*Scene, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f, filepath.Dir(file))
}

// ColorPalette returns the scene palette, or nil if it has none.
func (s *Scene) ColorPalette() color.Palette {
	return s.palette
}

// SetColorPalette replaces the scene palette.
func (s *Scene) SetColorPalette(p color.Palette) {
	s.palette = p
}

// Bounds returns the area covered by the scene.
func (s *Scene) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}
