package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/wwgfx"
	ebitenbackend "github.com/bodgit/wwgfx/backend/ebiten"
	"github.com/bodgit/wwgfx/blit"
	"github.com/bodgit/wwgfx/catalog"
	"github.com/bodgit/wwgfx/font"
	"github.com/bodgit/wwgfx/palette"
	"github.com/bodgit/wwgfx/scene"
	"github.com/bodgit/wwgfx/tileset"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
	"golang.org/x/image/font/basicfont"
)

var errNoPalette = errors.New("no palette, use --palette or WWGFX_PALETTE")

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func needArgs(c *cli.Context, n int) {
	if c.NArg() < n {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
}

func loadPalette(c *cli.Context) (color.Palette, error) {
	file := c.String("palette")
	if file == "" {
		return nil, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return palette.Decode(f)
}

func writePNG(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := png.Encode(f, m); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func describe(file string) error {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}

	a, err := catalog.Identify(file, b)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s, SHA-1 %s\n", file, a.Kind, a.SHA1)

	switch a.Kind {
	case catalog.Tileset:
		t, err := tileset.Parse(b)
		if err != nil {
			return err
		}
		fmt.Printf("  layout     %s\n", t.Variant)
		fmt.Printf("  icon size  %dx%d\n", t.Width, t.Height)
		fmt.Printf("  icons      %d (%d allocated)\n", t.Count, t.Allocated)
		if t.Variant == tileset.Extended {
			fmt.Printf("  map size   %dx%d\n", t.MapWidth, t.MapHeight)
		}
		fmt.Printf("  file size  %d\n", t.Size)
		fmt.Printf("  has map    %t\n", t.HasMap())
		transparent := 0
		for i := 0; i < t.Count; i++ {
			if t.Transparent(i) {
				transparent++
			}
		}
		fmt.Printf("  see-through icons %d\n", transparent)
	case catalog.Font:
		f, err := font.Parse(b)
		if err != nil {
			return err
		}
		fmt.Printf("  glyphs     %d\n", f.Count)
		fmt.Printf("  max size   %dx%d\n", f.MaxWidth, f.MaxHeight)
		fmt.Printf("  version    %d\n", f.Version)
	case catalog.Palette:
		fmt.Printf("  colours    %d\n", a.Count)
	}

	return nil
}

func info(c *cli.Context) error {
	needArgs(c, 1)

	for _, file := range c.Args().Slice() {
		if err := describe(file); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	return nil
}

func loadScene(c *cli.Context) (*scene.Scene, error) {
	s, err := scene.LoadFile(c.Args().First())
	if err != nil {
		return nil, err
	}

	if s.ColorPalette() == nil {
		p, err := loadPalette(c)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, errNoPalette
		}
		s.SetColorPalette(p)
	}

	return s, nil
}

func render(c *cli.Context) error {
	needArgs(c, 2)

	s, err := loadScene(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var m image.Image
	if c.Bool("rgba") {
		m, err = scene.RenderRGBA(s, wwgfx.WithLogger(newLogger(c)))
	} else {
		m, err = scene.Render(s, wwgfx.WithLogger(newLogger(c)))
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := writePNG(c.Args().Get(1), m); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func view(c *cli.Context) error {
	needArgs(c, 1)

	s, err := loadScene(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	logger := newLogger(c)

	g := ebitenbackend.NewGame(s.Width, s.Height, s.ColorPalette(), nil)
	r := wwgfx.New(wwgfx.WithBackend(g.Screen), wwgfx.WithLogger(logger))
	g.Render = func(*ebitenbackend.Screen) {
		if err := s.Draw(r); err != nil {
			logger.Println(err)
		}
	}

	if err := ebitenbackend.Run(filepath.Base(c.Args().First()), c.Int("scale"), g); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func importSheet(c *cli.Context) error {
	needArgs(c, 2)

	f, err := os.Open(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	m, err := png.Decode(f)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	p, err := loadPalette(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if p == nil {
		p = palette.FromImage(m, palette.NumColors)
	}

	opts := &tileset.Options{
		MapWidth:  c.Int("map-width"),
		MapHeight: c.Int("map-height"),
	}
	if c.Bool("extended") {
		opts.Variant = tileset.Extended
	}
	for _, icon := range c.IntSlice("map") {
		if icon < 0 || icon > 0xff {
			return cli.NewExitError(fmt.Errorf("map entry %d out of range", icon), 1)
		}
		opts.Map = append(opts.Map, byte(icon))
	}

	b := new(bytes.Buffer)
	if err := tileset.EncodeImage(b, m, p, opts); err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := ioutil.WriteFile(c.Args().Get(1), b.Bytes(), 0o644); err != nil {
		return cli.NewExitError(err, 1)
	}

	if file := c.String("write-palette"); file != "" {
		b.Reset()
		if err := palette.Encode(b, p); err != nil {
			return cli.NewExitError(err, 1)
		}
		if err := ioutil.WriteFile(file, b.Bytes(), 0o644); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	return nil
}

// Lay every icon out on a sheet, columns to a row
func iconSheet(t *tileset.Tileset, p color.Palette, columns int) *image.Paletted {
	if columns <= 0 {
		columns = 1
	}
	rows := (t.Count + columns - 1) / columns
	if t.Count < columns {
		columns = t.Count
	}

	m := image.NewPaletted(image.Rect(0, 0, columns*t.Width, rows*t.Height), p)
	for i := 0; i < t.Count; i++ {
		pix := t.Icon(i)
		if pix == nil {
			continue
		}
		x, y := i%columns*t.Width, i/columns*t.Height
		if g, ok := blit.Clip(image.Rect(x, y, x+t.Width, y+t.Height), m.Rect); ok {
			blit.Copy(m, g, pix, t.Width)
		}
	}

	return m
}

func export(c *cli.Context) error {
	needArgs(c, 2)

	b, err := ioutil.ReadFile(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	t, err := tileset.Parse(b)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	p, err := loadPalette(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if p == nil {
		return cli.NewExitError(errNoPalette, 1)
	}

	if err := writePNG(c.Args().Get(1), iconSheet(t, p, c.Int("columns"))); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func mkfont(c *cli.Context) error {
	needArgs(c, 1)

	glyphs, height := font.FromFace(basicfont.Face7x13)

	b := new(bytes.Buffer)
	if err := font.Encode(b, glyphs, height); err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := ioutil.WriteFile(c.Args().First(), b.Bytes(), 0o644); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func scan(c *cli.Context) error {
	needArgs(c, 1)

	db, err := catalog.Open(c.String("db"), newLogger(c))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	err = db.Scan(context.Background(), c.Args().First(), c.Int("workers"), func(string) {
		bar.Add(1)
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func list(c *cli.Context) error {
	db, err := catalog.Open(c.String("db"), newLogger(c))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	assets, err := db.List(catalog.Kind(c.Args().First()))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for _, a := range assets {
		variant := a.Variant
		if variant == "" {
			variant = "-"
		}
		fmt.Printf("%s %-7s %-8s %2dx%-2d %4d %s\n", a.SHA1, a.Kind, variant, a.Width, a.Height, a.Count, a.Path)
	}

	return nil
}
