package catalog_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bodgit/wwgfx/catalog"
	"github.com/bodgit/wwgfx/font"
	"github.com/bodgit/wwgfx/tileset"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTileset(t *testing.T, variant tileset.Variant) []byte {
	t.Helper()

	m := image.NewPaletted(image.Rect(0, 0, tileset.IconWidth, tileset.IconHeight), color.Palette{color.Black, color.White})
	b := new(bytes.Buffer)
	require.NoError(t, tileset.Encode(b, []*image.Paletted{m, m, m}, &tileset.Options{Variant: variant}))
	return b.Bytes()
}

func testFont(t *testing.T) []byte {
	t.Helper()

	glyphs := make([]font.Glyph, 32)
	glyphs[1] = font.Glyph{Width: 2, Rows: [][]byte{{1, 1}, {1, 0}, {0, 1}}}
	b := new(bytes.Buffer)
	require.NoError(t, font.Encode(b, glyphs, 3))
	return b.Bytes()
}

func open(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.Open(filepath.Join(t.TempDir(), "test.db"), log.New(io.Discard, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestKindOf(t *testing.T) {
	tests := map[string]struct {
		kind catalog.Kind
		ok   bool
	}{
		"CLEAR1.TEM":   {catalog.Tileset, true},
		"clear1.sno":   {catalog.Tileset, true},
		"8POINT.FNT":   {catalog.Font, true},
		"TEMPERAT.PAL": {catalog.Palette, true},
		"CONQUER.MIX":  {"", false},
		"README":       {"", false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			kind, ok := catalog.KindOf(name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestIdentify(t *testing.T) {
	a, err := catalog.Identify("CLEAR1.TEM", testTileset(t, tileset.Extended))
	require.NoError(t, err)
	assert.Equal(t, catalog.Tileset, a.Kind)
	assert.Equal(t, "Extended", a.Variant)
	assert.Equal(t, 24, a.Width)
	assert.Equal(t, 3, a.Count)
	assert.Len(t, a.SHA1, 40)

	a, err = catalog.Identify("8POINT.FNT", testFont(t))
	require.NoError(t, err)
	assert.Equal(t, catalog.Font, a.Kind)
	assert.Equal(t, 2, a.Width)
	assert.Equal(t, 3, a.Height)
	assert.Equal(t, 32, a.Count)

	a, err = catalog.Identify("TEMPERAT.PAL", make([]byte, 768))
	require.NoError(t, err)
	assert.Equal(t, 256, a.Count)

	_, err = catalog.Identify("TEMPERAT.PAL", make([]byte, 700))
	assert.True(t, errors.Is(err, catalog.ErrInvalid))

	_, err = catalog.Identify("CLEAR1.TEM", make([]byte, 8))
	assert.True(t, errors.Is(err, catalog.ErrInvalid))
	assert.True(t, errors.Is(err, tileset.ErrMalformed))

	_, err = catalog.Identify("CONQUER.MIX", nil)
	assert.True(t, errors.Is(err, catalog.ErrUnknownKind))
}

func TestAddAndLookup(t *testing.T) {
	c := open(t)

	b := testTileset(t, tileset.Legacy)
	first, err := c.Add("a/CLEAR1.TEM", b)
	require.NoError(t, err)
	_, err = c.Add("b/CLEAR1.TEM", b)
	require.NoError(t, err)

	a, data, ok, err := c.Lookup(first.SHA1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, b, data)
	assert.Equal(t, "a/CLEAR1.TEM", a.Path)
	assert.Equal(t, "Legacy", a.Variant)

	a, _, ok, err = c.Lookup("b/CLEAR1.TEM")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.SHA1, a.SHA1)

	_, _, ok, err = c.Lookup("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	assets, err := c.List("")
	require.NoError(t, err)
	assert.Len(t, assets, 2)
}

func write(t *testing.T, file string, b []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	require.NoError(t, os.WriteFile(file, b, 0o644))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	tem := testTileset(t, tileset.Legacy)

	write(t, filepath.Join(dir, "CLEAR1.TEM"), tem)
	write(t, filepath.Join(dir, "desert", "CLEAR1.DES"), testTileset(t, tileset.Extended))
	write(t, filepath.Join(dir, "desert", "COPY.TEM"), tem)
	write(t, filepath.Join(dir, "fonts", "8POINT.FNT"), testFont(t))
	write(t, filepath.Join(dir, "TEMPERAT.PAL"), make([]byte, 768))
	write(t, filepath.Join(dir, "BROKEN.TEM"), []byte("not a tileset"))
	write(t, filepath.Join(dir, "README.TXT"), []byte("ignored"))
	write(t, filepath.Join(dir, ".hidden", "HIDDEN.TEM"), tem)

	c := open(t)

	var (
		mu   sync.Mutex
		seen []string
	)
	require.NoError(t, c.Scan(context.Background(), dir, 3, func(file string) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, filepath.Base(file))
	}))

	sort.Strings(seen)
	assert.Equal(t, []string{"8POINT.FNT", "BROKEN.TEM", "CLEAR1.DES", "CLEAR1.TEM", "COPY.TEM", "TEMPERAT.PAL"}, seen)

	tilesets, err := c.List(catalog.Tileset)
	require.NoError(t, err)

	want := []catalog.Asset{
		{Kind: catalog.Tileset, Variant: "Legacy", Width: 24, Height: 24, Count: 3, Path: filepath.Join(dir, "CLEAR1.TEM")},
		{Kind: catalog.Tileset, Variant: "Extended", Width: 24, Height: 24, Count: 3, Path: filepath.Join(dir, "desert", "CLEAR1.DES")},
		{Kind: catalog.Tileset, Variant: "Legacy", Width: 24, Height: 24, Count: 3, Path: filepath.Join(dir, "desert", "COPY.TEM")},
	}
	if diff := cmp.Diff(want, tilesets, cmpopts.IgnoreFields(catalog.Asset{}, "SHA1")); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, tilesets[0].SHA1, tilesets[2].SHA1)

	all, err := c.List("")
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestScanCancelled(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"A.TEM", "B.TEM", "C.TEM"} {
		write(t, filepath.Join(dir, name), testTileset(t, tileset.Legacy))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := open(t).Scan(ctx, dir, 1, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestScanWaitsForWorkers(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 8; i++ {
		write(t, filepath.Join(dir, string(rune('A'+i))+".TEM"), testTileset(t, tileset.Legacy))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var busy int32
	err := open(t).Scan(ctx, dir, 4, func(string) {
		atomic.AddInt32(&busy, 1)
		defer atomic.AddInt32(&busy, -1)

		// Fail the scan while the other workers are still busy
		cancel()
		time.Sleep(20 * time.Millisecond)
	})

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, atomic.LoadInt32(&busy))
}
