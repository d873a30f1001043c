/*
Package catalog keeps a sqlite database of tileset, font and palette assets
found on disk.

Assets are keyed by the SHA-1 of their contents so the same asset found at
several paths is only stored once.
*/
package catalog

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/bodgit/wwgfx/font"
	"github.com/bodgit/wwgfx/palette"
	"github.com/bodgit/wwgfx/tileset"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

// Kind is the type of an asset.
type Kind string

// Supported asset kinds.
const (
	Tileset Kind = "tileset"
	Font    Kind = "font"
	Palette Kind = "palette"
)

var (
	// ErrUnknownKind is returned for files that are not a supported asset
	ErrUnknownKind = errors.New("catalog: unknown asset kind")
	// ErrInvalid is returned for files that fail to parse as their kind
	ErrInvalid = errors.New("catalog: invalid asset")
)

var kinds = map[string]Kind{
	".tem": Tileset,
	".des": Tileset,
	".sno": Tileset,
	".win": Tileset,
	".int": Tileset,
	".icn": Tileset,
	".fnt": Font,
	".pal": Palette,
}

// KindOf returns the asset kind for the extension of name.
func KindOf(name string) (Kind, bool) {
	k, ok := kinds[strings.ToLower(filepath.Ext(name))]
	return k, ok
}

// Asset describes a catalogued asset. Width and Height are the icon size for
// tilesets and the maximum glyph size for fonts. Count is the number of
// icons, glyphs or colours.
type Asset struct {
	SHA1    string
	Kind    Kind
	Variant string
	Width   int
	Height  int
	Count   int
	Path    string
}

// Identify validates b as the asset kind implied by name.
func Identify(name string, b []byte) (Asset, error) {
	k, ok := KindOf(name)
	if !ok {
		return Asset{}, fmt.Errorf("%w: %s", ErrUnknownKind, filepath.Ext(name))
	}

	a := Asset{
		SHA1: fmt.Sprintf("%X", sha1.Sum(b)),
		Kind: k,
		Path: name,
	}

	switch k {
	case Tileset:
		t, err := tileset.Parse(b)
		if err != nil {
			return Asset{}, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		a.Variant = t.Variant.String()
		a.Width, a.Height, a.Count = t.Width, t.Height, t.Count
	case Font:
		f, err := font.Parse(b)
		if err != nil {
			return Asset{}, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		a.Width, a.Height, a.Count = f.MaxWidth, f.MaxHeight, f.Count
	case Palette:
		p, err := palette.Decode(bytes.NewReader(b))
		if err != nil {
			return Asset{}, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		a.Count = len(p)
	}

	return a, nil
}

// Catalog is safe for concurrent use.
type Catalog struct {
	db     *sql.DB
	logger *log.Logger
}

// Open opens or creates the catalog in file.
func Open(file string, logger *log.Logger) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, kind TEXT NOT NULL, variant TEXT, width INTEGER NOT NULL, height INTEGER NOT NULL, count INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS file (asset_id INTEGER NOT NULL, path TEXT NOT NULL UNIQUE, FOREIGN KEY(asset_id) REFERENCES asset(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add identifies b and records it as found at path.
func (c *Catalog) Add(path string, b []byte) (Asset, error) {
	a, err := Identify(path, b)
	if err != nil {
		return Asset{}, err
	}

	id, err := c.addAsset(a, b)
	if err != nil {
		return Asset{}, err
	}

	if err := c.addFile(id, path); err != nil {
		return Asset{}, err
	}

	return a, nil
}

func (c *Catalog) addAsset(a Asset, b []byte) (int64, error) {
	var variant sql.NullString
	if a.Variant != "" {
		variant.String = a.Variant
		variant.Valid = true
	}

	var id int64
	switch err := c.db.QueryRow("SELECT id FROM asset WHERE sha1 = ?", a.SHA1).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := c.db.Exec("INSERT OR IGNORE INTO asset (sha1, kind, variant, width, height, count, data) VALUES (?, ?, ?, ?, ?, ?, ?)", a.SHA1, string(a.Kind), variant, a.Width, a.Height, a.Count, b)
		if err != nil {
			return 0, err
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			// Another worker inserted the same asset first
			return c.addAsset(a, b)
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

func (c *Catalog) addFile(asset int64, path string) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO file (asset_id, path) VALUES (?, ?)", asset, path); err != nil {
		return err
	}
	return nil
}

const selectAsset = "SELECT a.sha1, a.kind, a.variant, a.width, a.height, a.count, f.path FROM asset AS a JOIN file AS f ON f.asset_id = a.id"

func scanAsset(row interface{ Scan(...interface{}) error }, data *[]byte) (Asset, error) {
	var (
		a       Asset
		kind    string
		variant sql.NullString
	)

	dest := []interface{}{&a.SHA1, &kind, &variant, &a.Width, &a.Height, &a.Count, &a.Path}
	if data != nil {
		dest = append(dest, data)
	}
	if err := row.Scan(dest...); err != nil {
		return Asset{}, err
	}

	a.Kind = Kind(kind)
	a.Variant = variant.String

	return a, nil
}

// Lookup returns the asset whose SHA-1 or path is key, along with its
// contents. It returns false if there is no such asset.
func (c *Catalog) Lookup(key string) (Asset, []byte, bool, error) {
	var b []byte
	row := c.db.QueryRow(strings.Replace(selectAsset, " FROM", ", a.data FROM", 1)+" WHERE a.sha1 = ? OR f.path = ? ORDER BY f.path LIMIT 1", strings.ToUpper(key), key)
	switch a, err := scanAsset(row, &b); err {
	case sql.ErrNoRows:
		return Asset{}, nil, false, nil
	case nil:
		return a, b, true, nil
	default:
		return Asset{}, nil, false, err
	}
}

// List returns every catalogued file of kind, or of every kind if kind is
// empty, sorted by path.
func (c *Catalog) List(kind Kind) ([]Asset, error) {
	rows, err := c.db.Query(selectAsset+" WHERE ? = '' OR a.kind = ? ORDER BY f.path", string(kind), string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		a, err := scanAsset(rows, nil)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}

	return assets, rows.Err()
}
