package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed levels/*.yaml levels/*.tmx
var builtin embed.FS

var (
	catalogOnce sync.Once
	catalog     []Level
	catalogErr  error
)

// Catalog returns the built-in levels, sorted by ID.
// The embedded files are parsed once; a broken built-in level is a build
// defect and is reported on every call.
func Catalog() ([]Level, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = loadEmbedded(builtin, "levels")
	})
	if catalogErr != nil {
		return nil, catalogErr
	}
	out := make([]Level, len(catalog))
	copy(out, catalog)
	return out, nil
}

// DefaultID returns the ID of the first built-in level.
func DefaultID() string {
	levels, err := Catalog()
	if err != nil || len(levels) == 0 {
		return ""
	}
	return levels[0].ID
}

// Builtin returns a built-in level by ID.
// Each call parses the level again so callers get their own map.
func Builtin(id string) (Level, error) {
	entries, err := fs.ReadDir(builtin, "levels")
	if err != nil {
		return Level{}, err
	}
	for _, e := range entries {
		name := path.Join("levels", e.Name())
		lvl, err := parseEmbedded(builtin, name)
		if err != nil {
			return Level{}, err
		}
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Resolve finds a level by reference: a path to an existing level file, the
// ID of a built-in level, or the ID of a level under dir. An empty reference
// selects the first built-in level.
func Resolve(ref, dir string) (Level, error) {
	if ref == "" {
		ref = DefaultID()
	}
	if isSupportedExtension(filepath.Ext(ref)) {
		if _, err := os.Stat(ref); err == nil {
			return LoadFile(ref)
		}
	}
	if lvl, err := Builtin(ref); err == nil {
		return lvl, nil
	}
	if dir != "" {
		return NewLoader(dir).LoadByID(ref)
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// Available lists the built-in levels followed by the levels under dir.
// Levels under dir whose ID shadows a built-in level are left out, since
// Resolve would never select them.
func Available(dir string) ([]Level, error) {
	levels, err := Catalog()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return levels, nil
	}

	extra, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(levels))
	for _, lvl := range levels {
		seen[lvl.ID] = true
	}
	for _, lvl := range extra {
		if !seen[lvl.ID] {
			levels = append(levels, lvl)
		}
	}
	return levels, nil
}

func loadEmbedded(fsys fs.FS, dir string) ([]Level, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var levels []Level
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(path.Ext(e.Name())) {
			continue
		}
		lvl, err := parseEmbedded(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	sortLevels(levels)
	return levels, nil
}

func parseEmbedded(fsys fs.FS, name string) (Level, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Level{}, err
	}
	ext := path.Ext(name)
	lvl, err := Parse(data, ext, strings.TrimSuffix(path.Base(name), ext))
	if err != nil {
		return Level{}, fmt.Errorf("built-in level %s: %w", name, err)
	}
	lvl.FilePath = "builtin:" + path.Base(name)
	return lvl, nil
}
