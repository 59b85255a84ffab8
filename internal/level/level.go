// Package level loads and validates platformer levels from TMX and YAML files,
// and provides the built-in level catalog.
package level

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tilejump/internal/level/formats"
	"github.com/vovakirdan/tilejump/internal/tilemap"
)

var (
	// ErrNoPlayerStart is returned when a level has no cell tagged "player".
	ErrNoPlayerStart = errors.New("level: no player start")
	// ErrManyPlayerStarts is returned when more than one cell is tagged "player".
	ErrManyPlayerStarts = errors.New("level: more than one player start")
	// ErrBadSize is returned for empty maps or non-positive tile sizes.
	ErrBadSize = errors.New("level: invalid map size")
	// ErrNotFound is returned by lookups for an unknown level ID.
	ErrNotFound = errors.New("level: not found")
)

// Level is a complete, validated level definition.
type Level struct {
	ID       string
	Name     string
	Map      *tilemap.Map
	Metadata map[string]string
	FilePath string
}

// Title returns the display name, falling back to the ID.
func (l *Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Validate checks the invariants the game relies on.
func (l *Level) Validate() error {
	if l.Map == nil || l.Map.Cols <= 0 || l.Map.Rows <= 0 || l.Map.TileW <= 0 || l.Map.TileH <= 0 {
		return ErrBadSize
	}
	switch n := len(l.Map.Triggers.Find(tilemap.PropPlayer)); {
	case n == 0:
		return ErrNoPlayerStart
	case n > 1:
		return fmt.Errorf("%w (%d found)", ErrManyPlayerStarts, n)
	}
	return nil
}

// PlayerStart returns the top-left corner of the player start cell.
func (l *Level) PlayerStart() (float64, float64) {
	cells := l.Map.Triggers.Find(tilemap.PropPlayer)
	if len(cells) == 0 {
		return 0, 0
	}
	return cells[0].Left, cells[0].Top
}

// EnemyCount returns the number of enemy spawn cells.
func (l *Level) EnemyCount() int {
	return len(l.Map.Triggers.Find(tilemap.PropEnemy))
}

// Parse parses level data in the format implied by ext and validates it.
// idHint names the level when the file does not.
func Parse(data []byte, ext, idHint string) (Level, error) {
	parsed, err := formats.Parse(data, ext)
	if err != nil {
		return Level{}, err
	}

	lvl := Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Map:      parsed.Map,
		Metadata: parsed.Metadata,
	}
	if lvl.ID == "" {
		lvl.ID = idHint
	}
	if err := lvl.Validate(); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadFile loads a single level file. The file name (without extension) is
// used as the ID when the file does not declare one.
func LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := filepath.Ext(path)
	lvl, err := Parse(data, ext, strings.TrimSuffix(filepath.Base(path), ext))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	lvl.FilePath = path
	return lvl, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	return LoadFile(path)
}

// LoadAll recursively scans and loads all level files under Root.
// Invalid files are skipped. Levels are sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		lvl, err := LoadFile(path)
		if err != nil {
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortLevels(levels)
	return levels, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	return findByID(levels, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func findByID(levels []Level, id string) (Level, error) {
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func sortLevels(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}

func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
