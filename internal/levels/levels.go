// Package levels provides level loading from directories and the embedded
// default campaign.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-glorp/internal/grid"
	"github.com/vovakirdan/tui-glorp/internal/levels/formats"
	"github.com/vovakirdan/tui-glorp/internal/tilemap"
)

// ErrLevelNotFound is returned when no level has the requested ID.
var ErrLevelNotFound = errors.New("levels: level not found")

// Platform is a moving platform definition.
type Platform = formats.Platform

// Level represents a complete level definition.
type Level struct {
	ID        string
	Name      string
	Order     int
	Width     int
	Height    int
	Start     grid.Cell
	Facing    grid.Facing
	Power     int
	Tiles     map[grid.Cell]tilemap.Kind
	Platforms []Platform
	Metadata  map[string]string
	FilePath  string
}

// ToTilemap creates a fresh tilemap holding the level's tiles.
func (l *Level) ToTilemap() *tilemap.Tilemap {
	tm := tilemap.New()
	for c, k := range l.Tiles {
		tm.Set(c, k)
	}
	return tm
}

// Loader handles loading levels from a file system.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a new level loader over a directory.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// NewFSLoader creates a loader over an fs.FS, rooted at dir.
func NewFSLoader(fsys fs.FS, dir string) *Loader {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		sub = fsys
	}
	return &Loader{Root: dir, fsys: sub}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Levels are sorted by order, then ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Order != levels[j].Order {
			return levels[i].Order < levels[j].Order
		}
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}

	return Level{
		ID:        parsed.ID,
		Name:      parsed.Name,
		Order:     parsed.Order,
		Width:     parsed.Width,
		Height:    parsed.Height,
		Start:     parsed.Start,
		Facing:    parsed.Facing,
		Power:     parsed.Power,
		Tiles:     parsed.Tiles,
		Platforms: parsed.Platforms,
		Metadata:  parsed.Metadata,
		FilePath:  path.Join(l.Root, p),
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	i := slices.IndexFunc(levels, func(lvl Level) bool { return lvl.ID == id })
	if i < 0 {
		return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
	}
	return levels[i], nil
}

// ListIDs returns all level IDs in campaign order.
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

// Index returns the position of id within levels, or -1.
func Index(levels []Level, id string) int {
	return slices.IndexFunc(levels, func(lvl Level) bool { return lvl.ID == id })
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), ext)
}

func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
