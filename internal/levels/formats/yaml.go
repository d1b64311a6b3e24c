// Package formats provides level file format parsers.
package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-glorp/internal/grid"
	"github.com/vovakirdan/tui-glorp/internal/tilemap"
)

// Glyphs that are not tiles.
const (
	GlyphPlayer   = 'P'
	GlyphPlatform = '='
)

// ErrInvalidLevel is wrapped by every structural level error.
var ErrInvalidLevel = errors.New("invalid level")

// YAMLLevel represents the YAML structure for a level file.
// Rows are drawn top to bottom; the last row is y=0.
type YAMLLevel struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Order     int               `yaml:"order,omitempty"`
	Facing    string            `yaml:"facing,omitempty"`
	Power     int               `yaml:"power,omitempty"`
	Rows      []string          `yaml:"rows"`
	Platforms []YAMLPlatform    `yaml:"platforms,omitempty"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLPlatform configures one '=' glyph, matched in reading order.
type YAMLPlatform struct {
	Direction string `yaml:"direction"`
	Distance  int    `yaml:"distance"`
}

// Platform is a parsed moving platform.
type Platform struct {
	Cell      grid.Cell
	Direction grid.Direction
	Distance  int
}

// Level represents a parsed level ready for use.
type Level struct {
	ID        string
	Name      string
	Order     int
	Width     int
	Height    int
	Start     grid.Cell
	Facing    grid.Facing
	Power     int // 0 means the configured default
	Tiles     map[grid.Cell]tilemap.Kind
	Platforms []Platform
	Metadata  map[string]string
}

// Default platform trip.
const (
	DefaultPlatformDistance = 2
)

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yl.Level()
}

// Level converts the YAML form into a Level.
func (yl YAMLLevel) Level() (Level, error) {
	if yl.ID == "" {
		return Level{}, fmt.Errorf("%w: missing id", ErrInvalidLevel)
	}
	if len(yl.Rows) == 0 {
		return Level{}, fmt.Errorf("%w: %s has no rows", ErrInvalidLevel, yl.ID)
	}

	lvl := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Order:    yl.Order,
		Height:   len(yl.Rows),
		Power:    yl.Power,
		Tiles:    make(map[grid.Cell]tilemap.Kind),
		Metadata: yl.Metadata,
	}
	if lvl.Name == "" {
		lvl.Name = yl.ID
	}
	if yl.Facing != "" {
		f, ok := grid.ParseFacing(yl.Facing)
		if !ok {
			return Level{}, fmt.Errorf("%w: %s: bad facing %q", ErrInvalidLevel, yl.ID, yl.Facing)
		}
		lvl.Facing = f
	}

	starts := 0
	wins := 0
	var platformCells []grid.Cell
	for row, line := range yl.Rows {
		y := lvl.Height - 1 - row
		x := 0
		for _, r := range line {
			c := grid.C(x, y)
			x++
			switch r {
			case GlyphPlayer:
				lvl.Start = c
				starts++
				continue
			case GlyphPlatform:
				platformCells = append(platformCells, c)
				continue
			}
			kind, ok := tilemap.KindFromGlyph(r)
			if !ok {
				return Level{}, fmt.Errorf("%w: %s: unknown glyph %q at %v", ErrInvalidLevel, yl.ID, r, c)
			}
			if kind == tilemap.Explosion {
				return Level{}, fmt.Errorf("%w: %s: explosion glyph at %v", ErrInvalidLevel, yl.ID, c)
			}
			if kind == tilemap.Winning {
				wins++
			}
			if kind != tilemap.Empty {
				lvl.Tiles[c] = kind
			}
		}
		lvl.Width = max(lvl.Width, x)
	}

	if starts != 1 {
		return Level{}, fmt.Errorf("%w: %s: expected one player start, found %d", ErrInvalidLevel, yl.ID, starts)
	}
	if wins == 0 {
		return Level{}, fmt.Errorf("%w: %s: no winning tile", ErrInvalidLevel, yl.ID)
	}
	if len(yl.Platforms) > len(platformCells) {
		return Level{}, fmt.Errorf("%w: %s: %d platform entries for %d platforms",
			ErrInvalidLevel, yl.ID, len(yl.Platforms), len(platformCells))
	}

	for i, c := range platformCells {
		p := Platform{Cell: c, Direction: grid.DirRight, Distance: DefaultPlatformDistance}
		if i < len(yl.Platforms) {
			yp := yl.Platforms[i]
			if yp.Direction != "" {
				d, ok := grid.ParseDirection(yp.Direction)
				if !ok {
					return Level{}, fmt.Errorf("%w: %s: bad platform direction %q", ErrInvalidLevel, yl.ID, yp.Direction)
				}
				p.Direction = d
			}
			if yp.Distance < 0 {
				return Level{}, fmt.Errorf("%w: %s: negative platform distance", ErrInvalidLevel, yl.ID)
			}
			if yp.Distance > 0 {
				p.Distance = yp.Distance
			}
		}
		lvl.Platforms = append(lvl.Platforms, p)
	}

	return lvl, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
