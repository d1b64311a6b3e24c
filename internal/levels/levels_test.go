package levels

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-glorp/internal/grid"
	"github.com/vovakirdan/tui-glorp/internal/levels/formats"
	"github.com/vovakirdan/tui-glorp/internal/tilemap"
)

func testdataPath() string {
	return filepath.Join("testdata", "levels")
}

func TestLoaderLoadAll(t *testing.T) {
	lvls, err := NewLoader(testdataPath()).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	var ids []string
	for _, l := range lvls {
		ids = append(ids, l.ID)
	}
	// broken.yaml has no start and readme.txt is not a level.
	if want := []string{"beta", "alpha"}; !slices.Equal(ids, want) {
		t.Errorf("ids = %v, expected %v", ids, want)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	loader := NewLoader(testdataPath())

	lvl, err := loader.LoadByID("alpha")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Name != "Alpha" || lvl.Width != 5 || lvl.Height != 3 {
		t.Errorf("alpha = %q %dx%d", lvl.Name, lvl.Width, lvl.Height)
	}
	if lvl.Start != grid.C(3, 1) {
		t.Errorf("Start = %v, expected (3,1)", lvl.Start)
	}
	if lvl.Facing != grid.FacingLeft {
		t.Errorf("Facing = %v, expected left", lvl.Facing)
	}
	if lvl.Tiles[grid.C(1, 1)] != tilemap.Winning {
		t.Error("winning tile missing at (1,1)")
	}
	if lvl.FilePath != filepath.Join(testdataPath(), "alpha.yaml") {
		t.Errorf("FilePath = %q", lvl.FilePath)
	}

	_, err = loader.LoadByID("nope")
	if !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("LoadByID(nope) = %v, expected ErrLevelNotFound", err)
	}
}

func TestPlatformsMatchedInReadingOrder(t *testing.T) {
	lvl, err := NewLoader(testdataPath()).LoadByID("beta")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	want := []Platform{
		{Cell: grid.C(3, 1), Direction: grid.DirUp, Distance: 4},
		{Cell: grid.C(5, 1), Direction: grid.DirRight, Distance: formats.DefaultPlatformDistance},
	}
	if !slices.Equal(lvl.Platforms, want) {
		t.Errorf("platforms = %+v, expected %+v", lvl.Platforms, want)
	}
	if lvl.Power != 25 {
		t.Errorf("Power = %d, expected 25", lvl.Power)
	}
	if _, ok := lvl.Tiles[grid.C(3, 1)]; ok {
		t.Error("platform cell should not hold a tile")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no id", "rows: ['P W']"},
		{"no rows", "id: x"},
		{"two starts", "id: x\nrows: ['PPW']"},
		{"no win", "id: x\nrows: ['P..']"},
		{"unknown glyph", "id: x\nrows: ['P?W']"},
		{"explosion glyph", "id: x\nrows: ['P*W']"},
		{"bad facing", "id: x\nfacing: up\nrows: ['P.W']"},
		{"extra platform", "id: x\nrows: ['P.W']\nplatforms: [{direction: up}]"},
		{"bad direction", "id: x\nrows: ['P=W']\nplatforms: [{direction: sideways}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formats.ParseYAML([]byte(tt.yaml))
			if !errors.Is(err, formats.ErrInvalidLevel) {
				t.Errorf("ParseYAML = %v, expected ErrInvalidLevel", err)
			}
		})
	}

	if _, err := formats.ParseYAML([]byte("id: [")); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestToTilemap(t *testing.T) {
	lvl, err := NewLoader(testdataPath()).LoadByID("alpha")
	if err != nil {
		t.Fatal(err)
	}
	tm := lvl.ToTilemap()
	if tm.Len() != len(lvl.Tiles) {
		t.Errorf("tilemap has %d tiles, expected %d", tm.Len(), len(lvl.Tiles))
	}
	tm.Clear(grid.C(1, 1))
	if lvl.Tiles[grid.C(1, 1)] != tilemap.Winning {
		t.Error("tilemap should not alias the level")
	}
}

func TestCampaign(t *testing.T) {
	lvls, err := Campaign().LoadAll()
	if err != nil {
		t.Fatalf("campaign failed to load: %v", err)
	}
	if len(lvls) != 5 {
		t.Fatalf("campaign has %d levels, expected 5", len(lvls))
	}
	if lvls[0].ID != "first-steps" {
		t.Errorf("first level = %s", lvls[0].ID)
	}
	for _, l := range lvls {
		if l.Tiles[l.Start].Solid() {
			t.Errorf("%s: start %v is inside a solid tile", l.ID, l.Start)
		}
		if l.Start.X < 0 || l.Start.X >= l.Width || l.Start.Y < 0 || l.Start.Y >= l.Height {
			t.Errorf("%s: start %v out of bounds", l.ID, l.Start)
		}
	}
	if Index(lvls, "lift") != 3 {
		t.Errorf("Index(lift) = %d, expected 3", Index(lvls, "lift"))
	}
}

func TestOpen(t *testing.T) {
	if Open("").Root != "campaign" {
		t.Error("Open(\"\") should use the campaign")
	}
	if Open("somewhere").Root != "somewhere" {
		t.Error("Open(dir) should use the directory")
	}
}
