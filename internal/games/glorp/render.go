package glorp

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-glorp/internal/core"
	"github.com/vovakirdan/tui-glorp/internal/grid"
	"github.com/vovakirdan/tui-glorp/internal/tilemap"
)

const (
	cellWidth = 2 // Terminal columns per grid cell
	hudHeight = 2
	gaugeWidth = 10
)

// KeyHelp is the one-line key reference drawn under the level.
const KeyHelp = "f fwd  t turn  w jump  e leap  x boom  z zap  r retry  p pause  q quit"

type tileStyle struct {
	glyph string
	color core.Color
}

var tileStyles = map[tilemap.Kind]tileStyle{
	tilemap.Wall:         {"██", core.ColorGray},
	tilemap.Destructible: {"▓▓", core.ColorBrown},
	tilemap.Glorp:        {"()", core.ColorBrightGreen},
	tilemap.Damage:       {"^^", core.ColorRed},
	tilemap.Winning:      {"<>", core.ColorBrightYellow},
}

// drawOrder keeps rendering deterministic.
var drawOrder = []tilemap.Kind{
	tilemap.Wall, tilemap.Destructible, tilemap.Explosion,
	tilemap.Glorp, tilemap.Damage, tilemap.Winning,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.world == nil {
		dst.DrawTextCentered(dst.Height()/2, "No levels loaded")
		return
	}

	lvl := g.world.Level()
	levelW := lvl.Width * cellWidth
	if dst.Width() < max(levelW+2, 20) || dst.Height() < lvl.Height+hudHeight+3 {
		g.renderTooSmall(dst)
		return
	}

	left := (dst.Width() - levelW) / 2
	top := hudHeight + 1
	bounds := core.NewRect(0, 0, lvl.Width, lvl.Height)
	toScreen := func(c grid.Cell) (int, int, bool) {
		if !bounds.Contains(c.X, c.Y) {
			return 0, 0, false
		}
		return left + c.X*cellWidth, top + lvl.Height - 1 - c.Y, true
	}

	dst.DrawBox(core.NewRect(left-1, top-1, levelW+2, lvl.Height+2), core.ColorGray)
	g.renderHUD(dst)
	g.renderTiles(dst, toScreen)

	layout := g.world.Layout()
	for _, p := range g.world.Platforms() {
		if x, y, ok := toScreen(layout.WorldToCell(p.Mover().Position())); ok {
			dst.DrawTextColor(x, y, "==", core.ColorYellow)
		}
	}

	player := g.world.Player()
	if x, y, ok := toScreen(layout.WorldToCell(player.Position())); ok {
		glyph := "@>"
		if player.Facing() == grid.FacingLeft {
			glyph = "<@"
		}
		dst.DrawTextColor(x, y, glyph, core.ColorBrightCyan)
	}

	footer := top + lvl.Height + 1
	if hint := lvl.Metadata["hint"]; hint != "" && footer+1 < dst.Height() {
		dst.DrawTextCenteredColor(footer, hint, core.ColorGray)
	}
	if footer+1 < dst.Height() {
		dst.DrawTextCenteredColor(dst.Height()-1, KeyHelp, core.ColorGray)
	}

	g.renderOverlay(dst, core.NewRect(left, top+lvl.Height/2, levelW, 2))
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws level, power, glorps and score.
func (g *Game) renderHUD(dst *core.Screen) {
	lvl := g.world.Level()
	title := fmt.Sprintf("GLORP  %d/%d  %s", g.levelIndex+1, len(g.levels), lvl.Name)
	dst.DrawTextCenteredColor(0, title, core.ColorBrightWhite)

	power := fmt.Sprintf("Power %d/%d", g.power.Left(), g.power.Initial())
	if g.power.Unlimited() {
		power = "Power ∞"
	}
	color := core.ColorBrightGreen
	if !g.power.Unlimited() && g.power.Left()*4 < g.power.Initial() {
		color = core.ColorBrightRed
	}
	dst.DrawTextColor(1, 1, power, color)
	if !g.power.Unlimited() && g.power.Initial() > 0 {
		filled := core.Clamp(g.power.Left()*gaugeWidth/g.power.Initial(), 0, gaugeWidth)
		gauge := strings.Repeat("|", filled) + strings.Repeat(".", gaugeWidth-filled)
		dst.DrawTextColor(len(power)+2, 1, gauge, color)
	}

	stats := fmt.Sprintf("Glorps %d  Score %d", g.glorps, g.score)
	dst.DrawText(dst.Width()-len(stats)-1, 1, stats)
}

func (g *Game) renderTiles(dst *core.Screen, toScreen func(grid.Cell) (int, int, bool)) {
	tiles := g.world.Tiles()
	for _, kind := range drawOrder {
		style := tileStyles[kind]
		if kind == tilemap.Explosion {
			style = g.explosionStyle()
		}
		for _, c := range tiles.Cells(kind) {
			if x, y, ok := toScreen(c); ok {
				dst.DrawTextColor(x, y, style.glyph, style.color)
			}
		}
	}
}

// explosionStyle flickers between two frames.
func (g *Game) explosionStyle() tileStyle {
	if (g.frame/6)%2 == 0 {
		return tileStyle{"**", core.ColorOrange}
	}
	return tileStyle{"++", core.ColorBrightYellow}
}

// renderOverlay blanks a strip over the level and writes the message into it.
func (g *Game) renderOverlay(dst *core.Screen, area core.Rect) {
	var lines []string
	color := core.ColorBrightWhite
	switch {
	case g.gameOver && g.won:
		lines = []string{fmt.Sprintf(" CAMPAIGN COMPLETE  Score %d ", g.score), " r: play again  q: quit "}
		color = core.ColorBrightYellow
	case g.gameOver:
		lines = []string{" GAME OVER "}
		color = core.ColorBrightRed
	case g.paused:
		lines = []string{" PAUSED "}
	case g.bannerLeft > 0 && g.banner != "":
		lines = []string{" " + g.banner + " "}
		color = core.ColorBrightMagenta
	default:
		return
	}

	area.H = len(lines)
	dst.DrawRect(area, ' ')
	dst.DrawTextCenteredColor(area.Y, lines[0], color)
	for i, l := range lines[1:] {
		dst.DrawTextCentered(area.Y+1+i, l)
	}
}
