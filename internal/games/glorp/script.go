package glorp

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-glorp/internal/core"
)

// DefaultSettleTicks bounds how long RunScript waits for the world to come
// to rest after each action.
const DefaultSettleTicks = 6000

// ParseScript splits a comma or whitespace separated list of action names.
func ParseScript(s string) ([]core.Action, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	actions := make([]core.Action, 0, len(fields))
	for _, f := range fields {
		a, ok := core.ParseAction(f)
		if !ok {
			return nil, fmt.Errorf("glorp: unknown action %q", f)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// RunScript feeds actions one at a time, letting the world settle before
// each one and after the last. It returns every event produced. The run
// stops early when the game ends.
func (g *Game) RunScript(actions []core.Action, settleTicks int) []core.Event {
	if settleTicks <= 0 {
		settleTicks = DefaultSettleTicks
	}
	var events []core.Event
	idle := core.NewInputFrame()

	settle := func() {
		for i := 0; i < settleTicks && g.Busy() && !g.gameOver; i++ {
			events = append(events, g.Step(idle).Events...)
		}
	}

	for _, a := range actions {
		settle()
		if g.gameOver {
			break
		}
		in := core.NewInputFrame()
		in.Set(a)
		events = append(events, g.Step(in).Events...)
	}
	settle()
	return events
}
