package system

import (
	"fmt"
	"time"

	"github.com/gravemoor/sim/internal/component"
	"github.com/gravemoor/sim/internal/core/ecs"
	coresys "github.com/gravemoor/sim/internal/core/system"
	"github.com/gravemoor/sim/internal/data"
	"go.uber.org/zap"
)

// RenderSystem composes the headless frame: the walkability grid overlaid
// with every renderable entity, plus a status footer. The frame is rebuilt
// in the draw pass, after all updates for the tick are done, and exposed
// via Frame for whatever front end (or test) wants it.
type RenderSystem struct {
	stores *Stores
	grid   *data.GridMap
	runner *coresys.Runner
	log    *zap.Logger
	frames uint64
	frame  []string
}

func NewRenderSystem(stores *Stores, grid *data.GridMap, runner *coresys.Runner, log *zap.Logger) *RenderSystem {
	return &RenderSystem{stores: stores, grid: grid, runner: runner, log: log}
}

func (s *RenderSystem) Update(_ time.Duration) {
	// Rendering reads published state only; all work happens in Draw.
}

func (s *RenderSystem) Draw(now time.Duration) {
	s.frames++

	rows := make([][]rune, s.grid.Height())
	for y := range rows {
		rows[y] = make([]rune, s.grid.Width())
		for x := range rows[y] {
			if s.grid.Walkable(x, y) {
				rows[y][x] = '.'
			} else {
				rows[y][x] = '#'
			}
		}
	}

	// Higher layers win a contested cell.
	layer := make([][]int, s.grid.Height())
	for y := range layer {
		layer[y] = make([]int, s.grid.Width())
		for x := range layer[y] {
			layer[y][x] = -1
		}
	}
	ecs.Each2(s.stores.Render, s.stores.Pos, func(_ ecs.EntityID, r *component.Renderable, p *component.Position) {
		x, y := p.Cell()
		if y < 0 || y >= len(rows) || x < 0 || x >= len(rows[y]) {
			return
		}
		if r.Layer <= layer[y][x] {
			return
		}
		rows[y][x] = r.Glyph
		layer[y][x] = r.Layer
	})

	frame := make([]string, 0, len(rows)+1)
	for _, row := range rows {
		frame = append(frame, string(row))
	}

	kills := 0
	if combat, ok := coresys.Get[CombatSystem](s.runner); ok {
		kills = combat.KillsTotal
	}
	frame = append(frame, fmt.Sprintf("t=%s agents=%d kills=%d",
		now.Truncate(time.Millisecond), s.stores.Agent.Len(), kills))

	s.frame = frame
	s.log.Debug("frame rendered", zap.Uint64("frame", s.frames))
}

// Frame returns the most recently drawn frame, one string per row.
func (s *RenderSystem) Frame() []string {
	return s.frame
}
