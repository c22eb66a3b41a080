package system

import (
	"time"

	"github.com/gravemoor/sim/internal/component"
	"github.com/gravemoor/sim/internal/core/ecs"
	"github.com/gravemoor/sim/internal/data"
)

// MovementSystem integrates positions from velocities, one axis at a time
// so an agent blocked diagonally can still slide along a wall. Cells the
// grid marks unwalkable reject the move and zero that axis.
type MovementSystem struct {
	stores *Stores
	grid   *data.GridMap
}

func NewMovementSystem(stores *Stores, grid *data.GridMap) *MovementSystem {
	return &MovementSystem{stores: stores, grid: grid}
}

func (s *MovementSystem) Update(dt time.Duration) {
	step := dt.Seconds()
	ecs.Each2(s.stores.Pos, s.stores.Vel, func(_ ecs.EntityID, pos *component.Position, vel *component.Velocity) {
		if vel.VX != 0 {
			nx := pos.X + vel.VX*step
			if s.grid.Walkable(int(nx), int(pos.Y)) {
				pos.X = nx
			} else {
				vel.VX = 0
			}
		}
		if vel.VY != 0 {
			ny := pos.Y + vel.VY*step
			if s.grid.Walkable(int(pos.X), int(ny)) {
				pos.Y = ny
			} else {
				vel.VY = 0
			}
		}
	})
}
