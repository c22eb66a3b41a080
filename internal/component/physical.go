package component

// Position is a location on the dungeon grid, in fractional cells so slow
// movers accumulate progress across ticks.
type Position struct {
	X, Y  float64
	MapID int16
}

// Cell returns the grid cell the position rounds into.
func (p Position) Cell() (int, int) {
	return int(p.X), int(p.Y)
}

// Velocity is movement intent in cells per second. Written by the AI
// system, integrated by the movement system.
type Velocity struct {
	VX, VY float64
}

// Renderable describes how the draw pass presents an entity.
// Pure data, zero methods — all mutations happen in System functions.
type Renderable struct {
	Glyph rune
	Layer int // higher layers draw over lower ones
}
