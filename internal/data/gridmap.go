package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GridMap is the dungeon walkability grid. Rows are strings of cells:
// '#' = wall, anything else = floor. Coordinates outside the grid are
// impassable.
type GridMap struct {
	Name   string
	width  int
	height int
	walls  []bool // flat [y*width + x]
}

type gridMapFile struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// LoadGridMap loads a grid map from a YAML file.
func LoadGridMap(path string) (*GridMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	var f gridMapFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}
	if len(f.Rows) == 0 {
		return nil, fmt.Errorf("map %s: no rows", path)
	}

	width := len(f.Rows[0])
	for i, row := range f.Rows {
		if len(row) != width {
			return nil, fmt.Errorf("map %s: row %d width %d, expected %d", path, i, len(row), width)
		}
	}

	m := &GridMap{
		Name:   f.Name,
		width:  width,
		height: len(f.Rows),
		walls:  make([]bool, width*len(f.Rows)),
	}
	for y, row := range f.Rows {
		for x := 0; x < width; x++ {
			m.walls[y*width+x] = row[x] == '#'
		}
	}
	return m, nil
}

// NewGridMap builds an empty all-floor map, for tests and default worlds.
func NewGridMap(name string, width, height int) *GridMap {
	return &GridMap{
		Name:   name,
		width:  width,
		height: height,
		walls:  make([]bool, width*height),
	}
}

func (m *GridMap) Width() int  { return m.width }
func (m *GridMap) Height() int { return m.height }

// Walkable reports whether the cell is inside the grid and not a wall.
func (m *GridMap) Walkable(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return !m.walls[y*m.width+x]
}

// SetWall marks or clears a wall cell, for doors and tests.
func (m *GridMap) SetWall(x, y int, wall bool) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.walls[y*m.width+x] = wall
}
