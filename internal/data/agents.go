package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AgentTemplate holds static data for an agent species loaded from YAML.
type AgentTemplate struct {
	Species  string  `yaml:"species"`
	Glyph    string  `yaml:"glyph"`
	Behavior string  `yaml:"behavior"` // wander, hunt, guard
	HP       int     `yaml:"hp"`
	Damage   int     `yaml:"damage"`
	Cooldown int     `yaml:"cooldown"` // ticks between attacks
	Speed    float64 `yaml:"speed"`    // cells per second
	Hostile  bool    `yaml:"hostile"`
	Lifetime int     `yaml:"lifetime"` // ticks, 0 = permanent
	Tags     []string `yaml:"tags"`
}

// SpawnEntry defines where and how many agents to spawn.
type SpawnEntry struct {
	Species      string `yaml:"species"`
	X            int    `yaml:"x"`
	Y            int    `yaml:"y"`
	Count        int    `yaml:"count"`
	RespawnDelay int    `yaml:"respawn_delay"` // ticks, 0 = no respawn
}

type agentListFile struct {
	Agents []AgentTemplate `yaml:"agents"`
}

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// AgentTable holds all agent templates indexed by species.
type AgentTable struct {
	templates map[string]*AgentTemplate
}

// LoadAgentTable loads agent templates from a YAML file.
func LoadAgentTable(path string) (*AgentTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agent list: %w", err)
	}
	var f agentListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse agent list: %w", err)
	}
	t := &AgentTable{templates: make(map[string]*AgentTemplate, len(f.Agents))}
	for i := range f.Agents {
		a := &f.Agents[i]
		t.templates[a.Species] = a
	}
	return t, nil
}

// Get returns an agent template by species, or nil if not found.
func (t *AgentTable) Get(species string) *AgentTemplate {
	return t.templates[species]
}

// Count returns the number of loaded templates.
func (t *AgentTable) Count() int {
	return len(t.templates)
}

// LoadSpawnList loads spawn entries from a YAML file.
func LoadSpawnList(path string) ([]SpawnEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn list: %w", err)
	}
	var f spawnListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spawn list: %w", err)
	}
	return f.Spawns, nil
}
