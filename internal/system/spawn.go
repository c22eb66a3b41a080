package system

import (
	"time"

	"github.com/gravemoor/sim/internal/component"
	"github.com/gravemoor/sim/internal/core/ecs"
	"github.com/gravemoor/sim/internal/core/event"
	"github.com/gravemoor/sim/internal/data"
	"go.uber.org/zap"
)

// spawnPoint tracks one spawn list entry's live population. A zero-delay
// point that has lost an agent stays exhausted for the rest of the run.
type spawnPoint struct {
	entry     data.SpawnEntry
	tmpl      *data.AgentTemplate
	live      []ecs.EntityID
	respawnIn int
	exhausted bool
}

// SpawnSystem populates the world from the spawn list on the first tick and
// keeps each spawn point topped up afterward, honoring per-entry respawn
// delays. Emits AgentSpawned for every agent it creates.
type SpawnSystem struct {
	world  *ecs.World
	stores *Stores
	bus    *event.Bus
	log    *zap.Logger
	points []*spawnPoint
}

func NewSpawnSystem(w *ecs.World, stores *Stores, agents *data.AgentTable, spawns []data.SpawnEntry, bus *event.Bus, log *zap.Logger) *SpawnSystem {
	s := &SpawnSystem{world: w, stores: stores, bus: bus, log: log}
	for _, entry := range spawns {
		tmpl := agents.Get(entry.Species)
		if tmpl == nil {
			log.Warn("spawn: unknown species", zap.String("species", entry.Species))
			continue
		}
		s.points = append(s.points, &spawnPoint{entry: entry, tmpl: tmpl})
	}
	return s
}

func (s *SpawnSystem) Update(_ time.Duration) {
	for _, pt := range s.points {
		// Drop dead handles from the live list.
		alive := pt.live[:0]
		for _, id := range pt.live {
			if s.world.Alive(id) {
				alive = append(alive, id)
			}
		}
		died := len(pt.live) - len(alive)
		pt.live = alive

		if died > 0 {
			if pt.entry.RespawnDelay == 0 {
				pt.exhausted = true // one-shot spawn point
			} else if pt.respawnIn == 0 {
				pt.respawnIn = pt.entry.RespawnDelay
			}
		}

		if pt.exhausted || len(pt.live) >= pt.entry.Count {
			continue
		}
		if pt.respawnIn > 0 {
			pt.respawnIn--
			continue
		}

		for len(pt.live) < pt.entry.Count {
			pt.live = append(pt.live, s.spawnOne(pt))
		}
	}
}

func (s *SpawnSystem) spawnOne(pt *spawnPoint) ecs.EntityID {
	tmpl := pt.tmpl
	e := s.world.CreateEntity()

	s.stores.Pos.Set(e, component.Position{X: float64(pt.entry.X), Y: float64(pt.entry.Y)})
	s.stores.Vel.Set(e, component.Velocity{})
	s.stores.HP.Set(e, component.Health{Current: tmpl.HP, Max: tmpl.HP})
	s.stores.Agent.Set(e, component.Agent{
		Species:  tmpl.Species,
		Behavior: tmpl.Behavior,
		SpawnX:   pt.entry.X,
		SpawnY:   pt.entry.Y,
	})
	if tmpl.Damage > 0 {
		s.stores.Combat.Set(e, component.Combat{
			Damage:   tmpl.Damage,
			Cooldown: tmpl.Cooldown,
			Hostile:  tmpl.Hostile,
		})
	}
	if tmpl.Lifetime > 0 {
		s.stores.Life.Set(e, component.Lifetime{TicksLeft: tmpl.Lifetime})
	}
	glyph := '?'
	if tmpl.Glyph != "" {
		glyph = []rune(tmpl.Glyph)[0]
	}
	s.stores.Render.Set(e, component.Renderable{Glyph: glyph, Layer: 1})
	for _, tag := range tmpl.Tags {
		s.world.AddTag(e, tag)
	}

	event.Emit(s.bus, event.AgentSpawned{
		ID:      e,
		Species: tmpl.Species,
		X:       pt.entry.X,
		Y:       pt.entry.Y,
	})
	s.log.Debug("spawned agent",
		zap.String("species", tmpl.Species),
		zap.Uint32("entity", e.Index()),
	)
	return e
}
