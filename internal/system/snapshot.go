package system

import (
	"context"
	"time"

	"github.com/gravemoor/sim/internal/component"
	"github.com/gravemoor/sim/internal/core/ecs"
	"github.com/gravemoor/sim/internal/persist"
	"go.uber.org/zap"
)

// SnapshotSystem persists a periodic snapshot of every live agent. It is a
// no-op when the world runs without a database, which is the default
// headless configuration.
type SnapshotSystem struct {
	stores *Stores
	repo   *persist.SnapshotRepo
	log    *zap.Logger
	every  int
	keep   int
	tick   uint64
}

func NewSnapshotSystem(stores *Stores, repo *persist.SnapshotRepo, every, keep int, log *zap.Logger) *SnapshotSystem {
	return &SnapshotSystem{stores: stores, repo: repo, log: log, every: every, keep: keep}
}

func (s *SnapshotSystem) Update(_ time.Duration) {
	s.tick++
	if s.repo == nil || s.every <= 0 || s.tick%uint64(s.every) != 0 {
		return
	}
	s.Save()
}

// Save writes one snapshot immediately. Also called from main on shutdown.
func (s *SnapshotSystem) Save() {
	if s.repo == nil {
		return
	}

	rows := make([]persist.AgentRow, 0, s.stores.Agent.Len())
	s.stores.Agent.Each(func(id ecs.EntityID, ag *component.Agent) {
		row := persist.AgentRow{
			EntityIdx:  id.Index(),
			Generation: id.Generation(),
			Species:    ag.Species,
		}
		if p, ok := s.stores.Pos.TryGet(id); ok {
			row.X, row.Y = p.X, p.Y
		}
		if hp, ok := s.stores.HP.TryGet(id); ok {
			row.HP, row.MaxHP = hp.Current, hp.Max
		}
		rows = append(rows, row)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := s.repo.Save(ctx, s.tick, rows)
	if err != nil {
		s.log.Error("snapshot save failed", zap.Uint64("tick", s.tick), zap.Error(err))
		return
	}
	if s.keep > 0 {
		if err := s.repo.Prune(ctx, s.keep); err != nil {
			s.log.Warn("snapshot prune failed", zap.Error(err))
		}
	}
	s.log.Info("snapshot saved",
		zap.Int64("snapshot_id", id),
		zap.Uint64("tick", s.tick),
		zap.Int("agents", len(rows)),
	)
}
