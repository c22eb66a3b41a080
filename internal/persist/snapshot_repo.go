package persist

import (
	"context"
	"fmt"
)

// AgentRow is one live agent captured in a world snapshot.
type AgentRow struct {
	EntityIdx  uint32
	Generation uint32
	Species    string
	X, Y       float64
	HP         int
	MaxHP      int
}

// SnapshotRepo persists periodic world snapshots: one header row plus one
// row per live agent, written atomically.
type SnapshotRepo struct {
	db *DB
}

func NewSnapshotRepo(db *DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Save writes a snapshot of the given tick in a single transaction and
// returns the snapshot ID.
func (r *SnapshotRepo) Save(ctx context.Context, tick uint64, agents []AgentRow) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("snapshot begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO snapshots (tick, live_count) VALUES ($1, $2) RETURNING id`,
		int64(tick), len(agents),
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("snapshot header: %w", err)
	}

	for _, a := range agents {
		if _, err := tx.Exec(ctx,
			`INSERT INTO snapshot_agents (snapshot_id, entity_idx, generation, species, x, y, hp, max_hp)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, int64(a.EntityIdx), int64(a.Generation), a.Species, a.X, a.Y, a.HP, a.MaxHP,
		); err != nil {
			return 0, fmt.Errorf("snapshot agent: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("snapshot commit: %w", err)
	}
	return id, nil
}

// Prune deletes all but the most recent keep snapshots.
func (r *SnapshotRepo) Prune(ctx context.Context, keep int) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM snapshots
		 WHERE id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT $1)`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("snapshot prune: %w", err)
	}
	return nil
}
