package ecs

// Query helpers compute the live intersection of entities across stores.
// All of them drive from the smallest store's dense array and probe the
// rest with Has: component populations vary widely (a few bosses, hundreds
// of walls), so scanning the smallest set minimizes wasted probes.

// Each2 iterates over entities that have both component A and B.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for i := range sa.dense {
			id := sa.owners[i]
			if b, ok := sb.TryGet(id); ok {
				fn(id, &sa.dense[i], b)
			}
		}
		return
	}
	for i := range sb.dense {
		id := sb.owners[i]
		if a, ok := sa.TryGet(id); ok {
			fn(id, a, &sb.dense[i])
		}
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	// Drive from the smallest store.
	smallest := sa.Len()
	which := 0
	if sb.Len() < smallest {
		smallest = sb.Len()
		which = 1
	}
	if sc.Len() < smallest {
		which = 2
	}

	switch which {
	case 0:
		for i := range sa.dense {
			id := sa.owners[i]
			if b, ok := sb.TryGet(id); ok {
				if c, ok := sc.TryGet(id); ok {
					fn(id, &sa.dense[i], b, c)
				}
			}
		}
	case 1:
		for i := range sb.dense {
			id := sb.owners[i]
			if a, ok := sa.TryGet(id); ok {
				if c, ok := sc.TryGet(id); ok {
					fn(id, a, &sb.dense[i], c)
				}
			}
		}
	case 2:
		for i := range sc.dense {
			id := sc.owners[i]
			if a, ok := sa.TryGet(id); ok {
				if b, ok := sb.TryGet(id); ok {
					fn(id, a, b, &sc.dense[i])
				}
			}
		}
	}
}

// Intersect returns the entities present in every given store, with no
// duplicates. Zero stores yields nil; one store degenerates to a copy of its
// dense owner list. The result is a snapshot: it stays valid while the
// stores mutate, but reflects membership at call time only.
func Intersect(stores ...Probe) []EntityID {
	if len(stores) == 0 {
		return nil
	}

	driver := stores[0]
	for _, s := range stores[1:] {
		if s.Len() < driver.Len() {
			driver = s
		}
	}

	out := make([]EntityID, 0, driver.Len())
scan:
	for _, id := range driver.Entities() {
		for _, s := range stores {
			if s == driver {
				continue
			}
			if !s.Has(id) {
				continue scan
			}
		}
		out = append(out, id)
	}
	return out
}
