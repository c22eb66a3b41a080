package ecs

// TagIndex maintains many-to-many string labels over entities, independent
// of component storage. Two complementary maps are kept consistent on every
// mutation: entity → tags (for destroy cascade and per-entity checks) and
// tag → entities (for label enumeration).
type TagIndex struct {
	byEntity map[EntityID]map[string]struct{}
	byTag    map[string]map[EntityID]struct{}
}

func NewTagIndex() *TagIndex {
	return &TagIndex{
		byEntity: make(map[EntityID]map[string]struct{}),
		byTag:    make(map[string]map[EntityID]struct{}),
	}
}

func (t *TagIndex) Add(id EntityID, tag string) {
	tags, ok := t.byEntity[id]
	if !ok {
		tags = make(map[string]struct{}, 4)
		t.byEntity[id] = tags
	}
	tags[tag] = struct{}{}

	ents, ok := t.byTag[tag]
	if !ok {
		ents = make(map[EntityID]struct{}, 16)
		t.byTag[tag] = ents
	}
	ents[id] = struct{}{}
}

func (t *TagIndex) Remove(id EntityID, tag string) {
	if tags, ok := t.byEntity[id]; ok {
		delete(tags, tag)
		if len(tags) == 0 {
			delete(t.byEntity, id)
		}
	}
	if ents, ok := t.byTag[tag]; ok {
		delete(ents, id)
		if len(ents) == 0 {
			delete(t.byTag, tag)
		}
	}
}

func (t *TagIndex) Has(id EntityID, tag string) bool {
	tags, ok := t.byEntity[id]
	if !ok {
		return false
	}
	_, ok = tags[tag]
	return ok
}

// EntitiesWith calls fn for every entity carrying tag. The tag's membership
// must not be mutated during iteration.
func (t *TagIndex) EntitiesWith(tag string, fn func(EntityID)) {
	for id := range t.byTag[tag] {
		fn(id)
	}
}

// Count returns the number of entities carrying tag.
func (t *TagIndex) Count(tag string) int {
	return len(t.byTag[tag])
}

// Tags calls fn for every tag the entity carries.
func (t *TagIndex) Tags(id EntityID, fn func(string)) {
	for tag := range t.byEntity[id] {
		fn(tag)
	}
}

// RemoveEntity strips every tag from the entity in both maps. Called on
// entity destroy before the slot is recycled.
func (t *TagIndex) RemoveEntity(id EntityID) {
	tags, ok := t.byEntity[id]
	if !ok {
		return
	}
	for tag := range tags {
		if ents, ok := t.byTag[tag]; ok {
			delete(ents, id)
			if len(ents) == 0 {
				delete(t.byTag, tag)
			}
		}
	}
	delete(t.byEntity, id)
}
