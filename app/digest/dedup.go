package digest

import (
	"maps"
)

// SeenSet holds identifiers already emitted by earlier runs.
type SeenSet map[string]struct{}

func NewSeenSet(ids ...string) SeenSet {
	seen := make(SeenSet, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return seen
}

func (s SeenSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s SeenSet) Add(id string) {
	s[id] = struct{}{}
}

// FilterNew drops items whose id is in seen and returns the survivors along
// with a copy of seen extended by their ids. Because ids are added as they
// are accepted, a repeat later in the same batch is dropped as well. seen
// itself is not modified.
func FilterNew(items []Item, seen SeenSet) ([]Item, SeenSet) {
	updated := maps.Clone(seen)
	if updated == nil {
		updated = make(SeenSet)
	}

	fresh := make([]Item, 0, len(items))
	for _, item := range items {
		if updated.Has(item.ID) {
			continue
		}
		updated.Add(item.ID)
		fresh = append(fresh, item)
	}
	return fresh, updated
}
