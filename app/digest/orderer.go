package digest

import (
	"cmp"
	"slices"
)

// Order returns items in display order: feed items newest first, catalog
// items by title. The input is not modified and ties keep their input order.
func Order(items []Item) []Item {
	if len(items) > 0 && items[0].Kind == KindFeed {
		return OrderByPublished(items)
	}
	return OrderByTitle(items)
}

func OrderByTitle(items []Item) []Item {
	ordered := slices.Clone(items)
	slices.SortStableFunc(ordered, func(a, b Item) int {
		return cmp.Compare(a.Title, b.Title)
	})
	return ordered
}

// OrderByPublished sorts by (published, title) descending. Source order is
// kept when the first item carries no date.
func OrderByPublished(items []Item) []Item {
	ordered := slices.Clone(items)
	if len(ordered) < 2 || ordered[0].Published == nil {
		return ordered
	}

	slices.SortStableFunc(ordered, func(a, b Item) int {
		if c := comparePublished(b, a); c != 0 {
			return c
		}
		return cmp.Compare(b.Title, a.Title)
	})
	return ordered
}

func comparePublished(a, b Item) int {
	switch {
	case a.Published == nil && b.Published == nil:
		return 0
	case a.Published == nil:
		return -1
	case b.Published == nil:
		return 1
	default:
		return a.Published.Compare(*b.Published)
	}
}
