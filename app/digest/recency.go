package digest

import (
	"fmt"
	"log/slog"
	"slices"
)

// InclusionPolicy decides which catalog items are recent enough to list.
type InclusionPolicy struct {
	CurrentYear       int
	MaxAgeYears       int
	ExcludedLocations []string
	// When false, ebooks skip only the year check and are still dropped
	// from excluded locations.
	EbooksBypassLocation bool
}

// Include reports whether item belongs in the digest. A book without a
// publication year is included and ErrMissingRecencyField is returned
// alongside so the caller can flag it.
func (p InclusionPolicy) Include(item Item) (bool, error) {
	if item.Kind == KindEbook {
		if p.EbooksBypassLocation {
			return true, nil
		}
		return !p.excluded(item.Location), nil
	}

	if item.PublicationYear == nil {
		return true, fmt.Errorf("%w: publication year", ErrMissingRecencyField)
	}

	return *item.PublicationYear > p.CurrentYear-p.MaxAgeYears && !p.excluded(item.Location), nil
}

func (p InclusionPolicy) excluded(location string) bool {
	return slices.Contains(p.ExcludedLocations, location)
}

// FilterRecent keeps the items the policy includes, logging every item that
// is kept only because it could not be evaluated.
func FilterRecent(items []Item, policy InclusionPolicy) []Item {
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		include, err := policy.Include(item)
		if err != nil {
			slog.Warn("Could not evaluate recency, including item", "title", ASCII(item.Title), "link", item.SelfLink, "error", err)
		}
		if include {
			kept = append(kept, item)
		}
	}
	return kept
}
