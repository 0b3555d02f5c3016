package digest

import (
	"time"
)

type Kind int

const (
	KindFeed Kind = iota
	KindBook
	KindEbook
)

func (k Kind) String() string {
	switch k {
	case KindFeed:
		return "feed"
	case KindBook:
		return "book"
	case KindEbook:
		return "ebook"
	default:
		return "unknown"
	}
}

// Item is the canonical shape both sources are normalized into. Every
// optional field has its zero value when the source did not provide it.
type Item struct {
	ID          string
	Title       string
	Kind        Kind
	SourceGroup string
	Link        string

	// Feed only
	Summary      string
	Published    *time.Time
	PublishedRaw string

	// Catalog only
	Author           string
	Series           string // raw series statement, see SeriesKey
	Edition          string
	PublicationDate  string // as exported, for display
	PublicationYear  *int
	CallNumber       string
	CallNumberScheme string
	Location         string
	SelfLink         string
}

// Partition is a named, inclusive range of the local call number scheme.
type Partition struct {
	Label string
	Start float64
	End   float64
}

func (p Partition) Contains(n float64) bool {
	return p.Start <= n && n <= p.End
}

// Section is a node of the digest tree. The root has no label.
type Section struct {
	Label    string
	Items    []Item
	Children []*Section
}

func (s *Section) Empty() bool {
	return len(s.Items) == 0 && len(s.Children) == 0
}

// Count returns the number of items in the section and all its descendants.
func (s *Section) Count() int {
	n := len(s.Items)
	for _, child := range s.Children {
		n += child.Count()
	}
	return n
}

// Walk visits s and its descendants depth first. path holds the labels from
// the first labelled ancestor down to the visited section.
func (s *Section) Walk(fn func(path []string, section *Section)) {
	s.walk(nil, fn)
}

func (s *Section) walk(path []string, fn func([]string, *Section)) {
	if s.Label != "" {
		path = append(path[:len(path):len(path)], s.Label)
	}
	fn(path, s)
	for _, child := range s.Children {
		child.walk(path, fn)
	}
}

const (
	DeweyScheme   = "Dewey Decimal classification"
	OtherLabel    = "Andre fag og skjønnlitteratur"
	NoSeriesLabel = " Ingen serie" // leading space sorts it before every real series
)

// LawPartitions is the law library's local shelving scheme (L-skjema) in
// the order it is displayed. Narrow ranges nested inside a wider one must be
// listed before it.
var LawPartitions = []Partition{
	{Label: "Festskrift", Start: 19, End: 19},
	{Label: "Rettsinformatikk", Start: 39, End: 39.9},
	{Label: "Rettsvitenskap i alminnelighet", Start: 1, End: 107},
	{Label: "Kvinnerett", Start: 152, End: 152.9},
	{Label: "Privatrett", Start: 108, End: 637},
	{Label: "Offentlig rett", Start: 638, End: 1127},
	{Label: "Menneskerettigheter", Start: 1164, End: 1164},
	{Label: "Folkerett", Start: 1129, End: 1235},
	{Label: "Kirkerett", Start: 1236, End: 1287},
}
