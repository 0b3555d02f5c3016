package feed

import (
	"time"
)

type Metadata struct {
	Title       string
	Link        string
	Description string
	Language    string
}

// Entry is a raw table-of-contents entry as delivered by the source.
type Entry struct {
	Title       string
	Link        string
	Description string
	Published   string     // as provided by the source, empty when absent
	PublishedAt *time.Time // parsed form of Published when the parser understood it
}
