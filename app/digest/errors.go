package digest

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedCallNumber    = errors.New("malformed call number")
	ErrMissingRecencyField    = errors.New("missing recency field")
	ErrMalformedChannelTitle  = errors.New("malformed channel title")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)

type SourceKind string

const (
	SourceFeed    SourceKind = "feed"
	SourceCatalog SourceKind = "catalog"
)

// SourceError attributes a fetch or parse failure to the source it came from.
type SourceError struct {
	Kind SourceKind
	URL  string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s source %s: %v", e.Kind, e.URL, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
