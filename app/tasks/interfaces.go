package tasks

import (
	"context"

	"github.com/jurbib/digest/app/digest"
)

// FetcherInterface retrieves the raw payload of one source. Failures are
// reported as *digest.SourceError.
type FetcherInterface interface {
	Run(ctx context.Context, kind digest.SourceKind, url string) ([]byte, error)
}

var _ FetcherInterface = (*Fetcher)(nil)
