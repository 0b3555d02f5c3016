package database

import (
	"context"

	"github.com/jurbib/digest/app/digest"
)

type SeenRepository interface {
	Load(ctx context.Context) (digest.SeenSet, error)
	Save(ctx context.Context, seen digest.SeenSet) error
	Count(ctx context.Context) (int, error)
}

type DigestRepository interface {
	Create(ctx context.Context, d *Digest) error
	Get(ctx context.Context, id string) (*Digest, error)
	Latest(ctx context.Context) (*Digest, error)
	List(ctx context.Context, limit int) ([]Digest, error)
	Count(ctx context.Context) (int, error)
}

var (
	_ SeenRepository   = (*SeenItemRepository)(nil)
	_ DigestRepository = (*DigestArchive)(nil)
)
