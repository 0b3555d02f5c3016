package tasks

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jurbib/digest/app/catalog"
	"github.com/jurbib/digest/app/config"
	"github.com/jurbib/digest/app/database"
	"github.com/jurbib/digest/app/digest"
	"github.com/jurbib/digest/app/feed"
	"github.com/jurbib/digest/app/render"
)

type PipelineOptions struct {
	Days              int
	OutputDir         string
	SkipFailedSources bool
}

// Result describes a completed run.
type Result struct {
	Root       *digest.Section
	Digest     *database.Digest
	OutputPath string
}

// Pipeline produces one digest: it collects every configured section in
// order, renders the tree, archives it and records the entries sent out.
type Pipeline struct {
	config        *config.Config
	seenRepo      database.SeenRepository
	digestRepo    database.DigestRepository
	fetcher       FetcherInterface
	feedParser    *feed.Parser
	catalogParser *catalog.Parser
	runner        *Runner
	html          *render.HTMLRenderer
	rss           *render.RSSGenerator
	partitions    []digest.Partition
	options       PipelineOptions
	now           func() time.Time
}

func NewPipeline(conf *config.Config, seenRepo database.SeenRepository, digestRepo database.DigestRepository,
	fetcher FetcherInterface, options PipelineOptions) *Pipeline {
	return &Pipeline{
		config:        conf,
		seenRepo:      seenRepo,
		digestRepo:    digestRepo,
		fetcher:       fetcher,
		feedParser:    feed.NewParser(),
		catalogParser: catalog.NewParser(),
		runner:        NewRunner(defaultTaskTimeout),
		html:          render.NewHTMLRenderer(conf.ProxyPrefix),
		rss:           render.NewRSSGenerator(conf.ProxyPrefix),
		partitions:    digest.LawPartitions,
		options:       options,
		now:           time.Now,
	}
}

func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	now := p.now()

	seen, err := p.seenRepo.Load(ctx)
	if err != nil {
		slog.Warn("Seen items unavailable, starting with an empty set", "error", fmt.Errorf("%w: %w", digest.ErrPersistenceUnavailable, err))
		seen = digest.NewSeenSet()
	}
	slog.Debug("Seen items loaded", "count", len(seen))

	policy := digest.InclusionPolicy{
		CurrentYear:          now.Year(),
		MaxAgeYears:          p.config.Catalog.MaxAgeYears,
		ExcludedLocations:    p.config.Catalog.ExcludedLocations,
		EbooksBypassLocation: p.config.Catalog.BypassLocationForEbooks(),
	}

	// Catalog ids are only kept for the duration of the run.
	listed := digest.NewSeenSet()

	b := digest.NewBuilder()
	for _, section := range p.config.Sections {
		err := b.Section(section.Label, func(s *digest.Builder) error {
			return p.runner.Run(ctx, p.newTask(section, s, policy, &seen, &listed))
		})
		if err != nil {
			var sourceErr *digest.SourceError
			if p.options.SkipFailedSources && errors.As(err, &sourceErr) {
				slog.Warn("Skipping failed source", "section", digest.ASCII(section.Label), "url", sourceErr.URL, "error", err)
				continue
			}
			return nil, fmt.Errorf("failed to collect section %q: %w", section.Label, err)
		}
	}
	root := b.Build()

	html, err := p.html.Run(p.config.Title, root)
	if err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}

	rss, err := p.rss.Run(render.Channel{
		Title:   p.config.Title,
		Link:    p.config.Link,
		BuiltAt: now,
	}, root)
	if err != nil {
		return nil, fmt.Errorf("failed to render RSS: %w", err)
	}

	outputPath, err := p.writeOutput(now, html)
	if err != nil {
		return nil, err
	}

	record := &database.Digest{
		Title:        p.config.Title,
		HTML:         html,
		RSS:          rss,
		ItemCount:    root.Count(),
		SectionCount: len(root.Children),
		CreatedAt:    now,
	}
	if err := p.digestRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to archive digest: %w: %w", digest.ErrPersistenceUnavailable, err)
	}

	if err := p.seenRepo.Save(ctx, seen); err != nil {
		return nil, fmt.Errorf("failed to save seen items: %w: %w", digest.ErrPersistenceUnavailable, err)
	}

	slog.Info("Digest completed",
		"id", record.ID,
		"items", record.ItemCount,
		"sections", record.SectionCount,
		"seen", len(seen),
		"output", outputPath)

	return &Result{Root: root, Digest: record, OutputPath: outputPath}, nil
}

func (p *Pipeline) newTask(section config.Section, b *digest.Builder, policy digest.InclusionPolicy, seen, listed *digest.SeenSet) TaskInterface {
	if section.Catalog != nil {
		return NewCollectCatalogTask(section.Label, *section.Catalog, p.options.Days, policy, p.partitions, b, p.fetcher, p.catalogParser, listed)
	}
	return NewCollectFeedsTask(section.Label, section.Feeds, b, p.fetcher, p.feedParser, seen, p.options.SkipFailedSources)
}

func (p *Pipeline) writeOutput(now time.Time, html string) (string, error) {
	dir := cmp.Or(p.options.OutputDir, ".")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, now.Format("2006-01-02")+".html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
