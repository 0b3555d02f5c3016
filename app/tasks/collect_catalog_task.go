package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jurbib/digest/app/catalog"
	"github.com/jurbib/digest/app/config"
	"github.com/jurbib/digest/app/digest"
)

// CollectCatalogTask fetches one catalog list and files its recent
// acquisitions under the section, grouped as the source asks for.
type CollectCatalogTask struct {
	Task
	Source     config.CatalogSource
	Days       int
	policy     digest.InclusionPolicy
	partitions []digest.Partition
	builder    *digest.Builder
	fetcher    FetcherInterface
	parser     *catalog.Parser
	listed     *digest.SeenSet
}

// NewCollectCatalogTask returns a task that skips records whose id is in
// *listed and adds the ids it lists. listed lives for one run only.
func NewCollectCatalogTask(section string, source config.CatalogSource, days int, policy digest.InclusionPolicy, partitions []digest.Partition, builder *digest.Builder, fetcher FetcherInterface, parser *catalog.Parser, listed *digest.SeenSet) *CollectCatalogTask {
	return &CollectCatalogTask{
		Task:       NewTask(TaskTypeCollectCatalog, section),
		Source:     source,
		Days:       days,
		policy:     policy,
		partitions: partitions,
		builder:    builder,
		fetcher:    fetcher,
		parser:     parser,
		listed:     listed,
	}
}

func (t *CollectCatalogTask) Execute(ctx context.Context) error {
	url := t.Source.URLFor(t.Days)

	data, err := t.fetcher.Run(ctx, digest.SourceCatalog, url)
	if err != nil {
		return err
	}

	records, err := t.parser.Run(data)
	if err != nil {
		return &digest.SourceError{Kind: digest.SourceCatalog, URL: url, Err: err}
	}

	items := digest.NormalizeRecords(t.Section, records)
	normalized := len(items)

	// An excluded copy must not shadow an eligible copy of the same
	// manifestation: policy first, then dedup.
	items = digest.FilterRecent(items, t.policy)
	recent := len(items)

	items, *t.listed = digest.FilterNew(items, *t.listed)

	slog.Info("Catalog filtered",
		"section", digest.ASCII(t.Section),
		"before", normalized,
		"excluded", normalized-recent,
		"duplicates", recent-len(items),
		"after", len(items))

	switch t.Source.GroupBy {
	case config.GroupBySeries:
		digest.AddBySeries(t.builder, items)
	case config.GroupByPartitions:
		digest.AddPartitioned(t.builder, items, t.partitions)
	case config.GroupByFlat, "":
		digest.AddFlat(t.builder, items)
	default:
		return fmt.Errorf("unknown grouping %q", t.Source.GroupBy)
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"section", digest.ASCII(t.Section),
		"duration", t.GetDuration(),
		"records", len(records),
		"listed", len(items))

	return nil
}
