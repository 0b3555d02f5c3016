package tasks

import (
	"context"
	"log/slog"

	"github.com/jurbib/digest/app/digest"
	"github.com/jurbib/digest/app/feed"
)

// CollectFeedsTask fetches the table-of-contents feeds of one section and
// adds one sub-section per journal with the entries not sent out before.
type CollectFeedsTask struct {
	Task
	URLs       []string
	builder    *digest.Builder
	fetcher    FetcherInterface
	parser     *feed.Parser
	seen       *digest.SeenSet
	skipFailed bool
}

// NewCollectFeedsTask returns a task that filters against *seen and
// replaces it with the extended set as feeds are processed.
func NewCollectFeedsTask(section string, urls []string, builder *digest.Builder, fetcher FetcherInterface, parser *feed.Parser, seen *digest.SeenSet, skipFailed bool) *CollectFeedsTask {
	return &CollectFeedsTask{
		Task:       NewTask(TaskTypeCollectFeeds, section),
		URLs:       urls,
		builder:    builder,
		fetcher:    fetcher,
		parser:     parser,
		seen:       seen,
		skipFailed: skipFailed,
	}
}

func (t *CollectFeedsTask) Execute(ctx context.Context) error {
	groups := make([]digest.FeedGroup, 0, len(t.URLs))
	total := 0
	duplicates := 0
	skipped := 0

	for _, url := range t.URLs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		group, items, err := t.collect(ctx, url)
		if err != nil {
			if t.skipFailed {
				slog.Warn("Skipping failed source", "section", digest.ASCII(t.Section), "url", url, "error", err)
				skipped++
				continue
			}
			return err
		}

		fresh, updated := digest.FilterNew(items, *t.seen)
		*t.seen = updated

		total += len(items)
		duplicates += len(items) - len(fresh)

		slog.Debug("Feed collected", "journal", digest.ASCII(group), "url", url, "total", len(items), "new", len(fresh))

		groups = append(groups, digest.FeedGroup{Label: group, Items: fresh})
	}

	digest.AddFeedGroups(t.builder, groups)

	slog.Info("Task completed",
		"type", string(t.Type),
		"section", digest.ASCII(t.Section),
		"duration", t.GetDuration(),
		"feeds", len(t.URLs),
		"skipped", skipped,
		"total", total,
		"duplicates", duplicates,
		"new", total-duplicates)

	return nil
}

func (t *CollectFeedsTask) collect(ctx context.Context, url string) (string, []digest.Item, error) {
	data, err := t.fetcher.Run(ctx, digest.SourceFeed, url)
	if err != nil {
		return "", nil, err
	}

	metadata, entries, err := t.parser.Run(data)
	if err != nil {
		return "", nil, &digest.SourceError{Kind: digest.SourceFeed, URL: url, Err: err}
	}

	group, items := digest.NormalizeFeed(metadata.Title, entries)
	return group, items, nil
}
