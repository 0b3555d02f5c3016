package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jurbib/digest/app/catalog"
	"github.com/jurbib/digest/app/feed"
)

// JournalTitle extracts the journal name from a channel title of the form
// "Publisher: Journal Name". When there is no colon the raw title is
// returned together with ErrMalformedChannelTitle so the caller can still
// group the entries under it.
func JournalTitle(channelTitle string) (string, error) {
	_, journal, found := strings.Cut(channelTitle, ":")
	journal = strings.TrimSpace(journal)
	if !found || journal == "" {
		return strings.TrimSpace(channelTitle), fmt.Errorf("%w: %q", ErrMalformedChannelTitle, channelTitle)
	}
	return journal, nil
}

func NormalizeEntry(group string, entry feed.Entry) (Item, error) {
	if entry.Title == "" {
		return Item{}, errors.New("entry has no title")
	}
	if entry.Link == "" {
		return Item{}, errors.New("entry has no link")
	}

	return Item{
		ID:           entry.Link,
		Title:        entry.Title,
		Kind:         KindFeed,
		SourceGroup:  group,
		Link:         entry.Link,
		Summary:      strings.ReplaceAll(entry.Description, "<br />", ""),
		Published:    entry.PublishedAt,
		PublishedRaw: entry.Published,
	}, nil
}

// NormalizeFeed turns one parsed feed into its group label and items.
// Entries that cannot be normalized are skipped with a warning.
func NormalizeFeed(channelTitle string, entries []feed.Entry) (string, []Item) {
	group, err := JournalTitle(channelTitle)
	if err != nil {
		slog.Warn("Channel title has no journal part, using it as is", "title", ASCII(channelTitle), "error", err)
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		item, err := NormalizeEntry(group, entry)
		if err != nil {
			slog.Warn("Skipping feed entry", "journal", ASCII(group), "title", ASCII(entry.Title), "link", entry.Link, "error", err)
			continue
		}
		items = append(items, item)
	}
	return group, items
}

func NormalizeRecord(source string, record catalog.Record) (Item, error) {
	title := strings.TrimSpace(record.Title)
	if title == "" {
		return Item{}, errors.New("record has no title")
	}

	item := Item{
		ID:               catalogID(title, record.Edition),
		Title:            title,
		Kind:             KindBook,
		SourceGroup:      source,
		Link:             record.PrimoLink,
		Author:           record.Author,
		Series:           record.Series,
		Edition:          record.Edition,
		PublicationDate:  record.PublicationDate.String(),
		CallNumber:       record.PermanentCallNumber,
		CallNumberScheme: record.PermanentCallNumberType,
		Location:         record.LocationName,
		SelfLink:         record.SelfLink,
	}

	if strings.TrimSpace(record.ItemID.String()) == "" {
		item.Kind = KindEbook
	}

	if year, ok := record.PublicationDate.Int(); ok {
		item.PublicationYear = &year
	}

	return item, nil
}

// NormalizeRecords normalizes a catalog list. Records that cannot be
// normalized are skipped with a warning.
func NormalizeRecords(source string, records []catalog.Record) []Item {
	items := make([]Item, 0, len(records))
	for _, record := range records {
		item, err := NormalizeRecord(source, record)
		if err != nil {
			slog.Warn("Skipping catalog record", "source", ASCII(source), "link", record.SelfLink, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items
}

// catalogID derives a stable key from the fields that identify a
// manifestation, since the export has no universal identifier.
func catalogID(title, edition string) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%s", title, edition)))
	return hex.EncodeToString(hash[:])
}
