package database

import (
	"time"
)

// Digest is a rendered newsletter kept in the archive
type Digest struct {
	ID           string // UUID
	Title        string
	HTML         string
	RSS          string
	ItemCount    int
	SectionCount int
	CreatedAt    time.Time
}

const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}
