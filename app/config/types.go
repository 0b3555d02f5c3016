package config

// Config is the digest definition: what goes into the newsletter and in
// which order.
type Config struct {
	Title       string        `yaml:"title"`
	ProxyPrefix string        `yaml:"proxy_prefix"`
	Link        string        `yaml:"link"`
	Catalog     CatalogPolicy `yaml:"catalog"`
	Sections    []Section     `yaml:"sections"`
}

// CatalogPolicy controls which catalog records count as new acquisitions.
type CatalogPolicy struct {
	MaxAgeYears          int      `yaml:"max_age_years"`
	ExcludedLocations    []string `yaml:"excluded_locations"`
	EbooksBypassLocation *bool    `yaml:"ebooks_bypass_location"`
}

// Section is one top-level heading of the digest. Exactly one of Catalog and
// Feeds is set.
type Section struct {
	Label   string         `yaml:"label"`
	Catalog *CatalogSource `yaml:"catalog"`
	Feeds   []string       `yaml:"feeds"`
}

type CatalogSource struct {
	URL     string `yaml:"url"` // may contain {days}
	GroupBy string `yaml:"group_by"`
}

const (
	GroupBySeries     = "series"
	GroupByPartitions = "partitions"
	GroupByFlat       = "flat"
)
