package api

import (
	"github.com/jurbib/digest/app/database"
)

type Handler struct {
	digestRepo database.DigestRepository
	seenRepo   database.SeenRepository
	version    string
}

// digestSummary is the listing view of an archived digest, without its body.
type digestSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CreatedAt    string `json:"created_at"`
	ItemCount    int    `json:"item_count"`
	SectionCount int    `json:"section_count"`
	HTML         string `json:"html"`
	RSS          string `json:"rss"`
}
