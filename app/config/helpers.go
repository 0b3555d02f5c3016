package config

import (
	"strconv"
	"strings"
)

// URLFor returns the catalog URL for a listing covering the last days days.
func (s *CatalogSource) URLFor(days int) string {
	return strings.ReplaceAll(s.URL, "{days}", strconv.Itoa(days))
}

func (p *CatalogPolicy) BypassLocationForEbooks() bool {
	if p.EbooksBypassLocation == nil {
		return true
	}
	return *p.EbooksBypassLocation
}
