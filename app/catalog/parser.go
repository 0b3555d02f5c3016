package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Run decodes a list export. A payload that is not a JSON array fails as a
// whole; a single malformed element is skipped with a warning.
func (p *Parser) Run(data []byte) ([]Record, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog list: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for i, element := range raw {
		var record Record
		if err := json.Unmarshal(element, &record); err != nil {
			slog.Warn("Skipping malformed catalog record", "index", i, "error", err)
			continue
		}
		records = append(records, record)
	}

	return records, nil
}
