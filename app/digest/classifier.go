package digest

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// CallNumber derives the numeric shelf position of a catalog item. Ebooks
// and Dewey-classified books are not shelved by the local scheme and yield
// 0. A missing or unparsable call number also yields 0, together with
// ErrMalformedCallNumber.
func CallNumber(item Item) (float64, error) {
	if item.Kind == KindEbook || item.CallNumberScheme == DeweyScheme {
		return 0, nil
	}

	fields := strings.Fields(item.CallNumber)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: no call number", ErrMalformedCallNumber)
	}
	token := fields[0]

	if isDigits(token) {
		n, err := strconv.Atoi(token)
		if err == nil {
			return float64(n), nil
		}
	}

	n, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedCallNumber, token)
	}
	return n, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Classify returns the index of the first partition containing the item's
// call number. ok is false when the item belongs in the catch-all group,
// which is always the case for ebooks, Dewey-classified books and books
// whose call number could not be read.
func Classify(item Item, partitions []Partition) (index int, ok bool) {
	if item.Kind == KindEbook || item.CallNumberScheme == DeweyScheme {
		return -1, false
	}

	n, err := CallNumber(item)
	if err != nil {
		slog.Warn("Call number not usable, listing under "+OtherLabel,
			"title", ASCII(item.Title), "call_number", item.CallNumber, "error", err)
		return -1, false
	}

	for i, partition := range partitions {
		if partition.Contains(n) {
			return i, true
		}
	}
	return -1, false
}

// SeriesKey is the label an ebook is grouped under: the first segment of
// the series statement with the "Ser." abbreviation removed. All the
// criminology series are merged into one group. A statement that leaves
// nothing after cleanup counts as no series.
func SeriesKey(series string) string {
	key, _, _ := strings.Cut(series, ";")
	key = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(key), "Ser."))
	if key == "" {
		return NoSeriesLabel
	}

	if strings.Contains(strings.ToLower(key), "criminol") {
		return "Criminology"
	}
	return key
}
