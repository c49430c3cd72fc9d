package builder

import (
	"strings"

	"github.com/spf13/cast"
)

// RowFilter decides whether a row (values keyed by column key) matches a
// free-text search query.
type RowFilter func(row map[string]any, filterText string) bool

// SearchableKeys returns the default set of globally searchable columns:
// every column of kind text. Callers may narrow this interactively.
func SearchableKeys(cfg BuilderConfig) []string {
	var keys []string
	for _, c := range cfg.Columns {
		if c.Kind == KindText {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// GlobalFilter builds the row predicate behind the preview's search box.
// An empty filter text matches everything. Otherwise the text is matched
// case-insensitively as a substring against the stringified value of each
// enabled column, short-circuiting on the first hit.
func GlobalFilter(cfg BuilderConfig, enabledKeys []string) RowFilter {
	enabled := make(map[string]bool, len(enabledKeys))
	for _, k := range enabledKeys {
		enabled[k] = true
	}
	// Walk columns rather than the enabled set so match order is stable.
	keys := make([]string, 0, len(enabledKeys))
	for _, c := range cfg.Columns {
		if enabled[c.Key] {
			keys = append(keys, c.Key)
		}
	}
	return func(row map[string]any, filterText string) bool {
		if filterText == "" {
			return true
		}
		query := strings.ToLower(filterText)
		for _, key := range keys {
			val, ok := row[key]
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(cast.ToString(val)), query) {
				return true
			}
		}
		return false
	}
}
