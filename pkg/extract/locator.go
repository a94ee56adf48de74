package extract

import "fmt"

// Locate selects the table described by the source config.
//
// The configured positional index is tried first. Page layouts drift,
// so a positional hit is only trusted when its headers intersect the
// configured aliases; otherwise every table is scanned and the first
// one matching the ticker alias set plus one more required field wins.
func Locate(tables []RawTable, cfg SourceConfig) (RawTable, error) {
	if len(tables) == 0 {
		return RawTable{}, fmt.Errorf("%s: %w", cfg.URL, ErrNoTables)
	}

	if cfg.TableIndex >= 0 && cfg.TableIndex < len(tables) {
		candidate := tables[cfg.TableIndex]
		if headerOverlap(candidate, cfg) > 0 {
			return candidate, nil
		}
	}

	for _, table := range tables {
		if matchesField(table, cfg, FieldTicker) && overlapBeyondTicker(table, cfg) {
			return table, nil
		}
	}

	return RawTable{}, fmt.Errorf("%s: %w", cfg.URL, ErrTableNotFound)
}

// headerOverlap counts configured canonical fields that have at least
// one alias present in the table headers.
func headerOverlap(table RawTable, cfg SourceConfig) int {
	n := 0
	for field := range cfg.Columns {
		if matchesField(table, cfg, field) {
			n++
		}
	}
	return n
}

func overlapBeyondTicker(table RawTable, cfg SourceConfig) bool {
	for _, field := range RequiredFields {
		if field == FieldTicker {
			continue
		}
		if matchesField(table, cfg, field) {
			return true
		}
	}
	return false
}

func matchesField(table RawTable, cfg SourceConfig, field string) bool {
	for _, alias := range cfg.Columns[field] {
		if alias == "" {
			continue
		}
		for _, header := range table.Headers {
			if normalizeHeader(header) == normalizeHeader(alias) {
				return true
			}
		}
	}
	return false
}
