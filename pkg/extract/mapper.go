package extract

import (
	"fmt"
	"strings"
)

// normalizeHeader folds case and collapses interior whitespace so that
// "Ticker symbol", " ticker  Symbol " and "TICKER SYMBOL" compare equal.
func normalizeHeader(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// resolveHeaders maps each canonical field to the first table header
// matching one of its aliases. Empty-string aliases are the
// not-applicable sentinel and never match anything.
func resolveHeaders(table RawTable, cfg SourceConfig) map[string]string {
	resolved := make(map[string]string)
	for field, aliases := range cfg.Columns {
		for _, alias := range aliases {
			if alias == "" {
				continue
			}
			for _, header := range table.Headers {
				if normalizeHeader(header) == normalizeHeader(alias) {
					resolved[field] = header
					break
				}
			}
			if _, ok := resolved[field]; ok {
				break
			}
		}
	}
	return resolved
}

// MapColumns resolves the table's raw headers against the configured
// aliases and emits one CanonicalRecord per usable row.
//
// A required field with no matching header produces a MissingColumn
// issue but mapping still proceeds for the fields that did resolve.
// Rows whose ticker cell is empty are excluded and reported, never
// silently dropped.
func MapColumns(table RawTable, cfg SourceConfig) ([]CanonicalRecord, []ValidationIssue) {
	resolved := resolveHeaders(table, cfg)

	var issues []ValidationIssue
	for _, field := range RequiredFields {
		if _, ok := resolved[field]; ok {
			continue
		}
		if cfg.Optional(field) {
			continue
		}
		issues = append(issues, ValidationIssue{
			Kind:   IssueMissingColumn,
			Field:  field,
			Detail: fmt.Sprintf("no header matched aliases %v", cfg.Columns[field]),
		})
	}

	records := make([]CanonicalRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		rec := CanonicalRecord{
			Ticker:  cellFor(row, resolved, FieldTicker),
			Company: cellFor(row, resolved, FieldCompany),
			Sector:  cellFor(row, resolved, FieldSector),
			Country: cellFor(row, resolved, FieldCountry),
		}

		if _, tickerMapped := resolved[FieldTicker]; tickerMapped && strings.TrimSpace(rec.Ticker) == "" {
			issues = append(issues, ValidationIssue{
				Kind:   IssueEmptyRequiredField,
				Field:  FieldTicker,
				Detail: fmt.Sprintf("row %d has an empty ticker cell, row excluded", i+1),
			})
			continue
		}

		records = append(records, rec)
	}

	return records, issues
}

func cellFor(row map[string]string, resolved map[string]string, field string) string {
	header, ok := resolved[field]
	if !ok {
		return ""
	}
	return strings.TrimSpace(row[header])
}
