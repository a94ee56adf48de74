package extract

import (
	"fmt"
	"sort"
)

// Validate runs the post-mapping checks: row count against the
// configured range, then duplicate tickers. Duplicates are advisory:
// the offending records stay in the result set and the pipeline
// decides what the issues mean for the source's status.
func Validate(records []CanonicalRecord, cfg SourceConfig) []ValidationIssue {
	var issues []ValidationIssue

	if len(records) < cfg.ExpectedMin || len(records) > cfg.ExpectedMax {
		issues = append(issues, ValidationIssue{
			Kind: IssueRowCountOutOfRange,
			Detail: fmt.Sprintf("extracted %d rows, expected between %d and %d",
				len(records), cfg.ExpectedMin, cfg.ExpectedMax),
		})
	}

	byTicker := make(map[string]int)
	for _, rec := range records {
		byTicker[rec.Ticker]++
	}

	var dups []string
	for ticker, n := range byTicker {
		if n > 1 {
			dups = append(dups, ticker)
		}
	}
	sort.Strings(dups)
	for _, ticker := range dups {
		issues = append(issues, ValidationIssue{
			Kind:   IssueDuplicateTicker,
			Field:  FieldTicker,
			Detail: fmt.Sprintf("ticker %q appears %d times", ticker, byTicker[ticker]),
		})
	}

	return issues
}
