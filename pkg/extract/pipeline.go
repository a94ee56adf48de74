package extract

import (
	"context"
	"sort"

	"github.com/tobiasbuchner/StockChronicle/pkg/logger"
)

// TableFetcher supplies the already-parsed tables of a page. Fetching
// and HTML parsing live outside the extraction core.
type TableFetcher interface {
	FetchTables(ctx context.Context, url string) ([]RawTable, error)
}

// Pipeline drives locate -> map -> validate per configured source.
type Pipeline struct {
	fetcher TableFetcher
}

func NewPipeline(fetcher TableFetcher) *Pipeline {
	return &Pipeline{fetcher: fetcher}
}

// Run extracts one source. Fatal problems (fetch failure, no matching
// table) produce a Failed result with Err set; recoverable mapping and
// validation issues degrade the status instead.
func (p *Pipeline) Run(ctx context.Context, cfg SourceConfig) ExtractionResult {
	log := logger.With("pipeline")

	tables, err := p.fetcher.FetchTables(ctx, cfg.URL)
	if err != nil {
		log.Error().Err(err).Str("source", cfg.Name).Msg("fetch failed")
		return ExtractionResult{Source: cfg.Name, Status: StatusFailed, Err: err}
	}

	table, err := Locate(tables, cfg)
	if err != nil {
		log.Error().Err(err).Str("source", cfg.Name).Int("tables", len(tables)).Msg("table not found")
		return ExtractionResult{Source: cfg.Name, Status: StatusFailed, Err: err}
	}

	records, issues := MapColumns(table, cfg)
	issues = append(issues, Validate(records, cfg)...)

	result := ExtractionResult{
		Source:  cfg.Name,
		Status:  deriveStatus(records, issues),
		Records: records,
		Issues:  issues,
	}

	log.Info().
		Str("source", cfg.Name).
		Str("status", string(result.Status)).
		Int("records", len(records)).
		Int("issues", len(issues)).
		Msg("source extracted")

	return result
}

// RunAll processes every configured source in name order. A failure in
// one source never aborts the others.
func (p *Pipeline) RunAll(ctx context.Context, sources map[string]SourceConfig) []ExtractionResult {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]ExtractionResult, 0, len(names))
	for _, name := range names {
		results = append(results, p.Run(ctx, sources[name]))
	}
	return results
}

// deriveStatus applies the status policy: no usable records or a
// missing ticker/company column means Failed, any other issue demotes
// to PartialSuccess.
func deriveStatus(records []CanonicalRecord, issues []ValidationIssue) Status {
	if len(records) == 0 {
		return StatusFailed
	}
	for _, issue := range issues {
		if issue.Kind == IssueMissingColumn && (issue.Field == FieldTicker || issue.Field == FieldCompany) {
			return StatusFailed
		}
	}
	if len(issues) > 0 {
		return StatusPartial
	}
	return StatusSuccess
}
