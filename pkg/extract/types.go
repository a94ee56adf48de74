package extract

// Canonical field names shared by every configured source.
const (
	FieldTicker  = "ticker"
	FieldCompany = "company"
	FieldSector  = "sector"
	FieldCountry = "country"
)

// RequiredFields are the canonical fields every source must map.
// Country stays optional: some indices never publish it.
var RequiredFields = []string{FieldTicker, FieldCompany, FieldSector}

// SourceConfig describes how to extract one index from its page.
// Immutable once loaded by the registry.
type SourceConfig struct {
	Name        string
	URL         string
	TableIndex  int
	Columns     map[string][]string // canonical field -> accepted raw header spellings; [""] marks the field not applicable
	ExpectedMin int
	ExpectedMax int
}

// Optional reports whether the field is configured as not applicable
// for this source (empty-string alias sentinel).
func (c SourceConfig) Optional(field string) bool {
	aliases, ok := c.Columns[field]
	if !ok {
		return true
	}
	for _, a := range aliases {
		if a == "" {
			return true
		}
	}
	return false
}

// RawTable is one table lifted off a fetched page: an ordered header
// row plus rows of cell text keyed by raw header.
type RawTable struct {
	Headers []string
	Rows    []map[string]string
}

// CanonicalRecord is one constituent row mapped to the canonical schema.
type CanonicalRecord struct {
	Ticker  string
	Company string
	Sector  string
	Country string
}

// Status represents the per-source outcome of an extraction run
// @enum success,partial_success,failed
type Status string

const (
	StatusSuccess Status = "success"         // all checks clean
	StatusPartial Status = "partial_success" // records usable, issues present
	StatusFailed  Status = "failed"          // no usable records
)

// IssueKind classifies a validation issue.
type IssueKind string

const (
	IssueRowCountOutOfRange IssueKind = "row_count_out_of_range"
	IssueMissingColumn      IssueKind = "missing_column"
	IssueDuplicateTicker    IssueKind = "duplicate_ticker"
	IssueEmptyRequiredField IssueKind = "empty_required_field"
)

// ValidationIssue is one actionable discrepancy found during
// mapping or validation. Accumulated, never mutated.
type ValidationIssue struct {
	Kind   IssueKind `json:"kind"`
	Field  string    `json:"field,omitempty"`
	Detail string    `json:"detail"`
}

// ExtractionResult is the per-source outcome. Built locally by the
// pipeline and never mutated after return.
type ExtractionResult struct {
	Source  string
	Status  Status
	Records []CanonicalRecord
	Issues  []ValidationIssue
	Err     error // set only for fatal per-source failures (fetch, locate)
}
