package extract

import (
	"strings"
	"testing"
)

func daxConfig() SourceConfig {
	return SourceConfig{
		Name:       "DAX",
		URL:        "https://en.wikipedia.org/wiki/DAX",
		TableIndex: 0,
		Columns: map[string][]string{
			FieldTicker:  {"Ticker", "Symbol"},
			FieldCompany: {"Company", "Security"},
			FieldSector:  {"Sector", "Prime Standard Sector"},
			FieldCountry: {""},
		},
		ExpectedMin: 35,
		ExpectedMax: 45,
	}
}

func tableWithRows(rows ...[3]string) RawTable {
	t := RawTable{Headers: []string{"Ticker", "Company", "Sector"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, map[string]string{
			"Ticker":  r[0],
			"Company": r[1],
			"Sector":  r[2],
		})
	}
	return t
}

func TestMapColumns_CleanTable(t *testing.T) {
	table := tableWithRows(
		[3]string{"SAP", "SAP SE", "Software"},
		[3]string{"SIE", "Siemens AG", "Industrials"},
	)

	records, issues := MapColumns(table, daxConfig())

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
	if records[0].Ticker != "SAP" || records[0].Company != "SAP SE" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
}

func TestMapColumns_CaseInsensitiveHeaders(t *testing.T) {
	table := RawTable{
		Headers: []string{"ticker", "COMPANY", " sector "},
		Rows: []map[string]string{
			{"ticker": "SAP", "COMPANY": "SAP SE", " sector ": "Software"},
		},
	}

	records, issues := MapColumns(table, daxConfig())

	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
	if len(records) != 1 || records[0].Sector != "Software" {
		t.Errorf("expected sector mapped through normalized header, got %+v", records)
	}
}

func TestMapColumns_EmptyTickerRowExcluded(t *testing.T) {
	table := tableWithRows(
		[3]string{"SAP", "SAP SE", "Software"},
		[3]string{"  ", "Ghost AG", "Unknown"},
		[3]string{"SIE", "Siemens AG", "Industrials"},
	)

	records, issues := MapColumns(table, daxConfig())

	if len(records) != 2 {
		t.Fatalf("expected excluded row, got %d records", len(records))
	}
	if len(issues) != 1 || issues[0].Kind != IssueEmptyRequiredField {
		t.Fatalf("expected exactly one EmptyRequiredField issue, got %v", issues)
	}
	if !strings.Contains(issues[0].Detail, "row 2") {
		t.Errorf("issue should name the offending row: %s", issues[0].Detail)
	}
}

func TestMapColumns_MissingRequiredColumn(t *testing.T) {
	table := RawTable{
		Headers: []string{"Ticker", "Company"},
		Rows: []map[string]string{
			{"Ticker": "SAP", "Company": "SAP SE"},
		},
	}

	records, issues := MapColumns(table, daxConfig())

	// Partial mapping still returns records for the fields that resolved.
	if len(records) != 1 {
		t.Fatalf("expected 1 record despite missing sector column, got %d", len(records))
	}
	if records[0].Sector != "" {
		t.Errorf("unmapped sector should stay empty, got %q", records[0].Sector)
	}

	var missing int
	for _, issue := range issues {
		if issue.Kind == IssueMissingColumn && issue.Field == FieldSector {
			missing++
		}
	}
	if missing != 1 {
		t.Errorf("expected one MissingColumn issue for sector, got %v", issues)
	}
}

func TestMapColumns_OptionalFieldOmittedSilently(t *testing.T) {
	// Country is configured with the empty-alias sentinel: absent from the
	// table and absent from the issues.
	table := tableWithRows([3]string{"SAP", "SAP SE", "Software"})

	records, issues := MapColumns(table, daxConfig())

	if len(issues) != 0 {
		t.Fatalf("optional country must not be flagged, got %v", issues)
	}
	if records[0].Country != "" {
		t.Errorf("country should be omitted, got %q", records[0].Country)
	}
}

func TestMapColumns_FirstAliasWins(t *testing.T) {
	table := RawTable{
		Headers: []string{"Symbol", "Ticker", "Company", "Sector"},
		Rows: []map[string]string{
			{"Symbol": "WRONG", "Ticker": "SAP", "Company": "SAP SE", "Sector": "Software"},
		},
	}

	records, _ := MapColumns(table, daxConfig())

	// "Ticker" is listed before "Symbol" in the alias order.
	if records[0].Ticker != "SAP" {
		t.Errorf("expected first alias in config order to win, got %q", records[0].Ticker)
	}
}
