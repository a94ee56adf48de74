package registry

import (
	"errors"
	"testing"
)

const validConfig = `
sources:
  wikipedia:
    indices:
      DAX:
        url: https://en.wikipedia.org/wiki/DAX
        table_index: 4
        columns:
          ticker: ["Ticker", "Symbol"]
          company: ["Company"]
          sector: ["Prime Standard Sector", "Sector"]
          country: [""]
        expected_range: [35, 45]
      SP500:
        url: https://en.wikipedia.org/wiki/List_of_S%26P_500_companies
        columns:
          ticker: ["Symbol"]
          company: ["Security"]
          sector: ["GICS Sector"]
`

func TestParse_Valid(t *testing.T) {
	configs, err := Parse([]byte(validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(configs))
	}

	dax := configs["DAX"]
	if dax.TableIndex != 4 || dax.ExpectedMin != 35 || dax.ExpectedMax != 45 {
		t.Errorf("unexpected DAX config: %+v", dax)
	}
	if !dax.Optional("country") {
		t.Errorf("empty alias must mark country optional")
	}

	sp500 := configs["SP500"]
	if sp500.TableIndex != 0 {
		t.Errorf("table_index should default to 0, got %d", sp500.TableIndex)
	}
	if sp500.ExpectedMin != 0 || sp500.ExpectedMax != 9999 {
		t.Errorf("expected_range should default to [0, 9999], got [%d, %d]", sp500.ExpectedMin, sp500.ExpectedMax)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing url",
			yaml: `
sources:
  wikipedia:
    indices:
      DAX:
        columns:
          ticker: ["Ticker"]
          company: ["Company"]
          sector: ["Sector"]
`,
		},
		{
			name: "missing required alias",
			yaml: `
sources:
  wikipedia:
    indices:
      DAX:
        url: https://en.wikipedia.org/wiki/DAX
        columns:
          ticker: ["Ticker"]
          company: ["Company"]
`,
		},
		{
			name: "empty sentinel on required field",
			yaml: `
sources:
  wikipedia:
    indices:
      DAX:
        url: https://en.wikipedia.org/wiki/DAX
        columns:
          ticker: [""]
          company: ["Company"]
          sector: ["Sector"]
`,
		},
		{
			name: "inverted range",
			yaml: `
sources:
  wikipedia:
    indices:
      DAX:
        url: https://en.wikipedia.org/wiki/DAX
        columns:
          ticker: ["Ticker"]
          company: ["Company"]
          sector: ["Sector"]
        expected_range: [45, 35]
`,
		},
		{
			name: "malformed range",
			yaml: `
sources:
  wikipedia:
    indices:
      DAX:
        url: https://en.wikipedia.org/wiki/DAX
        columns:
          ticker: ["Ticker"]
          company: ["Company"]
          sector: ["Sector"]
        expected_range: [35]
`,
		},
		{
			name: "negative table index",
			yaml: `
sources:
  wikipedia:
    indices:
      DAX:
        url: https://en.wikipedia.org/wiki/DAX
        table_index: -1
        columns:
          ticker: ["Ticker"]
          company: ["Company"]
          sector: ["Sector"]
`,
		},
		{
			name: "no indices",
			yaml: `
sources:
  wikipedia:
    indices: {}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNames_Sorted(t *testing.T) {
	configs, err := Parse([]byte(validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := Names(configs)
	if len(names) != 2 || names[0] != "DAX" || names[1] != "SP500" {
		t.Errorf("expected sorted names [DAX SP500], got %v", names)
	}
}
