package extract

import (
	"errors"
	"testing"
)

func TestLocate_PositionalHit(t *testing.T) {
	tables := []RawTable{
		{Headers: []string{"Ticker", "Company", "Sector"}},
		{Headers: []string{"Date", "Event"}},
	}

	got, err := Locate(tables, daxConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Headers[0] != "Ticker" {
		t.Errorf("expected table 0, got headers %v", got.Headers)
	}
}

func TestLocate_FallbackWhenIndexDrifts(t *testing.T) {
	// Configured index points at an unrelated table; the scan must find
	// the constituents table further down the page.
	tables := []RawTable{
		{Headers: []string{"Date", "Event"}},
		{Headers: []string{"Ticker", "Company", "Sector"}},
	}

	got, err := Locate(tables, daxConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Headers[0] != "Ticker" {
		t.Errorf("fallback should select the matching table, got %v", got.Headers)
	}
}

func TestLocate_FallbackNeedsMoreThanTicker(t *testing.T) {
	// A lone ticker column is not enough evidence: index pages carry
	// ticker-bearing price tables that are not the constituents list.
	tables := []RawTable{
		{Headers: []string{"Date", "Event"}},
		{Headers: []string{"Ticker", "Price"}},
	}

	_, err := Locate(tables, daxConfig())
	if !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}
}

func TestLocate_NoTables(t *testing.T) {
	_, err := Locate(nil, daxConfig())
	if !errors.Is(err, ErrNoTables) {
		t.Fatalf("expected ErrNoTables, got %v", err)
	}
}

func TestLocate_IndexOutOfRangeFallsBack(t *testing.T) {
	cfg := daxConfig()
	cfg.TableIndex = 7

	tables := []RawTable{
		{Headers: []string{"Ticker", "Company", "Sector"}},
	}

	got, err := Locate(tables, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Headers[0] != "Ticker" {
		t.Errorf("expected fallback hit, got %v", got.Headers)
	}
}
