package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchTables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<table class="wikitable">
		<tr><th>Ticker</th><th>Company</th></tr>
		<tr><td>SAP</td><td>SAP SE</td></tr>
		</table>`))
	}))
	defer srv.Close()

	tables, err := New(5 * time.Second).FetchTables(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(tables) != 1 || tables[0].Rows[0]["Ticker"] != "SAP" {
		t.Errorf("unexpected tables: %v", tables)
	}
}

func TestFetchTables_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := New(5 * time.Second).FetchTables(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error on 503")
	}
}
