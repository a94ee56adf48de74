package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tobiasbuchner/StockChronicle/pkg/extract"
	"github.com/tobiasbuchner/StockChronicle/pkg/htmltable"
)

// Fetcher retrieves a page over plain HTTP and parses its tables.
// Implements extract.TableFetcher.
type Fetcher struct {
	client   *http.Client
	selector string
}

func New(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		selector: htmltable.DefaultSelector,
	}
}

func (f *Fetcher) FetchTables(ctx context.Context, url string) ([]extract.RawTable, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Wikipedia serves full pages to any reasonable user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,de;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	tables, err := htmltable.Parse(resp.Body, f.selector)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return tables, nil
}
