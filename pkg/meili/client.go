package meili

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/meilisearch/meilisearch-go"

	"github.com/tobiasbuchner/StockChronicle/pkg/logger"
	"github.com/tobiasbuchner/StockChronicle/pkg/models"
)

const CompaniesIndex = "companies"

// CompanyDocument is the searchable projection of a constituent.
type CompanyDocument struct {
	ID         string `json:"id"`
	IndexName  string `json:"index_name"`
	Ticker     string `json:"ticker"`
	Company    string `json:"company"`
	Sector     string `json:"sector,omitempty"`
	Country    string `json:"country,omitempty"`
	IngestedAt string `json:"ingested_at"`
}

type Client struct {
	client meilisearch.ServiceManager
}

func New(url, apiKey string) (*Client, error) {
	client := meilisearch.New(url, meilisearch.WithAPIKey(apiKey))

	if _, err := client.Health(); err != nil {
		return nil, err
	}

	c := &Client{client: client}

	if err := c.setupIndexes(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) setupIndexes() error {
	log := logger.With("meili")

	_, err := c.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        CompaniesIndex,
		PrimaryKey: "id",
	})
	if err != nil {
		log.Debug().Str("index", CompaniesIndex).Msg("index already exists")
	} else {
		log.Info().Str("index", CompaniesIndex).Msg("index created")
	}

	index := c.client.Index(CompaniesIndex)

	searchable := []string{"ticker", "company"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		log.Warn().Err(err).Msg("failed to update searchable attributes")
	}

	filterable := []string{"index_name", "sector", "country"}
	filterableIface := make([]interface{}, len(filterable))
	for i, v := range filterable {
		filterableIface[i] = v
	}
	if _, err := index.UpdateFilterableAttributes(&filterableIface); err != nil {
		log.Warn().Err(err).Msg("failed to update filterable attributes")
	}

	log.Info().Str("index", CompaniesIndex).Msg("meilisearch index configured")
	return nil
}

// IndexCompanies upserts the search documents for one ingest run.
func (c *Client) IndexCompanies(companies []models.Company) error {
	if len(companies) == 0 {
		return nil
	}

	docs := make([]CompanyDocument, 0, len(companies))
	for _, company := range companies {
		docs = append(docs, CompanyDocument{
			ID:         company.IndexName + "-" + company.Ticker,
			IndexName:  company.IndexName,
			Ticker:     company.Ticker,
			Company:    company.Company,
			Sector:     company.Sector,
			Country:    company.Country,
			IngestedAt: company.IngestedAt.Format(time.RFC3339),
		})
	}

	pk := "id"
	if _, err := c.client.Index(CompaniesIndex).AddDocuments(docs, &pk); err != nil {
		return fmt.Errorf("index companies: %w", err)
	}
	return nil
}

// SearchResult carries the decoded hits of one query.
type SearchResult struct {
	Hits      []CompanyDocument `json:"hits"`
	TotalHits int64             `json:"totalHits"`
}

// Search queries companies by ticker or name, optionally filtered to
// one stock index.
func (c *Client) Search(query, indexName string, limit int64) (*SearchResult, error) {
	searchParams := &meilisearch.SearchRequest{
		Query: query,
		Limit: limit,
	}
	if indexName != "" {
		searchParams.Filter = fmt.Sprintf("index_name = %q", indexName)
	}

	resp, err := c.client.Index(CompaniesIndex).Search(query, searchParams)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{TotalHits: resp.EstimatedTotalHits}
	for _, hit := range resp.Hits {
		result.Hits = append(result.Hits, hitToCompanyDocument(hit))
	}
	return result, nil
}

func hitToCompanyDocument(hit interface{}) CompanyDocument {
	var doc CompanyDocument

	b, err := json.Marshal(hit)
	if err != nil {
		return doc
	}
	json.Unmarshal(b, &doc)
	return doc
}
