//go:build e2e
// +build e2e

package repo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tobiasbuchner/StockChronicle/internal/repo"
	"github.com/tobiasbuchner/StockChronicle/pkg/models"
)

func setupMongo(t *testing.T, ctx context.Context) (*repo.CompanyRepo, func()) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start mongo container")

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	url := fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	companyRepo, err := repo.NewCompanyRepo(url, "stockchronicle_test")
	require.NoError(t, err, "failed to create company repo")

	cleanup := func() {
		companyRepo.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return companyRepo, cleanup
}

func TestCompanyRepo_UpsertIsIdempotent(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	companyRepo, cleanup := setupMongo(t, ctx)
	defer cleanup()

	now := time.Now().UTC().Truncate(time.Millisecond)
	company := models.Company{
		IndexName:  "DAX",
		Ticker:     "SAP",
		Company:    "SAP SE",
		Sector:     "Software",
		IngestedAt: now,
	}

	require.NoError(t, companyRepo.Upsert(ctx, &company))
	firstID := company.ID

	// Second run of the same source must update in place, not duplicate.
	company.Sector = "Information Technology"
	company.IngestedAt = now.Add(24 * time.Hour)
	require.NoError(t, companyRepo.Upsert(ctx, &company))
	assert.Equal(t, firstID, company.ID)

	stored, err := companyRepo.FindByIndex(ctx, "DAX")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Information Technology", stored[0].Sector)
}

func TestCompanyRepo_QueriesAndCounts(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	companyRepo, cleanup := setupMongo(t, ctx)
	defer cleanup()

	now := time.Now().UTC()
	seed := []models.Company{
		{IndexName: "DAX", Ticker: "SAP", Company: "SAP SE", IngestedAt: now},
		{IndexName: "DAX", Ticker: "SIE", Company: "Siemens AG", IngestedAt: now},
		{IndexName: "SP500", Ticker: "SAP", Company: "SAP SE (ADR)", IngestedAt: now},
	}
	written, err := companyRepo.UpsertAll(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, 3, written)

	byTicker, err := companyRepo.FindByTicker(ctx, "SAP")
	require.NoError(t, err)
	assert.Len(t, byTicker, 2, "same ticker may appear in several indices")

	counts, err := companyRepo.CountByIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["DAX"])
	assert.Equal(t, int64(1), counts["SP500"])
}
