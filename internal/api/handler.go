package api

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/tobiasbuchner/StockChronicle/internal/ingest"
	"github.com/tobiasbuchner/StockChronicle/internal/repo"
	"github.com/tobiasbuchner/StockChronicle/pkg/logger"
	"github.com/tobiasbuchner/StockChronicle/pkg/meili"
)

type Handler struct {
	ingestSvc *ingest.Service
	companies *repo.CompanyRepo
	search    *meili.Client // optional
}

func NewHandler(ingestSvc *ingest.Service, companies *repo.CompanyRepo, search *meili.Client) *Handler {
	return &Handler{ingestSvc: ingestSvc, companies: companies, search: search}
}

func (h *Handler) SetupRoutes(app *fiber.App) {
	app.Get("/health", h.handleHealth)
	app.Get("/api/companies", h.handleCompanies)
	app.Get("/api/search", h.handleSearch)
	app.Post("/api/ingest", h.handleIngest)
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"search": h.search != nil,
	})
}

// handleCompanies lists stored constituents for one index.
func (h *Handler) handleCompanies(c *fiber.Ctx) error {
	indexName := c.Query("index")
	if indexName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "index query parameter is required"})
	}

	companies, err := h.companies.FindByIndex(c.Context(), indexName)
	if err != nil {
		log := logger.With("api")
		log.Error().Err(err).Str("index", indexName).Msg("list companies failed")
		return c.Status(500).JSON(fiber.Map{"error": "storage unavailable"})
	}

	return c.JSON(fiber.Map{
		"index":     indexName,
		"count":     len(companies),
		"companies": companies,
	})
}

// handleSearch queries the search index by ticker or company name.
func (h *Handler) handleSearch(c *fiber.Ctx) error {
	if h.search == nil {
		return c.Status(503).JSON(fiber.Map{"error": "search is not configured"})
	}

	query := c.Query("q")
	if query == "" {
		return c.Status(400).JSON(fiber.Map{"error": "q query parameter is required"})
	}

	limit := int64(c.QueryInt("limit", 20))
	result, err := h.search.Search(query, c.Query("index"), limit)
	if err != nil {
		log := logger.With("api")
		log.Error().Err(err).Str("q", query).Msg("search failed")
		return c.Status(500).JSON(fiber.Map{"error": "search unavailable"})
	}

	return c.JSON(result)
}

// handleIngest triggers a full registry run in the background and
// returns immediately.
func (h *Handler) handleIngest(c *fiber.Ctx) error {
	go func() {
		report := h.ingestSvc.Run(context.Background())
		log := logger.With("api")
		log.Info().
			Int("succeeded", report.Report.Succeeded).
			Int("failed", report.Report.Failed).
			Msg("manual ingest finished")
	}()

	return c.Status(202).JSON(fiber.Map{"status": "ingest started"})
}
