package catalog

import (
	"errors"

	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/woocommerce"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Post("/sync", h.HandleSync)
	group.Get("/sync/plan", h.HandlePlan)
	group.Get("/sync/history", h.HandleHistory)
	group.Get("/stats", h.HandleStats)
	group.Get("/products", h.HandleProducts)
	group.Get("/categories", h.HandleCategories)
}

// HandleSync runs a synchronization now.
// @Summary Trigger Synchronization
// @Description Pull the WooCommerce catalog and converge the local mirror. Joins a run already in progress.
// @Tags catalog
// @Produce json
// @Success 200 {object} reconcile.Report "Sync Report"
// @Failure 409 {object} map[string]string "Run in progress on another instance"
// @Failure 502 {object} map[string]string "Remote catalog failure"
// @Failure 500 {object} map[string]interface{} "Mirror write failure"
// @Security ApiKeyAuth
// @Router /catalog/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Synchronization requested")

	report, err := h.service.Synchronize(c.UserContext())
	if err == nil {
		return c.JSON(report)
	}

	var (
		fetchErr *woocommerce.RemoteFetchError
		writeErr *reconcile.StorageWriteError
	)
	switch {
	case errors.Is(err, reconcile.ErrRunInProgress):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &fetchErr):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &writeErr):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  err.Error(),
			"phase":  writeErr.Phase,
			"report": report,
		})
	default:
		l.Error("Synchronization failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// HandlePlan returns what a synchronization would do.
// @Summary Dry-Run Plan
// @Description Compute inserts, updates and deletes without writing. Pass detail=true for per-record actions.
// @Tags catalog
// @Produce json
// @Param detail query bool false "Include per-record actions"
// @Success 200 {object} reconcile.Plan "Plan"
// @Failure 502 {object} map[string]string "Remote catalog failure"
// @Security ApiKeyAuth
// @Router /catalog/sync/plan [get]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	plan, err := h.service.Plan(c.UserContext())
	if err != nil {
		l.Error("Plan failed", zap.Error(err))
		status := fiber.StatusInternalServerError
		var fetchErr *woocommerce.RemoteFetchError
		if errors.As(err, &fetchErr) {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	if !c.QueryBool("detail") {
		return c.JSON(fiber.Map{
			"adapter":      plan.Adapter,
			"summary":      plan.Summary,
			"skipped_keys": plan.SkippedKeys,
		})
	}
	return c.JSON(plan)
}

// HandleHistory returns archived reports.
// @Summary Sync History
// @Description Archived sync reports, newest first.
// @Tags catalog
// @Produce json
// @Param limit query int false "Maximum reports" default(20)
// @Success 200 {array} reconcile.Report "Reports"
// @Failure 404 {object} map[string]string "Archive disabled"
// @Security ApiKeyAuth
// @Router /catalog/sync/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	reports, err := h.service.History(c.UserContext(), c.QueryInt("limit", 20))
	if errors.Is(err, ErrArchiveDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("History lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(reports)
}

// HandleStats compares mirror and remote.
// @Summary Catalog Stats
// @Description Mirror size, remote size, category count and the last report.
// @Tags catalog
// @Produce json
// @Success 200 {object} Stats "Stats"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /catalog/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Stats failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

// HandleProducts lists mirrored products.
// @Summary List Products
// @Description Mirrored products with decoded categories, optionally filtered by category name.
// @Tags catalog
// @Produce json
// @Param category query string false "Case-insensitive category name or slug fragment"
// @Success 200 {array} models.ProductView "Products"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /catalog/products [get]
func (h *Handler) HandleProducts(c *fiber.Ctx) error {
	products, err := h.service.Products(c.UserContext(), c.Query("category"))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Product listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(products)
}

// HandleCategories lists distinct categories.
// @Summary List Categories
// @Description Distinct categories across the mirror, sorted by name.
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Category "Categories"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /catalog/categories [get]
func (h *Handler) HandleCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Category listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(categories)
}
