package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/basketwise/backend/internal/domain"
	"github.com/basketwise/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	quotes    domain.QuoteRepository
	optimizer *usecase.BasketOptimizer
	defaults  OptimizerDefaults
	logger    *slog.Logger
}

// OptimizerDefaults are applied when a meal-plan request omits tuning knobs.
type OptimizerDefaults struct {
	MinProteinVariety int
	MaxPerItemUnits   float64
}

// NewHandler creates a new HTTP handler
func NewHandler(quotes domain.QuoteRepository, optimizer *usecase.BasketOptimizer, defaults OptimizerDefaults, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		quotes:    quotes,
		optimizer: optimizer,
		defaults:  defaults,
		logger:    logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "basketwise-backend",
		"version": "1.0.0",
	})
}

// GetPrices lists fresh price quotes for a city, optionally filtered by
// category and store.
func (h *Handler) GetPrices(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city query parameter is required"})
		return
	}

	filter := domain.QuoteFilter{
		City:     city,
		Category: c.Query("category"),
		Store:    c.Query("store"),
	}

	quotes, err := h.quotes.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Quote listing failed", "error", err, "city", city)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list prices"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prices":     quotes,
		"totalCount": len(quotes),
		"city":       city,
		"category":   filter.Category,
	})
}

// rawQuoteRequest is one scraped price observation before normalization.
type rawQuoteRequest struct {
	ProductName string `json:"productName" binding:"required"`
	Price       string `json:"price" binding:"required"`
	Unit        string `json:"unit"`
	Currency    string `json:"currency" binding:"required"`
	Store       string `json:"store" binding:"required"`
	City        string `json:"city" binding:"required"`
	Category    string `json:"category"`
}

// IngestPrices normalizes raw price/unit strings and stores the resulting
// quotes. Quotes whose price cannot be parsed are dropped with a warning,
// never defaulted into the store.
func (h *Handler) IngestPrices(c *gin.Context) {
	var raw []rawQuoteRequest
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingested, dropped := 0, 0
	for _, r := range raw {
		normalized, ok := usecase.Normalize(r.Price, r.Unit)
		if !ok {
			h.logger.Warn("Dropping malformed quote",
				"product", r.ProductName,
				"price", r.Price,
				"unit", r.Unit,
				"store", r.Store,
			)
			dropped++
			continue
		}

		quote := domain.PriceQuote{
			ProductName:    r.ProductName,
			NormalizedName: strings.ToLower(strings.TrimSpace(r.ProductName)),
			Price:          normalized.Price,
			Currency:       strings.ToUpper(r.Currency),
			Unit:           normalized.Unit,
			PricePerUnit:   normalized.PricePerUnit,
			Store:          strings.ToLower(r.Store),
			City:           strings.ToLower(r.City),
			Category:       strings.ToLower(r.Category),
			ScrapedAt:      time.Now().UTC(),
		}
		if err := h.quotes.Upsert(c.Request.Context(), quote); err != nil {
			h.logger.Error("Quote upsert failed", "error", err, "product", r.ProductName)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store quotes"})
			return
		}
		ingested++
	}

	c.JSON(http.StatusOK, gin.H{
		"ingested": ingested,
		"dropped":  dropped,
	})
}

// calorieBoundsRequest is an optional daily calorie band.
type calorieBoundsRequest struct {
	MinPerDay float64 `json:"minPerDay" binding:"required,gt=0"`
	MaxPerDay float64 `json:"maxPerDay" binding:"required,gtefield=MinPerDay"`
}

// mealPlanRequest asks for an optimized weekly basket for a city.
type mealPlanRequest struct {
	Budget            float64               `json:"budget" binding:"required,gt=0"`
	Currency          string                `json:"currency" binding:"required,len=3"`
	City              string                `json:"city" binding:"required"`
	MinProteinVariety int                   `json:"minProteinVariety"`
	MaxPerItemUnits   float64               `json:"maxPerItemUnits"`
	CategoryMax       map[string]float64    `json:"categoryMax"`
	CalorieBounds     *calorieBoundsRequest `json:"calorieBounds"`
}

// CreateMealPlan runs the basket optimizer over the stored quotes for a
// city. Every optimizer outcome, including infeasible ones, is returned as
// a structured result with HTTP 200.
func (h *Handler) CreateMealPlan(c *gin.Context) {
	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quotes, err := h.quotes.List(c.Request.Context(), domain.QuoteFilter{City: req.City})
	if err != nil {
		h.logger.Error("Quote listing failed", "error", err, "city", req.City)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list prices"})
		return
	}

	optimizeReq := usecase.OptimizeRequest{
		Budget:            req.Budget,
		Currency:          req.Currency,
		MinProteinVariety: req.MinProteinVariety,
		MaxPerItemUnits:   req.MaxPerItemUnits,
		CategoryMax:       req.CategoryMax,
	}
	if optimizeReq.MinProteinVariety == 0 {
		optimizeReq.MinProteinVariety = h.defaults.MinProteinVariety
	}
	if optimizeReq.MaxPerItemUnits == 0 {
		optimizeReq.MaxPerItemUnits = h.defaults.MaxPerItemUnits
	}
	if req.CalorieBounds != nil {
		optimizeReq.CalorieBounds = &usecase.CalorieBounds{
			MinPerDay: req.CalorieBounds.MinPerDay,
			MaxPerDay: req.CalorieBounds.MaxPerDay,
		}
	}

	result := h.optimizer.Optimize(c.Request.Context(), quotes, optimizeReq)

	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"city":   req.City,
	})
}
