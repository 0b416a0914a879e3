package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"crossborder/internal/middleware"
	"crossborder/internal/pricing"
	"crossborder/internal/service"
	"crossborder/pkg/response"
)

type PricingHandler struct {
	pricingService service.PricingService
}

func NewPricingHandler(pricingService service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

func (h *PricingHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/pricing")
	{
		group.POST("/classify", h.Classify)
		group.POST("/calculate", h.Calculate)
		group.POST("/verify", middleware.RequireRole("admin", "manager"), h.Verify)
	}
}

// --- Request DTOs ---

type ClassifyRequest struct {
	Text         string `json:"text" binding:"required"`
	CategoryHint string `json:"category_hint"`
}

type CalculateRequest struct {
	Cost               float64 `json:"cost" binding:"required,gt=0"`
	WeightKg           float64 `json:"weight_kg" binding:"required,gt=0"`
	LengthCm           float64 `json:"length_cm"`
	WidthCm            float64 `json:"width_cm"`
	HeightCm           float64 `json:"height_cm"`
	DestinationCountry string  `json:"destination_country" binding:"required"`
	OriginCountry      string  `json:"origin_country" binding:"required"`
	Description        string  `json:"description"`
	CategoryHint       string  `json:"category_hint"`
	TariffCodeOverride string  `json:"tariff_code_override"`
	MarketplaceTier    string  `json:"marketplace_tier"`
	RefundableFees     float64 `json:"refundable_fees"`
}

type VerifyRequest struct {
	Weights            []float64 `json:"weights"`
	Costs              []float64 `json:"costs"`
	DestinationCountry string    `json:"destination_country"`
	OriginCountry      string    `json:"origin_country"`
	Description        string    `json:"description"`
	CategoryHint       string    `json:"category_hint"`
	MarketplaceTier    string    `json:"marketplace_tier"`
}

// @Summary      Classify item against the tariff schedule
// @Description  Returns ranked harmonized tariff code candidates for a listing title/description
// @Tags         Pricing
// @Accept       json
// @Produce      json
// @Param        request body ClassifyRequest true "Item text and optional category hint"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response "No tariff candidates found"
// @Router       /api/pricing/classify [post]
func (h *PricingHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	candidates, err := h.pricingService.Classify(c.Request.Context(), req.Text, req.CategoryHint)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.EngineError(status, err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, candidates))
}

// @Summary      Calculate cross-border sale price
// @Description  Solves for a sale price satisfying the configured margin after marketplace fees, shipping and import duty
// @Tags         Pricing
// @Accept       json
// @Produce      json
// @Param        request body CalculateRequest true "Item cost, weight and route"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response "No compatible shipping policy"
// @Failure      422 {object} response.Response "Margin configuration leaves no feasible price"
// @Failure      503 {object} response.Response "Catalog snapshot unavailable"
// @Router       /api/pricing/calculate [post]
func (h *PricingHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.pricingService.Calculate(c.Request.Context(), toInput(req))
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.EngineError(status, err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// @Summary      Run the verification sweep
// @Description  Prices a weight x cost grid through the full pipeline and reports loss/margin statistics
// @Tags         Pricing
// @Accept       json
// @Produce      json
// @Param        request body VerifyRequest true "Optional custom grid; defaults to the 9x9 representative grid"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      503 {object} response.Response "Catalog snapshot unavailable"
// @Security     BearerAuth
// @Router       /api/pricing/verify [post]
func (h *PricingHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	weights, ok := service.ParseGrid(req.Weights)
	if !ok {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "weights must be positive"))
		return
	}
	costs, ok := service.ParseGrid(req.Costs)
	if !ok {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "costs must be positive"))
		return
	}

	cfg := pricing.SweepConfig{
		Weights: weights,
		Costs:   costs,
		Template: pricing.Input{
			DestinationCountry: defaultString(req.DestinationCountry, "US"),
			OriginCountry:      defaultString(req.OriginCountry, "JP"),
			Description:        req.Description,
			CategoryHint:       req.CategoryHint,
			MarketplaceTier:    req.MarketplaceTier,
		},
	}

	summary, err := h.pricingService.RunVerificationSweep(c.Request.Context(), cfg)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.EngineError(status, err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

func toInput(req CalculateRequest) pricing.Input {
	return pricing.Input{
		CostLocalCurrency: decimal.NewFromFloat(req.Cost),
		WeightKg:          decimal.NewFromFloat(req.WeightKg),
		Dimensions: pricing.Dimensions{
			LengthCm: decimal.NewFromFloat(req.LengthCm),
			WidthCm:  decimal.NewFromFloat(req.WidthCm),
			HeightCm: decimal.NewFromFloat(req.HeightCm),
		},
		DestinationCountry: req.DestinationCountry,
		OriginCountry:      req.OriginCountry,
		Description:        req.Description,
		CategoryHint:       req.CategoryHint,
		TariffCodeOverride: req.TariffCodeOverride,
		MarketplaceTier:    req.MarketplaceTier,
		RefundableFees:     decimal.NewFromFloat(req.RefundableFees),
	}
}

// statusForError maps the engine's error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch pricing.KindOf(err) {
	case pricing.ErrInputValidation:
		return http.StatusBadRequest
	case pricing.ErrLookupNotFound:
		return http.StatusNotFound
	case pricing.ErrComputationInvalid:
		return http.StatusUnprocessableEntity
	case pricing.ErrExternalDataUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
