package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"crossborder/internal/repository"
	"crossborder/pkg/pagination"
	"crossborder/pkg/response"
)

// CatalogHandler exposes read-only views of the reference catalogs for the
// dashboard. The engine itself never writes these tables.
type CatalogHandler struct {
	tariffs  repository.TariffRepository
	policies repository.ShippingPolicyRepository
	rates    repository.ExchangeRateRepository
}

func NewCatalogHandler(
	tariffs repository.TariffRepository,
	policies repository.ShippingPolicyRepository,
	rates repository.ExchangeRateRepository,
) *CatalogHandler {
	return &CatalogHandler{tariffs: tariffs, policies: policies, rates: rates}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/catalog")
	{
		group.GET("/tariff-codes", h.ListTariffCodes)
		group.GET("/shipping-policies", h.ListShippingPolicies)
		group.GET("/exchange-rate", h.LatestExchangeRate)
	}
}

// @Summary      List tariff codes
// @Description  Paginated harmonized tariff schedule, optional search over code and description
// @Tags         Catalog
// @Produce      json
// @Param        page   query int    false "Page number"
// @Param        limit  query int    false "Page size"
// @Param        search query string false "Substring filter"
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Response
// @Router       /api/catalog/tariff-codes [get]
func (h *CatalogHandler) ListTariffCodes(c *gin.Context) {
	params := pagination.Parse(c)
	codes, total, err := h.tariffs.List(c.Request.Context(), params.Page, params.Limit, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"items": codes,
		"meta":  pagination.NewMeta(params, total),
	}))
}

// @Summary      List active shipping policies
// @Description  The shipping rate catalog in selection order, with zone rates
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Response
// @Router       /api/catalog/shipping-policies [get]
func (h *CatalogHandler) ListShippingPolicies(c *gin.Context) {
	policies, err := h.policies.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, policies))
}

// @Summary      Latest exchange rate
// @Description  Most recent spot rate with its volatility buffer and derived safe rate
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "No rate recorded yet"
// @Router       /api/catalog/exchange-rate [get]
func (h *CatalogHandler) LatestExchangeRate(c *gin.Context) {
	rate, err := h.rates.Latest(c.Request.Context())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "no exchange rate recorded"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"base_currency":  rate.BaseCurrency,
		"quote_currency": rate.QuoteCurrency,
		"spot":           rate.Spot,
		"buffer_percent": rate.BufferPercent,
		"safe":           rate.Safe(),
		"created_at":     rate.CreatedAt,
	}))
}
