package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rafamossetto/distributor-api/internal/apierror"
	"github.com/rafamossetto/distributor-api/internal/dto"
	"github.com/rafamossetto/distributor-api/internal/infra"
	"github.com/rafamossetto/distributor-api/internal/service"

	"github.com/gin-gonic/gin"
)

// PriceCheckHandler serves the public price lookup endpoint.
// No authentication required, no side effects.
type PriceCheckHandler struct {
	svc   service.ProductService
	cache *infra.PriceCache
}

func NewPriceCheckHandler(svc service.ProductService, cache *infra.PriceCache) *PriceCheckHandler {
	return &PriceCheckHandler{svc: svc, cache: cache}
}

// GetByCode godoc
// @Summary Consulta publica de precios por codigo de producto (sin autenticacion)
// @Tags precio
// @Produce json
// @Param code path int true "Codigo de producto"
// @Success 200 {object} dto.PriceCheckResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/price/{code} [get]
func (h *PriceCheckHandler) GetByCode(c *gin.Context) {
	code, err := strconv.ParseInt(c.Param("code"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Codigo invalido"))
		return
	}
	ctx := c.Request.Context()

	// 1. Try Redis cache
	if cached, ok := h.cache.Get(ctx, code); ok {
		var resp dto.PriceCheckResponse
		if jsonErr := json.Unmarshal([]byte(cached), &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	resp, err := h.svc.GetByCode(ctx, code)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// 3. Populate cache — best effort
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		h.cache.Set(ctx, code, string(b))
	}

	c.JSON(http.StatusOK, resp)
}
