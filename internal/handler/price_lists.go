package handler

import (
	"net/http"
	"strconv"

	"github.com/rafamossetto/distributor-api/internal/apierror"
	"github.com/rafamossetto/distributor-api/internal/dto"
	"github.com/rafamossetto/distributor-api/internal/service"

	"github.com/gin-gonic/gin"
)

type PriceListsHandler struct{ svc service.PriceListService }

func NewPriceListsHandler(svc service.PriceListService) *PriceListsHandler {
	return &PriceListsHandler{svc: svc}
}

func (h *PriceListsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PriceListsHandler) Create(c *gin.Context) {
	var req dto.CreatePriceListRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PriceListsHandler) Update(c *gin.Context) {
	var req dto.UpdatePriceListRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PriceListsHandler) Delete(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 {
		c.JSON(http.StatusBadRequest, apierror.New("Numero de lista invalido"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), number); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
