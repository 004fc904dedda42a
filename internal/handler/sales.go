package handler

import (
	"net/http"

	"posgate/internal/dto"
	"posgate/internal/envelope"
	"posgate/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type SalesHandler struct {
	svc service.SaleService
	rdb *redis.Client
}

func NewSalesHandler(svc service.SaleService, rdb *redis.Client) *SalesHandler {
	return &SalesHandler{svc: svc, rdb: rdb}
}

// List godoc
// @Summary      Recent sales
// @Description  Returns the 50 most recent sales, newest first, each with its line item count.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} envelope.Success
// @Failure      401 {object} envelope.Error
// @Failure      500 {object} envelope.Error
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	records, err := h.svc.ListRecent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, envelope.New("Database error: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, envelope.OK(records))
}

// Create godoc
// @Summary      Record a sale
// @Description  Inserts a sale and its line items in one transaction.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateSaleRequest true "Sale detail"
// @Success      200 {object} envelope.Success
// @Failure      400 {object} envelope.Error
// @Failure      401 {object} envelope.Error
// @Failure      500 {object} envelope.Error
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.CreateSale(c.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("cashier", req.Cashier).Msg("sale creation failed")
		c.JSON(http.StatusInternalServerError, envelope.New("Failed to create sale"))
		return
	}

	// The summary aggregates just changed; drop the cached copy.
	if h.rdb != nil {
		if err := h.rdb.Del(c.Request.Context(), summaryCacheKey).Err(); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate summary cache")
		}
	}

	c.JSON(http.StatusOK, envelope.OK(resp))
}
