package handler

import (
	"net/http"

	"posgate/internal/envelope"
	"posgate/internal/repository"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	repo repository.ProductRepository
}

func NewInventoryHandler(repo repository.ProductRepository) *InventoryHandler {
	return &InventoryHandler{repo: repo}
}

// List godoc
// @Summary      Inventory snapshot
// @Description  Returns every product ordered by name.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} envelope.Success
// @Failure      401 {object} envelope.Error
// @Failure      500 {object} envelope.Error
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	records, err := h.repo.ListByName(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, envelope.New("Database error: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, envelope.OK(records))
}
