package handler

import (
	"net/http"

	"posgate/internal/envelope"
	"posgate/internal/repository"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	repo repository.ActivityRepository
}

func NewActivityHandler(repo repository.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{repo: repo}
}

// List godoc
// @Summary      Recent activity
// @Description  Returns the 100 most recent activity log entries, newest first.
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} envelope.Success
// @Failure      401 {object} envelope.Error
// @Failure      500 {object} envelope.Error
// @Router       /api/activity-log [get]
func (h *ActivityHandler) List(c *gin.Context) {
	records, err := h.repo.ListRecent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, envelope.New("Database error: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, envelope.OK(records))
}
