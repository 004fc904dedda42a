package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"posgate/internal/envelope"
	"posgate/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const summaryCacheKey = "summary:v1"

type SummaryHandler struct {
	svc      service.ReportService
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewSummaryHandler(svc service.ReportService, rdb *redis.Client, cacheTTL time.Duration) *SummaryHandler {
	return &SummaryHandler{svc: svc, rdb: rdb, cacheTTL: cacheTTL}
}

// Get godoc
// @Summary      Summary statistics
// @Description  All-time and same-day order counts and revenue, low-stock count, product count. Each aggregate is best-effort.
// @Tags         summary
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} envelope.Success
// @Failure      401 {object} envelope.Error
// @Router       /api/summary [get]
func (h *SummaryHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. Try the cached copy. POST /api/sales invalidates it, so a short TTL
	// only papers over writes the desktop app makes directly.
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, summaryCacheKey).Bytes(); err == nil {
			var summary map[string]any
			if jsonErr := json.Unmarshal(cached, &summary); jsonErr == nil {
				c.JSON(http.StatusOK, envelope.OK(summary))
				return
			}
		}
	}

	// 2. Cache miss — run the aggregates
	summary := h.svc.Summary(ctx)

	// 3. Populate cache — best effort, ignore errors
	if h.rdb != nil {
		if b, jsonErr := json.Marshal(summary); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), summaryCacheKey, b, h.cacheTTL).Err()
		}
	}

	c.JSON(http.StatusOK, envelope.OK(summary))
}
