package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"roombook/internal/api"
	"roombook/internal/availability"
)

// @Summary      Health check
// @Description  Verifies database and counter store connectivity.
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Failure      503 {object} api.HealthResponse
// @Router       /health [get]
func Health(db *sqlx.DB, store *availability.RedisStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, api.HealthResponse{Status: "database unavailable"})
			return
		}
		if err := store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, api.HealthResponse{Status: "counter store unavailable"})
			return
		}
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
	}
}

// @Summary      Trigger a reconciliation pass (admin)
// @Description  Evicts expired counter keys and seeds missing ones from the authoritative store.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} api.MessageResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/reconcile [post]
func Reconcile(reconciler *availability.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := reconciler.Run(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Reconciliation failed"})
			return
		}
		c.JSON(http.StatusOK, api.MessageResponse{Message: "Reconciliation complete"})
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
