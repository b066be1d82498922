package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// RendererProbe сообщает, доступен ли движок PDF.
type RendererProbe interface {
	Available() error
}

// HealthHandler проверяет базу, каталог выгрузок и движок PDF.
type HealthHandler struct {
	db        *sqlx.DB
	outputDir string
	renderer  RendererProbe
}

// NewHealthHandler создаёт handler. renderer может быть nil.
func NewHealthHandler(db *sqlx.DB, outputDir string, renderer RendererProbe) *HealthHandler {
	return &HealthHandler{db: db, outputDir: outputDir, renderer: renderer}
}

// HealthResponse - ответ /health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health обрабатывает GET /health.
// Недоступная база даёт 503. Каталог и движок PDF нужны только для выгрузки,
// их сбой переводит статус в degraded.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{
		"database":     "ok",
		"output_dir":   "ok",
		"pdf_renderer": "ok",
	}
	status := "healthy"

	if err := h.db.PingContext(ctx); err != nil {
		checks["database"] = "unavailable: " + err.Error()
		status = "unhealthy"
	}

	if info, err := os.Stat(h.outputDir); err != nil || !info.IsDir() {
		checks["output_dir"] = "missing"
		status = degrade(status)
	}

	switch {
	case h.renderer == nil:
		checks["pdf_renderer"] = "not configured"
		status = degrade(status)
	case h.renderer.Available() != nil:
		checks["pdf_renderer"] = "unavailable"
		status = degrade(status)
	}

	code := http.StatusOK
	if status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	})
}

func degrade(status string) string {
	if status == "healthy" {
		return "degraded"
	}
	return status
}
