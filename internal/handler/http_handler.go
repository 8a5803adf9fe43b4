package handler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/T1mof/timetrack-reports/internal/domain"
	"github.com/T1mof/timetrack-reports/internal/export"
	"github.com/T1mof/timetrack-reports/internal/middleware"
	"github.com/T1mof/timetrack-reports/internal/render"
	"github.com/T1mof/timetrack-reports/internal/service"
)

const defaultRequestTimeout = 10 * time.Second

type Options struct {
	ReportToken    string
	ExportFilename string
	RequestTimeout time.Duration
}

type Handler struct {
	service  service.ServiceInterface
	renderer *render.Renderer
	opts     Options
}

func NewHandler(svc service.ServiceInterface, renderer *render.Renderer, opts Options) *Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	return &Handler{
		service:  svc,
		renderer: renderer,
		opts:     opts,
	}
}

// ErrorResponse структура ответа с ошибкой.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// sendError отправляет структурированную ошибку клиенту и логирует её.
func (h *Handler) sendError(c *gin.Context, statusCode int, code, message string) {
	slog.Error("Request error",
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"status", statusCode,
		"error_code", code,
		"message", message,
	)

	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	c.AbortWithStatusJSON(statusCode, resp)
}

// bindFilter читает фильтр из query string. Ошибка разбора не прерывает запрос:
// сервис откатится к значениям по умолчанию.
func (h *Handler) bindFilter(c *gin.Context) domain.ReportFilter {
	var filter domain.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		slog.Warn("Failed to bind report filter", "query", c.Request.URL.RawQuery, "error", err)
		return domain.ReportFilter{Malformed: true}
	}
	return filter
}

func (h *Handler) buildReport(c *gin.Context) (*domain.UserActivitySumReport, bool) {
	report, err := h.service.UserActivitySum(c.Request.Context(), h.bindFilter(c))
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return nil, false
	}
	return report, true
}

// UserActivitySum обрабатывает GET|POST /reporting/users/activity-sum.
func (h *Handler) UserActivitySum(c *gin.Context) {
	report, ok := h.buildReport(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, render.ReportTemplate, h.renderer.BuildView(report))
}

// UserActivitySumExport обрабатывает GET|POST /reporting/users/activity-sum_export.
func (h *Handler) UserActivitySumExport(c *gin.Context) {
	report, ok := h.buildReport(c)
	if !ok {
		return
	}

	var markup bytes.Buffer
	if err := h.renderer.Render(&markup, report); err != nil {
		h.sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	var file bytes.Buffer
	if err := export.WriteXLSX(&file, &markup); err != nil {
		h.sendError(c, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
		return
	}

	filename := export.Filename(h.opts.ExportFilename)
	slog.Info("Report exported", "filename", filename, "size", file.Len(), "month", report.Filter.Date)

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentType, file.Bytes())
}

// SetupRouter настраивает маршруты для Gin роутера.
func (h *Handler) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.RequestTimeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.SetHTMLTemplate(h.renderer.Templates())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Reporting
	methods := []string{http.MethodGet, http.MethodPost}
	reporting := r.Group("/reporting/users", middleware.ReportAccess(h.opts.ReportToken))
	reporting.Match(methods, "/activity-sum", h.UserActivitySum)
	reporting.Match(methods, "/activity-sum_export", h.UserActivitySumExport)

	return r
}
