package handlers

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fidalli/crm-backend/pkg/api/errors"
	"github.com/fidalli/crm-backend/pkg/api/middleware"
	"github.com/fidalli/crm-backend/pkg/email"
	"github.com/fidalli/crm-backend/pkg/export"
	"github.com/fidalli/crm-backend/pkg/metrics"
	"github.com/fidalli/crm-backend/pkg/storage"
	"github.com/fidalli/crm-backend/pkg/store"
)

// ExportHandler generates downloadable collection exports.
type ExportHandler struct {
	store    *store.Store
	exporter *export.Service
	uploader *storage.Uploader
	email    *email.Service
	metrics  *metrics.Metrics
}

// NewExportHandler creates a new export handler. uploader and email may
// be nil when S3 or SendGrid are not configured.
func NewExportHandler(st *store.Store, exporter *export.Service, uploader *storage.Uploader, mailer *email.Service, m *metrics.Metrics) *ExportHandler {
	return &ExportHandler{
		store:    st,
		exporter: exporter,
		uploader: uploader,
		email:    mailer,
		metrics:  m,
	}
}

// ExportResponse describes a generated export file.
type ExportResponse struct {
	Filename    string    `json:"filename"`
	Format      string    `json:"format"`
	Records     int       `json:"records"`
	S3Key       string    `json:"s3Key,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Create generates an export of one collection. The :kind path parameter
// selects the collection (entities or opportunities); the format query
// parameter selects csv or xlsx (default csv).
func (h *ExportHandler) Create(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = export.FormatCSV
	}
	if !export.ValidFormat(format) {
		return errors.BadRequest(c, "Format must be csv or xlsx")
	}

	var (
		path    string
		records int
		err     error
	)
	switch kind := c.Param("kind"); kind {
	case "entities":
		entities := h.store.ListEntities()
		records = len(entities)
		path, err = h.exporter.ExportEntities(entities, format)
	case "opportunities":
		opportunities := h.store.ListOpportunities()
		records = len(opportunities)
		path, err = h.exporter.ExportOpportunities(opportunities, format)
	default:
		return errors.BadRequest(c, "Export kind must be entities or opportunities")
	}
	if err != nil {
		return errors.InternalError(c, err)
	}

	resp := ExportResponse{
		Filename:    filepath.Base(path),
		Format:      format,
		Records:     records,
		GeneratedAt: time.Now(),
	}

	if h.uploader != nil {
		key, err := h.uploader.Upload(c.Request().Context(), path)
		if err != nil {
			// The file exists locally; report it without the S3 key
			return c.JSON(http.StatusCreated, resp)
		}
		resp.S3Key = key
	}

	if h.metrics != nil {
		h.metrics.RecordExportCreated(c.Param("kind"), format)
	}

	// Notify the requester asynchronously
	if h.email != nil {
		if addr, ok := c.Get(middleware.ContextEmail).(string); ok && addr != "" {
			go h.email.SendExportReady(addr, addr, resp.Filename, resp.GeneratedAt)
		}
	}

	return c.JSON(http.StatusCreated, resp)
}
