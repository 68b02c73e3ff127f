package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "trunkreport/internal/errors"
	"trunkreport/internal/services"
)

// ReportHandler handles report upload, listing, and download requests.
type ReportHandler struct {
	service      *services.ReportService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	maxUpload    int64
	onProcessed  func()
}

// NewReportHandler creates a report handler. maxUpload caps the accepted
// request body in bytes. onProcessed, if non-nil, is invoked after each
// successful upload (used for metrics).
func NewReportHandler(service *services.ReportService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUpload int64, onProcessed func()) *ReportHandler {
	return &ReportHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
		maxUpload:    maxUpload,
		onProcessed:  onProcessed,
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Upload)
	r.Get("/", h.List)
	r.Get("/download/{filename}", h.Download)
	r.Delete("/{filename}", h.Delete)

	return r
}

// Upload handles POST /api/reports. The file arrives as the "file" part of a
// multipart form; an optional "format" query or form value selects csv or
// xlsx output.
func (h *ReportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.PayloadTooLarge(h.maxUpload))
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "Request is not a valid multipart upload"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "Missing file field in upload"))
		return
	}
	defer file.Close()

	format := services.OutputFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = services.OutputFormat(r.FormValue("format"))
	}

	result, err := h.service.Process(ctx, header.Filename, file, format)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedFileType) {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", err.Error()))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if h.onProcessed != nil {
		h.onProcessed()
	}

	h.logger.InfoContext(ctx, "upload processed",
		slog.String("filename", header.Filename),
		slog.String("artifact", result.Artifact))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

// List handles GET /api/reports.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	artifacts, err := h.service.List(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.FileSystemError("list artifacts", err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"artifacts": artifacts,
		"count":     len(artifacts),
	})
}

// Download handles GET /api/reports/download/{filename}.
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("filename", "Filename is required"))
		return
	}

	if err := h.service.Download(r.Context(), w, r, filename); err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.NotFoundError("artifact "+filename))
			return
		}
		h.errorHandler.HandleError(w, r, err)
	}
}

// Delete handles DELETE /api/reports/{filename}.
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("filename", "Filename is required"))
		return
	}

	if err := h.service.Delete(r.Context(), filename); err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.NotFoundError("artifact "+filename))
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.FileSystemError("delete artifact", err))
		return
	}

	render.JSON(w, r, map[string]string{"deleted": filename})
}
