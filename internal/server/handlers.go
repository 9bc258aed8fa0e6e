package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dtrajkov/attendance-tracker/internal/common"
	"github.com/dtrajkov/attendance-tracker/internal/entity"
	"github.com/dtrajkov/attendance-tracker/internal/repository"
)

// Handler exposes the submission and report-retrieval boundaries over HTTP.
type Handler struct {
	svc     *Service
	jobs    repository.JobRepository
	baseURL string
	logger  *slog.Logger
}

func NewHandler(svc *Service, jobs repository.JobRepository, baseURL string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, jobs: jobs, baseURL: baseURL, logger: logger}
}

type uploadRequest struct {
	Base64String string `json:"base64_string"`
}

type uploadResponse struct {
	ID      int64  `json:"id"`
	File    string `json:"file"`
	Content string `json:"content"`
	Path    string `json:"path"`
}

type jobRecordDTO struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	FullImageURL string `json:"full_image_url"`
	FullFileURL  string `json:"full_file_url,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Upload handles POST /upload: base64 image in, stored path + job id out.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	data, err := base64.StdEncoding.DecodeString(req.Base64String)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid image data: %v", err))
		return
	}

	rec, err := h.svc.SubmitImage(r.Context(), data)
	if err != nil {
		h.logger.Warn("upload rejected", "error", err, "request_id", common.RequestIDFromContext(r.Context()))
		status := common.HTTPStatus(err)
		detail := "submission failed"
		if status == http.StatusBadRequest {
			detail = fmt.Sprintf("invalid image data: %v", err)
		}
		h.writeError(w, status, detail)
		return
	}

	h.writeJSON(w, http.StatusOK, uploadResponse{
		ID:      rec.ID,
		File:    filepath.Base(rec.SourceImagePath),
		Content: "image/png",
		Path:    rec.SourceImagePath,
	})
}

// ListReports handles GET /reports?skip=&limit=.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 10)

	recs, err := h.jobs.List(r.Context(), skip, limit)
	if err != nil {
		h.logger.Error("list reports failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "list reports failed")
		return
	}

	out := make([]jobRecordDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, h.toDTO(rec))
	}
	h.writeJSON(w, http.StatusOK, out)
}

// GetReport handles GET /reports/{id}.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid report id")
		return
	}
	rec, err := h.jobs.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, common.HTTPStatus(err), "report not found")
		return
	}
	h.writeJSON(w, http.StatusOK, h.toDTO(rec))
}

func (h *Handler) toDTO(rec *entity.JobRecord) jobRecordDTO {
	dto := jobRecordDTO{
		ID:           rec.ID,
		Date:         rec.SubmittedAt.Format(time.RFC3339),
		Status:       string(rec.Status),
		FullImageURL: h.fileURL(rec.SourceImagePath),
		ErrorMessage: rec.ErrorMessage,
	}
	if rec.ReportPath != "" {
		dto.FullFileURL = h.fileURL(rec.ReportPath)
	}
	return dto
}

func (h *Handler) fileURL(path string) string {
	return fmt.Sprintf("%s/files/%s", h.baseURL, filepath.Base(path))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("response encode failed", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, detail string) {
	h.writeJSON(w, status, map[string]string{"detail": detail})
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
