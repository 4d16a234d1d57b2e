package ingest

import (
	"errors"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/jobs"
	"screening-backend/internal/shared/server/respond"
)

// maxUploadBytes caps one upload request.
const maxUploadBytes = 200 << 20

// Handler wires HTTP handlers to the ingest service.
type Handler struct {
	Svc  *Service
	Jobs jobs.Repo
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, jobsRepo jobs.Repo) *Handler {
	return &Handler{Svc: svc, Jobs: jobsRepo}
}

// RegisterRoutes attaches ingestion routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/:id/resumes", h.uploadResumes)
}

// uploadResumes accepts a multipart "file" that is either a zip archive of
// resumes or one pdf/docx document.
func (h *Handler) uploadResumes(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)
	if _, err := h.Jobs.GetByID(c.Request.Context(), jobID); err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load job", nil)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart field 'file' is required", nil)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unreadable upload", nil)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unreadable upload", nil)
		return
	}

	if strings.EqualFold(path.Ext(fileHeader.Filename), ".zip") {
		report, err := h.Svc.IngestArchive(c.Request.Context(), jobID, data)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid archive", nil)
			return
		}
		respond.OK(c, report)
		return
	}

	inserted, err := h.Svc.IngestDocument(c.Request.Context(), jobID, fileHeader.Filename, data)
	if err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "ingest_failed", err.Error(), nil)
		return
	}
	report := Report{Total: 1}
	if inserted {
		report.Ingested = 1
	} else {
		report.Duplicates = 1
	}
	respond.OK(c, report)
}
