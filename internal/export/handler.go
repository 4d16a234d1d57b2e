package export

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/jobs"
	"screening-backend/internal/pipeline"
	"screening-backend/internal/shared/server/respond"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler serves xlsx exports of screening results.
type Handler struct {
	Jobs       jobs.Repo
	Candidates pipeline.Repo
}

// NewHandler constructs a Handler.
func NewHandler(jobsRepo jobs.Repo, candidates pipeline.Repo) *Handler {
	return &Handler{Jobs: jobsRepo, Candidates: candidates}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs/:id/export", h.exportJob)
}

func (h *Handler) exportJob(c *gin.Context) {
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

	pool, err := h.Candidates.ListByJob(c.Request.Context(), jobID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load candidates", nil)
		return
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, pipeline.Partition(pool)); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render workbook", nil)
		return
	}

	fileName := fmt.Sprintf("screening-%s.xlsx", jobID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, xlsxMime, buf.Bytes())
}
