package jobs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the jobs service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.createJob)
	rg.GET("/jobs", h.listJobs)
	rg.GET("/jobs/:id", h.getJob)
	rg.POST("/jobs/:id/screen", h.screenJob)
}

type createJobRequest struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) createJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	job, err := h.Svc.Create(c.Request.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, ErrEmptyPrompt) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "hiring prompt is required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create job", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, job)
}

func (h *Handler) getJob(c *gin.Context) {
	c.Set("jobId", c.Param("id"))
	job, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load job", nil)
		return
	}
	respond.OK(c, job)
}

func (h *Handler) listJobs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	list, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list jobs", nil)
		return
	}
	respond.OK(c, gin.H{"jobs": list, "limit": limit, "offset": offset})
}

func (h *Handler) screenJob(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)
	if _, err := h.Svc.EnqueueScreening(c.Request.Context(), jobID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, ErrQueueFull):
			respond.Error(c, http.StatusTooManyRequests, "queue_full", "screening queue is full, retry later", nil)
		case errors.Is(err, ErrQueueClosed):
			respond.Error(c, http.StatusServiceUnavailable, "shutting_down", "service is shutting down", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to enqueue screening", nil)
		}
		return
	}
	respond.JSON(c, http.StatusAccepted, gin.H{"jobId": jobID, "status": StatusQueued})
}
