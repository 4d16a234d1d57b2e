package generate

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/jobs"
	"screening-backend/internal/pipeline"
	"screening-backend/internal/shared/server/respond"
)

// Handler serves outreach material for screened candidates.
type Handler struct {
	Svc        *Service
	Jobs       jobs.Repo
	Candidates pipeline.Repo
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, jobsRepo jobs.Repo, candidates pipeline.Repo) *Handler {
	return &Handler{Svc: svc, Jobs: jobsRepo, Candidates: candidates}
}

// RegisterRoutes attaches outreach routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs/:id/candidates/:candidateId/questions", h.interviewQuestions)
	rg.GET("/jobs/:id/candidates/:candidateId/notice", h.rejectionNotice)
}

func (h *Handler) interviewQuestions(c *gin.Context) {
	job, cand, ok := h.load(c)
	if !ok {
		return
	}
	if cand.ATSPassed == nil || !*cand.ATSPassed || cand.SmartPassed == nil || !*cand.SmartPassed {
		respond.Error(c, http.StatusConflict, "not_passed", "interview questions are only generated for passed candidates", nil)
		return
	}

	rec, err := cand.Record()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "stored candidate record is unreadable", nil)
		return
	}
	n, _ := strconv.Atoi(c.DefaultQuery("count", "5"))
	questions, err := h.Svc.InterviewQuestions(c.Request.Context(), rec, job.Requirements, n)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "oracle_error", "failed to generate interview questions", nil)
		return
	}
	respond.OK(c, gin.H{"candidateId": cand.ID, "questions": questions})
}

func (h *Handler) rejectionNotice(c *gin.Context) {
	job, cand, ok := h.load(c)
	if !ok {
		return
	}
	if cand.ATSPassed != nil && *cand.ATSPassed && cand.SmartPassed != nil && *cand.SmartPassed {
		respond.Error(c, http.StatusConflict, "not_failed", "rejection notices are only generated for failed candidates", nil)
		return
	}

	rec, err := cand.Record()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "stored candidate record is unreadable", nil)
		return
	}
	notice, err := h.Svc.RejectionNotice(c.Request.Context(), rec, job.Requirements)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "oracle_error", "failed to generate notice", nil)
		return
	}
	respond.OK(c, gin.H{"candidateId": cand.ID, "notice": notice})
}

func (h *Handler) load(c *gin.Context) (jobs.Job, pipeline.Candidate, bool) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)
	job, err := h.Jobs.GetByID(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		} else {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load job", nil)
		}
		return jobs.Job{}, pipeline.Candidate{}, false
	}

	candidateID, err := strconv.ParseInt(c.Param("candidateId"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "candidate id must be numeric", nil)
		return jobs.Job{}, pipeline.Candidate{}, false
	}
	pool, err := h.Candidates.ListByJob(c.Request.Context(), jobID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load candidates", nil)
		return jobs.Job{}, pipeline.Candidate{}, false
	}
	for _, cand := range pool {
		if cand.ID == candidateID {
			return job, cand, true
		}
	}
	respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
	return jobs.Job{}, pipeline.Candidate{}, false
}
