package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pathways-hq/pathways/internal/api/dto"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/service"
	"github.com/pathways-hq/pathways/internal/types"
)

type CandidateHandler struct {
	service service.CandidateService
	log     *logger.Logger
}

func NewCandidateHandler(service service.CandidateService, log *logger.Logger) *CandidateHandler {
	return &CandidateHandler{service: service, log: log}
}

// @Summary Create a candidate
// @Description Register a new candidate in the pipeline
// @Tags Candidates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param candidate body dto.CreateCandidateRequest true "Candidate"
// @Success 201 {object} dto.CandidateResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /candidates [post]
func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	var req dto.CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateCandidate(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a candidate
// @Tags Candidates
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Candidate ID"
// @Success 200 {object} dto.CandidateResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /candidates/{id} [get]
func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	resp, err := h.service.GetCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List candidates
// @Tags Candidates
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.CandidateFilter false "Filter"
// @Success 200 {object} dto.ListCandidatesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /candidates [get]
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	var filter types.CandidateFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListCandidates(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a candidate
// @Tags Candidates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Candidate ID"
// @Param candidate body dto.UpdateCandidateRequest true "Candidate"
// @Success 200 {object} dto.CandidateResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /candidates/{id} [put]
func (h *CandidateHandler) UpdateCandidate(c *gin.Context) {
	var req dto.UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateCandidate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a candidate
// @Tags Candidates
// @Security ApiKeyAuth
// @Param id path string true "Candidate ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /candidates/{id} [delete]
func (h *CandidateHandler) DeleteCandidate(c *gin.Context) {
	if err := h.service.DeleteCandidate(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Transition a candidate
// @Description Move a candidate to a new pipeline status
// @Tags Candidates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Candidate ID"
// @Param transition body dto.TransitionCandidateRequest true "Transition"
// @Success 200 {object} dto.CandidateResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /candidates/{id}/transition [post]
func (h *CandidateHandler) TransitionCandidate(c *gin.Context) {
	var req dto.TransitionCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.TransitionCandidate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List a candidate's status transitions
// @Tags Candidates
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Candidate ID"
// @Success 200 {array} dto.StatusTransitionResponse
// @Router /candidates/{id}/transitions [get]
func (h *CandidateHandler) ListTransitions(c *gin.Context) {
	resp, err := h.service.ListTransitions(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Pipeline summary
// @Description Candidate counts per pipeline stage with the bottleneck flagged
// @Tags Candidates
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.PipelineSummaryResponse
// @Router /candidates/pipeline [get]
func (h *CandidateHandler) GetPipelineSummary(c *gin.Context) {
	resp, err := h.service.GetPipelineSummary(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
