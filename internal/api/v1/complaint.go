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

type ComplaintHandler struct {
	service service.ComplaintService
	log     *logger.Logger
}

func NewComplaintHandler(service service.ComplaintService, log *logger.Logger) *ComplaintHandler {
	return &ComplaintHandler{service: service, log: log}
}

// @Summary File a complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param complaint body dto.CreateComplaintRequest true "Complaint"
// @Success 201 {object} dto.ComplaintResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /complaints [post]
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	var req dto.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateComplaint(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a complaint
// @Tags Complaints
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Complaint ID"
// @Success 200 {object} dto.ComplaintResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /complaints/{id} [get]
func (h *ComplaintHandler) GetComplaint(c *gin.Context) {
	resp, err := h.service.GetComplaint(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a complaint by reference
// @Tags Complaints
// @Produce json
// @Security ApiKeyAuth
// @Param reference path string true "Complaint reference"
// @Success 200 {object} dto.ComplaintResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /complaints/reference/{reference} [get]
func (h *ComplaintHandler) GetComplaintByReference(c *gin.Context) {
	resp, err := h.service.GetComplaintByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List complaints
// @Tags Complaints
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.ComplaintFilter false "Filter"
// @Success 200 {object} dto.ListComplaintsResponse
// @Router /complaints [get]
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	var filter types.ComplaintFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListComplaints(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Complaint ID"
// @Param complaint body dto.UpdateComplaintRequest true "Complaint"
// @Success 200 {object} dto.ComplaintResponse
// @Router /complaints/{id} [put]
func (h *ComplaintHandler) UpdateComplaint(c *gin.Context) {
	var req dto.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateComplaint(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Assign a complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Complaint ID"
// @Param assignment body dto.AssignComplaintRequest true "Assignment"
// @Success 200 {object} dto.ComplaintResponse
// @Router /complaints/{id}/assign [post]
func (h *ComplaintHandler) AssignComplaint(c *gin.Context) {
	var req dto.AssignComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AssignComplaint(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Start progress on a complaint
// @Tags Complaints
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Complaint ID"
// @Success 200 {object} dto.ComplaintResponse
// @Router /complaints/{id}/start [post]
func (h *ComplaintHandler) StartProgress(c *gin.Context) {
	resp, err := h.service.StartProgress(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Resolve a complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Complaint ID"
// @Param resolution body dto.ResolveComplaintRequest true "Resolution"
// @Success 200 {object} dto.ComplaintResponse
// @Router /complaints/{id}/resolve [post]
func (h *ComplaintHandler) ResolveComplaint(c *gin.Context) {
	var req dto.ResolveComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ResolveComplaint(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
