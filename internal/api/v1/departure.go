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

type DepartureHandler struct {
	service service.DepartureService
	log     *logger.Logger
}

func NewDepartureHandler(service service.DepartureService, log *logger.Logger) *DepartureHandler {
	return &DepartureHandler{service: service, log: log}
}

// @Summary Get a departure
// @Tags Departures
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Departure ID"
// @Success 200 {object} dto.DepartureResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /departures/{id} [get]
func (h *DepartureHandler) GetDeparture(c *gin.Context) {
	resp, err := h.service.GetDeparture(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List departures
// @Tags Departures
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.DepartureFilter false "Filter"
// @Success 200 {object} dto.ListDeparturesResponse
// @Router /departures [get]
func (h *DepartureHandler) ListDepartures(c *gin.Context) {
	var filter types.DepartureFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListDepartures(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a checklist item
// @Description Mark a post-departure checklist item met or unmet
// @Tags Departures
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Departure ID"
// @Param item body dto.UpdateChecklistItemRequest true "Checklist item"
// @Success 200 {object} dto.DepartureResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /departures/{id}/checklist [put]
func (h *DepartureHandler) UpdateChecklistItem(c *gin.Context) {
	var req dto.UpdateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateChecklistItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Confirm first salary
// @Tags Departures
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Departure ID"
// @Success 200 {object} dto.DepartureResponse
// @Router /departures/{id}/confirm-salary [post]
func (h *DepartureHandler) ConfirmSalary(c *gin.Context) {
	resp, err := h.service.ConfirmSalary(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Run a compliance check
// @Description Re-evaluate one departure's compliance checklist
// @Tags Departures
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Departure ID"
// @Success 200 {object} dto.ComplianceCheckResponse
// @Router /departures/{id}/compliance-check [post]
func (h *DepartureHandler) RunComplianceCheck(c *gin.Context) {
	resp, err := h.service.RunComplianceCheck(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
