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

type RemittanceHandler struct {
	service service.RemittanceService
	log     *logger.Logger
}

func NewRemittanceHandler(service service.RemittanceService, log *logger.Logger) *RemittanceHandler {
	return &RemittanceHandler{service: service, log: log}
}

// @Summary Record a remittance
// @Tags Remittances
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param remittance body dto.CreateRemittanceRequest true "Remittance"
// @Success 201 {object} dto.RemittanceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /remittances [post]
func (h *RemittanceHandler) RecordRemittance(c *gin.Context) {
	var req dto.CreateRemittanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RecordRemittance(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a remittance
// @Tags Remittances
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Remittance ID"
// @Success 200 {object} dto.RemittanceResponse
// @Router /remittances/{id} [get]
func (h *RemittanceHandler) GetRemittance(c *gin.Context) {
	resp, err := h.service.GetRemittance(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List remittances
// @Tags Remittances
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.RemittanceFilter false "Filter"
// @Success 200 {object} dto.ListRemittancesResponse
// @Router /remittances [get]
func (h *RemittanceHandler) ListRemittances(c *gin.Context) {
	var filter types.RemittanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListRemittances(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List remittance alerts
// @Tags Remittances
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.RemittanceAlertFilter false "Filter"
// @Success 200 {object} dto.ListRemittanceAlertsResponse
// @Router /remittances/alerts [get]
func (h *RemittanceHandler) ListAlerts(c *gin.Context) {
	var filter types.RemittanceAlertFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListAlerts(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Resolve a remittance alert
// @Tags Remittances
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} dto.RemittanceAlertResponse
// @Router /remittances/alerts/{id}/resolve [post]
func (h *RemittanceHandler) ResolveAlert(c *gin.Context) {
	resp, err := h.service.ResolveAlert(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Run the remittance anomaly scan for a candidate
// @Tags Remittances
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Candidate ID"
// @Success 200 {object} dto.AlertScanResponse
// @Router /candidates/{id}/remittance-scan [post]
func (h *RemittanceHandler) GenerateAlerts(c *gin.Context) {
	resp, err := h.service.GenerateAlerts(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
