package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pathways-hq/pathways/internal/api/dto"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/service"
)

type ReportHandler struct {
	service service.ReportService
	log     *logger.Logger
}

func NewReportHandler(service service.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{service: service, log: log}
}

// @Summary Download a report
// @Description Stream a report as CSV
// @Tags Reports
// @Produce text/csv
// @Security ApiKeyAuth
// @Param type path string true "Report type" Enums(candidates, compliance, complaints, remittances)
// @Success 200
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reports/{type} [get]
func (h *ReportHandler) DownloadReport(c *gin.Context) {
	reportType := dto.ReportType(c.Param("type"))
	if err := reportType.Validate(); err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", reportType))

	if _, err := h.service.WriteReport(c.Request.Context(), reportType, c.Writer); err != nil {
		h.log.Errorw("failed to stream report", "report_type", reportType, "error", err)
		// Headers may already be written; nothing more we can do
		c.Error(ierr.WithError(err).
			WithHint("Failed to generate report").
			Mark(ierr.ErrSystem))
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Export a report
// @Description Generate a report and store it in object storage
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param export body dto.ExportReportRequest true "Export"
// @Success 201 {object} dto.ExportReportResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reports/export [post]
func (h *ReportHandler) ExportReport(c *gin.Context) {
	var req dto.ExportReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ExportReport(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
