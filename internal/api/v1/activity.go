package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/service"
	"github.com/pathways-hq/pathways/internal/types"
)

type ActivityHandler struct {
	service service.ActivityService
	log     *logger.Logger
}

func NewActivityHandler(service service.ActivityService, log *logger.Logger) *ActivityHandler {
	return &ActivityHandler{service: service, log: log}
}

// @Summary List activity log entries
// @Tags Activities
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.ActivityFilter false "Filter"
// @Success 200 {object} dto.ListActivitiesResponse
// @Router /activities [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	var filter types.ActivityFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListActivities(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
