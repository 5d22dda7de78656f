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

// RefDataHandler serves CRUD for campuses, trades, batches, OEPs,
// instructors and employers.
type RefDataHandler struct {
	service service.RefDataService
	log     *logger.Logger
}

func NewRefDataHandler(service service.RefDataService, log *logger.Logger) *RefDataHandler {
	return &RefDataHandler{service: service, log: log}
}

func bindJSON[T any](c *gin.Context) (T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return req, false
	}
	return req, true
}

func bindQueryFilter(c *gin.Context) (*types.QueryFilter, bool) {
	var filter types.QueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return nil, false
	}
	return &filter, true
}

// Campuses

func (h *RefDataHandler) CreateCampus(c *gin.Context) {
	req, ok := bindJSON[dto.CreateCampusRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.CreateCampus(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RefDataHandler) GetCampus(c *gin.Context) {
	resp, err := h.service.GetCampus(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RefDataHandler) UpdateCampus(c *gin.Context) {
	req, ok := bindJSON[dto.UpdateCampusRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.UpdateCampus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RefDataHandler) DeleteCampus(c *gin.Context) {
	if err := h.service.DeleteCampus(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RefDataHandler) ListCampuses(c *gin.Context) {
	filter, ok := bindQueryFilter(c)
	if !ok {
		return
	}
	resp, err := h.service.ListCampuses(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Trades

func (h *RefDataHandler) CreateTrade(c *gin.Context) {
	req, ok := bindJSON[dto.CreateTradeRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.CreateTrade(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RefDataHandler) GetTrade(c *gin.Context) {
	resp, err := h.service.GetTrade(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RefDataHandler) UpdateTrade(c *gin.Context) {
	req, ok := bindJSON[dto.UpdateTradeRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.UpdateTrade(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RefDataHandler) DeleteTrade(c *gin.Context) {
	if err := h.service.DeleteTrade(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RefDataHandler) ListTrades(c *gin.Context) {
	filter, ok := bindQueryFilter(c)
	if !ok {
		return
	}
	resp, err := h.service.ListTrades(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Batches

func (h *RefDataHandler) CreateBatch(c *gin.Context) {
	req, ok := bindJSON[dto.CreateBatchRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.CreateBatch(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RefDataHandler) GetBatch(c *gin.Context) {
	resp, err := h.service.GetBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RefDataHandler) UpdateBatch(c *gin.Context) {
	req, ok := bindJSON[dto.UpdateBatchRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.UpdateBatch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RefDataHandler) DeleteBatch(c *gin.Context) {
	if err := h.service.DeleteBatch(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RefDataHandler) ListBatches(c *gin.Context) {
	var filter types.BatchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	resp, err := h.service.ListBatches(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// OEPs

func (h *RefDataHandler) CreateOEP(c *gin.Context) {
	req, ok := bindJSON[dto.CreateOEPRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.CreateOEP(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RefDataHandler) GetOEP(c *gin.Context) {
	resp, err := h.service.GetOEP(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RefDataHandler) UpdateOEP(c *gin.Context) {
	req, ok := bindJSON[dto.UpdateOEPRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.UpdateOEP(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RefDataHandler) DeleteOEP(c *gin.Context) {
	if err := h.service.DeleteOEP(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RefDataHandler) ListOEPs(c *gin.Context) {
	filter, ok := bindQueryFilter(c)
	if !ok {
		return
	}
	resp, err := h.service.ListOEPs(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Instructors

func (h *RefDataHandler) CreateInstructor(c *gin.Context) {
	req, ok := bindJSON[dto.CreateInstructorRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.CreateInstructor(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RefDataHandler) GetInstructor(c *gin.Context) {
	resp, err := h.service.GetInstructor(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RefDataHandler) UpdateInstructor(c *gin.Context) {
	req, ok := bindJSON[dto.UpdateInstructorRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.UpdateInstructor(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RefDataHandler) DeleteInstructor(c *gin.Context) {
	if err := h.service.DeleteInstructor(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RefDataHandler) ListInstructors(c *gin.Context) {
	filter, ok := bindQueryFilter(c)
	if !ok {
		return
	}
	resp, err := h.service.ListInstructors(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Employers

func (h *RefDataHandler) CreateEmployer(c *gin.Context) {
	req, ok := bindJSON[dto.CreateEmployerRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.CreateEmployer(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RefDataHandler) GetEmployer(c *gin.Context) {
	resp, err := h.service.GetEmployer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RefDataHandler) UpdateEmployer(c *gin.Context) {
	req, ok := bindJSON[dto.UpdateEmployerRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.UpdateEmployer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RefDataHandler) DeleteEmployer(c *gin.Context) {
	if err := h.service.DeleteEmployer(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RefDataHandler) ListEmployers(c *gin.Context) {
	filter, ok := bindQueryFilter(c)
	if !ok {
		return
	}
	resp, err := h.service.ListEmployers(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
