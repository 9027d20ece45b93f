package api

import (
	stderrors "errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	adapterapi "groupstat/adapters/api"
	"groupstat/adapters/stats/engine"
	"groupstat/app"
	"groupstat/domain/grouped"
	"groupstat/internal/errors"
	"groupstat/internal/report"
	"groupstat/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxHistoryLimit = 100

// ComputeHandler serves grouped statistics computations over HTTP
type ComputeHandler struct {
	service      *app.ComputeService
	normalizer   *adapterapi.Normalizer
	historyLimit int
	binCount     int
}

// NewComputeHandler creates a new compute handler.
// historyLimit is the default page size of the history listing; binCount the
// default class count for raw binning (0 selects Sturges' rule).
func NewComputeHandler(service *app.ComputeService, normalizer *adapterapi.Normalizer, historyLimit, binCount int) *ComputeHandler {
	return &ComputeHandler{
		service:      service,
		normalizer:   normalizer,
		historyLimit: historyLimit,
		binCount:     binCount,
	}
}

// Compute handles POST /api/compute
func (h *ComputeHandler) Compute(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, adapterapi.ErrorResponse{Error: adapterapi.MsgMissingDataset})
		return
	}

	rows, err := h.normalizer.ParseComputeRequest(body)
	if err != nil {
		respondError(c, err)
		return
	}

	computation, err := h.service.Compute(c.Request.Context(), "api", rows)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toResponse(computation, c.Query("breakdown") == "true"))
}

// ComputeBatch handles POST /api/compute/batch
func (h *ComputeHandler) ComputeBatch(c *gin.Context) {
	var req adapterapi.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Datasets) == 0 {
		c.JSON(http.StatusBadRequest, adapterapi.ErrorResponse{Error: adapterapi.MsgMissingDataset})
		return
	}

	datasets := make([][]grouped.IntervalRow, len(req.Datasets))
	for i, raw := range req.Datasets {
		rows, err := h.normalizer.Normalize(raw)
		if err != nil {
			respondError(c, errors.Wrapf(err, "dataset %d", i+1))
			return
		}
		datasets[i] = rows
	}

	computations, err := h.service.ComputeBatch(c.Request.Context(), "api-batch", datasets)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := adapterapi.BatchResponse{Results: make([]adapterapi.ComputeResponse, len(computations))}
	for i, computation := range computations {
		resp.Results[i] = h.toResponse(computation, false)
	}
	c.JSON(http.StatusOK, resp)
}

// Bin handles POST /api/bin
func (h *ComputeHandler) Bin(c *gin.Context) {
	var req adapterapi.BinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, adapterapi.ErrorResponse{Error: "Invalid bin request"})
		return
	}
	classes := req.Classes
	if classes == 0 {
		classes = h.binCount
	}

	raw, err := h.service.ComputeRaw(c.Request.Context(), "api-bin", req.Values, classes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, adapterapi.BinResponse{
		Computation: h.toResponse(raw.Computation, false),
		Raw:         raw.Raw,
	})
}

// ListComputations handles GET /api/computations
func (h *ComputeHandler) ListComputations(c *gin.Context) {
	limit := h.historyLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, adapterapi.ErrorResponse{Error: "Invalid limit"})
			return
		}
		limit = parsed
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	computations, err := h.service.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := adapterapi.HistoryResponse{
		Computations: make([]adapterapi.ComputeResponse, len(computations)),
		Count:        len(computations),
	}
	for i, computation := range computations {
		resp.Computations[i] = h.toResponse(computation, false)
	}
	c.JSON(http.StatusOK, resp)
}

// GetComputation handles GET /api/computations/:id
func (h *ComputeHandler) GetComputation(c *gin.Context) {
	computation, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.toResponse(computation, c.Query("breakdown") == "true"))
}

// GetReport handles GET /api/computations/:id/report
func (h *ComputeHandler) GetReport(c *gin.Context) {
	computation, ok := h.lookup(c)
	if !ok {
		return
	}
	title := fmt.Sprintf("Grouped statistics %s", computation.ID)
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(title, computation.Result()))
}

func (h *ComputeHandler) lookup(c *gin.Context) (*models.Computation, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, adapterapi.ErrorResponse{Error: "Invalid computation ID"})
		return nil, false
	}

	computation, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return computation, true
}

func (h *ComputeHandler) toResponse(computation *models.Computation, withBreakdown bool) adapterapi.ComputeResponse {
	result := computation.Result()
	resp := adapterapi.NewComputeResponse(computation.ID.String(), result)
	if withBreakdown {
		resp.Breakdown = engine.Breakdown(result)
	}
	return resp
}

// respondError maps an error code to an HTTP status. Engine rejections are
// reported with the engine's own reason, prefixed by any context added on
// top of the rejection (such as the failing dataset of a batch).
func respondError(c *gin.Context, err error) {
	switch errors.GetCode(err) {
	case errors.CodeValidationError:
		c.JSON(http.StatusBadRequest, adapterapi.ErrorResponse{Error: err.Error()})
	case errors.CodeNotFound:
		c.JSON(http.StatusNotFound, adapterapi.ErrorResponse{Error: err.Error()})
	case errors.CodeInvalidInput:
		message := err.Error()
		var invalid *grouped.InvalidInputError
		if stderrors.As(err, &invalid) {
			message = invalid.Error()
			var appErr *errors.AppError
			if stderrors.As(err, &appErr) && appErr.Cause != error(invalid) {
				message = appErr.Message + ": " + message
			}
		}
		c.JSON(http.StatusInternalServerError, adapterapi.ErrorResponse{Error: message})
	default:
		log.Printf("[API] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, adapterapi.ErrorResponse{Error: err.Error()})
	}
}
