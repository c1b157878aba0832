package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarasev/currency_converter_app/internal/apperrors"
	portssvc "github.com/mkarasev/currency_converter_app/internal/core/ports/services"
	"github.com/mkarasev/currency_converter_app/internal/dto"
	"github.com/mkarasev/currency_converter_app/internal/middleware"
)

// rateHandler handles HTTP requests related to currency rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers the authenticated read-only rate routes.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/:base/:target", h.getRate)
	}
}

// registerAdminRateRoutes registers the admin-only rate management routes.
func registerAdminRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.POST("", h.createRate)
		rates.PUT("/:id", h.updateRate)
		rates.DELETE("/:id", h.deleteRate)
		rates.POST("/:id/toggle", h.toggleRate)
	}
}

// listRates godoc
// @Summary List currency rates
// @Description Retrieves stored rates, most recently updated first.
// @Tags rates
// @Produce json
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListRatesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rates [get]
func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	rates, err := h.rateService.ListRates(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListRatesResponse(rates))
}

// getRate godoc
// @Summary Get the active rate for a currency pair
// @Description Retrieves the active rate for the exact ordered pair. 404 means no rate is configured; no fallback resolution happens here.
// @Tags rates
// @Produce json
// @Param base path string true "Base currency code (3 letters)"
// @Param target path string true "Target currency code (3 letters)"
// @Success 200 {object} dto.RateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rates/{base}/{target} [get]
func (h *rateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rate, err := h.rateService.GetActiveRate(c.Request.Context(), c.Param("base"), c.Param("target"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Currency rate not found"})
		default:
			logger.Error("Failed to get rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// createRate godoc
// @Summary Create a new currency rate
// @Description Inserts a new active rate; any existing active rate for the same ordered pair is deactivated.
// @Tags admin
// @Accept json
// @Produce json
// @Param rate body dto.CreateRateRequest true "Rate details"
// @Success 201 {object} dto.RateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/rates [post]
func (h *rateHandler) createRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.rateService.CreateRate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create rate"})
		return
	}

	logger.Info("Rate created",
		slog.String("rate_id", rate.RateID),
		slog.String("pair", rate.BaseCurrency+"/"+rate.TargetCurrency),
	)
	c.JSON(http.StatusCreated, dto.ToRateResponse(rate))
}

// updateRate godoc
// @Summary Update an existing rate in place
// @Description Mutates the rate value and/or active flag. Does not deactivate sibling rates; a reactivation conflict returns 409.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Rate ID"
// @Param rate body dto.UpdateRateRequest true "Updated fields"
// @Success 200 {object} dto.RateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Another active rate exists for the pair"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/rates/{id} [put]
func (h *rateHandler) updateRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.rateService.UpdateRate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeRateMutationError(c, logger, err, "update")
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// deleteRate godoc
// @Summary Delete a rate
// @Description Hard-deletes a rate row. Historical conversions are unaffected.
// @Tags admin
// @Produce json
// @Param id path string true "Rate ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/rates/{id} [delete]
func (h *rateHandler) deleteRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.rateService.DeleteRate(c.Request.Context(), c.Param("id")); err != nil {
		h.writeRateMutationError(c, logger, err, "delete")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Currency rate deleted successfully"})
}

// toggleRate godoc
// @Summary Toggle a rate's active flag
// @Description Flips the active flag directly. A reactivation conflict returns 409.
// @Tags admin
// @Produce json
// @Param id path string true "Rate ID"
// @Success 200 {object} dto.RateResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/rates/{id}/toggle [post]
func (h *rateHandler) toggleRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rate, err := h.rateService.ToggleRate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeRateMutationError(c, logger, err, "toggle")
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

func (h *rateHandler) writeRateMutationError(c *gin.Context, logger *slog.Logger, err error, op string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Currency rate not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Another active rate exists for this currency pair"})
	default:
		logger.Error("Failed to "+op+" rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + op + " rate"})
	}
}
