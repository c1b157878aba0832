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

// converterHandler handles conversion requests and history reads.
type converterHandler struct {
	converterService portssvc.ConverterSvcFacade
}

func newConverterHandler(cs portssvc.ConverterSvcFacade) *converterHandler {
	return &converterHandler{converterService: cs}
}

// registerConverterRoutes registers the authenticated conversion routes.
func registerConverterRoutes(rg *gin.RouterGroup, converterService portssvc.ConverterSvcFacade) {
	h := newConverterHandler(converterService)

	rg.POST("/convert", h.convert)
	rg.GET("/conversions/history", h.listHistory)
}

// registerAdminConversionRoutes registers the admin-only conversion routes.
func registerAdminConversionRoutes(rg *gin.RouterGroup, converterService portssvc.ConverterSvcFacade) {
	h := newConverterHandler(converterService)

	rg.GET("/conversions", h.listAllConversions)
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Resolves an exchange rate for the pair and records the conversion.
// @Tags conversions
// @Accept json
// @Produce json
// @Param conversion body dto.ConversionRequest true "Conversion details"
// @Success 201 {object} dto.ConversionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /convert [post]
func (h *converterHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	conversion, source, err := h.converterService.Convert(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to convert", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to perform conversion"})
		return
	}

	logger.Info("Conversion recorded",
		slog.String("conversion_id", conversion.ConversionID),
		slog.String("pair", conversion.BaseCurrency+"/"+conversion.TargetCurrency),
		slog.String("rate_source", string(source)),
	)
	c.JSON(http.StatusCreated, dto.ToConversionResponse(conversion, source))
}

// listHistory godoc
// @Summary List own conversion history
// @Description Retrieves the authenticated user's conversions, newest first.
// @Tags conversions
// @Produce json
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListConversionsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /conversions/history [get]
func (h *converterHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListConversionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	conversions, err := h.converterService.ListUserConversions(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list conversion history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve conversion history"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListConversionsResponse(conversions))
}

// listAllConversions godoc
// @Summary List conversions across all users
// @Description Admin-only view of all recorded conversions, newest first.
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListConversionsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/conversions [get]
func (h *converterHandler) listAllConversions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListConversionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	conversions, err := h.converterService.ListAllConversions(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list conversions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve conversions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListConversionsResponse(conversions))
}
