package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkarasev/currency_converter_app/internal/core/domain"
)

// ConversionRequest defines the payload for executing a conversion.
// Codes are normalized to uppercase by the service before use.
type ConversionRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	BaseCurrency   string          `json:"baseCurrency" binding:"required,len=3,alpha"`
	TargetCurrency string          `json:"targetCurrency" binding:"required,len=3,alpha"`
}

// ConversionResponse defines the API shape of an executed conversion.
type ConversionResponse struct {
	ConversionID    string            `json:"conversionID"`
	Amount          decimal.Decimal   `json:"amount"`
	BaseCurrency    string            `json:"baseCurrency"`
	TargetCurrency  string            `json:"targetCurrency"`
	ConvertedAmount decimal.Decimal   `json:"convertedAmount"`
	RateUsed        decimal.Decimal   `json:"rateUsed"`
	RateSource      domain.RateSource `json:"rateSource,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// ListConversionsParams defines query parameters for listing conversion history.
type ListConversionsParams struct {
	Limit  int `form:"limit,default=100"`
	Offset int `form:"offset,default=0"`
}

// ListConversionsResponse wraps a page of conversion history.
type ListConversionsResponse struct {
	Conversions []ConversionResponse `json:"conversions"`
}

// ToConversionResponse converts a domain.Conversion to ConversionResponse DTO.
// Source is left empty for historical records, where it was not captured.
func ToConversionResponse(conversion *domain.Conversion, source domain.RateSource) ConversionResponse {
	return ConversionResponse{
		ConversionID:    conversion.ConversionID,
		Amount:          conversion.Amount,
		BaseCurrency:    conversion.BaseCurrency,
		TargetCurrency:  conversion.TargetCurrency,
		ConvertedAmount: conversion.ConvertedAmount,
		RateUsed:        conversion.RateUsed,
		RateSource:      source,
		CreatedAt:       conversion.CreatedAt,
	}
}

// ToListConversionsResponse converts a slice of domain.Conversion to ListConversionsResponse DTO.
func ToListConversionsResponse(conversions []domain.Conversion) ListConversionsResponse {
	responses := make([]ConversionResponse, len(conversions))
	for i := range conversions {
		responses[i] = ToConversionResponse(&conversions[i], "")
	}
	return ListConversionsResponse{Conversions: responses}
}
