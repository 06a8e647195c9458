package dto

import (
	"time"
)

// ConvertRequest binds the query parameters of the convert endpoint.
// The currency_code validation (3-letter alpha) is registered in the handlers
// package; membership in the supported set is enforced by the domain layer.
type ConvertRequest struct {
	From   string `form:"from" binding:"required,currency_code"`
	To     string `form:"to" binding:"required,currency_code,nefield=From"`
	Amount string `form:"amount" binding:"required"`
}

// ConversionData is the payload of a successful conversion.
type ConversionData struct {
	From        string    `json:"from"`
	To          string    `json:"to"`
	Amount      string    `json:"amount"`
	Result      string    `json:"result"`
	Rate        string    `json:"rate"`
	LastUpdated time.Time `json:"last_updated"`
}

// ConversionMeta carries resolution metadata alongside the conversion result.
type ConversionMeta struct {
	Source          string  `json:"source"`
	ExecutionTimeMS float64 `json:"execution_time_ms,omitempty"`
}

// ConvertResponse is the response envelope of the convert endpoint.
type ConvertResponse struct {
	Data ConversionData `json:"data"`
	Meta ConversionMeta `json:"meta"`
}
