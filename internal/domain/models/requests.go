package models

// Requests for the analysis HTTP endpoints. Defined in domain for
// consistency and reuse.

type IndicatorsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	From   string `query:"from" json:"from"`
	To     string `query:"to" json:"to"`
	// Timeframe filters the response to one timeframe; empty returns both.
	Timeframe string `query:"timeframe" json:"timeframe" validate:"omitempty,oneof=1d 1w"`
}

type AnalyzeRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	From   string `query:"from" json:"from"`
	To     string `query:"to" json:"to"`
	Limit  int    `query:"limit" json:"limit" default:"10000" validate:"gte=1,lte=50000"`
}

type ScanRequest struct {
	Symbols []string `json:"symbols" validate:"required,min=1,max=500,dive,required"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	Publish bool     `json:"publish"`
}
