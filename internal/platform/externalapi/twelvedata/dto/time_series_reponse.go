// Package dto defines data transfer objects for the Twelve Data API responses.
package dto

// TimeSeriesResponse represents the JSON response from the Twelve Data time_series endpoint.
type TimeSeriesResponse struct {
	Status  string          `json:"status"`
	Code    int             `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Meta    TimeSeriesMeta  `json:"meta"`
	Values  []TimeSeriesBar `json:"values"`
}

// TimeSeriesMeta describes the requested series.
type TimeSeriesMeta struct {
	Symbol           string `json:"symbol"`
	Interval         string `json:"interval"`
	ExchangeTimezone string `json:"exchange_timezone"`
}

// TimeSeriesBar is one bar; only the fields the updater consumes are decoded.
type TimeSeriesBar struct {
	Datetime string `json:"datetime"`
	Close    string `json:"close"`
}
