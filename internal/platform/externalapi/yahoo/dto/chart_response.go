// Package dto defines data transfer objects for the Yahoo Finance chart API.
package dto

// ChartResponse represents the JSON response of the v8 chart endpoint.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

// ChartError is the error object returned for unknown symbols and bad requests.
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ChartResult holds the bars of one symbol.
type ChartResult struct {
	Meta struct {
		Symbol               string `json:"symbol"`
		Currency             string `json:"currency"`
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
		GMTOffset            int    `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"` // null for bars without trades
		} `json:"quote"`
	} `json:"indicators"`
}
