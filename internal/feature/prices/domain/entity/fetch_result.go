package entity

import (
	"errors"
	"fmt"
)

// ErrNoData is reported when the provider returns no bars for the requested window.
var ErrNoData = errors.New("no data for requested window")

// FailureReason classifies why a fetch produced no bar.
type FailureReason string

const (
	// ReasonNoData means the provider answered with an empty history.
	ReasonNoData FailureReason = "no_data"
	// ReasonProvider covers network, HTTP, decoding and unknown-symbol faults.
	ReasonProvider FailureReason = "provider_error"
)

// FetchResult is the outcome of fetching the latest bar for one symbol.
// Exactly one of Bar (success) or Reason (failure) is meaningful.
type FetchResult struct {
	Bar    DailyBar
	Reason FailureReason
	Err    error
}

// FetchSuccess wraps a bar in a successful result.
func FetchSuccess(bar DailyBar) FetchResult {
	return FetchResult{Bar: bar}
}

// FetchFailure builds a failed result.
func FetchFailure(reason FailureReason, err error) FetchResult {
	return FetchResult{Reason: reason, Err: err}
}

// OK reports whether the fetch produced a bar.
func (r FetchResult) OK() bool {
	return r.Reason == ""
}

// String describes the failure; it is empty for a successful result.
func (r FetchResult) String() string {
	if r.OK() {
		return ""
	}
	if r.Err == nil {
		return string(r.Reason)
	}
	return fmt.Sprintf("%s: %v", r.Reason, r.Err)
}
