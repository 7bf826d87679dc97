// Package entity defines the domain models for the prices feature.
package entity

import "strings"

// nullSymbol is a placeholder some upstream imports write instead of a real NULL.
const nullSymbol = "null"

// Instrument is a listed equity whose daily close may be tracked.
type Instrument struct {
	ID             uint    // Store identifier
	Code           string  // Display code (e.g., "BBCA")
	ExternalSymbol *string // Provider ticker (e.g., "BBCA.JK"); nil when unmapped
	IsTracked      bool
}

// Symbol returns the provider ticker, or "" when unmapped.
func (i Instrument) Symbol() string {
	if i.ExternalSymbol == nil {
		return ""
	}
	return strings.TrimSpace(*i.ExternalSymbol)
}

// HasExternalSymbol reports whether the instrument carries a usable provider ticker.
// Empty strings and the literal "null" count as unmapped.
func (i Instrument) HasExternalSymbol() bool {
	s := i.Symbol()
	return s != "" && !strings.EqualFold(s, nullSymbol)
}
