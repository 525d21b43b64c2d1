// Package models defines the data shapes shared by the analytics core,
// the snapshot store and the query surfaces.
package models

import "encoding/json"

// RawHoldingRecord is one undecoded element of the holdings snapshot.
// It may hold any JSON value; only objects normalize into a Holding.
type RawHoldingRecord = json.RawMessage

// Holding is the canonical shape of a portfolio position.
// Every field has a zero default, so any object decodes into one.
type Holding struct {
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name"`
	Quantity        int     `json:"quantity"`
	AvgPrice        float64 `json:"avgPrice"`
	CurrentPrice    float64 `json:"currentPrice"`
	Sector          string  `json:"sector"`
	MarketCap       string  `json:"marketCap"`
	Value           float64 `json:"value"`
	GainLoss        float64 `json:"gainLoss"`
	GainLossPercent float64 `json:"gainLossPercent"`
}

// Invested returns the cost basis of the position.
func (h Holding) Invested() float64 {
	return h.AvgPrice * float64(h.Quantity)
}

// GroupKey names a categorical field of Holding used for allocation.
type GroupKey string

const (
	GroupBySector    GroupKey = "sector"
	GroupByMarketCap GroupKey = "marketCap"
)

// Label returns the holding's value for the given categorical key.
func (h Holding) Label(key GroupKey) string {
	switch key {
	case GroupBySector:
		return h.Sector
	case GroupByMarketCap:
		return h.MarketCap
	}
	return ""
}
