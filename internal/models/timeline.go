package models

import (
	"encoding/json"
	"time"
)

// Asset is one of the series carried by every timeline point.
type Asset string

const (
	AssetPortfolio Asset = "portfolio"
	AssetNifty50   Asset = "nifty50"
	AssetGold      Asset = "gold"
)

// Assets lists the series in reporting order.
var Assets = []Asset{AssetPortfolio, AssetNifty50, AssetGold}

// Window is a named trailing lookback period.
type Window string

const (
	Window1Month  Window = "1month"
	Window3Months Window = "3months"
	Window1Year   Window = "1year"
)

// Windows lists the lookback periods in reporting order.
var Windows = []Window{Window1Month, Window3Months, Window1Year}

// Lookback returns the calendar offset (years, months) the window spans.
func (w Window) Lookback() (years, months int) {
	switch w {
	case Window1Month:
		return 0, 1
	case Window3Months:
		return 0, 3
	case Window1Year:
		return 1, 0
	}
	return 0, 0
}

// TimelinePoint is one dated observation of portfolio and benchmark values.
type TimelinePoint struct {
	Date      string    `json:"date"`
	Portfolio float64   `json:"portfolio"`
	Nifty50   float64   `json:"nifty50"`
	Gold      float64   `json:"gold"`
	At        time.Time `json:"-"`
}

// Value returns the point's value for an asset.
func (p TimelinePoint) Value(a Asset) float64 {
	switch a {
	case AssetPortfolio:
		return p.Portfolio
	case AssetNifty50:
		return p.Nifty50
	case AssetGold:
		return p.Gold
	}
	return 0
}

// WindowReturns holds one asset's percentage return per window.
type WindowReturns struct {
	OneMonth    float64 `json:"1month"`
	ThreeMonths float64 `json:"3months"`
	OneYear     float64 `json:"1year"`
}

// Get returns the return for a window.
func (r WindowReturns) Get(w Window) float64 {
	switch w {
	case Window1Month:
		return r.OneMonth
	case Window3Months:
		return r.ThreeMonths
	case Window1Year:
		return r.OneYear
	}
	return 0
}

// Set stores the return for a window.
func (r *WindowReturns) Set(w Window, v float64) {
	switch w {
	case Window1Month:
		r.OneMonth = v
	case Window3Months:
		r.ThreeMonths = v
	case Window1Year:
		r.OneYear = v
	}
}

// ReturnsByWindow holds trailing returns for every asset. The zero value is
// the defined "insufficient data" result.
type ReturnsByWindow struct {
	Portfolio WindowReturns `json:"portfolio"`
	Nifty50   WindowReturns `json:"nifty50"`
	Gold      WindowReturns `json:"gold"`
}

// For returns a pointer to the asset's window returns.
func (r *ReturnsByWindow) For(a Asset) *WindowReturns {
	switch a {
	case AssetPortfolio:
		return &r.Portfolio
	case AssetNifty50:
		return &r.Nifty50
	case AssetGold:
		return &r.Gold
	}
	return nil
}

// Performance is the success payload of the performance query. Timeline
// carries the snapshot records exactly as read.
type Performance struct {
	Timeline []json.RawMessage `json:"timeline"`
	Returns  ReturnsByWindow   `json:"returns"`
}
