package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// rawRecords splits a JSON array literal into raw records.
func rawRecords(t *testing.T, doc string) []models.RawHoldingRecord {
	t.Helper()
	var records []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(doc), &records))
	return records
}

func TestNormalizeHoldings_DisplayLabels(t *testing.T) {
	records := rawRecords(t, `[{"Symbol":"TCS","Quantity":"10","Value ₹":"1000","Gain/Loss %":"5.5%"}]`)

	holdings := NormalizeHoldings(records, common.NewSilentLogger())

	require.Len(t, holdings, 1)
	h := holdings[0]
	assert.Equal(t, "TCS", h.Symbol)
	assert.Equal(t, 10, h.Quantity)
	assert.Equal(t, 1000.0, h.Value)
	assert.Equal(t, 5.5, h.GainLossPercent)
	assert.Equal(t, "", h.Name)
	assert.Equal(t, 0.0, h.AvgPrice)
}

func TestNormalizeHoldings_DropsNonObjects(t *testing.T) {
	records := rawRecords(t, `[null, 42, {"Symbol":"X"}, "TCS", [1,2], true]`)

	holdings := NormalizeHoldings(records, common.NewSilentLogger())

	require.Len(t, holdings, 1)
	assert.Equal(t, "X", holdings[0].Symbol)
}

func TestNormalizeHoldings_AllFields(t *testing.T) {
	records := rawRecords(t, `[{
		"Symbol": "RELIANCE",
		"Company Name": "Reliance Industries",
		"Quantity": 50,
		"Avg Price ₹": "2450.50",
		"Current Price (₹)": 2600,
		"Sector": "Energy",
		"Market Cap": "Large",
		"Value ₹": 130000,
		"Gain/Loss (₹)": "7475",
		"Gain/Loss %": "6.10%"
	}]`)

	holdings := NormalizeHoldings(records, common.NewSilentLogger())

	require.Len(t, holdings, 1)
	assert.Equal(t, models.Holding{
		Symbol:          "RELIANCE",
		Name:            "Reliance Industries",
		Quantity:        50,
		AvgPrice:        2450.5,
		CurrentPrice:    2600,
		Sector:          "Energy",
		MarketCap:       "Large",
		Value:           130000,
		GainLoss:        7475,
		GainLossPercent: 6.1,
	}, holdings[0])
}

func TestNormalizeHoldings_ShortKeys(t *testing.T) {
	records := rawRecords(t, `[{"symbol":"INFY","name":"Infosys","quantity":3,"avgPrice":1500,"currentPrice":1600,
		"sector":"Technology","marketCap":"Large","value":4800,"gainLoss":300,"gainLossPercent":6.67}]`)

	holdings := NormalizeHoldings(records, common.NewSilentLogger())

	require.Len(t, holdings, 1)
	h := holdings[0]
	assert.Equal(t, "Infosys", h.Name)
	assert.Equal(t, 3, h.Quantity)
	assert.Equal(t, 4500.0, h.Invested())
	assert.Equal(t, 6.67, h.GainLossPercent, "numeric percent is accepted as is")
}

func TestNormalizeHoldings_DisplayLabelWinsUnlessFalsy(t *testing.T) {
	records := rawRecords(t, `[
		{"Symbol":"A","symbol":"a","Quantity":0,"quantity":"7","Sector":"","sector":"Banking"}
	]`)

	holdings := NormalizeHoldings(records, common.NewSilentLogger())

	require.Len(t, holdings, 1)
	assert.Equal(t, "A", holdings[0].Symbol)
	assert.Equal(t, 7, holdings[0].Quantity, "zero display value falls through to the short key")
	assert.Equal(t, "Banking", holdings[0].Sector, "empty display value falls through to the short key")
}

func TestNormalizeHoldings_InvalidFieldsDefault(t *testing.T) {
	records := rawRecords(t, `[{"Symbol":"BAD","Quantity":"ten","Value ₹":"n/a","Gain/Loss %":"%","Avg Price ₹":{"x":1},"Sector":null}]`)

	holdings := NormalizeHoldings(records, common.NewSilentLogger())

	require.Len(t, holdings, 1, "field failures never drop the record")
	h := holdings[0]
	assert.Equal(t, 0, h.Quantity)
	assert.Equal(t, 0.0, h.Value)
	assert.Equal(t, 0.0, h.GainLossPercent)
	assert.Equal(t, 0.0, h.AvgPrice)
	assert.Equal(t, "", h.Sector)
}

func TestNormalizeHoldings_EmptyInput(t *testing.T) {
	assert.Empty(t, NormalizeHoldings(nil, common.NewSilentLogger()))
	assert.Empty(t, NormalizeHoldings(rawRecords(t, `[]`), common.NewSilentLogger()))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   interface{}
		want float64
	}{
		{"1000", 1000},
		{"  12.5 ", 12.5},
		{"1200.50 INR", 1200.5},
		{"-3.25", -3.25},
		{".5", 0.5},
		{"1e3", 1000},
		{"1,234", 1},
		{"abc", 0},
		{"", 0},
		{"NaN", 0},
		{"Infinity", 0},
		{42.0, 42},
		{true, 0},
		{nil, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseNumber(tt.in), "parseNumber(%#v)", tt.in)
	}
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		in   interface{}
		want int
	}{
		{"10", 10},
		{"10.7", 10},
		{"-4", -4},
		{"12 shares", 12},
		{"x12", 0},
		{10.9, 10},
		{-2.5, -2},
		{nil, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseInteger(tt.in), "parseInteger(%#v)", tt.in)
	}
}

func TestParsePercent(t *testing.T) {
	assert.Equal(t, 5.5, parsePercent("5.5%"))
	assert.Equal(t, -2.25, parsePercent("-2.25 %"))
	assert.Equal(t, 3.0, parsePercent("3"))
	assert.Equal(t, 7.5, parsePercent(7.5))
	assert.Equal(t, 0.0, parsePercent("%"))
}

func TestTruthy(t *testing.T) {
	assert.False(t, truthy(nil))
	assert.False(t, truthy(""))
	assert.False(t, truthy(0.0))
	assert.False(t, truthy(false))
	assert.True(t, truthy("0"))
	assert.True(t, truthy(-1.0))
	assert.True(t, truthy(map[string]interface{}{}))
}
