package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/models"
)

func sampleHoldings() []models.Holding {
	return []models.Holding{
		{Symbol: "INFY", Name: "Infosys", Quantity: 10, AvgPrice: 100, Sector: "Tech", Value: 1500, GainLoss: 500, GainLossPercent: 50},
		{Symbol: "TCS", Name: "Tata Consultancy", Quantity: 5, AvgPrice: 200, Sector: "Tech", Value: 900, GainLoss: -100, GainLossPercent: -10},
		{Symbol: "HDFCBANK", Name: "HDFC Bank", Quantity: 20, AvgPrice: 50, Sector: "Bank", Value: 1100, GainLoss: 100, GainLossPercent: 10},
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)

	assert.Equal(t, models.EmptySummary(), got)
	assert.True(t, got.IsEmpty())
	assert.Equal(t, models.RiskUnknown, got.RiskLevel)
	assert.Equal(t, 0.0, got.DiversificationScore)
	assert.Nil(t, got.TopPerformer)
	assert.Nil(t, got.WorstPerformer)
}

func TestSummarize_Totals(t *testing.T) {
	got := Summarize(sampleHoldings())

	assert.Equal(t, int64(3500), got.TotalValue)
	assert.Equal(t, int64(3000), got.TotalInvested)
	assert.Equal(t, int64(500), got.TotalGainLoss)
	assert.Equal(t, 16.67, got.TotalGainLossPercent)
	assert.Equal(t, models.RiskModerate, got.RiskLevel)
	assert.Equal(t, 3.0, got.DiversificationScore)
	assert.False(t, got.IsEmpty())
}

func TestSummarize_Performers(t *testing.T) {
	got := Summarize(sampleHoldings())

	require.NotNil(t, got.TopPerformer)
	require.NotNil(t, got.WorstPerformer)
	assert.Equal(t, models.Performer{Symbol: "INFY", Name: "Infosys", GainPercent: 50}, *got.TopPerformer)
	assert.Equal(t, models.Performer{Symbol: "TCS", Name: "Tata Consultancy", GainPercent: -10}, *got.WorstPerformer)
}

func TestSummarize_SingleHolding(t *testing.T) {
	got := Summarize([]models.Holding{{Symbol: "ONLY", GainLossPercent: 4.2}})

	require.NotNil(t, got.TopPerformer)
	require.NotNil(t, got.WorstPerformer)
	assert.Equal(t, "ONLY", got.TopPerformer.Symbol)
	assert.Equal(t, "ONLY", got.WorstPerformer.Symbol)
	assert.Equal(t, 0.0, got.TotalGainLossPercent, "nothing invested")
	assert.Equal(t, models.RiskModerate, got.RiskLevel)
	assert.Equal(t, 1.0, got.DiversificationScore, "no sector clamps to the minimum")
}

func TestSummarize_TiedPerformersKeepInputOrder(t *testing.T) {
	got := Summarize([]models.Holding{
		{Symbol: "A", GainLossPercent: 5},
		{Symbol: "B", GainLossPercent: 5},
		{Symbol: "C", GainLossPercent: 5},
	})

	assert.Equal(t, "A", got.TopPerformer.Symbol)
	assert.Equal(t, "C", got.WorstPerformer.Symbol)
}

func TestSummarize_RoundsTotalsHalfUp(t *testing.T) {
	got := Summarize([]models.Holding{
		{Quantity: 1, AvgPrice: 1000, Value: 1234.5, GainLoss: 234.5},
	})

	assert.Equal(t, int64(1235), got.TotalValue)
	assert.Equal(t, int64(1000), got.TotalInvested)
	assert.Equal(t, int64(235), got.TotalGainLoss)
	assert.Equal(t, 23.45, got.TotalGainLossPercent)
	assert.Equal(t, models.RiskHigh, got.RiskLevel)
}

func TestSummarize_IgnoresNonFiniteValues(t *testing.T) {
	got := Summarize([]models.Holding{
		{Symbol: "A", Quantity: 1, AvgPrice: 100, Value: 120, GainLoss: 20, GainLossPercent: 20},
		{Symbol: "B", Value: math.NaN(), GainLoss: math.Inf(1), GainLossPercent: math.NaN()},
	})

	assert.Equal(t, int64(120), got.TotalValue)
	assert.Equal(t, int64(20), got.TotalGainLoss)
	assert.Equal(t, "A", got.TopPerformer.Symbol)
	assert.Equal(t, "A", got.WorstPerformer.Symbol)
}

func TestDiversificationScore(t *testing.T) {
	sectors := func(names ...string) []models.Holding {
		holdings := make([]models.Holding, len(names))
		for i, n := range names {
			holdings[i] = models.Holding{Sector: n}
		}
		return holdings
	}

	tests := []struct {
		name     string
		holdings []models.Holding
		want     float64
	}{
		{"no holdings", nil, 0},
		{"blank sectors only", sectors("", "  "), 1.0},
		{"one sector", sectors("Tech"), 1.5},
		{"duplicates counted once", sectors("Tech", "Tech", "Bank"), 3.0},
		{"whitespace trimmed", sectors("Tech", " Tech ", "Bank"), 3.0},
		{"case sensitive", sectors("Tech", "tech"), 3.0},
		{"six sectors", sectors("A", "B", "C", "D", "E", "F"), 9.0},
		{"clamped to ten", sectors("A", "B", "C", "D", "E", "F", "G", "H"), 10.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiversificationScore(tt.holdings)
			assert.Equal(t, tt.want, got)
			if len(tt.holdings) > 0 {
				assert.GreaterOrEqual(t, got, 1.0)
				assert.LessOrEqual(t, got, 10.0)
			}
		})
	}
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		percent float64
		want    models.RiskLevel
	}{
		{35, models.RiskHigh},
		{20.01, models.RiskHigh},
		{20, models.RiskModerate},
		{0, models.RiskModerate},
		{-10, models.RiskModerate},
		{-10.01, models.RiskLow},
		{-45, models.RiskLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRisk(tt.percent), "ClassifyRisk(%v)", tt.percent)
	}
}

func TestSummarize_HugeTotalsSaturate(t *testing.T) {
	got := Summarize([]models.Holding{
		{Symbol: "BIG", Quantity: 5, AvgPrice: 1e300, Sector: "T", Value: 1e300, GainLoss: 1e300, GainLossPercent: 1},
		{Symbol: "SHORT", Sector: "T", GainLoss: -1e301, GainLossPercent: -1},
	})

	assert.Equal(t, int64(math.MaxInt64), got.TotalValue)
	assert.Equal(t, int64(math.MaxInt64), got.TotalInvested)
	assert.Equal(t, int64(math.MinInt64), got.TotalGainLoss)
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{2.5, 3},
		{-2.5, -2},
		{1234.49, 1234},
		{1e300, math.MaxInt64},
		{9.3e18, math.MaxInt64},
		{-1e300, math.MinInt64},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundHalfUp(tt.in), "roundHalfUp(%v)", tt.in)
	}
}
