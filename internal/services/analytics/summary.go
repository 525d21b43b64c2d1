package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/bobmcallan/folio/internal/models"
)

const (
	diversificationPerSector = 1.5
	diversificationMin       = 1.0
	diversificationMax       = 10.0

	highRiskAbove = 20.0
	lowRiskBelow  = -10.0
)

// Summarize derives portfolio-level metrics from the holdings. With no
// holdings it returns the empty summary (risk "Unknown", score 0).
func Summarize(holdings []models.Holding) models.Summary {
	if len(holdings) == 0 {
		return models.EmptySummary()
	}

	var totalValue, totalInvested, totalGainLoss float64
	for _, h := range holdings {
		totalValue += finiteOrZero(h.Value)
		totalInvested += finiteOrZero(h.Invested())
		totalGainLoss += finiteOrZero(h.GainLoss)
	}

	totalGainLossPercent := 0.0
	if totalInvested > 0 {
		totalGainLossPercent = totalGainLoss / totalInvested * 100
	}

	top, worst := rankPerformers(holdings)

	return models.Summary{
		TotalValue:           roundHalfUp(totalValue),
		TotalInvested:        roundHalfUp(totalInvested),
		TotalGainLoss:        roundHalfUp(totalGainLoss),
		TotalGainLossPercent: roundTo(totalGainLossPercent, 2),
		TopPerformer:         top,
		WorstPerformer:       worst,
		DiversificationScore: DiversificationScore(holdings),
		RiskLevel:            ClassifyRisk(totalGainLossPercent),
	}
}

// rankPerformers returns the holdings with the highest and lowest
// percentage gain. Holdings with a non-finite percentage are not ranked;
// among equal percentages the earlier holding ranks first.
func rankPerformers(holdings []models.Holding) (top, worst *models.Performer) {
	ranked := make([]models.Holding, 0, len(holdings))
	for _, h := range holdings {
		if isFinite(h.GainLossPercent) {
			ranked = append(ranked, h)
		}
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].GainLossPercent > ranked[j].GainLossPercent
	})

	return performerOf(ranked[0]), performerOf(ranked[len(ranked)-1])
}

func performerOf(h models.Holding) *models.Performer {
	return &models.Performer{
		Symbol:      h.Symbol,
		Name:        h.Name,
		GainPercent: h.GainLossPercent,
	}
}

// DiversificationScore rates spread across sectors from 1 to 10: each
// distinct non-blank sector is worth 1.5 points. Sector labels are trimmed
// before they are compared, so "Tech" and "Tech " count once; comparison
// is otherwise case sensitive. Returns 0 for no holdings.
func DiversificationScore(holdings []models.Holding) float64 {
	if len(holdings) == 0 {
		return 0
	}
	sectors := make(map[string]struct{})
	for _, h := range holdings {
		if s := strings.TrimSpace(h.Sector); s != "" {
			sectors[s] = struct{}{}
		}
	}
	score := float64(len(sectors)) * diversificationPerSector
	score = math.Min(diversificationMax, math.Max(diversificationMin, score))
	return roundTo(score, 1)
}

// ClassifyRisk labels the portfolio by its overall percentage return.
// Anything below -10% is Low; there is no separate tier below -20%.
func ClassifyRisk(totalGainLossPercent float64) models.RiskLevel {
	switch {
	case totalGainLossPercent > highRiskAbove:
		return models.RiskHigh
	case totalGainLossPercent < lowRiskBelow:
		return models.RiskLow
	default:
		return models.RiskModerate
	}
}

func finiteOrZero(x float64) float64 {
	if !isFinite(x) {
		return 0
	}
	return x
}
