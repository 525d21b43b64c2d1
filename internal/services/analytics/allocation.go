package analytics

import (
	"github.com/bobmcallan/folio/internal/models"
)

// Aggregate groups holdings by a categorical key and returns each group's
// value and percentage share of the total. Holdings without a label or
// with a non-positive value are ignored. An empty result means nothing
// qualified.
func Aggregate(holdings []models.Holding, key models.GroupKey) models.Allocation {
	var order []string
	sums := make(map[string]float64)
	total := 0.0

	for _, h := range holdings {
		label := h.Label(key)
		value := h.Value
		if label == "" || !isFinite(value) || value <= 0 {
			continue
		}
		if _, seen := sums[label]; !seen {
			order = append(order, label)
		}
		sums[label] += value
		total += value
	}

	if total == 0 {
		return models.Allocation{}
	}

	result := make(models.Allocation, 0, len(order))
	for _, label := range order {
		value := sums[label]
		result = append(result, models.AllocationGroup{
			Label:      label,
			Value:      roundHalfUp(value),
			Percentage: roundTo(value/total*100, 2),
		})
	}
	return result
}
