package models

// RiskLevel classifies the portfolio by its overall return.
type RiskLevel string

const (
	RiskUnknown  RiskLevel = "Unknown"
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// Performer identifies a holding ranked by percentage gain.
type Performer struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	GainPercent float64 `json:"gainPercent"`
}

// Summary holds portfolio-level metrics derived from the holdings.
type Summary struct {
	Message              string     `json:"message,omitempty"`
	TotalValue           int64      `json:"totalValue"`
	TotalInvested        int64      `json:"totalInvested"`
	TotalGainLoss        int64      `json:"totalGainLoss"`
	TotalGainLossPercent float64    `json:"totalGainLossPercent"`
	TopPerformer         *Performer `json:"topPerformer"`
	WorstPerformer       *Performer `json:"worstPerformer"`
	DiversificationScore float64    `json:"diversificationScore"`
	RiskLevel            RiskLevel  `json:"riskLevel"`
}

// EmptySummary is the summary of a portfolio with no holdings.
func EmptySummary() Summary {
	return Summary{RiskLevel: RiskUnknown}
}

// IsEmpty reports whether the summary is the no-holdings result.
func (s Summary) IsEmpty() bool {
	return s.RiskLevel == RiskUnknown
}
