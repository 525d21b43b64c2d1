package interfaces

import (
	"context"

	"github.com/bobmcallan/folio/internal/models"
)

// AnalyticsService answers the dashboard's read-only queries. Every query
// returns an envelope; failures are reported inside it, never as a Go error.
type AnalyticsService interface {
	// Holdings returns the normalized holdings.
	Holdings(ctx context.Context) models.Envelope

	// Allocation returns value shares by sector and by market-cap band.
	Allocation(ctx context.Context) models.Envelope

	// Performance returns the timeline and its trailing returns.
	Performance(ctx context.Context) models.Envelope

	// Summary returns portfolio totals, performers, diversification and risk.
	Summary(ctx context.Context) models.Envelope

	// Dashboard runs the four queries concurrently. It fails if any query fails.
	Dashboard(ctx context.Context) (*models.Dashboard, error)

	// PerformanceChart renders the timeline as a PNG line chart.
	PerformanceChart(ctx context.Context) ([]byte, error)
}
