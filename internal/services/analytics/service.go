// Package analytics computes holdings, allocation, performance and summary
// views from the portfolio snapshots.
package analytics

import (
	"context"
	"fmt"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

const (
	msgNoHoldings   = "No portfolio holdings found"
	msgNoAllocation = "No portfolio data available for allocation calculation"
	msgNoSummary    = "No portfolio data available for summary calculation"

	msgHoldingsFailed    = "Failed to fetch portfolio holdings"
	msgAllocationFailed  = "Failed to calculate portfolio allocation"
	msgPerformanceFailed = "Failed to fetch performance data"
	msgSummaryFailed     = "Failed to calculate portfolio summary"
)

// Service implements interfaces.AnalyticsService over a snapshot store.
// It holds no state between queries.
type Service struct {
	store  interfaces.SnapshotStore
	chart  common.ChartConfig
	logger *common.Logger
}

var _ interfaces.AnalyticsService = (*Service)(nil)

// NewService creates a new analytics service.
func NewService(store interfaces.SnapshotStore, chart common.ChartConfig, logger *common.Logger) *Service {
	return &Service{
		store:  store,
		chart:  chart,
		logger: logger,
	}
}

// Holdings returns the normalized holdings list.
func (s *Service) Holdings(ctx context.Context) models.Envelope {
	return s.guard("holdings", msgHoldingsFailed, func() models.Envelope {
		holdings, err := s.loadHoldings(ctx)
		if err != nil {
			return s.fail("holdings", msgHoldingsFailed, err)
		}
		if len(holdings) == 0 {
			return models.Empty(models.EmptyHoldings{Message: msgNoHoldings, Data: []models.Holding{}})
		}
		return models.OK(holdings)
	})
}

// Allocation returns value shares grouped by sector and by market cap.
func (s *Service) Allocation(ctx context.Context) models.Envelope {
	return s.guard("allocation", msgAllocationFailed, func() models.Envelope {
		holdings, err := s.loadHoldings(ctx)
		if err != nil {
			return s.fail("allocation", msgAllocationFailed, err)
		}
		if len(holdings) == 0 {
			return models.Empty(models.EmptyAllocation{
				Message:     msgNoAllocation,
				BySector:    models.Allocation{},
				ByMarketCap: models.Allocation{},
			})
		}
		return models.OK(models.AllocationBreakdown{
			BySector:    Aggregate(holdings, models.GroupBySector),
			ByMarketCap: Aggregate(holdings, models.GroupByMarketCap),
		})
	})
}

// Performance returns the timeline as stored together with its trailing
// returns. An empty or undated timeline still succeeds with zero returns.
func (s *Service) Performance(ctx context.Context) models.Envelope {
	return s.guard("performance", msgPerformanceFailed, func() models.Envelope {
		records, err := s.store.LoadTimeline(ctx)
		if err != nil {
			return s.fail("performance", msgPerformanceFailed, err)
		}
		return models.OK(models.Performance{
			Timeline: records,
			Returns:  ComputeReturns(ParseTimeline(records)),
		})
	})
}

// Summary returns portfolio totals and derived indicators.
func (s *Service) Summary(ctx context.Context) models.Envelope {
	return s.guard("summary", msgSummaryFailed, func() models.Envelope {
		holdings, err := s.loadHoldings(ctx)
		if err != nil {
			return s.fail("summary", msgSummaryFailed, err)
		}
		if len(holdings) == 0 {
			empty := models.EmptySummary()
			empty.Message = msgNoSummary
			return models.Empty(empty)
		}
		return models.OK(Summarize(holdings))
	})
}

// PerformanceChart renders the dated timeline as a PNG.
func (s *Service) PerformanceChart(ctx context.Context) ([]byte, error) {
	records, err := s.store.LoadTimeline(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}
	return RenderPerformanceChart(SortTimeline(ParseTimeline(records)), s.chart.Width, s.chart.Height)
}

func (s *Service) loadHoldings(ctx context.Context) ([]models.Holding, error) {
	records, err := s.store.LoadHoldings(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeHoldings(records, s.logger), nil
}

func (s *Service) fail(query, message string, err error) models.Envelope {
	s.logger.Error().Str("query", query).Err(err).Msg(message)
	return models.Fail(message, err)
}

// guard turns a panic inside a query into a failure envelope.
func (s *Service) guard(query, message string, fn func() models.Envelope) (env models.Envelope) {
	defer func() {
		if rec := recover(); rec != nil {
			env = s.fail(query, message, fmt.Errorf("unexpected failure: %v", rec))
		}
	}()
	return fn()
}
