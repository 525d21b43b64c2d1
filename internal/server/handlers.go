package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/analytics"
)

const (
	msgDashboardFailed = "Failed to build portfolio dashboard"
	msgChartFailed     = "Failed to render performance chart"
)

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, common.GetVersionInfo())
}

// handlePortfolioHoldings handles GET /api/portfolio/holdings.
func (s *Server) handlePortfolioHoldings(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteEnvelope(w, s.app.Analytics.Holdings(r.Context()))
}

// handlePortfolioAllocation handles GET /api/portfolio/allocation.
func (s *Server) handlePortfolioAllocation(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteEnvelope(w, s.app.Analytics.Allocation(r.Context()))
}

// handlePortfolioPerformance handles GET /api/portfolio/performance.
func (s *Server) handlePortfolioPerformance(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteEnvelope(w, s.app.Analytics.Performance(r.Context()))
}

// handlePortfolioSummary handles GET /api/portfolio/summary.
func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteEnvelope(w, s.app.Analytics.Summary(r.Context()))
}

// handlePortfolioDashboard handles GET /api/portfolio/dashboard.
// Any failing query fails the whole response.
func (s *Server) handlePortfolioDashboard(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	d, err := s.app.Analytics.Dashboard(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg(msgDashboardFailed)
		WriteJSON(w, http.StatusInternalServerError, models.Failure{
			Message: msgDashboardFailed,
			Error:   err.Error(),
		})
		return
	}
	WriteJSON(w, http.StatusOK, d)
}

// handlePortfolioPerformanceChart handles GET /api/portfolio/performance/chart.
func (s *Server) handlePortfolioPerformanceChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	png, err := s.app.Analytics.PerformanceChart(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, analytics.ErrInsufficientChartData) {
			status = http.StatusUnprocessableEntity
		} else {
			s.logger.Error().Err(err).Msg(msgChartFailed)
		}
		WriteJSON(w, status, models.Failure{Message: msgChartFailed, Error: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		s.logger.Debug().Err(err).Int("bytes", len(png)).Msg("Failed to write chart response")
	}
}
