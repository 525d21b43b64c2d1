package server

import "net/http"

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Portfolio analytics
	mux.HandleFunc("/api/portfolio/holdings", s.handlePortfolioHoldings)
	mux.HandleFunc("/api/portfolio/allocation", s.handlePortfolioAllocation)
	mux.HandleFunc("/api/portfolio/performance", s.handlePortfolioPerformance)
	mux.HandleFunc("/api/portfolio/performance/chart", s.handlePortfolioPerformanceChart)
	mux.HandleFunc("/api/portfolio/summary", s.handlePortfolioSummary)
	mux.HandleFunc("/api/portfolio/dashboard", s.handlePortfolioDashboard)
}
