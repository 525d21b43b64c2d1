package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/folio/internal/models"
)

// formatINR formats rupees with the ₹ sign, thousands separators and paise.
func formatINR(v float64) string {
	paise := decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
	return money.New(paise, money.INR).Display()
}

// formatPercent formats a percentage with an explicit sign.
func formatPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))
}

// emptyMessage returns the message carried by an empty envelope.
func emptyMessage(env models.Envelope) string {
	switch b := env.Body.(type) {
	case models.EmptyHoldings:
		return b.Message
	case models.EmptyAllocation:
		return b.Message
	case models.Summary:
		return b.Message
	}
	return ""
}

func renderHoldings(w io.Writer, env models.Envelope) {
	heading(w, "Holdings")
	holdings, ok := env.Body.([]models.Holding)
	if !ok {
		fmt.Fprintln(w, emptyMessage(env))
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "Symbol\tName\tQty\tValue\tGain/Loss\tGain %\t")
	for _, h := range holdings {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t\n",
			h.Symbol, h.Name, h.Quantity, formatINR(h.Value), formatINR(h.GainLoss), formatPercent(h.GainLossPercent))
	}
	tw.Flush()
}

func renderAllocationTable(w io.Writer, title string, alloc models.Allocation) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(alloc) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	tw := newTable(w)
	for _, g := range alloc {
		fmt.Fprintf(tw, "  %s\t%s\t%.2f%%\t\n", g.Label, formatINR(float64(g.Value)), g.Percentage)
	}
	tw.Flush()
}

func renderAllocation(w io.Writer, env models.Envelope) {
	heading(w, "Allocation")
	breakdown, ok := env.Body.(models.AllocationBreakdown)
	if !ok {
		fmt.Fprintln(w, emptyMessage(env))
		return
	}
	renderAllocationTable(w, "By sector", breakdown.BySector)
	renderAllocationTable(w, "By market cap", breakdown.ByMarketCap)
}

var assetNames = map[models.Asset]string{
	models.AssetPortfolio: "Portfolio",
	models.AssetNifty50:   "Nifty 50",
	models.AssetGold:      "Gold",
}

func renderPerformance(w io.Writer, env models.Envelope) {
	heading(w, "Performance")
	perf, ok := env.Body.(models.Performance)
	if !ok {
		return
	}
	fmt.Fprintf(w, "%d timeline points\n\n", len(perf.Timeline))
	tw := newTable(w)
	fmt.Fprintln(tw, "Asset\t1 month\t3 months\t1 year\t")
	for _, a := range models.Assets {
		r := perf.Returns.For(a)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", assetNames[a],
			formatPercent(r.Get(models.Window1Month)),
			formatPercent(r.Get(models.Window3Months)),
			formatPercent(r.Get(models.Window1Year)))
	}
	tw.Flush()
}

func renderSummary(w io.Writer, env models.Envelope) {
	heading(w, "Summary")
	s, ok := env.Body.(models.Summary)
	if !ok {
		return
	}
	if s.IsEmpty() {
		fmt.Fprintln(w, s.Message)
		return
	}
	performer := func(p *models.Performer) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprintf("%s (%s)", p.Symbol, formatPercent(p.GainPercent))
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total value\t%s\n", formatINR(float64(s.TotalValue)))
	fmt.Fprintf(tw, "Total invested\t%s\n", formatINR(float64(s.TotalInvested)))
	fmt.Fprintf(tw, "Total gain/loss\t%s (%s)\n", formatINR(float64(s.TotalGainLoss)), formatPercent(s.TotalGainLossPercent))
	fmt.Fprintf(tw, "Top performer\t%s\n", performer(s.TopPerformer))
	fmt.Fprintf(tw, "Worst performer\t%s\n", performer(s.WorstPerformer))
	fmt.Fprintf(tw, "Diversification\t%.1f / 10\n", s.DiversificationScore)
	fmt.Fprintf(tw, "Risk level\t%s\n", s.RiskLevel)
	tw.Flush()
}

func renderDashboard(w io.Writer, d *models.Dashboard) {
	renderSummary(w, d.Summary)
	renderAllocation(w, d.Allocation)
	renderPerformance(w, d.Performance)
	renderHoldings(w, d.Holdings)
}
