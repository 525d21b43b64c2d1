package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/bobmcallan/folio/internal/app"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/server"
)

var commands = []subcommands.Command{
	&queryCmd{name: "holdings", synopsis: "print normalized portfolio holdings", query: interfaces.AnalyticsService.Holdings, render: renderHoldings},
	&queryCmd{name: "allocation", synopsis: "print value allocation by sector and market cap", query: interfaces.AnalyticsService.Allocation, render: renderAllocation},
	&queryCmd{name: "performance", synopsis: "print the timeline and trailing returns", query: interfaces.AnalyticsService.Performance, render: renderPerformance},
	&queryCmd{name: "summary", synopsis: "print portfolio totals, performers and risk", query: interfaces.AnalyticsService.Summary, render: renderSummary},
	&dashboardCmd{},
	&chartCmd{},
	&serveCmd{},
}

func loadApp() (*app.App, error) {
	a, err := app.NewApp(*configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}
	return a, nil
}

func writeIndentedJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// queryCmd runs one analytics query and prints its envelope.
type queryCmd struct {
	name     string
	synopsis string
	query    func(interfaces.AnalyticsService, context.Context) models.Envelope
	render   func(io.Writer, models.Envelope)
	text     bool
}

func (c *queryCmd) Name() string     { return c.name }
func (c *queryCmd) Synopsis() string { return c.synopsis }
func (c *queryCmd) Usage() string {
	return fmt.Sprintf(`folio %s [-text]

  Prints the %s result as JSON, or as a text report with -text.
`, c.name, c.name)
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.text, "text", false, "render a text report instead of JSON")
}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return printEnvelope(os.Stdout, c.query(a.Analytics, ctx), c.text, c.render)
}

// printEnvelope writes an envelope and maps a failure to a non-zero exit.
func printEnvelope(w io.Writer, env models.Envelope, text bool, render func(io.Writer, models.Envelope)) subcommands.ExitStatus {
	if env.Failed() {
		if f, ok := env.Body.(models.Failure); ok {
			fmt.Fprintf(os.Stderr, "Error: %s: %s\n", f.Message, f.Error)
		}
		return subcommands.ExitFailure
	}
	if text {
		render(w, env)
		return subcommands.ExitSuccess
	}
	if err := writeIndentedJSON(w, env); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type dashboardCmd struct {
	text bool
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "print every portfolio view at once" }
func (*dashboardCmd) Usage() string {
	return `folio dashboard [-text]

  Runs the holdings, allocation, performance and summary queries together.
  Fails if any of them fails.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.text, "text", false, "render a text report instead of JSON")
}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	d, err := a.Analytics.Dashboard(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.text {
		renderDashboard(os.Stdout, d)
		return subcommands.ExitSuccess
	}
	if err := writeIndentedJSON(os.Stdout, d); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type chartCmd struct {
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render the performance timeline as a PNG" }
func (*chartCmd) Usage() string {
	return `folio chart -o <file.png>

  Renders portfolio, Nifty 50 and gold values over time.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "performance.png", "output file")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.output == "" {
		fmt.Fprintln(os.Stderr, "Error: -o is required")
		return subcommands.ExitUsageError
	}
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	png, err := a.Analytics.PerformanceChart(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.output, png, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %s (%d bytes)\n", c.output, len(png))
	return subcommands.ExitSuccess
}

type serveCmd struct{}

func (*serveCmd) Name() string           { return "serve" }
func (*serveCmd) Synopsis() string       { return "serve the REST API" }
func (*serveCmd) SetFlags(*flag.FlagSet) {}
func (*serveCmd) Usage() string {
	return `folio serve

  Serves the portfolio API on the configured host and port until interrupted.
`
}

func (*serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := server.Run(ctx, a); err != nil {
		a.Logger.Error().Err(err).Msg("Server failed")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
