package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/folio/internal/models"
)

// Dashboard runs the four queries concurrently and merges their results.
// The first failing query cancels the others and fails the whole call.
func (s *Service) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var d models.Dashboard
	g, gctx := errgroup.WithContext(ctx)

	queries := []struct {
		name string
		run  func(context.Context) models.Envelope
		dst  *models.Envelope
	}{
		{"holdings", s.Holdings, &d.Holdings},
		{"allocation", s.Allocation, &d.Allocation},
		{"performance", s.Performance, &d.Performance},
		{"summary", s.Summary, &d.Summary},
	}

	for _, q := range queries {
		g.Go(func() error {
			env := q.run(gctx)
			if env.Failed() {
				return fmt.Errorf("%s query failed: %w", q.name, env.Err)
			}
			*q.dst = env
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}
