// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"
	"encoding/json"
)

// SnapshotStore reads the two read-only data sources. Each load returns the
// whole top-level array or fails; there are no partial results.
type SnapshotStore interface {
	// LoadHoldings returns every element of the holdings snapshot, undecoded.
	LoadHoldings(ctx context.Context) ([]json.RawMessage, error)

	// LoadTimeline returns every element of the timeline snapshot, undecoded.
	LoadTimeline(ctx context.Context) ([]json.RawMessage, error)
}
