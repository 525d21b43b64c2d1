package analytics

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/bobmcallan/folio/internal/models"
)

var timelineDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimeline decodes timeline snapshot records. Non-object entries are
// dropped; fields of the wrong type decode to their zero value, so a point
// without a string date keeps an empty Date.
func ParseTimeline(records []json.RawMessage) []models.TimelinePoint {
	points := make([]models.TimelinePoint, 0, len(records))
	for _, raw := range records {
		obj, ok := decodeObject(raw)
		if !ok {
			continue
		}
		p := models.TimelinePoint{}
		if d, ok := obj["date"].(string); ok {
			p.Date = d
		}
		p.Portfolio = numberField(obj, string(models.AssetPortfolio))
		p.Nifty50 = numberField(obj, string(models.AssetNifty50))
		p.Gold = numberField(obj, string(models.AssetGold))
		points = append(points, p)
	}
	return points
}

// numberField returns the field only when it is a JSON number.
func numberField(obj map[string]interface{}, key string) float64 {
	if f, ok := obj[key].(float64); ok {
		return f
	}
	return 0
}

// parseTimelineDate parses a calendar date or timestamp into UTC.
func parseTimelineDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timelineDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// SortTimeline keeps the points with a parseable date, stamps their At
// field and returns them in ascending date order. Points sharing a date
// keep their input order.
func SortTimeline(points []models.TimelinePoint) []models.TimelinePoint {
	dated := make([]models.TimelinePoint, 0, len(points))
	for _, p := range points {
		if p.Date == "" {
			continue
		}
		at, ok := parseTimelineDate(p.Date)
		if !ok {
			continue
		}
		p.At = at
		dated = append(dated, p)
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].At.Before(dated[j].At)
	})
	return dated
}

// ComputeReturns calculates trailing returns for every asset over the 1
// month, 3 month and 1 year windows, measured from the latest dated point
// to the point closest to each window's start. Missing data yields zeros.
func ComputeReturns(points []models.TimelinePoint) models.ReturnsByWindow {
	var returns models.ReturnsByWindow

	sorted := SortTimeline(points)
	if len(sorted) == 0 {
		return returns
	}

	latest := sorted[len(sorted)-1]
	for _, w := range models.Windows {
		years, months := w.Lookback()
		target := windowStart(latest.At, years, months)
		closest, ok := closestPoint(sorted, target)
		if !ok {
			continue
		}
		for _, a := range models.Assets {
			returns.For(a).Set(w, percentReturn(latest.Value(a), closest.Value(a)))
		}
	}
	return returns
}

// windowStart steps back by calendar months and years from the reference
// date. Day overflow rolls forward: 31 March minus one month is 2 or 3 March.
func windowStart(ref time.Time, years, months int) time.Time {
	t := ref.AddDate(-years, -months, 0)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// closestPoint returns the point whose date is nearest to target. On a tie
// the earlier point in sorted order wins. sorted must be ascending.
func closestPoint(sorted []models.TimelinePoint, target time.Time) (models.TimelinePoint, bool) {
	if len(sorted) == 0 {
		return models.TimelinePoint{}, false
	}

	// i is the first point on or after target.
	i := sort.Search(len(sorted), func(i int) bool {
		return !sorted[i].At.Before(target)
	})

	best := -1
	if i > 0 {
		best = i - 1
		for best > 0 && sorted[best-1].At.Equal(sorted[best].At) {
			best--
		}
	}
	if i < len(sorted) && (best < 0 || distance(sorted[i].At, target) < distance(sorted[best].At, target)) {
		best = i
	}
	return sorted[best], true
}

func distance(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}

// percentReturn is (current-previous)/previous*100 to 2 places, or 0 when
// either value is zero or not finite.
func percentReturn(current, previous float64) float64 {
	if current == 0 || previous == 0 || !isFinite(current) || !isFinite(previous) {
		return 0
	}
	return roundTo((current-previous)/previous*100, 2)
}
