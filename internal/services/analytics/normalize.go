package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// holdingField resolves one canonical field. Keys are tried in order; the
// first one present with a truthy value is applied, otherwise the field
// keeps its zero value.
type holdingField struct {
	keys  []string
	apply func(h *models.Holding, v interface{})
}

var holdingFields = []holdingField{
	{[]string{"Symbol", "symbol"}, func(h *models.Holding, v interface{}) { h.Symbol = toString(v) }},
	{[]string{"Company Name", "name"}, func(h *models.Holding, v interface{}) { h.Name = toString(v) }},
	{[]string{"Quantity", "quantity"}, func(h *models.Holding, v interface{}) { h.Quantity = parseInteger(v) }},
	{[]string{"Avg Price ₹", "avgPrice"}, func(h *models.Holding, v interface{}) { h.AvgPrice = parseNumber(v) }},
	{[]string{"Current Price (₹)", "currentPrice"}, func(h *models.Holding, v interface{}) { h.CurrentPrice = parseNumber(v) }},
	{[]string{"Sector", "sector"}, func(h *models.Holding, v interface{}) { h.Sector = toString(v) }},
	{[]string{"Market Cap", "marketCap"}, func(h *models.Holding, v interface{}) { h.MarketCap = toString(v) }},
	{[]string{"Value ₹", "value"}, func(h *models.Holding, v interface{}) { h.Value = parseNumber(v) }},
	{[]string{"Gain/Loss (₹)", "gainLoss"}, func(h *models.Holding, v interface{}) { h.GainLoss = parseNumber(v) }},
	{[]string{"Gain/Loss %", "gainLossPercent"}, func(h *models.Holding, v interface{}) { h.GainLossPercent = parsePercent(v) }},
}

// NormalizeHoldings maps raw snapshot records onto canonical holdings.
// Entries that are not JSON objects are dropped; a record that fails to
// build is logged and skipped without affecting the rest of the batch.
func NormalizeHoldings(records []models.RawHoldingRecord, logger *common.Logger) []models.Holding {
	holdings := make([]models.Holding, 0, len(records))
	for i, raw := range records {
		obj, ok := decodeObject(raw)
		if !ok {
			logger.Debug().Int("index", i).Msg("Skipping holding record that is not an object")
			continue
		}
		h, err := buildHolding(obj)
		if err != nil {
			logger.Warn().Int("index", i).Err(err).Msg("Error transforming holding record")
			continue
		}
		holdings = append(holdings, h)
	}
	return holdings
}

// buildHolding resolves every field of one record.
func buildHolding(obj map[string]interface{}) (h models.Holding, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("building holding: %v", rec)
		}
	}()

	for _, f := range holdingFields {
		if v, ok := lookup(obj, f.keys); ok {
			f.apply(&h, v)
		}
	}
	return h, nil
}

// decodeObject decodes raw into a map when it is a JSON object.
func decodeObject(raw json.RawMessage) (map[string]interface{}, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// lookup returns the value of the first key holding a truthy value.
func lookup(obj map[string]interface{}, keys []string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok && truthy(v) {
			return v, true
		}
	}
	return nil, false
}

// truthy treats null, "", 0, NaN and false as absent.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case bool:
		return t
	}
	return true
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

var (
	floatPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
)

// parseNumber reads a float from a JSON number or from the leading numeric
// part of a string ("1200.50 INR" is 1200.5). Anything else is 0.
func parseNumber(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		if !isFinite(t) {
			return 0
		}
		return t
	case string:
		m := floatPrefix.FindString(strings.TrimSpace(t))
		if m == "" {
			return 0
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil || !isFinite(f) {
			return 0
		}
		return f
	}
	return 0
}

// parseInteger reads an integer the same way, truncating any fraction.
func parseInteger(v interface{}) int {
	switch t := v.(type) {
	case float64:
		if !isFinite(t) || math.Abs(t) >= math.MaxInt64 {
			return 0
		}
		return int(t)
	case string:
		m := intPrefix.FindString(strings.TrimSpace(t))
		if m == "" {
			return 0
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// parsePercent parses a percentage that may carry a trailing "%".
func parsePercent(v interface{}) float64 {
	if s, ok := v.(string); ok {
		return parseNumber(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	}
	return parseNumber(v)
}
