package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_MarshalsBodyOnly(t *testing.T) {
	data, err := json.Marshal(OK(map[string]int{"a": 1}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))
}

func TestFail(t *testing.T) {
	cause := errors.New("read failed")
	env := Fail("Failed to fetch portfolio holdings", cause)

	assert.True(t, env.Failed())
	assert.Equal(t, EnvelopeError, env.Kind)
	assert.Same(t, cause, env.Err)

	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Failed to fetch portfolio holdings","error":"read failed"}`, string(data))
}

func TestFail_NilError(t *testing.T) {
	env := Fail("broken", nil)
	assert.Equal(t, Failure{Message: "broken"}, env.Body)
}

func TestDashboard_Marshal(t *testing.T) {
	d := Dashboard{
		Holdings:    Empty(EmptyHoldings{Message: "none", Data: []Holding{}}),
		Allocation:  OK(AllocationBreakdown{BySector: Allocation{}, ByMarketCap: Allocation{}}),
		Performance: OK(Performance{Timeline: []json.RawMessage{}, Returns: ReturnsByWindow{}}),
		Summary:     Empty(EmptySummary()),
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &out))
	assert.JSONEq(t, `{"message":"none","data":[]}`, string(out["holdings"]))
	assert.JSONEq(t, `{"bySector":{},"byMarketCap":{}}`, string(out["allocation"]))
	assert.Contains(t, string(out["summary"]), `"riskLevel":"Unknown"`)
}

func TestAllocation_MarshalKeepsOrder(t *testing.T) {
	alloc := Allocation{
		{Label: "Zeta", Value: 1, Percentage: 25},
		{Label: "Alpha", Value: 3, Percentage: 75},
	}

	data, err := json.Marshal(alloc)
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":{"value":1,"percentage":25},"Alpha":{"value":3,"percentage":75}}`, string(data))

	g, ok := alloc.Get("Alpha")
	require.True(t, ok)
	assert.Equal(t, int64(3), g.Value)
}

func TestAllocation_EmptyMarshalsAsObject(t *testing.T) {
	data, err := json.Marshal(Allocation{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestTimelineWindows(t *testing.T) {
	var r ReturnsByWindow
	for i, w := range Windows {
		r.For(AssetGold).Set(w, float64(i+1))
	}
	assert.Equal(t, WindowReturns{OneMonth: 1, ThreeMonths: 2, OneYear: 3}, r.Gold)
	assert.Equal(t, 3.0, r.Gold.Get(Window1Year))

	y, m := Window3Months.Lookback()
	assert.Equal(t, [2]int{0, 3}, [2]int{y, m})
	y, m = Window1Year.Lookback()
	assert.Equal(t, [2]int{1, 0}, [2]int{y, m})
}

func TestHolding_Invested(t *testing.T) {
	h := Holding{Quantity: 4, AvgPrice: 12.5, Sector: "Tech", MarketCap: "Large"}
	assert.Equal(t, 50.0, h.Invested())
	assert.Equal(t, "Tech", h.Label(GroupBySector))
	assert.Equal(t, "Large", h.Label(GroupByMarketCap))
}
