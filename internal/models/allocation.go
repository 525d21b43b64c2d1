package models

import (
	"bytes"
	"encoding/json"
)

// AllocationGroup is the share of portfolio value held under one label.
type AllocationGroup struct {
	Label      string  `json:"-"`
	Value      int64   `json:"value"`
	Percentage float64 `json:"percentage"`
}

// Allocation is an ordered set of groups. It serializes as a JSON object
// keyed by label, in first-seen order.
type Allocation []AllocationGroup

// Get returns the group with the given label.
func (a Allocation) Get(label string) (AllocationGroup, bool) {
	for _, g := range a {
		if g.Label == label {
			return g, true
		}
	}
	return AllocationGroup{}, false
}

// MarshalJSON writes the groups as an object, preserving order.
func (a Allocation) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(g)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AllocationBreakdown is the success payload of the allocation query.
type AllocationBreakdown struct {
	BySector    Allocation `json:"bySector"`
	ByMarketCap Allocation `json:"byMarketCap"`
}
