package models

import "encoding/json"

// EnvelopeKind classifies the outcome of a query.
type EnvelopeKind string

const (
	EnvelopeOK    EnvelopeKind = "ok"
	EnvelopeEmpty EnvelopeKind = "empty"
	EnvelopeError EnvelopeKind = "error"
)

// Envelope is the only shape a query returns. Body is the JSON payload
// sent to consumers; Kind tells the transport how to frame it.
type Envelope struct {
	Kind EnvelopeKind
	Body interface{}
	Err  error
}

// MarshalJSON writes the body alone.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Body)
}

// Failed reports whether the query failed.
func (e Envelope) Failed() bool {
	return e.Kind == EnvelopeError
}

// EmptyHoldings is the body returned when no holding normalizes.
type EmptyHoldings struct {
	Message string    `json:"message"`
	Data    []Holding `json:"data"`
}

// EmptyAllocation is the body returned when there is nothing to allocate.
type EmptyAllocation struct {
	Message     string     `json:"message"`
	BySector    Allocation `json:"bySector"`
	ByMarketCap Allocation `json:"byMarketCap"`
}

// Failure is the body of an error envelope.
type Failure struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// OK wraps a success payload.
func OK(body interface{}) Envelope {
	return Envelope{Kind: EnvelopeOK, Body: body}
}

// Empty wraps a defined no-data payload.
func Empty(body interface{}) Envelope {
	return Envelope{Kind: EnvelopeEmpty, Body: body}
}

// Fail wraps an error with a human-readable message.
func Fail(message string, err error) Envelope {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return Envelope{Kind: EnvelopeError, Body: Failure{Message: message, Error: detail}, Err: err}
}

// Dashboard merges the four query results into one view.
type Dashboard struct {
	Holdings    Envelope `json:"holdings"`
	Allocation  Envelope `json:"allocation"`
	Performance Envelope `json:"performance"`
	Summary     Envelope `json:"summary"`
}
