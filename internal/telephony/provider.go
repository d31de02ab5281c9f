package telephony

import (
	"context"
	"encoding/json"
)

// Provider is the boundary to the upstream call bot.
//
// Rules:
// - Implementations never turn an HTTP status into an error; every status is reported in the Outcome.
// - Exactly one outbound request per method call, no retries.
type Provider interface {
	Name() string
	Probe(ctx context.Context) Outcome
	PlaceOutboundCall(ctx context.Context, to json.RawMessage) Outcome
}

// OutcomeKind tags what happened on the wire.
type OutcomeKind int

const (
	// OutcomeSuccess: a 2xx response with a readable body.
	OutcomeSuccess OutcomeKind = iota + 1
	// OutcomeUpstreamError: a non-2xx response with a readable body.
	OutcomeUpstreamError
	// OutcomeUpstreamFault: a status line arrived but the exchange failed afterwards.
	OutcomeUpstreamFault
	// OutcomeTransportFailure: no response at all (timeout, DNS, refused, reset).
	OutcomeTransportFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeUpstreamError:
		return "upstream_error"
	case OutcomeUpstreamFault:
		return "upstream_fault"
	case OutcomeTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// Outcome is the result of a single outbound exchange.
// Status and Body are set for every kind except OutcomeTransportFailure;
// Err is set for OutcomeUpstreamFault and OutcomeTransportFailure.
type Outcome struct {
	Kind   OutcomeKind
	Status int

	// Body is always valid JSON: the upstream document verbatim, or the raw
	// text encoded as a JSON string when the upstream did not send JSON.
	Body json.RawMessage

	Err error
}

// Reachable reports whether the upstream answered with a status line.
func (o Outcome) Reachable() bool {
	return o.Kind != OutcomeTransportFailure
}

// ErrorMessage returns the failure text shown to callers.
func (o Outcome) ErrorMessage() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
