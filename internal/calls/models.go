package calls

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// MissingDestinationMessage is returned to callers that omit "to".
const MissingDestinationMessage = "Missing 'to' field in request body"

// OutboundCallRequest is the body accepted by POST /call.
//
// To is kept as raw JSON so whatever the caller sent (usually an E.164
// string) reaches the call bot unchanged.
type OutboundCallRequest struct {
	To json.RawMessage `json:"to"`
}

// DecodeOutboundCallRequest parses a /call body. An empty or malformed body
// yields a request without a destination rather than an error; the handler
// reports both the same way.
func DecodeOutboundCallRequest(body []byte) OutboundCallRequest {
	var req OutboundCallRequest
	if len(bytes.TrimSpace(body)) == 0 {
		return req
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return OutboundCallRequest{}
	}
	return req
}

// HasDestination reports whether To holds a usable value. Absent, null,
// false, zero and the empty string all count as missing.
func (r OutboundCallRequest) HasDestination() bool {
	raw := bytes.TrimSpace(r.To)
	if len(raw) == 0 {
		return false
	}
	switch raw[0] {
	case 'n', 'f':
		// null, false
		return false
	case 't', '{', '[':
		return true
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return false
		}
		return s != ""
	default:
		// Out-of-range literals saturate to ±Inf or 0, like JSON.parse.
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return false
		}
		return f != 0
	}
}

// UpstreamPayload is the body sent to the call bot's make-outbound-call endpoint.
type UpstreamPayload struct {
	To json.RawMessage `json:"to"`
}
