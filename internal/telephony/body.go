package telephony

import (
	"bytes"
	"encoding/json"

	"github.com/valyala/fastjson"
)

var nullBody = json.RawMessage("null")

// decodeBody turns an upstream payload into JSON the handlers can embed.
// JSON documents pass through untouched; anything else (HTML error pages,
// plain text, an empty body) is carried as a JSON string.
func decodeBody(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && fastjson.ValidateBytes(trimmed) == nil {
		out := make([]byte, len(trimmed))
		copy(out, trimmed)
		return out
	}
	s, err := json.Marshal(string(raw))
	if err != nil {
		return nullBody
	}
	return s
}
