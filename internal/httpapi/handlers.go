package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"call-middleware/internal/calls"
	"call-middleware/internal/telephony"
	"call-middleware/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	probeSuccessMessage = "Connected to deployed Render server ✅"
	probeFailureHint    = "If this fails, your local server cannot reach the Render API (check your network or proxy)."

	remoteErrorMessage    = "Remote API returned an error"
	upstreamFaultMessage  = "Upstream API error"
	networkFailureMessage = "Network or CORS issue contacting remote API"

	maxCallBodyBytes = 1 << 20
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call the provider, translate the outcome.
type Handlers struct {
	Provider telephony.Provider
	Events   logger.EventLogger
}

type probeSuccess struct {
	OK      bool            `json:"ok"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type probeFailure struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Hint  string `json:"hint"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type upstreamErrorResponse struct {
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
}

type transportErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Health always answers 200 "OK".
func (h Handlers) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Test checks that the upstream health endpoint answers with a 2xx. Both
// outcomes are reported with 200.
func (h Handlers) Test(c *gin.Context) {
	ctx := c.Request.Context()
	out := h.Provider.Probe(ctx)

	if out.Kind != telephony.OutcomeSuccess {
		msg := out.ErrorMessage()
		if out.Kind == telephony.OutcomeUpstreamError {
			msg = fmt.Sprintf("Request failed with status code %d", out.Status)
		}
		h.Events.Log(ctx, "probe.failed", "provider", h.Provider.Name(), "status", out.Status, "error", msg)
		c.JSON(http.StatusOK, probeFailure{
			OK:    false,
			Error: msg,
			Hint:  probeFailureHint,
		})
		return
	}

	h.Events.Log(ctx, "probe.succeeded", "provider", h.Provider.Name(), "status", out.Status)
	c.JSON(http.StatusOK, probeSuccess{
		OK:      true,
		Status:  out.Status,
		Data:    out.Body,
		Message: probeSuccessMessage,
	})
}

// Call forwards {"to": ...} to the upstream and translates the outcome.
func (h Handlers) Call(c *gin.Context) {
	ctx := c.Request.Context()

	// Only JSON bodies are parsed; anything else carries no destination.
	var body []byte
	if c.ContentType() == binding.MIMEJSON {
		b, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCallBodyBytes))
		if err == nil {
			body = b
		}
	}
	req := calls.DecodeOutboundCallRequest(body)
	if !req.HasDestination() {
		h.Events.Log(ctx, "call.rejected", "reason", "missing_to")
		c.JSON(http.StatusBadRequest, messageResponse{Message: calls.MissingDestinationMessage})
		return
	}

	h.Events.Log(ctx, "call.forwarding", "provider", h.Provider.Name(), "to", string(req.To))
	out := h.Provider.PlaceOutboundCall(ctx, req.To)

	switch out.Kind {
	case telephony.OutcomeSuccess:
		h.Events.Log(ctx, "call.remote_response", "status", out.Status, "data", string(out.Body))
		c.Data(http.StatusOK, "application/json; charset=utf-8", out.Body)

	case telephony.OutcomeUpstreamError:
		h.Events.Log(ctx, "call.remote_response", "status", out.Status, "data", string(out.Body))
		c.JSON(out.Status, upstreamErrorResponse{
			Message: remoteErrorMessage,
			Status:  out.Status,
			Data:    out.Body,
		})

	case telephony.OutcomeUpstreamFault:
		h.Events.Log(ctx, "call.upstream_fault", "status", out.Status, "error", out.ErrorMessage())
		c.JSON(out.Status, upstreamErrorResponse{
			Message: upstreamFaultMessage,
			Status:  out.Status,
			Data:    out.Body,
		})

	default:
		h.Events.Log(ctx, "call.transport_failure", "error", out.ErrorMessage())
		c.JSON(http.StatusInternalServerError, transportErrorResponse{
			Message: networkFailureMessage,
			Error:   out.ErrorMessage(),
		})
	}
}
