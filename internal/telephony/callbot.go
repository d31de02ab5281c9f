package telephony

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"call-middleware/internal/calls"
	"call-middleware/internal/config"
)

const (
	healthPath       = "/health"
	outboundCallPath = "/make-outbound-call"
)

// CallBotClient talks to the deployed call bot over plain HTTP.
type CallBotClient struct {
	baseURL      string
	callTimeout  time.Duration
	probeTimeout time.Duration
	http         *http.Client
}

// NewCallBotClient builds a client for cfg. A nil httpClient uses a fresh
// client with no client-level timeout; per-request deadlines come from cfg.
func NewCallBotClient(cfg config.UpstreamConfig, httpClient *http.Client) *CallBotClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &CallBotClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		callTimeout:  cfg.CallTimeout,
		probeTimeout: cfg.ProbeTimeout,
		http:         httpClient,
	}
}

func (c *CallBotClient) Name() string { return "callbot" }

// Probe issues GET /health. Callers decide what a non-2xx status means.
func (c *CallBotClient) Probe(ctx context.Context) Outcome {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return Outcome{Kind: OutcomeTransportFailure, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	return c.do(ctx, req, c.probeTimeout)
}

// PlaceOutboundCall issues POST /make-outbound-call with {"to": to}.
func (c *CallBotClient) PlaceOutboundCall(ctx context.Context, to json.RawMessage) Outcome {
	payload, err := json.Marshal(calls.UpstreamPayload{To: to})
	if err != nil {
		return Outcome{Kind: OutcomeTransportFailure, Err: fmt.Errorf("encode payload: %w", err)}
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+outboundCallPath, bytes.NewReader(payload))
	if err != nil {
		return Outcome{Kind: OutcomeTransportFailure, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(ctx, req, c.callTimeout)
}

// do runs one exchange bounded by timeout. The deadline is applied to a
// context that ignores the caller's cancellation, so a client hanging up
// does not abort the upstream call.
func (c *CallBotClient) do(ctx context.Context, req *http.Request, timeout time.Duration) Outcome {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return Outcome{Kind: OutcomeTransportFailure, Err: describe(err, timeout)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{
			Kind:   OutcomeUpstreamFault,
			Status: resp.StatusCode,
			Body:   nullBody,
			Err:    describe(err, timeout),
		}
	}

	kind := OutcomeUpstreamError
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		kind = OutcomeSuccess
	}
	return Outcome{Kind: kind, Status: resp.StatusCode, Body: decodeBody(raw)}
}

func describe(err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("timeout of %dms exceeded", timeout.Milliseconds())
	}
	return err
}
