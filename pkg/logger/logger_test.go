package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMiddleware_SetsRequestIDAndLogs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	l := NewWithWriter("local", &buf)

	r := gin.New()
	r.Use(Middleware(l))
	r.GET("/x", func(c *gin.Context) {
		From(c.Request.Context()).Info("inside")
		c.Status(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	r.ServeHTTP(w, req)

	if w.Header().Get("X-Request-Id") != "rid-1" {
		t.Fatalf("expected request id echoed")
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}
	var summary map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &summary); err != nil {
		t.Fatalf("invalid json log: %v", err)
	}
	if summary["request_id"] != "rid-1" || summary["level"] != "WARN" || summary["path"] != "/x" {
		t.Fatalf("unexpected summary %v", summary)
	}
	if !strings.Contains(lines[0], `"request_id":"rid-1"`) {
		t.Fatalf("expected scoped logger in request context, got %s", lines[0])
	}
}

func TestMiddleware_GeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Middleware(NewWithWriter("production", &bytes.Buffer{})))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected generated request id")
	}
}

func TestSlogEvents_Levels(t *testing.T) {
	var buf bytes.Buffer
	ev := NewSlogEvents(NewWithWriter("production", &buf))

	ev.Log(context.Background(), "call.transport_failure", "error", "boom")
	ev.Log(context.Background(), "call.rejected")
	ev.Log(context.Background(), "call.forwarding", "to", "+1")

	out := buf.String()
	for _, want := range []string{`"level":"ERROR","msg":"call.transport_failure"`, `"level":"WARN","msg":"call.rejected"`, `"level":"INFO","msg":"call.forwarding"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Log(context.Background(), "probe.succeeded", "status", 200)

	e, ok := r.Find("probe.succeeded")
	if !ok {
		t.Fatalf("expected event recorded")
	}
	if e.Fields["status"] != 200 {
		t.Fatalf("unexpected fields %v", e.Fields)
	}
	if _, ok := r.Find("nope"); ok {
		t.Fatalf("unexpected event")
	}
}

func TestSlogEvents_PrefersRequestLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	ev := NewSlogEvents(NewWithWriter("production", &base))
	ctx := With(context.Background(), NewWithWriter("production", &scoped).With("request_id", "rid-9"))

	ev.Log(ctx, "call.forwarding")
	ev.Log(context.Background(), "probe.succeeded")

	if !strings.Contains(scoped.String(), `"request_id":"rid-9"`) || strings.Contains(scoped.String(), "probe.succeeded") {
		t.Fatalf("unexpected scoped output %s", scoped.String())
	}
	if !strings.Contains(base.String(), "probe.succeeded") || strings.Contains(base.String(), "call.forwarding") {
		t.Fatalf("unexpected base output %s", base.String())
	}
	if FromOr(context.Background(), nil) == nil {
		t.Fatalf("expected default logger fallback")
	}
}
