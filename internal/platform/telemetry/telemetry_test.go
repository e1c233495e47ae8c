package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRecordOperation(t *testing.T) {
	p := NewProvider("test")
	p.RecordOperation("patient", "create")
	p.RecordOperation("patient", "create")
	p.RecordOperation("payment", "get")

	if got := p.OperationCount("patient", "create"); got != 2 {
		t.Errorf("expected 2 patient creates, got %d", got)
	}
	if got := p.OperationCount("payment", "get"); got != 1 {
		t.Errorf("expected 1 payment get, got %d", got)
	}
	if got := p.OperationCount("payment", "delete"); got != 0 {
		t.Errorf("expected 0 for unrecorded pair, got %d", got)
	}
}

func TestHistogramObserve(t *testing.T) {
	h := newHistogram([]float64{0.1, 1.0})
	h.Observe(0.05)
	h.Observe(0.5)
	h.Observe(5.0) // beyond all boundaries

	if h.Count() != 3 {
		t.Errorf("expected count 3, got %d", h.Count())
	}
	cum := h.cumulativeBuckets()
	if cum[0] != 1 {
		t.Errorf("expected 1 observation <= 0.1, got %d", cum[0])
	}
	if cum[1] != 2 {
		t.Errorf("expected 2 observations <= 1.0, got %d", cum[1])
	}
}

func TestMetricsMiddleware_RecordsDuration(t *testing.T) {
	p := NewProvider("test")
	e := echo.New()
	handler := p.MetricsMiddleware()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.durations.Count() != 1 {
		t.Errorf("expected 1 observation, got %d", p.durations.Count())
	}
	if p.ActiveRequests() != 0 {
		t.Errorf("expected 0 active requests after completion, got %d", p.ActiveRequests())
	}
}

func TestPrometheusHandler(t *testing.T) {
	p := NewProvider("test")
	p.RecordOperation("patient", "list")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	if err := p.PrometheusHandler()(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "http_server_request_duration_seconds_bucket") {
		t.Error("expected duration histogram in output")
	}
	if !strings.Contains(body, `record_operation_count{resource="patient",operation="list"} 1`) {
		t.Error("expected record operation counter in output")
	}
	if !strings.Contains(body, "http_server_active_requests 0") {
		t.Error("expected active requests gauge in output")
	}
}
