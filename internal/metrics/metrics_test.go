package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserve(t *testing.T) {
	m := New()

	m.Observe("register", "ok")
	m.Observe("register", "ok")
	m.Observe("delete", "declined")

	if got := testutil.ToFloat64(m.operations.WithLabelValues("register", "ok")); got != 2 {
		t.Errorf("register/ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("delete", "declined")); got != 1 {
		t.Errorf("delete/declined = %v, want 1", got)
	}
}

func TestSetRecords(t *testing.T) {
	m := New()
	m.SetRecords(3)
	if got := testutil.ToFloat64(m.records); got != 3 {
		t.Errorf("records = %v, want 3", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.Observe("search", "ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `registrar_operations_total{operation="search",outcome="ok"} 1`) {
		t.Errorf("metrics output missing search counter:\n%s", body)
	}
}
