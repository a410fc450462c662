package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveResolution(t *testing.T) {
	exact := EntityResolutionsTotal.WithLabelValues("medicine", OutcomeExact)
	fuzzy := EntityResolutionsTotal.WithLabelValues("medicine", OutcomeFuzzy)
	missing := EntityResolutionsTotal.WithLabelValues("medicine", OutcomeNotFound)
	beforeExact, beforeFuzzy, beforeMissing := testutil.ToFloat64(exact), testutil.ToFloat64(fuzzy), testutil.ToFloat64(missing)

	ObserveResolution("medicine", true, true)
	ObserveResolution("medicine", true, false)
	ObserveResolution("medicine", false, false)

	if got := testutil.ToFloat64(exact) - beforeExact; got != 1 {
		t.Errorf("exact delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(fuzzy) - beforeFuzzy; got != 1 {
		t.Errorf("fuzzy delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(missing) - beforeMissing; got != 1 {
		t.Errorf("not_found delta = %v, want 1", got)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/v1/medicines/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := HTTPRequestTotals.WithLabelValues("GET", "/v1/medicines/{id}", "404")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodGet, "/v1/medicines/42", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("request counter delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(HTTPRequestInFlight); got != 0 {
		t.Errorf("in-flight gauge = %v after request, want 0", got)
	}
}

func TestMetricsMiddlewareWithoutRouter(t *testing.T) {
	h := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	counter := HTTPRequestTotals.WithLabelValues("GET", "unmatched", "200")
	before := testutil.ToFloat64(counter)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("unmatched counter delta = %v, want 1", got)
	}
}
