package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerPassesThrough(t *testing.T) {
	called := false
	var hasLogger bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		hasLogger = zerolog.Ctx(r.Context()).GetLevel() != zerolog.Disabled
		w.WriteHeader(http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	Logger(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	if !called {
		t.Error("Expected inner handler to be called")
	}
	if !hasLogger {
		t.Error("Expected request-scoped logger in context")
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d", rec.Code)
	}
	if len(rec.Header().Get(RequestIDHeader)) != 36 {
		t.Errorf("Expected uuid request id, got %q", rec.Header().Get(RequestIDHeader))
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	})

	Chain(inner, mw("first"), mw("second")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	expected := []string{"first", "second", "handler"}
	if len(order) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, order)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, order)
			break
		}
	}
}

func TestRequestLoggerFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if requestLogger(req) == nil {
		t.Error("Expected global logger outside middleware")
	}
}
