package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestID_SetsHeaderAndContext(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	requestID(next).ServeHTTP(w, req)

	if seen == "" {
		t.Fatal("expected request ID in context")
	}
	if w.Header().Get("X-Request-ID") != seen {
		t.Fatalf("X-Request-ID header = %q, want %q", w.Header().Get("X-Request-ID"), seen)
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	var a, b string
	next := func(dst *string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			*dst = requestIDFromContext(r.Context())
		}
	}

	requestID(next(&a)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	requestID(next(&b)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if a == b {
		t.Fatalf("expected distinct request IDs, got %q twice", a)
	}
}
