package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	expected := map[string]string{
		"X-Content-Type-Options":    "nosniff",
		"X-Frame-Options":           "DENY",
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	}
	for header, want := range expected {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("Expected %s: %q, got %q", header, want, got)
		}
	}
}

func TestCorrelationIDEchoesCallerValue(t *testing.T) {
	var seen string
	handler := CorrelationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetCorrelationID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(CorrelationIDHeader, "caller-supplied-id")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get(CorrelationIDHeader) != "caller-supplied-id" {
		t.Errorf("Expected the caller's id to be echoed, got %q", rec.Header().Get(CorrelationIDHeader))
	}
	if seen != "caller-supplied-id" {
		t.Errorf("Expected the id on the request context, got %q", seen)
	}
}

func TestCorrelationIDGeneratesWhenAbsent(t *testing.T) {
	handler := CorrelationID(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Header().Get(CorrelationIDHeader) == "" {
		t.Error("Expected a generated correlation id on the response")
	}
}

func TestCacheControlOnSuccessfulGet(t *testing.T) {
	handler := CacheControl(time.Minute)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=60" {
		t.Errorf("Expected public caching for 60s, got %q", got)
	}
}

func TestCacheControlSkipsErrorsAndWrites(t *testing.T) {
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := CacheControl(time.Minute)(notFound)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Header().Get("Cache-Control") != "" {
		t.Error("Expected no caching header on an error response")
	}

	handler = CacheControl(time.Minute)(okHandler())
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/products", nil))
	if rec.Header().Get("Cache-Control") != "" {
		t.Error("Expected no caching header on a POST")
	}
}

func TestCacheControlImplicitOKViaWrite(t *testing.T) {
	implicit := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("body without explicit WriteHeader"))
	})

	handler := CacheControl(time.Minute)(implicit)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Header().Get("Cache-Control") != "public, max-age=60" {
		t.Error("Expected caching header when the handler writes without a status")
	}
}
