package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithRequestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := WithRequestLogging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/filter", nil))

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["method"] != http.MethodPost {
		t.Errorf("method = %v; want POST", fields["method"])
	}
	if fields["path"] != "/filter" {
		t.Errorf("path = %v; want /filter", fields["path"])
	}
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("status = %v; want %d", fields["status"], http.StatusTeapot)
	}
	if fields["bytes"] != int64(len("short and stout")) {
		t.Errorf("bytes = %v", fields["bytes"])
	}
}

func TestWithRequestLogging_DefaultStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := WithRequestLogging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["status"]; got != int64(http.StatusOK) {
		t.Errorf("status = %v; want 200", got)
	}
}
