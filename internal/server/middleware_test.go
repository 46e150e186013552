package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestAPIKeyAuthOutcomes verifies the missing/wrong/right key paths and that
// rejections carry JSON bodies.
func TestAPIKeyAuthOutcomes(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := APIKeyAuth("secret")(next)

	cases := []struct {
		name string
		key  string
		want int
	}{
		{"missing key", "", http.StatusUnauthorized},
		{"wrong key", "nope", http.StatusForbidden},
		{"right key", "secret", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", nil)
		if tc.key != "" {
			req.Header.Set("X-API-Key", tc.key)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
		if tc.want != http.StatusOK && rec.Header().Get("Content-Type") != "application/json" {
			t.Errorf("%s: rejection body is not JSON", tc.name)
		}
	}
}

// TestCORSPreflight verifies OPTIONS requests short-circuit with the allowed
// surface and a preflight cache hint.
func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight reached the next handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/plans", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "X-API-Key") {
		t.Errorf("allowed headers = %q, want X-API-Key included", got)
	}
	if rec.Header().Get("Access-Control-Max-Age") == "" {
		t.Error("no preflight max age set")
	}
}

// TestRequestLoggingCapturesStatusAndSize verifies the wrapped writer reports
// the real status code and body size, not the defaults.
func TestRequestLoggingCapturesStatusAndSize(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	handler := RequestLogging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("missing"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plans/nope", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	line := buf.String()
	if !strings.Contains(line, "status=404") {
		t.Errorf("log line %q missing status=404", line)
	}
	if !strings.Contains(line, "bytes=7") {
		t.Errorf("log line %q missing bytes=7", line)
	}
}
