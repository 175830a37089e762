package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"flowbotz/internal/session"
)

func TestSecureHeaders(t *testing.T) {
	handler := SecureHeaders(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "SAMEORIGIN",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, value := range want {
		if got := w.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

// TestSessionFromCtx covers the context round trip without Valkey.
func TestSessionFromCtx(t *testing.T) {
	if got := SessionFromCtx(context.Background()); got != nil {
		t.Errorf("empty context returned session %+v", got)
	}

	data := &session.Data{}
	ctx := context.WithValue(context.Background(), SessionKey, data)
	if got := SessionFromCtx(ctx); got != data {
		t.Error("SessionFromCtx did not return the stored session")
	}
}
