package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"archiva/internal/domain"
	"archiva/internal/domain/models"
	"archiva/internal/httputil"

	"github.com/golang-jwt/jwt/v5"
)

// stubVerifier accepts exactly one token string.
type stubVerifier struct {
	token  string
	userID string
}

func (v *stubVerifier) VerifyToken(tokenString string) (*models.AccessClaims, error) {
	if tokenString != v.token {
		return nil, domain.ErrUnauthorized
	}
	return &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: v.userID},
		Role:             "authenticated",
	}, nil
}

func (v *stubVerifier) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthMiddleware(t *testing.T) {
	verifier := &stubVerifier{token: "good-token", userID: "user-1"}

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = httputil.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})
	wrapped := AuthMiddleware(verifier)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID string
	}{
		{"valid bearer token", "Bearer good-token", http.StatusOK, "user-1"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized, ""},
		{"bad token", "Bearer bad-token", http.StatusUnauthorized, ""},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = ""
			r := httptest.NewRequest(http.MethodGet, "/api/corpora", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			wrapped.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if gotUserID != tt.wantUserID {
				t.Errorf("user id = %q, want %q", gotUserID, tt.wantUserID)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
					t.Errorf("content type = %q", ct)
				}
			}
		})
	}
}

func TestAuthMiddleware_HealthExempt(t *testing.T) {
	verifier := &stubVerifier{token: "good-token"}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := AuthMiddleware(verifier)(next)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("health probe should bypass auth, got %d", w.Code)
	}
}

func TestRecovery(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	wrapped := Recovery(discardLogger())(next)

	r := httptest.NewRequest(http.MethodGet, "/api/corpora", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestRequestLog_AssignsRequestID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	wrapped := RequestLog(discardLogger())(next)

	r := httptest.NewRequest(http.MethodGet, "/api/corpora", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, r)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated request id")
	}

	// Client-supplied IDs pass through
	r = httptest.NewRequest(http.MethodGet, "/api/corpora", nil)
	r.Header.Set("X-Request-ID", "req-42")
	w = httptest.NewRecorder()
	wrapped.ServeHTTP(w, r)

	if got := w.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("request id = %q, want req-42", got)
	}
}

func TestRecovery_PassthroughWhenHealthy(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	wrapped := Recovery(discardLogger())(next)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, r)

	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", w.Code, http.StatusTeapot)
	}
}
