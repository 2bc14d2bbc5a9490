package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, secret string, userID int, role string) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		Email:  "test@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticationMissingToken(t *testing.T) {
	h := Authentication(testSecret, zerolog.Nop())(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/events/my-events", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticationBadToken(t *testing.T) {
	h := Authentication(testSecret, zerolog.Nop())(okHandler())
	req := httptest.NewRequest("GET", "/api/events/my-events", nil)
	req.Header.Set(AuthTokenHeader, signToken(t, "some-other-secret", 1, "user"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticationPopulatesContext(t *testing.T) {
	var gotID int
	var gotRole string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserID(r)
		gotRole, _ = GetUserRole(r)
		w.WriteHeader(http.StatusOK)
	})

	h := Authentication(testSecret, zerolog.Nop())(inner)
	req := httptest.NewRequest("GET", "/api/users/me", nil)
	req.Header.Set(AuthTokenHeader, signToken(t, testSecret, 42, "admin"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotID != 42 {
		t.Errorf("user id in context = %d, want 42", gotID)
	}
	if gotRole != "admin" {
		t.Errorf("role in context = %q, want admin", gotRole)
	}
}

func TestRequireRole(t *testing.T) {
	chain := Authentication(testSecret, zerolog.Nop())(RequireRole("admin")(okHandler()))

	req := httptest.NewRequest("GET", "/api/discounts", nil)
	req.Header.Set(AuthTokenHeader, signToken(t, testSecret, 1, "user"))
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-admin status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/discounts", nil)
	req.Header.Set(AuthTokenHeader, signToken(t, testSecret, 1, "admin"))
	rec = httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 2)
	h := rl.Middleware()(okHandler())

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/events", nil))
		statuses = append(statuses, rec.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("requests within burst = %v, want 200s", statuses[:2])
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("request past burst = %d, want 429", statuses[2])
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders()(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestRequestValidationRejectsWrongContentType(t *testing.T) {
	h := RequestValidation()(okHandler())

	req := httptest.NewRequest("POST", "/api/events", nil)
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("text/plain POST status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest("POST", "/api/events", nil)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("json POST status = %d, want 200", rec.Code)
	}
}

func TestErrorHandlingRecoversPanics(t *testing.T) {
	h := ErrorHandling(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
