package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-summarizer/pkg/jwt"
)

func newTestServer(verifier TokenVerifier) *echo.Echo {
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, Identity(c))
	}, EchoAuth(verifier))
	return e
}

func TestEchoAuth(t *testing.T) {
	manager := jwt.NewManager("secret", "")
	valid, _ := manager.GenerateAccessToken("user-7", "pm@acme.io", "", time.Hour)
	expired, _ := manager.GenerateAccessToken("user-7", "", "", -time.Minute)

	tests := []struct {
		name   string
		header string
		cookie string
		status int
		body   string
	}{
		{name: "bearer header", header: "Bearer " + valid, status: http.StatusOK, body: "pm@acme.io"},
		{name: "cookie", cookie: valid, status: http.StatusOK, body: "pm@acme.io"},
		{name: "missing", status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, status: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer abc", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, status: http.StatusUnauthorized},
	}

	e := newTestServer(manager)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Fatalf("body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}
