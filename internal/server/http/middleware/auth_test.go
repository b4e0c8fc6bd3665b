package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type verifierStub struct {
	subject string
	err     error
}

func (v verifierStub) Verify(string) (string, error) {
	return v.subject, v.err
}

func performProtectedRequest(t *testing.T, verifier TokenVerifier, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ServiceAuthRequired(verifier))
	router.POST("/protected", func(c *gin.Context) {
		subject, _ := c.Get(ServiceSubjectContextKey)
		c.String(http.StatusOK, "%v", subject)
	})

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestServiceAuthRequired(t *testing.T) {
	resp := performProtectedRequest(t, verifierStub{subject: "dispatcher"}, "Bearer good-token")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Body.String() != "dispatcher" {
		t.Fatalf("expected subject in context, got %q", resp.Body.String())
	}
}

func TestServiceAuthRequiredFailures(t *testing.T) {
	tests := []struct {
		name     string
		verifier TokenVerifier
		header   string
	}{
		{name: "missing header", verifier: verifierStub{subject: "dispatcher"}},
		{name: "not bearer", verifier: verifierStub{subject: "dispatcher"}, header: "Basic abc"},
		{name: "invalid token", verifier: verifierStub{err: errors.New("bad signature")}, header: "Bearer bad-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performProtectedRequest(t, tt.verifier, tt.header)
			if resp.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", resp.Code)
			}
		})
	}
}
