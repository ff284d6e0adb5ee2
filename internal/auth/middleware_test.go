package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func guardedRouter(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RequireToken(m), func(c *gin.Context) {
		role, _ := Role(c.Request.Context())
		c.JSON(200, gin.H{"role": role})
	})
	return r
}

func TestRequireToken_AcceptsRawTokenHeader(t *testing.T) {
	m := testManager(t)
	r := guardedRouter(m)

	tok, err := m.Issue(time.Now(), TokenInput{UserID: "u", OrgID: "o", Name: "n", Role: "Admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// The web client sends the raw token without a Bearer prefix.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", tok)
	r.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// Bearer prefix is tolerated too.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("expected 200 with bearer prefix, got %d", w.Code)
	}
}

func TestRequireToken_MissingToken(t *testing.T) {
	m := testManager(t)
	r := guardedRouter(m)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireToken_ExpiredTokenCarriesWireCode(t *testing.T) {
	m := testManager(t)
	r := guardedRouter(m)

	issued := time.Now().Add(-2 * time.Hour)
	tok, err := m.Issue(issued, TokenInput{UserID: "u", OrgID: "o", Name: "n", Role: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", tok)
	r.ServeHTTP(w, req)
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != CodeExpiredToken {
		t.Fatalf("expected code %q, got %q", CodeExpiredToken, body.Code)
	}
}

func TestRequireToken_GarbageTokenIsPlainUnauthorized(t *testing.T) {
	m := testManager(t)
	r := guardedRouter(m)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "not-a-token")
	r.ServeHTTP(w, req)
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code == CodeExpiredToken {
		t.Fatalf("garbage token must not be reported as expired")
	}
}
